// Command comet2 runs a COMET2 program binary to completion (or failure),
// optionally logging a trace of every executed step.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/AumyF/comet2/costmodel"
	"github.com/AumyF/comet2/loader"
	"github.com/AumyF/comet2/vm"
)

var (
	trace      = flag.Bool("trace", false, "log a record for every executed step")
	maxSteps   = flag.Uint64("max-steps", 1_000_000, "stop after this many steps (0 = unlimited); COMET2 has no HALT, so a normal program only terminates by trapping on an unlisted opcode")
	costConfig = flag.String("cost-config", "", "path to a YAML per-opcode cycle cost table")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: comet2 [options] <program.bin>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "comet2: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	prog, err := loader.Load(path)
	if err != nil {
		return err
	}

	var counter *costmodel.Counter
	if *costConfig != "" {
		f, err := os.Open(*costConfig)
		if err != nil {
			return err
		}
		table, err := costmodel.Load(f)
		_ = f.Close()
		if err != nil {
			return err
		}
		counter = costmodel.NewCounter(table)
	}

	m := vm.New(prog.Memory)

	var log logr.Logger
	if *trace {
		log = funcr.New(func(prefix, args string) {
			fmt.Fprintln(os.Stderr, prefix, args)
		}, funcr.Options{})
	}

	var steps uint64
	for {
		if *maxSteps > 0 && steps >= *maxSteps {
			break
		}

		pr := m.PR()
		result, err := m.Step()
		if err != nil {
			return fmt.Errorf("step %d at PR=0x%04X: %w", steps, pr, err)
		}
		steps++

		if *trace {
			log.Info("step", "n", steps, "pr_before", pr, "pr_after", m.PR(), "sp", m.SP())
		}
		if counter != nil && result.Retired {
			counter.Add(result.Kind)
		}
	}

	fmt.Printf("halted after %d steps at PR=0x%04X\n", steps, m.PR())
	if counter != nil {
		fmt.Printf("estimated cycles: %d (instructions: %d)\n", counter.Cycles(), counter.Retired())
	}
	return nil
}
