// Command profile runs a COMET2 program under pprof CPU profiling, for
// finding hot spots in the decode/execute dispatch path.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/AumyF/comet2/loader"
	"github.com/AumyF/comet2/vm"
)

var (
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")
	maxSteps   = flag.Uint64("max-steps", 1_000_000, "max steps to execute (0 = unlimited)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <program.bin>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	start := time.Now()

	steps, err := run(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Printf("executed %d steps in %v\n", steps, elapsed)
	if steps > 0 {
		fmt.Printf("steps/second: %.0f\n", float64(steps)/elapsed.Seconds())
	}
}

// run loads the program at path and steps the machine until it errors or
// hits maxSteps, returning the number of Step calls made.
func run(path string) (uint64, error) {
	prog, err := loader.Load(path)
	if err != nil {
		return 0, err
	}
	m := vm.New(prog.Memory)

	var steps uint64
	for *maxSteps == 0 || steps < *maxSteps {
		if _, err := m.Step(); err != nil {
			return steps, err
		}
		steps++
	}
	return steps, nil
}
