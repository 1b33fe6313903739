// Package loader reads a COMET2 program binary from disk into a Program
// descriptor ready to hand to vm.New, mirroring the teacher's ELF loader's
// shape (Program/Load) over spec.md §6's much simpler flat format: a
// COMET2 image has no section headers, so the whole stream loads as one
// segment starting at memory.StackSize.
package loader

import (
	"fmt"
	"os"

	"github.com/AumyF/comet2/memory"
)

// Program is a loaded COMET2 binary ready for execution.
type Program struct {
	// Memory holds the program loaded at memory.StackSize, per spec.md §6.
	Memory *memory.Memory
	// EntryPoint is always memory.StackSize: COMET2 has no separate entry
	// record, the program simply begins where the stack region ends.
	EntryPoint uint16
	// Size is the number of words the program occupied in the stream.
	Size int
}

// Load reads the COMET2 binary at path and returns a Program.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("loader: stat %s: %w", path, err)
	}

	mem, err := memory.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}

	return &Program{
		Memory:     mem,
		EntryPoint: memory.StackSize,
		Size:       int(info.Size()) / 2,
	}, nil
}
