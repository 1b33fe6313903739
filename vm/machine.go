// Package vm implements the COMET2 fetch/decode/execute driver: the
// Machine that holds registers, flags, PR, SP, and memory, and advances
// one instruction at a time via Step.
package vm

import (
	"io"

	"github.com/AumyF/comet2/isa"
	"github.com/AumyF/comet2/memory"
	"github.com/AumyF/comet2/register"
)

// core is the Machine's value-semantics state: copying it copies the
// register file, flags, PR, SP, and pending slot, but not memory (memory
// is logically owned by the Machine and shared by pointer — see
// spec.md §5).
type core struct {
	reg     register.File
	flags   Flags
	pr      uint16
	sp      uint16
	pending *isa.TwoWord
}

// Machine holds the full state of a COMET2 virtual machine: the general
// registers, the OF/SF/ZF flags, the program register, the stack pointer,
// the pending-second-word latch, and the memory image.
type Machine struct {
	core
	mem     *memory.Memory
	decoder *isa.Decoder
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithPR overrides the initial program register. Mainly useful in tests
// that want to place a program at a specific address.
func WithPR(pr uint16) Option {
	return func(m *Machine) { m.pr = pr }
}

// WithSP overrides the initial stack pointer.
func WithSP(sp uint16) Option {
	return func(m *Machine) { m.sp = sp }
}

// New returns a Machine over mem with the initial state spec.md §6
// prescribes: GR0..GR7 = 0, PR = SP = memory.StackSize, all flags false,
// no pending second word.
func New(mem *memory.Memory, opts ...Option) *Machine {
	m := &Machine{
		mem:     mem,
		decoder: isa.NewDecoder(),
	}
	m.pr = memory.StackSize
	m.sp = memory.StackSize

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load builds a Machine from a program byte stream, per spec.md §6.
func Load(stream io.Reader, opts ...Option) (*Machine, error) {
	mem, err := memory.Load(stream)
	if err != nil {
		return nil, err
	}
	return New(mem, opts...), nil
}

// Registers returns the machine's general register file.
func (m *Machine) Registers() *register.File { return &m.reg }

// Flags returns the machine's current OF/SF/ZF state.
func (m *Machine) Flags() Flags { return m.flags }

// PR returns the current program register.
func (m *Machine) PR() uint16 { return m.pr }

// SP returns the current stack pointer.
func (m *Machine) SP() uint16 { return m.sp }

// Pending reports whether a two-word instruction is awaiting its operand,
// and if so, which one.
func (m *Machine) Pending() *isa.TwoWord { return m.pending }

// Memory returns the machine's memory image.
func (m *Machine) Memory() *memory.Memory { return m.mem }

// StepResult reports the outcome of a single Step call. It carries no
// error field: a failed step returns a non-nil error from Step itself and
// StepResult is the zero value in that case.
type StepResult struct {
	// Retired is true when this Step completed an instruction's effects
	// (a one-word instruction, or a two-word instruction's second fetch).
	// It is false when Step only latched a two-word instruction's first
	// half into Pending.
	Retired bool
	// Kind is the retired instruction's opcode kind. Meaningful only when
	// Retired is true.
	Kind isa.Kind
}

// Step fetches the word at PR, advances PR by one, and either executes a
// decoded one-word instruction, executes a latched two-word instruction's
// second half, or latches a newly-decoded two-word instruction's first
// half — per spec.md §4.5. On a decode error the machine is left
// completely unchanged and the error is returned (spec.md §7).
func (m *Machine) Step() (StepResult, error) {
	fetched := m.mem.Read(m.pr)
	next := m.core
	next.pr = m.pr + 1

	e := &executor{mem: m.mem, reg: &next.reg, flags: &next.flags, sp: &next.sp, pr: &next.pr}

	var result StepResult
	if m.pending != nil {
		pend := m.pending
		next.pending = nil
		if err := e.executeTwoWord(pend, fetched); err != nil {
			return StepResult{}, err
		}
		result = StepResult{Retired: true, Kind: pend.Kind}
	} else {
		inst, err := m.decoder.Decode(fetched)
		if err != nil {
			return StepResult{}, err
		}
		switch {
		case inst.OneWord != nil:
			if err := e.executeOneWord(inst.OneWord); err != nil {
				return StepResult{}, err
			}
			result = StepResult{Retired: true, Kind: inst.OneWord.Kind}
		case inst.TwoWord != nil:
			next.pending = inst.TwoWord
		}
	}

	m.core = next
	return result, nil
}
