// Package register provides the COMET2 general register file.
package register

import "fmt"

// Count is the number of general registers, GR0..GR7.
const Count = 8

// BadNumber is returned when a register index outside 0..Count-1 is used.
// The architecture leaves out-of-range register fields undefined; this
// implementation treats reaching one as a programming error in the caller
// (the decoder is the only place register numbers come from, and it never
// produces one outside 0..7 — see isa.BadRegisterField).
type BadNumber struct {
	Number uint8
}

func (e *BadNumber) Error() string {
	return fmt.Sprintf("register number out of range: %d", e.Number)
}

// File holds the 8 general-purpose registers GR0..GR7. Any register may
// act as an index register; none is special-cased (see SPEC_FULL.md §1.6).
type File struct {
	gr [Count]uint16
}

// Read returns the unsigned value of GRn.
func (f *File) Read(n uint8) uint16 {
	if n >= Count {
		panic(&BadNumber{Number: n})
	}
	return f.gr[n]
}

// ReadSigned returns GRn reinterpreted as a two's-complement signed value.
func (f *File) ReadSigned(n uint8) int16 {
	return int16(f.Read(n))
}

// ReadPair returns the unsigned values of GRa and GRb, in that order.
func (f *File) ReadPair(a, b uint8) (uint16, uint16) {
	return f.Read(a), f.Read(b)
}

// ReadPairSigned returns the signed values of GRa and GRb, in that order.
func (f *File) ReadPairSigned(a, b uint8) (int16, int16) {
	return f.ReadSigned(a), f.ReadSigned(b)
}

// Write stores w into GRn.
func (f *File) Write(n uint8, w uint16) {
	if n >= Count {
		panic(&BadNumber{Number: n})
	}
	f.gr[n] = w
}

// Index returns GR[x]'s unsigned contribution to an effective address
// computation. All eight registers participate identically; GR0 is not
// special-cased (spec.md §4.2).
func (f *File) Index(x uint8) uint16 {
	return f.Read(x)
}

// Snapshot returns a copy of the 8 register values, GR0 first.
func (f *File) Snapshot() [Count]uint16 {
	return f.gr
}
