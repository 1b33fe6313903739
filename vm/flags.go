package vm

import "github.com/AumyF/comet2/word"

// Flags holds the three COMET2 condition bits. See spec.md §3.
type Flags struct {
	// OF is set by the last arithmetic/logical ALU operation that defines
	// it (overflow, carry, or borrow depending on the operation).
	OF bool
	// SF is the sign bit (bit 15) of the last ALU result that defines it.
	SF bool
	// ZF is whether the last ALU result that defines it was zero.
	ZF bool
}

// setSZ sets SF and ZF from result, leaving OF untouched. Callers set OF
// themselves per their own contract.
func (f *Flags) setSZ(result uint16) {
	f.SF = word.IsNegative(result)
	f.ZF = result == 0
}
