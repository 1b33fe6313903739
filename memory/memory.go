// Package memory provides the COMET2 machine's flat word-addressed memory.
package memory

import (
	"fmt"
	"io"

	"github.com/AumyF/comet2/word"
)

// Size is the number of addressable words. Addresses are 16-bit, so every
// value 0..65535 is a valid index.
const Size = 1 << 16

// StackSize is the number of words reserved at the bottom of memory for the
// downward-growing call/push stack. Program text loads starting at this
// address.
const StackSize = 256

// MaxProgramBytes is the largest byte stream Load will accept: every
// address from StackSize to Size-1 holds one loaded word, two bytes each.
const MaxProgramBytes = (Size - StackSize) * 2

// LoadError reports a failure to read or fit a program image.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load program: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// TooLarge is returned, wrapped in a LoadError, when the program stream
// would not fit above the reserved stack region.
var TooLarge = fmt.Errorf("program image exceeds %d bytes", MaxProgramBytes)

// AddressOutOfRange is the error kind spec.md reserves for an out-of-range
// memory index. With 16-bit addresses over a 65,536-word array every
// address is valid, so this is defined for symmetry with the spec's error
// model but never actually returned.
type AddressOutOfRange struct {
	Address int
}

func (e *AddressOutOfRange) Error() string {
	return fmt.Sprintf("address out of range: %d", e.Address)
}

// Memory is a fixed 65,536-word array. Addresses 0..StackSize-1 are the
// reserved stack region; addresses StackSize.. hold the loaded program.
type Memory struct {
	words [Size]uint16
}

// New returns a zero-initialized memory image.
func New() *Memory {
	return &Memory{}
}

// Load reads stream to end-of-input, pairs consecutive bytes big-endian
// (first byte high) into words, and stores them starting at address
// StackSize. A trailing unpaired byte is discarded. Addresses below
// StackSize, and addresses past the loaded image, are left zero.
func Load(stream io.Reader) (*Memory, error) {
	buf, err := io.ReadAll(stream)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	if len(buf) > MaxProgramBytes {
		return nil, &LoadError{Err: TooLarge}
	}

	m := New()
	n := len(buf) / 2
	for i := 0; i < n; i++ {
		m.words[StackSize+i] = word.Pack(buf[2*i], buf[2*i+1])
	}
	return m, nil
}

// Read returns the word at addr.
func (m *Memory) Read(addr uint16) uint16 {
	return m.words[addr]
}

// Write stores w at addr.
func (m *Memory) Write(addr uint16, w uint16) {
	m.words[addr] = w
}
