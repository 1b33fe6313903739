// Package isa provides the COMET2 opcode table and instruction decoder.
//
// A fetched word has the shape OP[15:8] | R1_or_R[7:4] | R2_or_X[3:0]. Decode
// classifies it as a one-word (register-register) instruction or a
// two-word instruction whose address operand is fetched on the following
// step — it never executes anything itself; see package vm for that.
package isa

import "fmt"

// Kind identifies an opcode's semantics, independent of its one-word or
// two-word encoding.
type Kind uint8

// The COMET2 opcode kinds this core decodes. I/O instructions (SVC, IN,
// OUT) and RPUSH/RPOP are absent — see SPEC_FULL.md §1.3.
const (
	KindNOP Kind = iota
	KindLD
	KindST
	KindLAD
	KindADDA
	KindSUBA
	KindADDL
	KindSUBL
	KindAND
	KindOR
	KindXOR
	KindCPA
	KindCPL
	KindSLA
	KindSLL
	KindSRA
	KindSRL
	KindJMI
	KindJNZ
	KindJZE
	KindJUMP
	KindJPL
	KindJOV
	KindPUSH
	KindPOP
	KindCALL
	KindRET
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var kindNames = map[Kind]string{
	KindNOP: "NOP", KindLD: "LD", KindST: "ST", KindLAD: "LAD",
	KindADDA: "ADDA", KindSUBA: "SUBA", KindADDL: "ADDL", KindSUBL: "SUBL",
	KindAND: "AND", KindOR: "OR", KindXOR: "XOR",
	KindCPA: "CPA", KindCPL: "CPL",
	KindSLA: "SLA", KindSLL: "SLL", KindSRA: "SRA", KindSRL: "SRL",
	KindJMI: "JMI", KindJNZ: "JNZ", KindJZE: "JZE", KindJUMP: "JUMP",
	KindJPL: "JPL", KindJOV: "JOV",
	KindPUSH: "PUSH", KindPOP: "POP", KindCALL: "CALL", KindRET: "RET",
}

// form records whether an opcode is encoded as one word or two.
type form uint8

const (
	oneWord form = iota
	twoWord
)

type opcodeInfo struct {
	kind Kind
	form form
}

// opcodeTable is keyed by the fetched word's high byte (word & 0xFF00).
// Built from spec.md §4.3.
var opcodeTable = map[uint16]opcodeInfo{
	0x0000: {KindNOP, oneWord},
	0x1000: {KindLD, twoWord},
	0x1100: {KindST, twoWord},
	0x1200: {KindLAD, twoWord},
	0x1400: {KindLD, oneWord},
	0x2000: {KindADDA, twoWord},
	0x2100: {KindSUBA, twoWord},
	0x2200: {KindADDL, twoWord},
	0x2300: {KindSUBL, twoWord},
	0x2400: {KindADDA, oneWord},
	0x2500: {KindSUBA, oneWord},
	0x2600: {KindADDL, oneWord},
	0x2700: {KindSUBL, oneWord},
	0x3000: {KindAND, twoWord},
	0x3100: {KindOR, twoWord},
	0x3200: {KindXOR, twoWord},
	0x3400: {KindAND, oneWord},
	0x3500: {KindOR, oneWord},
	0x3600: {KindXOR, oneWord},
	0x4000: {KindCPA, twoWord},
	0x4100: {KindCPL, twoWord},
	0x4400: {KindCPA, oneWord},
	0x4500: {KindCPL, oneWord},
	0x5000: {KindSLA, twoWord},
	0x5100: {KindSLL, twoWord},
	0x5200: {KindSRA, twoWord},
	0x5300: {KindSRL, twoWord},
	0x6100: {KindJMI, twoWord},
	0x6200: {KindJNZ, twoWord},
	0x6300: {KindJZE, twoWord},
	0x6400: {KindJUMP, twoWord},
	0x6500: {KindJPL, twoWord},
	0x6600: {KindJOV, twoWord},
	0x7000: {KindPUSH, twoWord},
	0x7100: {KindPOP, oneWord},
	0x8000: {KindCALL, twoWord},
	0x8100: {KindRET, oneWord},
}

// UnknownOpcode is returned when a fetched word's high byte is not in the
// opcode table.
type UnknownOpcode struct {
	Word uint16
}

func (e *UnknownOpcode) Error() string {
	return fmt.Sprintf("unknown opcode: 0x%04X", e.Word)
}

// BadRegisterField is returned when a decoded register nibble exceeds 7.
type BadRegisterField struct {
	R1OrR, R2OrX uint8
}

func (e *BadRegisterField) Error() string {
	return fmt.Sprintf("bad register field: r1/r=%d r2/x=%d", e.R1OrR, e.R2OrX)
}

// OneWord is a fully-decoded register-register instruction.
type OneWord struct {
	Kind   Kind
	R1, R2 uint8
}

// TwoWord is the first-fetch half of a two-word instruction: its address
// operand has not yet been fetched. The driver latches this and consumes
// the next fetched word as the operand (spec.md §4.5).
type TwoWord struct {
	Kind Kind
	R, X uint8
}

// Instruction is the decoded form of a fetched word: exactly one of
// OneWord or TwoWord is non-nil.
type Instruction struct {
	OneWord *OneWord
	TwoWord *TwoWord
}

// Decoder classifies fetched words into Instructions. It is stateless;
// any number of decoders may share one opcode table.
type Decoder struct{}

// NewDecoder returns a ready-to-use Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode classifies a fetched word per spec.md §4.3.
func (d *Decoder) Decode(word uint16) (Instruction, error) {
	op := word & 0xFF00
	r1OrR := uint8((word >> 4) & 0x0F)
	r2OrX := uint8(word & 0x0F)

	if r1OrR > 7 || r2OrX > 7 {
		return Instruction{}, &BadRegisterField{R1OrR: r1OrR, R2OrX: r2OrX}
	}

	info, ok := opcodeTable[op]
	if !ok {
		return Instruction{}, &UnknownOpcode{Word: word}
	}

	if info.form == oneWord {
		return Instruction{OneWord: &OneWord{Kind: info.kind, R1: r1OrR, R2: r2OrX}}, nil
	}
	return Instruction{TwoWord: &TwoWord{Kind: info.kind, R: r1OrR, X: r2OrX}}, nil
}
