package vm

import (
	"github.com/AumyF/comet2/isa"
	"github.com/AumyF/comet2/memory"
	"github.com/AumyF/comet2/register"
)

// executor applies one instruction's effects to a machine state that has
// already had its PR advanced past the word(s) just fetched. It is a thin
// grouping of the COMET2 execution units (ALU, branch, stack, load/store,
// shift) over pointers to the in-flight next-state fields, mirroring the
// teacher's per-unit executor split (emu.ALU / emu.BranchUnit /
// emu.LoadStoreUnit) while staying single-struct, since COMET2's per-unit
// state is just "the same register file and flags," unlike ARM64's
// separate SIMD file.
type executor struct {
	mem   *memory.Memory
	reg   *register.File
	flags *Flags
	sp    *uint16
	pr    *uint16
}

// effectiveAddress computes E = (operand + GR[x]) mod 2^16 (spec.md
// glossary).
func (e *executor) effectiveAddress(operand uint16, x uint8) uint16 {
	return operand + e.reg.Index(x)
}

// executeOneWord dispatches a fully-decoded register-register
// instruction.
func (e *executor) executeOneWord(inst *isa.OneWord) error {
	switch inst.Kind {
	case isa.KindNOP:
		// No state change; flags preserved.
	case isa.KindLD:
		e.reg.Write(inst.R1, e.reg.Read(inst.R2))
		e.flags.setSZ(e.reg.Read(inst.R1))
		e.flags.OF = false
	case isa.KindADDA:
		e.addArithmetic(inst.R1, inst.R1, inst.R2)
	case isa.KindSUBA:
		e.subArithmetic(inst.R1, inst.R1, inst.R2)
	case isa.KindADDL:
		e.addLogical(inst.R1, inst.R1, inst.R2)
	case isa.KindSUBL:
		e.subLogical(inst.R1, inst.R1, inst.R2)
	case isa.KindAND:
		e.bitwise(inst.R1, inst.R1, inst.R2, func(a, b uint16) uint16 { return a & b })
	case isa.KindOR:
		e.bitwise(inst.R1, inst.R1, inst.R2, func(a, b uint16) uint16 { return a | b })
	case isa.KindXOR:
		e.bitwise(inst.R1, inst.R1, inst.R2, func(a, b uint16) uint16 { return a ^ b })
	case isa.KindCPA:
		e.compareArithmetic(inst.R1, inst.R2)
	case isa.KindCPL:
		e.compareLogical(inst.R1, inst.R2)
	case isa.KindPOP:
		e.pop(inst.R1)
	case isa.KindRET:
		*e.pr = e.mem.Read(*e.sp)
		*e.sp++
	}
	return nil
}

// executeTwoWord dispatches the second half of a latched two-word
// instruction, given the operand word just fetched.
func (e *executor) executeTwoWord(pend *isa.TwoWord, operand uint16) error {
	addr := e.effectiveAddress(operand, pend.X)

	switch pend.Kind {
	case isa.KindLD:
		e.reg.Write(pend.R, e.mem.Read(addr))
		e.flags.setSZ(e.reg.Read(pend.R))
		e.flags.OF = false
	case isa.KindST:
		e.mem.Write(addr, e.reg.Read(pend.R))
	case isa.KindLAD:
		e.reg.Write(pend.R, addr)
	case isa.KindADDA:
		e.addArithmeticMem(pend.R, addr)
	case isa.KindSUBA:
		e.subArithmeticMem(pend.R, addr)
	case isa.KindADDL:
		e.addLogicalMem(pend.R, addr)
	case isa.KindSUBL:
		e.subLogicalMem(pend.R, addr)
	case isa.KindAND:
		e.bitwiseMem(pend.R, addr, func(a, b uint16) uint16 { return a & b })
	case isa.KindOR:
		e.bitwiseMem(pend.R, addr, func(a, b uint16) uint16 { return a | b })
	case isa.KindXOR:
		e.bitwiseMem(pend.R, addr, func(a, b uint16) uint16 { return a ^ b })
	case isa.KindCPA:
		e.compareArithmeticMem(pend.R, addr)
	case isa.KindCPL:
		e.compareLogicalMem(pend.R, addr)
	case isa.KindSLA:
		e.shiftArithmeticLeft(pend.R, addr)
	case isa.KindSLL:
		e.shiftLogicalLeft(pend.R, addr)
	case isa.KindSRA:
		e.shiftArithmeticRight(pend.R, addr)
	case isa.KindSRL:
		e.shiftLogicalRight(pend.R, addr)
	case isa.KindJMI:
		if e.flags.SF {
			*e.pr = addr
		}
	case isa.KindJNZ:
		if !e.flags.ZF {
			*e.pr = addr
		}
	case isa.KindJZE:
		if e.flags.ZF {
			*e.pr = addr
		}
	case isa.KindJUMP:
		*e.pr = addr
	case isa.KindJPL:
		if !e.flags.SF && !e.flags.ZF {
			*e.pr = addr
		}
	case isa.KindJOV:
		if e.flags.OF {
			*e.pr = addr
		}
	case isa.KindPUSH:
		e.push(addr)
	case isa.KindCALL:
		e.push(*e.pr)
		*e.pr = addr
	}
	return nil
}

func (e *executor) pop(r uint8) {
	e.reg.Write(r, e.mem.Read(*e.sp))
	*e.sp++
}

func (e *executor) push(v uint16) {
	*e.sp--
	e.mem.Write(*e.sp, v)
}
