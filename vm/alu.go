package vm

// Arithmetic and logical ALU operations. Every *Mem variant reads its
// second operand from e.mem at a computed effective address instead of a
// register; the flag contract is identical either way (spec.md §4.4).

func (e *executor) addArithmetic(dst, r1, r2 uint8) {
	op1, op2 := e.reg.ReadPairSigned(r1, r2)
	result := uint16(op1) + uint16(op2)
	e.reg.Write(dst, result)
	e.flags.OF = signedAddOverflow(op1, op2, int16(result))
	e.flags.setSZ(result)
}

func (e *executor) addArithmeticMem(dst uint8, addr uint16) {
	op1 := e.reg.ReadSigned(dst)
	op2 := int16(e.mem.Read(addr))
	result := uint16(op1) + uint16(op2)
	e.reg.Write(dst, result)
	e.flags.OF = signedAddOverflow(op1, op2, int16(result))
	e.flags.setSZ(result)
}

func (e *executor) subArithmetic(dst, r1, r2 uint8) {
	op1, op2 := e.reg.ReadPairSigned(r1, r2)
	result := uint16(op1) - uint16(op2)
	e.reg.Write(dst, result)
	e.flags.OF = signedSubOverflow(op1, op2, int16(result))
	e.flags.setSZ(result)
}

func (e *executor) subArithmeticMem(dst uint8, addr uint16) {
	op1 := e.reg.ReadSigned(dst)
	op2 := int16(e.mem.Read(addr))
	result := uint16(op1) - uint16(op2)
	e.reg.Write(dst, result)
	e.flags.OF = signedSubOverflow(op1, op2, int16(result))
	e.flags.setSZ(result)
}

func (e *executor) addLogical(dst, r1, r2 uint8) {
	op1, op2 := e.reg.ReadPair(r1, r2)
	result := op1 + op2
	e.reg.Write(dst, result)
	e.flags.OF = result < op1 // unsigned carry
	e.flags.setSZ(result)
}

func (e *executor) addLogicalMem(dst uint8, addr uint16) {
	op1 := e.reg.Read(dst)
	op2 := e.mem.Read(addr)
	result := op1 + op2
	e.reg.Write(dst, result)
	e.flags.OF = result < op1
	e.flags.setSZ(result)
}

func (e *executor) subLogical(dst, r1, r2 uint8) {
	op1, op2 := e.reg.ReadPair(r1, r2)
	result := op1 - op2
	e.reg.Write(dst, result)
	e.flags.OF = op1 < op2 // unsigned borrow
	e.flags.setSZ(result)
}

func (e *executor) subLogicalMem(dst uint8, addr uint16) {
	op1 := e.reg.Read(dst)
	op2 := e.mem.Read(addr)
	result := op1 - op2
	e.reg.Write(dst, result)
	e.flags.OF = op1 < op2
	e.flags.setSZ(result)
}

func (e *executor) bitwise(dst, r1, r2 uint8, op func(a, b uint16) uint16) {
	op1, op2 := e.reg.ReadPair(r1, r2)
	result := op(op1, op2)
	e.reg.Write(dst, result)
	e.flags.OF = false
	e.flags.setSZ(result)
}

func (e *executor) bitwiseMem(dst uint8, addr uint16, op func(a, b uint16) uint16) {
	result := op(e.reg.Read(dst), e.mem.Read(addr))
	e.reg.Write(dst, result)
	e.flags.OF = false
	e.flags.setSZ(result)
}

func (e *executor) compareArithmetic(r1, r2 uint8) {
	a, b := e.reg.ReadPairSigned(r1, r2)
	e.flags.OF = false
	e.flags.SF = a < b
	e.flags.ZF = a == b
}

func (e *executor) compareArithmeticMem(r uint8, addr uint16) {
	a := e.reg.ReadSigned(r)
	b := int16(e.mem.Read(addr))
	e.flags.OF = false
	e.flags.SF = a < b
	e.flags.ZF = a == b
}

func (e *executor) compareLogical(r1, r2 uint8) {
	a, b := e.reg.ReadPair(r1, r2)
	e.flags.OF = false
	e.flags.SF = a < b
	e.flags.ZF = a == b
}

func (e *executor) compareLogicalMem(r uint8, addr uint16) {
	a := e.reg.Read(r)
	b := e.mem.Read(addr)
	e.flags.OF = false
	e.flags.SF = a < b
	e.flags.ZF = a == b
}

// signedAddOverflow reports whether op1+op2 overflows 16-bit signed range:
// both operands share a sign and the result's sign differs from theirs.
func signedAddOverflow(op1, op2, result int16) bool {
	return (op1 < 0) == (op2 < 0) && (result < 0) != (op1 < 0)
}

// signedSubOverflow reports whether op1-op2 overflows 16-bit signed range:
// the operands have differing signs and the result's sign matches the
// subtrahend's rather than the minuend's.
func signedSubOverflow(op1, op2, result int16) bool {
	return (op1 < 0) != (op2 < 0) && (result < 0) == (op2 < 0)
}
