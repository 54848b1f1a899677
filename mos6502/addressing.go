package mos6502

const STACK_PAGE = 0x0100

// operand is the transient result of decoding one instruction: where
// its data lives and how many bytes the encoding occupies.
type operand struct {
	mode   uint8
	addr   uint16 // effective address; for IMMEDIATE, the address of the operand byte
	length uint8
}

// accumulator reports whether the instruction operates on the
// accumulator rather than on memory.
func (o operand) accumulator() bool {
	return o.mode == ACCUMULATOR
}

// resolve decodes the operand of the instruction whose opcode byte is
// at pc.
func (c *CPU) resolve(op opcode, pc uint16) operand {
	return operand{mode: op.mode, addr: c.operandAddr(op.mode, pc), length: op.bytes}
}

// operandAddr computes the effective address for mode, given the
// address of the opcode byte. All arithmetic wraps within 16 bits and
// zero page indexing wraps within the zero page.
func (c *CPU) operandAddr(mode uint8, pc uint16) uint16 {
	arg := pc + 1

	switch mode {
	case IMMEDIATE:
		return arg
	case ZERO_PAGE:
		return uint16(c.mem.read(arg))
	case ZERO_PAGE_X:
		return uint16(c.mem.read(arg) + c.x)
	case ZERO_PAGE_Y:
		return uint16(c.mem.read(arg) + c.y)
	case RELATIVE:
		// The displacement is relative to the instruction that follows
		// the two byte branch.
		return pc + 2 + uint16(int8(c.mem.read(arg)))
	case ABSOLUTE:
		return c.mem.read16(arg)
	case ABSOLUTE_X:
		return c.mem.read16(arg) + uint16(c.x)
	case ABSOLUTE_Y:
		return c.mem.read16(arg) + uint16(c.y)
	case INDIRECT:
		// JMP ($xxFF) takes its high byte from $xx00, not the next page.
		return c.mem.read16Page(c.mem.read16(arg))
	case INDIRECT_X:
		return c.mem.read16Page(uint16(c.mem.read(arg) + c.x))
	case INDIRECT_Y:
		return c.mem.read16Page(uint16(c.mem.read(arg))) + uint16(c.y)
	}

	// IMPLICIT and ACCUMULATOR have no memory operand.
	return 0
}
