package mos6502

import (
	"fmt"
)

// Disassemble renders the instruction at addr, prefixed by its address
// and raw bytes. Unsupported bytes render as a one byte data
// directive.
func (c *CPU) Disassemble(addr uint16) string {
	s, _ := c.disassemble(addr)
	return s
}

// DisassembleN renders n consecutive instructions starting at addr.
func (c *CPU) DisassembleN(addr uint16, n int) []string {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, l := c.disassemble(addr)
		lines = append(lines, s)
		addr += uint16(l)
	}
	return lines
}

func (c *CPU) disassemble(addr uint16) (string, uint8) {
	b := c.mem.read(addr)
	op := opcodes[b]
	if !op.defined() {
		return fmt.Sprintf("%04X  %02X        .db $%02X", addr, b, b), 1
	}

	lo := c.mem.read(addr + 1)
	word := c.mem.read16(addr + 1)

	var raw, text string
	switch op.bytes {
	case 1:
		raw = fmt.Sprintf("%02X", b)
	case 2:
		raw = fmt.Sprintf("%02X %02X", b, lo)
	default:
		raw = fmt.Sprintf("%02X %02X %02X", b, lo, uint8(word>>8))
	}

	switch op.mode {
	case IMPLICIT:
		text = op.name
	case ACCUMULATOR:
		text = op.name + " A"
	case IMMEDIATE:
		text = fmt.Sprintf("%s #$%02X", op.name, lo)
	case ZERO_PAGE:
		text = fmt.Sprintf("%s $%02X", op.name, lo)
	case ZERO_PAGE_X:
		text = fmt.Sprintf("%s $%02X,X", op.name, lo)
	case ZERO_PAGE_Y:
		text = fmt.Sprintf("%s $%02X,Y", op.name, lo)
	case RELATIVE:
		text = fmt.Sprintf("%s $%04X", op.name, addr+2+uint16(int8(lo)))
	case ABSOLUTE:
		text = fmt.Sprintf("%s $%04X", op.name, word)
	case ABSOLUTE_X:
		text = fmt.Sprintf("%s $%04X,X", op.name, word)
	case ABSOLUTE_Y:
		text = fmt.Sprintf("%s $%04X,Y", op.name, word)
	case INDIRECT:
		text = fmt.Sprintf("%s ($%04X)", op.name, word)
	case INDIRECT_X:
		text = fmt.Sprintf("%s ($%02X,X)", op.name, lo)
	case INDIRECT_Y:
		text = fmt.Sprintf("%s ($%02X),Y", op.name, lo)
	}

	return fmt.Sprintf("%04X  %-8s  %s", addr, raw, text), op.bytes
}
