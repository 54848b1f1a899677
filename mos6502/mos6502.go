// package mos6502 implements the MOS Technologies 6502 processor
package mos6502

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedOpcode is returned by Step when the byte at the
// program counter has no entry in the opcode table.
var ErrUnsupportedOpcode = errors.New("unsupported opcode")

const STACK_TOP = 0xFF

// type CPU implements all of the machine state for the 6502
type CPU struct {
	acc    uint8  // main register
	x, y   uint8  // index registers
	status Flags  // a register for storing various status bits
	sp     uint8  // stack pointer - stack is 0x0100-0x01FF so only 8 bits needed
	pc     uint16 // the program counter
	mem    memory

	entry  uint16 // where reset points the program counter
	cycles uint64 // approximate; no page crossing penalties
}

// Registers is a copy of the visible register file.
type Registers struct {
	A, X, Y uint8
	P       Flags
	SP      uint8
	PC      uint16
}

func (r Registers) String() string {
	return fmt.Sprintf("A: 0x%02x X: 0x%02x Y: 0x%02x SP: 0x%02x PC: 0x%04x P: %s", r.A, r.X, r.Y, r.SP, r.PC, r.P)
}

// New returns a CPU with zeroed memory whose program counter starts
// at 0.
func New() *CPU {
	return NewWithEntry(0)
}

// NewWithEntry returns a CPU that starts, and resets, to entry.
func NewWithEntry(entry uint16) *CPU {
	c := &CPU{entry: entry}
	c.Reset()
	return c
}

// Reset re-establishes the initial register state. Memory is left as
// is.
func (c *CPU) Reset() {
	c.acc, c.x, c.y = 0, 0, 0
	c.status = 0
	c.sp = STACK_TOP
	c.pc = c.entry
	c.cycles = 0
}

// SetEntry changes the address Reset points the program counter at.
func (c *CPU) SetEntry(entry uint16) {
	c.entry = entry
}

func (c *CPU) Entry() uint16 {
	return c.entry
}

func (c *CPU) PC() uint16 {
	return c.pc
}

func (c *CPU) SetPC(addr uint16) {
	c.pc = addr
}

func (c *CPU) Cycles() uint64 {
	return c.cycles
}

func (c *CPU) Registers() Registers {
	return Registers{A: c.acc, X: c.x, Y: c.y, P: c.status, SP: c.sp, PC: c.pc}
}

// SetRegisters overwrites the whole register file.
func (c *CPU) SetRegisters(r Registers) {
	c.acc, c.x, c.y = r.A, r.X, r.Y
	c.status = r.P
	c.sp = r.SP
	c.pc = r.PC
}

func (c *CPU) Read(addr uint16) uint8 {
	return c.mem.read(addr)
}

func (c *CPU) Write(addr uint16, val uint8) {
	c.mem.write(addr, val)
}

// LoadProgram copies data into memory at addr, stopping at the top of
// the address space, and returns the number of bytes copied.
func (c *CPU) LoadProgram(addr uint16, data []uint8) int {
	return c.mem.load(addr, data)
}

// Step executes exactly one instruction. If the opcode at the program
// counter is unsupported, no state is changed and the returned error
// wraps ErrUnsupportedOpcode.
func (c *CPU) Step() error {
	pc := c.pc
	op := opcodes[c.mem.read(pc)]
	if !op.defined() {
		return fmt.Errorf("%w: 0x%02x at 0x%04x", ErrUnsupportedOpcode, c.mem.read(pc), pc)
	}

	o := c.resolve(op, pc)
	// Handlers that jump, branch or return overwrite this.
	c.pc = pc + uint16(o.length)
	handlers[op.inst](c, o)
	c.cycles += uint64(op.cycles)

	return nil
}

// Decode returns the mnemonic, addressing mode name and encoded length
// of the opcode at addr, or ok == false if it is unsupported.
func (c *CPU) Decode(addr uint16) (name, mode string, length uint8, ok bool) {
	op := opcodes[c.mem.read(addr)]
	if !op.defined() {
		return "", "", 1, false
	}
	return op.name, modenames[op.mode], op.bytes, true
}

func (c *CPU) getStackAddr() uint16 {
	return STACK_PAGE + uint16(c.sp)
}

// StackAddr returns the address the next push will write to.
func (c *CPU) StackAddr() uint16 {
	return c.getStackAddr()
}

func (c *CPU) pushStack(val uint8) {
	c.mem.write(c.getStackAddr(), val)
	c.sp--
}

func (c *CPU) popStack() uint8 {
	c.sp++
	return c.mem.read(c.getStackAddr())
}

// pushAddress pushes the high byte first, so the address sits in
// memory low byte first.
func (c *CPU) pushAddress(addr uint16) {
	c.pushStack(uint8(addr >> 8))
	c.pushStack(uint8(addr & 0x00FF))
}

func (c *CPU) popAddress() uint16 {
	lsb := uint16(c.popStack())
	msb := uint16(c.popStack())
	return (msb << 8) | lsb
}

func (c *CPU) String() string {
	var sb strings.Builder

	sb.WriteString(c.Registers().String())
	sb.WriteString(fmt.Sprintf(" cycles: %d\n", c.cycles))
	sb.WriteString(c.Disassemble(c.pc))

	return sb.String()
}
