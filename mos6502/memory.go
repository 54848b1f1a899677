package mos6502

const (
	MEM_SIZE    = 1 << 16
	MAX_ADDRESS = MEM_SIZE - 1
)

// memory is the flat, unbanked 64KB address space. Every address is
// valid and reads return the last value written.
type memory [MEM_SIZE]uint8

func (m *memory) read(addr uint16) uint8 {
	return m[addr]
}

func (m *memory) write(addr uint16, val uint8) {
	m[addr] = val
}

// read16 returns the two bytes at addr and addr+1 (lower byte is
// first). addr+1 wraps at the top of memory.
func (m *memory) read16(addr uint16) uint16 {
	lsb := uint16(m.read(addr))
	msb := uint16(m.read(addr + 1))

	return (msb << 8) | lsb
}

// read16Page behaves like read16, except that the high byte is
// fetched from the same page as the low byte. This is how the zero
// page pointers and the JMP indirect pointer are read.
func (m *memory) read16Page(addr uint16) uint16 {
	lsb := uint16(m.read(addr))
	msb := uint16(m.read((addr & 0xFF00) | uint16(uint8(addr)+1)))

	return (msb << 8) | lsb
}

// load copies data into memory starting at addr, stopping at the top
// of the address space. It returns the number of bytes copied.
func (m *memory) load(addr uint16, data []uint8) int {
	return copy(m[addr:], data)
}
