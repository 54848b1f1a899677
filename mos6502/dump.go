package mos6502

// Snapshot is a read-only copy of the register file and a range of
// memory, for diagnostics.
type Snapshot struct {
	Registers Registers
	Start     uint16
	Memory    []uint8
}

// Status returns the status byte captured in the snapshot.
func (s Snapshot) Status() Flags {
	return s.Registers.P
}

// Dump copies memory from low to high, inclusive. If low > high the
// memory slice is empty. Dump never modifies the CPU.
func (c *CPU) Dump(low, high uint16) Snapshot {
	s := Snapshot{Registers: c.Registers(), Start: low}
	if low > high {
		s.Memory = []uint8{}
		return s
	}

	s.Memory = make([]uint8, int(high)-int(low)+1)
	copy(s.Memory, c.mem[low:int(high)+1])

	return s
}
