package mos6502

// Status register bits
// 7  bit  0
// ---- ----
// NV1B DIZC
const (
	STATUS_FLAG_CARRY             = 1 << 0
	STATUS_FLAG_ZERO              = 1 << 1
	STATUS_FLAG_INTERRUPT_DISABLE = 1 << 2
	STATUS_FLAG_DECIMAL           = 1 << 3
	STATUS_FLAG_BREAK             = 1 << 4
	UNUSED_STATUS_FLAG            = 1 << 5
	STATUS_FLAG_OVERFLOW          = 1 << 6
	STATUS_FLAG_NEGATIVE          = 1 << 7
)

// Flags is the packed processor status byte (P). It is kept as a
// single byte because PHP, PLP, BRK and RTI move it to and from the
// stack as one.
type Flags uint8

func (f Flags) has(bit uint8) bool {
	return uint8(f)&bit != 0
}

func (f *Flags) set(bit uint8, on bool) {
	if on {
		*f |= Flags(bit)
	} else {
		*f &^= Flags(bit)
	}
}

func (f Flags) Carry() bool     { return f.has(STATUS_FLAG_CARRY) }
func (f Flags) Zero() bool      { return f.has(STATUS_FLAG_ZERO) }
func (f Flags) Interrupt() bool { return f.has(STATUS_FLAG_INTERRUPT_DISABLE) }
func (f Flags) Decimal() bool   { return f.has(STATUS_FLAG_DECIMAL) }
func (f Flags) Break() bool     { return f.has(STATUS_FLAG_BREAK) }
func (f Flags) Overflow() bool  { return f.has(STATUS_FLAG_OVERFLOW) }
func (f Flags) Negative() bool  { return f.has(STATUS_FLAG_NEGATIVE) }

func (f *Flags) SetCarry(on bool)     { f.set(STATUS_FLAG_CARRY, on) }
func (f *Flags) SetZero(on bool)      { f.set(STATUS_FLAG_ZERO, on) }
func (f *Flags) SetInterrupt(on bool) { f.set(STATUS_FLAG_INTERRUPT_DISABLE, on) }
func (f *Flags) SetDecimal(on bool)   { f.set(STATUS_FLAG_DECIMAL, on) }
func (f *Flags) SetBreak(on bool)     { f.set(STATUS_FLAG_BREAK, on) }
func (f *Flags) SetOverflow(on bool)  { f.set(STATUS_FLAG_OVERFLOW, on) }
func (f *Flags) SetNegative(on bool)  { f.set(STATUS_FLAG_NEGATIVE, on) }

// setNZ recomputes the negative and zero flags from a result byte.
func (f *Flags) setNZ(val uint8) {
	f.SetZero(val == 0)
	f.SetNegative(val&0x80 != 0)
}

// flagNames labels the status bits from bit 0 upwards.
var flagNames = [8]string{"C", "Z", "I", "D", "B", "-", "V", "N"}

// Bits returns the status bits ordered from bit 0 (carry) to bit 7
// (negative).
func (f Flags) Bits() [8]uint8 {
	var b [8]uint8
	for i := range b {
		b[i] = (uint8(f) >> i) & 0x01
	}
	return b
}

// FlagNames returns the column labels matching Bits.
func FlagNames() [8]string {
	return flagNames
}

func (f Flags) String() string {
	b := []byte("nv-bdizc")
	up := []byte("NV-BDIZC")
	for i := 0; i < 8; i++ {
		if f.has(1 << (7 - i)) {
			b[i] = up[i]
		}
	}
	return string(b)
}
