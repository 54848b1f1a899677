package mos6502

import (
	"testing"
)

func TestFlagInstructions(t *testing.T) {
	cases := []struct {
		opcode uint8
		status uint8
		want   uint8
	}{
		{0x38, 0x00, 0x01}, // SEC
		{0x38, 0xF0, 0xF1},
		{0x38, 0xFF, 0xFF},
		{0xF8, 0x00, 0x08}, // SED
		{0xF8, 0xF0, 0xF8},
		{0xF8, 0xF9, 0xF9},
		{0x78, 0x00, 0x04}, // SEI
		{0x78, 0xF3, 0xF7},
		{0x18, 0x01, 0x00}, // CLC
		{0x18, 0xFF, 0xFE},
		{0x18, 0xF0, 0xF0},
		{0xD8, 0x08, 0x00}, // CLD
		{0xD8, 0xFF, 0xF7},
		{0xD8, 0xF0, 0xF0},
		{0x58, 0x04, 0x00}, // CLI
		{0x58, 0xFF, 0xFB},
		{0xB8, 0x40, 0x00}, // CLV
		{0xB8, 0x4F, 0x0F},
		{0xB8, 0xFF, 0xBF},
	}

	for i, tc := range cases {
		c := newTestCPU(tc.opcode)
		c.status = Flags(tc.status)
		mustStep(t, c, 1)
		if uint8(c.status) != tc.want || c.pc != testOrigin+1 {
			t.Errorf("%d: Wanted 0x%02x, got 0x%02x (pc 0x%04x)", i, tc.want, uint8(c.status), c.pc)
		}
	}
}

func TestOpDEXINXDEYINY(t *testing.T) {
	cases := []struct {
		opcode     uint8
		reg        uint8
		wantReg    uint8
		wantStatus uint8
	}{
		{0xCA, 1, 0, 0x02}, // DEX
		{0xCA, 0, 255, 0x80},
		{0xCA, 128, 127, 0x00},
		{0xCA, 255, 254, 0x80},
		{0xE8, 1, 2, 0x00}, // INX
		{0xE8, 127, 128, 0x80},
		{0xE8, 255, 0, 0x02},
		{0x88, 1, 0, 0x02}, // DEY
		{0x88, 0, 255, 0x80},
		{0x88, 128, 127, 0x00},
		{0xC8, 1, 2, 0x00}, // INY
		{0xC8, 255, 0, 0x02},
		{0xC8, 254, 255, 0x80},
	}

	for i, tc := range cases {
		c := newTestCPU(tc.opcode)
		reg := &c.x
		if tc.opcode == 0x88 || tc.opcode == 0xC8 {
			reg = &c.y
		}
		*reg = tc.reg
		mustStep(t, c, 1)
		if *reg != tc.wantReg || uint8(c.status) != tc.wantStatus {
			t.Errorf("%d: Wanted %d (status: 0x%02x), got %d (status 0x%02x)", i, tc.wantReg, tc.wantStatus, *reg, uint8(c.status))
		}
	}
}

func TestOpNOP(t *testing.T) {
	cases := []struct {
		pc         uint16
		status     uint8
		wantPC     uint16
		wantStatus uint8
	}{
		{0, 0xFF, 1, 0xFF},
		{10, 0x00, 11, 0x00},
		{0xFFFF, 0x00, 0x0000, 0x00},
	}

	for i, tc := range cases {
		c := New()
		c.Write(tc.pc, 0xEA)
		c.pc = tc.pc
		c.status = Flags(tc.status)
		mustStep(t, c, 1)
		if c.pc != tc.wantPC || uint8(c.status) != tc.wantStatus {
			t.Errorf("%d: Wanted %d (status 0x%02x), got %d (status: 0x%02x)", i, tc.wantPC, tc.wantStatus, c.pc, uint8(c.status))
		}
	}
}

func TestLogical(t *testing.T) {
	cases := []struct {
		opcode     uint8
		acc        uint8
		op1        uint8
		want       uint8
		wantStatus uint8
	}{
		{0x29, 0x00, 0x01, 0x00, 0x02}, // AND
		{0x29, 0x01, 0x01, 0x01, 0x00},
		{0x29, 0xFF, 0xF0, 0xF0, 0x80},
		{0x49, 0x00, 0x01, 0x01, 0x00}, // EOR
		{0x49, 0x01, 0x01, 0x00, 0x02},
		{0x49, 0xFF, 0xF0, 0x0F, 0x00},
		{0x49, 0xFF, 0x0F, 0xF0, 0x80},
		{0x09, 0x00, 0x00, 0x00, 0x02}, // ORA
		{0x09, 0x80, 0x01, 0x81, 0x80},
		{0x09, 0x10, 0x01, 0x11, 0x00},
	}

	for i, tc := range cases {
		c := newTestCPU(tc.opcode, tc.op1)
		c.acc = tc.acc
		mustStep(t, c, 1)
		if c.acc != tc.want || uint8(c.status) != tc.wantStatus {
			t.Errorf("%d: Got 0x%02x (0x%02x), want 0x%02x (0x%02x)", i, c.acc, uint8(c.status), tc.want, tc.wantStatus)
		}
	}
}

func TestIncDecMemory(t *testing.T) {
	cases := []struct {
		opcode     uint8
		op1        uint8
		want       uint8
		wantStatus uint8
	}{
		{0xC6, 0x00, 0xFF, 0x80}, // DEC
		{0xC6, 0x01, 0x00, 0x02},
		{0xC6, 0xFF, 0xFE, 0x80},
		{0xC6, 0x02, 0x01, 0x00},
		{0xE6, 0x00, 0x01, 0x00}, // INC
		{0xE6, 0xFF, 0x00, 0x02},
		{0xE6, 0xFE, 0xFF, 0x80},
	}

	for i, tc := range cases {
		c := newTestCPU(tc.opcode, 0x40)
		c.Write(0x40, tc.op1)
		mustStep(t, c, 1)
		if got := c.Read(0x40); got != tc.want || uint8(c.status) != tc.wantStatus {
			t.Errorf("%d: Got 0x%02x (0x%02x), want 0x%02x (0x%02x)", i, got, uint8(c.status), tc.want, tc.wantStatus)
		}
	}
}

// TestADCFlags checks every pair of operands with the carry clear.
func TestADCFlags(t *testing.T) {
	c := New()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			c.Write(testOrigin, 0x69)
			c.Write(testOrigin+1, uint8(b))
			c.pc = testOrigin
			c.status = 0
			c.acc = uint8(a)
			mustStep(t, c, 1)

			sum := a + b
			res := uint8(sum)
			wantC := sum > 0xFF
			wantV := (a&0x80) == (b&0x80) && int(res&0x80) != (a&0x80)

			if c.acc != res || c.status.Carry() != wantC || c.status.Overflow() != wantV || c.status.Zero() != (res == 0) || c.status.Negative() != (res >= 0x80) {
				t.Fatalf("0x%02x + 0x%02x: got 0x%02x %s, want 0x%02x C=%t V=%t", a, b, c.acc, c.status, res, wantC, wantV)
			}
		}
	}
}

func TestADCSBC(t *testing.T) {
	cases := []struct {
		opcode     uint8
		acc, op1   uint8
		carry      bool
		want       uint8
		wantStatus uint8
	}{
		{0x69, 0x01, 0x01, true, 0x03, 0x00},  // ADC carry in
		{0x69, 0xFF, 0x00, true, 0x00, 0x03},  // carry out, zero
		{0x69, 0x7F, 0x00, true, 0x80, 0xC0},  // overflow from carry in
		{0xE9, 0x05, 0x03, true, 0x02, 0x01},  // SBC no borrow
		{0xE9, 0x05, 0x03, false, 0x01, 0x01}, // borrow in
		{0xE9, 0x03, 0x05, true, 0xFE, 0x80},  // borrow out
		{0xE9, 0x05, 0x05, true, 0x00, 0x03},
		{0xE9, 0x80, 0x01, true, 0x7F, 0x41}, // -128 - 1 overflows
		{0xE9, 0x7F, 0xFF, true, 0x80, 0xC0}, // 127 - -1 overflows
	}

	for i, tc := range cases {
		c := newTestCPU(tc.opcode, tc.op1)
		c.acc = tc.acc
		c.status.SetCarry(tc.carry)
		mustStep(t, c, 1)
		if c.acc != tc.want || uint8(c.status) != tc.wantStatus {
			t.Errorf("%d: Got 0x%02x (0x%02x), want 0x%02x (0x%02x)", i, c.acc, uint8(c.status), tc.want, tc.wantStatus)
		}
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		opcode     uint8
		reg, op1   uint8
		wantStatus uint8
	}{
		{0xC9, 0x10, 0x10, 0x03}, // CMP equal
		{0xC9, 0x20, 0x10, 0x01}, // greater
		{0xC9, 0x10, 0x20, 0x80}, // less
		{0xC9, 0x00, 0x01, 0x80},
		{0xC9, 0xFF, 0x00, 0x81},
		{0xE0, 0x05, 0x05, 0x03}, // CPX
		{0xE0, 0x04, 0x05, 0x80},
		{0xC0, 0x06, 0x05, 0x01}, // CPY
		{0xC0, 0x00, 0x80, 0x80},
	}

	for i, tc := range cases {
		c := newTestCPU(tc.opcode, tc.op1)
		switch tc.opcode {
		case 0xE0:
			c.x = tc.reg
		case 0xC0:
			c.y = tc.reg
		default:
			c.acc = tc.reg
		}
		mustStep(t, c, 1)
		if uint8(c.status) != tc.wantStatus {
			t.Errorf("%d: Got 0x%02x, want 0x%02x", i, uint8(c.status), tc.wantStatus)
		}
		if c.acc != 0 && c.acc != tc.reg {
			t.Errorf("%d: compare changed the accumulator to 0x%02x", i, c.acc)
		}
	}
}

func TestShifts(t *testing.T) {
	cases := []struct {
		opcode     uint8
		val        uint8
		carry      bool
		want       uint8
		wantStatus uint8
	}{
		{0x0A, 0x81, false, 0x02, 0x01}, // ASL A
		{0x0A, 0x40, false, 0x80, 0x80},
		{0x0A, 0x80, false, 0x00, 0x03},
		{0x4A, 0x01, false, 0x00, 0x03}, // LSR A
		{0x4A, 0x82, true, 0x41, 0x00},
		{0x2A, 0x80, true, 0x01, 0x01}, // ROL A
		{0x2A, 0x40, false, 0x80, 0x80},
		{0x2A, 0x80, false, 0x00, 0x03},
		{0x6A, 0x01, true, 0x80, 0x81}, // ROR A
		{0x6A, 0x02, false, 0x01, 0x00},
		{0x6A, 0x01, false, 0x00, 0x03},
	}

	for i, tc := range cases {
		c := newTestCPU(tc.opcode)
		c.acc = tc.val
		c.status.SetCarry(tc.carry)
		c.Write(0x0000, 0x5A)
		mustStep(t, c, 1)
		if c.acc != tc.want || uint8(c.status) != tc.wantStatus {
			t.Errorf("%d: Got 0x%02x (0x%02x), want 0x%02x (0x%02x)", i, c.acc, uint8(c.status), tc.want, tc.wantStatus)
		}
		if got := c.Read(0x0000); got != 0x5A {
			t.Errorf("%d: accumulator shift touched 0x0000: 0x%02x", i, got)
		}

		// Same operation on a zero page cell (the memory opcode is
		// the accumulator opcode minus 4).
		c = newTestCPU(tc.opcode-4, 0x30)
		c.Write(0x30, tc.val)
		c.acc = 0x5A
		c.status.SetCarry(tc.carry)
		mustStep(t, c, 1)
		if got := c.Read(0x30); got != tc.want || uint8(c.status) != tc.wantStatus || c.acc != 0x5A {
			t.Errorf("%d: memory: Got 0x%02x (0x%02x), want 0x%02x (0x%02x)", i, got, uint8(c.status), tc.want, tc.wantStatus)
		}
	}
}

func TestBIT(t *testing.T) {
	cases := []struct {
		acc, mem   uint8
		status     uint8
		wantStatus uint8
	}{
		{0xFF, 0xC0, 0x00, 0xC0},
		{0x0F, 0xC0, 0x00, 0xC2},
		{0x01, 0x01, 0xC2, 0x00},
		{0x00, 0x40, 0x01, 0x43},
	}

	for i, tc := range cases {
		c := newTestCPU(0x24, 0x10)
		c.Write(0x10, tc.mem)
		c.acc = tc.acc
		c.status = Flags(tc.status)
		mustStep(t, c, 1)
		if uint8(c.status) != tc.wantStatus || c.acc != tc.acc {
			t.Errorf("%d: Got 0x%02x, want 0x%02x", i, uint8(c.status), tc.wantStatus)
		}
	}
}

func TestLoadsAndTransfers(t *testing.T) {
	cases := []struct {
		name       string
		prog       []uint8
		want       Registers
		wantStatus uint8
	}{
		{"LDA imm", []uint8{0xA9, 0x80}, Registers{A: 0x80}, 0x80},
		{"LDX imm", []uint8{0xA2, 0x00}, Registers{}, 0x02},
		{"LDY imm", []uint8{0xA0, 0x7F}, Registers{Y: 0x7F}, 0x00},
		{"TAX", []uint8{0xA9, 0x81, 0xAA}, Registers{A: 0x81, X: 0x81}, 0x80},
		{"TAY", []uint8{0xA9, 0x00, 0xA8}, Registers{}, 0x02},
		{"TXA", []uint8{0xA2, 0x05, 0x8A}, Registers{A: 0x05, X: 0x05}, 0x00},
		{"TYA", []uint8{0xA0, 0xF0, 0x98}, Registers{A: 0xF0, Y: 0xF0}, 0x80},
		{"TSX", []uint8{0xBA}, Registers{X: 0xFF}, 0x80},
		{"TXS keeps flags", []uint8{0xA2, 0x00, 0x9A}, Registers{}, 0x02},
	}

	for i, tc := range cases {
		c := newTestCPU(tc.prog...)
		// count instructions by decoding
		n := 0
		for a := uint16(testOrigin); a < testOrigin+uint16(len(tc.prog)); n++ {
			_, _, l, _ := c.Decode(a)
			a += uint16(l)
		}
		mustStep(t, c, n)

		got := c.Registers()
		if got.A != tc.want.A || got.X != tc.want.X || got.Y != tc.want.Y || uint8(got.P) != tc.wantStatus {
			t.Errorf("%d: %s: Got %s, want A=%02x X=%02x Y=%02x P=%02x", i, tc.name, got, tc.want.A, tc.want.X, tc.want.Y, tc.wantStatus)
		}
	}

	c := newTestCPU(0xA2, 0x40, 0x9A)
	mustStep(t, c, 2)
	if c.sp != 0x40 {
		t.Errorf("TXS: Got sp 0x%02x, want 0x40", c.sp)
	}
}

func TestStoreThenLoad(t *testing.T) {
	addrs := []uint16{0x0000, 0x00FF, 0x0200, 0x1234, 0x7FFF}
	vals := []uint8{0x00, 0x01, 0x7F, 0x80, 0xFF}

	for i, addr := range addrs {
		for _, v := range vals {
			for _, status := range []uint8{0x00, 0xFF} {
				// STA abs; LDA #$00; LDA abs
				c := newTestCPU(0x8D, uint8(addr), uint8(addr>>8), 0xA9, 0x00, 0xAD, uint8(addr), uint8(addr>>8))
				c.acc = v
				c.status = Flags(status)
				mustStep(t, c, 3)
				if c.acc != v || c.Read(addr) != v {
					t.Errorf("%d: 0x%04x: Got 0x%02x (mem 0x%02x), want 0x%02x", i, addr, c.acc, c.Read(addr), v)
				}
			}
		}
	}
}

func TestStoresLeaveFlags(t *testing.T) {
	// STA $10; STX $11; STY $12
	c := newTestCPU(0x85, 0x10, 0x86, 0x11, 0x84, 0x12)
	c.acc, c.x, c.y = 0x00, 0x80, 0x01
	c.status = 0x41
	mustStep(t, c, 3)

	if uint8(c.status) != 0x41 {
		t.Errorf("Got status 0x%02x, want 0x41", uint8(c.status))
	}
	if c.Read(0x10) != 0x00 || c.Read(0x11) != 0x80 || c.Read(0x12) != 0x01 {
		t.Errorf("Got (0x%02x, 0x%02x, 0x%02x)", c.Read(0x10), c.Read(0x11), c.Read(0x12))
	}
}

func TestStackDiscipline(t *testing.T) {
	vals := []uint8{0x01, 0x80, 0x00, 0xFE, 0x42}
	var prog []uint8
	for _, v := range vals {
		prog = append(prog, 0xA9, v, 0x48) // LDA #v; PHA
	}
	for range vals {
		prog = append(prog, 0x68, 0x85, 0x00) // PLA; STA $00
	}

	c := newTestCPU(prog...)
	mustStep(t, c, 2*len(vals))
	if c.sp != 0xFF-uint8(len(vals)) {
		t.Errorf("Got sp 0x%02x after pushes", c.sp)
	}

	for i := len(vals) - 1; i >= 0; i-- {
		mustStep(t, c, 2)
		if c.acc != vals[i] || c.status.Zero() != (vals[i] == 0) || c.status.Negative() != (vals[i] >= 0x80) {
			t.Errorf("%d: Got 0x%02x (%s), want 0x%02x", i, c.acc, c.status, vals[i])
		}
	}

	if c.sp != 0xFF {
		t.Errorf("Got sp 0x%02x, want 0xff", c.sp)
	}
}

func TestStackWraps(t *testing.T) {
	c := newTestCPU(0x48, 0x68) // PHA; PLA
	c.sp = 0x00
	c.acc = 0x99
	mustStep(t, c, 1)
	if c.sp != 0xFF || c.Read(0x0100) != 0x99 {
		t.Errorf("push: Got sp 0x%02x, mem 0x%02x", c.sp, c.Read(0x0100))
	}
	mustStep(t, c, 1)
	if c.sp != 0x00 || c.acc != 0x99 {
		t.Errorf("pull: Got sp 0x%02x, acc 0x%02x", c.sp, c.acc)
	}
}

func TestPHPPLP(t *testing.T) {
	c := newTestCPU(0x08, 0x28) // PHP; PLP
	c.status = STATUS_FLAG_CARRY | STATUS_FLAG_NEGATIVE
	mustStep(t, c, 1)
	if got := c.Read(0x01FF); got != 0xB1 {
		t.Errorf("Got pushed status 0x%02x, want 0xb1", got)
	}

	c.status = 0
	mustStep(t, c, 1)
	if uint8(c.status) != 0x81 {
		t.Errorf("Got pulled status 0x%02x, want 0x81", uint8(c.status))
	}
}

func TestBranches(t *testing.T) {
	cases := []struct {
		opcode uint8
		status uint8
		taken  bool
	}{
		{0x90, 0x00, true}, // BCC
		{0x90, 0x01, false},
		{0xB0, 0x01, true}, // BCS
		{0xB0, 0x00, false},
		{0xF0, 0x02, true}, // BEQ
		{0xF0, 0x00, false},
		{0xD0, 0x00, true}, // BNE
		{0xD0, 0x02, false},
		{0x30, 0x80, true}, // BMI
		{0x30, 0x00, false},
		{0x10, 0x00, true}, // BPL
		{0x10, 0x80, false},
		{0x50, 0x00, true}, // BVC
		{0x50, 0x40, false},
		{0x70, 0x40, true}, // BVS
		{0x70, 0x00, false},
	}

	for i, tc := range cases {
		c := newTestCPU(tc.opcode, 0x10)
		c.status = Flags(tc.status)
		mustStep(t, c, 1)

		want := uint16(testOrigin + 2)
		if tc.taken {
			want += 0x10
		}
		if c.pc != want || uint8(c.status) != tc.status {
			t.Errorf("%d: Got pc 0x%04x (0x%02x), want 0x%04x", i, c.pc, uint8(c.status), want)
		}
	}
}

func TestBEQLoopsOnItself(t *testing.T) {
	c := newTestCPU(0xF0, 0xFE)
	c.status.SetZero(true)
	mustStep(t, c, 3)
	if c.pc != testOrigin {
		t.Errorf("Got pc 0x%04x, want 0x%04x", c.pc, testOrigin)
	}
}

func TestJMP(t *testing.T) {
	c := newTestCPU(0x4C, 0x34, 0x12)
	mustStep(t, c, 1)
	if c.pc != 0x1234 {
		t.Errorf("absolute: Got 0x%04x, want 0x1234", c.pc)
	}

	c = newTestCPU(0x6C, 0x00, 0x03)
	c.Write(0x0300, 0xCD)
	c.Write(0x0301, 0xAB)
	mustStep(t, c, 1)
	if c.pc != 0xABCD {
		t.Errorf("indirect: Got 0x%04x, want 0xabcd", c.pc)
	}
}

func TestJSRRTS(t *testing.T) {
	c := newTestCPU(0x20, 0x34, 0x12, 0xEA) // JSR $1234; NOP
	c.Write(0x1234, 0x60)                   // RTS

	mustStep(t, c, 1)
	if c.pc != 0x1234 || c.sp != 0xFD {
		t.Fatalf("Got pc 0x%04x sp 0x%02x, want 0x1234 0xfd", c.pc, c.sp)
	}
	// The return address is the last byte of the JSR, high byte pushed first.
	if hi, lo := c.Read(0x01FF), c.Read(0x01FE); hi != 0x06 || lo != 0x02 {
		t.Errorf("Got pushed 0x%02x%02x, want 0x0602", hi, lo)
	}

	mustStep(t, c, 1)
	if c.pc != testOrigin+3 || c.sp != 0xFF {
		t.Errorf("Got pc 0x%04x sp 0x%02x, want 0x%04x 0xff", c.pc, c.sp, testOrigin+3)
	}
}

func TestBRKRTI(t *testing.T) {
	c := newTestCPU(0x00, 0xFF, 0x40) // BRK; signature byte; RTI
	c.status = STATUS_FLAG_CARRY | STATUS_FLAG_OVERFLOW
	mustStep(t, c, 1)

	if hi, lo := c.Read(0x01FF), c.Read(0x01FE); hi != 0x06 || lo != 0x02 {
		t.Errorf("Got pushed pc 0x%02x%02x, want 0x0602", hi, lo)
	}
	if got := c.Read(0x01FD); got != 0x71 {
		t.Errorf("Got pushed status 0x%02x, want 0x71", got)
	}
	if !c.status.Interrupt() || c.status.Break() {
		t.Errorf("Got status %s, want I set and B clear", c.status)
	}
	if c.pc != testOrigin+2 || c.sp != 0xFC {
		t.Errorf("Got pc 0x%04x sp 0x%02x", c.pc, c.sp)
	}

	// RTI at 0x0602 pulls the status (minus B and the unused bit) and the pc.
	mustStep(t, c, 1)
	if uint8(c.status) != 0x41 || c.pc != testOrigin+2 || c.sp != 0xFF {
		t.Errorf("Got status 0x%02x pc 0x%04x sp 0x%02x", uint8(c.status), c.pc, c.sp)
	}
}

func TestFlagAccessors(t *testing.T) {
	var f Flags
	f.SetCarry(true)
	f.SetOverflow(true)
	f.SetDecimal(true)
	if uint8(f) != 0x49 || !f.Carry() || !f.Overflow() || !f.Decimal() || f.Zero() {
		t.Errorf("Got 0x%02x", uint8(f))
	}
	f.SetDecimal(false)
	if uint8(f) != 0x41 {
		t.Errorf("Got 0x%02x, want 0x41", uint8(f))
	}
	if got := f.String(); got != "nV-bdizC" {
		t.Errorf("Got %q", got)
	}
	if got := f.Bits(); got != [8]uint8{1, 0, 0, 0, 0, 0, 1, 0} {
		t.Errorf("Got %v", got)
	}
}
