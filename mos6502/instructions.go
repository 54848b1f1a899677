package mos6502

// handlers maps each instruction id to its semantics. Step resolves
// the operand and advances the program counter before calling one.
var handlers = [NUM_INSTRUCTIONS]func(*CPU, operand){
	ADC: (*CPU).opADC,
	AND: (*CPU).opAND,
	ASL: (*CPU).opASL,
	BCC: (*CPU).opBCC,
	BCS: (*CPU).opBCS,
	BEQ: (*CPU).opBEQ,
	BIT: (*CPU).opBIT,
	BMI: (*CPU).opBMI,
	BNE: (*CPU).opBNE,
	BPL: (*CPU).opBPL,
	BRK: (*CPU).opBRK,
	BVC: (*CPU).opBVC,
	BVS: (*CPU).opBVS,
	CLC: (*CPU).opCLC,
	CLD: (*CPU).opCLD,
	CLI: (*CPU).opCLI,
	CLV: (*CPU).opCLV,
	CMP: (*CPU).opCMP,
	CPX: (*CPU).opCPX,
	CPY: (*CPU).opCPY,
	DEC: (*CPU).opDEC,
	DEX: (*CPU).opDEX,
	DEY: (*CPU).opDEY,
	EOR: (*CPU).opEOR,
	INC: (*CPU).opINC,
	INX: (*CPU).opINX,
	INY: (*CPU).opINY,
	JMP: (*CPU).opJMP,
	JSR: (*CPU).opJSR,
	LDA: (*CPU).opLDA,
	LDX: (*CPU).opLDX,
	LDY: (*CPU).opLDY,
	LSR: (*CPU).opLSR,
	NOP: (*CPU).opNOP,
	ORA: (*CPU).opORA,
	PHA: (*CPU).opPHA,
	PHP: (*CPU).opPHP,
	PLA: (*CPU).opPLA,
	PLP: (*CPU).opPLP,
	ROL: (*CPU).opROL,
	ROR: (*CPU).opROR,
	RTI: (*CPU).opRTI,
	RTS: (*CPU).opRTS,
	SBC: (*CPU).opSBC,
	SEC: (*CPU).opSEC,
	SED: (*CPU).opSED,
	SEI: (*CPU).opSEI,
	STA: (*CPU).opSTA,
	STX: (*CPU).opSTX,
	STY: (*CPU).opSTY,
	TAX: (*CPU).opTAX,
	TAY: (*CPU).opTAY,
	TSX: (*CPU).opTSX,
	TXA: (*CPU).opTXA,
	TXS: (*CPU).opTXS,
	TYA: (*CPU).opTYA,
}

// load returns the byte an operand refers to.
func (c *CPU) load(o operand) uint8 {
	if o.accumulator() {
		return c.acc
	}
	return c.mem.read(o.addr)
}

// store writes to wherever an operand refers to.
func (c *CPU) store(o operand, val uint8) {
	if o.accumulator() {
		c.acc = val
		return
	}
	c.mem.write(o.addr, val)
}

// addWithCarry is shared by ADC and SBC. Decimal mode is not
// honoured.
func (c *CPU) addWithCarry(m uint8) {
	var carry uint16
	if c.status.Carry() {
		carry = 1
	}

	sum := uint16(c.acc) + uint16(m) + carry
	res := uint8(sum)

	c.status.SetCarry(sum > 0xFF)
	// Overflow when both inputs share a sign the result doesn't.
	c.status.SetOverflow((c.acc^res)&(m^res)&0x80 != 0)
	c.acc = res
	c.status.setNZ(res)
}

func (c *CPU) opADC(o operand) {
	c.addWithCarry(c.load(o))
}

func (c *CPU) opSBC(o operand) {
	c.addWithCarry(^c.load(o))
}

func (c *CPU) opAND(o operand) {
	c.acc &= c.load(o)
	c.status.setNZ(c.acc)
}

func (c *CPU) opEOR(o operand) {
	c.acc ^= c.load(o)
	c.status.setNZ(c.acc)
}

func (c *CPU) opORA(o operand) {
	c.acc |= c.load(o)
	c.status.setNZ(c.acc)
}

func (c *CPU) opASL(o operand) {
	v := c.load(o)
	c.status.SetCarry(v&0x80 != 0)
	v <<= 1
	c.store(o, v)
	c.status.setNZ(v)
}

func (c *CPU) opLSR(o operand) {
	v := c.load(o)
	c.status.SetCarry(v&0x01 != 0)
	v >>= 1
	c.store(o, v)
	c.status.setNZ(v)
}

func (c *CPU) opROL(o operand) {
	v := c.load(o)
	var in uint8
	if c.status.Carry() {
		in = 0x01
	}
	c.status.SetCarry(v&0x80 != 0)
	v = (v << 1) | in
	c.store(o, v)
	c.status.setNZ(v)
}

func (c *CPU) opROR(o operand) {
	v := c.load(o)
	var in uint8
	if c.status.Carry() {
		in = 0x80
	}
	c.status.SetCarry(v&0x01 != 0)
	v = (v >> 1) | in
	c.store(o, v)
	c.status.setNZ(v)
}

func (c *CPU) branch(o operand, cond bool) {
	if cond {
		c.pc = o.addr
	}
}

func (c *CPU) opBCC(o operand) { c.branch(o, !c.status.Carry()) }
func (c *CPU) opBCS(o operand) { c.branch(o, c.status.Carry()) }
func (c *CPU) opBEQ(o operand) { c.branch(o, c.status.Zero()) }
func (c *CPU) opBNE(o operand) { c.branch(o, !c.status.Zero()) }
func (c *CPU) opBMI(o operand) { c.branch(o, c.status.Negative()) }
func (c *CPU) opBPL(o operand) { c.branch(o, !c.status.Negative()) }
func (c *CPU) opBVC(o operand) { c.branch(o, !c.status.Overflow()) }
func (c *CPU) opBVS(o operand) { c.branch(o, c.status.Overflow()) }

func (c *CPU) opBIT(o operand) {
	m := c.load(o)
	c.status.SetNegative(m&0x80 != 0)
	c.status.SetOverflow(m&0x40 != 0)
	c.status.SetZero(m&c.acc == 0)
}

// opBRK pushes the address two past the BRK opcode and the status with
// the break bit set, then disables interrupts. There is no vector
// table, so execution resumes at the pushed address, which is also
// where RTI will return to.
func (c *CPU) opBRK(o operand) {
	ret := c.pc + 1
	c.pushAddress(ret)
	c.pushStack(uint8(c.status) | STATUS_FLAG_BREAK | UNUSED_STATUS_FLAG)
	c.status.SetInterrupt(true)
	c.pc = ret
}

func (c *CPU) opCLC(o operand) { c.status.SetCarry(false) }
func (c *CPU) opCLD(o operand) { c.status.SetDecimal(false) }
func (c *CPU) opCLI(o operand) { c.status.SetInterrupt(false) }
func (c *CPU) opCLV(o operand) { c.status.SetOverflow(false) }
func (c *CPU) opSEC(o operand) { c.status.SetCarry(true) }
func (c *CPU) opSED(o operand) { c.status.SetDecimal(true) }
func (c *CPU) opSEI(o operand) { c.status.SetInterrupt(true) }

func (c *CPU) compare(reg uint8, o operand) {
	m := c.load(o)
	c.status.SetCarry(reg >= m)
	c.status.setNZ(reg - m)
}

func (c *CPU) opCMP(o operand) { c.compare(c.acc, o) }
func (c *CPU) opCPX(o operand) { c.compare(c.x, o) }
func (c *CPU) opCPY(o operand) { c.compare(c.y, o) }

func (c *CPU) opDEC(o operand) {
	v := c.load(o) - 1
	c.store(o, v)
	c.status.setNZ(v)
}

func (c *CPU) opINC(o operand) {
	v := c.load(o) + 1
	c.store(o, v)
	c.status.setNZ(v)
}

func (c *CPU) opDEX(o operand) {
	c.x--
	c.status.setNZ(c.x)
}

func (c *CPU) opDEY(o operand) {
	c.y--
	c.status.setNZ(c.y)
}

func (c *CPU) opINX(o operand) {
	c.x++
	c.status.setNZ(c.x)
}

func (c *CPU) opINY(o operand) {
	c.y++
	c.status.setNZ(c.y)
}

func (c *CPU) opJMP(o operand) {
	c.pc = o.addr
}

// opJSR pushes the address of the last byte of the JSR itself; RTS
// adds one when pulling it back.
func (c *CPU) opJSR(o operand) {
	c.pushAddress(c.pc - 1)
	c.pc = o.addr
}

func (c *CPU) opRTS(o operand) {
	c.pc = c.popAddress() + 1
}

func (c *CPU) opRTI(o operand) {
	c.status = Flags(c.popStack()) &^ (STATUS_FLAG_BREAK | UNUSED_STATUS_FLAG)
	c.pc = c.popAddress()
}

func (c *CPU) opLDA(o operand) {
	c.acc = c.load(o)
	c.status.setNZ(c.acc)
}

func (c *CPU) opLDX(o operand) {
	c.x = c.load(o)
	c.status.setNZ(c.x)
}

func (c *CPU) opLDY(o operand) {
	c.y = c.load(o)
	c.status.setNZ(c.y)
}

func (c *CPU) opSTA(o operand) { c.store(o, c.acc) }
func (c *CPU) opSTX(o operand) { c.store(o, c.x) }
func (c *CPU) opSTY(o operand) { c.store(o, c.y) }

func (c *CPU) opNOP(o operand) {}

func (c *CPU) opPHA(o operand) {
	c.pushStack(c.acc)
}

func (c *CPU) opPHP(o operand) {
	c.pushStack(uint8(c.status) | STATUS_FLAG_BREAK | UNUSED_STATUS_FLAG)
}

func (c *CPU) opPLA(o operand) {
	c.acc = c.popStack()
	c.status.setNZ(c.acc)
}

// opPLP drops the break and unused bits, which only exist on the
// stack copy.
func (c *CPU) opPLP(o operand) {
	c.status = Flags(c.popStack()) &^ (STATUS_FLAG_BREAK | UNUSED_STATUS_FLAG)
}

func (c *CPU) opTAX(o operand) {
	c.x = c.acc
	c.status.setNZ(c.x)
}

func (c *CPU) opTAY(o operand) {
	c.y = c.acc
	c.status.setNZ(c.y)
}

func (c *CPU) opTSX(o operand) {
	c.x = c.sp
	c.status.setNZ(c.x)
}

func (c *CPU) opTXA(o operand) {
	c.acc = c.x
	c.status.setNZ(c.acc)
}

// TXS is the one transfer that leaves the flags alone.
func (c *CPU) opTXS(o operand) {
	c.sp = c.x
}

func (c *CPU) opTYA(o operand) {
	c.acc = c.y
	c.status.setNZ(c.acc)
}
