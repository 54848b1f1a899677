// Package script drives a console.Machine from Lua. Scripts see a
// small set of globals: step, run, reset, peek, poke, load, reg,
// setreg, flags, breakpoint, disasm and print.
package script

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bdwalton/gin6502/console"
	"github.com/bdwalton/gin6502/mos6502"
	lua "github.com/yuin/gopher-lua"
)

// Engine is a Lua interpreter bound to one machine. It is not safe for
// concurrent use.
type Engine struct {
	L   *lua.LState
	m   *console.Machine
	out io.Writer
}

func New(m *console.Machine, out io.Writer) *Engine {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	e := &Engine{L: L, m: m, out: out}
	for name, fn := range map[string]lua.LGFunction{
		"step":       e.step,
		"run":        e.run,
		"reset":      e.reset,
		"peek":       e.peek,
		"poke":       e.poke,
		"load":       e.load,
		"reg":        e.reg,
		"setreg":     e.setreg,
		"flags":      e.flags,
		"breakpoint": e.breakpoint,
		"disasm":     e.disasm,
		"print":      e.print,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	return e
}

func (e *Engine) Close() {
	e.L.Close()
}

// DoString runs src. Machine runs started by the script stop when ctx
// is done.
func (e *Engine) DoString(ctx context.Context, src string) error {
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()
	if err := e.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func (e *Engine) DoFile(ctx context.Context, path string) error {
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()
	if err := e.L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

func (e *Engine) ctx() context.Context {
	if ctx := e.L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// checkRange is CheckInt limited to [0, max].
func checkRange(L *lua.LState, n int, max int) int {
	v := L.CheckInt(n)
	if v < 0 || v > max {
		L.ArgError(n, fmt.Sprintf("%d out of range 0-%d", v, max))
	}
	return v
}

func checkAddr(L *lua.LState, n int) uint16 {
	return uint16(checkRange(L, n, 0xFFFF))
}

// step() -> true | false, message
func (e *Engine) step(L *lua.LState) int {
	if err := e.m.Step(); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// run([n]) -> reason [, message]
func (e *Engine) run(L *lua.LState) int {
	var (
		reason console.StopReason
		err    error
	)
	if L.GetTop() >= 1 {
		reason, err = e.m.RunSteps(e.ctx(), uint64(checkRange(L, 1, 1<<31-1)))
	} else {
		reason, err = e.m.Run(e.ctx())
	}

	L.Push(lua.LString(reason.String()))
	if err != nil {
		L.Push(lua.LString(err.Error()))
		return 2
	}
	return 1
}

func (e *Engine) reset(L *lua.LState) int {
	e.m.Reset()
	return 0
}

func (e *Engine) peek(L *lua.LState) int {
	L.Push(lua.LNumber(e.m.CPU().Read(checkAddr(L, 1))))
	return 1
}

func (e *Engine) poke(L *lua.LState) int {
	e.m.CPU().Write(checkAddr(L, 1), uint8(checkRange(L, 2, 0xFF)))
	return 0
}

// load(addr, {bytes}) -> count
func (e *Engine) load(L *lua.LState) int {
	addr := checkAddr(L, 1)
	tbl := L.CheckTable(2)

	data := make([]uint8, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		v, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok || v < 0 || v > 0xFF || v != lua.LNumber(int(v)) {
			L.ArgError(2, fmt.Sprintf("element %d is not a byte", i))
		}
		data = append(data, uint8(v))
	}

	L.Push(lua.LNumber(e.m.CPU().LoadProgram(addr, data)))
	return 1
}

func registerTable(L *lua.LState, r mos6502.Registers) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("a", lua.LNumber(r.A))
	t.RawSetString("x", lua.LNumber(r.X))
	t.RawSetString("y", lua.LNumber(r.Y))
	t.RawSetString("p", lua.LNumber(r.P))
	t.RawSetString("sp", lua.LNumber(r.SP))
	t.RawSetString("pc", lua.LNumber(r.PC))
	return t
}

// reg() -> {a=, x=, ...} ; reg(name) -> value
func (e *Engine) reg(L *lua.LState) int {
	t := registerTable(L, e.m.CPU().Registers())
	if L.GetTop() == 0 {
		L.Push(t)
		return 1
	}

	name := strings.ToLower(L.CheckString(1))
	v := t.RawGetString(name)
	if v == lua.LNil {
		L.ArgError(1, fmt.Sprintf("unknown register %q", name))
	}
	L.Push(v)
	return 1
}

func (e *Engine) setreg(L *lua.LState) int {
	name := strings.ToLower(L.CheckString(1))
	r := e.m.CPU().Registers()

	switch name {
	case "a":
		r.A = uint8(checkRange(L, 2, 0xFF))
	case "x":
		r.X = uint8(checkRange(L, 2, 0xFF))
	case "y":
		r.Y = uint8(checkRange(L, 2, 0xFF))
	case "p":
		r.P = mos6502.Flags(checkRange(L, 2, 0xFF))
	case "sp":
		r.SP = uint8(checkRange(L, 2, 0xFF))
	case "pc":
		r.PC = checkAddr(L, 2)
	default:
		L.ArgError(1, fmt.Sprintf("unknown register %q", name))
	}

	e.m.CPU().SetRegisters(r)
	return 0
}

// flags() -> {C=bool, Z=bool, ...}
func (e *Engine) flags(L *lua.LState) int {
	names := mos6502.FlagNames()
	bits := e.m.CPU().Registers().P.Bits()

	t := L.NewTable()
	for i, n := range names {
		if n == "-" {
			continue
		}
		t.RawSetString(n, lua.LBool(bits[i] == 1))
	}
	L.Push(t)
	return 1
}

func (e *Engine) breakpoint(L *lua.LState) int {
	e.m.AddBreakpoint(checkAddr(L, 1))
	return 0
}

func (e *Engine) disasm(L *lua.LState) int {
	addr := e.m.CPU().PC()
	if L.GetTop() >= 1 {
		addr = checkAddr(L, 1)
	}
	L.Push(lua.LString(e.m.CPU().Disassemble(addr)))
	return 1
}

func (e *Engine) print(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.Get(i).String())
	}
	fmt.Fprintln(e.out, strings.Join(parts, "\t"))
	return 0
}
