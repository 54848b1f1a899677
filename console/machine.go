// package console drives a mos6502.CPU: it owns the fetch/execute
// loop, breakpoints, pacing and the interactive BIOS monitor.
package console

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/bdwalton/gin6502/mos6502"
)

// Why Run returned.
type StopReason int

const (
	STOP_CANCELLED StopReason = iota
	STOP_BREAKPOINT
	STOP_HALTED // BRK reached with HaltOnBRK set
	STOP_STEP_LIMIT
	STOP_UNSUPPORTED
)

var stopNames = [...]string{STOP_CANCELLED: "cancelled", STOP_BREAKPOINT: "breakpoint", STOP_HALTED: "halted", STOP_STEP_LIMIT: "step limit", STOP_UNSUPPORTED: "unsupported opcode"}

func (r StopReason) String() string {
	if int(r) < len(stopNames) {
		return stopNames[r]
	}
	return fmt.Sprintf("StopReason(%d)", int(r))
}

const OPCODE_BRK = 0x00

type Options struct {
	// Hz caps the instruction rate. 0 runs unpaced.
	Hz int
	// SkipUnsupported steps over unsupported opcodes (logging them)
	// instead of stopping.
	SkipUnsupported bool
	// HaltOnBRK stops Run before executing a BRK.
	HaltOnBRK bool
	// MaxSteps stops Run after this many instructions. 0 is unlimited.
	MaxSteps uint64
}

// Machine is the only mutator of its CPU while Run is active.
type Machine struct {
	cpu    *mos6502.CPU
	opts   Options
	breaks map[uint16]struct{}
	steps  uint64
}

func New(cpu *mos6502.CPU, opts Options) *Machine {
	return &Machine{cpu: cpu, opts: opts, breaks: make(map[uint16]struct{})}
}

func (m *Machine) CPU() *mos6502.CPU {
	return m.cpu
}

// Steps is the number of instructions executed since the last Reset.
func (m *Machine) Steps() uint64 {
	return m.steps
}

func (m *Machine) AddBreakpoint(addr uint16) {
	m.breaks[addr] = struct{}{}
}

func (m *Machine) ClearBreakpoints() {
	m.breaks = make(map[uint16]struct{})
}

func (m *Machine) Breakpoints() []uint16 {
	bps := make([]uint16, 0, len(m.breaks))
	for a := range m.breaks {
		bps = append(bps, a)
	}
	sort.Slice(bps, func(i, j int) bool { return bps[i] < bps[j] })
	return bps
}

// Reset hits the reset button.
func (m *Machine) Reset() {
	m.cpu.Reset()
	m.steps = 0
}

// Step executes one instruction, applying the unsupported opcode
// policy.
func (m *Machine) Step() error {
	err := m.cpu.Step()
	switch {
	case err == nil:
	case errors.Is(err, mos6502.ErrUnsupportedOpcode) && m.opts.SkipUnsupported:
		log.Printf("skipping %v", err)
		m.cpu.SetPC(m.cpu.PC() + 1)
	default:
		return err
	}

	m.steps++
	return nil
}

// Run steps the CPU until ctx is cancelled or a stop condition is
// met. A breakpoint or halting BRK at the starting address does not
// stop the first instruction, so Run can resume from either.
func (m *Machine) Run(ctx context.Context) (StopReason, error) {
	return m.run(ctx, m.opts.MaxSteps, m.opts.Hz)
}

// RunSteps is Run limited to n instructions and without pacing. Hosts
// that step in bursts (one burst per frame) use it.
func (m *Machine) RunSteps(ctx context.Context, n uint64) (StopReason, error) {
	if n == 0 {
		return STOP_STEP_LIMIT, nil
	}
	return m.run(ctx, n, 0)
}

func (m *Machine) run(ctx context.Context, limit uint64, hz int) (StopReason, error) {
	var tick <-chan time.Time
	if hz > 0 {
		t := time.NewTicker(time.Second / time.Duration(hz))
		defer t.Stop()
		tick = t.C
	}

	var n uint64
	for {
		select {
		case <-ctx.Done():
			return STOP_CANCELLED, nil
		default:
		}

		pc := m.cpu.PC()
		if _, ok := m.breaks[pc]; ok && n > 0 {
			log.Printf("breakpoint at 0x%04x", pc)
			return STOP_BREAKPOINT, nil
		}
		if m.opts.HaltOnBRK && m.cpu.Read(pc) == OPCODE_BRK && n > 0 {
			return STOP_HALTED, nil
		}
		if limit > 0 && n >= limit {
			return STOP_STEP_LIMIT, nil
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return STOP_CANCELLED, nil
			case <-tick:
			}
		}

		if err := m.Step(); err != nil {
			return STOP_UNSUPPORTED, fmt.Errorf("run stopped: %w", err)
		}
		n++
	}
}
