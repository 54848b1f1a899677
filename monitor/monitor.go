// Package monitor is a full screen terminal front end for a
// console.Machine: registers, status bits, a page of memory and the
// upcoming instructions, driven by single key commands.
package monitor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bdwalton/gin6502/console"
	"github.com/bdwalton/gin6502/mos6502"
	"github.com/gdamore/tcell/v2"
)

const (
	MEM_ROWS     = 16
	MEM_COLS     = 16
	DISASM_LINES = 8

	// Instructions run between screen refreshes while running.
	RUN_BURST = 1000
	REFRESH   = 50 * time.Millisecond
)

const help = "s:step r:run/stop e:reset pgup/pgdn:scroll p:pc z:zero page k:stack q:quit"

type Monitor struct {
	s       tcell.Screen
	m       *console.Machine
	base    uint16 // first address of the memory view
	running bool
	last    string
}

func New(s tcell.Screen, m *console.Machine) *Monitor {
	mon := &Monitor{s: s, m: m}
	mon.followPC()
	return mon
}

func (mon *Monitor) followPC() {
	mon.base = mon.m.CPU().PC() &^ 0x000F
}

// Draw repaints the whole screen.
func (mon *Monitor) Draw() {
	mon.s.Clear()
	mon.drawCPU(0, 0)
	mon.drawDisasm(0, 12)
	mon.drawMemory(32, 0)

	msg := help
	if mon.running {
		msg = "running... " + msg
	}
	drawString(mon.s, 0, 23, dimStyle, msg)
	if mon.last != "" {
		drawString(mon.s, 0, 24, valueStyle, mon.last)
	}
	mon.s.Show()
}

func (mon *Monitor) drawCPU(x, y int) {
	box(mon.s, x, y, 30, 11, "6502")
	r := mon.m.CPU().Registers()

	col, row := x+2, y+2
	for i, l := range []string{"PC:", "SP:", " A:", " X:", " Y:"} {
		drawString(mon.s, col, row+i, dimStyle, l)
	}
	drawString(mon.s, col+4, row, valueStyle, fmt.Sprintf("$%04X", r.PC))
	drawString(mon.s, col+4, row+1, valueStyle, fmt.Sprintf("$%02X", r.SP))
	drawString(mon.s, col+4, row+2, valueStyle, fmt.Sprintf("$%02X", r.A))
	drawString(mon.s, col+4, row+3, valueStyle, fmt.Sprintf("$%02X", r.X))
	drawString(mon.s, col+4, row+4, valueStyle, fmt.Sprintf("$%02X", r.Y))

	drawString(mon.s, col+12, row, dimStyle, "cycles:")
	drawString(mon.s, col+12, row+1, valueStyle, fmt.Sprintf("%d", mon.m.CPU().Cycles()))
	drawString(mon.s, col+12, row+2, dimStyle, "steps:")
	drawString(mon.s, col+12, row+3, valueStyle, fmt.Sprintf("%d", mon.m.Steps()))
	drawString(mon.s, col+12, row+4, dimStyle, "reset:")
	drawString(mon.s, col+19, row+4, valueStyle, fmt.Sprintf("$%04X", mon.m.CPU().Entry()))

	lines := strings.Split(console.FormatStatus(r.P), "\n")
	drawString(mon.s, col, row+6, dimStyle, lines[0])
	for i, b := range r.P.Bits() {
		style := dimStyle
		if b == 1 {
			style = setStyle
		}
		drawString(mon.s, col+2*i, row+7, style, fmt.Sprintf("%d", b))
	}
}

func (mon *Monitor) drawDisasm(x, y int) {
	box(mon.s, x, y, 30, DISASM_LINES+1, "Code")
	for i, l := range mon.m.CPU().DisassembleN(mon.m.CPU().PC(), DISASM_LINES) {
		style := valueStyle
		if i == 0 {
			style = pcStyle
		}
		drawString(mon.s, x+2, y+1+i, style, l)
	}
}

func (mon *Monitor) drawMemory(x, y int) {
	box(mon.s, x, y, 57, MEM_ROWS+3, "Memory")
	drawString(mon.s, x+8, y+1, dimStyle, "x0 x1 x2 x3 x4 x5 x6 x7 x8 x9 xA xB xC xD xE xF")

	pc := mon.m.CPU().PC()
	for row := 0; row < MEM_ROWS; row++ {
		a := mon.base + uint16(row*MEM_COLS)
		drawString(mon.s, x+2, y+2+row, dimStyle, fmt.Sprintf("$%04X", a))

		end := a + MEM_COLS - 1
		if end < a {
			end = 0xFFFF
		}
		snap := mon.m.CPU().Dump(a, end)
		for col, b := range snap.Memory {
			style := valueStyle
			if a+uint16(col) == pc {
				style = pcStyle
			}
			drawString(mon.s, x+8+3*col, y+2+row, style, fmt.Sprintf("%02X", b))
		}
	}
}

func (mon *Monitor) setResult(reason console.StopReason, err error) {
	switch {
	case err != nil:
		mon.last = err.Error()
		mon.running = false
	case reason != console.STOP_STEP_LIMIT:
		mon.last = "stopped: " + reason.String()
		mon.running = false
	}
}

// HandleKey applies one key command and reports whether the monitor
// should exit.
func (mon *Monitor) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyPgUp, tcell.KeyUp:
		mon.base -= MEM_ROWS * MEM_COLS
		return false
	case tcell.KeyPgDn, tcell.KeyDown:
		mon.base += MEM_ROWS * MEM_COLS
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case 's', 'S':
		mon.running = false
		mon.last = ""
		if err := mon.m.Step(); err != nil {
			mon.last = err.Error()
		}
		mon.followPC()
	case 'r', 'R':
		mon.running = !mon.running
		mon.last = ""
	case 'e', 'E':
		mon.running = false
		mon.m.Reset()
		mon.last = "reset"
		mon.followPC()
	case 'p', 'P':
		mon.followPC()
	case 'z', 'Z':
		mon.base = 0x0000
	case 'k', 'K':
		mon.base = mos6502.STACK_PAGE
	}

	return false
}

// Run drives the monitor until the user quits or ctx is done. It is
// the only mutator of the machine; key events arrive on a channel.
func (mon *Monitor) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := mon.s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	refresh := time.NewTicker(REFRESH)
	defer refresh.Stop()

	mon.Draw()
	for {
		if mon.running {
			reason, err := mon.m.RunSteps(ctx, RUN_BURST)
			if err != nil {
				log.Printf("monitor: %v", err)
			}
			mon.setResult(reason, err)
			if !mon.running {
				mon.followPC()
				mon.Draw()
			}
		}

		var ev tcell.Event
		if mon.running {
			select {
			case <-ctx.Done():
				return nil
			case ev = <-events:
			case <-refresh.C:
				mon.Draw()
				continue
			default:
				continue
			}
		} else {
			select {
			case <-ctx.Done():
				return nil
			case ev = <-events:
			}
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			if mon.HandleKey(e) {
				return nil
			}
		case *tcell.EventResize:
			mon.s.Sync()
		}
		mon.Draw()
	}
}
