// Package viewer shows a region of 6502 memory as a grid of pixels in
// an ebiten window while stepping the machine a burst of instructions
// per frame.
package viewer

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/bdwalton/gin6502/console"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	DEFAULT_SCALE           = 10
	DEFAULT_STEPS_PER_FRAME = 100
	STATUS_HEIGHT           = 48
)

type Options struct {
	Base          uint16 // first byte drawn; defaults to SCREEN_BASE
	StepsPerFrame uint64
	Scale         int
	Paused        bool // start paused
}

// Game implements ebiten.Game over a console.Machine. Only Update
// mutates the machine.
type Game struct {
	m      *console.Machine
	opts   Options
	paused bool
	last   string // why the machine last stopped
	rnd    *rand.Rand

	img *ebiten.Image
	pix []byte
}

func New(m *console.Machine, opts Options) *Game {
	if opts.Base == 0 {
		opts.Base = SCREEN_BASE
	}
	if opts.StepsPerFrame == 0 {
		opts.StepsPerFrame = DEFAULT_STEPS_PER_FRAME
	}
	if opts.Scale <= 0 {
		opts.Scale = DEFAULT_SCALE
	}

	return &Game{
		m:      m,
		opts:   opts,
		paused: opts.Paused,
		rnd:    rand.New(rand.NewSource(rand.Int63())),
		pix:    make([]byte, 4*SCREEN_SIZE),
	}
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run(title string) error {
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	return g.tick(context.Background(), poll())
}

// tick advances the machine by one frame given the frame's input.
func (g *Game) tick(ctx context.Context, in input) error {
	if in.quit {
		return ebiten.Termination
	}
	if in.reset {
		g.m.Reset()
		g.last = ""
	}
	if in.pause {
		g.paused = !g.paused
	}

	cpu := g.m.CPU()
	cpu.Write(RANDOM_ADDR, uint8(g.rnd.Intn(256)))
	if in.key != 0 {
		cpu.Write(KEY_ADDR, in.key)
	}

	n := g.opts.StepsPerFrame
	if g.paused {
		if !in.step {
			return nil
		}
		n = 1
	}

	reason, err := g.m.RunSteps(ctx, n)
	switch {
	case err != nil:
		log.Printf("viewer: %v", err)
		g.last = err.Error()
		g.paused = true
	case reason != console.STOP_STEP_LIMIT:
		g.last = reason.String()
		g.paused = true
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(SCREEN_WIDTH, SCREEN_HEIGHT)
	}

	snap := g.m.CPU().Dump(g.opts.Base, g.opts.Base+SCREEN_SIZE-1)
	Frame(snap.Memory, g.pix)
	g.img.WritePixels(g.pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.opts.Scale), float64(g.opts.Scale))
	screen.DrawImage(g.img, op)

	ebitenutil.DebugPrintAt(screen, g.status(), 0, SCREEN_HEIGHT*g.opts.Scale)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return SCREEN_WIDTH * g.opts.Scale, SCREEN_HEIGHT*g.opts.Scale + STATUS_HEIGHT
}

// status is the text drawn under the pixels.
func (g *Game) status() string {
	r := g.m.CPU().Registers()
	s := fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X SP:%02X\nP:%s steps:%d", r.PC, r.A, r.X, r.Y, r.SP, r.P, g.m.Steps())
	if g.paused {
		s += " [paused]"
	}
	if g.last != "" {
		s += "\n" + g.last
	}
	return s
}
