package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	KEY_ADDR    = 0x00FF // last key pressed, as ASCII
	RANDOM_ADDR = 0x00FE // a fresh random byte every frame
)

// keys the running program can see at KEY_ADDR.
var keys = []struct {
	key  ebiten.Key
	code uint8
}{
	{ebiten.KeyW, 'w'},
	{ebiten.KeyA, 'a'},
	{ebiten.KeyS, 's'},
	{ebiten.KeyD, 'd'},
	{ebiten.KeyArrowUp, 'w'},
	{ebiten.KeyArrowLeft, 'a'},
	{ebiten.KeyArrowDown, 's'},
	{ebiten.KeyArrowRight, 'd'},
}

// input is one frame's worth of keyboard state.
type input struct {
	pause, step, reset, quit bool
	key                      uint8 // 0 if none of keys was pressed
}

func poll() input {
	in := input{
		pause: inpututil.IsKeyJustPressed(ebiten.KeySpace),
		step:  inpututil.IsKeyJustPressed(ebiten.KeyN),
		reset: inpututil.IsKeyJustPressed(ebiten.KeyF5),
		quit:  inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	for _, k := range keys {
		if ebiten.IsKeyPressed(k.key) {
			in.key = k.code
			break
		}
	}
	return in
}
