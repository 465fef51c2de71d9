package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Urethramancer/chip8/chip8"
)

// keypad maps host keys to the 16 logical keys, the classic 4x4 layout on
// 1234/qwer/asdf/zxcv.
var keypad = [16]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.KeyDigit1,
	0x2: ebiten.KeyDigit2,
	0x3: ebiten.KeyDigit3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.KeyDigit4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// Window is the windowed front end. It snapshots the keyboard into the
// machine, runs a frame's worth of instructions, then draws the
// framebuffer, once per host frame.
type Window struct {
	m      *chip8.Machine
	cycles int
	buzzer *Buzzer
	trace  func(pc, word uint16)

	frame *ebiten.Image
	pix   []byte
}

// NewWindow creates the front end for a loaded machine.
func NewWindow(m *chip8.Machine, cycles int, buzzer *Buzzer, trace func(pc, word uint16)) *Window {
	return &Window{
		m:      m,
		cycles: cycles,
		buzzer: buzzer,
		trace:  trace,
		frame:  ebiten.NewImage(chip8.ScreenWidth, chip8.ScreenHeight),
		pix:    make([]byte, chip8.ScreenWidth*chip8.ScreenHeight*4),
	}
}

// Update runs one frame's worth of instructions. Returning an error stops
// the game loop, which is how a fatal decode surfaces to the user.
func (w *Window) Update() error {
	for i, key := range keypad {
		w.m.SetKey(i, ebiten.IsKeyPressed(key))
	}

	for i := 0; i < w.cycles && w.m.CanContinue(); i++ {
		if w.trace != nil {
			w.trace(w.m.PC, w.m.ReadWord(w.m.PC))
		}
		if err := w.m.Step(); err != nil {
			return err
		}
	}

	if w.buzzer != nil {
		w.buzzer.SetActive(w.m.SoundTimer > 0)
	}
	return nil
}

// Draw repaints the framebuffer snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	for i, on := range &w.m.Pixels {
		c := byte(0)
		if on {
			c = 0xFF
		}
		w.pix[i*4+0] = c
		w.pix[i*4+1] = c
		w.pix[i*4+2] = c
		w.pix[i*4+3] = 0xFF
	}
	w.frame.WritePixels(w.pix)
	screen.DrawImage(w.frame, nil)
}

// Layout keeps the logical resolution at 64x32; ebiten scales it to the
// window.
func (w *Window) Layout(_, _ int) (int, int) {
	return chip8.ScreenWidth, chip8.ScreenHeight
}
