package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Urethramancer/chip8/chip8"
)

// Terminal runs the machine headless and repaints the framebuffer as text
// at 60Hz. It has no input source, so key-wait programs will spin; it's
// meant for demos and graphical test ROMs.
type Terminal struct {
	m      *chip8.Machine
	cycles int
	trace  func(pc, word uint16)
}

// Run executes the program to completion, redrawing after every frame.
func (t *Terminal) Run() error {
	tick := time.NewTicker(time.Second / 60)
	defer tick.Stop()

	for range tick.C {
		for i := 0; i < t.cycles && t.m.CanContinue(); i++ {
			if t.trace != nil {
				t.trace(t.m.PC, t.m.ReadWord(t.m.PC))
			}
			if err := t.m.Step(); err != nil {
				return err
			}
		}
		t.render()
		if !t.m.CanContinue() {
			return nil
		}
	}
	return nil
}

// render repaints the whole screen. Each pixel is two columns wide so the
// aspect ratio is roughly square in a terminal font.
func (t *Terminal) render() {
	var sb strings.Builder
	sb.WriteString("\x1b[H\x1b[2J")
	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if t.m.Pixels[y*chip8.ScreenWidth+x] {
				sb.WriteString("##")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}
