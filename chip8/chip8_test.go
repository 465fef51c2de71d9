package chip8_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Urethramancer/chip8/chip8"
)

func TestNewMachine(t *testing.T) {
	m := chip8.New()
	if m.PC != chip8.ProgramStart {
		t.Errorf("PC = %03X, want %03X", m.PC, chip8.ProgramStart)
	}
	if !bytes.Equal(m.Mem[chip8.FontStart:chip8.FontStart+len(chip8.Font)], chip8.Font[:]) {
		t.Errorf("font table not preloaded at %03X", chip8.FontStart)
	}
	for addr, b := range m.Mem {
		if addr >= chip8.FontStart && addr < chip8.FontStart+len(chip8.Font) {
			continue
		}
		if b != 0 {
			t.Fatalf("memory not zeroed at %03X", addr)
		}
	}
}

func TestLoadBounds(t *testing.T) {
	m := chip8.New()

	max := chip8.MemorySize - chip8.ProgramStart
	if err := m.Load(make([]byte, max)); err != nil {
		t.Errorf("loading a program of exactly %d bytes failed: %v", max, err)
	}
	err := m.Load(make([]byte, max+1))
	if !errors.Is(err, chip8.ErrProgramTooLarge) {
		t.Errorf("got %v, want ErrProgramTooLarge", err)
	}
}

func TestLoadPlacesImage(t *testing.T) {
	m := chip8.New()
	img := []byte{0x61, 0x05, 0x62, 0x03}
	if err := m.Load(img); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !bytes.Equal(m.Mem[chip8.ProgramStart:chip8.ProgramStart+4], img) {
		t.Errorf("image not copied to %03X", chip8.ProgramStart)
	}
	if m.ProgramSize != 4 {
		t.Errorf("ProgramSize = %d, want 4", m.ProgramSize)
	}
}

func TestCanContinue(t *testing.T) {
	m := chip8.New()
	if err := m.Load(make([]byte, 4)); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	tests := []struct {
		name string
		pc   uint16
		want bool
	}{
		{"AtStart", 0x200, true},
		{"JustPastProgram", 0x204, true}, // the boundary itself is runnable
		{"BeyondProgram", 0x206, false},
		{"OutsideMemory", 0x1000, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m.PC = tc.pc
			if got := m.CanContinue(); got != tc.want {
				t.Errorf("CanContinue() at %03X = %v, want %v", tc.pc, got, tc.want)
			}
		})
	}
}

func TestSetKeyMasksIndex(t *testing.T) {
	m := chip8.New()
	m.SetKey(0x17, true)
	if !m.Keys[7] {
		t.Errorf("key index not masked to the low nibble")
	}
}

func TestReadWord(t *testing.T) {
	m := chip8.New()
	m.Mem[0x300] = 0x12
	m.Mem[0x301] = 0x34
	if got := m.ReadWord(0x300); got != 0x1234 {
		t.Errorf("ReadWord = %04X, want 1234", got)
	}
}
