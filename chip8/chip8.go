package chip8

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Memory layout and display dimensions.
const (
	// MemorySize is the full addressable space in bytes.
	MemorySize = 4096
	// ProgramStart is where program images are loaded and execution begins.
	// Everything below it is reserved for the interpreter.
	ProgramStart = 0x200
	// FontStart is the address of the built-in hex glyph table.
	FontStart = 0x50
	// ScreenWidth is the framebuffer width in cells.
	ScreenWidth = 64
	// ScreenHeight is the framebuffer height in cells.
	ScreenHeight = 32
	// StackDepth is the number of return address slots.
	StackDepth = 16
)

// Errors reported by Load and Step.
var (
	// ErrProgramTooLarge means the image doesn't fit between ProgramStart
	// and the end of memory.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrStackOverflow is returned by a call with all stack slots in use.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned by a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrInvalidOpcode means a fetched word matched no instruction pattern.
	ErrInvalidOpcode = errors.New("invalid opcode")
)

// Machine is the complete state of one running CHIP-8 program. It is owned
// exclusively by the engine between steps; the driver writes Keys and reads
// Pixels and the timers only between calls to Step. Independent machines
// don't share anything, so any number can run in one process.
type Machine struct {
	// Mem is the 4K address space. The first 512 bytes are reserved; the
	// font table lives at FontStart and programs load at ProgramStart.
	Mem [MemorySize]byte
	// V is the 16 general-purpose registers. V[0xF] doubles as the flag
	// register: the register add/sub/shift instructions and drw overwrite
	// it with carry/borrow/collision as a side effect.
	V [16]byte
	// I is the index register. It conventionally holds a memory address;
	// only the low 12 bits are used when it addresses memory.
	I uint16
	// PC is the program counter.
	PC uint16
	// SP points at the current top of the stack. A call increments it
	// before writing; a return reads through it, then decrements.
	SP uint8
	// Stack holds return addresses for call/return.
	Stack [StackDepth]uint16
	// DelayTimer counts down to zero, one per step.
	DelayTimer uint8
	// SoundTimer counts down to zero, one per step. The buzzer sounds
	// while it is nonzero.
	SoundTimer uint8
	// Keys is the snapshot of the 16-key pad, written by the driver
	// between steps.
	Keys [16]bool
	// Pixels is the 64x32 monochrome framebuffer, row-major.
	Pixels [ScreenWidth * ScreenHeight]bool
	// ProgramSize is the byte length of the loaded image.
	ProgramSize int
	// Rand supplies the bytes consumed by the random instruction.
	// Replace it for deterministic tests.
	Rand func() byte
}

// New creates a machine with zeroed memory, the font table preloaded and
// the program counter at ProgramStart.
func New() *Machine {
	m := &Machine{PC: ProgramStart}
	copy(m.Mem[FontStart:], Font[:])
	m.Rand = func() byte {
		return byte(rand.IntN(256))
	}
	return m
}

// Load copies a program image verbatim into memory at ProgramStart and
// points the program counter at it.
func (m *Machine) Load(program []byte) error {
	if len(program) > MemorySize-ProgramStart {
		return fmt.Errorf("%w: %d bytes, %d available",
			ErrProgramTooLarge, len(program), MemorySize-ProgramStart)
	}
	copy(m.Mem[ProgramStart:], program)
	m.ProgramSize = len(program)
	m.PC = ProgramStart
	return nil
}

// SetKey records the pressed state of one of the 16 pad keys. The driver
// writes all key states before calling Step. Only the low nibble of the
// index is used.
func (m *Machine) SetKey(key int, down bool) {
	m.Keys[key&0x0F] = down
}

// CanContinue reports whether the program counter is still inside memory
// and within the loaded program's byte range. Jumping elsewhere inside
// memory is allowed; running off either end is normal termination, not an
// error.
func (m *Machine) CanContinue() bool {
	return int(m.PC) < MemorySize && int(m.PC) <= ProgramStart+m.ProgramSize
}

// Step runs one instruction: fetch, decode, execute, then ticks both
// timers down by one toward zero. A machine that has run past its loaded
// program does nothing at all, timers included.
func (m *Machine) Step() error {
	if !m.CanContinue() {
		return nil
	}

	pc := m.PC
	word := m.fetch()
	if err := m.Execute(Decode(word)); err != nil {
		return fmt.Errorf("at %03X: %w", pc, err)
	}

	if m.DelayTimer > 0 {
		m.DelayTimer--
	}
	if m.SoundTimer > 0 {
		m.SoundTimer--
	}
	return nil
}

// ReadWord reads the big-endian 16-bit word at the given address. The
// address is masked to the 12-bit memory space.
func (m *Machine) ReadWord(addr uint16) uint16 {
	hi := m.Mem[addr&0x0FFF]
	lo := m.Mem[(addr+1)&0x0FFF]
	return uint16(hi)<<8 | uint16(lo)
}

// fetch reads the instruction word at PC and advances PC by 2.
func (m *Machine) fetch() uint16 {
	word := m.ReadWord(m.PC)
	m.PC += 2
	return word
}
