package assembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/chip8/chip8"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	symbols map[string]int64
	labels  map[string]uint16
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		symbols: make(map[string]int64),
		labels:  make(map[string]uint16),
	}
}

// Assemble takes CHIP-8 assembly source and returns the program image,
// ready to load at the standard base address.
func (asm *Assembler) Assemble(src string) ([]byte, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	nodes, err := asm.parseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	// Pass 1: assign label addresses. Every instruction is one word, so
	// sizes are known up front and a single pass settles every label.
	pc := uint32(chip8.ProgramStart)
	for _, n := range nodes {
		if n.Type == NodeLabel {
			asm.labels[n.Label] = uint16(pc)
			continue
		}
		size, err := asm.nodeSize(n)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		n.Size = size
		pc += size
	}
	if pc > chip8.MemorySize {
		return nil, fmt.Errorf("program ends at %04X, past the end of memory", pc)
	}

	// Pass 2: generate machine code.
	var code []byte
	for _, n := range nodes {
		switch n.Type {
		case NodeLabel:
			// Labels do not emit code.
		case NodeDirective:
			b, err := asm.directiveBytes(n)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			code = append(code, b...)
		case NodeInstruction:
			word, err := asm.encodeInstruction(n)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			code = append(code, byte(word>>8), byte(word))
		}
	}
	return code, nil
}
