package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// operandKind classifies one instruction operand.
type operandKind int

const (
	// opdValue is a constant, symbol or label.
	opdValue operandKind = iota
	// opdReg is a general-purpose register v0-vf.
	opdReg
	// opdIndex is the index register i.
	opdIndex
	// opdIndexMem is [i], memory at the index register.
	opdIndexMem
	// opdDelay is the delay timer dt.
	opdDelay
	// opdSound is the sound timer st.
	opdSound
	// opdKey is the key-wait pseudo-register k.
	opdKey
	// opdFont is the font pointer pseudo-register f.
	opdFont
	// opdBCD is the decimal-digit pseudo-register b.
	opdBCD
)

// operand is one parsed instruction operand.
type operand struct {
	kind operandKind
	reg  uint16
	raw  string
}

var reVReg = regexp.MustCompile(`(?i)^v([0-9a-f])$`)

// parseOperand classifies an operand string. Anything that isn't a
// register name is treated as a value and resolved during encoding.
func parseOperand(s string) operand {
	if m := reVReg.FindStringSubmatch(s); m != nil {
		reg, _ := strconv.ParseUint(m[1], 16, 8)
		return operand{kind: opdReg, reg: uint16(reg), raw: s}
	}
	switch strings.ToLower(s) {
	case "i":
		return operand{kind: opdIndex, raw: s}
	case "[i]":
		return operand{kind: opdIndexMem, raw: s}
	case "dt":
		return operand{kind: opdDelay, raw: s}
	case "st":
		return operand{kind: opdSound, raw: s}
	case "k":
		return operand{kind: opdKey, raw: s}
	case "f":
		return operand{kind: opdFont, raw: s}
	case "b":
		return operand{kind: opdBCD, raw: s}
	}
	return operand{kind: opdValue, raw: s}
}

// addr resolves a value operand to a 12-bit address.
func (asm *Assembler) addr(op operand) (uint16, error) {
	if op.kind != opdValue {
		return 0, fmt.Errorf("expected an address, got %s", op.raw)
	}
	v, err := asm.resolveValue(op.raw)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0xFFF {
		return 0, fmt.Errorf("address out of range: %s", op.raw)
	}
	return uint16(v), nil
}

// imm8 resolves a value operand to an 8-bit immediate.
func (asm *Assembler) imm8(op operand) (uint16, error) {
	if op.kind != opdValue {
		return 0, fmt.Errorf("expected a byte value, got %s", op.raw)
	}
	v, err := asm.resolveValue(op.raw)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0xFF {
		return 0, fmt.Errorf("byte value out of range: %s", op.raw)
	}
	return uint16(v), nil
}

// imm4 resolves a value operand to a 4-bit immediate.
func (asm *Assembler) imm4(op operand) (uint16, error) {
	if op.kind != opdValue {
		return 0, fmt.Errorf("expected a nibble value, got %s", op.raw)
	}
	v, err := asm.resolveValue(op.raw)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0xF {
		return 0, fmt.Errorf("nibble value out of range: %s", op.raw)
	}
	return uint16(v), nil
}

// encodeInstruction emits the 16-bit word for one instruction node.
func (asm *Assembler) encodeInstruction(n *Node) (uint16, error) {
	ops := make([]operand, len(n.Operands))
	for i, s := range n.Operands {
		ops[i] = parseOperand(s)
	}

	mn := n.Mnemonic
	bad := func() (uint16, error) {
		return 0, fmt.Errorf("invalid operands for %s: %s", mn, strings.Join(n.Operands, ", "))
	}

	switch mn {
	case "cls":
		if len(ops) != 0 {
			return bad()
		}
		return 0x00E0, nil

	case "ret":
		if len(ops) != 0 {
			return bad()
		}
		return 0x00EE, nil

	case "sys":
		if len(ops) != 1 {
			return bad()
		}
		nnn, err := asm.addr(ops[0])
		if err != nil {
			return 0, err
		}
		return nnn, nil

	case "jp":
		switch {
		case len(ops) == 1 && ops[0].kind == opdValue:
			nnn, err := asm.addr(ops[0])
			if err != nil {
				return 0, err
			}
			return 0x1000 | nnn, nil
		case len(ops) == 2 && ops[0].kind == opdReg && ops[0].reg == 0:
			nnn, err := asm.addr(ops[1])
			if err != nil {
				return 0, err
			}
			return 0xB000 | nnn, nil
		}
		return bad()

	case "call":
		if len(ops) != 1 {
			return bad()
		}
		nnn, err := asm.addr(ops[0])
		if err != nil {
			return 0, err
		}
		return 0x2000 | nnn, nil

	case "se", "sne":
		if len(ops) != 2 || ops[0].kind != opdReg {
			return bad()
		}
		x := ops[0].reg << 8
		if ops[1].kind == opdReg {
			y := ops[1].reg << 4
			if mn == "se" {
				return 0x5000 | x | y, nil
			}
			return 0x9000 | x | y, nil
		}
		nn, err := asm.imm8(ops[1])
		if err != nil {
			return 0, err
		}
		if mn == "se" {
			return 0x3000 | x | nn, nil
		}
		return 0x4000 | x | nn, nil

	case "ld":
		return asm.encodeLoad(ops, bad)

	case "add":
		if len(ops) != 2 {
			return bad()
		}
		switch {
		case ops[0].kind == opdReg && ops[1].kind == opdReg:
			return 0x8004 | ops[0].reg<<8 | ops[1].reg<<4, nil
		case ops[0].kind == opdReg && ops[1].kind == opdValue:
			nn, err := asm.imm8(ops[1])
			if err != nil {
				return 0, err
			}
			return 0x7000 | ops[0].reg<<8 | nn, nil
		case ops[0].kind == opdIndex && ops[1].kind == opdReg:
			return 0xF01E | ops[1].reg<<8, nil
		}
		return bad()

	case "or", "and", "xor", "sub", "subn":
		if len(ops) != 2 || ops[0].kind != opdReg || ops[1].kind != opdReg {
			return bad()
		}
		sub := map[string]uint16{
			"or": 0x1, "and": 0x2, "xor": 0x3, "sub": 0x5, "subn": 0x7,
		}[mn]
		return 0x8000 | ops[0].reg<<8 | ops[1].reg<<4 | sub, nil

	case "shr", "shl":
		// The second register is part of the encoding but unused by the
		// machine; it may be omitted.
		if len(ops) < 1 || len(ops) > 2 || ops[0].kind != opdReg {
			return bad()
		}
		var y uint16
		if len(ops) == 2 {
			if ops[1].kind != opdReg {
				return bad()
			}
			y = ops[1].reg
		}
		sub := uint16(0x6)
		if mn == "shl" {
			sub = 0xE
		}
		return 0x8000 | ops[0].reg<<8 | y<<4 | sub, nil

	case "rnd":
		if len(ops) != 2 || ops[0].kind != opdReg {
			return bad()
		}
		nn, err := asm.imm8(ops[1])
		if err != nil {
			return 0, err
		}
		return 0xC000 | ops[0].reg<<8 | nn, nil

	case "drw":
		if len(ops) != 3 || ops[0].kind != opdReg || ops[1].kind != opdReg {
			return bad()
		}
		h, err := asm.imm4(ops[2])
		if err != nil {
			return 0, err
		}
		return 0xD000 | ops[0].reg<<8 | ops[1].reg<<4 | h, nil

	case "skp":
		if len(ops) != 1 || ops[0].kind != opdReg {
			return bad()
		}
		return 0xE09E | ops[0].reg<<8, nil

	case "sknp":
		if len(ops) != 1 || ops[0].kind != opdReg {
			return bad()
		}
		return 0xE0A1 | ops[0].reg<<8, nil
	}

	return 0, fmt.Errorf("unknown mnemonic: %s", mn)
}

// encodeLoad handles the many forms of ld, dispatching on the operand
// pair. The destination decides the family.
func (asm *Assembler) encodeLoad(ops []operand, bad func() (uint16, error)) (uint16, error) {
	if len(ops) != 2 {
		return bad()
	}
	dst, src := ops[0], ops[1]

	switch {
	case dst.kind == opdReg && src.kind == opdValue:
		nn, err := asm.imm8(src)
		if err != nil {
			return 0, err
		}
		return 0x6000 | dst.reg<<8 | nn, nil
	case dst.kind == opdReg && src.kind == opdReg:
		return 0x8000 | dst.reg<<8 | src.reg<<4, nil
	case dst.kind == opdIndex && src.kind == opdValue:
		nnn, err := asm.addr(src)
		if err != nil {
			return 0, err
		}
		return 0xA000 | nnn, nil
	case dst.kind == opdReg && src.kind == opdDelay:
		return 0xF007 | dst.reg<<8, nil
	case dst.kind == opdReg && src.kind == opdKey:
		return 0xF00A | dst.reg<<8, nil
	case dst.kind == opdDelay && src.kind == opdReg:
		return 0xF015 | src.reg<<8, nil
	case dst.kind == opdSound && src.kind == opdReg:
		return 0xF018 | src.reg<<8, nil
	case dst.kind == opdFont && src.kind == opdReg:
		return 0xF029 | src.reg<<8, nil
	case dst.kind == opdBCD && src.kind == opdReg:
		return 0xF033 | src.reg<<8, nil
	case dst.kind == opdIndexMem && src.kind == opdReg:
		return 0xF055 | src.reg<<8, nil
	case dst.kind == opdReg && src.kind == opdIndexMem:
		return 0xF065 | dst.reg<<8, nil
	}
	return bad()
}
