package disassembler

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/Urethramancer/chip8/chip8"
)

// Disassemble produces a listing for a raw program image. Words are decoded
// linearly from the standard load address; words matching no instruction
// pattern are rendered as data, as is a trailing odd byte.
func Disassemble(code []byte) (string, error) {
	var out strings.Builder
	for pc := 0; pc+1 < len(code); pc += 2 {
		word := binary.BigEndian.Uint16(code[pc:])
		fmt.Fprintf(&out, "$%03X:  %04X  %s\n",
			chip8.ProgramStart+pc, word, DecodeWord(word))
	}
	if len(code)%2 != 0 {
		b := code[len(code)-1]
		fmt.Fprintf(&out, "$%03X:  %02X    dc.b $%02X\n",
			chip8.ProgramStart+len(code)-1, b, b)
	}
	return out.String(), nil
}

// DecodeWord renders a single instruction word as assembly text. The output
// reassembles to the same word.
func DecodeWord(word uint16) string {
	inst := chip8.Decode(word)
	switch inst.Op {
	case chip8.OpCls:
		return "cls"
	case chip8.OpRet:
		return "ret"
	case chip8.OpSys:
		return fmt.Sprintf("sys $%03X", inst.NNN)
	case chip8.OpJp:
		return fmt.Sprintf("jp $%03X", inst.NNN)
	case chip8.OpCall:
		return fmt.Sprintf("call $%03X", inst.NNN)
	case chip8.OpSeByte:
		return fmt.Sprintf("se v%X, $%02X", inst.X, inst.NN)
	case chip8.OpSneByte:
		return fmt.Sprintf("sne v%X, $%02X", inst.X, inst.NN)
	case chip8.OpSeReg:
		return fmt.Sprintf("se v%X, v%X", inst.X, inst.Y)
	case chip8.OpLdByte:
		return fmt.Sprintf("ld v%X, $%02X", inst.X, inst.NN)
	case chip8.OpAddByte:
		return fmt.Sprintf("add v%X, $%02X", inst.X, inst.NN)
	case chip8.OpLdReg:
		return fmt.Sprintf("ld v%X, v%X", inst.X, inst.Y)
	case chip8.OpOr:
		return fmt.Sprintf("or v%X, v%X", inst.X, inst.Y)
	case chip8.OpAnd:
		return fmt.Sprintf("and v%X, v%X", inst.X, inst.Y)
	case chip8.OpXor:
		return fmt.Sprintf("xor v%X, v%X", inst.X, inst.Y)
	case chip8.OpAddReg:
		return fmt.Sprintf("add v%X, v%X", inst.X, inst.Y)
	case chip8.OpSub:
		return fmt.Sprintf("sub v%X, v%X", inst.X, inst.Y)
	case chip8.OpShr:
		return fmt.Sprintf("shr v%X, v%X", inst.X, inst.Y)
	case chip8.OpSubn:
		return fmt.Sprintf("subn v%X, v%X", inst.X, inst.Y)
	case chip8.OpShl:
		return fmt.Sprintf("shl v%X, v%X", inst.X, inst.Y)
	case chip8.OpSneReg:
		return fmt.Sprintf("sne v%X, v%X", inst.X, inst.Y)
	case chip8.OpLdI:
		return fmt.Sprintf("ld i, $%03X", inst.NNN)
	case chip8.OpJpV0:
		return fmt.Sprintf("jp v0, $%03X", inst.NNN)
	case chip8.OpRnd:
		return fmt.Sprintf("rnd v%X, $%02X", inst.X, inst.NN)
	case chip8.OpDrw:
		return fmt.Sprintf("drw v%X, v%X, %d", inst.X, inst.Y, inst.N)
	case chip8.OpSkp:
		return fmt.Sprintf("skp v%X", inst.X)
	case chip8.OpSknp:
		return fmt.Sprintf("sknp v%X", inst.X)
	case chip8.OpLdDelay:
		return fmt.Sprintf("ld v%X, dt", inst.X)
	case chip8.OpLdKey:
		return fmt.Sprintf("ld v%X, k", inst.X)
	case chip8.OpSetDelay:
		return fmt.Sprintf("ld dt, v%X", inst.X)
	case chip8.OpSetSound:
		return fmt.Sprintf("ld st, v%X", inst.X)
	case chip8.OpAddI:
		return fmt.Sprintf("add i, v%X", inst.X)
	case chip8.OpLdFont:
		return fmt.Sprintf("ld f, v%X", inst.X)
	case chip8.OpBCD:
		return fmt.Sprintf("ld b, v%X", inst.X)
	case chip8.OpSaveRegs:
		return fmt.Sprintf("ld [i], v%X", inst.X)
	case chip8.OpLoadRegs:
		return fmt.Sprintf("ld v%X, [i]", inst.X)
	}
	return fmt.Sprintf("dc.w $%04X", word)
}
