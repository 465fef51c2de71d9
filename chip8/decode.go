package chip8

// Opcode identifies one of the 35 CHIP-8 instructions, the inert legacy
// call-out, or an undecodable word.
type Opcode int

const (
	// OpInvalid marks a word that matches no instruction pattern. It is
	// the zero value, so an Instruction is invalid until proven otherwise.
	OpInvalid Opcode = iota
	// OpSys is the legacy 0nnn machine-code call-out. Executes as a no-op.
	OpSys
	// OpCls clears the screen.
	OpCls
	// OpRet pops the top stack address into the program counter.
	OpRet
	// OpJp jumps to nnn.
	OpJp
	// OpCall pushes the return address and jumps to nnn.
	OpCall
	// OpSeByte skips the next word if Vx == nn.
	OpSeByte
	// OpSneByte skips the next word if Vx != nn.
	OpSneByte
	// OpSeReg skips the next word if Vx == Vy.
	OpSeReg
	// OpLdByte sets Vx to nn.
	OpLdByte
	// OpAddByte adds nn to Vx, wrapping, without touching the flag.
	OpAddByte
	// OpLdReg copies Vy to Vx.
	OpLdReg
	// OpOr sets Vx to Vx | Vy.
	OpOr
	// OpAnd sets Vx to Vx & Vy.
	OpAnd
	// OpXor sets Vx to Vx ^ Vy.
	OpXor
	// OpAddReg adds Vy to Vx; the flag reports unsigned carry.
	OpAddReg
	// OpSub sets Vx to Vx - Vy; the flag is 1 when no borrow occurred.
	OpSub
	// OpShr shifts Vx right by one; the flag takes the bit shifted out.
	OpShr
	// OpSubn sets Vx to Vy - Vx; the flag is 1 when no borrow occurred.
	OpSubn
	// OpShl shifts Vx left by one; the flag takes the bit shifted out.
	OpShl
	// OpSneReg skips the next word if Vx != Vy.
	OpSneReg
	// OpLdI sets the index register to nnn.
	OpLdI
	// OpJpV0 jumps to nnn + V0.
	OpJpV0
	// OpRnd sets Vx to a random byte masked with nn.
	OpRnd
	// OpDrw XORs an n-byte sprite at (Vx, Vy); the flag reports collision.
	OpDrw
	// OpSkp skips the next word if the key indexed by Vx is down.
	OpSkp
	// OpSknp skips the next word if the key indexed by Vx is up.
	OpSknp
	// OpLdDelay sets Vx to the delay timer.
	OpLdDelay
	// OpLdKey blocks until a key is down, then stores its index in Vx.
	OpLdKey
	// OpSetDelay sets the delay timer to Vx.
	OpSetDelay
	// OpSetSound sets the sound timer to Vx.
	OpSetSound
	// OpAddI adds Vx to the index register. No flag is defined.
	OpAddI
	// OpLdFont points the index register at the glyph for digit Vx.
	OpLdFont
	// OpBCD stores the decimal digits of Vx at I, I+1 and I+2.
	OpBCD
	// OpSaveRegs copies V0..Vx to memory at I, then advances I past them.
	OpSaveRegs
	// OpLoadRegs copies memory at I into V0..Vx, then advances I past them.
	OpLoadRegs
)

// Instruction is one decoded instruction word carrying the operand fields
// its opcode uses. Fields the opcode doesn't use are zero.
type Instruction struct {
	// Op selects the instruction.
	Op Opcode
	// X and Y are register indices from the second and third nibbles.
	X uint8
	Y uint8
	// N is the low nibble.
	N uint8
	// NN is the low byte.
	NN uint8
	// NNN is the low 12 bits, conventionally an address.
	NNN uint16
	// Word is the raw instruction word, kept for diagnostics.
	Word uint16
}

// Decode classifies a 16-bit instruction word. It is pure and total: every
// word decodes to exactly one result, and anything outside the instruction
// table comes back as OpInvalid rather than an error. The top nibble picks
// the family; families 0, 8, 9, E and F gate on a further discriminator.
func Decode(word uint16) Instruction {
	inst := Instruction{
		X:    uint8(word >> 8 & 0xF),
		Y:    uint8(word >> 4 & 0xF),
		N:    uint8(word & 0xF),
		NN:   uint8(word),
		NNN:  word & 0x0FFF,
		Word: word,
	}

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			inst.Op = OpCls
		case 0x00EE:
			inst.Op = OpRet
		default:
			// Everything else in family 0 called out to native machine
			// code on the original hardware. Decoded, never acted on.
			inst.Op = OpSys
		}
	case 0x1:
		inst.Op = OpJp
	case 0x2:
		inst.Op = OpCall
	case 0x3:
		inst.Op = OpSeByte
	case 0x4:
		inst.Op = OpSneByte
	case 0x5:
		if inst.N == 0 {
			inst.Op = OpSeReg
		}
	case 0x6:
		inst.Op = OpLdByte
	case 0x7:
		inst.Op = OpAddByte
	case 0x8:
		switch inst.N {
		case 0x0:
			inst.Op = OpLdReg
		case 0x1:
			inst.Op = OpOr
		case 0x2:
			inst.Op = OpAnd
		case 0x3:
			inst.Op = OpXor
		case 0x4:
			inst.Op = OpAddReg
		case 0x5:
			inst.Op = OpSub
		case 0x6:
			inst.Op = OpShr
		case 0x7:
			inst.Op = OpSubn
		case 0xE:
			inst.Op = OpShl
		}
	case 0x9:
		if inst.N == 0 {
			inst.Op = OpSneReg
		}
	case 0xA:
		inst.Op = OpLdI
	case 0xB:
		inst.Op = OpJpV0
	case 0xC:
		inst.Op = OpRnd
	case 0xD:
		inst.Op = OpDrw
	case 0xE:
		switch inst.NN {
		case 0x9E:
			inst.Op = OpSkp
		case 0xA1:
			inst.Op = OpSknp
		}
	case 0xF:
		switch inst.NN {
		case 0x07:
			inst.Op = OpLdDelay
		case 0x0A:
			inst.Op = OpLdKey
		case 0x15:
			inst.Op = OpSetDelay
		case 0x18:
			inst.Op = OpSetSound
		case 0x1E:
			inst.Op = OpAddI
		case 0x29:
			inst.Op = OpLdFont
		case 0x33:
			inst.Op = OpBCD
		case 0x55:
			inst.Op = OpSaveRegs
		case 0x65:
			inst.Op = OpLoadRegs
		}
	}
	return inst
}
