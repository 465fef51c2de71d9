package chip8_test

import (
	"testing"

	"github.com/Urethramancer/chip8/chip8"
)

// Every family and its gate conditions, including the words that must fall
// through to the invalid marker.
func TestDecodeFamilies(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		want chip8.Opcode
	}{
		{"CLS", 0x00E0, chip8.OpCls},
		{"RET", 0x00EE, chip8.OpRet},
		{"SYS", 0x0123, chip8.OpSys},
		{"SYS_Zero", 0x0000, chip8.OpSys},
		{"SYS_NearCLS", 0x00E1, chip8.OpSys},
		{"JP", 0x1228, chip8.OpJp},
		{"CALL", 0x2ABC, chip8.OpCall},
		{"SE_Byte", 0x3A12, chip8.OpSeByte},
		{"SNE_Byte", 0x4A12, chip8.OpSneByte},
		{"SE_Reg", 0x5AB0, chip8.OpSeReg},
		{"SE_Reg_BadNibble", 0x5AB1, chip8.OpInvalid},
		{"LD_Byte", 0x6042, chip8.OpLdByte},
		{"ADD_Byte", 0x7042, chip8.OpAddByte},
		{"LD_Reg", 0x8AB0, chip8.OpLdReg},
		{"OR", 0x8AB1, chip8.OpOr},
		{"AND", 0x8AB2, chip8.OpAnd},
		{"XOR", 0x8AB3, chip8.OpXor},
		{"ADD_Reg", 0x8AB4, chip8.OpAddReg},
		{"SUB", 0x8AB5, chip8.OpSub},
		{"SHR", 0x8AB6, chip8.OpShr},
		{"SUBN", 0x8AB7, chip8.OpSubn},
		{"SHL", 0x8ABE, chip8.OpShl},
		{"Family8_Gap", 0x8AB8, chip8.OpInvalid},
		{"Family8_BadNibble", 0x8ABF, chip8.OpInvalid},
		{"SNE_Reg", 0x9AB0, chip8.OpSneReg},
		{"SNE_Reg_BadNibble", 0x9AB1, chip8.OpInvalid},
		{"LD_I", 0xA123, chip8.OpLdI},
		{"JP_V0", 0xB123, chip8.OpJpV0},
		{"RND", 0xC599, chip8.OpRnd},
		{"DRW", 0xD125, chip8.OpDrw},
		{"SKP", 0xE29E, chip8.OpSkp},
		{"SKNP", 0xE2A1, chip8.OpSknp},
		{"FamilyE_BadByte", 0xE2FF, chip8.OpInvalid},
		{"LD_FromDelay", 0xF307, chip8.OpLdDelay},
		{"LD_Key", 0xF30A, chip8.OpLdKey},
		{"LD_ToDelay", 0xF315, chip8.OpSetDelay},
		{"LD_ToSound", 0xF318, chip8.OpSetSound},
		{"ADD_I", 0xF31E, chip8.OpAddI},
		{"LD_Font", 0xF329, chip8.OpLdFont},
		{"BCD", 0xF333, chip8.OpBCD},
		{"SaveRegs", 0xF355, chip8.OpSaveRegs},
		{"LoadRegs", 0xF365, chip8.OpLoadRegs},
		{"FamilyF_BadByte", 0xF3FF, chip8.OpInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := chip8.Decode(tc.word)
			if got.Op != tc.want {
				t.Errorf("Decode(%04X).Op = %v, want %v", tc.word, got.Op, tc.want)
			}
		})
	}
}

// Operand fields are plain nibble/byte extractions regardless of opcode.
func TestDecodeOperands(t *testing.T) {
	inst := chip8.Decode(0xD12F)
	if inst.X != 0x1 || inst.Y != 0x2 || inst.N != 0xF {
		t.Errorf("nibbles: got x=%X y=%X n=%X, want 1 2 F", inst.X, inst.Y, inst.N)
	}
	if inst.NN != 0x2F {
		t.Errorf("NN = %02X, want 2F", inst.NN)
	}
	if inst.NNN != 0x12F {
		t.Errorf("NNN = %03X, want 12F", inst.NNN)
	}
	if inst.Word != 0xD12F {
		t.Errorf("Word = %04X, want D12F", inst.Word)
	}
}

// Decode must be total and deterministic over the entire word space.
func TestDecodeTotal(t *testing.T) {
	for w := 0; w <= 0xFFFF; w++ {
		word := uint16(w)
		first := chip8.Decode(word)
		second := chip8.Decode(word)
		if first != second {
			t.Fatalf("Decode(%04X) not deterministic: %+v vs %+v", word, first, second)
		}
	}
}
