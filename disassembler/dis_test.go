package disassembler_test

import (
	"strings"
	"testing"

	"github.com/Urethramancer/chip8/assembler"
	"github.com/Urethramancer/chip8/disassembler"
)

func TestDecodeWord(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		want string
	}{
		{"CLS", 0x00E0, "cls"},
		{"RET", 0x00EE, "ret"},
		{"SYS", 0x0123, "sys $123"},
		{"JP", 0x1228, "jp $228"},
		{"JP_V0", 0xB228, "jp v0, $228"},
		{"CALL", 0x2345, "call $345"},
		{"SE_Byte", 0x3142, "se v1, $42"},
		{"SE_Reg", 0x5120, "se v1, v2"},
		{"SNE_Byte", 0x4142, "sne v1, $42"},
		{"SNE_Reg", 0x9120, "sne v1, v2"},
		{"LD_Byte", 0x6105, "ld v1, $05"},
		{"LD_Reg", 0x8AB0, "ld vA, vB"},
		{"ADD_Byte", 0x71FF, "add v1, $FF"},
		{"ADD_Reg", 0x8124, "add v1, v2"},
		{"SHR", 0x8346, "shr v3, v4"},
		{"SHL", 0x830E, "shl v3, v0"},
		{"LD_I", 0xA300, "ld i, $300"},
		{"RND", 0xC5AA, "rnd v5, $AA"},
		{"DRW", 0xD015, "drw v0, v1, 5"},
		{"SKP", 0xE29E, "skp v2"},
		{"SKNP", 0xE2A1, "sknp v2"},
		{"LD_FromDelay", 0xF307, "ld v3, dt"},
		{"LD_Key", 0xF30A, "ld v3, k"},
		{"LD_ToDelay", 0xF315, "ld dt, v3"},
		{"LD_ToSound", 0xF318, "ld st, v3"},
		{"ADD_I", 0xF31E, "add i, v3"},
		{"LD_Font", 0xF329, "ld f, v3"},
		{"BCD", 0xF333, "ld b, v3"},
		{"SaveRegs", 0xF455, "ld [i], v4"},
		{"LoadRegs", 0xF465, "ld v4, [i]"},
		{"Invalid", 0x8AB8, "dc.w $8AB8"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := disassembler.DecodeWord(tc.word); got != tc.want {
				t.Errorf("DecodeWord(%04X) = %q, want %q", tc.word, got, tc.want)
			}
		})
	}
}

func TestDisassembleListing(t *testing.T) {
	code := []byte{0x00, 0xE0, 0x12, 0x28, 0x80}
	text, err := disassembler.Disassemble(code)
	if err != nil {
		t.Fatalf("disassembly failed: %v", err)
	}
	want := "$200:  00E0  cls\n" +
		"$202:  1228  jp $228\n" +
		"$204:  80    dc.b $80\n"
	if text != want {
		t.Errorf("listing mismatch\ngot:\n%swant:\n%s", text, want)
	}
}

// Every decodable word's text must assemble back to the same word.
func TestRoundTrip(t *testing.T) {
	for w := 0; w <= 0xFFFF; w++ {
		word := uint16(w)
		text := disassembler.DecodeWord(word)
		if strings.HasPrefix(text, "dc.w") {
			continue
		}

		asm := assembler.New()
		code, err := asm.Assemble(text)
		if err != nil {
			t.Fatalf("%04X: %q failed to assemble: %v", word, text, err)
		}
		if len(code) != 2 {
			t.Fatalf("%04X: %q assembled to %d bytes", word, text, len(code))
		}
		got := uint16(code[0])<<8 | uint16(code[1])
		if got != word {
			t.Errorf("%04X: round trip produced %04X (%q)", word, got, text)
		}
	}
}
