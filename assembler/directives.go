package assembler

import (
	"fmt"
	"strings"
)

// isDirective reports whether a head token is a data directive. A leading
// dot is accepted but not required.
func isDirective(s string) bool {
	switch strings.TrimPrefix(s, ".") {
	case "dc.b", "dc.w":
		return true
	}
	return false
}

// nodeSize returns the byte size a node contributes to the image.
// Instructions are always one word; dc.b blocks are padded to even length
// so the words that follow stay aligned.
func (asm *Assembler) nodeSize(n *Node) (uint32, error) {
	if n.Type == NodeInstruction {
		return 2, nil
	}

	dir, args := n.Parts[0], n.Parts[1]
	toks := splitDataValues(args)
	if len(toks) == 0 {
		return 0, fmt.Errorf("%s requires at least one value", dir)
	}

	var size uint32
	switch dir {
	case "dc.b":
		for _, tok := range toks {
			if tok.Quoted {
				size += uint32(len(tok.Value))
			} else {
				size++
			}
		}
		size = (size + 1) &^ 1
	case "dc.w":
		size = uint32(len(toks)) * 2
	default:
		return 0, fmt.Errorf("unknown directive: %s", dir)
	}
	return size, nil
}

// directiveBytes generates the data for a dc.b or dc.w node.
func (asm *Assembler) directiveBytes(n *Node) ([]byte, error) {
	dir, args := n.Parts[0], n.Parts[1]
	toks := splitDataValues(args)
	if len(toks) == 0 {
		return nil, fmt.Errorf("%s requires at least one value", dir)
	}

	var out []byte
	for _, tok := range toks {
		if tok.Quoted {
			if dir != "dc.b" {
				return nil, fmt.Errorf("strings are only valid in dc.b")
			}
			out = append(out, tok.Value...)
			continue
		}

		val, err := asm.resolveValue(tok.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid constant '%s': %w", tok.Value, err)
		}
		switch dir {
		case "dc.b":
			if val < -128 || val > 255 {
				return nil, fmt.Errorf("byte value out of range: %s", tok.Value)
			}
			out = append(out, byte(val))
		case "dc.w":
			if val < -32768 || val > 0xFFFF {
				return nil, fmt.Errorf("word value out of range: %s", tok.Value)
			}
			out = append(out, byte(val>>8), byte(val))
		}
	}
	if dir == "dc.b" && len(out)%2 != 0 {
		out = append(out, 0)
	}
	return out, nil
}

// dataToken is one comma-separated element of a data directive.
type dataToken struct {
	Value  string
	Quoted bool
}

// splitDataValues splits a directive's argument list on commas, handling
// mixed quoted strings and numbers correctly.
func splitDataValues(args string) []dataToken {
	var toks []dataToken
	var cur strings.Builder
	inQuote := false
	flush := func() {
		s := strings.TrimSpace(cur.String())
		cur.Reset()
		if s != "" {
			toks = append(toks, dataToken{Value: s})
		}
	}
	for i := 0; i < len(args); i++ {
		c := args[i]
		switch {
		case c == '\'':
			if inQuote {
				inQuote = false
				toks = append(toks, dataToken{Value: cur.String(), Quoted: true})
				cur.Reset()
			} else {
				inQuote = true
				cur.Reset()
			}
		case c == ',' && !inQuote:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return toks
}
