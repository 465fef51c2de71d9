package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var reLabelDef = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*):`)

// parseLines converts source lines into a flat node list. Labels may share
// a line with the instruction they mark; `name equ value` defines a symbol
// and emits nothing.
func (asm *Assembler) parseLines(lines []string) ([]*Node, error) {
	var nodes []*Node
	for i, raw := range lines {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		if m := reLabelDef.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, &Node{
				Type:  NodeLabel,
				Label: strings.ToLower(m[1]),
				Line:  i + 1,
			})
			line = strings.TrimSpace(line[len(m[0]):])
			if line == "" {
				continue
			}
		}

		parts := strings.Fields(line)
		if len(parts) >= 3 && strings.EqualFold(parts[1], "equ") {
			val, err := asm.parseConstant(parts[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad equ value: %w", i+1, err)
			}
			asm.symbols[strings.ToLower(parts[0])] = val
			continue
		}

		head := strings.ToLower(parts[0])
		rest := strings.TrimSpace(line[len(parts[0]):])

		if isDirective(head) {
			nodes = append(nodes, &Node{
				Type:  NodeDirective,
				Parts: []string{strings.TrimPrefix(head, "."), rest},
				Line:  i + 1,
			})
			continue
		}

		var operands []string
		if rest != "" {
			for _, op := range strings.Split(rest, ",") {
				operands = append(operands, strings.TrimSpace(op))
			}
		}
		nodes = append(nodes, &Node{
			Type:     NodeInstruction,
			Mnemonic: head,
			Operands: operands,
			Line:     i + 1,
		})
	}
	return nodes, nil
}

// stripComment removes a trailing ; comment, leaving quoted text alone.
func stripComment(s string) string {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return s[:i]
			}
		}
	}
	return s
}

// parseConstant evaluates a numeric constant: $ for hex, % for binary,
// plain decimal, or a symbol defined with equ.
func (asm *Assembler) parseConstant(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty constant")
	}
	switch s[0] {
	case '$':
		return strconv.ParseInt(s[1:], 16, 64)
	case '%':
		return strconv.ParseInt(s[1:], 2, 64)
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	if v, ok := asm.symbols[strings.ToLower(s)]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("invalid constant: %s", s)
}

// resolveValue evaluates an operand that must yield a number: a constant,
// an equ symbol, or a label address. Labels only resolve in pass 2, after
// the sizing pass has placed them.
func (asm *Assembler) resolveValue(s string) (int64, error) {
	if v, err := asm.parseConstant(s); err == nil {
		return v, nil
	}
	if addr, ok := asm.labels[strings.ToLower(s)]; ok {
		return int64(addr), nil
	}
	return 0, fmt.Errorf("undefined value or label: %s", s)
}
