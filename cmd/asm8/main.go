package main

import (
	"fmt"
	"os"

	"github.com/Urethramancer/chip8/assembler"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <source.s> [output.ch8]\n", os.Args[0])
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source file: %v\n", err)
		os.Exit(1)
	}

	asm := assembler.New()
	code, err := asm.Assemble(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Assembly error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) == 3 {
		if err := os.WriteFile(os.Args[2], code, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(code), os.Args[2])
		return
	}

	// No output file: print the image as hex words.
	for i := 0; i < len(code); i += 2 {
		if i > 0 {
			fmt.Print(" ")
		}
		if i+1 < len(code) {
			fmt.Printf("%02x%02x", code[i], code[i+1])
		} else {
			fmt.Printf("%02x", code[i])
		}
	}
	fmt.Println()
}
