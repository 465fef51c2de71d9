package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrogolib/log"

	"github.com/Urethramancer/chip8/chip8"
	"github.com/Urethramancer/chip8/disassembler"
)

// newLogger creates a logger with appropriate settings.
func newLogger(quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func main() {
	cycles := flag.Int("cycles", 10, "instructions per 60Hz frame")
	scale := flag.Int("scale", 10, "window scale factor")
	term := flag.Bool("term", false, "render to the terminal instead of opening a window")
	trace := flag.Bool("trace", false, "log every executed instruction")
	mute := flag.Bool("mute", false, "disable the buzzer")
	quiet := flag.Bool("quiet", false, "only log errors")
	flag.Parse()

	logger := newLogger(*quiet)
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <rom.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	rom, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Fatal("Reading ROM failed", log.Err(err))
	}

	m := chip8.New()
	if err := m.Load(rom); err != nil {
		logger.Fatal("Loading ROM failed", log.Err(err))
	}
	logger.Info("Loaded ROM",
		log.String("file", flag.Arg(0)),
		log.String("size", fmt.Sprintf("%d bytes", len(rom))))

	var traceFn func(pc, word uint16)
	if *trace {
		traceFn = func(pc, word uint16) {
			logger.Info("step",
				log.String("pc", fmt.Sprintf("%03X", pc)),
				log.String("inst", disassembler.DecodeWord(word)))
		}
	}

	if *term {
		t := &Terminal{m: m, cycles: *cycles, trace: traceFn}
		if err := t.Run(); err != nil {
			logger.Fatal("Execution failed", log.Err(err))
		}
		return
	}

	var buzzer *Buzzer
	if !*mute {
		buzzer, err = NewBuzzer()
		if err != nil {
			// A missing audio device shouldn't stop the machine.
			logger.Error("Audio unavailable", log.Err(err))
		}
	}

	win := NewWindow(m, *cycles, buzzer, traceFn)
	ebiten.SetWindowSize(chip8.ScreenWidth**scale, chip8.ScreenHeight**scale)
	ebiten.SetWindowTitle("run8 - " + flag.Arg(0))
	if err := ebiten.RunGame(win); err != nil {
		logger.Fatal("Execution failed", log.Err(err))
	}
	if buzzer != nil {
		buzzer.Close()
	}
}
