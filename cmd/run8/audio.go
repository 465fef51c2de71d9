package main

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate = 44100
	toneHz     = 440
	amplitude  = 0.25
)

// Buzzer generates a square wave while the sound timer is running. It
// feeds the audio device through a pull-model player, so the tone starts
// and stops without clicks or buffer management on our side.
type Buzzer struct {
	ctx    *oto.Context
	player *oto.Player
	active atomic.Bool
	phase  int
}

// NewBuzzer opens the default audio device and starts a silent player.
func NewBuzzer() (*Buzzer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	b := &Buzzer{ctx: ctx}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

// SetActive turns the tone on or off. Safe to call from the game loop
// while the audio thread is reading samples.
func (b *Buzzer) SetActive(on bool) {
	b.active.Store(on)
}

// Read generates float32 mono samples. Silence when inactive.
func (b *Buzzer) Read(p []byte) (int, error) {
	n := len(p) - len(p)%4
	active := b.active.Load()
	period := sampleRate / toneHz
	for i := 0; i < n; i += 4 {
		var s float32
		if active {
			if b.phase < period/2 {
				s = amplitude
			} else {
				s = -amplitude
			}
		}
		b.phase++
		if b.phase >= period {
			b.phase = 0
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(s))
	}
	return n, nil
}

// Close stops playback and releases the player.
func (b *Buzzer) Close() {
	if b.player != nil {
		b.player.Close()
	}
}
