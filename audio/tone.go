// Package audio defines the tones the viewer plays for parking events.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

const SampleRate = beep.SampleRate(44100)

// Cue is a sine tone of fixed length.
type Cue struct {
	Freq   float64
	Length time.Duration
}

var (
	ParkedCue    = Cue{Freq: 880, Length: 200 * time.Millisecond}
	CollisionCue = Cue{Freq: 140, Length: 150 * time.Millisecond}
)

// Streamer returns a finite stream that plays the cue once.
func (c Cue) Streamer() (beep.Streamer, error) {
	tone, err := generators.SineTone(SampleRate, c.Freq)
	if err != nil {
		return nil, fmt.Errorf("failed to create %.0f Hz tone: %w", c.Freq, err)
	}
	return beep.Take(SampleRate.N(c.Length), tone), nil
}
