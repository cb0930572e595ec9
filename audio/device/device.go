// Package device plays audio cues on the default output device.
// It needs the platform audio libraries at build time.
package device

import (
	"time"

	"github.com/gopxl/beep/speaker"

	"github.com/baldhumanity/autopark/audio"
)

// Speaker plays short tones through the default audio device.
type Speaker struct{}

// New initializes the audio device. Callers may treat the error as
// non-fatal and run silently.
func New() (*Speaker, error) {
	if err := speaker.Init(audio.SampleRate, audio.SampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Speaker{}, nil
}

func (s *Speaker) Parked() {
	s.play(audio.ParkedCue)
}

func (s *Speaker) Collision() {
	s.play(audio.CollisionCue)
}

func (s *Speaker) play(c audio.Cue) {
	stream, err := c.Streamer()
	if err != nil {
		return
	}
	speaker.Play(stream)
}

// Close releases the audio device.
func (s *Speaker) Close() {
	speaker.Close()
}
