package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/jump-quest/internal/core"
)

// Speaker plays cues on the default output device.
type Speaker struct {
	mu          sync.Mutex
	enabled     bool
	initialized bool
	volume      float64
}

var _ core.Audio = (*Speaker)(nil)

// NewSpeaker creates a speaker sink at the given master volume (0..1).
// Init must succeed before anything is heard.
func NewSpeaker(volume float64) *Speaker {
	return &Speaker{enabled: true, volume: volume}
}

// Init opens the audio device.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	s.initialized = true
	return nil
}

// Play starts c without waiting for it to finish.
func (s *Speaker) Play(c core.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || !s.enabled {
		return
	}
	if st := Cue(c, s.volume, SampleRate); st != nil {
		speaker.Play(st)
	}
}

// SetEnabled mutes or unmutes; muting cuts off cues already playing.
func (s *Speaker) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = enabled
	if !enabled && s.initialized {
		speaker.Clear()
	}
}

// Enabled reports whether cues are audible.
func (s *Speaker) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Close stops playback.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		speaker.Clear()
	}
}

// Silent is an Audio that plays nothing. It is used over SSH and when no
// device is available.
type Silent struct {
	mu      sync.Mutex
	enabled bool
}

// NewSilent returns an enabled silent sink.
func NewSilent() *Silent {
	return &Silent{enabled: true}
}

func (s *Silent) Play(core.Cue) {}

func (s *Silent) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

func (s *Silent) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// observed forwards to an Audio and reports every audible cue.
type observed struct {
	core.Audio
	fn func(core.Cue)
}

// Observe wraps a so that fn sees each cue played while a is enabled.
func Observe(a core.Audio, fn func(core.Cue)) core.Audio {
	return &observed{Audio: a, fn: fn}
}

func (o *observed) Play(c core.Cue) {
	if o.Enabled() {
		o.fn(c)
	}
	o.Audio.Play(c)
}
