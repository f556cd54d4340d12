// Package audio synthesizes the game's sound cues with beep and plays
// them on the system speaker.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/jump-quest/internal/core"
)

// SampleRate is the output rate for every synthesized cue.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewOscillator returns a streamer producing one wave for duration.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range n {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = math.Max(float64(left)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one tone in a cue.
type note struct {
	freq float64
	dur  time.Duration
	wave Wave
}

// cues maps each cue to its notes and level.
var cues = map[core.Cue]struct {
	notes  []note
	volume float64
}{
	core.CueJump: {[]note{
		{392, 40 * time.Millisecond, WaveSquare},
		{587, 70 * time.Millisecond, WaveSquare},
	}, 0.25},
	core.CueCoin: {[]note{
		{987.77, 60 * time.Millisecond, WaveSquare},
		{1318.51, 140 * time.Millisecond, WaveSquare},
	}, 0.25},
	core.CueDeath: {[]note{
		{440, 100 * time.Millisecond, WaveSaw},
		{330, 100 * time.Millisecond, WaveSaw},
		{220, 100 * time.Millisecond, WaveSaw},
		{110, 250 * time.Millisecond, WaveSaw},
	}, 0.3},
	core.CueEnemyDeath: {[]note{
		{0, 60 * time.Millisecond, WaveNoise},
		{196, 80 * time.Millisecond, WaveSquare},
	}, 0.3},
	core.CueLevelComplete: {[]note{
		{523.25, 110 * time.Millisecond, WaveSquare},
		{659.25, 110 * time.Millisecond, WaveSquare},
		{783.99, 110 * time.Millisecond, WaveSquare},
		{1046.5, 300 * time.Millisecond, WaveSquare},
	}, 0.3},
	core.CueMenuSelect: {[]note{
		{660, 40 * time.Millisecond, WaveSine},
	}, 0.3},
	core.CueFootstep: {[]note{
		{0, 25 * time.Millisecond, WaveNoise},
	}, 0.08},
}

// Cue returns a finite streamer for c scaled by master volume, or nil
// for an unknown cue.
func Cue(c core.Cue, master float64, rate beep.SampleRate) beep.Streamer {
	def, ok := cues[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(def.notes))
	for _, n := range def.notes {
		attack := min(5*time.Millisecond, n.dur/4)
		release := n.dur / 3
		parts = append(parts, newEnvelope(NewOscillator(n.freq, n.dur, n.wave, rate), n.dur, attack, release, rate))
	}
	return withVolume(beep.Seq(parts...), def.volume*master)
}

// Duration returns how long c plays.
func Duration(c core.Cue) time.Duration {
	var d time.Duration
	for _, n := range cues[c].notes {
		d += n.dur
	}
	return d
}
