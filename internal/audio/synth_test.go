package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/jump-quest/internal/core"
)

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for range 10000 {
		n, ok := s.Stream(buf)
		for i := range n {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never drained")
	return 0
}

func TestOscillator(t *testing.T) {
	tests := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osc := NewOscillator(440, 100*time.Millisecond, tt.wave, SampleRate)
			got := drain(t, osc)
			if expected := SampleRate.N(100 * time.Millisecond); got != expected {
				t.Errorf("samples = %d, expected %d", got, expected)
			}
			if osc.Err() != nil {
				t.Errorf("Err() = %v, expected nil", osc.Err())
			}
		})
	}
}

func TestCueLengths(t *testing.T) {
	all := []core.Cue{
		core.CueJump, core.CueCoin, core.CueDeath, core.CueEnemyDeath,
		core.CueLevelComplete, core.CueMenuSelect, core.CueFootstep,
	}

	for _, c := range all {
		t.Run(c.String(), func(t *testing.T) {
			s := Cue(c, 1, SampleRate)
			if s == nil {
				t.Fatal("Cue() = nil")
			}
			got := drain(t, s)
			if expected := SampleRate.N(Duration(c)); got != expected {
				t.Errorf("samples = %d, expected %d", got, expected)
			}
		})
	}

	if Cue(core.Cue(99), 1, SampleRate) != nil {
		t.Error("unknown cue should have no streamer")
	}
}

func TestCueEnvelopeStartsSilent(t *testing.T) {
	s := Cue(core.CueMenuSelect, 1, SampleRate)
	buf := make([][2]float64, 1)
	s.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, expected 0", buf[0][0])
	}
}

func TestObserve(t *testing.T) {
	var seen []core.Cue
	a := Observe(NewSilent(), func(c core.Cue) { seen = append(seen, c) })

	a.Play(core.CueCoin)
	a.SetEnabled(false)
	a.Play(core.CueJump)
	if a.Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}

	if len(seen) != 1 || seen[0] != core.CueCoin {
		t.Errorf("seen = %v, expected [coin]", seen)
	}
}
