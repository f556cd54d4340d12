package versus

import (
	"math"
	"testing"

	"github.com/vovakirdan/jump-quest/internal/config"
	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/actor"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels"
)

const frame = 1.0 / 60.0

func newRound(t *testing.T) *Round {
	t.Helper()
	arena, err := levels.Builtin().Arena()
	if err != nil {
		t.Fatal(err)
	}
	return NewRound(arena, RulesFromConfig(config.Default()), actor.DefaultParams())
}

func TestPoints(t *testing.T) {
	tests := []struct {
		streak   int
		expected int
	}{
		{0, 200},
		{1, 200},
		{2, 400},
		{3, 800},
		{4, 1600},
		{11, 204800},
		{12, 204800},
		{50, 204800},
	}

	for _, tt := range tests {
		if got := Points(tt.streak); got != tt.expected {
			t.Errorf("Points(%d) = %d, expected %d", tt.streak, got, tt.expected)
		}
	}
}

func TestPointsForCapBounds(t *testing.T) {
	tests := []struct {
		name     string
		base     int
		capExp   int
		streak   int
		expected int
	}{
		{"negative cap", 200, -1, 1, 200},
		{"negative cap long streak", 200, -5, 9, 200},
		{"zero cap", 200, 0, 4, 200},
		{"huge cap saturates at 30", 200, 62, 63, 200 << 30},
		{"cap above streak", 200, 30, 3, 800},
		{"huge base saturates", math.MaxInt / 2, 30, 31, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointsFor(tt.base, tt.capExp, tt.streak); got != tt.expected {
				t.Errorf("PointsFor(%d, %d, %d) = %d, expected %d", tt.base, tt.capExp, tt.streak, got, tt.expected)
			}
		})
	}
}

func TestNewRoundSpawns(t *testing.T) {
	r := newRound(t)
	p1, p2 := r.Fighter(core.Player1), r.Fighter(core.Player2)
	if p1.X != 100 || p2.X != 636 {
		t.Errorf("spawns = %v, %v, expected 100 and 636", p1.X, p2.X)
	}
	if p1.Y != 486 || p2.Y != 486 {
		t.Errorf("spawn y = %v, %v, expected 486", p1.Y, p2.Y)
	}
	if r.TimeRemaining != 600 {
		t.Errorf("TimeRemaining = %v, expected 600", r.TimeRemaining)
	}
}

// placeStomp puts the attacker falling onto the victim's head.
func placeStomp(attacker, victim *Fighter) {
	victim.X, victim.Y = 300, 486
	attacker.X, attacker.Y = 300, 430
	attacker.VY = 100
	attacker.OnGround = false
}

func TestStompScoresForAttacker(t *testing.T) {
	tests := []struct {
		name     string
		attacker core.PlayerID
		victim   core.PlayerID
	}{
		{"p1 on p2", core.Player1, core.Player2},
		{"p2 on p1", core.Player2, core.Player1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRound(t)
			a, v := r.Fighter(tt.attacker), r.Fighter(tt.victim)
			placeStomp(a, v)

			ev := r.Step(actor.Controls{}, actor.Controls{}, frame, frame)
			if ev.Scorer != tt.attacker || ev.Award != 200 {
				t.Fatalf("Scorer = %v, Award = %d, expected %v and 200", ev.Scorer, ev.Award, tt.attacker)
			}
			if a.Kills != 1 || a.Streak != 1 || a.Points != 200 {
				t.Errorf("attacker = %d/%d/%d, expected 1/1/200", a.Kills, a.Streak, a.Points)
			}
			if v.Kills != 0 || v.Respawn != 2.0 {
				t.Errorf("victim kills = %d respawn = %v, expected 0 and 2", v.Kills, v.Respawn)
			}
			if a.VY != -200 {
				t.Errorf("attacker vy = %v, expected -200", a.VY)
			}
		})
	}
}

func TestNoStompWhileRespawning(t *testing.T) {
	r := newRound(t)
	a, v := r.Fighters[0], r.Fighters[1]
	placeStomp(a, v)
	v.Respawn = 1

	ev := r.Step(actor.Controls{}, actor.Controls{}, frame, frame)
	if ev.Scorer != 0 || a.Kills != 0 {
		t.Errorf("Scorer = %v kills = %d, expected nobody to score", ev.Scorer, a.Kills)
	}
}

func TestRespawningFighterIgnoresInput(t *testing.T) {
	r := newRound(t)
	p2 := r.Fighters[1]
	p2.Respawn = 1

	r.Step(actor.Controls{}, actor.Controls{Left: true, Jump: true}, frame, frame)
	if p2.VX != 0 || p2.VY < 0 {
		t.Errorf("respawning P2 v = (%v, %v), expected no input applied", p2.VX, p2.VY)
	}
}

func TestFallCreditsOpponent(t *testing.T) {
	r := newRound(t)
	p1, p2 := r.Fighters[0], r.Fighters[1]
	p2.Y = 601
	p2.OnGround = false

	ev := r.Step(actor.Controls{}, actor.Controls{}, frame, frame)
	if ev.Scorer != core.Player1 {
		t.Fatalf("Scorer = %v, expected P1", ev.Scorer)
	}
	if p1.Kills != 1 || p2.Respawn != 2.0 {
		t.Errorf("P1 kills = %d, P2 respawn = %v, expected 1 and 2", p1.Kills, p2.Respawn)
	}
}

func TestStreakResetsOpponent(t *testing.T) {
	r := newRound(t)
	p1, p2 := r.Fighters[0], r.Fighters[1]
	var ev Events

	r.score(p1, p2, &ev)
	r.score(p1, p2, &ev)
	r.score(p1, p2, &ev)
	if p1.Streak != 3 || p1.Points != 200+400+800 {
		t.Fatalf("P1 streak = %d points = %d, expected 3 and 1400", p1.Streak, p1.Points)
	}

	r.score(p2, p1, &ev)
	if p1.Streak != 0 {
		t.Errorf("P1 streak = %d, expected reset to 0", p1.Streak)
	}
	if p2.Streak != 1 || ev.Award != 200 {
		t.Errorf("P2 streak = %d award = %d, expected 1 and 200", p2.Streak, ev.Award)
	}
}

func TestRespawnRelocates(t *testing.T) {
	r := newRound(t)
	p2 := r.Fighters[1]
	p2.X, p2.Y = 400, 100
	p2.Respawn = 0.01

	r.Step(actor.Controls{}, actor.Controls{}, frame, frame)
	if !p2.Active() {
		t.Fatal("P2 should be active")
	}
	// The respawn point overlaps the right pillar, so P2 lands on top of it.
	if p2.X != 700 || p2.Y != 436 {
		t.Errorf("P2 = (%v, %v), expected (700, 436)", p2.X, p2.Y)
	}
	if !p2.OnGround {
		t.Error("P2 should be grounded after respawning")
	}
}

func TestRoundOver(t *testing.T) {
	r := newRound(t)
	r.TimeRemaining = 0.01

	ev := r.Step(actor.Controls{}, actor.Controls{}, frame, frame)
	if !ev.Over {
		t.Fatal("expected the round to end")
	}
	if r.TimeRemaining != 0 {
		t.Errorf("TimeRemaining = %v, expected 0", r.TimeRemaining)
	}
}

func TestResult(t *testing.T) {
	r := newRound(t)
	var ev Events
	r.score(r.Fighters[1], r.Fighters[0], &ev)
	r.Elapsed = 12.5

	res := r.Result()
	if res.P2Kills != 1 || res.P2Points != 200 || res.P1Kills != 0 {
		t.Errorf("Result() = %+v", res)
	}
	if res.Duration != 12.5 {
		t.Errorf("Duration = %v, expected 12.5", res.Duration)
	}
	if res.Winner() != core.Player2 {
		t.Errorf("Winner() = %v, expected P2", res.Winner())
	}
}

func TestClampToArena(t *testing.T) {
	r := newRound(t)
	p2 := r.Fighters[1]
	p2.X = 790

	r.Step(actor.Controls{}, actor.Controls{Right: true}, frame, frame)
	if p2.X+p2.W > 800 {
		t.Errorf("P2 right edge = %v, expected <= 800", p2.X+p2.W)
	}
}
