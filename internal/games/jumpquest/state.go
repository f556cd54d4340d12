package jumpquest

// State is a top-level screen.
type State int

const (
	StateSplash State = iota
	StateMenu
	StateMenuExitConfirm
	StateCredits
	StateSettings
	StateControls
	StateLevelSelect
	StatePlaying
	StateCoop
	StateVersus
	StateVersusEnd
	StateGameOver
	StateLevelComplete
	StateRespawn
	StateContinueMenu
	StateNameInput
	StateTutorial
	StatePause
)

var stateNames = [...]string{
	StateSplash:          "splash",
	StateMenu:            "menu",
	StateMenuExitConfirm: "exit_confirm",
	StateCredits:         "credits",
	StateSettings:        "settings",
	StateControls:        "controls",
	StateLevelSelect:     "level_select",
	StatePlaying:         "playing",
	StateCoop:            "coop",
	StateVersus:          "versus",
	StateVersusEnd:       "versus_end",
	StateGameOver:        "game_over",
	StateLevelComplete:   "level_complete",
	StateRespawn:         "respawn",
	StateContinueMenu:    "continue",
	StateNameInput:       "name_input",
	StateTutorial:        "tutorial",
	StatePause:           "pause",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Gameplay reports whether s runs a level simulation.
func (s State) Gameplay() bool {
	return s == StatePlaying || s == StateCoop
}

// Transition is a timed fade into a target state. The overlay alpha starts
// at 1 and eases to 0; the target commits once, when the fade finishes.
type Transition struct {
	Duration float64

	target State
	timer  float64
	alpha  float64
	active bool
}

// Start begins a fade toward target, replacing any fade in progress.
func (t *Transition) Start(target State) {
	t.target = target
	t.timer = 0
	t.alpha = 1
	t.active = true
}

// Update advances the fade. It returns the target and true exactly once,
// on the frame the fade completes.
func (t *Transition) Update(dt float64) (State, bool) {
	if !t.active {
		return 0, false
	}
	t.timer += dt
	progress := 1.0
	if t.Duration > 0 {
		progress = min(t.timer/t.Duration, 1)
	}
	t.alpha = 1 - smoothstep(progress)
	if progress >= 1 {
		t.active = false
		t.timer = 0
		t.alpha = 0
		return t.target, true
	}
	return 0, false
}

// Active reports whether a fade is pending.
func (t *Transition) Active() bool {
	return t.active
}

// Alpha returns the overlay opacity in [0, 1].
func (t *Transition) Alpha() float64 {
	return t.alpha
}

// Target returns the state being faded to.
func (t *Transition) Target() State {
	return t.target
}

func smoothstep(x float64) float64 {
	return x * x * (3 - 2*x)
}

// stack holds suspended states: a gameplay mode and, above it, an overlay
// such as Pause that a settings screen returns to.
type stack struct {
	items [2]State
	n     int
}

func (s *stack) push(st State) {
	if s.n == len(s.items) {
		s.items[0] = s.items[1]
		s.n--
	}
	s.items[s.n] = st
	s.n++
}

func (s *stack) pop() (State, bool) {
	if s.n == 0 {
		return 0, false
	}
	s.n--
	return s.items[s.n], true
}

func (s *stack) peek() (State, bool) {
	if s.n == 0 {
		return 0, false
	}
	return s.items[s.n-1], true
}

func (s *stack) clear() {
	s.n = 0
}

func (s *stack) len() int {
	return s.n
}
