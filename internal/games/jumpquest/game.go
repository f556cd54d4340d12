// Package jumpquest is the Jump Quest platformer: the screen state machine
// sequencing menus, solo and co-op levels, and versus rounds on top of the
// session and versus simulations.
package jumpquest

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/jump-quest/internal/config"
	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/actor"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/session"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/versus"
	"github.com/vovakirdan/jump-quest/internal/registry"
)

// GameID is the registry identifier.
const GameID = "jumpquest"

// Mode is a play mode.
type Mode string

const (
	ModeSolo   Mode = "solo"
	ModeCoop   Mode = "coop"
	ModeVersus Mode = "versus"
)

// ParseMode parses a mode name; empty means solo.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeSolo, nil
	case ModeSolo, ModeCoop, ModeVersus:
		return m, nil
	}
	return ModeSolo, fmt.Errorf("unknown mode %q (want solo, coop or versus)", s)
}

// Menu entries, in display order.
var (
	mainMenuItems  = []string{"CONTINUE", "PLAY", "CO-OP", "VERSUS", "SETTINGS", "CREDITS", "EXIT"}
	pauseMenuItems = []string{"RESUME", "SETTINGS", "CREDITS", "MAIN MENU"}
)

const (
	menuContinue = iota
	menuPlay
	menuCoop
	menuVersus
	menuSettings
	menuCredits
	menuExit
)

const (
	pauseResume = iota
	pauseSettings
	pauseCredits
	pauseMainMenu
)

// Options configure a game instance.
type Options struct {
	Config   config.Config
	Levels   levels.Provider   // nil uses the built-in campaign
	Profiles core.ProfileStore // nil disables saving
	Audio    core.Audio        // nil plays nothing

	// StartLevel skips the menus and starts this level (1-based).
	StartLevel int
	// StartMode picks the mode for StartLevel; versus ignores the level.
	StartMode Mode
	// Continue resumes from save slot Slot at reset.
	Continue bool
	Slot     int

	Now func() time.Time
}

// defaults are used by the registry factory; the CLI overrides them.
var defaults = Options{Config: config.Default()}

// SetDefaults replaces the options used by registry-created games.
func SetDefaults(o Options) {
	defaults = o
}

// notice is a timed on-screen message.
type notice struct {
	text  string
	timer float64
}

func (n *notice) update(dt float64) {
	if n.timer <= 0 {
		return
	}
	n.timer -= dt
	if n.timer <= 0 {
		n.text = ""
	}
}

// progress is the campaign state that survives level reloads and is
// written to save slots.
type progress struct {
	player         string
	level          int // current level, 1-based
	unlocked       []bool
	lives          int
	score          int
	lastCheckpoint *core.Point
	tutorialDone   bool
	versusPlayed   bool
}

// Game implements the Jump Quest state machine.
type Game struct {
	opts     Options
	cfg      config.Config
	rt       core.RuntimeConfig
	provider levels.Provider
	profiles core.ProfileStore
	audio    core.Audio
	now      func() time.Time

	params actor.Params
	rules  session.Rules
	vrules versus.Rules

	state      State
	stack      stack
	transition Transition
	bindings   Bindings
	notice     notice
	exit       bool

	// menu cursors
	menuSel     int
	settingsSel int
	pauseSel    int
	levelSel    int
	slotSel     int
	controlSel  int
	controlFor  core.PlayerID
	pending     *capture
	confirmDel  bool
	tutorialPg  int
	nameInput   []rune
	nameErr     error
	coop        bool
	sound       bool
	colorblind  bool
	assist      bool
	splashTimer float64
	splashShown bool

	prog         progress
	respawnTimer float64
	gameOverFade float64

	sess  *session.Session
	round *versus.Round

	tick   uint64
	events []core.Event
}

// New creates a game. Reset must be called before Step.
func New(opts Options) *Game {
	return &Game{opts: opts}
}

// ID returns the registry identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Jump Quest"
}

// Reset rebuilds the game from its options and returns to the splash
// screen, or straight into play when a start level, mode or slot is set.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.cfg = g.opts.Config
	if g.cfg.Rules.Lives == 0 {
		g.cfg = config.Default()
	}
	g.provider = g.opts.Levels
	if g.provider == nil {
		g.provider = levels.Builtin()
	}
	g.profiles = g.opts.Profiles
	g.audio = g.opts.Audio
	g.now = g.opts.Now
	if g.now == nil {
		g.now = time.Now
	}

	g.params = actor.ParamsFromConfig(g.cfg)
	g.rules = session.RulesFromConfig(g.cfg)
	g.vrules = versus.RulesFromConfig(g.cfg)

	g.state = StateSplash
	g.stack.clear()
	g.transition = Transition{Duration: g.cfg.Timers.Transition}
	g.bindings = DefaultBindings()
	g.notice = notice{}
	g.exit = false
	g.menuSel, g.settingsSel, g.pauseSel, g.levelSel, g.slotSel = 0, 0, 0, 0, 0
	g.controlSel, g.controlFor, g.pending, g.confirmDel = 0, core.Player1, nil, false
	g.tutorialPg, g.nameInput, g.nameErr, g.coop = 0, nil, nil, false
	g.sound = g.audio == nil || g.audio.Enabled()
	g.colorblind = false
	g.assist = g.cfg.Assist.Enabled
	g.splashTimer, g.splashShown = 0, false
	g.prog = g.newProgress("")
	g.respawnTimer, g.gameOverFade = 0, 0
	g.sess, g.round = nil, nil
	g.events = nil
	g.tick = 0

	switch {
	case g.opts.Continue:
		g.splashShown = true
		g.state = StateMenu
		g.continueFrom(g.opts.Slot)
	case g.opts.StartMode == ModeVersus:
		g.splashShown = true
		g.state = StateMenu
		g.startVersus()
	case g.opts.StartLevel > 0:
		g.splashShown = true
		g.state = StateMenu
		g.prog.tutorialDone = true
		g.coop = g.opts.StartMode == ModeCoop
		level := core.Clamp(g.opts.StartLevel, 1, g.levelCount())
		for i := range level {
			g.prog.unlocked[i] = true
		}
		g.startLevel(level)
	}
}

func (g *Game) newProgress(name string) progress {
	unlocked := make([]bool, g.levelCount())
	if len(unlocked) > 0 {
		unlocked[0] = true
	}
	return progress{
		player:   name,
		level:    1,
		unlocked: unlocked,
		lives:    g.cfg.Rules.Lives,
	}
}

func (g *Game) levelCount() int {
	return g.provider.Count()
}

// Step advances one tick: the fade, the notice timer, then the active
// screen. While a fade is pending outside the main menu nothing else runs.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := g.rt.Dt()
	g.tick++
	g.events = g.events[:0]

	if target, ok := g.transition.Update(dt); ok {
		g.setState(target)
	}
	g.notice.update(dt)

	if !g.transition.Active() || g.state == StateMenu {
		g.update(in, dt)
	}

	return core.StepResult{
		State:  g.State(),
		Events: append([]core.Event(nil), g.events...),
	}
}

func (g *Game) update(in core.InputFrame, dt float64) {
	switch g.state {
	case StateSplash:
		g.updateSplash(in, dt)
	case StateMenu:
		g.updateMenu(in)
	case StateMenuExitConfirm:
		g.updateExitConfirm(in)
	case StateNameInput:
		g.updateNameInput(in)
	case StateContinueMenu:
		g.updateContinue(in)
	case StateSettings:
		g.updateSettings(in)
	case StateControls:
		g.updateControls(in)
	case StateCredits:
		g.updateCredits(in)
	case StateTutorial:
		g.updateTutorial(in)
	case StateLevelSelect:
		g.updateLevelSelect(in)
	case StatePlaying, StateCoop:
		g.updatePlaying(in, dt)
	case StatePause:
		g.updatePause(in)
	case StateRespawn:
		g.updateRespawn(dt)
	case StateGameOver:
		g.updateGameOver(in, dt)
	case StateLevelComplete:
		g.updateLevelComplete(in)
	case StateVersus:
		g.updateVersus(in, dt)
	case StateVersusEnd:
		g.updateVersusEnd(in)
	}
}

func (g *Game) setState(s State) {
	if s == g.state {
		return
	}
	g.state = s
	g.emit(core.Event{Kind: core.EventScreenChange, Screen: s.String()})
}

// fadeTo switches to target: at once from the main menu, otherwise
// through a timed fade.
func (g *Game) fadeTo(target State) {
	if g.state == StateMenu {
		g.setState(target)
		return
	}
	g.transition.Start(target)
}

func (g *Game) fadingTo(s State) bool {
	return g.transition.Active() && g.transition.Target() == s
}

// back returns from a re-entrant screen to whatever it was opened over.
func (g *Game) back() {
	if prev, ok := g.stack.pop(); ok {
		g.setState(prev)
		return
	}
	g.menuSel = 0
	g.setState(StateMenu)
}

// leaveToMenu abandons the current mode.
func (g *Game) leaveToMenu() {
	g.stack.clear()
	g.menuSel = 0
	g.round = nil
	if !g.splashShown {
		g.splashTimer = 0
		g.fadeTo(StateSplash)
		return
	}
	g.fadeTo(StateMenu)
}

func (g *Game) play(cues ...core.Cue) {
	if g.audio == nil || !g.sound {
		return
	}
	for _, c := range cues {
		g.audio.Play(c)
	}
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

func (g *Game) showNotice(format string, args ...any) {
	g.notice = notice{text: fmt.Sprintf(format, args...), timer: g.cfg.Timers.Notice}
}

// mode returns the mode being played or last played.
func (g *Game) mode() Mode {
	switch {
	case g.round != nil:
		return ModeVersus
	case g.coop:
		return ModeCoop
	default:
		return ModeSolo
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := g.prog.score
	if g.round != nil {
		res := g.round.Result()
		score = max(res.P1Points, res.P2Points)
	}
	return core.GameState{
		Score:    score,
		Player:   g.prog.player,
		Screen:   g.state.String(),
		GameOver: g.state == StateGameOver || g.fadingTo(StateGameOver),
		Paused:   g.state == StatePause,
		Exit:     g.exit,
	}
}

// Screen returns the active screen.
func (g *Game) Screen() State {
	return g.state
}

// Session returns the loaded level, or nil.
func (g *Game) Session() *session.Session {
	return g.sess
}

// Round returns the versus round, or nil.
func (g *Game) Round() *versus.Round {
	return g.round
}

// Bindings returns the current control bindings.
func (g *Game) Bindings() Bindings {
	return g.bindings
}

// Notice returns the visible notice text, empty when none.
func (g *Game) Notice() string {
	return g.notice.text
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New(defaults)
	})
}
