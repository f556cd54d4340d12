package jumpquest

import (
	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/actor"
)

const tutorialPages = 5

var tutorial = [tutorialPages][]string{
	{"CONTROLS", "", "Move: A/D (P2: arrow keys)", "Jump: W (P2: up)", "Pause: P"},
	{"OBJECTIVES", "", "Collect all coins", "Avoid enemies", "Reach the end flag", "Complete before time runs out"},
	{"CHECKPOINTS", "", "Touch checkpoints to save progress", "If you die, respawn at last checkpoint", "Checkpoints give bonus points"},
	{"LIVES & TIME", "", "You start with 3 lives", "Lose a life when you die", "Game over when lives reach 0", "Complete levels quickly for time bonus"},
	{"READY TO PLAY?", "", "Press ENTER to start", "or ESC to skip tutorial"},
}

var settingsItems = []string{"SOUND", "DIFFICULTY", "COLORBLIND", "ASSIST", "CONTROLS", "BACK"}

const (
	settingSound = iota
	settingDifficulty
	settingColorblind
	settingAssist
	settingControls
	settingBack
)

func confirmed(in core.InputFrame) bool {
	return in.Has(core.ActionConfirm) || in.Has(core.ActionSelect)
}

// moveCursor applies Up/Down to a cursor over n entries without wrapping.
func (g *Game) moveCursor(in core.InputFrame, cur *int, n int) {
	switch {
	case in.Has(core.ActionUp) && *cur > 0:
		*cur--
		g.play(core.CueMenuSelect)
	case in.Has(core.ActionDown) && *cur < n-1:
		*cur++
		g.play(core.CueMenuSelect)
	}
}

func (g *Game) updateSplash(in core.InputFrame, dt float64) {
	g.splashTimer += dt
	if g.splashTimer >= g.cfg.Timers.Splash || confirmed(in) || in.Has(core.ActionBack) {
		g.splashTimer = 0
		g.splashShown = true
		g.setState(StateMenu)
	}
}

func (g *Game) updateMenu(in core.InputFrame) {
	g.moveCursor(in, &g.menuSel, len(mainMenuItems))
	if !confirmed(in) {
		return
	}
	g.play(core.CueMenuSelect)
	switch g.menuSel {
	case menuContinue:
		g.slotSel = 0
		g.confirmDel = false
		g.fadeTo(StateContinueMenu)
	case menuPlay:
		g.coop = false
		g.nameInput = g.nameInput[:0]
		g.nameErr = nil
		g.fadeTo(StateNameInput)
	case menuCoop:
		g.coop = true
		g.levelSel = 0
		g.fadeTo(StateLevelSelect)
	case menuVersus:
		g.startVersus()
	case menuSettings:
		g.stack.clear()
		g.settingsSel = 0
		g.setState(StateSettings)
	case menuCredits:
		g.stack.clear()
		g.setState(StateCredits)
	case menuExit:
		g.setState(StateMenuExitConfirm)
	}
}

func (g *Game) updateExitConfirm(in core.InputFrame) {
	switch {
	case confirmed(in) || in.Has(core.ActionYes):
		g.exit = true
	case in.Has(core.ActionBack) || in.Has(core.ActionDelete) || in.Has(core.ActionNo):
		g.play(core.CueMenuSelect)
		g.menuSel = 0
		g.setState(StateMenu)
	}
}

func (g *Game) updateNameInput(in core.InputFrame) {
	for _, r := range in.Text {
		if NameRune(r) && len(g.nameInput) < MaxNameLength {
			g.nameInput = append(g.nameInput, r)
		}
	}
	if in.Has(core.ActionDelete) && len(g.nameInput) > 0 {
		g.nameInput = g.nameInput[:len(g.nameInput)-1]
	}

	name := string(g.nameInput)
	err := ValidateName(name)
	if len(g.nameInput) > 0 {
		g.nameErr = err
	} else {
		g.nameErr = nil
	}

	switch {
	case in.Has(core.ActionConfirm) && err == nil:
		tutorialDone := g.prog.tutorialDone
		g.prog = g.newProgress(name)
		g.prog.tutorialDone = tutorialDone
		g.levelSel = 0
		g.setState(StateLevelSelect)
	case in.Has(core.ActionBack):
		g.nameInput = g.nameInput[:0]
		g.nameErr = nil
		g.setState(StateMenu)
	}
}

func (g *Game) saveSlots() int {
	return max(g.cfg.Rules.SaveSlots, 1)
}

func (g *Game) slotExists(slot int) bool {
	return g.profiles != nil && g.profiles.Exists(slot)
}

func (g *Game) updateContinue(in core.InputFrame) {
	if g.confirmDel {
		switch {
		case in.Has(core.ActionYes):
			if err := g.profiles.Delete(g.slotSel); err != nil {
				g.showNotice("Error deleting save: %v", err)
			}
			g.confirmDel = false
		case in.Has(core.ActionNo) || in.Has(core.ActionBack):
			g.confirmDel = false
		}
		return
	}

	g.moveCursor(in, &g.slotSel, g.saveSlots())
	switch {
	case in.Has(core.ActionConfirm):
		if g.slotExists(g.slotSel) {
			g.continueFrom(g.slotSel)
		}
	case in.Has(core.ActionDelete):
		if g.slotExists(g.slotSel) {
			g.confirmDel = true
		}
	case in.Has(core.ActionBack):
		g.setState(StateMenu)
	}
}

func (g *Game) updateSettings(in core.InputFrame) {
	g.moveCursor(in, &g.settingsSel, len(settingsItems))

	adjust := in.Has(core.ActionLeft) || in.Has(core.ActionRight)
	switch g.settingsSel {
	case settingSound, settingDifficulty, settingColorblind, settingAssist:
		if adjust || confirmed(in) {
			g.toggleSetting(g.settingsSel)
			g.play(core.CueMenuSelect)
		}
	case settingControls:
		if confirmed(in) {
			g.controlSel = 0
			g.controlFor = core.Player1
			g.pending = nil
			g.setState(StateControls)
			return
		}
	case settingBack:
		if confirmed(in) {
			g.play(core.CueMenuSelect)
			g.back()
			return
		}
	}

	if in.Has(core.ActionBack) {
		g.play(core.CueMenuSelect)
		g.back()
	}
}

func (g *Game) toggleSetting(item int) {
	switch item {
	case settingSound:
		g.sound = !g.sound
		if g.audio != nil {
			g.audio.SetEnabled(g.sound)
		}
	case settingDifficulty:
		g.cfg.Difficulty = g.cfg.Difficulty.Next()
		g.params = actor.ParamsFromConfig(g.cfg)
	case settingColorblind:
		g.colorblind = !g.colorblind
	case settingAssist:
		g.assist = !g.assist
	}
}

func (g *Game) updateControls(in core.InputFrame) {
	if g.pending != nil {
		if in.Has(core.ActionBack) {
			g.pending = nil
			g.play(core.CueMenuSelect)
			return
		}
		for _, key := range in.PressedKeys() {
			if capturable(key) {
				g.bindings.Bind(g.pending.player, g.pending.control, key)
				g.pending = nil
				g.play(core.CueMenuSelect)
				return
			}
		}
		return
	}

	switch {
	case in.Has(core.ActionLeft) && g.controlSel > 0:
		g.controlSel--
		g.play(core.CueMenuSelect)
	case in.Has(core.ActionRight) && g.controlSel < int(controlCount)-1:
		g.controlSel++
		g.play(core.CueMenuSelect)
	case in.Has(core.ActionUp) && g.controlFor == core.Player2:
		g.controlFor = core.Player1
		g.controlSel = 0
		g.play(core.CueMenuSelect)
	case in.Has(core.ActionDown) && g.controlFor == core.Player1:
		g.controlFor = core.Player2
		g.controlSel = 0
		g.play(core.CueMenuSelect)
	case confirmed(in):
		g.pending = &capture{player: g.controlFor, control: Control(g.controlSel)}
		g.play(core.CueMenuSelect)
	case in.Has(core.ActionBack):
		g.setState(StateSettings)
		g.play(core.CueMenuSelect)
	}
}

// Capturing reports whether a rebind is waiting for a key.
func (g *Game) Capturing() bool {
	return g.pending != nil
}

func (g *Game) updateCredits(in core.InputFrame) {
	if confirmed(in) || in.Has(core.ActionBack) {
		g.back()
	}
}

func (g *Game) updateTutorial(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft) && g.tutorialPg > 0:
		g.tutorialPg--
		g.play(core.CueMenuSelect)
	case in.Has(core.ActionRight) && g.tutorialPg < tutorialPages-1:
		g.tutorialPg++
		g.play(core.CueMenuSelect)
	case confirmed(in):
		if g.tutorialPg == tutorialPages-1 {
			g.prog.tutorialDone = true
			g.fadeTo(StateLevelSelect)
		} else {
			g.tutorialPg++
		}
	case in.Has(core.ActionBack):
		g.fadeTo(StateLevelSelect)
	}
}

func (g *Game) updateLevelSelect(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		for i := g.levelSel - 1; i >= 0; i-- {
			if g.prog.unlocked[i] {
				g.levelSel = i
				break
			}
		}
	case in.Has(core.ActionRight):
		for i := g.levelSel + 1; i < len(g.prog.unlocked); i++ {
			if g.prog.unlocked[i] {
				g.levelSel = i
				break
			}
		}
	case confirmed(in):
		if g.levelSel >= len(g.prog.unlocked) || !g.prog.unlocked[g.levelSel] {
			return
		}
		if g.levelSel == 0 && !g.prog.tutorialDone {
			g.tutorialPg = 0
			g.fadeTo(StateTutorial)
			return
		}
		g.prog.score = 0
		g.prog.lastCheckpoint = nil
		g.startLevel(g.levelSel + 1)
	case in.Has(core.ActionBack):
		g.coop = false
		g.menuSel = 0
		g.setState(StateMenu)
	}
}

func (g *Game) updatePause(in core.InputFrame) {
	g.moveCursor(in, &g.pauseSel, len(pauseMenuItems))
	switch {
	case confirmed(in):
		g.play(core.CueMenuSelect)
		switch g.pauseSel {
		case pauseResume:
			g.back()
		case pauseSettings:
			g.stack.push(StatePause)
			g.settingsSel = 0
			g.setState(StateSettings)
		case pauseCredits:
			g.stack.push(StatePause)
			g.setState(StateCredits)
		case pauseMainMenu:
			g.leaveToMenu()
		}
	case in.Has(core.ActionPause) || in.Has(core.ActionBack):
		g.back()
	}
}
