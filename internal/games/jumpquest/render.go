package jumpquest

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels"
)

// Visual characters for rendering
const (
	PlatformChar   = '█'
	GroundChar     = '▀'
	PlayerChar     = '@'
	GhostChar      = '░' // respawning player
	EnemyChar      = 'M'
	CoinChar       = 'o'
	CheckpointChar = '⚑'
	FinishChar     = '┃'
	CurtainChar    = '▒'
)

const (
	minScreenW = 40
	minScreenH = 12
)

var playerColors = [2]core.Color{core.ColorBrightCyan, core.ColorBrightMagenta}

var credits = []string{
	"JUMP QUEST",
	"",
	"Made by guicybercode",
	"",
	"Terminal edition",
	"Bubble Tea + Lip Gloss",
	"",
	"Press ENTER to return",
}

// viewport projects world coordinates into the play area of the screen.
type viewport struct {
	camX   float64
	sx, sy float64
	top    int
	w, h   int
}

func (g *Game) viewport(dst *core.Screen, camX float64) viewport {
	h := dst.Height() - 2
	return viewport{
		camX: camX,
		sx:   float64(dst.Width()) / g.cfg.World.ViewWidth,
		sy:   float64(h) / g.cfg.World.ViewHeight,
		top:  1,
		w:    dst.Width(),
		h:    h,
	}
}

func (v viewport) cell(x, y float64) (int, int) {
	return int(math.Floor((x - v.camX) * v.sx)), v.top + int(math.Floor(y*v.sy))
}

// fill draws b as a block of r, at least one cell in each direction.
func (v viewport) fill(dst *core.Screen, b core.Box, r rune, c core.Color) {
	x0, y0 := v.cell(b.X, b.Y)
	x1, y1 := v.cell(b.Right(), b.Bottom())
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)
	for y := max(y0, v.top); y < min(y1, v.top+v.h); y++ {
		for x := max(x0, 0); x < min(x1, v.w); x++ {
			dst.SetColored(x, y, r, c)
		}
	}
}

func (g *Game) color(c core.Color) core.Color {
	if g.colorblind {
		return c.Colorblind()
	}
	return c
}

// Render draws the active screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	switch g.state {
	case StateSplash:
		g.renderSplash(dst)
	case StateMenu:
		g.renderMenu(dst, "JUMP QUEST", mainMenuItems, g.menuSel)
	case StateMenuExitConfirm:
		g.drawCenteredBox(dst, "EXIT GAME?", "ENTER to quit  |  ESC to cancel")
	case StateNameInput:
		g.renderNameInput(dst)
	case StateContinueMenu:
		g.renderContinue(dst)
	case StateSettings:
		g.renderSettings(dst)
	case StateControls:
		g.renderControls(dst)
	case StateCredits:
		g.renderLines(dst, credits)
	case StateTutorial:
		g.renderTutorial(dst)
	case StateLevelSelect:
		g.renderLevelSelect(dst)
	case StatePlaying, StateCoop, StateRespawn, StatePause, StateGameOver, StateLevelComplete:
		g.renderLevel(dst)
		g.renderLevelOverlay(dst)
	case StateVersus, StateVersusEnd:
		g.renderVersus(dst)
	}

	g.renderCurtain(dst)
	if g.notice.text != "" {
		dst.DrawTextCenteredColored(dst.Height()-1, g.notice.text, g.color(core.ColorBrightRed))
	}
}

func (g *Game) renderSplash(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-2, "J U M P   Q U E S T", g.color(core.ColorBrightYellow))
	dst.DrawTextCenteredColored(mid, "@   o   M   ⚑", g.color(core.ColorBrightCyan))
	dst.DrawTextCenteredColored(mid+2, "Press ENTER", core.ColorGray)
}

func (g *Game) renderMenu(dst *core.Screen, title string, items []string, sel int) {
	top := max((dst.Height()-len(items)*2-2)/2, 0)
	dst.DrawTextCenteredColored(top, title, g.color(core.ColorBrightYellow))
	for i, item := range items {
		c := core.ColorWhite
		if i == sel {
			item = "> " + item + " <"
			c = g.color(core.ColorBrightGreen)
		}
		dst.DrawTextCenteredColored(top+2+i*2, item, c)
	}
}

func (g *Game) renderLines(dst *core.Screen, lines []string) {
	top := max((dst.Height()-len(lines))/2, 0)
	for i, line := range lines {
		c := core.ColorGray
		if i == 0 {
			c = g.color(core.ColorBrightYellow)
		}
		dst.DrawTextCenteredColored(top+i, line, c)
	}
}

func (g *Game) renderNameInput(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-3, "ENTER YOUR NAME", g.color(core.ColorBrightYellow))
	dst.DrawTextCentered(mid-1, "["+string(g.nameInput)+"_]")
	if g.nameErr != nil {
		dst.DrawTextCenteredColored(mid+1, g.nameErr.Error(), g.color(core.ColorRed))
	}
	dst.DrawTextCenteredColored(mid+3, "ENTER to confirm  |  ESC to go back", core.ColorGray)
}

func (g *Game) renderContinue(dst *core.Screen) {
	items := make([]string, g.saveSlots())
	for i := range items {
		items[i] = fmt.Sprintf("SLOT %d: EMPTY", i+1)
	}
	if g.profiles != nil {
		for _, info := range g.profiles.List() {
			if info.Slot < 0 || info.Slot >= len(items) || !info.Exists {
				continue
			}
			if info.Err != nil {
				items[info.Slot] = fmt.Sprintf("SLOT %d: UNREADABLE", info.Slot+1)
				continue
			}
			p := info.Profile
			items[info.Slot] = fmt.Sprintf("SLOT %d: %s  L%d  %d pts", info.Slot+1, p.PlayerName, p.CurrentLevel, p.Score)
		}
	}
	g.renderMenu(dst, "CONTINUE", items, g.slotSel)

	hint := "ENTER load  |  DEL delete  |  ESC back"
	if g.confirmDel {
		hint = fmt.Sprintf("Delete slot %d? Y / N", g.slotSel+1)
	}
	dst.DrawTextCenteredColored(dst.Height()-2, hint, core.ColorGray)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func (g *Game) renderSettings(dst *core.Screen) {
	items := make([]string, len(settingsItems))
	copy(items, settingsItems)
	items[settingSound] += ": " + onOff(g.sound)
	items[settingDifficulty] += ": " + g.cfg.Difficulty.Label()
	items[settingColorblind] += ": " + onOff(g.colorblind)
	items[settingAssist] += ": " + onOff(g.assist)
	g.renderMenu(dst, "SETTINGS", items, g.settingsSel)
}

func (g *Game) renderControls(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-4, "CONTROLS", g.color(core.ColorBrightYellow))
	for i, id := range []core.PlayerID{core.Player1, core.Player2} {
		var parts []string
		for c := range controlCount {
			label := fmt.Sprintf("%s: %s", c, KeyLabel(g.bindings.Key(id, c)))
			if id == g.controlFor && int(c) == g.controlSel {
				label = "[" + label + "]"
			}
			parts = append(parts, label)
		}
		line := fmt.Sprintf("P%d  %s", i+1, strings.Join(parts, "  "))
		c := core.ColorWhite
		if id == g.controlFor {
			c = g.color(playerColors[i])
		}
		dst.DrawTextCenteredColored(mid-1+i*2, line, c)
	}
	hint := "←/→ select  |  ↑/↓ player  |  ENTER rebind  |  ESC back"
	if g.pending != nil {
		hint = fmt.Sprintf("Press a key for P%d %s (ESC cancels)", g.pending.player, g.pending.control)
	}
	dst.DrawTextCenteredColored(mid+4, hint, core.ColorGray)
}

func (g *Game) renderTutorial(dst *core.Screen) {
	g.renderLines(dst, tutorial[g.tutorialPg])
	dst.DrawTextCenteredColored(dst.Height()-2, fmt.Sprintf("%d/%d", g.tutorialPg+1, tutorialPages), core.ColorGray)
}

func (g *Game) renderLevelSelect(dst *core.Screen) {
	title := "SELECT LEVEL"
	if g.coop {
		title = "SELECT LEVEL (CO-OP)"
	}
	items := make([]string, len(g.prog.unlocked))
	for i := range items {
		layout, err := g.provider.Layout(i + 1)
		switch {
		case err != nil:
			items[i] = fmt.Sprintf("LEVEL %d  UNAVAILABLE", i+1)
		case !g.prog.unlocked[i]:
			items[i] = fmt.Sprintf("LEVEL %d  LOCKED", i+1)
		default:
			items[i] = fmt.Sprintf("%s  %s  %d coins", strings.ToUpper(layout.Name), layout.Difficulty, layout.TotalCoins())
		}
	}
	g.renderMenu(dst, title, items, g.levelSel)
	dst.DrawTextCenteredColored(dst.Height()-2, "←/→ choose  |  ENTER play  |  ESC back", core.ColorGray)
}

// renderLevel draws the loaded session world and HUD.
func (g *Game) renderLevel(dst *core.Screen) {
	s := g.sess
	if s == nil {
		return
	}
	v := g.viewport(dst, s.Camera.X)
	g.renderWorld(dst, v, s.Layout)

	for _, cp := range s.Checkpoints {
		c := core.ColorBlue
		if cp.Activated {
			c = core.ColorBrightGreen
		}
		v.fill(dst, core.NewBox(cp.X, cp.Y, g.rules.CheckpointW, g.rules.CheckpointH), CheckpointChar, g.color(c))
	}
	for _, coin := range s.Coins {
		if !coin.Collected {
			v.fill(dst, core.NewBox(coin.X, coin.Y, g.rules.CoinSize, g.rules.CoinSize), CoinChar, g.color(core.ColorBrightYellow))
		}
	}
	for _, e := range s.Enemies {
		if e.Alive {
			v.fill(dst, e.Box(), EnemyChar, g.color(core.ColorRed))
		}
	}
	fx, _ := v.cell(g.cfg.World.CompleteX, 0)
	for y := v.top; y < v.top+v.h; y++ {
		if fx >= 0 && fx < v.w {
			dst.SetColored(fx, y, FinishChar, g.color(core.ColorBrightWhite))
		}
	}
	for i, ps := range s.Players {
		r := PlayerChar
		if !ps.Active() {
			r = GhostChar
		}
		v.fill(dst, ps.Box(), r, g.color(playerColors[i%2]))
	}

	hud := fmt.Sprintf("Score: %d", g.prog.score)
	dst.DrawText(1, 0, hud)
	dst.DrawTextCentered(0, fmt.Sprintf("%s  Coins: %d/%d  Lives: %d", s.Layout.Name, s.CoinsCollected, s.TotalCoins(), g.prog.lives))
	timeText := fmt.Sprintf("Time: %d", int(math.Ceil(s.TimeRemaining)))
	dst.DrawText(dst.Width()-utf8.RuneCountInString(timeText)-1, 0, timeText)

	if s.StartFade > 0 {
		dst.DrawTextCenteredColored(dst.Height()/2, strings.ToUpper(s.Layout.Name)+"  "+s.Layout.Difficulty, g.color(core.ColorBrightYellow))
	}
}

func (g *Game) renderWorld(dst *core.Screen, v viewport, layout levels.Layout) {
	ground := core.NewBox(0, g.rules.GroundY, layout.Width, g.cfg.World.ViewHeight-g.rules.GroundY)
	v.fill(dst, ground, GroundChar, g.color(core.ColorGreen))
	for _, p := range layout.Platforms {
		v.fill(dst, p, PlatformChar, g.color(core.ColorGreen))
	}
}

func (g *Game) renderLevelOverlay(dst *core.Screen) {
	switch g.state {
	case StatePause:
		g.renderMenuBox(dst, "PAUSED", pauseMenuItems, g.pauseSel)
	case StateRespawn:
		g.drawCenteredBox(dst, "OUCH!", fmt.Sprintf("Lives left: %d", g.prog.lives))
	case StateGameOver:
		sub := fmt.Sprintf("Score: %d", g.prog.score)
		if g.gameOverFade <= 0 {
			sub += "  |  ENTER retry  |  ESC levels"
		}
		g.drawCenteredBox(dst, "GAME OVER", sub)
	case StateLevelComplete:
		g.drawCenteredBox(dst, "LEVEL COMPLETE!", fmt.Sprintf("Score: %d  |  Press ENTER", g.prog.score))
	}
}

func (g *Game) renderVersus(dst *core.Screen) {
	r := g.round
	if r == nil {
		return
	}
	v := g.viewport(dst, r.Camera.X)
	g.renderWorld(dst, v, r.Arena)
	for i, f := range r.Fighters {
		ch := PlayerChar
		if !f.Active() {
			ch = GhostChar
		}
		v.fill(dst, f.Box(), ch, g.color(playerColors[i]))
	}

	res := r.Result()
	dst.DrawTextColored(1, 0, fmt.Sprintf("P1: %d (%d)", res.P1Points, res.P1Kills), g.color(playerColors[0]))
	dst.DrawTextCentered(0, fmt.Sprintf("Time: %d", int(math.Ceil(r.TimeRemaining))))
	p2 := fmt.Sprintf("P2: %d (%d)", res.P2Points, res.P2Kills)
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(p2)-1, 0, p2, g.color(playerColors[1]))

	if g.state == StateVersusEnd {
		title := "DRAW!"
		switch res.Winner() {
		case core.Player1:
			title = "PLAYER 1 WINS!"
		case core.Player2:
			title = "PLAYER 2 WINS!"
		}
		g.drawCenteredBox(dst, title, fmt.Sprintf("%d - %d  |  Press ENTER", res.P1Points, res.P2Points))
	}
}

// renderCurtain covers the screen from the top in proportion to the fade.
func (g *Game) renderCurtain(dst *core.Screen) {
	if !g.transition.Active() {
		return
	}
	rows := int(math.Round(g.transition.Alpha() * float64(dst.Height())))
	dst.DrawRect(core.NewRect(0, 0, dst.Width(), rows), CurtainChar, core.ColorGray)
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	dst.DrawTextCenteredColored(boxY+1, title, g.color(core.ColorBrightYellow))
	dst.DrawTextCentered(boxY+3, subtitle)
}

// renderMenuBox draws a boxed menu over the world.
func (g *Game) renderMenuBox(dst *core.Screen, title string, items []string, sel int) {
	boxW := utf8.RuneCountInString(title) + 4
	for _, it := range items {
		boxW = max(boxW, utf8.RuneCountInString(it)+8)
	}
	boxH := len(items) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)
	dst.DrawTextCenteredColored(boxY+1, title, g.color(core.ColorBrightYellow))
	for i, it := range items {
		c := core.ColorWhite
		if i == sel {
			it = "> " + it + " <"
			c = g.color(core.ColorBrightGreen)
		}
		dst.DrawTextCenteredColored(boxY+3+i, it, c)
	}
}
