package game

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/enemy"
	"github.com/vovakirdan/tui-rewind/internal/world"
)

// Visual characters for rendering
const (
	WallChar     = '▓'
	FogChar      = '░'
	ObstacleChar = '█'
	DoorChar     = '▒'
	ExitChar     = '◎'
	SpawnerChar  = '¤'
	PopupChar    = '?'
	TalkChar     = '!'
	MeleeChar    = 'm'
	ShooterChar  = 's'
	PlayerChar   = '@'
	RollChar     = '*'
	MarkerChar   = '◌'
	ShotChar     = '•'
	AimChar      = '+'
	BarFull      = '■'
	BarEmpty     = '□'
)

// dialogueRows is the height of the dialogue box including its border.
const dialogueRows = 5

// drawScene draws the world as seen by the scene's camera, then the text
// overlays on top.
func drawScene(dst *core.Screen, s *world.Scene) {
	drawTerrain(dst, s)
	drawObstacleBars(dst, s)
	drawTriggers(dst, s)
	drawEnemies(dst, s)
	drawPlayer(dst, s)
	drawProjectiles(dst, s)
	drawPopup(dst, s)
	drawDialogue(dst, s)
}

// drawTerrain fills every cell from what lies under its centre.
func drawTerrain(dst *core.Screen, s *world.Scene) {
	for row := 0; row < dst.Height(); row++ {
		for col := 0; col < dst.Width(); col++ {
			p := s.PointerWorld(col, row)
			switch {
			case s.Manager.RoomAt(p) == nil:
				dst.SetColored(col, row, WallChar, core.ColorDarkGray)
			case s.Hidden(p):
				dst.SetColored(col, row, FogChar, core.ColorDarkGray)
			case solidAt(s, p):
				dst.SetColored(col, row, ObstacleChar, core.ColorGray)
			case doorAt(s, p):
				dst.SetColored(col, row, DoorChar, core.ColorYellow)
			}
		}
	}
}

func solidAt(s *world.Scene, p core.Vec2) bool {
	for _, o := range s.Obstacles() {
		if o.Active() && o.Box.Contains(p) {
			return true
		}
	}
	return false
}

func doorAt(s *world.Scene, p core.Vec2) bool {
	for _, d := range s.Doors() {
		if d.Active() && d.Box.Contains(p) {
			return true
		}
	}
	return false
}

// drawObstacleBars shows the bar of each damaged destructible obstacle
// along its top edge.
func drawObstacleBars(dst *core.Screen, s *world.Scene) {
	for _, o := range s.Obstacles() {
		if !o.Active() || !o.Destructible() || s.Hidden(o.Box.Center()) {
			continue
		}
		if bar := o.Body.Healthbar(); bar != nil && bar.Visible() {
			col, row := s.ToScreen(core.V(o.Box.Center().X, o.Box.MaxY))
			drawBar(dst, col-1, row-1, 3, bar.Fraction())
		}
	}
}

// drawTriggers marks exits, spawners and text sources that can still fire.
func drawTriggers(dst *core.Screen, s *world.Scene) {
	for _, t := range s.Triggers() {
		if !t.Active() {
			continue
		}
		switch t := t.(type) {
		case *world.LevelEnd:
			plot(dst, s, t.Pos(), ExitChar, core.ColorBrightGreen)
		case *world.EnemySpawner:
			plot(dst, s, t.Pos(), SpawnerChar, core.ColorMagenta)
		case *world.TextSource:
			if !t.Ready() {
				continue
			}
			if t.Kind == world.TextDialogue {
				plot(dst, s, t.Pos(), TalkChar, core.ColorBrightCyan)
			} else {
				plot(dst, s, t.Pos(), PopupChar, core.ColorCyan)
			}
		}
	}
}

func drawEnemies(dst *core.Screen, s *world.Scene) {
	for _, e := range s.Manager.ActiveEnemies() {
		ch, color := MeleeChar, core.ColorRed
		if e.Kind() == enemy.KindShooter {
			ch, color = ShooterChar, core.ColorOrange
		}
		if e.State() == enemy.StateAttacking {
			ch -= 'a' - 'A'
			color = core.ColorBrightRed
		}
		if !plot(dst, s, e.Body.Pos, ch, color) {
			continue
		}
		if bar := e.Body.Healthbar(); bar != nil && bar.Visible() {
			col, row := s.ToScreen(e.Body.Pos)
			drawBar(dst, col-1, row-1, 3, bar.Fraction())
		}
	}
}

// drawBar draws a small healthbar of w cells starting at (x, y).
func drawBar(dst *core.Screen, x, y, w int, frac float64) {
	filled := int(frac*float64(w) + 0.5)
	for i := 0; i < w; i++ {
		if i < filled {
			dst.SetColored(x+i, y, BarFull, core.ColorRed)
		} else {
			dst.SetColored(x+i, y, BarEmpty, core.ColorDarkGray)
		}
	}
}

func drawPlayer(dst *core.Screen, s *world.Scene) {
	p := s.Player
	if p.MarkerReady() {
		color := core.ColorBlue
		if p.RewindCooldown() <= 0 {
			color = core.ColorBrightBlue
		}
		plot(dst, s, p.Marker(), MarkerChar, color)
	}
	plot(dst, s, p.Aim(), AimChar, core.ColorGray)
	if !p.Body.Active() {
		return
	}
	if p.Rolling() {
		plot(dst, s, p.Pos(), RollChar, core.ColorBrightCyan)
		return
	}
	plot(dst, s, p.Pos(), PlayerChar, core.ColorBrightWhite)
}

func drawProjectiles(dst *core.Screen, s *world.Scene) {
	s.Field.Each(func(pr *combat.Projectile) {
		plot(dst, s, pr.Pos, ShotChar, pr.Tint)
	})
}

// plot draws ch at the cell containing p unless fog hides it. It reports
// whether anything was drawn.
func plot(dst *core.Screen, s *world.Scene, p core.Vec2, ch rune, c core.Color) bool {
	if s.Hidden(p) {
		return false
	}
	col, row := s.ToScreen(p)
	if col < 0 || row < 0 || col >= dst.Width() || row >= dst.Height() {
		return false
	}
	dst.SetColored(col, row, ch, c)
	return true
}

// drawPopup shows popup text one row above the player, kept on screen.
func drawPopup(dst *core.Screen, s *world.Scene) {
	if !s.Popup.Visible() {
		return
	}
	text := " " + s.Popup.Text() + " "
	w := ansi.StringWidth(text)
	col, row := s.ToScreen(s.Player.Pos())
	x := core.Clamp(col-w/2, 0, max(0, dst.Width()-w))
	y := core.Clamp(row-2, 0, dst.Height()-1)
	dst.DrawTextColored(x, y, text, core.ColorBrightYellow)
}

// drawDialogue draws the open dialogue line in a box along the bottom.
func drawDialogue(dst *core.Screen, s *world.Scene) {
	if !s.Dialogue.Active() {
		return
	}
	w, h := dst.Width(), dst.Height()
	if w < 8 || h < dialogueRows {
		return
	}
	box := core.NewRect(0, h-dialogueRows, w, dialogueRows)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorCyan)

	lines := strings.Split(ansi.Wrap(s.Dialogue.Text(), w-4, ""), "\n")
	for i := 0; i < len(lines) && i < dialogueRows-2; i++ {
		dst.DrawText(2, box.Y+1+i, lines[i])
	}

	i, n := s.Dialogue.Line()
	tag := fmt.Sprintf(" %d/%d ", i+1, n)
	if !s.Dialogue.Typing() {
		tag = fmt.Sprintf(" %d/%d ▼ ", i+1, n)
	}
	dst.DrawTextColored(w-2-ansi.StringWidth(tag), box.Bottom()-1, tag, core.ColorCyan)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(ansi.StringWidth(title), ansi.StringWidth(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)

	// Draw text
	dst.DrawText(boxX+(boxW-ansi.StringWidth(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-ansi.StringWidth(subtitle))/2, boxY+3, subtitle)
}
