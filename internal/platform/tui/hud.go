package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/game"
)

// hudRows is the number of terminal rows under the play field.
const hudRows = 2

// HUD bar widths
const (
	healthBarWidth = 16
	reloadBarWidth = 8
)

// hudSource is implemented by games that expose player status.
type hudSource interface {
	HUD() game.HUD
}

var (
	hudTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hudLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	hudReadyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hudWaitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	hudWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	hudHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	hudSeparator  = hudLabelStyle.Render(" │ ")
)

// hudView draws the status and help rows.
type hudView struct {
	keys     KeyMap
	help     help.Model
	health   progress.Model
	reload   progress.Model
	width    int
	showHelp bool
}

func newHUDView(keys KeyMap, width int) *hudView {
	h := help.New()
	h.Width = width
	return &hudView{
		keys: keys,
		help: h,
		health: progress.New(
			progress.WithSolidFill("9"),
			progress.WithWidth(healthBarWidth),
			progress.WithoutPercentage(),
		),
		reload: progress.New(
			progress.WithSolidFill("11"),
			progress.WithWidth(reloadBarWidth),
			progress.WithoutPercentage(),
		),
		width:    width,
		showHelp: true,
	}
}

func (v *hudView) setWidth(w int) {
	v.width = w
	v.help.Width = w
}

func (v *hudView) toggleHelp() {
	v.showHelp = !v.showHelp
}

// view renders the HUD rows for the given status.
func (v *hudView) view(h game.HUD, st core.GameState) string {
	status := ansi.Truncate(v.statusLine(h), v.width, "…")

	var bottom string
	switch {
	case st.GameOver:
		bottom = hudHelpStyle.Render("r: restart  •  b: menu  •  ctrl+c: quit")
	case h.Dialogue:
		bottom = hudHelpStyle.Render("enter: next line  •  e: interact")
	case v.showHelp:
		bottom = hudHelpStyle.Render(v.help.View(v.keys))
	default:
		bottom = hudHelpStyle.Render("?: show keys")
	}
	return status + "\n" + ansi.Truncate(bottom, v.width, "…")
}

func (v *hudView) statusLine(h game.HUD) string {
	parts := []string{hudTitleStyle.Render(h.Title)}
	if h.Level != "" {
		parts = append(parts, hudValueStyle.Render(h.Level))
	}

	frac := 0.0
	if h.MaxHealth > 0 {
		frac = core.ClampF(h.Health/h.MaxHealth, 0, 1)
	}
	parts = append(parts, hudLabelStyle.Render("HP ")+v.health.ViewAs(frac)+
		hudValueStyle.Render(fmt.Sprintf(" %.0f", h.Health)))

	gun := hudValueStyle.Render(fmt.Sprintf("%s %d/%d", h.Gun, h.Ammo, h.MaxAmmo))
	switch {
	case h.Reloading:
		gun += " " + v.reload.ViewAs(h.ReloadFraction)
	case h.Ammo == 0 && h.MaxAmmo > 0:
		gun += hudWarnStyle.Render(" reload!")
	}
	parts = append(parts, gun)

	parts = append(parts, readiness("roll", h.RollReady)+" "+readiness("rewind", h.RewindReady))
	parts = append(parts, hudLabelStyle.Render("kills ")+hudValueStyle.Render(fmt.Sprint(h.Kills)))
	if h.Wave > 0 {
		parts = append(parts, hudLabelStyle.Render("wave ")+hudValueStyle.Render(fmt.Sprint(h.Wave)))
	}
	return strings.Join(parts, hudSeparator)
}

// readiness renders an ability name lit when it can be used.
func readiness(name string, ready bool) string {
	if ready {
		return hudReadyStyle.Render("●" + name)
	}
	return hudWaitStyle.Render("○" + name)
}
