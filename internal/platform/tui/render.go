package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rewind/internal/core"
)

// palette holds the terminal color for each core.Color. Colors missing
// from it render unstyled.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorDarkGray:      "238",
}

// frozen maps a color to how it shows while the world is stopped: actors
// and effects fade to dark gray, plain text and overlay frames keep theirs.
func frozen(c core.Color) core.Color {
	switch c {
	case core.ColorDefault, core.ColorBrightWhite:
		return c
	}
	return core.ColorDarkGray
}

// RenderScreen turns the screen buffer into styled terminal text, one
// escape sequence per run of same-colored cells. With dim set the play
// field is drawn frozen, for pause and game over.
func RenderScreen(s *core.Screen, dim bool) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run []rune
	flush := func(c core.Color) {
		if len(run) == 0 {
			return
		}
		if fg, ok := palette[c]; ok {
			sb.WriteString(lipgloss.NewStyle().Foreground(fg).Render(string(run)))
		} else {
			sb.WriteString(string(run))
		}
		run = run[:0]
	}

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		cur := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			c := cell.Color
			if dim {
				c = frozen(c)
			}
			if c != cur {
				flush(cur)
				cur = c
			}
			run = append(run, cell.Rune)
		}
		flush(cur)
	}
	return sb.String()
}
