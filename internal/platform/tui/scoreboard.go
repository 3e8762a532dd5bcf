package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rewind/internal/registry"
	"github.com/vovakirdan/tui-rewind/internal/storage"
)

const (
	boardRuns       = 100 // runs loaded per mode
	statsPanelWidth = 24
	sideBySideWidth = 78 // narrower screens stack the stats under the table
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	boardDetailLine = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// boardKeys are the scoreboard bindings. Each binding carries every key
// that does the same thing, so help lists it once.
type boardKeys struct {
	Scroll   key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.NextMode, k.PrevMode, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultBoardKeys() boardKeys {
	return boardKeys{
		Scroll:   key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "browse runs")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best runs of each mode next to the mode's
// totals and the details of the highlighted run.
type ScoreboardModel struct {
	modes []registry.GameInfo
	mode  int
	store *storage.Store

	runs  []storage.Run
	stats *storage.GameStats
	err   error

	table table.Model
	help  help.Model
	keys  boardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard opened on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes: registry.List(),
		store: store,
		help:  help.New(),
		keys:  defaultBoardKeys(),
	}
	m.table = table.New(table.WithFocused(true), table.WithStyles(boardTableStyles()))
	m.resize(width, height)
	m.load()
	return m
}

func boardTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

// sideBySide reports whether the stats panel fits beside the table.
func (m *ScoreboardModel) sideBySide() bool { return m.width >= sideBySideWidth }

// resize fits the table columns and height to the screen.
func (m *ScoreboardModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	avail := width - 4
	if m.sideBySide() {
		avail -= statsPanelWidth + 4
	}
	level := min(max(avail-38, 10), 20)
	m.table.SetColumns([]table.Column{
		{Title: "#", Width: 4},
		{Title: "Kills", Width: 6},
		{Title: "Reached", Width: level},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 13},
	})

	rows := height - 9 // title, tabs, detail line, help and borders
	if !m.sideBySide() {
		rows -= 7
	}
	m.table.SetHeight(max(rows, 3))
}

// load fetches the runs and totals of the current mode.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.err = nil, nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		m.runs, m.err = m.store.TopRuns(id, boardRuns)
		if m.err == nil {
			m.stats, m.err = m.store.GetGameStats(id)
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = runRow(i+1, r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves to the mode step places away, wrapping around.
func (m *ScoreboardModel) cycle(step int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + step + len(m.modes)) % len(m.modes)
	m.load()
}

// Selected returns the highlighted run, or nil when the mode has none.
func (m ScoreboardModel) Selected() *storage.Run {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return nil
	}
	return &m.runs[i]
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cycle(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	board := m.viewRuns()
	stats := m.viewStats()
	var body string
	if m.sideBySide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, board, " ", stats)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, board, stats)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		centerText(boardTitleStyle.Render("BEST RUNS"), m.width),
		"",
		centerText(m.viewTabs(), m.width),
		"",
		body,
		boardDetailLine.Render(m.viewDetail()),
		"",
		menuHelpStyle.Render(m.help.View(m.keys)),
	)
}

// viewTabs lists the modes, or only the current one between arrows when
// the list would not fit.
func (m ScoreboardModel) viewTabs() string {
	if len(m.modes) == 0 {
		return ""
	}
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = boardActiveTab.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = "< " + boardActiveTab.Render(m.modes[m.mode].Title) + " >"
	}
	return line
}

func (m ScoreboardModel) viewRuns() string {
	switch {
	case m.err != nil:
		return boardPanelStyle.Render(boardEmptyStyle.Render("Could not read runs:\n" + m.err.Error()))
	case len(m.runs) == 0:
		return boardPanelStyle.Render(boardEmptyStyle.Render("No runs recorded yet.\nPlay a run to set a record!"))
	}
	return boardPanelStyle.Render(m.table.View())
}

// viewStats renders the mode's totals.
func (m ScoreboardModel) viewStats() string {
	st := m.stats
	if st == nil {
		st = &storage.GameStats{}
	}
	last := "never"
	if !st.LastPlayed.IsZero() {
		last = st.LastPlayed.Format("Jan 02 15:04")
	}
	lines := []string{
		hudTitleStyle.Render("Totals"),
		statLine("Runs", fmt.Sprint(st.GamesCount)),
		statLine("Clears", fmt.Sprint(st.Clears)),
		statLine("Best", fmt.Sprint(st.HighScore)),
		statLine("Average", fmt.Sprintf("%.1f", st.AvgScore)),
		statLine("Kills", fmt.Sprint(st.TotalScore)),
		statLine("Last", last),
	}
	return boardPanelStyle.Width(statsPanelWidth).Render(strings.Join(lines, "\n"))
}

func statLine(label, value string) string {
	return hudLabelStyle.Render(fmt.Sprintf("%-8s", label)) + hudValueStyle.Render(value)
}

// viewDetail describes the highlighted run in one line.
func (m ScoreboardModel) viewDetail() string {
	r := m.Selected()
	if r == nil {
		return ""
	}
	outcome := "reached " + r.Level
	if r.Cleared {
		outcome = "cleared the campaign"
	}
	return fmt.Sprintf(" run %s  %s in %s", r.RunID, outcome, runClock(r.Duration))
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// RunScoreboard runs the scoreboard as its own program. It returns true
// when the player went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}

// runRow formats one run for the table. Cleared runs get a star.
func runRow(rank int, r storage.Run) table.Row {
	level := r.Level
	if r.Cleared {
		level = "★ " + level
	}
	return table.Row{
		fmt.Sprintf("%d", rank),
		fmt.Sprintf("%d", r.Score),
		level,
		runClock(r.Duration),
		r.CreatedAt.Format("Jan 02 15:04"),
	}
}

// runClock formats a run length as m:ss.
func runClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
