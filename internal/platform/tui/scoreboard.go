package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/survive2020/internal/registry"
	"github.com/vovakirdan/survive2020/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 20
	maxRuns            = 100
)

// RunSource is the part of the store the scoreboard reads.
type RunSource interface {
	TopRuns(level string, limit int) ([]storage.RunEntry, error)
	Stats(level string) (*storage.LevelStats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextLevel, k.PrevLevel, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextLevel: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next level")),
		PrevLevel: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev level")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the run history of each level with a summary line.
type ScoreboardModel struct {
	levels   []registry.Info
	cursor   int
	source   RunSource
	runs     []storage.RunEntry
	stats    *storage.LevelStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard starting at the given level (the
// first one when empty or unknown).
func NewScoreboardModel(source RunSource, start string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		levels: registry.List(),
		source: source,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, info := range m.levels {
		if info.ID == start {
			m.cursor = i
		}
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
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
	t.SetStyles(s)
	return t
}

// load reads the runs and stats of the selected level.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.source != nil && len(m.levels) > 0 {
		id := m.levels[m.cursor].ID
		m.runs, m.loadErr = m.source.TopRuns(id, maxRuns)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.source.Stats(id)
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.0fs", r.Seconds),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			if len(m.levels) > 0 {
				m.cursor = (m.cursor + 1) % len(m.levels)
				m.load()
			}
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			if len(m.levels) > 0 {
				m.cursor = (m.cursor + len(m.levels) - 1) % len(m.levels)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the level being shown.
func (m ScoreboardModel) Selected() (registry.Info, bool) {
	if len(m.levels) == 0 {
		return registry.Info{}, false
	}
	return m.levels[m.cursor], true
}

// Summary is the stats line under the title.
func (m ScoreboardModel) Summary() string {
	switch {
	case m.loadErr != nil:
		return "Cannot read scores: " + m.loadErr.Error()
	case m.stats == nil || m.stats.Runs == 0:
		return "No runs yet"
	}
	s := m.stats
	return fmt.Sprintf("Runs: %d  Best: %d  Mean: %.1f  StdDev: %.1f  Played: %.0fs",
		s.Runs, s.Best, s.Mean, s.StdDev, s.Seconds)
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := "HIGH SCORES"
	if info, ok := m.Selected(); ok {
		title = "HIGH SCORES - " + info.Title
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render(title)))
	b.WriteString("\n")
	summaryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, summaryStyle.Render(m.Summary())))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := box.Render(m.tableContent())
	if m.width >= minWidthForSidebar {
		content = lipgloss.JoinHorizontal(lipgloss.Top, box.Width(sidebarWidth).Render(m.sidebar()), "  ", content)
	}
	b.WriteString(content)

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) sidebar() string {
	var sb strings.Builder
	sb.WriteString("Levels\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, info := range m.levels {
		sb.WriteString("\n")
		if i == m.cursor {
			sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("> " + info.Title))
			continue
		}
		sb.WriteString("  " + info.Title)
	}
	return sb.String()
}

func (m ScoreboardModel) tableContent() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2).
			Render("No runs recorded yet.\nPlay a level to set a high score!")
	}
	return m.table.View()
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(source RunSource, start string, width, height int) error {
	p := tea.NewProgram(NewScoreboardModel(source, start, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
