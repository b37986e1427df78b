package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/space-dash/internal/progress"
)

// LevelsKeyMap defines the key bindings for the level menu.
type LevelsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Reset  key.Binding
	Back   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LevelsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Reset, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LevelsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Reset, k.Back},
	}
}

// DefaultLevelsKeyMap returns default key bindings.
func DefaultLevelsKeyMap() LevelsKeyMap {
	return LevelsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Reset: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "reset progress"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "l"),
			key.WithHelp("esc", "back"),
		),
	}
}

// LevelsChoice is what the player did in the level menu.
type LevelsChoice int

const (
	LevelsPending LevelsChoice = iota
	LevelsBack
	LevelsPlay
	LevelsReset
)

// LevelsModel lists every level with its unlock state and best run.
// It is embedded in the game model rather than run as its own program.
type LevelsModel struct {
	levels []progress.LevelStatus
	table  table.Model
	help   help.Model
	keys   LevelsKeyMap
	width  int
	height int
	choice LevelsChoice
	notice string
}

// NewLevelsModel builds the menu with the cursor on the current level.
func NewLevelsModel(levels []progress.LevelStatus, current, width, height int) LevelsModel {
	m := LevelsModel{
		levels: levels,
		help:   help.New(),
		keys:   DefaultLevelsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.table.SetRows(levelRows(levels))
	m.table.SetCursor(max(0, current-1))
	return m
}

func (m *LevelsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 7},
		{Title: "Status", Width: 10},
		{Title: "Deaths", Width: 8},
		{Title: "Time", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, min(len(m.levels)+1, m.height-8))),
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

func levelRows(levels []progress.LevelStatus) []table.Row {
	rows := make([]table.Row, len(levels))
	for i, l := range levels {
		status, deaths, secs := "Locked", "-", "-"
		switch {
		case l.Played:
			status = "Completed"
			deaths = fmt.Sprintf("%d", l.Record.Deaths)
			secs = fmt.Sprintf("%ds", l.Record.Time)
		case l.Unlocked:
			status = "Open"
		}
		rows[i] = table.Row{fmt.Sprintf("%d", l.Level), status, deaths, secs}
	}
	return rows
}

// Update handles messages for the menu.
func (m LevelsModel) Update(msg tea.Msg) (LevelsModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.notice = ""
		switch {
		case key.Matches(msg, m.keys.Back):
			m.choice = LevelsBack
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.choice = LevelsReset
			return m, nil
		case key.Matches(msg, m.keys.Select):
			if l, ok := m.Selected(); ok && l.Unlocked {
				m.choice = LevelsPlay
			} else {
				m.notice = "Level locked"
			}
			return m, nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetRows(levelRows(m.levels))
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// Selected returns the level under the cursor.
func (m LevelsModel) Selected() (progress.LevelStatus, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.levels) {
		return progress.LevelStatus{}, false
	}
	return m.levels[i], true
}

// Choice returns the decision taken, LevelsPending while browsing.
func (m LevelsModel) Choice() LevelsChoice {
	return m.choice
}

// View renders the menu.
func (m LevelsModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("MISSIONS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.notice))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// FormatLevels renders a static level listing for the CLI.
func FormatLevels(levels []progress.LevelStatus) string {
	header := lipgloss.NewStyle().Bold(true)
	locked := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	done := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-7s %-10s %-8s %-8s", "Level", "Status", "Deaths", "Time")))
	b.WriteString("\n")
	for _, row := range levelRows(levels) {
		line := fmt.Sprintf("%-7s %-10s %-8s %-8s", row[0], row[1], row[2], row[3])
		switch row[1] {
		case "Locked":
			line = locked.Render(line)
		case "Completed":
			line = done.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
