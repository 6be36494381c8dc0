package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shuntaka9576/aztbrew/cli/timer"
)

var (
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Render
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF00F2"))
)

type Model struct {
	Matched      int
	DeletedCount int
	FailedCount  int
	Batches      int
	BatchCount   int
	Percent      float64
	Running      bool
	spinner      spinner.Model
	timer        *timer.Timer
}

type doneMsg struct{}

// BatchMsg reports one processed delete batch.
type BatchMsg struct {
	Matched      int
	Batches      int
	DeletedCount int
	FailedCount  int
}

func InitModel() Model {
	m := Model{
		Running: true,
		timer:   &timer.Timer{},
	}
	m.timer.Start()
	m.resetSpinner()

	return m
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case BatchMsg:
		m.Matched = msg.Matched
		m.Batches = msg.Batches
		m.BatchCount += 1
		m.DeletedCount += msg.DeletedCount
		m.FailedCount += msg.FailedCount
		if m.Matched > 0 {
			m.Percent = float64(m.DeletedCount+m.FailedCount) / float64(m.Matched)
		}

		return m, nil
	case doneMsg:
		m.Running = false

		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) resetSpinner() {
	m.spinner = spinner.New()
	m.spinner.Style = spinnerStyle
	m.spinner.Spinner = spinner.Dot
}

func (m Model) View() string {
	if !m.Running {
		return ""
	}

	if m.BatchCount == 0 {
		return fmt.Sprintf("%s%s", m.spinner.View(), textStyle("Querying records..."))
	}

	processed := m.DeletedCount + m.FailedCount
	if processed == m.Matched {
		return fmt.Sprintln(textStyle(fmt.Sprintf("All done! Deleted: %d Failed: %d", m.DeletedCount, m.FailedCount)))
	}

	s := fmt.Sprintf("%sDeleted: %d(%d%%) Failed: %d Batch: %d/%d",
		m.spinner.View(),
		m.DeletedCount,
		int(m.Percent*100),
		m.FailedCount,
		m.BatchCount,
		m.Batches)

	if eta := m.timer.Estimated(m.Matched, processed); eta != "" {
		s += fmt.Sprintf(" ETA: %s", eta)
	}

	return textStyle(s)
}
