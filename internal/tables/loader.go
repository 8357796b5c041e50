package tables

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dheerajchand/colour/internal/charts"
	"github.com/dheerajchand/colour/internal/quality"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(charts.LabelColor).Bold(true)
)

type loadState int

const (
	stateLoading loadState = iota
	stateShowingTable
	stateError
)

// LoadFunc fetches the specifications to show.
type LoadFunc func() ([]quality.Specification, error)

type loadedMsg struct {
	specifications []quality.Specification
	err            error
}

// Loader shows a spinner while loading, then the scores table.
type Loader struct {
	title    string
	load     LoadFunc
	state    loadState
	spinner  spinner.Model
	table    Model
	err      error
	quitting bool
}

func NewLoader(title string, load LoadFunc) Loader {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Loader{
		title:   title,
		load:    load,
		state:   stateLoading,
		spinner: s,
	}
}

// Err is the loading error, if any.
func (m Loader) Err() error {
	return m.err
}

func (m Loader) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.runLoad(),
	)
}

func (m Loader) runLoad() tea.Cmd {
	return func() tea.Msg {
		specifications, err := m.load()
		return loadedMsg{specifications: specifications, err: err}
	}
}

func (m Loader) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, tea.Quit
		}
		m.table = Scores(msg.specifications)
		m.state = stateShowingTable
		return m, m.table.Init()
	case spinner.TickMsg:
		if m.state == stateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		if m.state == stateShowingTable {
			updated, cmd := m.table.Update(msg)
			if table, ok := updated.(Model); ok {
				m.table = table
			}
			return m, cmd
		}
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Loader) View() string {
	switch m.state {
	case stateError:
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	case stateShowingTable:
		return titleStyle.Render(m.title) + "\n" + m.table.View()
	default:
		if m.quitting {
			return ""
		}
		return fmt.Sprintf("%s Loading %s...\n", m.spinner.View(), m.title)
	}
}
