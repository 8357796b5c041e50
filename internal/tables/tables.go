// Package tables shows quality scores as interactive terminal tables.
package tables

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dheerajchand/colour/internal/quality"
	"github.com/evertras/bubble-table/table"
)

const (
	columnSample = "sample"
	pageSize     = 15
	minColumn    = 8
)

var negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

type Model struct {
	table           table.Model
	filterTextInput textinput.Model
}

func sourceKey(i int) string {
	return fmt.Sprintf("source_%d", i)
}

// Scores lays the specifications out with one row per sample, the overall
// score first, and one column per specification.
func Scores(specifications []quality.Specification) Model {
	columns := make([]table.Column, 0, len(specifications)+1)
	columns = append(columns, table.NewColumn(columnSample, "Sample", minColumn).WithFiltered(true))
	for i, s := range specifications {
		columns = append(columns, table.NewColumn(sourceKey(i), s.Name, max(len(s.Name)+2, minColumn)).WithFiltered(true))
	}

	return Model{
		table: table.
			New(columns).
			Filtered(true).
			Focused(true).
			WithFooterVisibility(true).
			WithPageSize(pageSize).
			WithRows(scoreRows(specifications)),
		filterTextInput: textinput.New(),
	}
}

// scoreRows has one row per sample key found in any specification.
// Specifications lacking a sample leave the cell empty.
func scoreRows(specifications []quality.Specification) []table.Row {
	var keys []int
	seen := map[int]bool{}
	for _, s := range specifications {
		for _, k := range s.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)

	rows := make([]table.Row, 0, len(keys)+1)
	overall := table.RowData{columnSample: "Qa"}
	for i, s := range specifications {
		overall[sourceKey(i)] = scoreCell(s.Qa)
	}
	rows = append(rows, table.NewRow(overall))

	for _, k := range keys {
		data := table.RowData{columnSample: fmt.Sprintf("Q%d", k)}
		for i, s := range specifications {
			if sample, ok := s.Samples[k]; ok {
				data[sourceKey(i)] = scoreCell(sample.Qa)
			}
		}
		rows = append(rows, table.NewRow(data))
	}
	return rows
}

func scoreCell(v float64) any {
	text := fmt.Sprintf("%.1f", v)
	if v < 0 {
		return table.NewStyledCell(text, negativeStyle)
	}
	return text
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// global
		if msg.String() == "ctrl+c" {
			cmds = append(cmds, tea.Quit)

			return m, tea.Batch(cmds...)
		}
		// event to filter
		if m.filterTextInput.Focused() {
			if msg.String() == "enter" {
				m.filterTextInput.Blur()
			} else {
				m.filterTextInput, _ = m.filterTextInput.Update(msg)
			}
			m.table = m.table.WithFilterInput(m.filterTextInput)

			return m, tea.Batch(cmds...)
		}

		// others component
		switch msg.String() {
		case "/":
			m.filterTextInput.Focus()
		case "q":
			cmds = append(cmds, tea.Quit)
			return m, tea.Batch(cmds...)
		default:
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	body := strings.Builder{}

	body.WriteString(m.table.View())
	body.WriteString("\nPress / + letters to start filtering, and q or ctrl+c to quit")

	return body.String()
}
