package charts

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var titleStyle = lipgloss.NewStyle().Foreground(LabelColor).Bold(true)

// Charter prints finished charts.
type Charter interface {
	Print(ax *Axes) error
}

type ntCharts struct {
	out   io.Writer
	width int
}

// NewNtCharts prints terminal charts to out, sized to the terminal on stdout.
func NewNtCharts(out io.Writer) Charter {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = DefaultTerminalWidth
	}
	return &ntCharts{out: out, width: width}
}

func (c *ntCharts) Print(ax *Axes) error {
	if ax.Title != "" {
		if _, err := fmt.Fprintln(c.out, titleStyle.Render(ax.Title)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(c.out, Barchart(ax, c.width)); err != nil {
		return err
	}
	return nil
}
