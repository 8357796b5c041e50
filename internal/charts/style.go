package charts

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// HatchPatterns is the palette of hatch glyphs used to tell bar series apart.
// Repeating a glyph increases the hatch density.
var HatchPatterns = []string{
	`\\`,
	"o",
	"x",
	".",
	"*",
	"//",
}

// ColourDark is used for bar edges and reference lines.
var ColourDark = mustHex("#333333")

// ColourBrightest is the neutral fill.
var ColourBrightest = mustHex("#FFFFFF")

// LabelColor is the terminal color used for chart labels.
var LabelColor = lipgloss.Color("#66CCEE")

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// PatternCycle hands out hatch patterns in palette order, wrapping around.
type PatternCycle struct {
	patterns []string
	next     int
}

// NewPatternCycle cycles through patterns, or HatchPatterns when none are given.
func NewPatternCycle(patterns ...string) *PatternCycle {
	if len(patterns) == 0 {
		patterns = HatchPatterns
	}
	return &PatternCycle{patterns: patterns}
}

func (c *PatternCycle) Next() string {
	p := c.patterns[c.next%len(c.patterns)]
	c.next++
	return p
}

// TerminalStyle returns a lipgloss style with c as foreground.
func TerminalStyle(c colorful.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}
