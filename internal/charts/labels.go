package charts

import (
	"fmt"
	"strconv"
)

// LabelOptions places value labels relative to their bars. Offset is in
// units of bar width (x) and tallest bar height (y).
type LabelOptions struct {
	Rotation Rotation
	Offset   [2]float64
	FontSize float64
}

// DefaultLabelOffset lifts labels 2.5% of the tallest bar above each bar.
var DefaultLabelOffset = [2]float64{0, 0.025}

// LabelBars writes values[i] above the i-th bar of the container.
func (ax *Axes) LabelBars(values []float64, container *BarContainer, opts LabelOptions) {
	fontSize := opts.FontSize
	if fontSize == 0 {
		fontSize = 10
	}

	var maxHeight float64
	for _, bar := range container.Bars {
		maxHeight = max(maxHeight, bar.Height)
	}

	for i, bar := range container.Bars {
		if i >= len(values) {
			break
		}
		ax.Texts = append(ax.Texts, Text{
			X:        bar.X + bar.Width/2 + opts.Offset[0]*bar.Width,
			Y:        bar.Height + opts.Offset[1]*maxHeight,
			Body:     fmt.Sprintf("%.1f", values[i]),
			Rotation: opts.Rotation,
			FontSize: fontSize,
		})
	}
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
