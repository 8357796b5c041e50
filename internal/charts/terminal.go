package charts

import (
	"fmt"
	"math"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
)

// Barchart renders the axes as horizontal terminal bars, one row per bar,
// grouped by x tick. Hatched bars carry their hatch glyphs in the label.
func Barchart(ax *Axes, width int) string {
	barData := make([]barchart.BarData, 0)
	for _, row := range terminalRows(ax) {
		barData = append(barData, barchart.BarData{
			Label: row.label,
			Values: []barchart.BarValue{
				{Name: row.series, Value: row.value, Style: TerminalStyle(row.bar.Fill)},
			},
		})
	}
	if len(barData) == 0 {
		return ""
	}

	bc := barchart.New(width, len(barData)*ChartHeightRatio, barchart.WithDataSet(barData), barchart.WithHorizontalBars())
	bc.Draw()

	return bc.View()
}

type terminalRow struct {
	label  string
	series string
	value  float64
	bar    *Bar
}

// terminalRows orders bars by position so each tick group stays together.
func terminalRows(ax *Axes) []terminalRow {
	type placed struct {
		row terminalRow
		x   float64
	}
	var all []placed
	for _, c := range ax.Containers {
		for _, bar := range c.Bars {
			tick := nearestTick(ax.XTicks, bar.X+bar.Width/2)
			label := fmt.Sprintf("%s %s (%.1f)", tick, c.Label, bar.Height)
			if bar.Hatch != "" {
				label += " " + bar.Hatch
			}
			all = append(all, placed{
				row: terminalRow{label: label, series: c.Label, value: bar.Height, bar: bar},
				x:   bar.X,
			})
		}
	}
	// equal positions keep container order
	sort.SliceStable(all, func(i, j int) bool { return all[i].x < all[j].x })
	rows := make([]terminalRow, len(all))
	for i, p := range all {
		rows[i] = p.row
	}
	return rows
}

func nearestTick(ticks []Tick, x float64) string {
	best, dist := "", math.Inf(1)
	for _, t := range ticks {
		if d := math.Abs(t.Value - x); d < dist {
			best, dist = t.Label, d
		}
	}
	return best
}
