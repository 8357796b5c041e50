// Package plotting draws colour quality bar charts.
package plotting

import (
	"context"
	"fmt"
	"strings"

	"github.com/dheerajchand/colour/internal/charts"
	"github.com/dheerajchand/colour/internal/colourspace"
	"github.com/dheerajchand/colour/internal/quality"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	barWidth       = 0.5
	yTicksInterval = 10
	referenceScore = 100
	yLimit         = 120
)

// Hatching selects whether bars are hatched per specification.
type Hatching int

const (
	// HatchingAuto hatches only when more than one specification is drawn.
	HatchingAuto Hatching = iota
	HatchingOn
	HatchingOff
)

func (h Hatching) String() string {
	switch h {
	case HatchingOn:
		return "on"
	case HatchingOff:
		return "off"
	default:
		return "auto"
	}
}

// ParseHatching parses a hatching pattern name.
func ParseHatching(s string) (Hatching, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return HatchingAuto, nil
	case "on", "true":
		return HatchingOn, nil
	case "off", "false":
		return HatchingOff, nil
	default:
		return HatchingAuto, fmt.Errorf("unknown hatching %q", s)
	}
}

// resolve turns auto into on or off for count specifications.
func (h Hatching) resolve(count int) bool {
	switch h {
	case HatchingOn:
		return true
	case HatchingOff:
		return false
	default:
		return count > 1
	}
}

// BarsOptions configures QualityBars. The zero value draws labelled bars
// with automatic hatching repeated twice, converted through sRGB.
type BarsOptions struct {
	HideLabels     bool
	Hatching       Hatching
	HatchingRepeat int
	Converter      colourspace.Converter

	// Artist is merged over {Uniform: true}.
	Artist charts.ArtistOptions
	// Render is merged over the computed bounds, aspect, legend and title.
	Render charts.RenderOptions
}

func (o BarsOptions) hatchingRepeat() int {
	if o.HatchingRepeat <= 0 {
		return 2
	}
	return o.HatchingRepeat
}

// QualityBars draws the scores of the given specifications as grouped bars:
// one group for the overall score, then one per test colour sample, with one
// bar per specification in each group.
func QualityBars(specifications []quality.Specification, opts BarsOptions) (*charts.Figure, *charts.Axes, error) {
	figure, axes := charts.Artist(charts.ArtistOptions{Uniform: charts.Bool(true)}.Merge(opts.Artist))

	countS, countQas := len(specifications), 0
	patterns := charts.NewPatternCycle()
	hatching := opts.Hatching.resolve(countS)
	repeat := opts.hatchingRepeat()

	for i, specification := range specifications {
		countQas = len(specification.Samples)
		y := specification.Scores()

		colours := make([]colorful.Color, 0, len(y))
		colours = append(colours, charts.ColourBrightest)
		for k := 1; k < len(y); k++ {
			colours = append(colours, sampleColour(opts.Converter, specification.Colorimetry.Test, k-1))
		}

		x := make([]float64, len(y))
		heights := make([]float64, len(y))
		for k := range y {
			x[k] = (float64(i) + float64(k*(countS+1))) * barWidth
			heights[k] = abs(y[k])
		}

		bars := axes.Bar(x, heights, charts.BarStyle{
			Fills: colours,
			Width: barWidth,
			Edge:  charts.ColourDark,
			Label: specification.Name,
		})

		if hatching {
			hatch := strings.Repeat(patterns.Next(), repeat)
			for _, bar := range bars.Bars {
				bar.SetHatch(hatch)
			}
		} else {
			negative := patterns.Next()
			for k, bar := range bars.Bars {
				if y[k] < 0 {
					bar.SetHatch(negative)
				}
			}
		}

		if !opts.HideLabels {
			axes.LabelBars(y, bars, labelOptions(countS))
		}
	}

	axes.AxHLine(referenceScore, charts.ColourDark, charts.LineDashed)

	positions := make([]float64, countQas+1)
	labels := make([]string, countQas+1)
	for k := range positions {
		positions[k] = float64(k*(countS+1))*barWidth + float64(countS)*barWidth/2
		labels[k] = fmt.Sprintf("Q%d", k)
	}
	labels[0] = "Qa"
	axes.SetXTicks(positions, labels)

	yTicks := make([]float64, 0, referenceScore/yTicksInterval+1)
	for v := 0; v <= referenceScore; v += yTicksInterval {
		yTicks = append(yTicks, float64(v))
	}
	axes.SetYTicks(yTicks)

	aspect := 1 / (yLimit / (barWidth + float64(countQas) + barWidth*2))
	bounds := charts.Bounds{
		XMin: -barWidth,
		XMax: float64((countQas+1)*(countS+1)) * barWidth,
		YMin: 0,
		YMax: yLimit,
	}

	settings := charts.RenderOptions{
		Aspect: aspect,
		Bounds: &bounds,
		Legend: charts.Bool(hatching),
		Title:  "Colour Quality",
	}.Merge(opts.Render)

	return charts.Render(figure, axes, settings)
}

// labelOptions rotates and shrinks labels as more specifications share a group.
func labelOptions(countS int) charts.LabelOptions {
	n := float64(countS)
	opts := charts.LabelOptions{
		Rotation: charts.Vertical,
		Offset:   [2]float64{3.0/100*n + 65.0/1000, 0.025},
		FontSize: -5.0/7*n + 12.5,
	}
	if countS == 1 {
		opts.Rotation = charts.Horizontal
		opts.Offset[0] = 0
	}
	return opts
}

// sampleColour is the display colour of the i-th test sample, or the neutral
// colour when the colorimetry does not cover it.
func sampleColour(conv colourspace.Converter, data []quality.TCSColorimetry, i int) colorful.Color {
	if i >= len(data) {
		return charts.ColourBrightest
	}
	return colourspace.ToDisplay(conv, data[i].XYZ)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// CRIBars evaluates the Colour Rendering Index of each distribution and draws it.
func CRIBars(ctx context.Context, ev quality.Evaluator, sds []quality.SpectralDistribution, opts BarsOptions) (*charts.Figure, *charts.Axes, error) {
	return metricBars(ctx, quality.CRI, ev, sds, opts)
}

// SingleCRIBars plots the CRI bars of one source.
func SingleCRIBars(ctx context.Context, ev quality.Evaluator, sd quality.SpectralDistribution, opts BarsOptions) (*charts.Figure, *charts.Axes, error) {
	return CRIBars(ctx, ev, []quality.SpectralDistribution{sd}, opts)
}

// CQSBars evaluates the Colour Quality Scale of each distribution and draws it.
func CQSBars(ctx context.Context, ev quality.Evaluator, sds []quality.SpectralDistribution, opts BarsOptions) (*charts.Figure, *charts.Axes, error) {
	return metricBars(ctx, quality.CQS, ev, sds, opts)
}

// SingleCQSBars plots the CQS bars of one source.
func SingleCQSBars(ctx context.Context, ev quality.Evaluator, sd quality.SpectralDistribution, opts BarsOptions) (*charts.Figure, *charts.Axes, error) {
	return CQSBars(ctx, ev, []quality.SpectralDistribution{sd}, opts)
}

func metricBars(ctx context.Context, metric quality.Metric, ev quality.Evaluator, sds []quality.SpectralDistribution, opts BarsOptions) (*charts.Figure, *charts.Axes, error) {
	specifications := make([]quality.Specification, 0, len(sds))
	for _, sd := range sds {
		specification, err := ev.Evaluate(ctx, sd)
		if err != nil {
			return nil, nil, fmt.Errorf("evaluating %s of %s: %w", metric.Title(), sd.Name, err)
		}
		// QualityBars expects colorimetry in the [0, 1] domain.
		if domain := metric.Domain(); domain != 1 {
			specification = specification.ScaleColorimetry(1 / domain)
		}
		specifications = append(specifications, specification)
	}

	inner := opts
	inner.Render = opts.Render.Merge(charts.RenderOptions{Standalone: charts.Bool(false)})
	figure, axes, err := QualityBars(specifications, inner)
	if err != nil {
		return nil, nil, err
	}

	settings := charts.RenderOptions{
		Title: fmt.Sprintf("%s - %s", metric.Title(), quality.Names(sds)),
	}.Merge(opts.Render)

	return charts.Render(figure, axes, settings)
}
