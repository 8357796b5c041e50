package charts

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var dashArray = []float64{6, 4}

func toDrawing(c colorful.Color) drawing.Color {
	r, g, b := c.Clamped().RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

func toChartTicks(ticks []Tick) []chart.Tick {
	if len(ticks) == 0 {
		return nil
	}
	out := make([]chart.Tick, len(ticks))
	for i, t := range ticks {
		out[i] = chart.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}

// Draw renders the figure as PNG or SVG.
func Draw(w io.Writer, fig *Figure, format Format) error {
	ax := fig.Axes
	if ax == nil {
		return errors.New("figure has no axes")
	}
	b := ax.ViewBounds()
	width, height := canvasSize(fig, ax, b)

	ch := chart.Chart{
		Title:  ax.Title,
		Width:  width,
		Height: height,
		DPI:    fig.DPI,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  ax.XLabel,
			Range: &chart.ContinuousRange{Min: b.XMin, Max: b.XMax},
			Ticks: toChartTicks(ax.XTicks),
		},
		YAxis: chart.YAxis{
			Name:  ax.YLabel,
			Range: &chart.ContinuousRange{Min: b.YMin, Max: b.YMax},
			Ticks: toChartTicks(ax.YTicks),
		},
		// go-chart needs one visible series; the baseline doubles as the x axis line.
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "baseline",
				XValues: []float64{b.XMin, b.XMax},
				YValues: []float64{b.YMin, b.YMin},
				Style: chart.Style{
					StrokeColor: toDrawing(ColourDark),
					StrokeWidth: 1,
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{axesRenderable(ax, b)}
	if ax.Legend {
		ch.Elements = append(ch.Elements, legendRenderable(ax))
	}

	provider := chart.PNG
	if format == FormatSVG {
		provider = chart.SVG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// canvasSize keeps the figure height and derives the width from the axes
// aspect, so the plot keeps its proportions whatever the number of bars.
func canvasSize(fig *Figure, ax *Axes, b Bounds) (int, int) {
	width, height := fig.Width, fig.Height
	dx, dy := b.XMax-b.XMin, b.YMax-b.YMin
	if ax.Aspect <= 0 || dx <= 0 || dy <= 0 {
		return width, height
	}
	ratio := ax.Aspect * dy / dx
	w := float64(height) / ratio
	w = math.Max(float64(height)/MaxAspectStretch, math.Min(w, float64(height)*MaxAspectStretch))
	return int(math.Round(w)), height
}

// transform maps data coordinates into the canvas box.
type transform struct {
	box chart.Box
	b   Bounds
}

func (t transform) x(v float64) float64 {
	return float64(t.box.Left) + (v-t.b.XMin)/(t.b.XMax-t.b.XMin)*float64(t.box.Width())
}

func (t transform) y(v float64) float64 {
	return float64(t.box.Bottom) - (v-t.b.YMin)/(t.b.YMax-t.b.YMin)*float64(t.box.Height())
}

func (t transform) clip(r rect) rect {
	return rect{
		X0: math.Max(r.X0, float64(t.box.Left)),
		Y0: math.Max(r.Y0, float64(t.box.Top)),
		X1: math.Min(r.X1, float64(t.box.Right)),
		Y1: math.Min(r.Y1, float64(t.box.Bottom)),
	}
}

func (t transform) bar(bar *Bar) rect {
	x0, x1 := t.x(bar.X), t.x(bar.X+bar.Width)
	y0, y1 := t.y(bar.Height), t.y(0)
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return t.clip(rect{X0: x0, Y0: y0, X1: x1, Y1: y1})
}

func ipt(v float64) int {
	return int(math.Round(v))
}

func axesRenderable(ax *Axes, b Bounds) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		t := transform{box: box, b: b}

		for _, c := range ax.Containers {
			for _, bar := range c.Bars {
				area := t.bar(bar)
				if area.empty() {
					continue
				}
				fillRect(r, area, bar.Fill, bar.Edge)
				drawHatch(r, bar.Hatch, area, bar.Edge)
			}
		}

		for _, l := range ax.Lines {
			y := t.y(l.Y)
			if y < float64(box.Top) || y > float64(box.Bottom) {
				continue
			}
			r.SetStrokeColor(toDrawing(l.Colour))
			r.SetStrokeWidth(1.5)
			if l.Style == LineDashed {
				r.SetStrokeDashArray(dashArray)
			} else {
				r.SetStrokeDashArray(nil)
			}
			r.MoveTo(box.Left, ipt(y))
			r.LineTo(box.Right, ipt(y))
			r.Stroke()
		}
		r.SetStrokeDashArray(nil)

		setFont(r, defaults)
		r.SetFontColor(toDrawing(ColourDark))
		for _, text := range ax.Texts {
			x, y := t.x(text.X), t.y(text.Y)
			if x < float64(box.Left) || x > float64(box.Right) || y < float64(box.Top) {
				continue
			}
			r.SetFontSize(text.FontSize)
			size := r.MeasureText(text.Body)
			if text.Rotation == Vertical {
				r.SetTextRotation(3 * math.Pi / 2)
				r.Text(text.Body, ipt(x+float64(size.Height())/2), ipt(y))
				r.ClearTextRotation()
				continue
			}
			r.Text(text.Body, ipt(x-float64(size.Width())/2), ipt(y))
		}
	}
}

func legendRenderable(ax *Axes) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		setFont(r, defaults)
		r.SetFontSize(10)
		r.SetFontColor(toDrawing(ColourDark))

		var labels []*BarContainer
		maxWidth := 0
		for _, c := range ax.Containers {
			if c.Label == "" {
				continue
			}
			labels = append(labels, c)
			maxWidth = max(maxWidth, r.MeasureText(c.Label).Width())
		}
		if len(labels) == 0 {
			return
		}

		const swatchW, swatchH, rowH, pad = 28.0, 14.0, 20.0, 8.0
		x := float64(box.Right) - float64(maxWidth) - swatchW - 3*pad
		y := float64(box.Top) + pad
		frame := rect{X0: x - pad, Y0: y - pad/2, X1: float64(box.Right) - pad, Y1: y + rowH*float64(len(labels))}
		fillRect(r, frame, ColourBrightest, ColourDark)

		for _, c := range labels {
			swatch := rect{X0: x, Y0: y, X1: x + swatchW, Y1: y + swatchH}
			fillRect(r, swatch, ColourBrightest, ColourDark)
			if len(c.Bars) > 0 {
				drawHatch(r, c.Bars[0].Hatch, swatch, ColourDark)
			}
			r.Text(c.Label, ipt(x+swatchW+pad), ipt(y+swatchH-2))
			y += rowH
		}
	}
}

func setFont(r chart.Renderer, defaults chart.Style) {
	font := defaults.Font
	if font == nil {
		font, _ = chart.GetDefaultFont()
	}
	if font != nil {
		r.SetFont(font)
	}
}

func fillRect(r chart.Renderer, area rect, fill, edge colorful.Color) {
	r.SetFillColor(toDrawing(fill))
	r.SetStrokeColor(toDrawing(edge))
	r.SetStrokeWidth(1)
	r.MoveTo(ipt(area.X0), ipt(area.Y0))
	r.LineTo(ipt(area.X1), ipt(area.Y0))
	r.LineTo(ipt(area.X1), ipt(area.Y1))
	r.LineTo(ipt(area.X0), ipt(area.Y1))
	r.Close()
	r.FillStroke()
}

func drawHatch(r chart.Renderer, hatch string, area rect, colour colorful.Color) {
	shapes := hatchFill(hatch, area)
	c := toDrawing(colour)
	if len(shapes.Lines) > 0 {
		r.SetStrokeColor(c)
		r.SetStrokeWidth(1)
		for _, s := range shapes.Lines {
			r.MoveTo(ipt(s.A.X), ipt(s.A.Y))
			r.LineTo(ipt(s.B.X), ipt(s.B.Y))
		}
		r.Stroke()
	}
	for _, d := range shapes.Dots {
		r.SetStrokeColor(c)
		r.SetFillColor(c)
		r.SetStrokeWidth(1)
		r.Circle(d.R, ipt(d.C.X), ipt(d.C.Y))
		if d.Filled {
			r.Fill()
		} else {
			r.Stroke()
		}
	}
}
