package charts

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Figure is an in-memory chart: its pixel size and the axes drawn into it.
type Figure struct {
	Width  int
	Height int
	DPI    float64
	Axes   *Axes
}

// Bounds is the data range visible on the axes.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

type Tick struct {
	Value float64
	Label string
}

type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
)

// HLine is a horizontal line spanning the whole axes.
type HLine struct {
	Y      float64
	Colour colorful.Color
	Style  LineStyle
}

type Rotation int

const (
	Horizontal Rotation = iota
	Vertical
)

// Text is an annotation anchored at its bottom centre.
type Text struct {
	X, Y     float64
	Body     string
	Rotation Rotation
	FontSize float64
}

// Bar is one rectangle, anchored at its left edge on the x axis.
type Bar struct {
	X      float64
	Width  float64
	Height float64
	Fill   colorful.Color
	Edge   colorful.Color
	Hatch  string
}

func (b *Bar) SetHatch(hatch string) {
	b.Hatch = hatch
}

// BarContainer groups the bars of one Bar call under a legend label.
type BarContainer struct {
	Label string
	Bars  []*Bar
}

// BarStyle configures a Bar call. Fills cycle when shorter than the data;
// an empty Fills uses the neutral colour.
type BarStyle struct {
	Fills []colorful.Color
	Width float64
	Edge  colorful.Color
	Label string
}

// Axes collects everything drawn on one chart.
type Axes struct {
	Title  string
	XLabel string
	YLabel string
	Legend bool
	Aspect float64
	Bounds Bounds

	Containers []*BarContainer
	Lines      []HLine
	Texts      []Text
	XTicks     []Tick
	YTicks     []Tick
}

// Bar adds one bar per x/height pair and returns their container.
func (ax *Axes) Bar(xs, heights []float64, style BarStyle) *BarContainer {
	width := style.Width
	if width == 0 {
		width = DefaultBarWidth
	}
	n := min(len(xs), len(heights))
	container := &BarContainer{Label: style.Label, Bars: make([]*Bar, 0, n)}
	for i := 0; i < n; i++ {
		fill := ColourBrightest
		if len(style.Fills) > 0 {
			fill = style.Fills[i%len(style.Fills)]
		}
		container.Bars = append(container.Bars, &Bar{
			X:      xs[i],
			Width:  width,
			Height: heights[i],
			Fill:   fill,
			Edge:   style.Edge,
		})
	}
	ax.Containers = append(ax.Containers, container)
	return container
}

func (ax *Axes) AxHLine(y float64, colour colorful.Color, style LineStyle) {
	ax.Lines = append(ax.Lines, HLine{Y: y, Colour: colour, Style: style})
}

// SetXTicks pairs positions with labels; surplus entries on either side are dropped.
func (ax *Axes) SetXTicks(positions []float64, labels []string) {
	n := min(len(positions), len(labels))
	ax.XTicks = make([]Tick, n)
	for i := 0; i < n; i++ {
		ax.XTicks[i] = Tick{Value: positions[i], Label: labels[i]}
	}
}

// SetYTicks uses the formatted values as labels.
func (ax *Axes) SetYTicks(values []float64) {
	ax.YTicks = make([]Tick, len(values))
	for i, v := range values {
		ax.YTicks[i] = Tick{Value: v, Label: formatTick(v)}
	}
}

// DataBounds is the smallest range containing every bar, line and tick.
func (ax *Axes) DataBounds() Bounds {
	b := Bounds{XMin: math.Inf(1), XMax: math.Inf(-1), YMin: 0, YMax: math.Inf(-1)}
	extendX := func(v float64) {
		b.XMin = math.Min(b.XMin, v)
		b.XMax = math.Max(b.XMax, v)
	}
	extendY := func(v float64) {
		b.YMin = math.Min(b.YMin, v)
		b.YMax = math.Max(b.YMax, v)
	}
	for _, c := range ax.Containers {
		for _, bar := range c.Bars {
			extendX(bar.X)
			extendX(bar.X + bar.Width)
			extendY(bar.Height)
		}
	}
	for _, l := range ax.Lines {
		extendY(l.Y)
	}
	for _, t := range ax.XTicks {
		extendX(t.Value)
	}
	if math.IsInf(b.XMin, 1) {
		b.XMin, b.XMax = 0, 1
	}
	if math.IsInf(b.YMax, -1) || b.YMax == b.YMin {
		b.YMax = b.YMin + 1
	}
	return b
}

// ViewBounds returns the explicit bounds, or the data bounds when none were set.
func (ax *Axes) ViewBounds() Bounds {
	if ax.Bounds.IsZero() {
		return ax.DataBounds()
	}
	return ax.Bounds
}

// ArtistOptions configures figure creation. Zero fields take the defaults.
type ArtistOptions struct {
	// Uniform makes the figure square, using the smaller dimension.
	Uniform *bool
	Width   int
	Height  int
	DPI     float64
}

// Merge returns o with every field set in override replacing its own.
func (o ArtistOptions) Merge(override ArtistOptions) ArtistOptions {
	if override.Uniform != nil {
		o.Uniform = override.Uniform
	}
	if override.Width != 0 {
		o.Width = override.Width
	}
	if override.Height != 0 {
		o.Height = override.Height
	}
	if override.DPI != 0 {
		o.DPI = override.DPI
	}
	return o
}

// Artist creates a figure and its axes.
func Artist(opts ArtistOptions) (*Figure, *Axes) {
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = DefaultFigureWidth
	}
	if height == 0 {
		height = DefaultFigureHeight
	}
	if opts.Uniform != nil && *opts.Uniform {
		side := min(width, height)
		width, height = side, side
	}
	dpi := opts.DPI
	if dpi == 0 {
		dpi = DefaultDPI
	}
	ax := &Axes{}
	return &Figure{Width: width, Height: height, DPI: dpi, Axes: ax}, ax
}

// Bool returns a pointer to v, for optional option fields.
func Bool(v bool) *bool {
	return &v
}
