package charts

const (
	// DefaultFigureWidth and DefaultFigureHeight are the figure size in pixels.
	DefaultFigureWidth  = 1280
	DefaultFigureHeight = 720

	DefaultDPI = 92.0

	// DefaultBarWidth is used when a BarStyle leaves Width unset.
	DefaultBarWidth = 0.8

	// MaxAspectStretch caps how far the aspect ratio may widen a figure.
	MaxAspectStretch = 4.0

	// hatchUnit is the pixel size of one hatch cell at density 1.
	hatchUnit = 24.0

	// ChartHeightRatio determines terminal chart height as bars*ChartHeightRatio.
	ChartHeightRatio = 2

	// DefaultTerminalWidth is the fallback terminal width when detection fails.
	DefaultTerminalWidth = 80
)
