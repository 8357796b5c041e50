package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dheerajchand/colour/internal/logging"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatFor picks the format from the filename extension, defaulting to PNG.
func FormatFor(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".svg") {
		return FormatSVG
	}
	return FormatPNG
}

// RenderOptions finalizes a chart. Zero fields are left alone by Render and
// are overridable by Merge.
type RenderOptions struct {
	// Standalone saves the figure when Filename is set. Defaults to true;
	// composing callers switch it off and finalize afterwards.
	Standalone *bool
	Filename   string
	Format     Format

	Title  string
	XLabel string
	YLabel string
	Legend *bool
	Aspect float64
	Bounds *Bounds
}

// Merge returns o with every field set in override replacing its own.
func (o RenderOptions) Merge(override RenderOptions) RenderOptions {
	if override.Standalone != nil {
		o.Standalone = override.Standalone
	}
	if override.Filename != "" {
		o.Filename = override.Filename
	}
	if override.Format != "" {
		o.Format = override.Format
	}
	if override.Title != "" {
		o.Title = override.Title
	}
	if override.XLabel != "" {
		o.XLabel = override.XLabel
	}
	if override.YLabel != "" {
		o.YLabel = override.YLabel
	}
	if override.Legend != nil {
		o.Legend = override.Legend
	}
	if override.Aspect != 0 {
		o.Aspect = override.Aspect
	}
	if override.Bounds != nil {
		o.Bounds = override.Bounds
	}
	return o
}

func (o RenderOptions) standalone() bool {
	return o.Standalone == nil || *o.Standalone
}

// Render applies the options to the axes and, for standalone charts with a
// filename, saves the figure.
func Render(fig *Figure, ax *Axes, opts RenderOptions) (*Figure, *Axes, error) {
	if opts.Title != "" {
		ax.Title = opts.Title
	}
	if opts.XLabel != "" {
		ax.XLabel = opts.XLabel
	}
	if opts.YLabel != "" {
		ax.YLabel = opts.YLabel
	}
	if opts.Legend != nil {
		ax.Legend = *opts.Legend
	}
	if opts.Aspect != 0 {
		ax.Aspect = opts.Aspect
	}
	if opts.Bounds != nil {
		ax.Bounds = *opts.Bounds
	}

	if !opts.standalone() || opts.Filename == "" {
		return fig, ax, nil
	}

	format := opts.Format
	if format == "" {
		format = FormatFor(opts.Filename)
	}
	if err := Save(fig, opts.Filename, format); err != nil {
		return fig, ax, err
	}
	return fig, ax, nil
}

// Save writes the figure to filename.
func Save(fig *Figure, filename string, format Format) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	if err := Draw(f, fig, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filename, err)
	}
	logging.New("charts").Debug("saved figure", "file", filename, "format", format)
	return nil
}
