package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dheerajchand/colour/internal/charts"
	"github.com/dheerajchand/colour/internal/colourspace"
	"github.com/dheerajchand/colour/internal/logging"
	"github.com/dheerajchand/colour/internal/plotting"
	"github.com/dheerajchand/colour/internal/quality"
	"gopkg.in/yaml.v2"
)

// ChartCmd holds the flags shared by the cri and cqs commands.
type ChartCmd struct {
	SourceFlags `embed:""`

	Names          []string `arg:"" optional:"" name:"source" help:"Light sources to plot. Defaults to all."`
	Output         string   `name:"output" short:"o" help:"Output format." default:"png" enum:"png,svg,term,json,yaml"`
	File           string   `name:"file" short:"f" help:"Output file for png and svg. Defaults to <metric>.<output>."`
	NoLabels       bool     `help:"Hide the score labels."`
	Hatching       string   `help:"Hatch bars per source." default:"auto" enum:"auto,on,off"`
	HatchingRepeat int      `help:"Hatch pattern density." default:"2"`
	Colourspace    string   `help:"Colourspace for sample swatches." default:"srgb" enum:"srgb,linear"`
	Title          string   `help:"Chart title."`
	Width          int      `help:"Figure width in pixels."`
	Height         int      `help:"Figure height in pixels."`
}

type CRICmd struct {
	ChartCmd `embed:""`
}

func (c *CRICmd) Run(ctx *Context) error {
	return c.run(ctx, quality.CRI)
}

type CQSCmd struct {
	ChartCmd `embed:""`
}

func (c *CQSCmd) Run(ctx *Context) error {
	return c.run(ctx, quality.CQS)
}

type barsFunc func(context.Context, quality.Evaluator, []quality.SpectralDistribution, plotting.BarsOptions) (*charts.Figure, *charts.Axes, error)

func barsFor(metric quality.Metric) barsFunc {
	if metric == quality.CQS {
		return plotting.CQSBars
	}
	return plotting.CRIBars
}

func (c *ChartCmd) filename(metric quality.Metric) string {
	if c.File != "" {
		return c.File
	}
	return fmt.Sprintf("%s.%s", metric, c.Output)
}

func (c *ChartCmd) options(metric quality.Metric) (plotting.BarsOptions, error) {
	hatching, err := plotting.ParseHatching(c.Hatching)
	if err != nil {
		return plotting.BarsOptions{}, err
	}
	conv, err := colourspace.ByName(c.Colourspace)
	if err != nil {
		return plotting.BarsOptions{}, err
	}

	opts := plotting.BarsOptions{
		HideLabels:     c.NoLabels,
		Hatching:       hatching,
		HatchingRepeat: c.HatchingRepeat,
		Converter:      conv,
		Artist:         charts.ArtistOptions{Width: c.Width, Height: c.Height},
		Render:         charts.RenderOptions{Title: c.Title},
	}
	if c.Width != 0 && c.Height != 0 {
		opts.Artist.Uniform = charts.Bool(false)
	}
	switch c.Output {
	case "png", "svg":
		opts.Render.Filename = c.filename(metric)
		opts.Render.Format = charts.Format(c.Output)
	}
	return opts, nil
}

func (c *ChartCmd) run(ctx *Context, metric quality.Metric) error {
	logger := logging.New("commands")
	src, err := c.open(ctx, metric, c.Names)
	if err != nil {
		return err
	}

	switch c.Output {
	case "json", "yaml":
		specs, err := src.evaluate(ctx)
		if err != nil {
			return err
		}
		return writeSpecifications(ctx, specs, c.Output)
	}

	opts, err := c.options(metric)
	if err != nil {
		return err
	}

	bars := barsFor(metric)
	if len(src.sds) == 1 {
		bars = singleBars(metric)
	}
	_, ax, err := bars(ctx.context(), src.evaluator, src.sds, opts)
	if err != nil {
		return err
	}

	if c.Output == "term" {
		return charts.NewNtCharts(ctx.stdout()).Print(ax)
	}
	logger.Info("saved chart", "metric", metric, "sources", quality.Names(src.sds), "file", opts.Render.Filename)
	return nil
}

func singleBars(metric quality.Metric) barsFunc {
	single := plotting.SingleCRIBars
	if metric == quality.CQS {
		single = plotting.SingleCQSBars
	}
	return func(ctx context.Context, ev quality.Evaluator, sds []quality.SpectralDistribution, opts plotting.BarsOptions) (*charts.Figure, *charts.Axes, error) {
		return single(ctx, ev, sds[0], opts)
	}
}

func writeSpecifications(ctx *Context, specs []quality.Specification, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(specs, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(specs)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.stdout(), string(data))
	return err
}
