package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/dheerajchand/colour/internal/prometheus"
)

type Context struct {
	Ctx     context.Context
	Timeout time.Duration
	Stdout  io.Writer

	// NewClient opens Prometheus connections; nil uses prometheus.NewClient.
	NewClient func(url string) (prometheus.Client, error)
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *Context) newClient(url string) (prometheus.Client, error) {
	if c.NewClient == nil {
		return prometheus.NewClient(url)
	}
	return c.NewClient(url)
}

type CLI struct {
	Timeout   time.Duration `help:"Timeout for Prometheus queries." default:"60s"`
	LogLevel  string        `help:"Log level." default:"info" enum:"debug,info,warn,error" env:"COLOUR_LOG_LEVEL"`
	LogFormat string        `help:"Log format." default:"text" enum:"text,json"`

	CRI         CRICmd         `cmd:"" name:"cri" help:"Plot Colour Rendering Index bars."`
	CQS         CQSCmd         `cmd:"" name:"cqs" help:"Plot Colour Quality Scale bars."`
	Scores      ScoresCmd      `cmd:"" help:"Browse quality scores in an interactive table."`
	Sources     SourcesCmd     `cmd:"" help:"List light sources."`
	FormatQuery FormatQueryCmd `cmd:"" help:"Print the Prometheus queries read for a source."`
}
