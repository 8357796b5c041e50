package commands

import (
	"fmt"

	"github.com/dheerajchand/colour/internal/prometheus"
	"github.com/dheerajchand/colour/internal/quality"
)

type FormatQueryCmd struct {
	Metric   string `help:"Quality metric." default:"cri" enum:"cri,cqs"`
	Selector string `help:"Extra label matchers, e.g. lab=\"north\"."`
	Source   string `arg:"" name:"source" help:"Light source name." required:"true"`
}

func (f *FormatQueryCmd) Run(ctx *Context) error {
	metric, err := quality.ParseMetric(f.Metric)
	if err != nil {
		return err
	}
	matchers, err := prometheus.ParseMatchers(f.Selector)
	if err != nil {
		return err
	}
	ev := &prometheus.Evaluator{Metric: metric, Matchers: matchers}
	scores, xyz := ev.Queries(f.Source)
	for _, q := range []string{scores, xyz} {
		if _, err := fmt.Fprintln(ctx.stdout(), prometheus.FormatQuery(q)); err != nil {
			return err
		}
	}
	return nil
}
