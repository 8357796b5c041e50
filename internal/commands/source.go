package commands

import (
	"errors"
	"fmt"

	"github.com/dheerajchand/colour/internal/catalog"
	"github.com/dheerajchand/colour/internal/logging"
	"github.com/dheerajchand/colour/internal/prometheus"
	"github.com/dheerajchand/colour/internal/quality"
)

var errNoSource = errors.New("one of --catalog or --prometheus-url is required")

// SourceFlags selects where quality data comes from.
type SourceFlags struct {
	Catalog       string `help:"YAML or JSON catalog of light sources." env:"COLOUR_CATALOG" type:"path" xor:"source"`
	PrometheusURL string `help:"URL of the Prometheus endpoint." env:"COLOUR_PROMETHEUS_URL" name:"prometheus-url" xor:"source"`
	Selector      string `help:"Extra label matchers for Prometheus queries, e.g. lab=\"north\"."`
}

// resolved is a data source ready to evaluate named distributions.
type resolved struct {
	evaluator quality.Evaluator
	sds       []quality.SpectralDistribution
}

// open resolves names against the configured source. With no names the
// catalog yields every source and Prometheus every source exporting metric.
func (f *SourceFlags) open(ctx *Context, metric quality.Metric, names []string) (resolved, error) {
	logger := logging.New("commands")
	switch {
	case f.Catalog != "":
		c, err := catalog.Load(f.Catalog)
		if err != nil {
			return resolved{}, err
		}
		sds, err := c.Distributions(names...)
		if err != nil {
			return resolved{}, err
		}
		logger.Debug("using catalog", "path", f.Catalog, "sources", quality.Names(sds))
		return resolved{evaluator: c.Evaluator(metric), sds: sds}, nil

	case f.PrometheusURL != "":
		ev, err := f.prometheusEvaluator(ctx, metric)
		if err != nil {
			return resolved{}, err
		}
		if len(names) == 0 {
			names, err = prometheus.Sources(ctx.context(), ev.Client, metric, ctx.Timeout, ev.Matchers...)
			if err != nil {
				return resolved{}, err
			}
		}
		if len(names) == 0 {
			return resolved{}, fmt.Errorf("%w: no sources for %s", prometheus.ErrNoData, metric)
		}
		sds := make([]quality.SpectralDistribution, len(names))
		for i, name := range names {
			sds[i] = quality.SpectralDistribution{Name: name}
		}
		logger.Debug("using prometheus", "url", f.PrometheusURL, "sources", quality.Names(sds))
		return resolved{evaluator: ev, sds: sds}, nil

	default:
		return resolved{}, errNoSource
	}
}

func (f *SourceFlags) prometheusEvaluator(ctx *Context, metric quality.Metric) (*prometheus.Evaluator, error) {
	matchers, err := prometheus.ParseMatchers(f.Selector)
	if err != nil {
		return nil, err
	}
	client, err := ctx.newClient(f.PrometheusURL)
	if err != nil {
		return nil, err
	}
	return &prometheus.Evaluator{
		Client:   client,
		Metric:   metric,
		Matchers: matchers,
		Timeout:  ctx.Timeout,
	}, nil
}

// names lists the available sources without evaluating them.
func (f *SourceFlags) names(ctx *Context, metric quality.Metric) ([]string, error) {
	if f.Catalog != "" {
		c, err := catalog.Load(f.Catalog)
		if err != nil {
			return nil, err
		}
		return c.Names(), nil
	}
	if f.PrometheusURL != "" {
		ev, err := f.prometheusEvaluator(ctx, metric)
		if err != nil {
			return nil, err
		}
		return prometheus.Sources(ctx.context(), ev.Client, metric, ctx.Timeout, ev.Matchers...)
	}
	return nil, errNoSource
}

func (r resolved) evaluate(ctx *Context) ([]quality.Specification, error) {
	specs := make([]quality.Specification, 0, len(r.sds))
	for _, sd := range r.sds {
		spec, err := r.evaluator.Evaluate(ctx.context(), sd)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", sd.Name, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
