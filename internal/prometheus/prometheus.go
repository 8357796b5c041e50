package prometheus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/promql/parser"
)

type prometheusClient struct {
	v1api v1.API
}

type Client interface {
	Query(ctx context.Context, query string, timeout time.Duration) (v1.Warnings, model.Vector, error)
	LabelValues(ctx context.Context, labelName string, matches []string, timeout time.Duration) ([]string, v1.Warnings, error)
}

func NewClient(url string) (Client, error) {
	client, err := api.NewClient(api.Config{
		Address: url,
	})
	if err != nil {
		return nil, fmt.Errorf("creating prometheus client: %w", err)
	}
	v1api := v1.NewAPI(client)
	return &prometheusClient{v1api: v1api}, nil
}

func (c *prometheusClient) Query(ctx context.Context, query string, timeout time.Duration) (v1.Warnings, model.Vector, error) {
	var vector model.Vector
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	result, warnings, err := c.v1api.Query(ctx, query, time.Now(), v1.WithTimeout(timeout))
	if err != nil {
		return warnings, vector, err
	}

	switch result.Type() {
	case model.ValVector:
		v := result.(model.Vector)
		return warnings, v, nil
	case model.ValNone, model.ValScalar, model.ValMatrix, model.ValString:
		return warnings, vector, fmt.Errorf("unexpected result type: %s", result.Type())
	default:
		return warnings, vector, fmt.Errorf("unknown result type: %s", result.Type())
	}
}

func (c *prometheusClient) LabelValues(ctx context.Context, labelName string, matches []string, timeout time.Duration) ([]string, v1.Warnings, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	values, warnings, err := c.v1api.LabelValues(ctx, labelName, matches, time.Time{}, time.Time{}, v1.WithTimeout(timeout))
	if err != nil {
		return nil, warnings, err
	}
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = string(v)
	}
	return result, warnings, nil
}

func FormatQuery(query string) string {
	ast, err := parser.ParseExpr(query)
	if err != nil {
		return query
	}
	return ast.Pretty(0)
}

// ParseMatchers parses a comma separated list of label matchers such as
// `lab="north",run=~"2024.*"`. Surrounding braces are optional.
func ParseMatchers(s string) ([]*labels.Matcher, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "{") {
		s = "{" + s + "}"
	}
	matchers, err := parser.ParseMetricSelector(s)
	if err != nil {
		return nil, fmt.Errorf("parsing selector %q: %w", s, err)
	}
	return matchers, nil
}

// Selector builds the vector selector for metric restricted by the matchers.
func Selector(metric string, matchers ...*labels.Matcher) string {
	all := make([]*labels.Matcher, 0, len(matchers)+1)
	all = append(all, labels.MustNewMatcher(labels.MatchEqual, labels.MetricName, metric))
	all = append(all, matchers...)
	vs := &parser.VectorSelector{Name: metric, LabelMatchers: all}
	return vs.String()
}
