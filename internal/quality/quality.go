// Package quality holds the colour quality data consumed by the chart layer.
package quality

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// XYZ is a CIE XYZ tristimulus value.
type XYZ [3]float64

// Scale returns the tristimulus value multiplied by f.
func (x XYZ) Scale(f float64) XYZ {
	return XYZ{x[0] * f, x[1] * f, x[2] * f}
}

// TCSColorimetry is the colorimetry of one test colour sample.
type TCSColorimetry struct {
	Name string     `json:"name" yaml:"name"`
	XYZ  XYZ        `json:"xyz" yaml:"xyz"`
	UV   [2]float64 `json:"uv,omitempty" yaml:"uv,omitempty"`
	UVW  [3]float64 `json:"uvw,omitempty" yaml:"uvw,omitempty"`
}

// Rescaled returns a copy of c with its tristimulus value scaled by f.
func (c TCSColorimetry) Rescaled(f float64) TCSColorimetry {
	return TCSColorimetry{
		Name: c.Name,
		XYZ:  c.XYZ.Scale(f),
		UV:   c.UV,
		UVW:  c.UVW,
	}
}

// ColorimetryData pairs the test sample colorimetry under the light source
// with the colorimetry under the reference illuminant.
type ColorimetryData struct {
	Test      []TCSColorimetry `json:"test" yaml:"test"`
	Reference []TCSColorimetry `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// SampleScore is the colour quality of a single test colour sample.
type SampleScore struct {
	Name string  `json:"name,omitempty" yaml:"name,omitempty"`
	Qa   float64 `json:"qa" yaml:"qa"`
}

// Specification is the quality of one light source: the overall score, the
// per-sample scores keyed by test colour sample index, and the colorimetry
// the scores were derived from.
type Specification struct {
	Name        string              `json:"name" yaml:"name"`
	Qa          float64             `json:"qa" yaml:"qa"`
	Samples     map[int]SampleScore `json:"samples" yaml:"samples"`
	Colorimetry ColorimetryData     `json:"colorimetry" yaml:"colorimetry"`
}

// Keys returns the sample keys in ascending order.
func (s Specification) Keys() []int {
	keys := make([]int, 0, len(s.Samples))
	for k := range s.Samples {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Scores returns the overall score followed by the per-sample scores in key order.
func (s Specification) Scores() []float64 {
	scores := make([]float64, 0, len(s.Samples)+1)
	scores = append(scores, s.Qa)
	for _, k := range s.Keys() {
		scores = append(scores, s.Samples[k].Qa)
	}
	return scores
}

// ScaleColorimetry returns a copy of s whose tristimulus values are scaled by f.
// The receiver's slices and map are not shared with the result.
func (s Specification) ScaleColorimetry(f float64) Specification {
	out := s
	out.Samples = make(map[int]SampleScore, len(s.Samples))
	for k, v := range s.Samples {
		out.Samples[k] = v
	}
	out.Colorimetry = ColorimetryData{
		Test:      rescaleAll(s.Colorimetry.Test, f),
		Reference: rescaleAll(s.Colorimetry.Reference, f),
	}
	return out
}

func rescaleAll(data []TCSColorimetry, f float64) []TCSColorimetry {
	if data == nil {
		return nil
	}
	out := make([]TCSColorimetry, len(data))
	for i, c := range data {
		out[i] = c.Rescaled(f)
	}
	return out
}

// SpectralDistribution is a light source's spectral power distribution.
// Only its name is interpreted here; the values travel to the evaluators.
type SpectralDistribution struct {
	Name   string              `json:"name" yaml:"name"`
	Values map[float64]float64 `json:"values,omitempty" yaml:"values,omitempty"`
}

// Names joins the distribution names with ", ".
func Names(sds []SpectralDistribution) string {
	names := make([]string, len(sds))
	for i, sd := range sds {
		names[i] = sd.Name
	}
	return strings.Join(names, ", ")
}

// Metric identifies a colour quality metric.
type Metric int

const (
	CRI Metric = iota
	CQS
)

func (m Metric) String() string {
	switch m {
	case CRI:
		return "cri"
	case CQS:
		return "cqs"
	default:
		return "unknown"
	}
}

// Title is the human readable metric name used in chart titles.
func (m Metric) Title() string {
	switch m {
	case CRI:
		return "Colour Rendering Index"
	case CQS:
		return "Colour Quality Scale"
	default:
		return "Colour Quality"
	}
}

// Domain is the scale of the tristimulus values the metric reports.
// CRI colorimetry is computed in [0, 100], CQS colorimetry in [0, 1].
func (m Metric) Domain() float64 {
	if m == CRI {
		return 100
	}
	return 1
}

// ParseMetric parses a metric name, case-insensitively.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cri":
		return CRI, nil
	case "cqs":
		return CQS, nil
	default:
		return 0, fmt.Errorf("unknown metric %q", s)
	}
}

// Evaluator computes the quality specification of a spectral distribution.
type Evaluator interface {
	Evaluate(ctx context.Context, sd SpectralDistribution) (Specification, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, sd SpectralDistribution) (Specification, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, sd SpectralDistribution) (Specification, error) {
	return f(ctx, sd)
}
