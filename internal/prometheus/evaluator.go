package prometheus

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dheerajchand/colour/internal/logging"
	"github.com/dheerajchand/colour/internal/quality"
	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/model/labels"
)

const (
	ScoreMetric = "colour_quality_score"
	XYZMetric   = "colour_quality_sample_xyz"

	LabelMetric     = "metric"
	LabelSource     = "source"
	LabelSample     = "sample"
	LabelSampleName = "sample_name"
	LabelComponent  = "component"

	OverallSample = "Qa"
)

var ErrNoData = errors.New("no data")

// Evaluator reads precomputed quality specifications from Prometheus.
type Evaluator struct {
	Client   Client
	Metric   quality.Metric
	Matchers []*labels.Matcher
	Timeout  time.Duration
}

func (e *Evaluator) matchers(source string) []*labels.Matcher {
	ms := []*labels.Matcher{
		labels.MustNewMatcher(labels.MatchEqual, LabelMetric, e.Metric.String()),
		labels.MustNewMatcher(labels.MatchEqual, LabelSource, source),
	}
	return append(ms, e.Matchers...)
}

// Queries returns the score and tristimulus selectors read for source.
func (e *Evaluator) Queries(source string) (scores, xyz string) {
	ms := e.matchers(source)
	return Selector(ScoreMetric, ms...), Selector(XYZMetric, ms...)
}

func (e *Evaluator) query(ctx context.Context, query string) (model.Vector, error) {
	logger := logging.New("prometheus")
	logger.Debug("querying", "query", FormatQuery(query))

	warnings, vector, err := e.Client.Query(ctx, query, e.Timeout)
	if len(warnings) > 0 {
		logger.Warn("query returned warnings", "query", query, "warnings", warnings)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", query, err)
	}
	return vector, nil
}

func (e *Evaluator) Evaluate(ctx context.Context, sd quality.SpectralDistribution) (quality.Specification, error) {
	scoresQuery, xyzQuery := e.Queries(sd.Name)
	scores, err := e.query(ctx, scoresQuery)
	if err != nil {
		return quality.Specification{}, err
	}
	if len(scores) == 0 {
		return quality.Specification{}, fmt.Errorf("%w: %s of %q", ErrNoData, e.Metric, sd.Name)
	}

	spec := quality.Specification{Name: sd.Name, Samples: map[int]quality.SampleScore{}}
	haveOverall := false
	for _, s := range scores {
		sample := string(s.Metric[LabelSample])
		if sample == OverallSample {
			spec.Qa = float64(s.Value)
			haveOverall = true
			continue
		}
		k, err := sampleIndex(sample)
		if err != nil {
			return quality.Specification{}, err
		}
		spec.Samples[k] = quality.SampleScore{
			Name: string(s.Metric[LabelSampleName]),
			Qa:   float64(s.Value),
		}
	}
	if !haveOverall {
		return quality.Specification{}, fmt.Errorf("%w: %s of %q has no %s sample", ErrNoData, e.Metric, sd.Name, OverallSample)
	}

	xyz, err := e.query(ctx, xyzQuery)
	if err != nil {
		return quality.Specification{}, err
	}
	spec.Colorimetry.Test, err = colorimetry(spec, xyz)
	if err != nil {
		return quality.Specification{}, err
	}
	return spec, nil
}

// colorimetry orders the tristimulus values by sample key. Samples without
// values keep a zero XYZ.
func colorimetry(spec quality.Specification, vector model.Vector) ([]quality.TCSColorimetry, error) {
	byKey := make(map[int]quality.XYZ, len(spec.Samples))
	for _, s := range vector {
		k, err := sampleIndex(string(s.Metric[LabelSample]))
		if err != nil {
			return nil, err
		}
		xyz := byKey[k]
		switch component := s.Metric[LabelComponent]; component {
		case "X":
			xyz[0] = float64(s.Value)
		case "Y":
			xyz[1] = float64(s.Value)
		case "Z":
			xyz[2] = float64(s.Value)
		default:
			return nil, fmt.Errorf("unknown %s %q", LabelComponent, component)
		}
		byKey[k] = xyz
	}
	if len(byKey) == 0 {
		return nil, nil
	}

	keys := spec.Keys()
	data := make([]quality.TCSColorimetry, len(keys))
	for i, k := range keys {
		data[i] = quality.TCSColorimetry{Name: spec.Samples[k].Name, XYZ: byKey[k]}
	}
	return data, nil
}

// sampleIndex parses "Q<k>" sample labels.
func sampleIndex(sample string) (int, error) {
	k, err := strconv.Atoi(strings.TrimPrefix(sample, "Q"))
	if err != nil || !strings.HasPrefix(sample, "Q") {
		return 0, fmt.Errorf("invalid %s label %q", LabelSample, sample)
	}
	return k, nil
}

// Sources lists the sources that have scores for metric.
func Sources(ctx context.Context, client Client, metric quality.Metric, timeout time.Duration, matchers ...*labels.Matcher) ([]string, error) {
	ms := append([]*labels.Matcher{labels.MustNewMatcher(labels.MatchEqual, LabelMetric, metric.String())}, matchers...)
	query := Selector(ScoreMetric, ms...)
	values, warnings, err := client.LabelValues(ctx, LabelSource, []string{query}, timeout)
	if len(warnings) > 0 {
		logging.New("prometheus").Warn("label values returned warnings", "warnings", warnings)
	}
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	return values, nil
}
