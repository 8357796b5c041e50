// Package catalog reads light sources with precomputed quality data from YAML or JSON files.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dheerajchand/colour/internal/logging"
	"github.com/dheerajchand/colour/internal/quality"
	"gopkg.in/yaml.v2"
)

var (
	ErrUnknownSource = errors.New("unknown source")
	ErrNoMetric      = errors.New("no data for metric")
)

// Source is one light source in a catalog.
type Source struct {
	Name   string                 `json:"name" yaml:"name"`
	Values map[float64]float64    `json:"values,omitempty" yaml:"values,omitempty"`
	CRI    *quality.Specification `json:"cri,omitempty" yaml:"cri,omitempty"`
	CQS    *quality.Specification `json:"cqs,omitempty" yaml:"cqs,omitempty"`
}

// UnmarshalJSON reads values keyed by wavelength strings such as "555".
func (s *Source) UnmarshalJSON(data []byte) error {
	type plain Source
	var raw struct {
		plain
		Values map[string]float64 `json:"values,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Source(raw.plain)
	if raw.Values == nil {
		return nil
	}
	s.Values = make(map[float64]float64, len(raw.Values))
	for k, v := range raw.Values {
		wavelength, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return fmt.Errorf("source %q: invalid wavelength %q", s.Name, k)
		}
		s.Values[wavelength] = v
	}
	return nil
}

func (s Source) Distribution() quality.SpectralDistribution {
	return quality.SpectralDistribution{Name: s.Name, Values: s.Values}
}

func (s Source) specification(metric quality.Metric) *quality.Specification {
	switch metric {
	case quality.CQS:
		return s.CQS
	default:
		return s.CRI
	}
}

// Catalog is an ordered set of uniquely named sources.
type Catalog struct {
	Sources []Source `json:"sources" yaml:"sources"`

	index map[string]int
}

// Load reads a catalog file. Files starting with '{' are read as JSON, anything else as YAML.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	logging.New("catalog").Debug("loaded catalog", "path", path, "sources", len(c.Sources))
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &c); err != nil {
			return nil, err
		}
	} else if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, err
	}

	c.index = make(map[string]int, len(c.Sources))
	for i, s := range c.Sources {
		if s.Name == "" {
			return nil, fmt.Errorf("source %d has no name", i)
		}
		if _, ok := c.index[s.Name]; ok {
			return nil, fmt.Errorf("duplicate source %q", s.Name)
		}
		c.index[s.Name] = i
	}
	return &c, nil
}

// Names returns the source names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Sources))
	for i, s := range c.Sources {
		names[i] = s.Name
	}
	return names
}

func (c *Catalog) Source(name string) (Source, error) {
	i, ok := c.index[name]
	if !ok {
		return Source{}, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return c.Sources[i], nil
}

func (c *Catalog) Distribution(name string) (quality.SpectralDistribution, error) {
	s, err := c.Source(name)
	if err != nil {
		return quality.SpectralDistribution{}, err
	}
	return s.Distribution(), nil
}

// Distributions resolves every name, or all sources when names is empty.
func (c *Catalog) Distributions(names ...string) ([]quality.SpectralDistribution, error) {
	if len(names) == 0 {
		names = c.Names()
	}
	sds := make([]quality.SpectralDistribution, 0, len(names))
	for _, name := range names {
		sd, err := c.Distribution(name)
		if err != nil {
			return nil, err
		}
		sds = append(sds, sd)
	}
	return sds, nil
}

// Evaluator looks up the stored specification of each distribution by name.
// A specification without a name takes the source's.
func (c *Catalog) Evaluator(metric quality.Metric) quality.Evaluator {
	return quality.EvaluatorFunc(func(_ context.Context, sd quality.SpectralDistribution) (quality.Specification, error) {
		s, err := c.Source(sd.Name)
		if err != nil {
			return quality.Specification{}, err
		}
		spec := s.specification(metric)
		if spec == nil {
			return quality.Specification{}, fmt.Errorf("%w: %s of %q", ErrNoMetric, metric, sd.Name)
		}
		out := spec.ScaleColorimetry(1)
		if out.Name == "" {
			out.Name = s.Name
		}
		return out, nil
	})
}
