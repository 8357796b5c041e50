package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dheerajchand/colour/internal/quality"
	"github.com/dheerajchand/colour/internal/tables"
)

type ScoresCmd struct {
	SourceFlags `embed:""`

	Metric string   `help:"Quality metric." default:"cri" enum:"cri,cqs"`
	Names  []string `arg:"" optional:"" name:"source" help:"Light sources to show. Defaults to all."`
}

func (s *ScoresCmd) loader(ctx *Context) (tables.Loader, error) {
	metric, err := quality.ParseMetric(s.Metric)
	if err != nil {
		return tables.Loader{}, err
	}
	load := func() ([]quality.Specification, error) {
		src, err := s.open(ctx, metric, s.Names)
		if err != nil {
			return nil, err
		}
		return src.evaluate(ctx)
	}
	return tables.NewLoader(metric.Title(), load), nil
}

func (s *ScoresCmd) Run(ctx *Context) error {
	l, err := s.loader(ctx)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(l).Run()
	if err != nil {
		return fmt.Errorf("running table: %w", err)
	}
	if m, ok := final.(tables.Loader); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

type SourcesCmd struct {
	SourceFlags `embed:""`

	Metric string `help:"Quality metric, for Prometheus sources." default:"cri" enum:"cri,cqs"`
}

func (s *SourcesCmd) Run(ctx *Context) error {
	metric, err := quality.ParseMetric(s.Metric)
	if err != nil {
		return err
	}
	names, err := s.names(ctx, metric)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(ctx.stdout(), name); err != nil {
			return err
		}
	}
	return nil
}
