package plotting

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/dheerajchand/colour/internal/charts"
	"github.com/dheerajchand/colour/internal/colourspace"
	"github.com/dheerajchand/colour/internal/quality"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lucasb-eyer/go-colorful"
)

// identity maps XYZ straight onto RGB so fills expose the colorimetry.
var identity = colourspace.ConverterFunc(func(xyz quality.XYZ) colorful.Color {
	return colorful.Color{R: xyz[0], G: xyz[1], B: xyz[2]}
})

func specification(name string, qa float64, samples ...float64) quality.Specification {
	s := quality.Specification{Name: name, Qa: qa, Samples: map[int]quality.SampleScore{}}
	for i, v := range samples {
		s.Samples[i+1] = quality.SampleScore{Name: "TCS", Qa: v}
		s.Colorimetry.Test = append(s.Colorimetry.Test, quality.TCSColorimetry{
			Name: "TCS",
			XYZ:  quality.XYZ{0.2, 0.3, 0.4},
		})
	}
	return s
}

func TestParseHatching(t *testing.T) {
	tests := []struct {
		in      string
		want    Hatching
		wantErr bool
	}{
		{"", HatchingAuto, false},
		{"auto", HatchingAuto, false},
		{"ON", HatchingOn, false},
		{"off", HatchingOff, false},
		{"sometimes", HatchingAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHatching(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHatching(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHatching(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQualityBarsLayout(t *testing.T) {
	specs := []quality.Specification{
		specification("F2", 64, 56, 77, 90),
		specification("Kinoton 75P", 95, 98, 97, -12),
	}

	fig, ax, err := QualityBars(specs, BarsOptions{})
	if err != nil {
		t.Fatalf("QualityBars() error: %v", err)
	}
	if fig.Width != fig.Height {
		t.Errorf("figure %dx%d is not uniform", fig.Width, fig.Height)
	}

	if len(ax.Containers) != 2 {
		t.Fatalf("len(Containers) = %d, want 2", len(ax.Containers))
	}
	for i, c := range ax.Containers {
		if c.Label != specs[i].Name {
			t.Errorf("Containers[%d].Label = %q, want %q", i, c.Label, specs[i].Name)
		}
		if len(c.Bars) != 4 {
			t.Fatalf("Containers[%d] has %d bars, want 4", i, len(c.Bars))
		}
		if c.Bars[0].Fill != charts.ColourBrightest {
			t.Errorf("Containers[%d] overall bar fill = %v, want white", i, c.Bars[0].Fill)
		}
		for k, bar := range c.Bars {
			wantX := (float64(i) + float64(k*3)) * 0.5
			if bar.X != wantX || bar.Width != 0.5 {
				t.Errorf("Containers[%d].Bars[%d] at x=%v width=%v, want x=%v width=0.5", i, k, bar.X, bar.Width, wantX)
			}
			if bar.Height < 0 {
				t.Errorf("Containers[%d].Bars[%d] has negative height %v", i, k, bar.Height)
			}
			if bar.Edge != charts.ColourDark {
				t.Errorf("Containers[%d].Bars[%d] edge = %v", i, k, bar.Edge)
			}
		}
	}
	if got := ax.Containers[1].Bars[3].Height; got != 12 {
		t.Errorf("negative score bar height = %v, want 12", got)
	}

	wantX := []charts.Tick{
		{Value: 0.5, Label: "Qa"},
		{Value: 2, Label: "Q1"},
		{Value: 3.5, Label: "Q2"},
		{Value: 5, Label: "Q3"},
	}
	if diff := cmp.Diff(wantX, ax.XTicks); diff != "" {
		t.Errorf("XTicks mismatch (-want +got):\n%s", diff)
	}

	if len(ax.YTicks) != 11 || ax.YTicks[0].Value != 0 || ax.YTicks[10].Value != 100 {
		t.Errorf("YTicks = %+v, want 0..100 step 10", ax.YTicks)
	}

	wantLines := []charts.HLine{{Y: 100, Colour: charts.ColourDark, Style: charts.LineDashed}}
	if diff := cmp.Diff(wantLines, ax.Lines); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}

	wantBounds := charts.Bounds{XMin: -0.5, XMax: 6, YMin: 0, YMax: 120}
	if ax.Bounds != wantBounds {
		t.Errorf("Bounds = %+v, want %+v", ax.Bounds, wantBounds)
	}
	if math.Abs(ax.Aspect-4.5/120) > 1e-12 {
		t.Errorf("Aspect = %v, want %v", ax.Aspect, 4.5/120)
	}
	if ax.Title != "Colour Quality" {
		t.Errorf("Title = %q", ax.Title)
	}
}

func TestQualityBarsHatching(t *testing.T) {
	one := []quality.Specification{specification("F2", 64, -20, 80)}
	two := []quality.Specification{
		specification("F2", 64, -20, 80),
		specification("Kinoton 75P", 95, 98, 97),
	}

	hatches := func(ax *charts.Axes) [][]string {
		out := make([][]string, len(ax.Containers))
		for i, c := range ax.Containers {
			for _, bar := range c.Bars {
				out[i] = append(out[i], bar.Hatch)
			}
		}
		return out
	}

	tests := []struct {
		name       string
		specs      []quality.Specification
		opts       BarsOptions
		want       [][]string
		wantLegend bool
	}{
		{
			name:  "auto single marks negatives only",
			specs: one,
			want:  [][]string{{"", `\\`, ""}},
		},
		{
			name:       "auto multiple hatches every bar",
			specs:      two,
			want:       [][]string{{`\\\\`, `\\\\`, `\\\\`}, {"oo", "oo", "oo"}},
			wantLegend: true,
		},
		{
			name:  "off on multiple marks negatives with each source's pattern",
			specs: two,
			opts:  BarsOptions{Hatching: HatchingOff},
			want:  [][]string{{"", `\\`, ""}, {"", "", ""}},
		},
		{
			name:       "on single with custom repeat",
			specs:      one,
			opts:       BarsOptions{Hatching: HatchingOn, HatchingRepeat: 3},
			want:       [][]string{{`\\\\\\`, `\\\\\\`, `\\\\\\`}},
			wantLegend: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ax, err := QualityBars(tt.specs, tt.opts)
			if err != nil {
				t.Fatalf("QualityBars() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, hatches(ax)); diff != "" {
				t.Errorf("hatches mismatch (-want +got):\n%s", diff)
			}
			if ax.Legend != tt.wantLegend {
				t.Errorf("Legend = %v, want %v", ax.Legend, tt.wantLegend)
			}
		})
	}
}

func TestQualityBarsLabels(t *testing.T) {
	t.Run("single specification labels horizontally", func(t *testing.T) {
		_, ax, err := QualityBars([]quality.Specification{specification("F2", 64, -20, 80)}, BarsOptions{})
		if err != nil {
			t.Fatalf("QualityBars() error: %v", err)
		}
		if len(ax.Texts) != 3 {
			t.Fatalf("len(Texts) = %d, want 3", len(ax.Texts))
		}
		if ax.Texts[1].Body != "-20.0" {
			t.Errorf("Texts[1].Body = %q, want signed score", ax.Texts[1].Body)
		}
		for _, text := range ax.Texts {
			if text.Rotation != charts.Horizontal || math.Abs(text.FontSize-(12.5-5.0/7)) > 1e-12 {
				t.Errorf("text = %+v", text)
			}
		}
	})

	t.Run("multiple specifications label vertically", func(t *testing.T) {
		specs := []quality.Specification{specification("a", 1, 2), specification("b", 3, 4)}
		_, ax, err := QualityBars(specs, BarsOptions{})
		if err != nil {
			t.Fatalf("QualityBars() error: %v", err)
		}
		for _, text := range ax.Texts {
			if text.Rotation != charts.Vertical {
				t.Errorf("text %q is not vertical", text.Body)
			}
		}
	})

	t.Run("hidden", func(t *testing.T) {
		_, ax, err := QualityBars([]quality.Specification{specification("F2", 64, 80)}, BarsOptions{HideLabels: true})
		if err != nil {
			t.Fatalf("QualityBars() error: %v", err)
		}
		if len(ax.Texts) != 0 {
			t.Errorf("len(Texts) = %d, want 0", len(ax.Texts))
		}
	})
}

func TestQualityBarsSampleColours(t *testing.T) {
	s := specification("F2", 64, 80, 70)
	s.Colorimetry.Test[0].XYZ = quality.XYZ{0.5, 1, 0.2}
	s.Colorimetry.Test[1].XYZ = quality.XYZ{2, -1, 0.5}

	_, ax, err := QualityBars([]quality.Specification{s}, BarsOptions{Converter: identity})
	if err != nil {
		t.Fatalf("QualityBars() error: %v", err)
	}
	bars := ax.Containers[0].Bars
	if want := (colorful.Color{R: 0.5, G: 1, B: 0.2}); bars[1].Fill != want {
		t.Errorf("Bars[1].Fill = %v, want %v", bars[1].Fill, want)
	}
	if want := (colorful.Color{R: 1, G: 0, B: 0.5}); bars[2].Fill != want {
		t.Errorf("Bars[2].Fill = %v, want clipped %v", bars[2].Fill, want)
	}
}

func TestQualityBarsUserOptionsWin(t *testing.T) {
	bounds := charts.Bounds{XMin: 0, XMax: 10, YMin: 0, YMax: 200}
	fig, ax, err := QualityBars([]quality.Specification{specification("F2", 64, 80)}, BarsOptions{
		Artist: charts.ArtistOptions{Uniform: charts.Bool(false), Width: 800, Height: 400},
		Render: charts.RenderOptions{Title: "Mine", Bounds: &bounds, Legend: charts.Bool(true)},
	})
	if err != nil {
		t.Fatalf("QualityBars() error: %v", err)
	}
	if fig.Width != 800 || fig.Height != 400 {
		t.Errorf("figure = %dx%d, want 800x400", fig.Width, fig.Height)
	}
	if ax.Title != "Mine" || ax.Bounds != bounds || !ax.Legend {
		t.Errorf("axes = %+v", ax)
	}
}

func TestQualityBarsSavesFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bars.png")
	specs := []quality.Specification{
		specification("F2", 64, 56, 77),
		specification("Kinoton 75P", 95, -3, 97),
	}
	if _, _, err := QualityBars(specs, BarsOptions{Render: charts.RenderOptions{Filename: filename}}); err != nil {
		t.Fatalf("QualityBars() error: %v", err)
	}
	if info, err := os.Stat(filename); err != nil || info.Size() == 0 {
		t.Errorf("expected a non-empty %s, err = %v", filename, err)
	}
}

// fixedEvaluator returns the stored specification for each distribution name,
// with colorimetry in the domain of the metric.
type fixedEvaluator map[string]quality.Specification

func (f fixedEvaluator) Evaluate(_ context.Context, sd quality.SpectralDistribution) (quality.Specification, error) {
	s, ok := f[sd.Name]
	if !ok {
		return quality.Specification{}, errors.New("no data")
	}
	return s, nil
}

func criEvaluator() fixedEvaluator {
	f2 := specification("F2", 64, 56, 77)
	f2.Colorimetry.Test[0].XYZ = quality.XYZ{50, 100, 20}
	f2.Colorimetry.Test[1].XYZ = quality.XYZ{10, 20, 30}
	kinoton := specification("Kinoton 75P", 95, 98, 97)
	kinoton.Colorimetry.Test[0].XYZ = quality.XYZ{40, 40, 40}
	kinoton.Colorimetry.Test[1].XYZ = quality.XYZ{30, 30, 30}
	return fixedEvaluator{"F2": f2, "Kinoton 75P": kinoton}
}

func TestCRIBars(t *testing.T) {
	ev := criEvaluator()
	sds := []quality.SpectralDistribution{{Name: "F2"}, {Name: "Kinoton 75P"}}

	_, ax, err := CRIBars(context.Background(), ev, sds, BarsOptions{Converter: identity})
	if err != nil {
		t.Fatalf("CRIBars() error: %v", err)
	}
	if ax.Title != "Colour Rendering Index - F2, Kinoton 75P" {
		t.Errorf("Title = %q", ax.Title)
	}
	if len(ax.Containers) != 2 {
		t.Fatalf("len(Containers) = %d, want 2", len(ax.Containers))
	}
	want := colorful.Color{R: 0.5, G: 1, B: 0.2}
	got := ax.Containers[0].Bars[1].Fill
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("rescaled fill mismatch (-want +got):\n%s", diff)
	}

	if ev["F2"].Colorimetry.Test[0].XYZ != (quality.XYZ{50, 100, 20}) {
		t.Error("evaluator data was mutated by rescaling")
	}
}

func TestCQSBarsKeepsColorimetry(t *testing.T) {
	s := specification("F2", 64, 56)
	s.Colorimetry.Test[0].XYZ = quality.XYZ{0.25, 0.5, 0.75}

	_, ax, err := SingleCQSBars(context.Background(), fixedEvaluator{"F2": s}, quality.SpectralDistribution{Name: "F2"}, BarsOptions{Converter: identity})
	if err != nil {
		t.Fatalf("SingleCQSBars() error: %v", err)
	}
	if ax.Title != "Colour Quality Scale - F2" {
		t.Errorf("Title = %q", ax.Title)
	}
	if want := (colorful.Color{R: 0.25, G: 0.5, B: 0.75}); ax.Containers[0].Bars[1].Fill != want {
		t.Errorf("fill = %v, want %v", ax.Containers[0].Bars[1].Fill, want)
	}
}

func TestSingleMatchesMulti(t *testing.T) {
	ev := criEvaluator()
	sd := quality.SpectralDistribution{Name: "F2"}

	tests := []struct {
		name   string
		single func() (*charts.Axes, error)
		multi  func() (*charts.Axes, error)
	}{
		{
			name: "cri",
			single: func() (*charts.Axes, error) {
				_, ax, err := SingleCRIBars(context.Background(), ev, sd, BarsOptions{})
				return ax, err
			},
			multi: func() (*charts.Axes, error) {
				_, ax, err := CRIBars(context.Background(), ev, []quality.SpectralDistribution{sd}, BarsOptions{})
				return ax, err
			},
		},
		{
			name: "cqs",
			single: func() (*charts.Axes, error) {
				_, ax, err := SingleCQSBars(context.Background(), ev, sd, BarsOptions{})
				return ax, err
			},
			multi: func() (*charts.Axes, error) {
				_, ax, err := CQSBars(context.Background(), ev, []quality.SpectralDistribution{sd}, BarsOptions{})
				return ax, err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			single, err := tt.single()
			if err != nil {
				t.Fatalf("single error: %v", err)
			}
			multi, err := tt.multi()
			if err != nil {
				t.Fatalf("multi error: %v", err)
			}
			if diff := cmp.Diff(multi, single); diff != "" {
				t.Errorf("single and multi differ (-multi +single):\n%s", diff)
			}
		})
	}
}

func TestWrapperOptions(t *testing.T) {
	ev := criEvaluator()
	filename := filepath.Join(t.TempDir(), "cri.svg")

	_, ax, err := SingleCRIBars(context.Background(), ev, quality.SpectralDistribution{Name: "F2"}, BarsOptions{
		Render: charts.RenderOptions{Title: "Custom", Filename: filename},
	})
	if err != nil {
		t.Fatalf("SingleCRIBars() error: %v", err)
	}
	if ax.Title != "Custom" {
		t.Errorf("Title = %q, want user title", ax.Title)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty output file")
	}

	t.Run("not standalone skips saving", func(t *testing.T) {
		skipped := filepath.Join(t.TempDir(), "skipped.png")
		_, _, err := SingleCRIBars(context.Background(), ev, quality.SpectralDistribution{Name: "F2"}, BarsOptions{
			Render: charts.RenderOptions{Filename: skipped, Standalone: charts.Bool(false)},
		})
		if err != nil {
			t.Fatalf("SingleCRIBars() error: %v", err)
		}
		if _, err := os.Stat(skipped); err == nil {
			t.Error("file written for non-standalone render")
		}
	})
}

func TestWrapperEvaluationError(t *testing.T) {
	_, _, err := CRIBars(context.Background(), fixedEvaluator{}, []quality.SpectralDistribution{{Name: "missing"}}, BarsOptions{})
	if err == nil {
		t.Fatal("CRIBars() with failing evaluator returned nil error")
	}
}
