package charts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"chart.svg", FormatSVG},
		{"chart.SVG", FormatSVG},
		{"chart.png", FormatPNG},
		{"chart", FormatPNG},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := FormatFor(tt.filename); got != tt.want {
				t.Errorf("FormatFor(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestRenderOptionsMerge(t *testing.T) {
	bounds := &Bounds{XMin: -0.5, XMax: 7.5, YMax: 120}
	base := RenderOptions{
		Title:  "Colour Quality",
		Aspect: 0.1,
		Bounds: bounds,
		Legend: Bool(true),
	}

	got := base.Merge(RenderOptions{Title: "Mine", Standalone: Bool(false), Legend: Bool(false)})
	want := RenderOptions{
		Title:      "Mine",
		Aspect:     0.1,
		Bounds:     bounds,
		Legend:     Bool(false),
		Standalone: Bool(false),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}

	if same := base.Merge(RenderOptions{}); !cmp.Equal(base, same) {
		t.Error("merging empty options changed the result")
	}
}

func TestRenderAppliesOptions(t *testing.T) {
	fig, ax := Artist(ArtistOptions{})
	bounds := Bounds{XMin: -0.5, XMax: 7.5, YMin: 0, YMax: 120}

	_, got, err := Render(fig, ax, RenderOptions{
		Title:  "Colour Quality",
		XLabel: "sample",
		YLabel: "score",
		Legend: Bool(true),
		Aspect: 0.5,
		Bounds: &bounds,
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got.Title != "Colour Quality" || got.XLabel != "sample" || got.YLabel != "score" {
		t.Errorf("labels = %q %q %q", got.Title, got.XLabel, got.YLabel)
	}
	if !got.Legend || got.Aspect != 0.5 || got.Bounds != bounds {
		t.Errorf("axes = %+v", got)
	}

	t.Run("unset fields keep previous values", func(t *testing.T) {
		_, got, _ := Render(fig, ax, RenderOptions{Title: "Other"})
		if got.Title != "Other" || !got.Legend || got.XLabel != "sample" {
			t.Errorf("axes = %+v", got)
		}
	})
}

func TestRenderSavesStandaloneFigures(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		opts       RenderOptions
		wantFile   bool
		wantMarker []byte
	}{
		{
			name:       "png",
			opts:       RenderOptions{Filename: filepath.Join(dir, "bars.png")},
			wantFile:   true,
			wantMarker: []byte("\x89PNG"),
		},
		{
			name:       "svg",
			opts:       RenderOptions{Filename: filepath.Join(dir, "bars.svg")},
			wantFile:   true,
			wantMarker: []byte("<svg"),
		},
		{
			name:     "not standalone",
			opts:     RenderOptions{Filename: filepath.Join(dir, "skipped.png"), Standalone: Bool(false)},
			wantFile: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, ax := Artist(ArtistOptions{Width: 320, Height: 240})
			ax.Bar([]float64{0, 1}, []float64{50, 90}, BarStyle{Width: 0.5, Edge: ColourDark})

			if _, _, err := Render(fig, ax, tt.opts); err != nil {
				t.Fatalf("Render() error: %v", err)
			}

			data, err := os.ReadFile(tt.opts.Filename)
			if !tt.wantFile {
				if err == nil {
					t.Errorf("file %s written for non-standalone render", tt.opts.Filename)
				}
				return
			}
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			if !bytes.Contains(data, tt.wantMarker) {
				t.Errorf("output does not contain %q", tt.wantMarker)
			}
		})
	}
}

func TestSaveReportsCreateErrors(t *testing.T) {
	fig, _ := Artist(ArtistOptions{})
	if err := Save(fig, filepath.Join(t.TempDir(), "missing", "bars.png"), FormatPNG); err == nil {
		t.Error("Save() into a missing directory returned nil error")
	}
}
