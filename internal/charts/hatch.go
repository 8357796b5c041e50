package charts

import (
	"math"
	"strings"
)

// hatchGlyphs lists the supported hatch glyphs in drawing order.
const hatchGlyphs = `/\|-+xX.oO*`

type point struct {
	X, Y float64
}

type segment struct {
	A, B point
}

// rect is a pixel-space rectangle with X0 <= X1 and Y0 <= Y1 (y grows downwards).
type rect struct {
	X0, Y0, X1, Y1 float64
}

func (r rect) empty() bool {
	return r.X1-r.X0 <= 0 || r.Y1-r.Y0 <= 0
}

type dot struct {
	C      point
	R      float64
	Filled bool
}

type hatchShapes struct {
	Lines []segment
	Dots  []dot
}

// hatchDensity counts the occurrences of each supported glyph.
func hatchDensity(hatch string) map[rune]int {
	density := make(map[rune]int)
	for _, r := range hatch {
		if strings.ContainsRune(hatchGlyphs, r) {
			density[r]++
		}
	}
	return density
}

// hatchFill computes the lines and dots that fill r with the hatch pattern.
func hatchFill(hatch string, r rect) hatchShapes {
	var shapes hatchShapes
	if hatch == "" || r.empty() {
		return shapes
	}
	density := hatchDensity(hatch)
	for _, glyph := range hatchGlyphs {
		n := density[glyph]
		if n == 0 {
			continue
		}
		spacing := hatchUnit / float64(n)
		switch glyph {
		case '/':
			shapes.Lines = append(shapes.Lines, diagonals(r, spacing, -1)...)
		case '\\':
			shapes.Lines = append(shapes.Lines, diagonals(r, spacing, 1)...)
		case '|':
			shapes.Lines = append(shapes.Lines, verticals(r, spacing)...)
		case '-':
			shapes.Lines = append(shapes.Lines, horizontals(r, spacing)...)
		case '+':
			shapes.Lines = append(shapes.Lines, verticals(r, spacing)...)
			shapes.Lines = append(shapes.Lines, horizontals(r, spacing)...)
		case 'x', 'X':
			shapes.Lines = append(shapes.Lines, diagonals(r, spacing, -1)...)
			shapes.Lines = append(shapes.Lines, diagonals(r, spacing, 1)...)
		case '.':
			shapes.Dots = append(shapes.Dots, dots(r, spacing, 1, true)...)
		case 'o':
			shapes.Dots = append(shapes.Dots, dots(r, spacing, spacing*0.2, false)...)
		case 'O':
			shapes.Dots = append(shapes.Dots, dots(r, spacing, spacing*0.35, false)...)
		case '*':
			shapes.Lines = append(shapes.Lines, stars(r, spacing)...)
		}
	}
	return shapes
}

func verticals(r rect, spacing float64) []segment {
	var out []segment
	for x := r.X0 + spacing/2; x < r.X1; x += spacing {
		out = append(out, segment{point{x, r.Y0}, point{x, r.Y1}})
	}
	return out
}

func horizontals(r rect, spacing float64) []segment {
	var out []segment
	for y := r.Y0 + spacing/2; y < r.Y1; y += spacing {
		out = append(out, segment{point{r.X0, y}, point{r.X1, y}})
	}
	return out
}

// diagonals clips the lines y = slope*x + c to r, for c spaced so that the
// perpendicular distance between lines is spacing. slope is 1 or -1.
func diagonals(r rect, spacing float64, slope float64) []segment {
	step := spacing * math.Sqrt2
	var cMin, cMax float64
	if slope > 0 {
		cMin, cMax = r.Y0-r.X1, r.Y1-r.X0
	} else {
		cMin, cMax = r.X0+r.Y0, r.X1+r.Y1
	}

	var out []segment
	for c := cMin + step/2; c < cMax; c += step {
		var lo, hi float64
		if slope > 0 {
			lo, hi = math.Max(r.X0, r.Y0-c), math.Min(r.X1, r.Y1-c)
		} else {
			lo, hi = math.Max(r.X0, c-r.Y1), math.Min(r.X1, c-r.Y0)
		}
		if lo >= hi {
			continue
		}
		out = append(out, segment{point{lo, slope*lo + c}, point{hi, slope*hi + c}})
	}
	return out
}

func gridCentres(r rect, spacing float64) []point {
	var out []point
	for y := r.Y0 + spacing/2; y < r.Y1; y += spacing {
		for x := r.X0 + spacing/2; x < r.X1; x += spacing {
			out = append(out, point{x, y})
		}
	}
	return out
}

func dots(r rect, spacing, radius float64, filled bool) []dot {
	centres := gridCentres(r, spacing)
	out := make([]dot, 0, len(centres))
	for _, c := range centres {
		out = append(out, dot{C: c, R: radius, Filled: filled})
	}
	return out
}

func stars(r rect, spacing float64) []segment {
	arm := spacing * 0.3
	var out []segment
	for _, c := range gridCentres(r, spacing) {
		for _, angle := range []float64{math.Pi / 2, math.Pi / 6, 5 * math.Pi / 6} {
			dx, dy := arm*math.Cos(angle), arm*math.Sin(angle)
			out = append(out, segment{point{c.X - dx, c.Y - dy}, point{c.X + dx, c.Y + dy}})
		}
	}
	return out
}
