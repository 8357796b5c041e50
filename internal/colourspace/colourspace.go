// Package colourspace converts tristimulus values into display colours.
package colourspace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dheerajchand/colour/internal/quality"
	"github.com/lucasb-eyer/go-colorful"
)

var ErrUnknownColourspace = errors.New("unknown colourspace")

// Converter maps a tristimulus value in the [0, 1] domain to a display colour.
// The result is not clipped.
type Converter interface {
	Convert(xyz quality.XYZ) colorful.Color
}

type ConverterFunc func(xyz quality.XYZ) colorful.Color

func (f ConverterFunc) Convert(xyz quality.XYZ) colorful.Color {
	return f(xyz)
}

// SRGB converts to gamma encoded sRGB (D65).
var SRGB Converter = ConverterFunc(func(xyz quality.XYZ) colorful.Color {
	return colorful.Xyz(xyz[0], xyz[1], xyz[2])
})

// LinearSRGB converts to sRGB primaries without the transfer function.
var LinearSRGB Converter = ConverterFunc(func(xyz quality.XYZ) colorful.Color {
	r, g, b := colorful.XyzToLinearRgb(xyz[0], xyz[1], xyz[2])
	return colorful.Color{R: r, G: g, B: b}
})

// Clip clamps every channel to [0, 1].
func Clip(c colorful.Color) colorful.Color {
	return c.Clamped()
}

// ToDisplay converts and clips in one step.
func ToDisplay(conv Converter, xyz quality.XYZ) colorful.Color {
	if conv == nil {
		conv = SRGB
	}
	return Clip(conv.Convert(xyz))
}

// ByName resolves "srgb" or "linear".
func ByName(name string) (Converter, error) {
	switch strings.ToLower(name) {
	case "", "srgb":
		return SRGB, nil
	case "linear", "linear-srgb":
		return LinearSRGB, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColourspace, name)
	}
}
