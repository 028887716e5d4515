package heatmap

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// EmptyColor fills cells when there is nothing to scale against.
	EmptyColor = "#2d333b"
	// BaseColor fills cells with no activity; intensity 0 of every ramp.
	BaseColor = "#161b22"
	// DefaultAccent is used when the caller's accent cannot be parsed.
	DefaultAccent = "#39d353"

	gamma = 0.75
)

type rgb struct{ r, g, b float64 }

// Color maps value against max onto a ramp from BaseColor to accent. The
// intensity is gamma corrected so that small non-zero values stay visibly
// distinct from empty days.
func Color(accent string, value, max float64) string {
	if !(max > 0) || math.IsInf(max, 0) {
		return EmptyColor
	}
	if !(value > 0) {
		return BaseColor
	}
	return mix(mustParse(BaseColor), parseAccent(accent), Intensity(value, max))
}

// Intensity returns clamp(value/max, 0, 1)^0.75, or 0 for degenerate input.
func Intensity(value, max float64) float64 {
	if !(max > 0) || !(value > 0) || math.IsInf(max, 0) {
		return 0
	}
	ratio := value / max
	if ratio > 1 {
		ratio = 1
	}
	return math.Pow(ratio, gamma)
}

// Levels returns n legend swatches evenly spaced in value from empty to max.
func Levels(accent string, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	out[0] = BaseColor
	for i := 1; i < n; i++ {
		out[i] = Color(accent, float64(i), float64(n-1))
	}
	return out
}

func mix(base, accent rgb, intensity float64) string {
	channel := func(from, to float64) int {
		return int(math.Round(from + (to-from)*intensity))
	}
	return fmt.Sprintf("#%02x%02x%02x",
		channel(base.r, accent.r),
		channel(base.g, accent.g),
		channel(base.b, accent.b),
	)
}

func parseAccent(accent string) rgb {
	if c, ok := parseHex(accent); ok {
		return c
	}
	return mustParse(DefaultAccent)
}

func mustParse(hex string) rgb {
	c, _ := parseHex(hex)
	return c
}

func parseHex(hex string) (rgb, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rgb{}, false
	}
	r, g, b := c.RGB255()
	return rgb{float64(r), float64(g), float64(b)}, true
}
