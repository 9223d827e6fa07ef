// Package theme resolves the effective background and foreground palette of
// a slide. Preview and export both read colors from here.
package theme

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// LightThreshold is the luma above which a color counts as light.
const LightThreshold = 140

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#rgb", "#rrggbb" or the same without '#'.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return c.toColorful().Hex()
}

// Luma is the perceptual brightness 0.299R + 0.587G + 0.114B.
func (c RGB) Luma() float64 {
	return float64(c.lumaMilli()) / 1000
}

// lumaMilli is Luma scaled by 1000 so threshold checks stay exact.
func (c RGB) lumaMilli() int {
	return 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
}

// IsLight reports whether the luma is strictly above LightThreshold.
func (c RGB) IsLight() bool {
	return c.lumaMilli() > LightThreshold*1000
}

// IsLightHex is IsLight for a hex string. Unparseable colors are dark.
func IsLightHex(s string) bool {
	c, err := ParseHex(s)
	if err != nil {
		return false
	}
	return c.IsLight()
}

// Blend mixes over into base with the given opacity in [0,1].
func Blend(base, over RGB, alpha float64) RGB {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return fromColorful(base.toColorful().BlendRgb(over.toColorful(), alpha))
}

// BlendHex is Blend over hex strings; an unparseable input returns base.
func BlendHex(base, over string, alpha float64) string {
	b, err := ParseHex(base)
	if err != nil {
		return base
	}
	o, err := ParseHex(over)
	if err != nil {
		return b.Hex()
	}
	return Blend(b, o, alpha).Hex()
}
