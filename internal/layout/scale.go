package layout

import (
	"fmt"
	"strings"
)

// FontScale is a named text size multiplier.
type FontScale struct {
	Name   string
	Factor float64
}

// FontScales in picker order.
var FontScales = []FontScale{
	{Name: "small", Factor: 0.85},
	{Name: "medium", Factor: 1},
	{Name: "large", Factor: 1.15},
}

// ParseFontScale resolves a scale by name. An empty name is medium.
func ParseFontScale(name string) (FontScale, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FontScales[1], nil
	}
	for _, s := range FontScales {
		if s.Name == name {
			return s, nil
		}
	}
	return FontScale{}, fmt.Errorf("unknown font scale %q", name)
}

// NextFontScale cycles small, medium, large.
func NextFontScale(factor float64) FontScale {
	for i, s := range FontScales {
		if s.Factor == factor {
			return FontScales[(i+1)%len(FontScales)]
		}
	}
	return FontScales[1]
}
