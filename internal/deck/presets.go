package deck

import "fmt"

// Preset is a named accent/background pair the user can switch between.
type Preset struct {
	Name       string
	Accent     string
	Background string
}

// Presets in picker order. Index 0 matches DefaultTheme.
var Presets = []Preset{
	{Name: "Deep Sea", Accent: "#22d3ee", Background: "#0c1222"},
	{Name: "Aurora", Accent: "#34d399", Background: "#0a1a14"},
	{Name: "Rose Gold", Accent: "#fb7185", Background: "#1a0c14"},
	{Name: "Amber", Accent: "#fbbf24", Background: "#1a150c"},
	{Name: "Phantom Violet", Accent: "#a78bfa", Background: "#120c1a"},
}

// ApplyPreset replaces the accent and background, keeping the primary color.
func (d *Deck) ApplyPreset(index int) error {
	if index < 0 || index >= len(Presets) {
		return fmt.Errorf("theme preset %d: %w", index, ErrIndexOutOfRange)
	}
	p := Presets[index]
	d.Theme.Accent = p.Accent
	d.Theme.Background = p.Background
	if d.Theme.Primary == "" {
		d.Theme.Primary = DefaultTheme.Primary
	}
	return nil
}

// PresetIndex returns the preset matching the deck theme, or -1.
func (d *Deck) PresetIndex() int {
	for i, p := range Presets {
		if p.Accent == d.Theme.Accent && p.Background == d.Theme.Background {
			return i
		}
	}
	return -1
}
