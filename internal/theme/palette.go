package theme

// Palette is the foreground color table for one slide. All values are
// "#rrggbb".
type Palette struct {
	Title       string
	Heading     string
	Label       string
	Detail      string
	Body        string
	Muted       string
	CardSurface string
	CardBorder  string
	Accent      string
}

const (
	cardSurfaceAlpha = 0.06
	cardBorderAlpha  = 0.2
)

// PaletteFor returns the light or dark branch of the palette. base is the
// color the cards sit on and is only used to tint surface and border.
func PaletteFor(isLight bool, accent, base string) Palette {
	if isLight {
		return Palette{
			Title:       "#0f172a",
			Heading:     accent,
			Label:       "#1e293b",
			Detail:      "#475569",
			Body:        "#334155",
			Muted:       "#64748b",
			CardSurface: BlendHex(base, accent, cardSurfaceAlpha),
			CardBorder:  BlendHex(base, accent, cardBorderAlpha),
			Accent:      accent,
		}
	}
	return Palette{
		Title:       "#ffffff",
		Heading:     accent,
		Label:       "#dddddd",
		Detail:      "#888888",
		Body:        "#cccccc",
		Muted:       "#aaaaaa",
		CardSurface: BlendHex(base, accent, cardSurfaceAlpha),
		CardBorder:  BlendHex(base, accent, cardBorderAlpha),
		Accent:      accent,
	}
}
