package theme

import (
	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
)

// GradientMid is the middle stop of the default deck gradient.
const GradientMid = "#111b30"

// GradientAngle is the angle of the default deck gradient in degrees.
const GradientAngle = 155

// TemplateOverlay is the opacity of the black scrim drawn over template
// images in the preview.
const TemplateOverlay = 0.4

// PaintKind tags a Paint.
type PaintKind int

const (
	PaintGradient PaintKind = iota
	PaintSolid
	PaintImage
)

func (k PaintKind) String() string {
	switch k {
	case PaintSolid:
		return "solid"
	case PaintImage:
		return "image"
	default:
		return "gradient"
	}
}

// Paint is a background fill.
type Paint struct {
	Kind     PaintKind
	Color    string
	Stops    []string
	Angle    int
	ImageRef string
}

// Templates holds externally supplied background images keyed by role.
type Templates struct {
	Cover  string
	Middle string
	Ending string
}

// For picks the template image for a slide kind.
func (t Templates) For(kind deck.Kind) string {
	switch kind {
	case deck.KindTitle:
		return t.Cover
	case deck.KindClosing:
		return t.Ending
	default:
		return t.Middle
	}
}

// Resolution is the effective look of one slide.
type Resolution struct {
	IsLight    bool
	Background Paint
	Palette    Palette
	// Overlay is the scrim opacity the preview draws over the background.
	Overlay float64
	// Base approximates the background as a single color for tinting and
	// for renderers that cannot draw images or gradients.
	Base string
}

// Resolve applies background precedence: slide image, slide color, template
// image for the slide kind, then the deck gradient. A slide color decides
// IsLight by luma; image backgrounds otherwise count as light.
func Resolve(slide deck.Slide, t deck.Theme, templates Templates) Resolution {
	bg := t.Background
	if _, err := ParseHex(bg); err != nil {
		bg = deck.DefaultTheme.Background
	}
	accent := t.Accent
	if _, err := ParseHex(accent); err != nil {
		accent = deck.DefaultTheme.Accent
	}

	var r Resolution
	color := ""
	if c, err := ParseHex(slide.BackgroundColor); err == nil {
		color = c.Hex()
	}

	switch {
	case slide.BackgroundImage != "":
		r.Background = Paint{Kind: PaintImage, ImageRef: slide.BackgroundImage}
	case color != "":
		r.Background = Paint{Kind: PaintSolid, Color: color}
	case templates.For(slide.Kind()) != "":
		r.Background = Paint{Kind: PaintImage, ImageRef: templates.For(slide.Kind())}
		r.Overlay = TemplateOverlay
	default:
		r.Background = Paint{Kind: PaintGradient, Stops: []string{bg, GradientMid, bg}, Angle: GradientAngle}
	}

	switch {
	case color != "":
		r.IsLight = IsLightHex(color)
		r.Base = color
	case r.Background.Kind == PaintImage:
		r.IsLight = true
		r.Base = "#ffffff"
	default:
		r.IsLight = false
		r.Base = bg
	}

	r.Palette = PaletteFor(r.IsLight, accent, r.Base)
	return r
}
