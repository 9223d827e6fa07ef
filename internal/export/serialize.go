// Package export turns a deck into absolute-position drawing instructions on
// a 10 x 5.63 inch canvas and writes them as a .pptx file. Geometry comes
// from the layout plans the preview draws, so both targets stay in step.
package export

import (
	"math"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/layout"
	"github.com/alexisbeaulieu97/slidesmith/internal/theme"
)

// DefaultFont is used for every text box unless Options.Font is set.
const DefaultFont = "Microsoft YaHei"

// minFontSize is the smallest point size written to the file.
const minFontSize = 8

// Options controls serialization.
type Options struct {
	Templates theme.Templates
	Font      string
	// FontScale multiplies text sizes; zero means 1.
	FontScale float64
}

// Fit is how an image fills its box.
type Fit string

const (
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
)

// ShapeKind is the geometry of a filled shape.
type ShapeKind string

const (
	ShapeRect      ShapeKind = "rect"
	ShapeRoundRect ShapeKind = "roundRect"
	ShapeEllipse   ShapeKind = "ellipse"
)

// Background is a slide fill. Fallback is the solid color used when an
// image cannot be loaded.
type Background struct {
	Kind     theme.PaintKind
	Color    string
	Stops    []string
	Angle    int
	ImageRef string
	Fallback string
}

// Overlay is a translucent full-canvas scrim drawn over the background.
type Overlay struct {
	Color   string
	Opacity float64
}

// TextBox is one text frame in inches. Field is the slide field it shows,
// empty for decoration such as icons and the footer.
type TextBox struct {
	Field    string
	X, Y     float64
	W, H     float64
	Text     string
	FontSize int
	Bold     bool
	Color    string
	Align    layout.Align
	Font     string
}

// Image is a picture placed in inches.
type Image struct {
	Name string
	X, Y float64
	W, H float64
	Ref  string
	Fit  Fit
}

// Shape is a filled rectangle, rounded rectangle or ellipse in inches.
type Shape struct {
	Name   string
	Kind   ShapeKind
	X, Y   float64
	W, H   float64
	Color  string
	Border string
}

// SlideInstructions is everything needed to draw one slide, in z-order:
// background, overlay, shapes, texts, then images.
type SlideInstructions struct {
	Index      int
	Kind       deck.Kind
	Template   layout.Template
	Background Background
	Overlay    *Overlay
	Shapes     []Shape
	Texts      []TextBox
	Images     []Image
}

// Serialize resolves every slide and converts its plan to instructions. It
// never fails: absent optional content is omitted and degenerate boxes are
// dropped rather than written with zero or negative size.
func Serialize(d *deck.Deck, opts Options) []SlideInstructions {
	if d == nil {
		return nil
	}
	font := opts.Font
	if font == "" {
		font = DefaultFont
	}

	out := make([]SlideInstructions, 0, len(d.Slides))
	for i, s := range d.Slides {
		res := theme.Resolve(s, d.Theme, opts.Templates)
		plan := layout.Resolve(s, layout.ContextFor(s, i, len(d.Slides), res, opts.FontScale))
		out = append(out, slideInstructions(i, s.Kind(), plan, res, font))
	}
	return out
}

func slideInstructions(i int, kind deck.Kind, plan layout.Plan, res theme.Resolution, font string) SlideInstructions {
	si := SlideInstructions{
		Index:      i,
		Kind:       kind,
		Template:   plan.Template,
		Background: background(res),
	}
	if res.Overlay > 0 {
		si.Overlay = &Overlay{Color: "#000000", Opacity: res.Overlay}
	}

	pal := res.Palette
	for _, r := range plan.Regions {
		x, y, w, h := r.Box.Inches()
		if !positive(w, h) {
			continue
		}

		switch r.Kind {
		case layout.RegionShape:
			si.Shapes = append(si.Shapes, shape(r, pal, x, y, w, h))
			if r.Content != "" {
				si.Texts = append(si.Texts, shapeLabel(r, pal, x, y, w, h, font))
			}
		case layout.RegionImage:
			si.Images = append(si.Images, Image{Name: r.Name, X: x, Y: y, W: w, H: h, Ref: r.Content, Fit: FitContain})
		case layout.RegionText, layout.RegionIcon:
			if r.Content == "" {
				continue
			}
			tb := TextBox{
				X: x, Y: y, W: w, H: h,
				Text:     r.Text(),
				FontSize: points(r.Style.Size),
				Bold:     r.Style.Bold,
				Color:    r.Style.Color(pal),
				Align:    r.Style.Align,
				Font:     font,
			}
			if r.Editable() {
				tb.Field = r.Field.String()
			}
			si.Texts = append(si.Texts, tb)
		}
	}

	return si
}

func background(res theme.Resolution) Background {
	p := res.Background
	bg := Background{Kind: p.Kind, Fallback: res.Base}
	switch p.Kind {
	case theme.PaintSolid:
		bg.Color = p.Color
	case theme.PaintImage:
		bg.ImageRef = p.ImageRef
	default:
		bg.Stops = append([]string{}, p.Stops...)
		bg.Angle = p.Angle
	}
	return bg
}

// shape maps a decoration region onto a filled shape: surfaces become
// bordered cards, accent bars stay rectangles and numbered accents become
// timeline markers.
func shape(r layout.Region, pal theme.Palette, x, y, w, h float64) Shape {
	s := Shape{Name: r.Name, X: x, Y: y, W: w, H: h}
	switch {
	case r.Style.Role == layout.RoleSurface:
		s.Kind = ShapeRoundRect
		s.Color = pal.CardSurface
		s.Border = pal.CardBorder
	case r.Content != "":
		s.Kind = ShapeEllipse
		s.Color = pal.Accent
	default:
		s.Kind = ShapeRect
		s.Color = r.Style.Color(pal)
	}
	return s
}

func shapeLabel(r layout.Region, pal theme.Palette, x, y, w, h float64, font string) TextBox {
	color := pal.Accent
	size := points(math.Min(40, h*72*0.3))
	if r.Style.Role != layout.RoleSurface {
		// marker number on the accent fill
		color = "#ffffff"
		if theme.IsLightHex(pal.Accent) {
			color = "#0f172a"
		}
		size = points(h * 72 * 0.45)
	}
	return TextBox{X: x, Y: y, W: w, H: h, Text: r.Content, FontSize: size, Bold: true, Color: color, Align: layout.AlignCenter, Font: font}
}

func points(size float64) int {
	if size < minFontSize {
		return minFontSize
	}
	return int(math.Round(size))
}

func positive(w, h float64) bool {
	return w > 0 && h > 0 && !math.IsNaN(w) && !math.IsNaN(h)
}
