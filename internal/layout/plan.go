// Package layout maps a slide onto a named template and apportions its
// fields onto regions of a 16:9 canvas. Plans are derived on every render
// and never stored.
package layout

import (
	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/theme"
)

// Canvas size in inches. Boxes are fractions of it.
const (
	CanvasWidth  = 10.0
	CanvasHeight = 5.63
)

// Template names a visual layout.
type Template string

const (
	TemplateTitle     Template = "title"
	TemplateAgenda    Template = "agenda"
	TemplateCards     Template = "cards"
	TemplateList      Template = "list"
	TemplateData      Template = "data"
	TemplateTimeline  Template = "timeline"
	TemplateTwoColumn Template = "two-column"
	TemplateClosing   Template = "closing"
)

// RegionKind tells renderers how to draw a region.
type RegionKind int

const (
	RegionText RegionKind = iota
	RegionShape
	RegionIcon
	RegionImage
)

func (k RegionKind) String() string {
	switch k {
	case RegionShape:
		return "shape"
	case RegionIcon:
		return "icon"
	case RegionImage:
		return "image"
	default:
		return "text"
	}
}

// Role selects a palette entry.
type Role string

const (
	RoleTitle   Role = "title"
	RoleHeading Role = "heading"
	RoleLabel   Role = "label"
	RoleDetail  Role = "detail"
	RoleBody    Role = "body"
	RoleMuted   Role = "muted"
	RoleAccent  Role = "accent"
	RoleSurface Role = "surface"
)

// Align is horizontal text alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// Box is a rectangle in fractions of the canvas.
type Box struct {
	X, Y, W, H float64
}

// Inches builds a Box from canvas inches.
func Inches(x, y, w, h float64) Box {
	return Box{X: x / CanvasWidth, Y: y / CanvasHeight, W: w / CanvasWidth, H: h / CanvasHeight}
}

// Inches converts the box back to canvas inches.
func (b Box) Inches() (x, y, w, h float64) {
	return b.X * CanvasWidth, b.Y * CanvasHeight, b.W * CanvasWidth, b.H * CanvasHeight
}

// Bottom is Y+H.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Style is how a region is drawn. Size is in points.
type Style struct {
	Role  Role
	Size  float64
	Bold  bool
	Align Align
	Icon  string
}

// Color picks the region's color from the palette.
func (s Style) Color(p theme.Palette) string {
	switch s.Role {
	case RoleTitle:
		return p.Title
	case RoleHeading:
		return p.Heading
	case RoleLabel:
		return p.Label
	case RoleDetail:
		return p.Detail
	case RoleMuted:
		return p.Muted
	case RoleAccent:
		return p.Accent
	case RoleSurface:
		return p.CardSurface
	default:
		return p.Body
	}
}

// Region is one drawable area. Text regions bound to a slide field carry
// its FieldRef; Field.Name is empty for decoration.
type Region struct {
	Name    string
	Kind    RegionKind
	Field   deck.FieldRef
	Box     Box
	Content string
	Prefix  string
	Style   Style
}

// Editable reports whether the region writes back into a slide field.
func (r Region) Editable() bool {
	return r.Kind == RegionText && r.Field.Name != ""
}

// Text is the displayed string: prefix plus content.
func (r Region) Text() string {
	return r.Prefix + r.Content
}

// Plan is the resolved layout of one slide.
type Plan struct {
	Template Template
	Regions  []Region
}

// Region looks a region up by name.
func (p Plan) Region(name string) (Region, bool) {
	for _, r := range p.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// Editable returns the field-bound regions in drawing order.
func (p Plan) Editable() []Region {
	out := make([]Region, 0, len(p.Regions))
	for _, r := range p.Regions {
		if r.Editable() {
			out = append(out, r)
		}
	}
	return out
}
