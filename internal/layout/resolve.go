package layout

import (
	"fmt"
	"math"

	"github.com/alexisbeaulieu97/slidesmith/internal/bullet"
	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/theme"
)

// Body band limits in inches.
const (
	bandTop       = 1.3
	bandBottom    = 5.3
	bandTopImage  = 1.8
	minFontSize   = 8.0
	labeledPitch  = 1.2
	plainPitch    = 0.9
	cardGap       = 0.25
	maxCardsRange = 4
)

// UserImageBox is the fixed top-right corner a user image is drawn into.
var UserImageBox = Inches(7.6, 0.3, 2.1, 1.4)

// Context is what a plan needs to know beyond the slide itself.
type Context struct {
	SlideIndex         int
	TotalSlides        int
	HasBackgroundImage bool
	HasUserImage       bool
	// FontScale multiplies every text size; zero means 1.
	FontScale float64
}

// ContextFor builds the context of slide i from its resolved background.
func ContextFor(s deck.Slide, i, total int, res theme.Resolution, fontScale float64) Context {
	return Context{
		SlideIndex:         i,
		TotalSlides:        total,
		HasBackgroundImage: res.Background.Kind == theme.PaintImage,
		HasUserImage:       s.UserImage != "",
		FontScale:          fontScale,
	}
}

// TemplateFor picks the template of a slide. Content slides use cards when
// they have two to four bullets that are all labeled, and a list otherwise.
func TemplateFor(s deck.Slide) Template {
	switch b := s.Body.(type) {
	case *deck.Title:
		return TemplateTitle
	case *deck.Agenda:
		return TemplateAgenda
	case *deck.Closing:
		return TemplateClosing
	case *deck.Data:
		return TemplateData
	case *deck.Timeline:
		return TemplateTimeline
	case *deck.TwoColumn:
		return TemplateTwoColumn
	case *deck.Content:
		return contentTemplate(b.Bullets)
	default:
		return TemplateList
	}
}

func contentTemplate(bullets []string) Template {
	n := len(bullets)
	if n >= 2 && n <= maxCardsRange && bullet.CountLabeled(bullets) == n {
		return TemplateCards
	}
	return TemplateList
}

// Resolve builds the plan for one slide.
func Resolve(s deck.Slide, ctx Context) Plan {
	b := &builder{ctx: ctx, template: TemplateFor(s)}

	switch body := s.Body.(type) {
	case *deck.Title:
		b.title(body)
	case *deck.Agenda:
		b.agenda(body)
	case *deck.Closing:
		b.closing(body)
	case *deck.Data:
		b.data(body)
	case *deck.Timeline:
		b.timeline(body)
	case *deck.TwoColumn:
		b.twoColumn(body)
	default:
		b.heading(s.Headline())
		if b.template == TemplateCards {
			b.cards(s.Bullets())
		} else {
			b.list(s.Bullets())
		}
	}

	b.footer()
	if s.UserImage != "" {
		b.add(Region{Name: "user-image", Kind: RegionImage, Box: UserImageBox, Content: s.UserImage})
	}
	b.scaleFonts()

	return Plan{Template: b.template, Regions: b.regions}
}

type builder struct {
	ctx      Context
	template Template
	regions  []Region
}

func (b *builder) add(r Region) {
	b.regions = append(b.regions, r)
}

func (b *builder) field(ref deck.FieldRef, box Box, style Style, content, prefix string) {
	b.add(Region{Name: ref.String(), Kind: RegionText, Field: ref, Box: box, Content: content, Prefix: prefix, Style: style})
}

func (b *builder) shape(name string, box Box, role Role, content string) {
	b.add(Region{Name: name, Kind: RegionShape, Box: box, Content: content, Style: Style{Role: role, Align: AlignCenter}})
}

func (b *builder) icon(name string, box Box, icon Icon, size float64) {
	b.add(Region{
		Name:    name,
		Kind:    RegionIcon,
		Box:     box,
		Content: icon.Glyph,
		Style:   Style{Role: RoleAccent, Size: size, Align: AlignCenter, Icon: icon.Name},
	})
}

func (b *builder) bodyTop() float64 {
	if b.ctx.HasUserImage {
		return bandTopImage
	}
	return bandTop
}

func (b *builder) heading(headline string) {
	w := 9.0
	if b.ctx.HasUserImage {
		// stop short of the user image corner
		w = 6.9
	}
	b.field(deck.Scalar(deck.FieldHeadline), Inches(0.5, 0.4, w, 0.7),
		Style{Role: RoleHeading, Size: 28, Bold: true, Align: AlignLeft}, headline, "")
}

func (b *builder) title(t *deck.Title) {
	b.shape("rule", Inches(4.4, 1.95, 1.2, 0.04), RoleAccent, "")
	b.field(deck.Scalar(deck.FieldHeadline), Inches(0.5, 2.2, 9, 1.5),
		Style{Role: RoleTitle, Size: 44, Bold: true, Align: AlignCenter}, t.Headline, "")
	b.field(deck.Scalar(deck.FieldSubheadline), Inches(0.5, 3.7, 9, 0.7),
		Style{Role: RoleAccent, Size: 22, Align: AlignCenter}, t.Subheadline, "")
}

func (b *builder) closing(c *deck.Closing) {
	b.field(deck.Scalar(deck.FieldHeadline), Inches(0.5, 2, 9, 1),
		Style{Role: RoleTitle, Size: 40, Bold: true, Align: AlignCenter}, c.Headline, "")
	b.field(deck.Scalar(deck.FieldSubheadline), Inches(0.5, 3.2, 9, 0.6),
		Style{Role: RoleAccent, Size: 20, Align: AlignCenter}, c.Subheadline, "")

	p := pitch(len(c.Bullets), bandBottom-3.8, 0.6)
	for i, text := range c.Bullets {
		b.field(deck.Entry(deck.FieldBullets, i, ""), Inches(2.5, 3.8+float64(i)*p, 5, p*5/6),
			Style{Role: RoleBody, Size: fit(18, p/0.6), Align: AlignLeft}, text, "→ ")
	}
}

func (b *builder) agenda(a *deck.Agenda) {
	b.heading(a.Headline)

	top := 1.8
	p := pitch(len(a.Bullets), bandBottom-top, 0.8)
	for i, text := range a.Bullets {
		b.field(deck.Entry(deck.FieldBullets, i, ""), Inches(1, top+float64(i)*p, 8, p*0.75),
			Style{Role: RoleBody, Size: fit(20, p/0.8), Align: AlignLeft}, text, fmt.Sprintf("%d. ", i+1))
	}
}

// list stacks bullets vertically. Labeled rows pair a bold label with a
// lighter detail below it; row pitch shrinks with the bullet count so rows
// never overlap or leave the band.
func (b *builder) list(bullets []string) {
	top := b.bodyTop()
	band := bandBottom - top

	maxPitch := plainPitch
	if bullet.CountLabeled(bullets) > 0 {
		maxPitch = labeledPitch
	}
	p := pitch(len(bullets), band, maxPitch)
	ratio := p / maxPitch

	panel := !b.ctx.HasBackgroundImage && !b.ctx.HasUserImage
	x, w := 0.8, 8.0
	if panel {
		w = 5.4
	}

	for i, text := range bullets {
		y := top + float64(i)*p
		b.icon(fmt.Sprintf("icon[%d]", i), Inches(0.35, y+p*0.05, 0.35, math.Min(0.35, p*0.6)),
			IconFor(b.ctx.SlideIndex, i), fit(14, ratio))

		parts := bullet.Split(text)
		if parts.Labeled {
			b.field(deck.Entry(deck.FieldBullets, i, deck.PartLabel), Inches(x, y, w, p/3),
				Style{Role: RoleLabel, Size: fit(18, ratio), Bold: true, Align: AlignLeft}, parts.Label, "")
			b.field(deck.Entry(deck.FieldBullets, i, deck.PartDetail), Inches(x, y+p/3, w, p*5/12),
				Style{Role: RoleDetail, Size: fit(14, ratio), Align: AlignLeft}, parts.Detail, "")
			continue
		}
		b.field(deck.Entry(deck.FieldBullets, i, ""), Inches(x, y+p/9, w, p*7/9),
			Style{Role: RoleBody, Size: fit(16, ratio), Align: AlignLeft}, text, "•  ")
	}

	if panel {
		b.shape("panel", Inches(6.6, top, 2.9, band-0.2), RoleSurface,
			IconFor(b.ctx.SlideIndex, b.ctx.SlideIndex).Glyph)
	}
}

// cards lays labeled bullets out as a grid of at most three columns.
func (b *builder) cards(bullets []string) {
	n := len(bullets)
	if n == 0 {
		return
	}
	cols := min(n, 3)
	rows := (n + cols - 1) / cols
	top := b.bodyTop()
	band := bandBottom - top

	cw := (9 - cardGap*float64(cols-1)) / float64(cols)
	ch := (band - cardGap*float64(rows-1)) / float64(rows)

	for i, text := range bullets {
		x := 0.5 + float64(i%cols)*(cw+cardGap)
		y := top + float64(i/cols)*(ch+cardGap)
		parts := bullet.Split(text)

		b.shape(fmt.Sprintf("card[%d]", i), Inches(x, y, cw, ch), RoleSurface, "")
		b.icon(fmt.Sprintf("icon[%d]", i), Inches(x+cw/2-0.25, y+0.15, 0.5, 0.45), IconFor(b.ctx.SlideIndex, i), 20)
		b.field(deck.Entry(deck.FieldBullets, i, deck.PartLabel), Inches(x+0.15, y+0.7, cw-0.3, 0.45),
			Style{Role: RoleLabel, Size: 18, Bold: true, Align: AlignCenter}, parts.Label, "")
		b.field(deck.Entry(deck.FieldBullets, i, deck.PartDetail), Inches(x+0.15, y+1.2, cw-0.3, ch-1.35),
			Style{Role: RoleDetail, Size: 13, Align: AlignCenter}, parts.Detail, "")
	}
}

func (b *builder) data(d *deck.Data) {
	b.heading(d.Headline)

	n := len(d.Metrics)
	if n == 0 {
		return
	}
	top := 1.6
	if b.ctx.HasUserImage {
		top = bandTopImage
	}
	rows := (n + 2) / 3
	rp := math.Min(2.0, (5.6-top)/float64(rows))
	k := rp / 2

	for i, m := range d.Metrics {
		x := 0.5 + float64(i%3)*3.2
		y := top + float64(i/3)*rp

		b.shape(fmt.Sprintf("card[%d]", i), Inches(x-0.05, y-0.1, 2.9, 1.7*k), RoleSurface, "")
		b.field(deck.Entry(deck.FieldMetrics, i, deck.PartValue), Inches(x, y, 2.8, 0.8*k),
			Style{Role: RoleAccent, Size: fit(32, k), Bold: true, Align: AlignCenter}, m.Value, "")
		b.field(deck.Entry(deck.FieldMetrics, i, deck.PartLabel), Inches(x, y+0.8*k, 2.8, 0.4*k),
			Style{Role: RoleMuted, Size: fit(14, k), Align: AlignCenter}, m.Label, "")
		b.field(deck.Entry(deck.FieldMetrics, i, deck.PartDescription), Inches(x, y+1.2*k, 2.8, 0.4*k),
			Style{Role: RoleDetail, Size: fit(11, k), Align: AlignCenter}, m.Description, "")
	}
}

func (b *builder) timeline(t *deck.Timeline) {
	b.heading(t.Headline)

	n := len(t.Items)
	if n == 0 {
		return
	}
	top := 2.0
	if b.ctx.HasUserImage {
		top = 2.2
	}
	colW := 9 / float64(n)
	ratio := colW / 2.25

	b.shape("rail", Inches(0.5, top+0.18, 9, 0.04), RoleAccent, "")
	for i, it := range t.Items {
		x := 0.5 + float64(i)*colW
		b.shape(fmt.Sprintf("marker[%d]", i), Inches(x+colW/2-0.2, top, 0.4, 0.4), RoleAccent, fmt.Sprintf("%d", i+1))
		b.field(deck.Entry(deck.FieldItems, i, deck.PartPhase), Inches(x+0.1, top+0.55, colW-0.2, 0.45),
			Style{Role: RoleHeading, Size: fit(14, ratio), Bold: true, Align: AlignCenter}, it.Phase, "")
		b.field(deck.Entry(deck.FieldItems, i, deck.PartTitle), Inches(x+0.1, top+1.0, colW-0.2, 0.6),
			Style{Role: RoleLabel, Size: fit(14, ratio), Align: AlignCenter}, it.Title, "")
		b.field(deck.Entry(deck.FieldItems, i, deck.PartDescription), Inches(x+0.1, top+1.6, colW-0.2, 0.9),
			Style{Role: RoleDetail, Size: fit(11, ratio), Align: AlignCenter}, it.Description, "")
	}
}

func (b *builder) twoColumn(c *deck.TwoColumn) {
	b.heading(c.Headline)

	off := 0.0
	if b.ctx.HasUserImage {
		off = 0.3
	}
	b.shape("column[0]", Inches(0.4, 1.4+off, 4.4, 3.9-off), RoleSurface, "")
	b.shape("column[1]", Inches(4.9, 1.4+off, 4.4, 3.9-off), RoleSurface, "")

	b.column(deck.FieldLeftTitle, deck.FieldLeftBullets, c.LeftTitle, c.LeftBullets, 0.5, off)
	b.column(deck.FieldRightTitle, deck.FieldRightBullets, c.RightTitle, c.RightBullets, 5, off)
}

func (b *builder) column(titleField, bulletsField, title string, bullets []string, x, off float64) {
	b.field(deck.Scalar(titleField), Inches(x, 1.5+off, 4, 0.5),
		Style{Role: RoleHeading, Size: 20, Bold: true, Align: AlignLeft}, title, "")

	top := 2.2 + off
	p := pitch(len(bullets), bandBottom-top, 0.6)
	for i, text := range bullets {
		b.field(deck.Entry(bulletsField, i, ""), Inches(x+0.2, top+float64(i)*p, 4, p*5/6),
			Style{Role: RoleBody, Size: fit(16, p/0.6), Align: AlignLeft}, text, "• ")
	}
}

func (b *builder) footer() {
	total := max(b.ctx.TotalSlides, b.ctx.SlideIndex+1)
	b.add(Region{
		Name:    "footer",
		Kind:    RegionText,
		Box:     Inches(0.3, 5.28, 1.4, 0.3),
		Content: fmt.Sprintf("%02d / %02d", b.ctx.SlideIndex+1, total),
		Style:   Style{Role: RoleMuted, Size: 9, Align: AlignLeft},
	})
}

func (b *builder) scaleFonts() {
	scale := b.ctx.FontScale
	if scale <= 0 || scale == 1 {
		return
	}
	for i := range b.regions {
		if b.regions[i].Style.Size > 0 {
			b.regions[i].Style.Size *= scale
		}
	}
}

// pitch spreads n rows over band inches, never more than maxPitch apart.
func pitch(n int, band, maxPitch float64) float64 {
	if n <= 0 {
		return maxPitch
	}
	return math.Min(maxPitch, band/float64(n))
}

func fit(size, ratio float64) float64 {
	if ratio >= 1 {
		return size
	}
	return math.Max(minFontSize, size*ratio)
}
