// Package deck is the canonical slide document: a titled, themed, ordered list
// of slides whose bodies are a closed set of variants, one per template kind.
package deck

// Kind tags a slide body.
type Kind string

const (
	KindTitle     Kind = "title"
	KindAgenda    Kind = "agenda"
	KindContent   Kind = "content"
	KindData      Kind = "data"
	KindTimeline  Kind = "timeline"
	KindTwoColumn Kind = "two-column"
	KindClosing   Kind = "closing"
)

// Kinds lists every slide kind in editor order.
var Kinds = []Kind{KindTitle, KindAgenda, KindContent, KindData, KindTimeline, KindTwoColumn, KindClosing}

// Valid reports whether k is one of Kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Theme is the deck-wide palette as hex colors.
type Theme struct {
	Primary    string `json:"primary,omitempty" validate:"omitempty,hexcolor"`
	Accent     string `json:"accent,omitempty" validate:"omitempty,hexcolor"`
	Background string `json:"background,omitempty" validate:"omitempty,hexcolor"`
}

// Deck is the whole presentation. Slides is never empty once a deck has been
// decoded or normalized.
type Deck struct {
	Title    string  `validate:"max=200"`
	Audience string  `validate:"max=200"`
	Style    string  `validate:"max=64"`
	Theme    Theme
	Slides   []Slide `validate:"required,min=1,dive"`
}

// Slide is one page: a typed body plus optional per-slide overrides.
// BackgroundImage and UserImage are opaque image references (data URIs,
// URLs or file paths).
type Slide struct {
	Body            Body   `validate:"required"`
	BackgroundColor string `validate:"omitempty,hexcolor"`
	BackgroundImage string `validate:"omitempty,image_ref"`
	UserImage       string `validate:"omitempty,image_ref"`
}

// Body is implemented by exactly the variant types in this package.
type Body interface {
	Kind() Kind
	clone() Body
}

// Title is a cover slide.
type Title struct {
	Headline    string
	Subheadline string
}

// Agenda lists the sections of the talk.
type Agenda struct {
	Headline string
	Bullets  []string
}

// Content is the general bullet slide; bullets may follow the
// "label: detail" convention.
type Content struct {
	Headline string
	Bullets  []string
}

// Closing ends the deck.
type Closing struct {
	Headline    string
	Subheadline string
	Bullets     []string
}

// Metric is one figure on a data slide.
type Metric struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Data shows a grid of metrics.
type Data struct {
	Headline string
	Metrics  []Metric
}

// TimelineItem is one phase on a timeline slide.
type TimelineItem struct {
	Phase       string `json:"phase"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Timeline shows phases left to right.
type Timeline struct {
	Headline string
	Items    []TimelineItem
}

// TwoColumn compares two bullet lists.
type TwoColumn struct {
	Headline     string
	LeftTitle    string
	LeftBullets  []string
	RightTitle   string
	RightBullets []string
}

func (*Title) Kind() Kind     { return KindTitle }
func (*Agenda) Kind() Kind    { return KindAgenda }
func (*Content) Kind() Kind   { return KindContent }
func (*Closing) Kind() Kind   { return KindClosing }
func (*Data) Kind() Kind      { return KindData }
func (*Timeline) Kind() Kind  { return KindTimeline }
func (*TwoColumn) Kind() Kind { return KindTwoColumn }

func (b *Title) clone() Body { c := *b; return &c }

func (b *Agenda) clone() Body {
	return &Agenda{Headline: b.Headline, Bullets: cloneStrings(b.Bullets)}
}

func (b *Content) clone() Body {
	return &Content{Headline: b.Headline, Bullets: cloneStrings(b.Bullets)}
}

func (b *Closing) clone() Body {
	return &Closing{Headline: b.Headline, Subheadline: b.Subheadline, Bullets: cloneStrings(b.Bullets)}
}

func (b *Data) clone() Body {
	return &Data{Headline: b.Headline, Metrics: append([]Metric{}, b.Metrics...)}
}

func (b *Timeline) clone() Body {
	return &Timeline{Headline: b.Headline, Items: append([]TimelineItem{}, b.Items...)}
}

func (b *TwoColumn) clone() Body {
	return &TwoColumn{
		Headline:     b.Headline,
		LeftTitle:    b.LeftTitle,
		LeftBullets:  cloneStrings(b.LeftBullets),
		RightTitle:   b.RightTitle,
		RightBullets: cloneStrings(b.RightBullets),
	}
}

func cloneStrings(in []string) []string {
	return append([]string{}, in...)
}

// Kind returns the slide's body kind, defaulting to content for a nil body.
func (s Slide) Kind() Kind {
	if s.Body == nil {
		return KindContent
	}
	return s.Body.Kind()
}

// Headline returns the headline every variant carries.
func (s Slide) Headline() string {
	switch b := s.Body.(type) {
	case *Title:
		return b.Headline
	case *Agenda:
		return b.Headline
	case *Content:
		return b.Headline
	case *Closing:
		return b.Headline
	case *Data:
		return b.Headline
	case *Timeline:
		return b.Headline
	case *TwoColumn:
		return b.Headline
	default:
		return ""
	}
}

// Subheadline returns the subheadline of title and closing slides.
func (s Slide) Subheadline() string {
	switch b := s.Body.(type) {
	case *Title:
		return b.Subheadline
	case *Closing:
		return b.Subheadline
	default:
		return ""
	}
}

// Bullets returns the bullet list of agenda, content and closing slides.
func (s Slide) Bullets() []string {
	switch b := s.Body.(type) {
	case *Agenda:
		return b.Bullets
	case *Content:
		return b.Bullets
	case *Closing:
		return b.Bullets
	default:
		return nil
	}
}

// Clone returns a deep copy.
func (s Slide) Clone() Slide {
	out := s
	if s.Body != nil {
		out.Body = s.Body.clone()
	}
	return out
}

// Clone returns a deep copy of the deck.
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}
	out := *d
	out.Slides = make([]Slide, len(d.Slides))
	for i, s := range d.Slides {
		out.Slides[i] = s.Clone()
	}
	return &out
}
