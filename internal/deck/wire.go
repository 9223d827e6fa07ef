package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

// wireDeck is the JSON shape produced by the outline generator.
type wireDeck struct {
	Title    string      `json:"title"`
	Audience string      `json:"audience,omitempty"`
	Style    string      `json:"style,omitempty"`
	Theme    *wireTheme  `json:"theme,omitempty"`
	Slides   []wireSlide `json:"slides"`
}

// wireTheme accepts the short keys the generator emits as well as the
// long and abbreviated spellings found in hand-written decks.
type wireTheme struct {
	Primary         string `json:"primary,omitempty"`
	Accent          string `json:"accent,omitempty"`
	Background      string `json:"background,omitempty"`
	PrimaryColor    string `json:"primaryColor,omitempty"`
	AccentColor     string `json:"accentColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Bg              string `json:"bg,omitempty"`
}

type wireSlide struct {
	Type            string       `json:"type"`
	Headline        flexString   `json:"headline"`
	Subheadline     flexString   `json:"subheadline,omitempty"`
	Bullets         []flexString `json:"bullets,omitempty"`
	Metrics         []wireMetric `json:"metrics,omitempty"`
	Items           []wireItem   `json:"items,omitempty"`
	LeftTitle       flexString   `json:"leftTitle,omitempty"`
	LeftBullets     []flexString `json:"leftBullets,omitempty"`
	RightTitle      flexString   `json:"rightTitle,omitempty"`
	RightBullets    []flexString `json:"rightBullets,omitempty"`
	BackgroundColor string       `json:"backgroundColor,omitempty"`
	BackgroundImage string       `json:"backgroundImage,omitempty"`
	UserImage       string       `json:"userImage,omitempty"`
}

type wireMetric struct {
	Label       flexString `json:"label"`
	Value       flexString `json:"value"`
	Description flexString `json:"description,omitempty"`
}

type wireItem struct {
	Phase       flexString `json:"phase"`
	Title       flexString `json:"title"`
	Description flexString `json:"description,omitempty"`
}

// flexString decodes strings, numbers and booleans as text so a generator
// writing "value": 30 does not reject the whole outline. null decodes as "".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("expected text, got %s", data[:1])
	default:
		*f = flexString(data)
	}
	return nil
}

func texts(in []flexString) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, string(v))
	}
	return out
}

func flexTexts(in []string) []flexString {
	if len(in) == 0 {
		return nil
	}
	out := make([]flexString, 0, len(in))
	for _, v := range in {
		out = append(out, flexString(v))
	}
	return out
}

// Decode parses a generator outline (or a saved deck) and normalizes it.
// Unknown slide types decode as content slides.
func Decode(data []byte) (*Deck, error) {
	return DecodeNamed("deck", data)
}

// DecodeNamed is Decode with a source name used in parse errors.
func DecodeNamed(name string, data []byte) (*Deck, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, slideerrors.NewParseError(name, 0, fmt.Errorf("deck must be a JSON object"))
	}

	var w wireDeck
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return nil, slideerrors.NewParseError(name, 0, err)
	}

	d := &Deck{
		Title:    w.Title,
		Audience: w.Audience,
		Style:    w.Style,
		Slides:   make([]Slide, 0, len(w.Slides)),
	}
	if w.Theme != nil {
		d.Theme = w.Theme.theme()
	}
	for _, ws := range w.Slides {
		d.Slides = append(d.Slides, ws.slide())
	}

	Normalize(d)
	return d, nil
}

func (t wireTheme) theme() Theme {
	return Theme{
		Primary:    firstNonEmpty(t.Primary, t.PrimaryColor),
		Accent:     firstNonEmpty(t.Accent, t.AccentColor),
		Background: firstNonEmpty(t.Background, t.BackgroundColor, t.Bg),
	}
}

func (w wireSlide) slide() Slide {
	s := Slide{
		BackgroundColor: w.BackgroundColor,
		BackgroundImage: w.BackgroundImage,
		UserImage:       w.UserImage,
	}
	headline := string(w.Headline)

	switch Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(w.Type)), "_", "-")) {
	case KindTitle:
		s.Body = &Title{Headline: headline, Subheadline: string(w.Subheadline)}
	case KindAgenda:
		s.Body = &Agenda{Headline: headline, Bullets: texts(w.Bullets)}
	case KindClosing:
		s.Body = &Closing{Headline: headline, Subheadline: string(w.Subheadline), Bullets: texts(w.Bullets)}
	case KindData:
		metrics := make([]Metric, 0, len(w.Metrics))
		for _, m := range w.Metrics {
			metrics = append(metrics, Metric{Label: string(m.Label), Value: string(m.Value), Description: string(m.Description)})
		}
		s.Body = &Data{Headline: headline, Metrics: metrics}
	case KindTimeline:
		items := make([]TimelineItem, 0, len(w.Items))
		for _, it := range w.Items {
			items = append(items, TimelineItem{Phase: string(it.Phase), Title: string(it.Title), Description: string(it.Description)})
		}
		s.Body = &Timeline{Headline: headline, Items: items}
	case KindTwoColumn:
		s.Body = &TwoColumn{
			Headline:     headline,
			LeftTitle:    string(w.LeftTitle),
			LeftBullets:  texts(w.LeftBullets),
			RightTitle:   string(w.RightTitle),
			RightBullets: texts(w.RightBullets),
		}
	default:
		s.Body = &Content{Headline: headline, Bullets: texts(w.Bullets)}
	}

	return s
}

// MarshalJSON writes the deck in the generator's wire shape.
func (d Deck) MarshalJSON() ([]byte, error) {
	theme := wireTheme{Primary: d.Theme.Primary, Accent: d.Theme.Accent, Background: d.Theme.Background}
	w := wireDeck{
		Title:    d.Title,
		Audience: d.Audience,
		Style:    d.Style,
		Theme:    &theme,
		Slides:   make([]wireSlide, 0, len(d.Slides)),
	}
	for _, s := range d.Slides {
		w.Slides = append(w.Slides, toWire(s))
	}
	return json.Marshal(w)
}

// UnmarshalJSON lets a Deck be embedded in other JSON documents.
func (d *Deck) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*d = *decoded
	return nil
}

func toWire(s Slide) wireSlide {
	w := wireSlide{
		Type:            string(s.Kind()),
		BackgroundColor: s.BackgroundColor,
		BackgroundImage: s.BackgroundImage,
		UserImage:       s.UserImage,
	}

	switch b := s.Body.(type) {
	case *Title:
		w.Headline, w.Subheadline = flexString(b.Headline), flexString(b.Subheadline)
	case *Agenda:
		w.Headline, w.Bullets = flexString(b.Headline), flexTexts(b.Bullets)
	case *Content:
		w.Headline, w.Bullets = flexString(b.Headline), flexTexts(b.Bullets)
	case *Closing:
		w.Headline, w.Subheadline, w.Bullets = flexString(b.Headline), flexString(b.Subheadline), flexTexts(b.Bullets)
	case *Data:
		w.Headline = flexString(b.Headline)
		for _, m := range b.Metrics {
			w.Metrics = append(w.Metrics, wireMetric{Label: flexString(m.Label), Value: flexString(m.Value), Description: flexString(m.Description)})
		}
	case *Timeline:
		w.Headline = flexString(b.Headline)
		for _, it := range b.Items {
			w.Items = append(w.Items, wireItem{Phase: flexString(it.Phase), Title: flexString(it.Title), Description: flexString(it.Description)})
		}
	case *TwoColumn:
		w.Headline = flexString(b.Headline)
		w.LeftTitle, w.LeftBullets = flexString(b.LeftTitle), flexTexts(b.LeftBullets)
		w.RightTitle, w.RightBullets = flexString(b.RightTitle), flexTexts(b.RightBullets)
	}

	return w
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
