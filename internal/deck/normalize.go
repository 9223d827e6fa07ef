package deck

import (
	"regexp"
	"strings"
)

// DefaultTheme is substituted whenever an outline arrives without an accent.
var DefaultTheme = Theme{
	Primary:    "#e2e8f0",
	Accent:     "#22d3ee",
	Background: "#0c1222",
}

var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Normalize repairs a freshly ingested deck in place so later stages never
// need to re-check for missing data. It runs once per ingestion.
func Normalize(d *Deck) {
	if d == nil {
		return
	}

	d.Title = strings.TrimSpace(d.Title)
	d.Audience = strings.TrimSpace(d.Audience)
	d.Theme = normalizeTheme(d.Theme)

	for i := range d.Slides {
		normalizeSlide(&d.Slides[i])
	}

	if len(d.Slides) == 0 {
		headline := d.Title
		if headline == "" {
			headline = "Untitled deck"
		}
		d.Slides = []Slide{{Body: &Title{Headline: headline}}}
	}
}

func normalizeTheme(t Theme) Theme {
	accent, ok := canonicalHex(t.Accent)
	if !ok {
		return DefaultTheme
	}

	out := Theme{Accent: accent}
	if bg, ok := canonicalHex(t.Background); ok {
		out.Background = bg
	} else {
		out.Background = DefaultTheme.Background
	}
	if primary, ok := canonicalHex(t.Primary); ok {
		out.Primary = primary
	} else {
		out.Primary = DefaultTheme.Primary
	}
	return out
}

func normalizeSlide(s *Slide) {
	if s.Body == nil {
		s.Body = &Content{}
	}

	if s.BackgroundColor != "" {
		if c, ok := canonicalHex(s.BackgroundColor); ok {
			s.BackgroundColor = c
		} else {
			s.BackgroundColor = ""
		}
	}
	s.BackgroundImage = strings.TrimSpace(s.BackgroundImage)
	s.UserImage = strings.TrimSpace(s.UserImage)

	switch b := s.Body.(type) {
	case *Agenda:
		b.Bullets = nonNil(b.Bullets)
	case *Content:
		b.Bullets = nonNil(b.Bullets)
	case *Closing:
		b.Bullets = nonNil(b.Bullets)
	case *Data:
		if b.Metrics == nil {
			b.Metrics = []Metric{}
		}
	case *Timeline:
		if b.Items == nil {
			b.Items = []TimelineItem{}
		}
	case *TwoColumn:
		b.LeftBullets = nonNil(b.LeftBullets)
		b.RightBullets = nonNil(b.RightBullets)
	}
}

// canonicalHex lowercases a 3 or 6 digit color and ensures a leading '#'.
// Short forms are expanded.
func canonicalHex(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !hexPattern.MatchString(s) {
		return "", false
	}
	s = strings.ToLower(strings.TrimPrefix(s, "#"))
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	return "#" + s, true
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
