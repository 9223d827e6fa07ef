package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrLastSlide is returned when removing the only slide of a deck.
	ErrLastSlide = errors.New("a deck must keep at least one slide")
	// ErrIndexOutOfRange is returned for slide, item or preset indices past the end.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNoItems is returned when a slide kind has no list to add to or remove from.
	ErrNoItems = errors.New("slide kind has no list items")
)

// Placeholder text used for newly created slides and items.
const (
	NewSlideHeadline = "New slide"
	NewSlideBullet   = "Point: details"
	NewBullet        = "New point"
)

// NewSlide returns a slide of the given kind populated with that kind's defaults.
func NewSlide(kind Kind, headline string) Slide {
	return Slide{Body: defaults(kind, headline)}
}

func defaults(kind Kind, headline string) Body {
	switch kind {
	case KindTitle:
		return &Title{Headline: headline}
	case KindAgenda:
		return &Agenda{Headline: headline, Bullets: []string{}}
	case KindClosing:
		return &Closing{Headline: headline, Bullets: []string{}}
	case KindData:
		return &Data{Headline: headline, Metrics: []Metric{}}
	case KindTimeline:
		return &Timeline{Headline: headline, Items: []TimelineItem{}}
	case KindTwoColumn:
		return &TwoColumn{Headline: headline, LeftBullets: []string{}, RightBullets: []string{}}
	default:
		return &Content{Headline: headline, Bullets: []string{}}
	}
}

// ChangeType converts the slide to kind. The body is reset to the new kind's
// defaults; only the headline, fields shared by both kinds (bullets between
// agenda/content/closing, subheadline between title/closing) and the
// per-slide overrides survive.
func (s *Slide) ChangeType(kind Kind) {
	if !kind.Valid() {
		kind = KindContent
	}
	if s.Kind() == kind && s.Body != nil {
		return
	}

	next := defaults(kind, s.Headline())
	bullets := s.Bullets()
	sub := s.Subheadline()

	switch b := next.(type) {
	case *Agenda:
		b.Bullets = append(b.Bullets, bullets...)
	case *Content:
		b.Bullets = append(b.Bullets, bullets...)
	case *Closing:
		b.Bullets = append(b.Bullets, bullets...)
		b.Subheadline = sub
	case *Title:
		b.Subheadline = sub
	}

	s.Body = next
}

// Len is the number of slides.
func (d *Deck) Len() int {
	return len(d.Slides)
}

// Slide returns a pointer to slide i for in-place edits.
func (d *Deck) Slide(i int) (*Slide, error) {
	if i < 0 || i >= len(d.Slides) {
		return nil, fmt.Errorf("slide %d: %w", i, ErrIndexOutOfRange)
	}
	return &d.Slides[i], nil
}

// AddSlide inserts a default content slide after index after (-1 prepends,
// anything past the end appends) and returns its index.
func (d *Deck) AddSlide(after int) int {
	s := NewSlide(KindContent, NewSlideHeadline)
	s.Body.(*Content).Bullets = []string{NewSlideBullet}
	return d.insert(after+1, s)
}

// DuplicateSlide inserts a deep copy of slide i right after it.
func (d *Deck) DuplicateSlide(i int) (int, error) {
	s, err := d.Slide(i)
	if err != nil {
		return 0, err
	}
	return d.insert(i+1, s.Clone()), nil
}

// RemoveSlide deletes slide i. The only slide of a deck cannot be removed.
func (d *Deck) RemoveSlide(i int) error {
	if _, err := d.Slide(i); err != nil {
		return err
	}
	if len(d.Slides) <= 1 {
		return ErrLastSlide
	}
	d.Slides = append(d.Slides[:i], d.Slides[i+1:]...)
	return nil
}

// MoveSlide swaps slide i with its neighbour at i+delta and returns the
// slide's new index. Moving past either end leaves the deck unchanged.
func (d *Deck) MoveSlide(i, delta int) (int, error) {
	if _, err := d.Slide(i); err != nil {
		return i, err
	}
	j := i + delta
	if j < 0 || j >= len(d.Slides) || delta == 0 {
		return i, nil
	}
	d.Slides[i], d.Slides[j] = d.Slides[j], d.Slides[i]
	return j, nil
}

// ChangeType converts slide i to kind.
func (d *Deck) ChangeType(i int, kind Kind) error {
	s, err := d.Slide(i)
	if err != nil {
		return err
	}
	s.ChangeType(kind)
	return nil
}

// AddItem appends a placeholder to the slide's main list: a bullet, a
// metric, a timeline phase or a left-column bullet.
func (d *Deck) AddItem(i int) error {
	s, err := d.Slide(i)
	if err != nil {
		return err
	}

	switch b := s.Body.(type) {
	case *Agenda:
		b.Bullets = append(b.Bullets, NewBullet)
	case *Content:
		b.Bullets = append(b.Bullets, NewBullet)
	case *Closing:
		b.Bullets = append(b.Bullets, NewBullet)
	case *Data:
		b.Metrics = append(b.Metrics, Metric{Label: "Metric", Value: "0"})
	case *Timeline:
		b.Items = append(b.Items, TimelineItem{Phase: fmt.Sprintf("Phase %d", len(b.Items)+1), Title: "Milestone"})
	case *TwoColumn:
		b.LeftBullets = append(b.LeftBullets, NewBullet)
	default:
		return ErrNoItems
	}
	return nil
}

// RemoveItem deletes entry j of the slide's main list.
func (d *Deck) RemoveItem(i, j int) error {
	s, err := d.Slide(i)
	if err != nil {
		return err
	}

	switch b := s.Body.(type) {
	case *Agenda:
		b.Bullets, err = removeAt(b.Bullets, j)
	case *Content:
		b.Bullets, err = removeAt(b.Bullets, j)
	case *Closing:
		b.Bullets, err = removeAt(b.Bullets, j)
	case *Data:
		b.Metrics, err = removeAt(b.Metrics, j)
	case *Timeline:
		b.Items, err = removeAt(b.Items, j)
	case *TwoColumn:
		b.LeftBullets, err = removeAt(b.LeftBullets, j)
	default:
		return ErrNoItems
	}
	return err
}

func (d *Deck) insert(at int, s Slide) int {
	if at < 0 {
		at = 0
	}
	if at > len(d.Slides) {
		at = len(d.Slides)
	}
	d.Slides = append(d.Slides, Slide{})
	copy(d.Slides[at+1:], d.Slides[at:])
	d.Slides[at] = s
	return at
}

func removeAt[T any](in []T, j int) ([]T, error) {
	if j < 0 || j >= len(in) {
		return in, fmt.Errorf("item %d: %w", j, ErrIndexOutOfRange)
	}
	return append(in[:j], in[j+1:]...), nil
}
