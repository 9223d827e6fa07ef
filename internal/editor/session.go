package editor

import (
	"fmt"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/layout"
	"github.com/alexisbeaulieu97/slidesmith/internal/theme"
	"github.com/alexisbeaulieu97/slidesmith/internal/validation"
)

// Session holds the deck being edited and the index of the shown slide.
// Slides are identified by position only.
type Session struct {
	deck      *deck.Deck
	current   int
	templates theme.Templates
	fontScale float64
}

// NewSession starts editing d. A nil deck is replaced by a one-slide deck.
func NewSession(d *deck.Deck, templates theme.Templates) *Session {
	if d == nil {
		d = &deck.Deck{}
	}
	deck.Normalize(d)
	return &Session{deck: d, templates: templates, fontScale: 1}
}

// Deck returns the live deck.
func (s *Session) Deck() *deck.Deck { return s.deck }

// Templates returns the template images used for backgrounds.
func (s *Session) Templates() theme.Templates { return s.templates }

// SetTemplates replaces the template images.
func (s *Session) SetTemplates(t theme.Templates) { s.templates = t }

// Len is the slide count.
func (s *Session) Len() int { return s.deck.Len() }

// Index returns the current slide index, repairing it first.
func (s *Session) Index() int {
	if s.current < 0 || s.current >= s.deck.Len() {
		s.current = 0
	}
	return s.current
}

// Current returns the shown slide. An index past the end resets to 0.
func (s *Session) Current() deck.Slide {
	if len(s.deck.Slides) == 0 {
		deck.Normalize(s.deck)
	}
	return s.deck.Slides[s.Index()]
}

// Go shows slide i, clamped to the deck.
func (s *Session) Go(i int) int {
	s.current = clamp(i, s.deck.Len())
	return s.current
}

// Next shows the following slide.
func (s *Session) Next() int { return s.Go(s.Index() + 1) }

// Prev shows the preceding slide.
func (s *Session) Prev() int { return s.Go(s.Index() - 1) }

// FontScale is the text size multiplier used for plans.
func (s *Session) FontScale() float64 { return s.fontScale }

// SetFontScale sets the multiplier; non-positive values reset it to 1.
func (s *Session) SetFontScale(f float64) {
	if f <= 0 {
		f = 1
	}
	s.fontScale = f
}

// Resolve computes the background and layout of slide i.
func (s *Session) Resolve(i int) (layout.Plan, theme.Resolution) {
	slide := s.deck.Slides[clamp(i, s.deck.Len())]
	res := theme.Resolve(slide, s.deck.Theme, s.templates)
	ctx := layout.ContextFor(slide, i, s.deck.Len(), res, s.fontScale)
	return layout.Resolve(slide, ctx), res
}

// Plan is Resolve for the current slide.
func (s *Session) Plan() (layout.Plan, theme.Resolution) {
	return s.Resolve(s.Index())
}

// AddSlide inserts a new slide after the current one and shows it.
func (s *Session) AddSlide() int {
	s.current = s.deck.AddSlide(s.Index())
	return s.current
}

// DuplicateSlide copies the current slide and shows the copy.
func (s *Session) DuplicateSlide() error {
	i, err := s.deck.DuplicateSlide(s.Index())
	if err != nil {
		return err
	}
	s.current = i
	return nil
}

// RemoveSlide deletes the current slide and clamps the index.
func (s *Session) RemoveSlide() error {
	if err := s.deck.RemoveSlide(s.Index()); err != nil {
		return err
	}
	s.current = clamp(s.current, s.deck.Len())
	return nil
}

// MoveSlide swaps the current slide with a neighbour and follows it.
func (s *Session) MoveSlide(delta int) error {
	i, err := s.deck.MoveSlide(s.Index(), delta)
	if err != nil {
		return err
	}
	s.current = i
	return nil
}

// ChangeType converts the current slide.
func (s *Session) ChangeType(kind deck.Kind) error {
	return s.deck.ChangeType(s.Index(), kind)
}

// CycleType converts the current slide to the next kind in deck.Kinds.
func (s *Session) CycleType() (deck.Kind, error) {
	kind := s.Current().Kind()
	next := deck.Kinds[0]
	for i, k := range deck.Kinds {
		if k == kind {
			next = deck.Kinds[(i+1)%len(deck.Kinds)]
			break
		}
	}
	return next, s.ChangeType(next)
}

// AddItem appends a placeholder entry to the current slide.
func (s *Session) AddItem() error {
	return s.deck.AddItem(s.Index())
}

// RemoveItem deletes entry j of the current slide.
func (s *Session) RemoveItem(j int) error {
	return s.deck.RemoveItem(s.Index(), j)
}

// ApplyPreset switches the deck theme.
func (s *Session) ApplyPreset(i int) error {
	return s.deck.ApplyPreset(i)
}

// NextPreset cycles through the theme presets.
func (s *Session) NextPreset() (deck.Preset, error) {
	i := (s.deck.PresetIndex() + 1) % len(deck.Presets)
	if err := s.deck.ApplyPreset(i); err != nil {
		return deck.Preset{}, err
	}
	return deck.Presets[i], nil
}

// SetBackgroundColor overrides the current slide's background color. An
// empty color clears the override.
func (s *Session) SetBackgroundColor(color string) error {
	slide, err := s.deck.Slide(s.Index())
	if err != nil {
		return err
	}
	if color == "" {
		slide.BackgroundColor = ""
		return nil
	}
	c, err := theme.ParseHex(color)
	if err != nil {
		return err
	}
	slide.BackgroundColor = c.Hex()
	return nil
}

// SetBackgroundImage sets the current slide's background image reference.
func (s *Session) SetBackgroundImage(ref string) error {
	return s.setImage(ref, func(slide *deck.Slide) { slide.BackgroundImage = ref })
}

// SetUserImage attaches an image to the current slide's corner.
func (s *Session) SetUserImage(ref string) error {
	return s.setImage(ref, func(slide *deck.Slide) { slide.UserImage = ref })
}

func (s *Session) setImage(ref string, apply func(*deck.Slide)) error {
	if !validation.IsImageRef(ref) {
		return fmt.Errorf("invalid image reference %q", ref)
	}
	slide, err := s.deck.Slide(s.Index())
	if err != nil {
		return err
	}
	apply(slide)
	return nil
}

// Edit opens a field editor on the current slide. The commit writes into
// the slide that was current when Edit was called.
func (s *Session) Edit(ref deck.FieldRef) (*Field, error) {
	i := s.Index()
	value, err := deck.Get(s.deck.Slides[i], ref)
	if err != nil {
		return nil, err
	}
	f := NewField(value, func(v string) error {
		slide, err := s.deck.Slide(i)
		if err != nil {
			return err
		}
		return deck.Set(slide, ref, v)
	})
	f.Begin()
	return f, nil
}

// Set edits one field of slide i through the same commit path as Edit.
func (s *Session) Set(i int, ref deck.FieldRef, value string) error {
	if _, err := s.deck.Slide(i); err != nil {
		return err
	}
	s.Go(i)
	f, err := s.Edit(ref)
	if err != nil {
		return err
	}
	f.SetDraft(value)
	return f.Commit()
}

// Replace swaps in a new deck, keeping the index when it still fits.
func (s *Session) Replace(d *deck.Deck) {
	if d == nil {
		return
	}
	deck.Normalize(d)
	s.deck = d
	s.current = clamp(s.current, d.Len())
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
