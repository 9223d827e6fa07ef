package deck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func threeSlides() *Deck {
	return &Deck{
		Title: "Deck",
		Theme: DefaultTheme,
		Slides: []Slide{
			NewSlide(KindTitle, "one"),
			{Body: &Content{Headline: "two", Bullets: []string{"A：x", "B：y"}}},
			NewSlide(KindClosing, "three"),
		},
	}
}

func headlines(d *Deck) []string {
	out := make([]string, 0, d.Len())
	for _, s := range d.Slides {
		out = append(out, s.Headline())
	}
	return out
}

func TestRemoveOnlySlideIsRejected(t *testing.T) {
	t.Parallel()

	d := &Deck{Slides: []Slide{NewSlide(KindTitle, "only")}}
	require.ErrorIs(t, d.RemoveSlide(0), ErrLastSlide)
	require.Equal(t, 1, d.Len())
}

func TestRemoveSlide(t *testing.T) {
	t.Parallel()

	d := threeSlides()
	require.NoError(t, d.RemoveSlide(1))
	require.Equal(t, []string{"one", "three"}, headlines(d))
	require.ErrorIs(t, d.RemoveSlide(5), ErrIndexOutOfRange)
}

func TestMoveSlideSwapsNeighbours(t *testing.T) {
	t.Parallel()

	d := threeSlides()
	idx, err := d.MoveSlide(0, 1)
	require.NoError(t, err)
	require.Equal(t, 1, idx)
	require.Equal(t, []string{"two", "one", "three"}, headlines(d))

	idx, err = d.MoveSlide(2, 1)
	require.NoError(t, err)
	require.Equal(t, 2, idx)
	require.Equal(t, []string{"two", "one", "three"}, headlines(d))
}

func TestAddAndDuplicateSlide(t *testing.T) {
	t.Parallel()

	d := threeSlides()
	idx := d.AddSlide(0)
	require.Equal(t, 1, idx)
	require.Equal(t, NewSlideHeadline, d.Slides[1].Headline())
	require.Equal(t, []string{NewSlideBullet}, d.Slides[1].Bullets())

	idx = d.AddSlide(99)
	require.Equal(t, d.Len()-1, idx)

	dup, err := d.DuplicateSlide(2)
	require.NoError(t, err)
	require.Equal(t, 3, dup)
	require.Equal(t, d.Slides[2], d.Slides[3])

	// the copy is deep
	d.Slides[3].Body.(*Content).Bullets[0] = "changed"
	require.Equal(t, "A：x", d.Slides[2].Bullets()[0])
}

func TestChangeTypeDiscardsIncompatibleFields(t *testing.T) {
	t.Parallel()

	s := Slide{
		Body:            &Data{Headline: "KPIs", Metrics: []Metric{{Label: "ARR", Value: "1"}}},
		BackgroundColor: "#ffffff",
	}
	s.ChangeType(KindContent)

	content, ok := s.Body.(*Content)
	require.True(t, ok)
	require.Equal(t, "KPIs", content.Headline)
	require.Empty(t, content.Bullets)
	require.Equal(t, "#ffffff", s.BackgroundColor)

	s.ChangeType(KindData)
	require.Empty(t, s.Body.(*Data).Metrics)
}

func TestChangeTypeCarriesSharedFields(t *testing.T) {
	t.Parallel()

	s := Slide{Body: &Closing{Headline: "Bye", Subheadline: "see you", Bullets: []string{"next"}}}

	s.ChangeType(KindAgenda)
	require.Equal(t, []string{"next"}, s.Bullets())
	require.Empty(t, s.Subheadline())

	s.ChangeType(KindTitle)
	require.Equal(t, "Bye", s.Headline())
	require.Nil(t, s.Bullets())

	s.ChangeType(KindTwoColumn)
	cols := s.Body.(*TwoColumn)
	require.Empty(t, cols.LeftTitle)
	require.Empty(t, cols.LeftBullets)

	s.ChangeType(Kind("bogus"))
	require.Equal(t, KindContent, s.Kind())
}

func TestAddAndRemoveItems(t *testing.T) {
	t.Parallel()

	d := &Deck{Slides: []Slide{
		NewSlide(KindTitle, "t"),
		NewSlide(KindData, "d"),
		NewSlide(KindTimeline, "tl"),
	}}

	require.ErrorIs(t, d.AddItem(0), ErrNoItems)

	require.NoError(t, d.AddItem(1))
	require.Len(t, d.Slides[1].Body.(*Data).Metrics, 1)

	require.NoError(t, d.AddItem(2))
	require.NoError(t, d.AddItem(2))
	items := d.Slides[2].Body.(*Timeline).Items
	require.Equal(t, "Phase 2", items[1].Phase)

	require.NoError(t, d.RemoveItem(2, 0))
	require.Len(t, d.Slides[2].Body.(*Timeline).Items, 1)
	require.ErrorIs(t, d.RemoveItem(2, 4), ErrIndexOutOfRange)
}

func TestApplyPreset(t *testing.T) {
	t.Parallel()

	d := threeSlides()
	require.NoError(t, d.ApplyPreset(2))
	require.Equal(t, "#fb7185", d.Theme.Accent)
	require.Equal(t, "#1a0c14", d.Theme.Background)
	require.Equal(t, DefaultTheme.Primary, d.Theme.Primary)
	require.Equal(t, 2, d.PresetIndex())

	require.ErrorIs(t, d.ApplyPreset(len(Presets)), ErrIndexOutOfRange)
}
