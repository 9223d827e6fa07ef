package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/theme"
	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type stubImages map[string][]byte

func (s stubImages) Load(_ context.Context, ref string) ([]byte, string, error) {
	data, ok := s[ref]
	if !ok {
		return nil, "", errors.New("not found")
	}
	return data, "image/png", nil
}

func pixel(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(onePixelPNG)
	require.NoError(t, err)
	return data
}

func sampleDeck() *deck.Deck {
	return newDeck(
		deck.Slide{Body: &deck.Title{Headline: "Launch plan", Subheadline: "2026 roadmap"}},
		content("Reach：three new markets", "Margin：above 40%"),
		deck.Slide{Body: &deck.Data{Headline: "Numbers", Metrics: []deck.Metric{{Label: "Revenue", Value: "$4M"}}}},
		deck.Slide{Body: &deck.Content{Headline: "Team", Bullets: []string{"hiring"}}, UserImage: "me.png", BackgroundImage: "missing.png"},
		deck.NewSlide(deck.KindClosing, "Thank you"),
	)
}

func readBack(t *testing.T, data []byte) *ppt.Presentation {
	t.Helper()
	pres, err := ppt.ReadFrom(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return pres
}

func TestWriteDeckRoundTrip(t *testing.T) {
	t.Parallel()

	d := sampleDeck()
	w := Writer{Images: stubImages{"me.png": pixel(t)}}

	var buf bytes.Buffer
	require.NoError(t, w.WriteDeck(context.Background(), &buf, d, Options{Templates: theme.Templates{Ending: "me.png"}}))

	pres := readBack(t, buf.Bytes())
	require.Equal(t, d.Len(), pres.GetSlideCount())

	text := pres.ExtractText()
	for _, want := range []string{"Launch plan", "2026 roadmap", "Reach", "three new markets", "$4M", "Revenue", "Thank you", "05 / 05"} {
		require.Contains(t, text, want)
	}
}

func TestWriteHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Writer{}.WriteDeck(ctx, &buf, sampleDeck(), Options{})

	var exportErr *slideerrors.ExportError
	require.ErrorAs(t, err, &exportErr)
	require.Equal(t, 0, exportErr.Slide)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, buf.Len())
}

func TestWriteDeckRejectsNil(t *testing.T) {
	t.Parallel()

	var exportErr *slideerrors.ExportError
	require.ErrorAs(t, Writer{}.WriteDeck(context.Background(), &bytes.Buffer{}, nil, Options{}), &exportErr)
}

func TestExportFileWritesAtomically(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	d := sampleDeck()
	d.Title = "Q3: Review / Plan"

	path, err := Writer{}.ExportFile(context.Background(), dir, d, Options{})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Q3_ Review _ Plan.pptx"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, d.Len(), readBack(t, data).GetSlideCount())

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestFileName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		title string
		want  string
	}{
		{"Quarterly review", "Quarterly review.pptx"},
		{"  padded  ", "padded.pptx"},
		{"a/b\\c", "a_b_c.pptx"},
		{"what? <now>", "what_ _now_.pptx"},
		{"", DefaultFileName},
		{"   ", DefaultFileName},
		{"///", DefaultFileName},
		{"...", DefaultFileName},
		{"年度报告", "年度报告.pptx"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.title, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, FileName(tc.title))
		})
	}
}

func TestContainKeepsAspectRatio(t *testing.T) {
	t.Parallel()

	x, y, w, h := contain(pixel(t), 7.6, 0.3, 2.1, 1.4)
	require.InDelta(t, 1.4, w, 1e-9)
	require.InDelta(t, 1.4, h, 1e-9)
	require.InDelta(t, 7.6+0.35, x, 1e-9)
	require.InDelta(t, 0.3, y, 1e-9)

	x, y, w, h = contain([]byte("not an image"), 1, 2, 3, 4)
	require.Equal(t, []float64{1, 2, 3, 4}, []float64{x, y, w, h})
}

func TestWithAlpha(t *testing.T) {
	t.Parallel()

	require.Equal(t, "66000000", withAlpha("#000000", 0.4))
	require.Equal(t, "FFABCDEF", withAlpha("abcdef", 2))
	require.Equal(t, "00112233", withAlpha("#112233", -1))
}
