package preview

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/editor"
	"github.com/alexisbeaulieu97/slidesmith/internal/export"
	"github.com/alexisbeaulieu97/slidesmith/internal/outline"
	"github.com/alexisbeaulieu97/slidesmith/internal/theme"
)

func sampleDeck() *deck.Deck {
	return &deck.Deck{
		Title: "Launch plan",
		Slides: []deck.Slide{
			deck.NewSlide(deck.KindTitle, "Launch plan"),
			{Body: &deck.Content{Headline: "Why now", Bullets: []string{"Market: growing", "Timing: right"}}},
			deck.NewSlide(deck.KindClosing, "Thanks"),
		},
	}
}

func newModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Session == nil {
		opts.Session = editor.NewSession(sampleDeck(), theme.Templates{})
	}
	return NewModel(opts)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// drain runs cmd and any batched commands and returns the produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestPaging(t *testing.T) {
	t.Parallel()

	m := newModel(t, Options{})
	m = press(t, m, "right")
	require.Equal(t, 1, m.Session().Index())

	m = press(t, m, "end", "right")
	require.Equal(t, 2, m.Session().Index())

	m = press(t, m, "home", "left")
	require.Equal(t, 0, m.Session().Index())
}

func TestFocusCyclesThroughEditableRegions(t *testing.T) {
	t.Parallel()

	m := press(t, newModel(t, Options{}), "right", "tab")
	r, ok := m.Focused()
	require.True(t, ok)
	require.Equal(t, deck.FieldHeadline, r.Field.Name)

	m = press(t, m, "shift+tab")
	r, ok = m.Focused()
	require.True(t, ok)
	require.NotEqual(t, deck.FieldHeadline, r.Field.Name, "shift+tab wraps to the last field")

	m = press(t, m, "right")
	_, ok = m.Focused()
	require.False(t, ok, "paging clears focus")
}

func TestEditCommitsOnEnter(t *testing.T) {
	t.Parallel()

	m := press(t, newModel(t, Options{}), "right", "tab", "enter")
	require.Equal(t, ModeEdit, m.Mode())

	m = press(t, m, "!", "?")
	require.Equal(t, "Why now", m.Session().Current().Headline(), "nothing written before commit")

	m = press(t, m, "enter")
	require.Equal(t, ModeView, m.Mode())
	require.Equal(t, "Why now!?", m.Session().Current().Headline())
	require.True(t, m.Dirty())
}

func TestEditCancelDiscardsDraft(t *testing.T) {
	t.Parallel()

	m := press(t, newModel(t, Options{}), "right", "tab", "enter", "backspace", "backspace", "esc")
	require.Equal(t, ModeView, m.Mode())
	require.Equal(t, "Why now", m.Session().Current().Headline())
	require.False(t, m.Dirty())
}

func TestTabWhileEditingCommitsAndMoves(t *testing.T) {
	t.Parallel()

	m := press(t, newModel(t, Options{}), "right", "tab", "enter", "X", "tab")
	require.Equal(t, ModeEdit, m.Mode())
	require.Equal(t, "Why nowX", m.Session().Current().Headline())
	require.NotEqual(t, deck.FieldHeadline, m.ref.Name)
}

func TestSlideOperations(t *testing.T) {
	t.Parallel()

	m := newModel(t, Options{})
	m = press(t, m, "a")
	assert.Equal(t, 4, m.Session().Len())
	assert.Equal(t, 1, m.Session().Index())
	assert.True(t, m.Dirty())

	m = press(t, m, "d")
	assert.Equal(t, 5, m.Session().Len())
	assert.Equal(t, 2, m.Session().Index())

	m = press(t, m, "K")
	assert.Equal(t, 1, m.Session().Index())

	m = press(t, m, "x")
	assert.Equal(t, 4, m.Session().Len())

	m = press(t, m, "t")
	assert.Contains(t, m.Status(), "Slide is now")
}

func TestRemovingLastSlideReportsError(t *testing.T) {
	t.Parallel()

	s := editor.NewSession(&deck.Deck{Slides: []deck.Slide{deck.NewSlide(deck.KindTitle, "only")}}, theme.Templates{})
	m := press(t, newModel(t, Options{Session: s}), "x")
	require.Equal(t, 1, m.Session().Len())
	require.True(t, m.statusErr)
	require.Contains(t, m.Status(), "at least one slide")
}

func TestItemKeys(t *testing.T) {
	t.Parallel()

	m := press(t, newModel(t, Options{}), "right", "+")
	require.Len(t, m.Session().Current().Bullets(), 3)

	m = press(t, m, "-")
	require.True(t, m.statusErr, "removal needs a focused entry")

	// headline, then the first bullet's label
	m = press(t, m, "tab", "tab", "-")
	require.False(t, m.statusErr, m.Status())
	require.Len(t, m.Session().Current().Bullets(), 2)
}

func TestThemeAndFontKeys(t *testing.T) {
	t.Parallel()

	m := newModel(t, Options{})
	before := m.Session().Deck().PresetIndex()
	m = press(t, m, "T")
	require.Equal(t, (before+1)%len(deck.Presets), m.Session().Deck().PresetIndex())

	m = press(t, m, "f")
	require.InDelta(t, 1.15, m.Session().FontScale(), 1e-9)
	require.Contains(t, m.Status(), "large")
}

func TestSaveWritesDeckFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deck.json")
	m := press(t, newModel(t, Options{Path: path}), "a")
	require.True(t, m.Dirty())

	_, cmd := m.Update(keyMsg("s"))
	msgs := drain(cmd)
	require.Len(t, msgs, 1)

	updated, _ := m.Update(msgs[0])
	m = updated.(Model)
	require.False(t, m.Dirty())
	require.FileExists(t, path)

	loaded, err := deck.Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, loaded.Len())
}

type recordingExporter struct {
	dir  string
	opts export.Options
}

func (r *recordingExporter) ExportFile(_ context.Context, dir string, d *deck.Deck, opts export.Options) (string, error) {
	r.dir, r.opts = dir, opts
	return filepath.Join(dir, export.FileName(d.Title)), nil
}

func TestExportUsesSessionSettings(t *testing.T) {
	t.Parallel()

	exp := &recordingExporter{}
	m := newModel(t, Options{Exporter: exp, ExportDir: "out", Export: export.Options{Font: "Arial"}})
	m = press(t, m, "f")

	_, cmd := m.Update(keyMsg("e"))
	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	updated, _ := m.Update(msgs[0])
	m = updated.(Model)

	require.Equal(t, "out", exp.dir)
	require.Equal(t, "Arial", exp.opts.Font)
	require.InDelta(t, 1.15, exp.opts.FontScale, 1e-9)
	require.Equal(t, "Exported "+filepath.Join("out", "Launch plan.pptx"), m.Status())
}

type stubGenerator struct {
	deck *deck.Deck
	err  error
}

func (g stubGenerator) Outline(context.Context, outline.Request) (outline.Result, error) {
	return outline.Result{Deck: g.deck.Clone()}, g.err
}

func (g stubGenerator) Enrich(context.Context, outline.EnrichRequest) (outline.Result, error) {
	return outline.Result{Deck: g.deck.Clone()}, g.err
}

func generated(t *testing.T, m Model, key string) (Model, GeneratedMsg) {
	t.Helper()
	updated, cmd := m.Update(keyMsg(key))
	m = updated.(Model)
	require.True(t, m.Pending())
	for _, msg := range drain(cmd) {
		if g, ok := msg.(GeneratedMsg); ok {
			return m, g
		}
	}
	t.Fatal("no generator response")
	return m, GeneratedMsg{}
}

func TestEnrichReplacesDeck(t *testing.T) {
	t.Parallel()

	richer := sampleDeck()
	richer.Title = "Launch plan, detailed"
	richer.Slides = append(richer.Slides, deck.NewSlide(deck.KindData, "Numbers"))
	svc := outline.NewService(stubGenerator{deck: richer}, time.Second, nil)

	m, msg := generated(t, newModel(t, Options{Generator: svc}), "g")
	require.NoError(t, msg.Err)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	require.False(t, m.Pending())
	require.Equal(t, "Launch plan, detailed", m.Session().Deck().Title)
	require.Equal(t, 4, m.Session().Len())
}

func TestGenerationFailureKeepsDeck(t *testing.T) {
	t.Parallel()

	svc := outline.NewService(stubGenerator{deck: sampleDeck(), err: errors.New("upstream 502")}, time.Second, nil)
	m := press(t, newModel(t, Options{Generator: svc}), "a")

	m, msg := generated(t, m, "g")
	updated, _ := m.Update(msg)
	m = updated.(Model)

	require.False(t, m.Pending())
	require.True(t, m.statusErr)
	require.Contains(t, m.Status(), "upstream 502")
	require.Equal(t, 4, m.Session().Len(), "local edits survive a failed request")
}

func TestStaleResponsesAreDropped(t *testing.T) {
	t.Parallel()

	other := sampleDeck()
	other.Title = "Replacement"
	svc := outline.NewService(stubGenerator{deck: other}, time.Second, nil)
	m := newModel(t, Options{Generator: svc})

	m, first := generated(t, m, "g")
	m, second := generated(t, m, "g")

	updated, _ := m.Update(first)
	m = updated.(Model)
	require.True(t, m.Pending(), "older response is ignored")
	require.Equal(t, "Launch plan", m.Session().Deck().Title)

	updated, _ = m.Update(second)
	m = updated.(Model)
	require.False(t, m.Pending())
	require.Equal(t, "Replacement", m.Session().Deck().Title)
}

func TestRegenerateNeedsPrompt(t *testing.T) {
	t.Parallel()

	svc := outline.NewService(stubGenerator{deck: sampleDeck()}, time.Second, nil)
	m := press(t, newModel(t, Options{Generator: svc}), "G")
	require.False(t, m.Pending())
	require.Contains(t, m.Status(), "cannot regenerate")

	m = newModel(t, Options{Generator: svc, Request: outline.Request{Prompt: "launch"}, Style: "pitch"})
	m, msg := generated(t, m, "G")
	require.Equal(t, StageOutline, msg.Stage)
	require.NoError(t, msg.Err)
}

func TestViewRendersChrome(t *testing.T) {
	t.Parallel()

	m := newModel(t, Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	view := m.View()
	require.Contains(t, view, "Launch plan")
	require.Contains(t, view, "1/3")
	require.Contains(t, view, "q quit")

	m = press(t, m, "?")
	require.Equal(t, ModeHelp, m.Mode())
	require.Contains(t, m.View(), "duplicate this slide")

	m = press(t, m, "x")
	require.Equal(t, ModeView, m.Mode(), "any key closes help")
	require.Equal(t, 3, m.Session().Len())
}

func TestQuitCancelsPendingRequest(t *testing.T) {
	t.Parallel()

	svc := outline.NewService(stubGenerator{deck: sampleDeck()}, time.Second, nil)
	m := newModel(t, Options{Generator: svc})
	updated, _ := m.Update(keyMsg("g"))
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(Model)
	require.False(t, m.Pending())
	require.Equal(t, tea.Quit(), cmd())
}
