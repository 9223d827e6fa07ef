package outline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

const outlineJSON = `{"title":"AI rollout","theme":{"primary":"#1e293b","accent":"#3b82f6","background":"#ffffff"},"slides":[{"type":"title","headline":"AI rollout","subheadline":"Plan"},{"type":"content","headline":"Why","bullets":["Speed: faster","Cost: lower"]}]}`

func TestHTTPGeneratorOutline(t *testing.T) {
	t.Parallel()

	var got map[string]any
	var requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, OutlinePath, r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		requestID = r.Header.Get(RequestIDHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"thinking":"analysis","outline":` + outlineJSON + `}`))
	}))
	t.Cleanup(srv.Close)

	g := &HTTPGenerator{Endpoint: srv.URL + "/", Client: srv.Client()}
	res, err := g.Outline(context.Background(), Request{Prompt: "AI adoption for CTOs", URLs: []string{"https://example.com/a"}})
	require.NoError(t, err)

	require.NotEmpty(t, requestID)
	require.Equal(t, "AI adoption for CTOs", got["prompt"])
	require.Equal(t, DefaultStyle, got["style"])
	require.Equal(t, "analysis", res.Thinking)
	require.Equal(t, "AI rollout", res.Deck.Title)
	require.Equal(t, 2, res.Deck.Len())
	require.Equal(t, deck.KindTitle, res.Deck.Slides[0].Kind())
}

func TestHTTPGeneratorEnrichSendsOutline(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, EnrichPath, r.URL.Path)
		var body struct {
			Outline json.RawMessage `json:"outline"`
			Style   string          `json:"style"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "pitch", body.Style)
		// echo the outline back with a richer title
		enriched := strings.Replace(string(body.Outline), `"title":"AI rollout"`, `"title":"AI rollout, detailed"`, 1)
		_, _ = w.Write([]byte(`{"success":true,"thinking":"made it specific","pptData":` + enriched + `}`))
	}))
	t.Cleanup(srv.Close)

	d, err := deck.Decode([]byte(outlineJSON))
	require.NoError(t, err)

	g := &HTTPGenerator{Endpoint: srv.URL, Client: srv.Client()}
	res, err := g.Enrich(context.Background(), EnrichRequest{Deck: d, Style: "pitch"})
	require.NoError(t, err)
	require.Equal(t, "AI rollout, detailed", res.Deck.Title)
	require.Equal(t, d.Len(), res.Deck.Len())

	_, err = g.Enrich(context.Background(), EnrichRequest{})
	var genErr *slideerrors.GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestHTTPGeneratorFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"error envelope", http.StatusBadRequest, `{"error":"quota exceeded"}`, "quota exceeded"},
		{"timeout status", http.StatusGatewayTimeout, `{"error":"generation timed out"}`, "504"},
		{"non json", http.StatusBadGateway, `<html>bad gateway</html>`, "non-JSON"},
		{"missing outline", http.StatusOK, `{"success":true,"thinking":"hm"}`, "no outline"},
		{"outline not an object", http.StatusOK, `{"success":true,"outline":"nope"}`, "deck must be a JSON object"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(srv.Close)

			g := &HTTPGenerator{Endpoint: srv.URL, Client: srv.Client()}
			_, err := g.Outline(context.Background(), Request{Prompt: "x"})

			var genErr *slideerrors.GenerationError
			require.ErrorAs(t, err, &genErr)
			require.Equal(t, "outline", genErr.Stage)
			require.ErrorContains(t, err, tc.message)
		})
	}
}

func TestRequestValidation(t *testing.T) {
	t.Parallel()

	empty := Request{}
	var validationErr *slideerrors.ValidationError
	require.ErrorAs(t, empty.Validate(), &validationErr)

	bad := Request{Prompt: "x", Style: "poetry"}
	require.Error(t, bad.Validate())

	ok := Request{Content: "notes", Style: " Pitch "}
	require.NoError(t, ok.Validate())
	require.Equal(t, "pitch", ok.Style)

	require.Len(t, StyleKeys(), len(Styles))
	_, found := StyleByKey("ACADEMIC")
	require.True(t, found)
}

type fakeChat struct {
	reply string
	err   error
	seen  []*schema.Message
}

func (f *fakeChat) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.seen = in
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChat) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func TestChatGeneratorParsesReply(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{reply: "Short analysis.\n```json\n" + outlineJSON + "\n```"}
	g := &ChatGenerator{Model: chat}

	res, err := g.Outline(context.Background(), Request{Prompt: "AI for CTOs", Style: "academic", Content: "raw notes"})
	require.NoError(t, err)
	require.Equal(t, "Short analysis.", res.Thinking)
	require.Equal(t, 2, res.Deck.Len())

	require.Len(t, chat.seen, 2)
	require.Equal(t, schema.System, chat.seen[0].Role)
	prompt := chat.seen[1].Content
	require.Contains(t, prompt, "Academic report")
	require.Contains(t, prompt, "raw notes")
	require.Contains(t, prompt, "AI for CTOs")
	require.Contains(t, prompt, `"style": "academic"`)
}

func TestChatGeneratorEnrichPromptCarriesDeck(t *testing.T) {
	t.Parallel()

	d, err := deck.Decode([]byte(outlineJSON))
	require.NoError(t, err)

	chat := &fakeChat{reply: outlineJSON}
	res, err := (&ChatGenerator{Model: chat}).Enrich(context.Background(), EnrichRequest{Deck: d, Style: "training"})
	require.NoError(t, err)
	require.Equal(t, d.Title, res.Deck.Title)
	require.Contains(t, chat.seen[1].Content, `"headline":"Why"`)
	require.Contains(t, chat.seen[1].Content, "Training course")
}

func TestChatGeneratorFailures(t *testing.T) {
	t.Parallel()

	var genErr *slideerrors.GenerationError

	_, err := (&ChatGenerator{Model: &fakeChat{err: errors.New("rate limited")}}).Outline(context.Background(), Request{Prompt: "x"})
	require.ErrorAs(t, err, &genErr)
	require.ErrorContains(t, err, "rate limited")

	_, err = (&ChatGenerator{Model: &fakeChat{reply: "sorry, no"}}).Outline(context.Background(), Request{Prompt: "x"})
	require.ErrorIs(t, err, ErrNoJSON)

	_, err = (&ChatGenerator{Model: &fakeChat{}}).Outline(context.Background(), Request{Prompt: "x"})
	require.ErrorContains(t, err, "empty reply")

	_, err = NewChatGenerator(context.Background(), ChatConfig{Model: "gpt-4o-mini"}, nil)
	require.ErrorContains(t, err, "API key")
}
