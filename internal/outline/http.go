package outline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/logger"
	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

// Endpoint paths below HTTPGenerator.Endpoint.
const (
	OutlinePath = "/generate-outline"
	EnrichPath  = "/generate-ppt"
)

// RequestIDHeader carries the per-call id to the generator service.
const RequestIDHeader = "X-Request-ID"

const maxResponseBytes = 8 << 20

// HTTPGenerator calls a generator service that wraps the model behind two
// JSON endpoints.
type HTTPGenerator struct {
	Endpoint string
	Client   *http.Client
	Log      *logger.Logger
}

// envelope is the response shape of both endpoints.
type envelope struct {
	Success  bool            `json:"success"`
	Thinking string          `json:"thinking"`
	Outline  json.RawMessage `json:"outline"`
	PPTData  json.RawMessage `json:"pptData"`
	Data     json.RawMessage `json:"data"`
	Error    string          `json:"error"`
}

func (e envelope) payload() json.RawMessage {
	for _, p := range []json.RawMessage{e.Outline, e.PPTData, e.Data} {
		if len(p) > 0 && string(p) != "null" {
			return p
		}
	}
	return nil
}

type enrichBody struct {
	Outline *deck.Deck `json:"outline"`
	Style   string     `json:"style,omitempty"`
}

// Outline implements Generator.
func (g *HTTPGenerator) Outline(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	return g.call(ctx, "outline", OutlinePath, req)
}

// Enrich implements Generator.
func (g *HTTPGenerator) Enrich(ctx context.Context, req EnrichRequest) (Result, error) {
	if req.Deck == nil {
		return Result{}, slideerrors.NewGenerationError("enrich", errors.New("missing outline"))
	}
	return g.call(ctx, "enrich", EnrichPath, enrichBody{Outline: req.Deck, Style: req.Style})
}

func (g *HTTPGenerator) call(ctx context.Context, stage, path string, body any) (Result, error) {
	id := uuid.NewString()
	log := g.Log.WithFields(map[string]any{"request_id": id, "stage": stage})

	data, err := json.Marshal(body)
	if err != nil {
		return Result{}, slideerrors.NewGenerationError(stage, err)
	}

	url := strings.TrimRight(g.Endpoint, "/") + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return Result{}, slideerrors.NewGenerationError(stage, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(RequestIDHeader, id)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	log.Debug("calling generator " + url)
	resp, err := client.Do(httpReq)
	if err != nil {
		log.Error(err, "generator request failed")
		return Result{}, slideerrors.NewGenerationError(stage, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, slideerrors.NewGenerationError(stage, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		err = fmt.Errorf("status %d: non-JSON response", resp.StatusCode)
		log.Error(err, "generator returned garbage")
		return Result{}, slideerrors.NewGenerationError(stage, err)
	}

	if resp.StatusCode != http.StatusOK || env.Error != "" {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		err := fmt.Errorf("status %d: %s", resp.StatusCode, msg)
		log.Error(err, "generator rejected request")
		return Result{}, slideerrors.NewGenerationError(stage, err)
	}

	payload := env.payload()
	if payload == nil {
		return Result{}, slideerrors.NewGenerationError(stage, errors.New("response carries no outline"))
	}

	d, err := deck.DecodeNamed(stage, payload)
	if err != nil {
		return Result{}, slideerrors.NewGenerationError(stage, err)
	}

	log.WithFields(map[string]any{"slides": d.Len()}).Info("outline received")
	return Result{Thinking: env.Thinking, Deck: d}, nil
}
