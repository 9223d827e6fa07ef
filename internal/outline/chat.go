package outline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/logger"
	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

// ChatConfig configures an OpenAI-compatible chat model.
type ChatConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ChatGenerator asks a chat model directly and parses the JSON out of its
// reply.
type ChatGenerator struct {
	Model model.BaseChatModel
	Log   *logger.Logger
}

// NewChatGenerator builds a generator on the eino OpenAI chat model.
func NewChatGenerator(ctx context.Context, cfg ChatConfig, log *logger.Logger) (*ChatGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("chat generator requires an API key")
	}
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return &ChatGenerator{Model: cm, Log: log}, nil
}

// Outline implements Generator.
func (g *ChatGenerator) Outline(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	return g.ask(ctx, "outline", outlinePrompt(req))
}

// Enrich implements Generator.
func (g *ChatGenerator) Enrich(ctx context.Context, req EnrichRequest) (Result, error) {
	if req.Deck == nil {
		return Result{}, slideerrors.NewGenerationError("enrich", errors.New("missing outline"))
	}
	prompt, err := enrichPrompt(req.Deck, req.Style)
	if err != nil {
		return Result{}, slideerrors.NewGenerationError("enrich", err)
	}
	return g.ask(ctx, "enrich", prompt)
}

func (g *ChatGenerator) ask(ctx context.Context, stage, prompt string) (Result, error) {
	log := g.Log.WithFields(map[string]any{"request_id": uuid.NewString(), "stage": stage})

	msg, err := g.Model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(prompt),
	})
	if err != nil {
		log.Error(err, "chat model call failed")
		return Result{}, slideerrors.NewGenerationError(stage, err)
	}
	if msg == nil || msg.Content == "" {
		return Result{}, slideerrors.NewGenerationError(stage, errors.New("model returned an empty reply"))
	}

	thinking, payload, err := ExtractJSON(msg.Content)
	if err != nil {
		log.Error(err, "no outline in model reply")
		return Result{}, slideerrors.NewGenerationError(stage, err)
	}

	d, err := deck.DecodeNamed(stage, payload)
	if err != nil {
		return Result{}, slideerrors.NewGenerationError(stage, err)
	}

	log.WithFields(map[string]any{"slides": d.Len()}).Info("outline received")
	return Result{Thinking: thinking, Deck: d}, nil
}
