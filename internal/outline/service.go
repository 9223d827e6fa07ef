package outline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/logger"
	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

// DefaultTimeout bounds one generator call.
const DefaultTimeout = 55 * time.Second

// ErrSuperseded is returned for a response whose request was overtaken by a
// newer one. The response is discarded.
var ErrSuperseded = errors.New("request superseded by a newer one")

// Ticket identifies one request generation.
type Ticket struct {
	n uint64
}

// Service wraps a Generator with a per-call timeout, a generation counter so
// only the latest request's response is applied, and the last good deck to
// fall back to when a call fails.
type Service struct {
	gen     Generator
	timeout time.Duration
	log     *logger.Logger

	mu         sync.Mutex
	generation uint64
	lastGood   *deck.Deck
}

// NewService builds a Service. A non-positive timeout means DefaultTimeout.
func NewService(gen Generator, timeout time.Duration, log *logger.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{gen: gen, timeout: timeout, log: log}
}

// Begin starts a new request generation, superseding every earlier ticket.
func (s *Service) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return Ticket{n: s.generation}
}

// Current reports whether t is still the latest ticket.
func (s *Service) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.n == s.generation
}

// LastGood returns a copy of the last deck a call produced or SetLastGood
// recorded, or nil.
func (s *Service) LastGood() *deck.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastGood.Clone()
}

// SetLastGood records d as the fallback deck.
func (s *Service) SetLastGood(d *deck.Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastGood = d.Clone()
}

// Outline requests a new deck. On failure the returned Result carries the
// last good deck (possibly nil) alongside the error.
func (s *Service) Outline(ctx context.Context, t Ticket, req Request) (Result, error) {
	return s.run(ctx, t, "outline", nil, func(ctx context.Context) (Result, error) {
		return s.gen.Outline(ctx, req)
	})
}

// Enrich asks for richer content for d. On failure d itself is the fallback.
func (s *Service) Enrich(ctx context.Context, t Ticket, d *deck.Deck, style string) (Result, error) {
	return s.run(ctx, t, "enrich", d, func(ctx context.Context) (Result, error) {
		return s.gen.Enrich(ctx, EnrichRequest{Deck: d.Clone(), Style: style})
	})
}

// run calls the generator under the timeout. fallback, when set, becomes
// the last good deck if the call fails while t is still current.
func (s *Service) run(ctx context.Context, t Ticket, stage string, fallback *deck.Deck, call func(context.Context) (Result, error)) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := call(ctx)
	if err == nil && (res.Deck == nil || res.Deck.Len() == 0) {
		err = errors.New("generator returned an empty deck")
	}
	if err != nil {
		s.mu.Lock()
		current := t.n == s.generation
		if current && fallback != nil {
			s.lastGood = fallback.Clone()
		}
		s.mu.Unlock()
		if !current {
			return Result{}, ErrSuperseded
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = errors.Join(context.DeadlineExceeded, err)
		}
		var genErr *slideerrors.GenerationError
		if !errors.As(err, &genErr) {
			err = slideerrors.NewGenerationError(stage, err)
		}
		s.log.WithFields(map[string]any{"stage": stage}).Error(err, "generation failed, keeping last good deck")
		return Result{Deck: s.LastGood()}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t.n != s.generation {
		return Result{}, ErrSuperseded
	}
	deck.Normalize(res.Deck)
	s.lastGood = res.Deck.Clone()
	return res, nil
}
