// Package outline talks to the external outline and enrichment generators.
// Generators return decks already decoded and normalized; Service adds the
// timeout, supersede and last-good fallback rules the editor relies on.
package outline

import (
	"context"
	"strings"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/validation"
)

// Style is a presentation scenario the generator tailors structure and
// tone to.
type Style struct {
	Key   string
	Name  string
	Guide string
}

// DefaultStyle is used when a request names no style.
const DefaultStyle = "business"

// Styles is the scenario catalog sent to generators.
var Styles = []Style{
	{"business", "Business talk", "Pain point, solution, advantages, case study. Use we/you, concise, one idea per slide."},
	{"review", "Performance review", "Overview, details, summary. First person, formal, lean on data and charts."},
	{"pitch", "Investor pitch", "Overview, problem, solution, model, market, competition, edge, team, financials, ask. 12-15 slides of short keyword lines."},
	{"training", "Training course", "Introduce, expand, recap in cycles. Second person or imperative, illustrated, point lists."},
	{"academic", "Academic report", "Title, background, method, results, conclusion, acknowledgements. Light background with dark text, rigorous, chart-centric."},
	{"project", "Project retrospective", "Goals, process and output, results, lessons learned. Formal and objective, data in charts."},
	{"compete", "Job application talk", "Profile, understanding of the role, strengths and gaps, plans. First person, confident, backed by numbers."},
}

// StyleByKey looks a style up by key, case-insensitively.
func StyleByKey(key string) (Style, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, s := range Styles {
		if s.Key == key {
			return s, true
		}
	}
	return Style{}, false
}

// StyleKeys lists the catalog keys in order.
func StyleKeys() []string {
	keys := make([]string, 0, len(Styles))
	for _, s := range Styles {
		keys = append(keys, s.Key)
	}
	return keys
}

// Request asks for a fresh outline. At least one of Prompt and Content is
// required.
type Request struct {
	Prompt       string   `json:"prompt,omitempty" validate:"required_without=Content,max=8000"`
	Style        string   `json:"style,omitempty" validate:"omitempty,oneof=business review pitch training academic project compete"`
	Content      string   `json:"content,omitempty" validate:"max=200000"`
	URLs         []string `json:"urls,omitempty" validate:"dive,url"`
	TemplateInfo string   `json:"templateInfo,omitempty"`
}

// Validate checks the request and fills the default style.
func (r *Request) Validate() error {
	r.Style = strings.ToLower(strings.TrimSpace(r.Style))
	if r.Style == "" {
		r.Style = DefaultStyle
	}
	return validation.Struct("request", r)
}

// EnrichRequest asks the generator to flesh out an existing deck without
// changing its structure or colors.
type EnrichRequest struct {
	Deck  *deck.Deck
	Style string
}

// Result is a generated deck plus the generator's free-form reasoning.
type Result struct {
	Thinking string
	Deck     *deck.Deck
}

// Generator produces and enriches outlines.
type Generator interface {
	Outline(ctx context.Context, req Request) (Result, error)
	Enrich(ctx context.Context, req EnrichRequest) (Result, error)
}

func styleOrDefault(key string) Style {
	if s, ok := StyleByKey(key); ok {
		return s
	}
	s, _ := StyleByKey(DefaultStyle)
	return s
}
