package outline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
)

const systemPrompt = "You are a presentation content strategist. You answer with a short analysis followed by one JSON document wrapped in a ```json fenced block."

const outlineShape = `{
  "title": "Deck title",
  "style": "%s",
  "audience": "Target audience",
  "theme": {"primary": "#1e293b", "accent": "#3b82f6", "background": "#ffffff"},
  "slides": [
    {"type": "title", "headline": "Main title", "subheadline": "Subtitle"},
    {"type": "agenda", "headline": "Agenda", "bullets": ["Item 1", "Item 2"]},
    {"type": "content", "headline": "Heading", "bullets": ["Label: detail", "Label: detail"]},
    {"type": "data", "headline": "Numbers", "metrics": [{"label": "Metric", "value": "42%%", "description": "Context"}]},
    {"type": "timeline", "headline": "Timeline", "items": [{"phase": "Q1", "title": "Milestone", "description": "What happens"}]},
    {"type": "two-column", "headline": "Comparison", "leftTitle": "Left", "leftBullets": ["..."], "rightTitle": "Right", "rightBullets": ["..."]},
    {"type": "closing", "headline": "Thank you", "subheadline": "Call to action", "bullets": ["Next step"]}
  ]
}`

func catalog() string {
	var b strings.Builder
	for _, s := range Styles {
		fmt.Fprintf(&b, "- %s (%s): %s\n", s.Name, s.Key, s.Guide)
	}
	return b.String()
}

func outlinePrompt(req Request) string {
	style := styleOrDefault(req.Style)

	var b strings.Builder
	b.WriteString("Build a slide deck outline from the user's material and scenario.\n\n")
	b.WriteString("Scenario guide:\n")
	b.WriteString(catalog())
	fmt.Fprintf(&b, "\nChosen scenario: %s\n", style.Name)
	if req.Content != "" {
		fmt.Fprintf(&b, "User material:\n%s\n", req.Content)
	}
	if len(req.URLs) > 0 {
		fmt.Fprintf(&b, "Reference links: %s\n", strings.Join(req.URLs, ", "))
	}
	if req.Prompt != "" {
		fmt.Fprintf(&b, "Additional requirements: %s\n", req.Prompt)
	}
	if req.TemplateInfo != "" {
		fmt.Fprintf(&b, "Template: %s\n", req.TemplateInfo)
	}
	b.WriteString("\nFirst write about 150 words of analysis: scenario traits, key facts, structure and visual style. ")
	b.WriteString("Then output the outline as JSON in a ```json block with this shape:\n")
	fmt.Fprintf(&b, outlineShape, style.Key)
	b.WriteString("\n\nAllowed types: title, agenda, content, data, timeline, two-column, closing. ")
	fmt.Fprintf(&b, "Follow the %s structure strictly. 8-15 slides, 3-5 bullets per slide, prefer \"label: detail\" bullets.", style.Name)
	return b.String()
}

func enrichPrompt(d *deck.Deck, style string) (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	s := styleOrDefault(style)

	var b strings.Builder
	b.WriteString("Improve the content of this deck outline.\n\nOutline:\n")
	b.Write(data)
	fmt.Fprintf(&b, "\n\nScenario: %s\n\n", s.Name)
	b.WriteString("First explain your approach in about 100 words, then output the complete improved JSON in a ```json block. ")
	b.WriteString("Keep the structure and the theme colors unchanged, make bullets more specific and match the scenario's tone. ")
	b.WriteString("Allowed slide types: title, agenda, content, data, timeline, two-column, closing.")
	return b.String(), nil
}
