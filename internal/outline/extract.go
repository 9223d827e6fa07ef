package outline

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when a reply carries no parseable JSON object.
var ErrNoJSON = errors.New("reply contains no JSON object")

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractJSON pulls the outline out of a model reply. A ```json fenced block
// wins; otherwise the widest {...} span is tried. The prose before the JSON
// is returned as thinking.
func ExtractJSON(text string) (thinking string, payload []byte, err error) {
	thinking = strings.TrimSpace(text)
	fenced := fencedJSON.FindStringSubmatchIndex(text)

	if fenced != nil {
		thinking = strings.TrimSpace(text[:fenced[0]])
		body := text[fenced[2]:fenced[3]]
		if json.Valid([]byte(body)) {
			return thinking, []byte(body), nil
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return thinking, nil, ErrNoJSON
	}
	body := text[start : end+1]
	if !json.Valid([]byte(body)) {
		return thinking, nil, ErrNoJSON
	}
	if fenced == nil {
		thinking = strings.TrimSpace(text[:start])
	}
	return thinking, []byte(body), nil
}
