// Package bullet parses the "label: detail" convention used by slide bullets.
//
// Every place that shows a bullet (preview list and card layouts, the field
// editor, the exporter) goes through Split so the convention is applied once.
package bullet

import (
	"regexp"
	"strings"
)

// DefaultSeparator is used when a detail is attached to a bullet that had none.
const DefaultSeparator = "："

// The first ASCII or full-width colon wins; whitespace after it belongs to
// the separator so rejoining reproduces the input byte for byte.
var labeledPattern = regexp.MustCompile(`^(.+?)([：:]\s*)(.+)$`)

// Parts is the result of splitting one bullet string.
type Parts struct {
	Label   string
	Sep     string
	Detail  string
	Labeled bool
}

// Split parses s. Unlabeled bullets come back with the whole text as Label.
func Split(s string) Parts {
	m := labeledPattern.FindStringSubmatch(s)
	if m == nil || strings.TrimSpace(m[1]) == "" || strings.TrimSpace(m[3]) == "" {
		return Parts{Label: s}
	}
	return Parts{Label: m[1], Sep: m[2], Detail: m[3], Labeled: true}
}

// IsLabeled reports whether s follows the convention.
func IsLabeled(s string) bool {
	return Split(s).Labeled
}

// String rejoins the parts.
func (p Parts) String() string {
	if !p.Labeled {
		return p.Label
	}
	return p.Label + p.Sep + p.Detail
}

// WithLabel replaces the label and keeps the detail and separator.
func (p Parts) WithLabel(label string) string {
	if !p.Labeled {
		return label
	}
	return join(label, p.Sep, p.Detail)
}

// WithDetail replaces the detail and keeps the label and separator.
func (p Parts) WithDetail(detail string) string {
	sep := p.Sep
	if !p.Labeled {
		sep = DefaultSeparator
	}
	return join(p.Label, sep, detail)
}

func join(label, sep, detail string) string {
	switch {
	case strings.TrimSpace(detail) == "":
		return label
	case strings.TrimSpace(label) == "":
		return detail
	default:
		return label + sep + detail
	}
}

// CountLabeled returns how many of bullets follow the convention.
func CountLabeled(bullets []string) int {
	n := 0
	for _, b := range bullets {
		if IsLabeled(b) {
			n++
		}
	}
	return n
}
