package components

import (
	"fmt"
	"strings"
)

// StageStatus is the outcome of one step of a command.
type StageStatus struct {
	Name    string
	Passed  bool
	Skipped bool
	Message string
}

// SummaryData aggregates stage outcomes for rendering.
type SummaryData struct {
	Stages    []StageStatus
	Cancelled bool
}

// Summary renders a textual run summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// Failed reports whether any stage that ran did not pass.
func (s Summary) Failed() bool {
	for _, st := range s.data.Stages {
		if !st.Passed && !st.Skipped {
			return true
		}
	}
	return false
}

// View renders one line per stage.
func (s Summary) View() string {
	width := 0
	for _, st := range s.data.Stages {
		width = max(width, len(st.Name))
	}

	var lines []string
	for _, st := range s.data.Stages {
		mark := "✗"
		switch {
		case st.Skipped:
			mark = "-"
		case st.Passed:
			mark = "✓"
		}
		line := fmt.Sprintf("%s %-*s", mark, width, st.Name)
		if st.Message != "" {
			line += "  " + st.Message
		}
		lines = append(lines, strings.TrimRight(line, " "))
	}

	if s.data.Cancelled {
		lines = append(lines, "Cancelled")
	}
	return strings.Join(lines, "\n")
}
