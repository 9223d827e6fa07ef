// Package components holds small terminal widgets shared by the commands
// and the preview.
package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Progress renders a position within a deck as "3/12" plus a bar.
type Progress struct {
	bar   progress.Model
	total int
}

// NewProgress creates a progress component for total slides.
func NewProgress(total int, accent string) Progress {
	opts := []progress.Option{progress.WithoutPercentage()}
	if accent != "" {
		opts = append(opts, progress.WithSolidFill(accent))
	} else {
		opts = append(opts, progress.WithDefaultGradient())
	}
	bar := progress.New(opts...)
	bar.Width = 20
	return Progress{bar: bar, total: total}
}

// View renders the bar with current slides reached, 1-based.
func (p Progress) View(current int) string {
	ratio := 0.0
	if p.total > 0 {
		ratio = math.Min(1.0, float64(current)/float64(p.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", current, p.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", p.bar.ViewAs(ratio))
}
