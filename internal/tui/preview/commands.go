package preview

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/export"
	"github.com/alexisbeaulieu97/slidesmith/internal/outline"
)

// outlineCmd asks the generator for a fresh outline.
func outlineCmd(ctx context.Context, gen Generator, t outline.Ticket, req outline.Request) tea.Cmd {
	return func() tea.Msg {
		res, err := gen.Outline(ctx, t, req)
		return GeneratedMsg{Stage: StageOutline, Ticket: t, Result: res, Err: err}
	}
}

// enrichCmd asks the generator to expand d. d must not be shared with the
// live session.
func enrichCmd(ctx context.Context, gen Generator, t outline.Ticket, d *deck.Deck, style string) tea.Cmd {
	return func() tea.Msg {
		res, err := gen.Enrich(ctx, t, d, style)
		return GeneratedMsg{Stage: StageEnrich, Ticket: t, Result: res, Err: err}
	}
}

// saveCmd writes a snapshot of the deck to path.
func saveCmd(path string, d *deck.Deck) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return SavedMsg{Err: fmt.Errorf("no deck file to save to")}
		}
		return SavedMsg{Path: path, Err: deck.Save(path, d)}
	}
}

// exportCmd exports a snapshot of the deck into dir.
func exportCmd(ctx context.Context, exp Exporter, dir string, d *deck.Deck, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		if exp == nil {
			return ExportedMsg{Err: fmt.Errorf("export is not configured")}
		}
		path, err := exp.ExportFile(ctx, dir, d, opts)
		return ExportedMsg{Path: path, Err: err}
	}
}
