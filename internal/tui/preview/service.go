package preview

import (
	"context"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/export"
	"github.com/alexisbeaulieu97/slidesmith/internal/outline"
)

// Generator is the part of outline.Service the preview drives.
type Generator interface {
	Begin() outline.Ticket
	Current(t outline.Ticket) bool
	Outline(ctx context.Context, t outline.Ticket, req outline.Request) (outline.Result, error)
	Enrich(ctx context.Context, t outline.Ticket, d *deck.Deck, style string) (outline.Result, error)
}

// Exporter writes a deck to a .pptx file in dir and returns its path.
type Exporter interface {
	ExportFile(ctx context.Context, dir string, d *deck.Deck, opts export.Options) (string, error)
}

var (
	_ Generator = (*outline.Service)(nil)
	_ Exporter  = export.Writer{}
)
