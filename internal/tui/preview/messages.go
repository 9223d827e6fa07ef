package preview

import (
	"github.com/alexisbeaulieu97/slidesmith/internal/outline"
)

// Mode determines how keys are interpreted.
type Mode int

const (
	ModeView Mode = iota
	ModeEdit
	ModeHelp
)

// Stage names a generator request.
type Stage string

const (
	StageOutline Stage = "outline"
	StageEnrich  Stage = "enrich"
)

// GeneratedMsg carries a generator response tagged with the ticket it was
// requested under.
type GeneratedMsg struct {
	Stage  Stage
	Ticket outline.Ticket
	Result outline.Result
	Err    error
}

// SavedMsg reports the outcome of writing the deck file.
type SavedMsg struct {
	Path string
	Err  error
}

// ExportedMsg reports the outcome of a .pptx export.
type ExportedMsg struct {
	Path string
	Err  error
}

// StatusMsg replaces the status line.
type StatusMsg struct {
	Text  string
	Error bool
}

// ClearStatusMsg empties the status line.
type ClearStatusMsg struct{}
