// Package preview is the interactive terminal preview and editor for a
// deck. It pages through slides, edits fields in place, and drives the
// outline generator and the .pptx exporter.
package preview

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/editor"
	"github.com/alexisbeaulieu97/slidesmith/internal/export"
	"github.com/alexisbeaulieu97/slidesmith/internal/layout"
	"github.com/alexisbeaulieu97/slidesmith/internal/logger"
	"github.com/alexisbeaulieu97/slidesmith/internal/outline"
)

// Options wires the preview to its collaborators. Generator and Exporter
// may be nil, which disables the matching keys.
type Options struct {
	Session   *editor.Session
	Path      string
	Generator Generator
	Request   outline.Request
	Style     string
	Exporter  Exporter
	ExportDir string
	Export    export.Options
	Log       *logger.Logger
}

// Model is the bubbletea model of the preview.
type Model struct {
	session *editor.Session
	opts    Options
	log     *logger.Logger

	mode  Mode
	focus int // index into the current plan's editable regions, -1 for none

	field *editor.Field
	ref   deck.FieldRef
	input textinput.Model

	spinner spinner.Model
	pending bool
	stage   Stage
	ticket  outline.Ticket
	cancel  context.CancelFunc

	dirty     bool
	status    string
	statusErr bool

	width  int
	height int
}

// NewModel builds a preview over opts.Session.
func NewModel(opts Options) Model {
	if opts.Session == nil {
		opts.Session = editor.NewSession(nil, opts.Export.Templates)
	}
	if opts.Style == "" {
		opts.Style = outline.DefaultStyle
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 0

	return Model{
		session: opts.Session,
		opts:    opts,
		log:     opts.Log,
		focus:   -1,
		input:   in,
		spinner: s,
		width:   100,
		height:  32,
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Session exposes the edited session.
func (m Model) Session() *editor.Session { return m.session }

// Mode returns the current input mode.
func (m Model) Mode() Mode { return m.mode }

// Dirty reports unsaved edits.
func (m Model) Dirty() bool { return m.dirty }

// Pending reports an in-flight generator request.
func (m Model) Pending() bool { return m.pending }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Focused returns the focused editable region, if any.
func (m Model) Focused() (layout.Region, bool) {
	plan, _ := m.session.Plan()
	regions := plan.Editable()
	if m.focus < 0 || m.focus >= len(regions) {
		return layout.Region{}, false
	}
	return regions[m.focus], true
}

func (m *Model) setStatus(text string) {
	m.status, m.statusErr = text, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

// canvasCols sizes the slide canvas to the window.
func (m Model) canvasCols() int {
	cols := m.width - 2
	// leave room for header, input, status and footer
	if rows := m.height - 8; rows > 0 && canvasRows(cols) > rows {
		cols = int(float64(rows) * 2 * layout.CanvasWidth / layout.CanvasHeight)
	}
	return max(cols, minCanvasCols)
}

func (m *Model) exportOptions() export.Options {
	opts := m.opts.Export
	opts.Templates = m.session.Templates()
	opts.FontScale = m.session.FontScale()
	return opts
}
