package preview

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/layout"
	"github.com/alexisbeaulieu97/slidesmith/internal/outline"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, m.width-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case GeneratedMsg:
		return m.handleGenerated(msg)

	case SavedMsg:
		if msg.Err != nil {
			m.setError(fmt.Errorf("save failed: %w", msg.Err))
			return m, nil
		}
		m.dirty = false
		m.setStatus("Saved " + msg.Path)
		m.log.WithFields(map[string]any{"path": msg.Path}).Info("deck saved")
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.setError(fmt.Errorf("export failed: %w", msg.Err))
			m.log.Error(msg.Err, "export failed")
			return m, nil
		}
		m.setStatus("Exported " + msg.Path)
		return m, nil

	case StatusMsg:
		m.status, m.statusErr = msg.Text, msg.Error
		return m, nil

	case ClearStatusMsg:
		m.status, m.statusErr = "", false
		return m, nil
	}

	return m, nil
}

// handleKeyPress dispatches keys by mode.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.cancelPending()
		return m, tea.Quit
	}

	switch m.mode {
	case ModeEdit:
		return m.handleEditKeys(msg)
	case ModeHelp:
		m.mode = ModeView
		return m, nil
	default:
		return m.handleViewKeys(msg)
	}
}

func (m Model) handleViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session

	switch msg.String() {
	case "q":
		m.cancelPending()
		return m, tea.Quit

	case "?":
		m.mode = ModeHelp

	// Paging
	case "right", "l", "pgdown", " ":
		s.Next()
		m.focus = -1
	case "left", "h", "pgup":
		s.Prev()
		m.focus = -1
	case "home":
		s.Go(0)
		m.focus = -1
	case "end":
		s.Go(s.Len() - 1)
		m.focus = -1

	// Field focus
	case "tab":
		m.moveFocus(1)
	case "shift+tab":
		m.moveFocus(-1)
	case "esc":
		m.focus = -1
	case "enter":
		return m.beginEdit()

	// Slide operations
	case "a":
		i := s.AddSlide()
		m.edited(nil, "Added slide %d", i+1)
	case "d":
		err := s.DuplicateSlide()
		m.edited(err, "Duplicated into slide %d", s.Index()+1)
	case "x":
		err := s.RemoveSlide()
		m.edited(err, "Removed slide, now on %d of %d", s.Index()+1, s.Len())
	case "K":
		err := s.MoveSlide(-1)
		m.edited(err, "Moved to position %d", s.Index()+1)
	case "J":
		err := s.MoveSlide(1)
		m.edited(err, "Moved to position %d", s.Index()+1)
	case "t":
		kind, err := s.CycleType()
		m.edited(err, "Slide is now %s", kind)
	case "+":
		err := s.AddItem()
		m.edited(err, "Added an entry")
	case "-":
		return m.removeFocusedItem()

	// Look
	case "T":
		p, err := s.NextPreset()
		m.edited(err, "Theme: %s", p.Name)
	case "f":
		next := layout.NextFontScale(s.FontScale())
		s.SetFontScale(next.Factor)
		m.setStatus("Font size: " + next.Name)

	// Persistence and generation
	case "s":
		return m, saveCmd(m.opts.Path, s.Deck().Clone())
	case "e":
		return m.startExport()
	case "g":
		return m.startGeneration(StageEnrich)
	case "G":
		return m.startGeneration(StageOutline)
	}

	return m, nil
}

// edited records the outcome of a deck operation.
func (m *Model) edited(err error, format string, args ...any) {
	m.focus = -1
	if err != nil {
		m.setError(err)
		return
	}
	m.dirty = true
	m.setStatus(fmt.Sprintf(format, args...))
}

func (m *Model) moveFocus(delta int) {
	plan, _ := m.session.Plan()
	n := len(plan.Editable())
	if n == 0 {
		m.focus = -1
		return
	}
	switch {
	case m.focus < 0 && delta < 0:
		m.focus = n - 1
	case m.focus < 0:
		m.focus = 0
	default:
		m.focus = (m.focus + delta + n) % n
	}
}

func (m Model) beginEdit() (tea.Model, tea.Cmd) {
	r, ok := m.Focused()
	if !ok {
		m.moveFocus(1)
		if r, ok = m.Focused(); !ok {
			return m, nil
		}
	}

	f, err := m.session.Edit(r.Field)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.field = f
	m.ref = r.Field
	m.mode = ModeEdit
	m.input.SetValue(f.Draft())
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitEdit()
		return m, nil
	case "esc":
		m.field.Cancel()
		m.endEdit()
		m.setStatus("Edit cancelled")
		return m, nil
	case "tab", "shift+tab":
		// moving focus commits the field being edited
		if !m.commitEdit() {
			return m, nil
		}
		if msg.String() == "tab" {
			m.moveFocus(1)
		} else {
			m.moveFocus(-1)
		}
		return m.beginEdit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.field.SetDraft(m.input.Value())
	return m, cmd
}

// commitEdit writes the draft back. On failure the editor stays open with
// the draft intact.
func (m *Model) commitEdit() bool {
	m.field.SetDraft(m.input.Value())
	changed := m.field.Dirty()
	if err := m.field.Commit(); err != nil {
		m.setError(err)
		return false
	}
	if changed {
		m.dirty = true
		m.setStatus("Updated " + m.ref.String())
	}
	m.endEdit()
	return true
}

func (m *Model) endEdit() {
	m.mode = ModeView
	m.field = nil
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) removeFocusedItem() (tea.Model, tea.Cmd) {
	r, ok := m.Focused()
	if !ok || r.Field.Index < 0 || !mainList(r.Field.Name) {
		m.setError(errors.New("focus a list entry to remove it"))
		return m, nil
	}
	err := m.session.RemoveItem(r.Field.Index)
	m.edited(err, "Removed entry %d", r.Field.Index+1)
	return m, nil
}

// mainList reports whether name is the list AddItem and RemoveItem act on.
func mainList(name string) bool {
	switch name {
	case deck.FieldBullets, deck.FieldMetrics, deck.FieldItems, deck.FieldLeftBullets:
		return true
	}
	return false
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if m.opts.Exporter == nil {
		m.setError(errors.New("export is not configured"))
		return m, nil
	}
	m.setStatus("Exporting…")
	return m, exportCmd(context.Background(), m.opts.Exporter, m.opts.ExportDir, m.session.Deck().Clone(), m.exportOptions())
}

// startGeneration issues a generator request. A request already in flight
// is cancelled and its response will be discarded.
func (m Model) startGeneration(stage Stage) (tea.Model, tea.Cmd) {
	gen := m.opts.Generator
	if gen == nil {
		m.setError(errors.New("no generator configured"))
		return m, nil
	}

	req := m.opts.Request
	if stage == StageOutline {
		if req.Style == "" {
			req.Style = m.opts.Style
		}
		if err := req.Validate(); err != nil {
			m.setError(fmt.Errorf("cannot regenerate: %w", err))
			return m, nil
		}
	}

	m.cancelPending()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.ticket = gen.Begin()
	m.pending = true
	m.stage = stage
	m.setStatus(fmt.Sprintf("Requesting %s…", stage))

	var cmd tea.Cmd
	if stage == StageOutline {
		cmd = outlineCmd(ctx, gen, m.ticket, req)
	} else {
		cmd = enrichCmd(ctx, gen, m.ticket, m.session.Deck().Clone(), m.opts.Style)
	}
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m *Model) cancelPending() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.pending = false
}

// handleGenerated applies a generator response. Responses for any request
// but the latest are dropped; failures keep the deck on screen.
func (m Model) handleGenerated(msg GeneratedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.Err, outline.ErrSuperseded) || msg.Ticket != m.ticket {
		return m, nil
	}
	if gen := m.opts.Generator; gen != nil && !gen.Current(msg.Ticket) {
		return m, nil
	}

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.pending = false

	if msg.Err != nil {
		m.setError(msg.Err)
		return m, nil
	}
	if msg.Result.Deck == nil {
		m.setError(fmt.Errorf("%s returned no deck", msg.Stage))
		return m, nil
	}

	if m.mode == ModeEdit {
		m.field.Cancel()
		m.endEdit()
	}
	m.session.Replace(msg.Result.Deck)
	m.focus = -1
	m.dirty = true
	m.setStatus(fmt.Sprintf("%s ready: %d slides", msg.Stage, m.session.Len()))
	m.log.WithFields(map[string]any{"stage": string(msg.Stage), "slides": m.session.Len()}).Info("deck replaced from generator")
	return m, nil
}
