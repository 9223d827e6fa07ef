// Package editor is the single write path into a deck: a session owns the
// deck and the current slide, and every text edit goes through a Field that
// buffers a draft until it is committed.
package editor

// CommitFunc stores a committed value. A non-nil error leaves the field in
// edit mode with its draft intact.
type CommitFunc func(value string) error

// Field is a value with a local draft buffer. Nothing is written until
// Commit.
type Field struct {
	value  string
	draft  string
	active bool
	commit CommitFunc
}

// NewField returns an inactive field holding value.
func NewField(value string, commit CommitFunc) *Field {
	return &Field{value: value, draft: value, commit: commit}
}

// Value is the last committed value.
func (f *Field) Value() string { return f.value }

// Draft is the pending text while editing, or the value otherwise.
func (f *Field) Draft() string {
	if !f.active {
		return f.value
	}
	return f.draft
}

// Active reports whether the field is being edited.
func (f *Field) Active() bool { return f.active }

// Begin enters edit mode with the draft reset to the value.
func (f *Field) Begin() {
	f.active = true
	f.draft = f.value
}

// SetDraft replaces the draft. It is ignored outside edit mode.
func (f *Field) SetDraft(s string) {
	if f.active {
		f.draft = s
	}
}

// Dirty reports whether the draft differs from the value.
func (f *Field) Dirty() bool {
	return f.active && f.draft != f.value
}

// Commit writes the draft through the commit callback in one step and
// leaves edit mode. An unchanged draft leaves edit mode without a write.
func (f *Field) Commit() error {
	if !f.active {
		return nil
	}
	if f.draft == f.value {
		f.active = false
		return nil
	}
	if f.commit != nil {
		if err := f.commit(f.draft); err != nil {
			return err
		}
	}
	f.value = f.draft
	f.active = false
	return nil
}

// Cancel discards the draft and leaves edit mode.
func (f *Field) Cancel() {
	f.active = false
	f.draft = f.value
}
