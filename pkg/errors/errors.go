package errors

import (
	"fmt"
)

// ParseError represents a decoding failure for a deck, config or generator
// payload, with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration or deck validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExportError reports a failure while writing one slide of a presentation file.
// Slide is zero-based; a negative value means the failure is not tied to a slide.
type ExportError struct {
	Slide int
	Err   error
}

// NewExportError constructs an ExportError.
func NewExportError(slide int, err error) error {
	return &ExportError{Slide: slide, Err: err}
}

func (e *ExportError) Error() string {
	if e == nil {
		return ""
	}
	if e.Slide >= 0 {
		return fmt.Sprintf("export error on slide %d: %v", e.Slide+1, e.Err)
	}
	return fmt.Sprintf("export error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// GenerationError indicates the external outline generator failed. Callers
// treat it as recoverable and keep the last good deck.
type GenerationError struct {
	Stage   string
	Message string
	Err     error
}

// NewGenerationError constructs a GenerationError for the given stage.
func NewGenerationError(stage string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &GenerationError{Stage: stage, Message: message, Err: err}
}

func (e *GenerationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stage != "" {
		return fmt.Sprintf("generation error [%s]: %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("generation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *GenerationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
