package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

// DefaultFileName is used when a deck has no usable title.
const DefaultFileName = "GenSlides.pptx"

const maxNameRunes = 120

// FileName derives "<title>.pptx" with path separators, reserved characters
// and control characters replaced.
func FileName(title string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case unicode.IsControl(r), strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	name := strings.Trim(b.String(), " .")
	if runes := []rune(name); len(runes) > maxNameRunes {
		name = strings.TrimRight(string(runes[:maxNameRunes]), " .")
	}
	if strings.Trim(name, "_") == "" {
		return DefaultFileName
	}
	return name + ".pptx"
}

// WriteDeck serializes d and writes the presentation to out.
func (w Writer) WriteDeck(ctx context.Context, out io.Writer, d *deck.Deck, opts Options) error {
	if d == nil {
		return slideerrors.NewExportError(-1, fmt.Errorf("deck is nil"))
	}
	return w.Write(ctx, out, d.Title, Serialize(d, opts))
}

// ExportFile writes d into dir under FileName(d.Title) and returns the path.
// The file is written to a temporary sibling first and renamed into place.
func (w Writer) ExportFile(ctx context.Context, dir string, d *deck.Deck, opts Options) (string, error) {
	if d == nil {
		return "", slideerrors.NewExportError(-1, fmt.Errorf("deck is nil"))
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", slideerrors.NewExportError(-1, fmt.Errorf("failed to create output directory: %w", err))
	}

	var buf bytes.Buffer
	if err := w.WriteDeck(ctx, &buf, d, opts); err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(d.Title))
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return "", slideerrors.NewExportError(-1, fmt.Errorf("failed to write temporary file: %w", err))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", slideerrors.NewExportError(-1, fmt.Errorf("failed to rename temporary file: %w", err))
	}

	w.Log.WithFields(map[string]any{"path": path, "slides": d.Len()}).Info("presentation exported")
	return path, nil
}
