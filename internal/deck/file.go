package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/slidesmith/internal/validation"
	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads a deck from a .json, .yaml or .yml file, normalizes and
// validates it.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, slideerrors.NewParseError(path, 0, err)
	}

	if isYAML(path) {
		data, err = yamlToJSON(path, data)
		if err != nil {
			return nil, err
		}
	}

	d, err := DecodeNamed(path, data)
	if err != nil {
		return nil, err
	}
	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Save writes the deck atomically: a sibling temp file is written and then
// renamed over path.
func Save(path string, d *Deck) error {
	if d == nil {
		return slideerrors.NewValidationError("deck", "deck is nil", nil)
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deck: %w", err)
	}

	if isYAML(path) {
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to convert deck: %w", err)
		}
		if data, err = yaml.Marshal(doc); err != nil {
			return fmt.Errorf("failed to marshal deck: %w", err)
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create deck directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Validate checks structural constraints that normalization cannot repair,
// such as malformed image references.
func Validate(d *Deck) error {
	if d == nil {
		return slideerrors.NewValidationError("deck", "deck is nil", nil)
	}
	return validation.Struct("deck", d)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func yamlToJSON(path string, data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, slideerrors.NewParseError(path, yamlLine(err), err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, slideerrors.NewParseError(path, 0, err)
	}
	return out, nil
}

func yamlLine(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}
