package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// validateDeckPath requires an existing deck file.
func validateDeckPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("deck file is required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve deck path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("deck file does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("deck path %s is a directory", abs)
	}

	return nil
}
