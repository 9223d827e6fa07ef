package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

// FileName is the config file looked up in the working directory when no
// path is given.
const FileName = "slidesmith.yaml"

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseConfig loads a configuration file over the defaults, validates it, and
// returns the resulting model.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, slideerrors.NewParseError(path, 0, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, slideerrors.NewParseError(path, extractLine(err), err)
	}
	if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
		cfg.Dir = abs
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load parses path, or FileName in the working directory when path is
// empty. A missing default file yields Default().
func Load(path string) (*Config, error) {
	if path != "" {
		return ParseConfig(path)
	}
	if _, err := os.Stat(FileName); err == nil {
		return ParseConfig(FileName)
	}
	return Default(), nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
