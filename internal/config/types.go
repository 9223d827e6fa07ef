// Package config loads the slidesmith YAML configuration: theme and font
// defaults, template images, the outline generator and export settings.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/slidesmith/internal/layout"
	"github.com/alexisbeaulieu97/slidesmith/internal/theme"
)

// Generator providers.
const (
	ProviderHTTP   = "http"
	ProviderOpenAI = "openai"
)

// Config represents the full configuration document.
type Config struct {
	Version   string          `yaml:"version" validate:"required,semver"`
	Theme     int             `yaml:"theme" validate:"min=0"`
	FontScale string          `yaml:"font_scale,omitempty" validate:"omitempty,oneof=small medium large"`
	Templates TemplateConfig  `yaml:"templates,omitempty"`
	Generator GeneratorConfig `yaml:"generator"`
	Export    ExportConfig    `yaml:"export"`

	// Dir is the directory the file was loaded from; relative template
	// paths resolve against it.
	Dir string `yaml:"-"`
}

// TemplateConfig names background images per slide role.
type TemplateConfig struct {
	Cover  string `yaml:"cover,omitempty" validate:"omitempty,image_ref"`
	Middle string `yaml:"middle,omitempty" validate:"omitempty,image_ref"`
	Ending string `yaml:"ending,omitempty" validate:"omitempty,image_ref"`
}

// GeneratorConfig selects and configures the outline generator.
type GeneratorConfig struct {
	Provider  string `yaml:"provider" validate:"required,oneof=http openai"`
	Endpoint  string `yaml:"endpoint,omitempty" validate:"omitempty,url"`
	BaseURL   string `yaml:"base_url,omitempty" validate:"omitempty,url"`
	Model     string `yaml:"model,omitempty" validate:"max=128"`
	APIKeyEnv string `yaml:"api_key_env,omitempty" validate:"omitempty,max=128"`
	Timeout   string `yaml:"timeout,omitempty" validate:"omitempty,duration"`
	Style     string `yaml:"style,omitempty" validate:"omitempty,oneof=business review pitch training academic project compete"`
}

// ExportConfig controls .pptx output.
type ExportConfig struct {
	Font      string `yaml:"font,omitempty" validate:"max=64"`
	OutputDir string `yaml:"output_dir,omitempty"`
}

// Default returns a configuration with every field populated.
func Default() *Config {
	return &Config{
		Version:   "1.0",
		Theme:     0,
		FontScale: "medium",
		Generator: GeneratorConfig{
			Provider:  ProviderHTTP,
			Endpoint:  "http://localhost:3000/api",
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			Timeout:   "55s",
			Style:     "business",
		},
		Export: ExportConfig{
			Font:      "Microsoft YaHei",
			OutputDir: ".",
		},
	}
}

// ThemeTemplates returns the template images with relative file paths
// resolved against the config directory.
func (c *Config) ThemeTemplates() theme.Templates {
	return theme.Templates{
		Cover:  c.resolve(c.Templates.Cover),
		Middle: c.resolve(c.Templates.Middle),
		Ending: c.resolve(c.Templates.Ending),
	}
}

func (c *Config) resolve(ref string) string {
	if ref == "" || c.Dir == "" || strings.HasPrefix(ref, "data:") || strings.Contains(ref, "://") ||
		strings.HasPrefix(ref, "~/") || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(c.Dir, ref)
}

// FontScaleFactor returns the multiplier for the configured font scale.
func (c *Config) FontScaleFactor() float64 {
	fs, err := layout.ParseFontScale(c.FontScale)
	if err != nil {
		return 1
	}
	return fs.Factor
}

// GeneratorTimeout parses the generator timeout; zero means the caller's
// default.
func (c *Config) GeneratorTimeout() time.Duration {
	d, err := time.ParseDuration(c.Generator.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// APIKey reads the generator API key from the configured environment
// variable.
func (c *Config) APIKey() string {
	if c.Generator.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Generator.APIKeyEnv)
}
