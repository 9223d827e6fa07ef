package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/slidesmith/internal/assets"
	"github.com/alexisbeaulieu97/slidesmith/internal/config"
	"github.com/alexisbeaulieu97/slidesmith/internal/export"
	"github.com/alexisbeaulieu97/slidesmith/internal/logger"
	"github.com/alexisbeaulieu97/slidesmith/internal/outline"
	"github.com/alexisbeaulieu97/slidesmith/internal/theme"
)

// AppContext bundles the configuration and services one command invocation
// uses.
type AppContext struct {
	Config *config.Config
	Log    *logger.Logger

	logFile io.Closer
}

// newAppContext loads the configuration and builds the logger. With
// terminalOwned set, logs go to --log-file or nowhere, so they never draw
// over a full-screen program.
func newAppContext(flags rootFlags, stderr io.Writer, terminalOwned bool) (*AppContext, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	app := &AppContext{Config: cfg}

	level := "info"
	if flags.verbose {
		level = "debug"
	}

	writer := stderr
	if flags.logFile != "" {
		f, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		app.logFile = f
		writer = f
	} else if terminalOwned {
		app.Log = logger.Discard()
		return app, nil
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: !flags.logJSON, NoColor: flags.logFile != "", Writer: writer})
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Log = log
	return app, nil
}

// Close releases the log file, if any.
func (a *AppContext) Close() error {
	if a == nil || a.logFile == nil {
		return nil
	}
	return a.logFile.Close()
}

// Templates returns the configured template images embedded as data URIs so
// a missing file is reported before any work starts.
func (a *AppContext) Templates() (theme.Templates, error) {
	return assets.Embed(a.Config.ThemeTemplates(), a.Config.Dir)
}

// Generator builds the configured outline generator.
func (a *AppContext) Generator(ctx context.Context) (outline.Generator, error) {
	g := a.Config.Generator
	switch g.Provider {
	case config.ProviderOpenAI:
		chat, err := outline.NewChatGenerator(ctx, outline.ChatConfig{
			APIKey:  a.Config.APIKey(),
			BaseURL: g.BaseURL,
			Model:   g.Model,
			Timeout: a.Config.GeneratorTimeout(),
		}, a.Log)
		if err != nil {
			return nil, fmt.Errorf("openai generator (key from $%s): %w", g.APIKeyEnv, err)
		}
		return chat, nil
	default:
		return &outline.HTTPGenerator{
			Endpoint: g.Endpoint,
			Client:   &http.Client{},
			Log:      a.Log,
		}, nil
	}
}

// Service wraps the configured generator with timeout and fallback
// handling.
func (a *AppContext) Service(ctx context.Context) (*outline.Service, error) {
	gen, err := a.Generator(ctx)
	if err != nil {
		return nil, err
	}
	return outline.NewService(gen, a.Config.GeneratorTimeout(), a.Log), nil
}

// Writer returns a .pptx writer resolving images relative to deckPath.
func (a *AppContext) Writer(deckPath string) export.Writer {
	return export.Writer{
		Images: assets.Loader{
			Client:  &http.Client{Timeout: assets.DefaultTimeout},
			BaseDir: filepath.Dir(deckPath),
		},
		Log: a.Log,
	}
}

// ExportOptions combines the template images with the export settings.
func (a *AppContext) ExportOptions(templates theme.Templates) export.Options {
	return export.Options{
		Templates: templates,
		Font:      a.Config.Export.Font,
		FontScale: a.Config.FontScaleFactor(),
	}
}
