package config

import (
	"fmt"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/validation"
	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

// ValidateConfig performs structural and cross-field validation on an entire configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return slideerrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validation.Struct("config", cfg); err != nil {
		return err
	}

	if cfg.Theme >= len(deck.Presets) {
		return slideerrors.NewValidationError("config.theme",
			fmt.Sprintf("theme preset %d does not exist (0-%d)", cfg.Theme, len(deck.Presets)-1), nil)
	}

	switch cfg.Generator.Provider {
	case ProviderHTTP:
		if cfg.Generator.Endpoint == "" {
			return slideerrors.NewValidationError("config.generator.endpoint", "endpoint is required for the http provider", nil)
		}
	case ProviderOpenAI:
		if cfg.Generator.Model == "" {
			return slideerrors.NewValidationError("config.generator.model", "model is required for the openai provider", nil)
		}
		if cfg.Generator.APIKeyEnv == "" {
			return slideerrors.NewValidationError("config.generator.api_key_env", "api_key_env is required for the openai provider", nil)
		}
	}

	return nil
}
