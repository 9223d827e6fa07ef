package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	validYAML := `version: "1.0"
theme: 3
font_scale: large
templates:
  cover: cover.png
generator:
  provider: openai
  model: gpt-4o
  api_key_env: SLIDESMITH_TEST_KEY
  timeout: 30s
  style: pitch
export:
  font: Arial
`

	invalidYAML := `version: [1, 0]
generator:
  provider: http
`

	badVersion := `version: "beta"
`

	badProvider := `version: "1.0"
generator:
  provider: carrier-pigeon
`

	themeOutOfRange := `version: "1.0"
theme: 42
`

	httpWithoutEndpoint := `version: "1.0"
generator:
  provider: http
  endpoint: ""
`

	badTimeout := `version: "1.0"
generator:
  timeout: soon
`

	cases := []struct {
		name      string
		contents  string
		wantError error
		assert    func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "valid configuration is parsed",
			contents: validYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				require.Equal(t, 3, cfg.Theme)
				require.Equal(t, "large", cfg.FontScale)
				require.Equal(t, ProviderOpenAI, cfg.Generator.Provider)
				require.Equal(t, "pitch", cfg.Generator.Style)
				require.Equal(t, "Arial", cfg.Export.Font)
				// unset fields keep their defaults
				require.Equal(t, ".", cfg.Export.OutputDir)
				require.NotEmpty(t, cfg.Dir)
				require.Equal(t, filepath.Join(cfg.Dir, "cover.png"), cfg.ThemeTemplates().Cover)
			},
		},
		{
			name:      "invalid yaml returns parse error",
			contents:  invalidYAML,
			wantError: &slideerrors.ParseError{},
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var parseErr *slideerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Contains(t, parseErr.Message, "cannot unmarshal")
				require.Equal(t, 1, parseErr.Line)
			},
		},
		{
			name:      "schema version must follow major.minor",
			contents:  badVersion,
			wantError: &slideerrors.ValidationError{},
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *slideerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "config.version", validationErr.Field)
			},
		},
		{
			name:      "unknown provider is rejected",
			contents:  badProvider,
			wantError: &slideerrors.ValidationError{},
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *slideerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "config.generator.provider", validationErr.Field)
			},
		},
		{
			name:      "theme index must name a preset",
			contents:  themeOutOfRange,
			wantError: &slideerrors.ValidationError{},
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *slideerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "config.theme", validationErr.Field)
				require.Contains(t, validationErr.Message, "does not exist")
			},
		},
		{
			name:      "http provider needs an endpoint",
			contents:  httpWithoutEndpoint,
			wantError: &slideerrors.ValidationError{},
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *slideerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "config.generator.endpoint", validationErr.Field)
			},
		},
		{
			name:      "timeout must be a duration",
			contents:  badTimeout,
			wantError: &slideerrors.ValidationError{},
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *slideerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "config.generator.timeout", validationErr.Field)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeTempConfig(t, tc.contents)
			cfg, err := ParseConfig(path)
			tc.assert(t, cfg, err)
			if tc.wantError != nil {
				require.Error(t, err)
				require.Nil(t, cfg)
			}
		})
	}
}

func TestParseConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	var parseErr *slideerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadWithExplicitPath(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, "version: \"1.2\"\nfont_scale: small\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "1.2", cfg.Version)
	require.InDelta(t, 0.85, cfg.FontScaleFactor(), 1e-9)
}

func TestExtractLine(t *testing.T) {
	t.Parallel()

	cases := []struct {
		msg  string
		want int
	}{
		{"yaml: line 7: mapping values are not allowed", 7},
		{"yaml: unmarshal errors:\n  line 12: cannot unmarshal", 12},
		{"no location here", 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, extractLine(errorString(tc.msg)), tc.msg)
	}
	require.Zero(t, extractLine(nil))
}

type errorString string

func (e errorString) Error() string { return string(e) }

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
