package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

type sample struct {
	Version string `validate:"required,semver"`
	Timeout string `validate:"omitempty,duration"`
	Image   string `validate:"omitempty,image_ref"`
	Accent  string `validate:"omitempty,hexcolor"`
}

func TestInstanceIsShared(t *testing.T) {
	t.Parallel()

	require.Same(t, Instance(), Instance())
}

func TestStructAcceptsValidValues(t *testing.T) {
	t.Parallel()

	err := Struct("config", sample{Version: "1.0", Timeout: "55s", Image: "./cover.png", Accent: "#22d3ee"})
	require.NoError(t, err)
}

func TestStructReportsSnakeCaseField(t *testing.T) {
	t.Parallel()

	err := Struct("config", sample{Version: "1.0", Timeout: "-3s"})
	require.Error(t, err)

	var ve *slideerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "config.timeout", ve.Field)
	require.Contains(t, ve.Message, "duration")
}

func TestStructRejectsBadSemver(t *testing.T) {
	t.Parallel()

	err := Struct("config", sample{Version: "one"})
	require.ErrorContains(t, err, "semver")
}

func TestIsImageRef(t *testing.T) {
	t.Parallel()

	valid := []string{
		"",
		"cover.png",
		"./templates/cover.png",
		"/abs/path/end.jpg",
		"~/Pictures/bg.png",
		"https://example.com/bg.png",
		"data:image/png;base64,iVBORw0KGgo=",
	}
	for _, ref := range valid {
		require.True(t, IsImageRef(ref), ref)
	}

	invalid := []string{
		"   ",
		"https://",
		"data:text/plain;base64,aGVsbG8=",
		"/etc/../passwd",
		"ftp://host/file.png",
	}
	for _, ref := range invalid {
		require.False(t, IsImageRef(ref), ref)
	}
}

func TestToSnake(t *testing.T) {
	t.Parallel()

	require.Equal(t, "background_color", toSnake("BackgroundColor"))
	require.Equal(t, "api_key_env", toSnake("APIKeyEnv"))
	require.Equal(t, "slides[0]", toSnake("Slides[0]"))
	require.Equal(t, "base_url", toSnake("BaseURL"))
}
