// Package validation holds the shared struct validator and the filesystem
// checks used by config loading and deck ingestion.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	slideerrors "github.com/alexisbeaulieu97/slidesmith/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern  = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	dataURIPattern = regexp.MustCompile(`^data:image/[a-zA-Z0-9.+-]+;base64,`)
)

// Instance returns the shared validator with slidesmith's custom rules registered.
func Instance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
			d, err := time.ParseDuration(fl.Field().String())
			return err == nil && d > 0
		})

		_ = v.RegisterValidation("image_ref", func(fl validator.FieldLevel) bool {
			return IsImageRef(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Struct validates s and converts the first failure into a ValidationError
// whose field is rooted at root (e.g. "config" or "deck").
func Struct(root string, s any) error {
	if err := Instance().Struct(s); err != nil {
		return convert(root, err)
	}
	return nil
}

// IsImageRef accepts an embedded data URI, an http(s) URL with a host, or a
// syntactically valid file path. It never touches the filesystem.
func IsImageRef(ref string) bool {
	if ref == "" {
		return true
	}
	if strings.TrimSpace(ref) == "" || strings.Contains(ref, "\x00") {
		return false
	}
	if dataURIPattern.MatchString(ref) {
		return true
	}
	if parsed, err := url.Parse(ref); err == nil {
		scheme := strings.ToLower(parsed.Scheme)
		if scheme == "http" || scheme == "https" {
			return parsed.Host != ""
		}
		if scheme == "data" {
			return false
		}
	}
	return isValidFilePath(ref)
}

func isValidFilePath(path string) bool {
	if strings.HasPrefix(path, "/") {
		return !strings.Contains(path, "/../") && !strings.HasSuffix(path, "/..")
	}
	if strings.HasPrefix(path, "~/") {
		return true
	}
	// bare relative names such as "cover.png" are allowed
	return !strings.Contains(path, "://")
}

func convert(root string, err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := fieldName(root, ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return slideerrors.NewValidationError(field, msg, err)
	}

	return slideerrors.NewValidationError(root, err.Error(), err)
}

func fieldName(root string, fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 0 {
		parts[0] = root
	}
	for i := range parts {
		parts[i] = toSnake(parts[i])
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && runes[i-1] != '[' && (isLower(runes[i-1]) || (i+1 < len(runes) && isLower(runes[i+1]) && isUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
