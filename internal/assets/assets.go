// Package assets turns image references (data URIs, http(s) URLs and file
// paths) into bytes for the exporter and embeds local template files so a
// deck stays portable.
package assets

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/alexisbeaulieu97/slidesmith/internal/theme"
	"github.com/alexisbeaulieu97/slidesmith/internal/validation"
)

var (
	// ErrNotImage is returned when the referenced bytes are not an image.
	ErrNotImage = errors.New("not an image")
	// ErrBadDataURI is returned for malformed data: references.
	ErrBadDataURI = errors.New("malformed data URI")
)

// DefaultTimeout bounds a single remote image fetch.
const DefaultTimeout = 15 * time.Second

// DataURI encodes data as a base64 data URI. An empty mime is sniffed.
func DataURI(data []byte, mime string) string {
	if mime == "" {
		mime = mimetype.Detect(data).String()
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI decodes a base64 image data URI.
func ParseDataURI(ref string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return nil, "", ErrBadDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrBadDataURI
	}
	mime, enc, _ := strings.Cut(meta, ";")
	if enc != "base64" {
		return nil, "", fmt.Errorf("%w: only base64 payloads are supported", ErrBadDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, "", fmt.Errorf("%w: %s", ErrNotImage, mime)
	}
	return data, mime, nil
}

// FromFile reads an image file and returns it as a data URI.
func FromFile(path string) (string, error) {
	data, mime, err := readImage(path)
	if err != nil {
		return "", err
	}
	return DataURI(data, mime), nil
}

func readImage(path string) ([]byte, string, error) {
	if err := validation.CheckImageFile(path); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image %s: %w", path, err)
	}
	mime, err := sniff(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return data, mime, nil
}

func sniff(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return mt.String(), nil
		}
	}
	return "", fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
}

// Loader resolves image references to bytes.
type Loader struct {
	// Client fetches http(s) references; nil uses a client with DefaultTimeout.
	Client *http.Client
	// BaseDir anchors relative file paths, normally the deck's directory.
	BaseDir string
}

// Load returns the image bytes and MIME type for ref.
func (l Loader) Load(ctx context.Context, ref string) ([]byte, string, error) {
	switch {
	case ref == "":
		return nil, "", fmt.Errorf("empty image reference")
	case strings.HasPrefix(ref, "data:"):
		return ParseDataURI(ref)
	case isRemote(ref):
		return l.fetch(ctx, ref)
	default:
		return readImage(l.path(ref))
	}
}

func isRemote(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

func (l Loader) path(ref string) string {
	if rest, ok := strings.CutPrefix(ref, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(ref) || l.BaseDir == "" {
		return ref
	}
	return filepath.Join(l.BaseDir, ref)
}

func (l Loader) fetch(ctx context.Context, ref string) ([]byte, string, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: unexpected status %s", ref, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, validation.MaxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", ref, err)
	}
	if len(data) > validation.MaxImageBytes {
		return nil, "", fmt.Errorf("fetch %s: image exceeds %d bytes", ref, validation.MaxImageBytes)
	}

	mime, err := sniff(data)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", ref, err)
	}
	return data, mime, nil
}

// Embed replaces file-path templates with data URIs. URLs and data URIs are
// left as they are.
func Embed(t theme.Templates, baseDir string) (theme.Templates, error) {
	l := Loader{BaseDir: baseDir}
	embed := func(role, ref string) (string, error) {
		if ref == "" || strings.HasPrefix(ref, "data:") || isRemote(ref) {
			return ref, nil
		}
		uri, err := FromFile(l.path(ref))
		if err != nil {
			return "", fmt.Errorf("%s template: %w", role, err)
		}
		return uri, nil
	}

	var err error
	if t.Cover, err = embed("cover", t.Cover); err != nil {
		return t, err
	}
	if t.Middle, err = embed("middle", t.Middle); err != nil {
		return t, err
	}
	if t.Ending, err = embed("ending", t.Ending); err != nil {
		return t, err
	}
	return t, nil
}
