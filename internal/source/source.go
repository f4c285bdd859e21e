// Package source provides page content sources: a static site served over
// HTTP, or the same layout on a local filesystem.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/afero"
)

// Source addresses content pages by 1-based number.
type Source interface {
	// Probe reports whether a page exists without transferring its body.
	Probe(ctx context.Context, page int) (bool, error)
	// Fetch returns the raw HTML of a page.
	Fetch(ctx context.Context, page int) ([]byte, error)
	// Manifest returns the page count from the site's count manifest,
	// or ErrNoManifest.
	Manifest(ctx context.Context) (int, error)
}

// Options configures path layout and timeouts for a source.
type Options struct {
	PathPattern string // printf pattern with one %d, e.g. "posts/page%d.html"
	Manifest    string // e.g. "posts/page-count.json"
	Timeout     time.Duration
}

// DefaultOptions returns the layout produced by the site generator.
func DefaultOptions() Options {
	return Options{
		PathPattern: "posts/page%d.html",
		Manifest:    "posts/page-count.json",
		Timeout:     15 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.PathPattern == "" {
		o.PathPattern = def.PathPattern
	}
	if o.Manifest == "" {
		o.Manifest = def.Manifest
	}
	if o.Timeout <= 0 {
		o.Timeout = def.Timeout
	}
	return o
}

// PagePath returns the relative path of a page.
func (o Options) PagePath(page int) string {
	return fmt.Sprintf(o.withDefaults().PathPattern, page)
}

// Open picks a source for a location: http(s) URLs are fetched over the
// network, file URLs (or bare paths) are read from fs.
func Open(loc *url.URL, fs afero.Fs, opts Options) (Source, error) {
	switch loc.Scheme {
	case "http", "https":
		return NewHTTPSource(loc, opts, nil), nil
	case "file", "":
		return NewDirSource(fs, loc.Path, opts), nil
	default:
		return nil, fmt.Errorf("unsupported location scheme %q", loc.Scheme)
	}
}

// manifestFile is the JSON layout written by the count command.
type manifestFile struct {
	TotalPages int `json:"total_pages"`
}

// ParseManifest decodes a page count manifest.
func ParseManifest(data []byte) (int, error) {
	var m manifestFile
	if err := json.Unmarshal(data, &m); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if m.TotalPages < 1 {
		return 0, fmt.Errorf("%w: total_pages = %d", ErrInvalidManifest, m.TotalPages)
	}
	return m.TotalPages, nil
}

// EncodeManifest encodes a page count manifest.
func EncodeManifest(total int) ([]byte, error) {
	return json.MarshalIndent(manifestFile{TotalPages: total}, "", "  ")
}
