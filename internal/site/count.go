// Package site works on a static site directory: counting its content
// pages and serving it over HTTP.
package site

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/spf13/afero"

	"newsdeck/internal/source"
)

var pageFile = regexp.MustCompile(`^page(\d+)\.html$`)

// CountPages returns the highest N among pageN.html files in dir. Gaps are
// not checked.
func CountPages(fs afero.Fs, dir string) (int, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", dir, err)
	}

	highest := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := pageFile.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest, nil
}

// WriteManifest counts the pages of the site at root and writes the count
// manifest next to them. A site with no pages is an error.
func WriteManifest(fs afero.Fs, root string, opts source.Options) (int, error) {
	if opts.PathPattern == "" {
		opts.PathPattern = source.DefaultOptions().PathPattern
	}
	if opts.Manifest == "" {
		opts.Manifest = source.DefaultOptions().Manifest
	}

	pagesDir := filepath.Join(root, filepath.FromSlash(path.Dir(opts.PathPattern)))
	total, err := CountPages(fs, pagesDir)
	if err != nil {
		return 0, err
	}
	if total < 1 {
		return 0, fmt.Errorf("no page files in %s", pagesDir)
	}

	data, err := source.EncodeManifest(total)
	if err != nil {
		return 0, fmt.Errorf("encode manifest: %w", err)
	}

	out := filepath.Join(root, filepath.FromSlash(opts.Manifest))
	if err := fs.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return 0, fmt.Errorf("create manifest directory: %w", err)
	}
	if err := afero.WriteFile(fs, out, append(data, '\n'), 0o644); err != nil {
		return 0, fmt.Errorf("write manifest: %w", err)
	}
	return total, nil
}
