package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DirSource reads pages from a site directory.
type DirSource struct {
	fs   afero.Fs
	root string
	opts Options
}

// NewDirSource creates a source rooted at root on fs.
func NewDirSource(fs afero.Fs, root string, opts Options) *DirSource {
	return &DirSource{fs: fs, root: root, opts: opts.withDefaults()}
}

func (s *DirSource) path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// Probe reports whether the page file exists.
func (s *DirSource) Probe(ctx context.Context, page int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	info, err := s.fs.Stat(s.path(s.opts.PagePath(page)))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &FetchError{Page: page, Class: ErrorClassClient, Err: err}
	}
	return info.Mode().IsRegular(), nil
}

// Fetch reads the page file.
func (s *DirSource) Fetch(ctx context.Context, page int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Page: page, Class: ErrorClassNetwork, Err: err}
	}
	data, err := afero.ReadFile(s.fs, s.path(s.opts.PagePath(page)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, &FetchError{Page: page, Class: ErrorClassNotFound, Err: err}
	}
	if err != nil {
		return nil, &FetchError{Page: page, Class: ErrorClassClient, Err: err}
	}
	return data, nil
}

// Manifest reads the page count manifest file.
func (s *DirSource) Manifest(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	data, err := afero.ReadFile(s.fs, s.path(s.opts.Manifest))
	if errors.Is(err, os.ErrNotExist) {
		return 0, ErrNoManifest
	}
	if err != nil {
		return 0, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}
