package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"newsdeck/internal/logging"
)

// maxPageBytes bounds a single page body.
const maxPageBytes = 8 << 20

// HTTPSource reads pages from a static site over HTTP.
type HTTPSource struct {
	client   *http.Client
	base     *url.URL
	opts     Options
	maxBytes int64
	log      zerolog.Logger
}

// NewHTTPSource creates a source resolving page paths against base the way
// a browser resolves relative links from the document URL. A nil client
// gets one with opts.Timeout.
func NewHTTPSource(base *url.URL, opts Options, client *http.Client) *HTTPSource {
	opts = opts.withDefaults()
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPSource{
		client:   client,
		base:     base,
		opts:     opts,
		maxBytes: maxPageBytes,
		log:      logging.NewLogger("source.http"),
	}
}

// PageURL returns the absolute URL of a page.
func (s *HTTPSource) PageURL(page int) string {
	return s.resolve(s.opts.PagePath(page))
}

func (s *HTTPSource) resolve(path string) string {
	return s.base.ResolveReference(&url.URL{Path: path}).String()
}

// Probe issues a HEAD request for the page.
func (s *HTTPSource) Probe(ctx context.Context, page int) (bool, error) {
	resp, err := s.do(ctx, http.MethodHead, s.PageURL(page))
	if err != nil {
		return false, &FetchError{Page: page, Class: ErrorClassNetwork, Err: err}
	}
	resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case classifyStatus(resp.StatusCode) == ErrorClassNotFound:
		return false, nil
	default:
		return false, &FetchError{Page: page, StatusCode: resp.StatusCode, Class: classifyStatus(resp.StatusCode)}
	}
}

// Fetch downloads a page body.
func (s *HTTPSource) Fetch(ctx context.Context, page int) ([]byte, error) {
	target := s.PageURL(page)
	resp, err := s.do(ctx, http.MethodGet, target)
	if err != nil {
		return nil, &FetchError{Page: page, Class: ErrorClassNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{Page: page, StatusCode: resp.StatusCode, Class: classifyStatus(resp.StatusCode)}
	}

	// One byte past the bound tells an oversized page from one that fits
	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, &FetchError{Page: page, Class: ErrorClassNetwork, Err: err}
	}
	if int64(len(body)) > s.maxBytes {
		return nil, &FetchError{
			Page:  page,
			Class: ErrorClassClient,
			Err:   fmt.Errorf("%w: more than %d bytes", ErrPageTooLarge, s.maxBytes),
		}
	}

	s.log.Debug().Int("page", page).Str("url", target).Int("bytes", len(body)).Msg("page fetched")
	return body, nil
}

// Manifest reads the page count manifest.
func (s *HTTPSource) Manifest(ctx context.Context) (int, error) {
	resp, err := s.do(ctx, http.MethodGet, s.resolve(s.opts.Manifest))
	if err != nil {
		return 0, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if classifyStatus(resp.StatusCode) == ErrorClassNotFound {
		return 0, ErrNoManifest
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("fetch manifest: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return 0, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}

func (s *HTTPSource) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")
	return s.client.Do(req)
}
