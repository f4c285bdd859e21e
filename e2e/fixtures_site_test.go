//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// SiteOption configures a generated site
type SiteOption func(*siteOptions)

type siteOptions struct {
	manifest bool
}

// WithManifest also writes posts/page-count.json
func WithManifest() SiteOption {
	return func(o *siteOptions) { o.manifest = true }
}

// CreateSite writes pages 1..pages under workspace/site/posts
func (tf *TUITestFramework) CreateSite(pages int, options ...SiteOption) (string, error) {
	var opts siteOptions
	for _, o := range options {
		o(&opts)
	}

	root := filepath.Join(tf.workspace, "site")
	posts := filepath.Join(root, "posts")
	if err := os.MkdirAll(posts, 0755); err != nil {
		return "", err
	}

	for n := 1; n <= pages; n++ {
		html := fmt.Sprintf("<article><h2>Headline %d</h2><p>Story number %d.</p></article>", n, n)
		if err := os.WriteFile(filepath.Join(posts, fmt.Sprintf("page%d.html", n)), []byte(html), 0644); err != nil {
			return "", err
		}
	}

	if opts.manifest {
		data := fmt.Sprintf(`{"total_pages": %d}`, pages)
		if err := os.WriteFile(filepath.Join(posts, "page-count.json"), []byte(data), 0644); err != nil {
			return "", err
		}
	}

	return root, nil
}
