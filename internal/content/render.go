package content

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// TermRenderer renders markdown for a given terminal width, rebuilding the
// glamour renderer only when the width changes.
type TermRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewTermRenderer creates a renderer using a glamour standard style name
// ("dark", "light", "notty", "ascii").
func NewTermRenderer(style string) *TermRenderer {
	if style == "" {
		style = "dark"
	}
	return &TermRenderer{style: style}
}

// Render renders markdown wrapped to width. Rendering errors fall back to
// the raw markdown.
func (r *TermRenderer) Render(markdown string, width int) string {
	if width < 20 {
		width = 20
	}
	if r.renderer == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return markdown
		}
		r.renderer = tr
		r.width = width
	}

	out, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.Trim(out, "\n")
}
