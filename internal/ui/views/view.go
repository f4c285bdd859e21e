// Package views renders the reader screen from a ViewState snapshot.
package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"newsdeck/internal/pager"
	"newsdeck/internal/source"
)

// Chrome around the content viewport. FooterLines is the status line plus
// one line of short help; expanded help adds its extra lines.
const (
	HeaderLines = 2
	FooterLines = 2
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	PageTitle     string
	Address       string
	Ready         bool
	Loading       bool
	LoadingPage   int
	Body          string // rendered viewport
	StatusMessage string
	StatusIsError bool
	InputPrompt   string // non-empty while a text mode is active
	TextInput     string
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{styles: styles}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles { return r.styles }

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}
	clip := lipgloss.NewStyle().MaxWidth(width)

	lines := []string{
		clip.Render(r.titleLine(state, width)),
		clip.Render(r.styles.Address.Render(state.Address)),
		state.Body,
		clip.Render(r.statusLine(state)),
		clip.Render(state.HelpView),
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) titleLine(state ViewState, width int) string {
	logo := r.styles.Title.Render("newsdeck")
	if state.PageTitle != "" {
		logo += "  " + r.styles.PageTitle.Render(state.PageTitle)
	}

	indicator := ""
	switch {
	case !state.Ready:
		indicator = fmt.Sprintf("%s Discovering pages", spinnerFrame())
	case state.Loading:
		indicator = fmt.Sprintf("%s Loading page %d", spinnerFrame(), state.LoadingPage)
	}
	if indicator == "" {
		return logo
	}

	right := r.styles.StatusLoading.Render(indicator)
	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) statusLine(state ViewState) string {
	if state.InputPrompt != "" {
		return r.styles.Prompt.Render(state.InputPrompt) + state.TextInput
	}
	if state.StatusMessage == "" {
		return ""
	}
	if state.StatusIsError {
		return r.styles.StatusError.Render(state.StatusMessage)
	}
	return r.styles.Status.Render(state.StatusMessage)
}

// RenderFailure draws the inline error that replaces page content
func (r *Renderer) RenderFailure(f *pager.Failure, width int) string {
	retry := true
	var fe *source.FetchError
	if errors.As(f.Err, &fe) {
		retry = fe.Retryable()
	}

	if f.Dismissed {
		if !retry {
			return r.styles.Dim.Render(fmt.Sprintf("Page %d is unavailable.", f.Page))
		}
		return r.styles.Dim.Render(fmt.Sprintf("Page %d is unavailable. Press r to retry.", f.Page))
	}

	hint := "x dismiss"
	if retry {
		hint = "r retry  " + hint
	}
	msg := fmt.Sprintf("Could not load page %d\n%v\n\n%s", f.Page, f.Err, hint)
	boxWidth := width - 4
	if boxWidth < 20 {
		boxWidth = 20
	}
	return r.styles.ErrorBox.Width(boxWidth).Render(msg)
}

// RenderPlaceholder draws the content region before anything has loaded
func (r *Renderer) RenderPlaceholder(ready bool) string {
	if !ready {
		return r.styles.Dim.Render("Looking for pages...")
	}
	return r.styles.Dim.Render("Loading...")
}

func spinnerFrame() string {
	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinner[int(time.Now().UnixMilli()/80)%len(spinner)]
}
