package views

import (
	"github.com/charmbracelet/lipgloss"

	"newsdeck/internal/pager"
)

// FocusMarker is drawn in front of the focused control. Unfocused controls
// get the same width of blanks so hit zones stay put.
const (
	FocusMarker = "▸ "
	focusBlank  = "  "
)

// MarkerWidth is the cell offset of a control's zones on screen
var MarkerWidth = lipgloss.Width(FocusMarker)

// ControlPainter paints pagination controls with lipgloss styles
type ControlPainter struct {
	styles *Styles
}

// NewControlPainter creates a painter
func NewControlPainter(styles *Styles) *ControlPainter {
	return &ControlPainter{styles: styles}
}

// Paint lays out "← Prev  Page C of T  Next →" and records where the
// buttons are
func (p *ControlPainter) Paint(c pager.Control) pager.View {
	const gap = "  "

	prev := p.button(pager.PrevText, c.PrevEnabled)
	next := p.button(pager.NextText, c.NextEnabled)
	label := p.styles.PageLabel.Render(c.Label)

	prevWidth := lipgloss.Width(prev)
	nextStart := prevWidth + 2*len(gap) + lipgloss.Width(label)

	return pager.View{
		Text: prev + gap + label + gap + next,
		Zones: []pager.Zone{
			{Start: 0, End: prevWidth, Affordance: pager.AffordancePrev},
			{Start: nextStart, End: nextStart + lipgloss.Width(next), Affordance: pager.AffordanceNext},
		},
	}
}

func (p *ControlPainter) button(text string, enabled bool) string {
	if enabled {
		return p.styles.Button.Render(text)
	}
	return p.styles.ButtonDisabled.Render(text)
}

// RenderControl draws a painted control with its focus marker
func (r *Renderer) RenderControl(c pager.Control, focused bool) string {
	if focused {
		return r.styles.Focus.Render(FocusMarker) + c.View.Text
	}
	return focusBlank + c.View.Text
}
