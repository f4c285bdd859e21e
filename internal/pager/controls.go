package pager

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Affordance is an actionable part of a control
type Affordance int

const (
	AffordanceNone Affordance = iota
	AffordancePrev
	AffordanceNext
)

// Mount is a place a control is drawn. Its origin tags every navigation
// started from it.
type Mount struct {
	Name   string
	Origin Origin
}

// Default mounts above and below the content
var (
	MountTop    = Mount{Name: "top", Origin: OriginPrimary}
	MountBottom = Mount{Name: "bottom", Origin: OriginSecondary}
)

// Zone is a horizontal cell range of a painted control
type Zone struct {
	Start, End int // [Start, End)
	Affordance Affordance
}

// View is a painted control
type View struct {
	Text  string
	Zones []Zone
}

// Control is a navigation widget derived entirely from State
type Control struct {
	Mount       Mount
	State       State
	PrevEnabled bool
	NextEnabled bool
	Label       string
	View        View
}

// At returns the affordance under cell x, if enabled
func (c Control) At(x int) Affordance {
	for _, z := range c.View.Zones {
		if x >= z.Start && x < z.End {
			if c.Enabled(z.Affordance) {
				return z.Affordance
			}
			return AffordanceNone
		}
	}
	return AffordanceNone
}

// Enabled reports whether an affordance can be used
func (c Control) Enabled(a Affordance) bool {
	switch a {
	case AffordancePrev:
		return c.PrevEnabled
	case AffordanceNext:
		return c.NextEnabled
	default:
		return false
	}
}

// Painter draws a control
type Painter interface {
	Paint(Control) View
}

// PainterFunc adapts a function to Painter
type PainterFunc func(Control) View

func (f PainterFunc) Paint(c Control) View { return f(c) }

// Plain button texts
const (
	PrevText = "← Prev"
	NextText = "Next →"
)

// PlainPainter draws "← Prev  Page C of T  Next →" without styling
var PlainPainter = PainterFunc(func(c Control) View {
	const gap = "  "
	text := PrevText + gap + c.Label + gap + NextText
	prevEnd := len([]rune(PrevText))
	nextStart := len([]rune(text)) - len([]rune(NextText))
	return View{
		Text: text,
		Zones: []Zone{
			{Start: 0, End: prevEnd, Affordance: AffordancePrev},
			{Start: nextStart, End: nextStart + len([]rune(NextText)), Affordance: AffordanceNext},
		},
	}
})

// Renderer rebuilds every control instance on each state change. Instances
// hold no state of their own, so they cannot drift apart.
type Renderer struct {
	mounts   []Mount
	painter  Painter
	controls []Control
	renders  int
}

// NewRenderer creates a renderer for mounts
func NewRenderer(painter Painter, mounts ...Mount) *Renderer {
	if painter == nil {
		painter = PlainPainter
	}
	return &Renderer{mounts: mounts, painter: painter}
}

// OnChange re-renders every mount
func (r *Renderer) OnChange(c Change) tea.Cmd {
	r.Render(c.State)
	return nil
}

// Render discards all controls and builds new ones from state
func (r *Renderer) Render(state State) {
	controls := make([]Control, 0, len(r.mounts))
	for _, m := range r.mounts {
		c := Control{
			Mount:       m,
			State:       state,
			PrevEnabled: state.Current > 1,
			NextEnabled: state.Current < state.Total,
			Label:       fmt.Sprintf("Page %d of %d", state.Current, state.Total),
		}
		c.View = r.painter.Paint(c)
		controls = append(controls, c)
	}
	r.controls = controls
	r.renders++
}

// Controls returns the rendered instances in mount order
func (r *Renderer) Controls() []Control { return r.controls }

// Control returns the instance for origin
func (r *Renderer) Control(origin Origin) (Control, bool) {
	for _, c := range r.controls {
		if c.Mount.Origin == origin {
			return c, true
		}
	}
	return Control{}, false
}

// Renders counts completed renders
func (r *Renderer) Renders() int { return r.renders }
