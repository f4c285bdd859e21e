package pager

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameDelay is one frame at Bubble Tea's default 60 fps renderer
const frameDelay = time.Second / 60

// maxFrameWaits bounds how many frames a deferred reset waits for the
// swapped content to be drawn before resetting anyway
const maxFrameWaits = 3

// Scroller moves the scrollable region containing the content
type Scroller interface {
	GotoTop()
}

// ScrollerFunc adapts a function to Scroller
type ScrollerFunc func()

func (f ScrollerFunc) GotoTop() { f() }

// ScrollSettledMsg fires one frame after a swap triggered from the
// secondary control
type ScrollSettledMsg struct {
	Token uint64
}

// ScrollPolicy decides when to reset scroll after a content swap.
//
// Swaps from the control below the content keep the current offset until
// the swapped content has been drawn once, then reset. Every other origin
// resets immediately.
// A swap counts as drawn once the view has produced a frame holding it
// and one renderer interval has passed.
type ScrollPolicy struct {
	scroller Scroller
	frame    time.Duration
	pending  uint64
	deferred bool
	drawn    bool
	waits    int
}

// NewScrollPolicy creates a policy; scroller may be set later
func NewScrollPolicy(scroller Scroller) *ScrollPolicy {
	return &ScrollPolicy{scroller: scroller, frame: frameDelay}
}

// SetScroller sets the scroll target
func (p *ScrollPolicy) SetScroller(s Scroller) { p.scroller = s }

// Apply runs after a swap for the navigation tagged (origin, token)
func (p *ScrollPolicy) Apply(origin Origin, token uint64) tea.Cmd {
	if origin == OriginSecondary {
		p.pending = token
		p.deferred = true
		p.drawn = false
		p.waits = 0
		return p.wait(token)
	}

	p.deferred = false
	p.top()
	return nil
}

// Drawn records that a frame containing the swapped content was rendered
func (p *ScrollPolicy) Drawn() {
	if p.deferred {
		p.drawn = true
	}
}

// Settle performs a deferred reset if it still belongs to the latest swap.
// Until the swap has been drawn it waits another frame.
func (p *ScrollPolicy) Settle(msg ScrollSettledMsg) tea.Cmd {
	if !p.deferred || msg.Token != p.pending {
		return nil
	}
	if !p.drawn && p.waits < maxFrameWaits {
		p.waits++
		return p.wait(msg.Token)
	}
	p.deferred = false
	p.top()
	return nil
}

func (p *ScrollPolicy) wait(token uint64) tea.Cmd {
	return tea.Tick(p.frame, func(time.Time) tea.Msg {
		return ScrollSettledMsg{Token: token}
	})
}

// Deferred reports whether a reset is waiting for the next frame
func (p *ScrollPolicy) Deferred() bool { return p.deferred }

func (p *ScrollPolicy) top() {
	if p.scroller != nil {
		p.scroller.GotoTop()
	}
}
