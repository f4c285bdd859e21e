// Package pager is the pagination controller: one state owner (Store) and
// the components that react to its changes in a fixed order.
package pager

import (
	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/internal/domain"
)

// Re-export domain types for convenience
type State = domain.NavigationState
type Origin = domain.Origin

const (
	OriginPrimary   = domain.OriginPrimary
	OriginSecondary = domain.OriginSecondary
	OriginHistory   = domain.OriginHistory
	OriginInit      = domain.OriginInit
)

// Change describes one accepted state transition.
type Change struct {
	State    State
	Previous State
	Origin   Origin
	Token    uint64 // store generation after the change
	Reload   bool   // same page requested again; not a navigation
}

// Listener reacts to state changes and may return follow-up work.
type Listener interface {
	OnChange(Change) tea.Cmd
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(Change) tea.Cmd

func (f ListenerFunc) OnChange(c Change) tea.Cmd { return f(c) }

// Store owns NavigationState. Listeners are notified synchronously, in
// subscription order, on every accepted change.
type Store struct {
	state      State
	generation uint64
	listeners  []Listener
}

// NewStore creates a store at page 1 of 1
func NewStore() *Store {
	return &Store{state: State{Current: 1, Total: 1}}
}

// Clamp bounds page into [1, total]
func Clamp(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Subscribe appends a listener
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// State returns a snapshot of the current state
func (s *Store) State() State { return s.state }

// Current returns the current page
func (s *Store) Current() int { return s.state.Current }

// Total returns the page count
func (s *Store) Total() int { return s.state.Total }

// Generation returns the token of the latest accepted change
func (s *Store) Generation() uint64 { return s.generation }

// Init sets the page count and the starting page. It always notifies, even
// when the resulting state equals the current one, so the first page loads.
func (s *Store) Init(total, requested int) (State, tea.Cmd) {
	if total < 1 {
		total = 1
	}
	return s.commit(State{Current: Clamp(requested, total), Total: total}, OriginInit, false)
}

// Goto moves to page, clamped into range. Asking for the current page is a
// no-op: no generation bump and no notifications.
func (s *Store) Goto(page int, origin Origin) (State, tea.Cmd) {
	target := Clamp(page, s.state.Total)
	if target == s.state.Current {
		return s.state, nil
	}
	return s.commit(State{Current: target, Total: s.state.Total}, origin, false)
}

// Next moves one page forward
func (s *Store) Next(origin Origin) (State, tea.Cmd) {
	return s.Goto(s.state.Current+1, origin)
}

// Prev moves one page back
func (s *Store) Prev(origin Origin) (State, tea.Cmd) {
	return s.Goto(s.state.Current-1, origin)
}

// Reload requests the current page again under a new generation, e.g.
// to retry after a failed fetch.
func (s *Store) Reload(origin Origin) tea.Cmd {
	_, cmd := s.commit(s.state, origin, true)
	return cmd
}

func (s *Store) commit(next State, origin Origin, reload bool) (State, tea.Cmd) {
	change := Change{
		State:    next,
		Previous: s.state,
		Origin:   origin,
		Reload:   reload,
	}
	s.state = next
	s.generation++
	change.Token = s.generation

	cmds := make([]tea.Cmd, 0, len(s.listeners))
	for _, l := range s.listeners {
		cmds = append(cmds, l.OnChange(change))
	}
	return s.state, tea.Batch(cmds...)
}
