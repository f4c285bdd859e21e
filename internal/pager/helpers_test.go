package pager

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"newsdeck/internal/domain"
	"newsdeck/internal/eventbus"
	"newsdeck/internal/source"
)

// fakeSource serves pages 1..total with one inline script each.
type fakeSource struct {
	mu          sync.Mutex
	total       int
	manifest    int
	manifestErr error
	probeErrAt  int
	failing     map[int]bool
	probes      []int
	fetches     []int
}

func (f *fakeSource) Probe(_ context.Context, n int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probes = append(f.probes, n)
	if n == f.probeErrAt {
		return false, errors.New("connection reset")
	}
	return n <= f.total, nil
}

func (f *fakeSource) Fetch(_ context.Context, n int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, n)
	if f.failing[n] {
		return nil, &source.FetchError{Page: n, StatusCode: 503, Class: source.ErrorClassServer}
	}
	return []byte(fmt.Sprintf("<h2>Page %d</h2><p>story</p><script>mount(%d)</script>", n, n)), nil
}

func (f *fakeSource) Manifest(context.Context) (int, error) {
	if f.manifestErr != nil {
		return 0, f.manifestErr
	}
	if f.manifest == 0 {
		return 0, source.ErrNoManifest
	}
	return f.manifest, nil
}

func (f *fakeSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetches)
}

func (f *fakeSource) setFailing(page int, failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing == nil {
		f.failing = map[int]bool{}
	}
	f.failing[page] = failing
}

// eventLog records bus events and scroll resets in one timeline.
type eventLog struct {
	mu      sync.Mutex
	entries []string
	events  []domain.DomainEvent
}

func (l *eventLog) Publish(e eventbus.DomainEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	switch ev := e.(type) {
	case eventbus.ContentUpdatedEvent:
		l.entries = append(l.entries, fmt.Sprintf("content:%d", ev.Page))
	case eventbus.NavigationChangedEvent:
		l.entries = append(l.entries, fmt.Sprintf("nav:%d/%d:%s", ev.Current, ev.Total, ev.Origin))
	case eventbus.FetchFailedEvent:
		l.entries = append(l.entries, fmt.Sprintf("failed:%d", ev.Page))
	case eventbus.DiscoveryCompletedEvent:
		l.entries = append(l.entries, fmt.Sprintf("discovered:%d", ev.Total))
	}
}

func (l *eventLog) GotoTop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, "scroll:top")
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func (l *eventLog) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.events = nil
}

// fragmentRecorder records what the loader asked to re-run.
type fragmentRecorder struct {
	runs [][]domain.Fragment
}

func (r *fragmentRecorder) Run(_ int, frags []domain.Fragment) {
	r.runs = append(r.runs, frags)
}

// collect runs cmd, expanding batches, and returns the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump feeds every message produced by cmd back into the controller until
// nothing is left, like the Bubble Tea event loop would.
func pump(c *Controller, cmd tea.Cmd) {
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		_, next := c.Update(msg)
		queue = append(queue, collect(next)...)
	}
}

func loadedMsgs(msgs []tea.Msg) []LoadedMsg {
	var out []LoadedMsg
	for _, m := range msgs {
		if lm, ok := m.(LoadedMsg); ok {
			out = append(out, lm)
		}
	}
	return out
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

type harness struct {
	ctrl *Controller
	src  *fakeSource
	log  *eventLog
	frag *fragmentRecorder
}

// newHarness starts a controller at startURL over a site of total pages
// and runs discovery plus the initial load.
func newHarness(t *testing.T, total int, startURL string) *harness {
	t.Helper()
	h := &harness{
		src:  &fakeSource{total: total},
		log:  &eventLog{},
		frag: &fragmentRecorder{},
	}
	h.ctrl = New(context.Background(), Options{
		Source:    h.src,
		Start:     mustURL(t, startURL),
		PageParam: "page",
		Discovery: DiscoveryOptions{Limit: 50},
		Runner:    h.frag,
		Bus:       h.log,
	})
	h.ctrl.SetScroller(h.log)
	pump(h.ctrl, h.ctrl.Start())
	require.True(t, h.ctrl.Ready())
	return h
}

func (h *harness) shownPage() int {
	doc := h.ctrl.Container().Document()
	if doc == nil {
		return 0
	}
	return doc.Page
}
