package pager

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"newsdeck/internal/content"
	"newsdeck/internal/domain"
	"newsdeck/internal/eventbus"
	"newsdeck/internal/logging"
	"newsdeck/internal/metrics"
)

// Fetcher returns the raw HTML of a page
type Fetcher interface {
	Fetch(ctx context.Context, page int) ([]byte, error)
}

// FragmentRunner receives the inline fragments of every swapped-in page.
// Fragments inserted through a raw content replacement are inert; the
// runner is where they get re-created.
type FragmentRunner interface {
	Run(page int, fragments []domain.Fragment)
}

// Publisher is the publish half of the event bus
type Publisher interface {
	Publish(event eventbus.DomainEvent)
}

// Request is one page fetch tagged with the generation that issued it
type Request struct {
	Page  int
	Token uint64
}

// LoadedMsg carries a finished fetch back to the event loop
type LoadedMsg struct {
	Request Request
	Origin  Origin
	Doc     *content.Document
	Err     error
	Elapsed time.Duration
}

// Loader fetches pages and applies their results to the Container
type Loader struct {
	ctx       context.Context
	fetcher   Fetcher
	timeout   time.Duration
	latest    func() uint64
	container *Container
	scroll    *ScrollPolicy
	runner    FragmentRunner
	bus       Publisher
	inflight  *Request
	log       zerolog.Logger
}

// NewLoader creates a loader. latest reports the newest issued token; only
// results carrying it are applied.
func NewLoader(ctx context.Context, fetcher Fetcher, latest func() uint64, scroll *ScrollPolicy) *Loader {
	return &Loader{
		ctx:       ctx,
		fetcher:   fetcher,
		timeout:   15 * time.Second,
		latest:    latest,
		container: &Container{},
		scroll:    scroll,
		log:       logging.NewLogger("pager.loader"),
	}
}

// SetTimeout sets the per-fetch timeout
func (l *Loader) SetTimeout(d time.Duration) {
	if d > 0 {
		l.timeout = d
	}
}

// SetRunner sets the fragment runner
func (l *Loader) SetRunner(r FragmentRunner) { l.runner = r }

// SetPublisher sets where content events go
func (l *Loader) SetPublisher(p Publisher) { l.bus = p }

// Container returns the content region
func (l *Loader) Container() *Container { return l.container }

// Loading reports whether the newest request is still in flight
func (l *Loader) Loading() bool { return l.inflight != nil }

// OnChange issues a fetch for the new current page
func (l *Loader) OnChange(c Change) tea.Cmd {
	return l.Load(Request{Page: c.State.Current, Token: c.Token}, c.Origin)
}

// Load starts a fetch without blocking the caller. The returned command
// runs off the event loop and yields a LoadedMsg.
func (l *Loader) Load(req Request, origin Origin) tea.Cmd {
	l.inflight = &req
	l.log.Debug().Int("page", req.Page).Uint64("token", req.Token).Str("origin", string(origin)).Msg("fetch issued")

	ctx, fetcher, timeout := l.ctx, l.fetcher, l.timeout
	return func() tea.Msg {
		start := time.Now()
		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		msg := LoadedMsg{Request: req, Origin: origin}
		raw, err := fetcher.Fetch(fetchCtx, req.Page)
		if err == nil {
			msg.Doc, err = content.Parse(req.Page, raw)
		}
		msg.Err = err
		msg.Elapsed = time.Since(start)
		return msg
	}
}

// Apply commits a finished fetch if it is still the newest one. Stale
// results are dropped without any visible effect.
func (l *Loader) Apply(msg LoadedMsg) tea.Cmd {
	metrics.FetchDuration.Observe(msg.Elapsed.Seconds())

	if msg.Request.Token != l.latest() {
		metrics.StaleResponses.Inc()
		l.log.Debug().
			Int("page", msg.Request.Page).
			Uint64("token", msg.Request.Token).
			Uint64("latest", l.latest()).
			Msg("stale response dropped")
		return nil
	}
	l.inflight = nil

	if msg.Err != nil {
		metrics.PageFetches.WithLabelValues("error").Inc()
		l.log.Warn().Err(msg.Err).Int("page", msg.Request.Page).Msg("page fetch failed")
		l.container.Fail(msg.Request.Page, msg.Err)
		l.publish(eventbus.FetchFailedEvent{Page: msg.Request.Page, Err: msg.Err})
		return nil
	}

	metrics.PageFetches.WithLabelValues("ok").Inc()
	fragments := l.container.Swap(msg.Doc)
	if l.runner != nil && len(fragments) > 0 {
		l.runner.Run(msg.Request.Page, fragments)
	}
	l.publish(eventbus.ContentUpdatedEvent{Page: msg.Request.Page, Fragments: fragments})

	if l.scroll == nil {
		return nil
	}
	return l.scroll.Apply(msg.Origin, msg.Request.Token)
}

func (l *Loader) publish(e eventbus.DomainEvent) {
	if l.bus != nil {
		l.bus.Publish(e)
	}
}
