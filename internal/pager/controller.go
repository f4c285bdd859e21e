package pager

import (
	"context"
	"net/url"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"newsdeck/internal/eventbus"
	"newsdeck/internal/logging"
	"newsdeck/internal/metrics"
	"newsdeck/internal/source"
)

// Options configures a Controller
type Options struct {
	Source    source.Source
	Start     *url.URL // starting address-bar URL
	PageParam string
	Discovery DiscoveryOptions
	Timeout   time.Duration
	Mounts    []Mount // defaults to MountTop and MountBottom
	Painter   Painter
	Scroller  Scroller
	Runner    FragmentRunner
	Bus       Publisher
}

// Controller wires the store to its listeners and is the only entry point
// for navigation.
type Controller struct {
	ctx      context.Context
	src      source.Source
	opts     DiscoveryOptions
	store    *Store
	loader   *Loader
	urls     *URLSync
	renderer *Renderer
	scroll   *ScrollPolicy
	bus      Publisher
	ready    bool
	log      zerolog.Logger
}

// New builds a controller. Listeners are subscribed loader first, URL
// synchronizer second, renderer third, so the renderer always sees a state
// whose fetch has already been issued.
func New(ctx context.Context, opts Options) *Controller {
	mounts := opts.Mounts
	if len(mounts) == 0 {
		mounts = []Mount{MountTop, MountBottom}
	}

	store := NewStore()
	scroll := NewScrollPolicy(opts.Scroller)
	loader := NewLoader(ctx, opts.Source, store.Generation, scroll)
	loader.SetTimeout(opts.Timeout)
	loader.SetRunner(opts.Runner)
	loader.SetPublisher(opts.Bus)

	urls := NewURLSync(NewHistory(opts.Start), opts.PageParam)
	urls.Bind(store)

	c := &Controller{
		ctx:      ctx,
		src:      opts.Source,
		opts:     opts.Discovery,
		store:    store,
		loader:   loader,
		urls:     urls,
		renderer: NewRenderer(opts.Painter, mounts...),
		scroll:   scroll,
		bus:      opts.Bus,
		log:      logging.NewLogger("pager"),
	}
	c.renderer.Render(store.State())

	store.Subscribe(loader)
	store.Subscribe(urls)
	store.Subscribe(c.renderer)
	store.Subscribe(ListenerFunc(c.announce))

	return c
}

// Start returns the discovery command; its DiscoveredMsg must be passed to
// Update.
func (c *Controller) Start() tea.Cmd {
	return DiscoverCmd(c.ctx, c.src, c.opts)
}

// Update consumes the controller's own messages
func (c *Controller) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case DiscoveredMsg:
		return true, c.init(msg)
	case LoadedMsg:
		return true, c.loader.Apply(msg)
	case ScrollSettledMsg:
		return true, c.scroll.Settle(msg)
	}
	return false, nil
}

func (c *Controller) init(msg DiscoveredMsg) tea.Cmd {
	c.ready = true
	c.publish(eventbus.DiscoveryCompletedEvent{Total: msg.Total, FromManifest: msg.FromManifest})
	_, cmd := c.store.Init(msg.Total, c.urls.InitialPage())
	return cmd
}

// Goto navigates to page (clamped)
func (c *Controller) Goto(page int, origin Origin) tea.Cmd {
	_, cmd := c.store.Goto(page, origin)
	return cmd
}

// Next navigates forward
func (c *Controller) Next(origin Origin) tea.Cmd {
	_, cmd := c.store.Next(origin)
	return cmd
}

// Prev navigates back
func (c *Controller) Prev(origin Origin) tea.Cmd {
	_, cmd := c.store.Prev(origin)
	return cmd
}

// Activate handles use of an affordance on the control tagged origin.
// Disabled affordances do nothing.
func (c *Controller) Activate(origin Origin, a Affordance) tea.Cmd {
	ctrl, ok := c.renderer.Control(origin)
	if !ok || !ctrl.Enabled(a) {
		return nil
	}
	switch a {
	case AffordancePrev:
		return c.Prev(origin)
	case AffordanceNext:
		return c.Next(origin)
	}
	return nil
}

// Back moves back through history
func (c *Controller) Back() tea.Cmd { return c.urls.Back() }

// Forward moves forward through history
func (c *Controller) Forward() tea.Cmd { return c.urls.Forward() }

// Reload fetches the current page again
func (c *Controller) Reload() tea.Cmd {
	if !c.ready {
		return nil
	}
	return c.store.Reload(OriginPrimary)
}

// DismissError hides an inline fetch error
func (c *Controller) DismissError() bool { return c.loader.Container().Dismiss() }

// Drawn tells the scroll policy the current content has been rendered
func (c *Controller) Drawn() { c.scroll.Drawn() }

// SetScroller sets the scroll target used by the scroll policy
func (c *Controller) SetScroller(s Scroller) { c.scroll.SetScroller(s) }

// State returns the navigation state
func (c *Controller) State() State { return c.store.State() }

// Ready reports whether discovery has finished
func (c *Controller) Ready() bool { return c.ready }

// Loading reports whether the current page is still being fetched
func (c *Controller) Loading() bool { return c.loader.Loading() }

// Controls returns the rendered control instances
func (c *Controller) Controls() []Control { return c.renderer.Controls() }

// Control returns the control instance for origin
func (c *Controller) Control(origin Origin) (Control, bool) { return c.renderer.Control(origin) }

// Container returns the content region
func (c *Controller) Container() *Container { return c.loader.Container() }

// Location returns the address-bar URL
func (c *Controller) Location() *url.URL { return c.urls.Location() }

// History returns the session history
func (c *Controller) History() *History { return c.urls.History() }

// Generation returns the newest navigation token
func (c *Controller) Generation() uint64 { return c.store.Generation() }

// announce runs last for every change
func (c *Controller) announce(ch Change) tea.Cmd {
	if ch.Reload {
		return nil
	}
	metrics.Navigations.WithLabelValues(string(ch.Origin)).Inc()
	c.log.Info().
		Int("page", ch.State.Current).
		Int("total", ch.State.Total).
		Str("origin", string(ch.Origin)).
		Uint64("token", ch.Token).
		Msg("navigation")
	c.publish(eventbus.NavigationChangedEvent{Current: ch.State.Current, Total: ch.State.Total, Origin: ch.Origin})
	return nil
}

func (c *Controller) publish(e eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}
