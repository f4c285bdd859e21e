// Package ui is the Bubble Tea front end of the reader.
package ui

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"newsdeck/internal/config"
	"newsdeck/internal/content"
	"newsdeck/internal/eventbus"
	"newsdeck/internal/logging"
	"newsdeck/internal/pager"
	"newsdeck/internal/source"
	"newsdeck/internal/ui/input"
	inputtypes "newsdeck/internal/ui/input/types"
	"newsdeck/internal/ui/views"
)

// Options configures the reader model
type Options struct {
	Config *config.Config
	Source source.Source
	Start  *url.URL
	Bus    eventbus.EventBus
}

// Model represents the UI state
type Model struct {
	ctrl   *pager.Controller
	config *config.Config

	// UI-specific state
	width    int
	height   int
	viewport viewport.Model
	help     help.Model
	keys     KeyMap
	focus    int   // index of the focused control
	rows     []int // viewport line of each control
	body     bodyCache

	status        string
	statusIsError bool
	inPagerMode   bool
	quitting      bool

	// Handlers
	markdown     *content.TermRenderer
	renderer     *views.Renderer
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	runner       *LogRunner

	// Program reference for terminal management
	program *tea.Program
	log     zerolog.Logger
}

type bodyCache struct {
	version int
	width   int
	text    string
	valid   bool
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	styles := views.NewStyles()

	m := &Model{
		config:       cfg,
		viewport:     viewport.New(80, 20),
		help:         help.New(),
		keys:         DefaultKeyMap(),
		markdown:     content.NewTermRenderer(cfg.UI.Style),
		renderer:     views.NewRenderer(styles),
		inputHandler: input.New(),
		helpRenderer: NewHelpRenderer(),
		runner:       NewLogRunner(),
		log:          logging.NewLogger("ui"),
	}

	mounts := []pager.Mount{pager.MountTop}
	if cfg.UI.ShowBottomControl {
		mounts = append(mounts, pager.MountBottom)
	}

	m.ctrl = pager.New(ctx, pager.Options{
		Source:    opts.Source,
		Start:     opts.Start,
		PageParam: cfg.Source.PageParam,
		Discovery: pager.DiscoveryOptions{
			UseManifest: cfg.Source.UseManifest,
			Limit:       cfg.Source.ProbeLimit,
		},
		Timeout:  cfg.Source.Timeout(),
		Mounts:   mounts,
		Painter:  views.NewControlPainter(styles),
		Scroller: pager.ScrollerFunc(m.scrollTop),
		Runner:   m.runner,
		Bus:      opts.Bus,
	})

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.ctrl.Start(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		m.status, m.statusIsError = "", false
		ctx := &input.ModelContext{Controller: m.ctrl}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)
		cmds = append(cmds, cmd)
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case EventMsg:
		m.handleEvent(msg.Event)

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if !m.inPagerMode {
			cmds = append(cmds, tick())
		}

	case helpPagerMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("help pager failed, showing inline help")
			m.help.ShowAll = true
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false
		cmds = append(cmds, tick())

	default:
		if handled, cmd := m.ctrl.Update(msg); handled {
			cmds = append(cmds, cmd)
		} else {
			cmds = append(cmds, m.inputHandler.Update(msg))
		}
	}

	m.layout()
	return m, tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		aff := pager.AffordanceNext
		if a.Direction == "prev" {
			aff = pager.AffordancePrev
		}
		return m.activate(aff)

	case inputtypes.ActivateAction:
		return m.activate(pager.AffordanceNext)

	case inputtypes.HistoryAction:
		if a.Direction == "back" {
			return m.ctrl.Back()
		}
		return m.ctrl.Forward()

	case inputtypes.ScrollAction:
		m.scroll(a.Direction)

	case inputtypes.FocusAction:
		m.cycleFocus()

	case inputtypes.GotoAction:
		return m.ctrl.Goto(a.Page, pager.OriginPrimary)

	case inputtypes.ReloadAction:
		return m.ctrl.Reload()

	case inputtypes.DismissErrorAction:
		m.ctrl.DismissError()

	case inputtypes.StatusAction:
		m.status, m.statusIsError = a.Message, true

	case inputtypes.ToggleHelpAction:
		if m.program != nil {
			return m.fetchHelpPager(m.helpRenderer.RenderHelpContentPlain())
		}
		m.help.ShowAll = !m.help.ShowAll

	case inputtypes.QuitAction:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// activate uses an affordance of the focused control
func (m *Model) activate(a pager.Affordance) tea.Cmd {
	c, ok := m.focused()
	if !ok {
		return nil
	}
	if !c.Enabled(a) {
		if a == pager.AffordanceNext {
			m.status = "Already on the last page"
		} else {
			m.status = "Already on the first page"
		}
		return nil
	}
	return m.ctrl.Activate(c.Mount.Origin, a)
}

func (m *Model) focused() (pager.Control, bool) {
	controls := m.ctrl.Controls()
	if m.focus < 0 || m.focus >= len(controls) {
		return pager.Control{}, false
	}
	return controls[m.focus], true
}

// cycleFocus moves focus to the next control and scrolls it into view
func (m *Model) cycleFocus() {
	n := len(m.ctrl.Controls())
	if n == 0 {
		return
	}
	m.focus = (m.focus + 1) % n
	if m.focus == 0 {
		m.viewport.GotoTop()
	} else {
		m.viewport.GotoBottom()
	}
}

func (m *Model) scroll(direction string) {
	switch direction {
	case "up":
		m.viewport.SetYOffset(m.viewport.YOffset - 1)
	case "down":
		m.viewport.SetYOffset(m.viewport.YOffset + 1)
	case "pageup":
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
	case "pagedown":
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
	case "top":
		m.viewport.GotoTop()
	case "bottom":
		m.viewport.GotoBottom()
	}
}

func (m *Model) scrollTop() {
	m.viewport.GotoTop()
}

// handleMouse dispatches clicks to the control under the pointer
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.SetYOffset(m.viewport.YOffset - 3)
		return nil
	case tea.MouseButtonWheelDown:
		m.viewport.SetYOffset(m.viewport.YOffset + 3)
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	row := msg.Y - views.HeaderLines
	if row < 0 || row >= m.viewport.Height {
		return nil
	}
	line := row + m.viewport.YOffset

	controls := m.ctrl.Controls()
	for i, r := range m.rows {
		if r != line || i >= len(controls) {
			continue
		}
		c := controls[i]
		a := c.At(msg.X - views.MarkerWidth)
		if a == pager.AffordanceNone {
			return nil
		}
		m.focus = i
		return m.ctrl.Activate(c.Mount.Origin, a)
	}
	return nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.FetchFailedEvent:
		m.status, m.statusIsError = fmt.Sprintf("Page %d failed to load", e.Page), true
	case eventbus.DiscoveryCompletedEvent:
		how := "probed"
		if e.FromManifest {
			how = "from manifest"
		}
		m.status, m.statusIsError = fmt.Sprintf("%d pages (%s)", e.Total, how), false
	}
}

// layout rebuilds the viewport: top control, content, then any other
// controls below it
func (m *Model) layout() {
	width := m.width
	if width <= 0 {
		width = 80
	}

	footer := views.FooterLines
	if h := lipgloss.Height(m.help.View(m.keys)); h > 1 {
		footer += h - 1
	}
	height := m.height - views.HeaderLines - footer
	if height < 1 {
		height = 1
	}
	m.viewport.Width = width
	m.viewport.Height = height

	body := m.bodyText(width)
	controls := m.ctrl.Controls()
	m.rows = make([]int, len(controls))

	var lines []string
	add := func(block string) {
		lines = append(lines, strings.Split(block, "\n")...)
	}
	for i, c := range controls {
		if i == 1 {
			add("")
			add(body)
			add("")
		}
		m.rows[i] = len(lines)
		add(m.renderer.RenderControl(c, i == m.focus))
	}
	if len(controls) < 2 {
		add("")
		add(body)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// bodyText renders the content region, caching the glamour output per
// container version and width
func (m *Model) bodyText(width int) string {
	c := m.ctrl.Container()
	if f := c.Failure(); f != nil {
		return m.renderer.RenderFailure(f, width)
	}
	doc := c.Document()
	if doc == nil {
		return m.renderer.RenderPlaceholder(m.ctrl.Ready())
	}
	if m.body.valid && m.body.version == c.Version() && m.body.width == width {
		return m.body.text
	}
	m.body = bodyCache{
		version: c.Version(),
		width:   width,
		text:    m.markdown.Render(doc.Markdown, width),
		valid:   true,
	}
	return m.body.text
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Address:       m.ctrl.Location().String(),
		Ready:         m.ctrl.Ready(),
		Loading:       m.ctrl.Loading(),
		LoadingPage:   m.ctrl.State().Current,
		Body:          m.viewport.View(),
		StatusMessage: m.status,
		StatusIsError: m.statusIsError,
		HelpView:      m.help.View(m.keys),
	}
	if doc := m.ctrl.Container().Document(); doc != nil {
		state.PageTitle = doc.Title
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		state.InputPrompt = m.inputHandler.Prompt()
		state.TextInput = ti.View()
	}
	out := m.renderer.Render(state)
	m.ctrl.Drawn()
	return out
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	ops := NewHelpOps(m.program)
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := ops.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// Controller returns the pagination controller
func (m *Model) Controller() *pager.Controller { return m.ctrl }

// Location returns the address-bar URL
func (m *Model) Location() *url.URL { return m.ctrl.Location() }

// Focus returns the index of the focused control
func (m *Model) Focus() int { return m.focus }

// Status returns the status line message
func (m *Model) Status() string { return m.status }

// Fragments counts fragment runs
func (m *Model) Fragments() int { return m.runner.Runs() }
