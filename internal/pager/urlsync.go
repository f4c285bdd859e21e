package pager

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultPageParam is the query parameter carrying the page number
const DefaultPageParam = "page"

// PageFromURL reads a page number from u the way a browser's parseInt
// would: leading digits count ("3abc" is 3), values too large for an int
// become math.MaxInt so the store clamps them to the last page. Anything
// else, including absence, is page 1.
func PageFromURL(u *url.URL, param string) int {
	v := strings.TrimLeft(u.Query().Get(param), " \t\n\r")
	neg := false
	if v != "" && (v[0] == '+' || v[0] == '-') {
		neg = v[0] == '-'
		v = v[1:]
	}
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == 0 || neg {
		return 1
	}

	n, err := strconv.Atoi(v[:end])
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// WithPage returns a copy of u reflecting page. Page 1 drops the parameter
// so the first page keeps the clean root URL.
func WithPage(u *url.URL, param string, page int) *url.URL {
	out := cloneURL(u)
	q := out.Query()
	if page <= 1 {
		q.Del(param)
	} else {
		q.Set(param, strconv.Itoa(page))
	}
	out.RawQuery = q.Encode()
	return out
}

// URLSync keeps the history stack in step with the store and turns
// back/forward moves into navigations.
type URLSync struct {
	history *History
	param   string
	store   *Store
}

// NewURLSync creates a synchronizer over history
func NewURLSync(history *History, param string) *URLSync {
	if param == "" {
		param = DefaultPageParam
	}
	return &URLSync{history: history, param: param}
}

// Bind attaches the store used for history navigations
func (s *URLSync) Bind(store *Store) { s.store = store }

// History returns the underlying stack
func (s *URLSync) History() *History { return s.history }

// Location returns the address-bar URL
func (s *URLSync) Location() *url.URL { return s.history.Current() }

// InitialPage reads the requested page from the starting URL
func (s *URLSync) InitialPage() int {
	return PageFromURL(s.history.Current(), s.param)
}

// OnChange writes the new page into the history. Direct use of a control
// pushes an entry; startup and history moves replace the current one since
// the stack already holds them.
func (s *URLSync) OnChange(c Change) tea.Cmd {
	if c.Reload {
		return nil
	}
	u := WithPage(s.history.Current(), s.param, c.State.Current)
	if c.Origin.IsUser() {
		s.history.Push(u)
	} else {
		s.history.Replace(u)
	}
	return nil
}

// Back steps back through history
func (s *URLSync) Back() tea.Cmd {
	u, ok := s.history.Back()
	if !ok {
		return nil
	}
	return s.popState(u)
}

// Forward steps forward through history
func (s *URLSync) Forward() tea.Cmd {
	u, ok := s.history.Forward()
	if !ok {
		return nil
	}
	return s.popState(u)
}

// popState navigates to the page named by the entry now under the cursor
func (s *URLSync) popState(u *url.URL) tea.Cmd {
	before := s.store.Generation()
	state, cmd := s.store.Goto(PageFromURL(u, s.param), OriginHistory)
	if s.store.Generation() == before {
		// No navigation happened; still normalize an out-of-range entry.
		s.history.Replace(WithPage(u, s.param, state.Current))
	}
	return cmd
}
