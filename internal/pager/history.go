package pager

import "net/url"

// History is a session history stack with a cursor, like a browser tab's.
type History struct {
	entries []*url.URL
	index   int
}

// NewHistory starts a history at start
func NewHistory(start *url.URL) *History {
	return &History{entries: []*url.URL{cloneURL(start)}}
}

// Current returns a copy of the entry under the cursor
func (h *History) Current() *url.URL {
	return cloneURL(h.entries[h.index])
}

// Push adds an entry after the cursor, discarding any forward entries
func (h *History) Push(u *url.URL) {
	h.entries = append(h.entries[:h.index+1], cloneURL(u))
	h.index++
}

// Replace overwrites the entry under the cursor
func (h *History) Replace(u *url.URL) {
	h.entries[h.index] = cloneURL(u)
}

// Back moves the cursor one entry back
func (h *History) Back() (*url.URL, bool) {
	if h.index == 0 {
		return nil, false
	}
	h.index--
	return h.Current(), true
}

// Forward moves the cursor one entry forward
func (h *History) Forward() (*url.URL, bool) {
	if h.index >= len(h.entries)-1 {
		return nil, false
	}
	h.index++
	return h.Current(), true
}

// CanBack reports whether Back would move
func (h *History) CanBack() bool { return h.index > 0 }

// CanForward reports whether Forward would move
func (h *History) CanForward() bool { return h.index < len(h.entries)-1 }

// Len returns the number of entries
func (h *History) Len() int { return len(h.entries) }

// Index returns the cursor position
func (h *History) Index() int { return h.index }

func cloneURL(u *url.URL) *url.URL {
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
