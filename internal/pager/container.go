package pager

import (
	"newsdeck/internal/content"
	"newsdeck/internal/domain"
)

// Failure is an inline, dismissible fetch error shown in the container.
type Failure struct {
	Page      int
	Err       error
	Dismissed bool
}

// Container is the content region. Only the Loader writes to it; every
// write replaces its children wholesale.
type Container struct {
	doc       *content.Document
	fragments []domain.Fragment
	failure   *Failure
	version   int
}

// Swap replaces the contents with doc and returns freshly rebuilt copies of
// its inline fragments. Copies are new values on every swap; nothing from a
// previous page survives.
func (c *Container) Swap(doc *content.Document) []domain.Fragment {
	c.doc = doc
	c.failure = nil
	c.fragments = rebuildFragments(doc.Fragments)
	c.version++
	return c.fragments
}

// Fail replaces the contents with an inline error for page
func (c *Container) Fail(page int, err error) {
	c.doc = nil
	c.fragments = nil
	c.failure = &Failure{Page: page, Err: err}
	c.version++
}

// Dismiss hides the inline error, reporting whether there was one
func (c *Container) Dismiss() bool {
	if c.failure == nil || c.failure.Dismissed {
		return false
	}
	c.failure.Dismissed = true
	c.version++
	return true
}

// Document returns the displayed document, nil before the first swap or
// after a failure
func (c *Container) Document() *content.Document { return c.doc }

// Fragments returns the fragments mounted by the last swap
func (c *Container) Fragments() []domain.Fragment { return c.fragments }

// Failure returns the inline error, if any
func (c *Container) Failure() *Failure { return c.failure }

// Version increments on every write
func (c *Container) Version() int { return c.version }

func rebuildFragments(src []domain.Fragment) []domain.Fragment {
	if len(src) == 0 {
		return nil
	}
	out := make([]domain.Fragment, len(src))
	copy(out, src)
	return out
}
