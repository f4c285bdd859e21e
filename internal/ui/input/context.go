package input

import (
	"newsdeck/internal/pager"
)

// ModelContext implements the Context interface over the pagination controller
type ModelContext struct {
	Controller *pager.Controller
}

// CurrentPage returns the active page
func (c *ModelContext) CurrentPage() int {
	return c.Controller.State().Current
}

// TotalPages returns the page count
func (c *ModelContext) TotalPages() int {
	return c.Controller.State().Total
}

// Ready reports whether the page count is known
func (c *ModelContext) Ready() bool {
	return c.Controller.Ready()
}

// HasError reports whether an undismissed fetch error is shown
func (c *ModelContext) HasError() bool {
	f := c.Controller.Container().Failure()
	return f != nil && !f.Dismissed
}

// CanBack reports whether history has an older entry
func (c *ModelContext) CanBack() bool {
	return c.Controller.History().CanBack()
}

// CanForward reports whether history has a newer entry
func (c *ModelContext) CanForward() bool {
	return c.Controller.History().CanForward()
}
