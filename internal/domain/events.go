package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventNavigationChanged  EventType = "NavigationChanged"
	EventContentUpdated     EventType = "ContentUpdated"
	EventFetchFailed        EventType = "FetchFailed"
	EventDiscoveryCompleted EventType = "DiscoveryCompleted"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// NavigationChangedEvent is emitted after every accepted navigation
type NavigationChangedEvent struct {
	Current int
	Total   int
	Origin  Origin
}

func (e NavigationChangedEvent) Type() EventType { return EventNavigationChanged }

// ContentUpdatedEvent is emitted after the content container has been
// replaced and before the scroll policy runs. Subscribers should re-scan
// the container; its children are always fully replaced.
type ContentUpdatedEvent struct {
	Page      int
	Fragments []Fragment
}

func (e ContentUpdatedEvent) Type() EventType { return EventContentUpdated }

// FetchFailedEvent is emitted when a current (non-stale) page fetch fails
type FetchFailedEvent struct {
	Page int
	Err  error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// DiscoveryCompletedEvent is emitted once the page count is known
type DiscoveryCompletedEvent struct {
	Total        int
	FromManifest bool
}

func (e DiscoveryCompletedEvent) Type() EventType { return EventDiscoveryCompleted }
