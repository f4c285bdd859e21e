package domain

// Origin identifies what initiated a navigation
type Origin string

// Navigation origins
const (
	OriginPrimary   Origin = "primary"   // control above the content
	OriginSecondary Origin = "secondary" // control below the content
	OriginHistory   Origin = "history"   // back/forward through the history stack
	OriginInit      Origin = "init"      // startup
)

// IsUser reports whether the origin is a direct interaction with a control
func (o Origin) IsUser() bool {
	return o == OriginPrimary || o == OriginSecondary
}

// NavigationState is the authoritative pagination state.
// After initialization 1 <= Current <= Total always holds.
type NavigationState struct {
	Current int
	Total   int
}

// Fragment is an inline executable fragment lifted out of page content
type Fragment struct {
	Kind string // element name, "script"
	Type string // type attribute, empty for classic scripts
	Src  string // src attribute for external scripts
	Body string // inline source
}
