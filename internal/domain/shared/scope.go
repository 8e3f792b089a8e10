package shared

// Scope identifies one of the two independent order collections.
// Both collections share the same lifecycle and pricing logic; every
// repository and service operation is keyed by a Scope.
type Scope string

const (
	ScopeAlati  Scope = "alati"
	ScopeSub000 Scope = "sub000"
)

// IsValid checks if the scope is one of the known collections
func (s Scope) IsValid() bool {
	switch s {
	case ScopeAlati, ScopeSub000:
		return true
	}
	return false
}

// String returns the string representation of the Scope
func (s Scope) String() string {
	return string(s)
}

// AllScopes returns every known scope
func AllScopes() []Scope {
	return []Scope{ScopeAlati, ScopeSub000}
}
