package nango

import (
	"maps"
	"slices"
	"strings"
)

// X (Twitter) OAuth2 scopes
const (
	ScopeTweetRead     = "tweet.read"
	ScopeTweetWrite    = "tweet.write"
	ScopeUsersRead     = "users.read"
	ScopeOfflineAccess = "offline.access"
)

// ScopeSet is an unordered set of scope identifiers
type ScopeSet map[string]struct{}

// defaultRequiredScopes is read-only; DefaultRequiredScopes hands out copies.
var defaultRequiredScopes = NewScopeSet(
	ScopeTweetRead,
	ScopeUsersRead,
	ScopeOfflineAccess,
	ScopeTweetWrite,
)

// DefaultRequiredScopes returns the minimum scopes a connection is expected to carry.
// It is reference data only; nothing rejects a token for lacking them.
func DefaultRequiredScopes() ScopeSet {
	return maps.Clone(defaultRequiredScopes)
}

// NewScopeSet builds a set from the given identifiers, dropping empty ones
func NewScopeSet(scopes ...string) ScopeSet {
	set := make(ScopeSet, len(scopes))
	for _, s := range scopes {
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

// ParseScopes splits a space-delimited scope string on any whitespace run
func ParseScopes(scope string) ScopeSet {
	return NewScopeSet(strings.Fields(scope)...)
}

// Has reports whether scope is in the set
func (s ScopeSet) Has(scope string) bool {
	_, ok := s[scope]
	return ok
}

// Len returns the number of scopes
func (s ScopeSet) Len() int {
	return len(s)
}

// Sorted returns the scopes in lexical order
func (s ScopeSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Missing returns the scopes in required that are not in s, sorted
func (s ScopeSet) Missing(required ScopeSet) []string {
	var missing []string
	for scope := range required {
		if !s.Has(scope) {
			missing = append(missing, scope)
		}
	}
	slices.Sort(missing)
	return missing
}

// Equal reports whether both sets hold the same scopes
func (s ScopeSet) Equal(other ScopeSet) bool {
	if len(s) != len(other) {
		return false
	}
	for scope := range s {
		if !other.Has(scope) {
			return false
		}
	}
	return true
}

func (s ScopeSet) String() string {
	return strings.Join(s.Sorted(), " ")
}
