package nango

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopesWhitespaceVariations(t *testing.T) {
	want := NewScopeSet("tweet.read", "users.read")

	for _, scope := range []string{
		"tweet.read users.read",
		"tweet.read   users.read",
		"tweet.read\tusers.read",
		"  users.read \n tweet.read  ",
		"tweet.read users.read tweet.read",
	} {
		tok := &Token{Scope: scope}
		assert.True(t, tok.Scopes().Equal(want), "scope %q", scope)
	}
}

func TestScopesIdempotent(t *testing.T) {
	tok := &Token{Scope: "tweet.read users.read offline.access"}

	first := tok.Scopes()
	second := tok.Scopes()
	assert.Equal(t, first, second)

	// sets are fresh values
	delete(first, "tweet.read")
	assert.True(t, tok.Scopes().Has("tweet.read"))
}

func TestScopesEmpty(t *testing.T) {
	assert.Equal(t, 0, (&Token{}).Scopes().Len())
	assert.Equal(t, 0, (&Token{Scope: " \t "}).Scopes().Len())
}

func TestDefaultRequiredScopes(t *testing.T) {
	required := DefaultRequiredScopes()
	assert.Equal(t, []string{"offline.access", "tweet.read", "tweet.write", "users.read"}, required.Sorted())

	delete(required, ScopeTweetWrite)
	assert.True(t, DefaultRequiredScopes().Has(ScopeTweetWrite))
}

func TestScopeSetMissing(t *testing.T) {
	granted := ParseScopes("tweet.read users.read")

	assert.Equal(t, []string{"offline.access", "tweet.write"}, granted.Missing(DefaultRequiredScopes()))
	assert.Empty(t, DefaultRequiredScopes().Missing(granted))
	assert.Equal(t, "tweet.read users.read", granted.String())
	assert.False(t, granted.Equal(DefaultRequiredScopes()))
}
