package nango

import (
	"encoding/json"
	"time"
	"unicode/utf8"

	"golang.org/x/oauth2"
)

// Token is the OAuth2 token stored by Nango for a connection.
// ExpiresIn is nil when the broker did not report an expiry.
type Token struct {
	TokenType   string
	AccessToken string
	Scope       string
	ExpiresIn   *int64
}

// TokenFromRaw builds a Token from the credentials.raw payload. Missing or
// mistyped fields fall back to "" (strings) or nil (expires_in); it never fails.
// expires_in must be an integer: json.Number or a Go int. A float64, as produced
// by decoding without UseNumber, is not one and yields nil.
func TokenFromRaw(raw map[string]any) *Token {
	return &Token{
		TokenType:   stringField(raw, "token_type"),
		AccessToken: stringField(raw, "access_token"),
		Scope:       stringField(raw, "scope"),
		ExpiresIn:   intField(raw, "expires_in"),
	}
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func intField(raw map[string]any, key string) *int64 {
	switch v := raw[key].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil
		}
		return &n
	case int64:
		return &v
	case int:
		n := int64(v)
		return &n
	}
	return nil
}

// Scopes derives the granted scope set. It is recomputed on every call.
func (t *Token) Scopes() ScopeSet {
	return ParseScopes(t.Scope)
}

// ExpiresAfter returns the lifetime reported by the broker, if any
func (t *Token) ExpiresAfter() (time.Duration, bool) {
	if t.ExpiresIn == nil {
		return 0, false
	}
	return time.Duration(*t.ExpiresIn) * time.Second, true
}

// OAuth2 converts the token for use with golang.org/x/oauth2. Expiry is
// counted from issuedAt and left zero (never expires) when unknown.
func (t *Token) OAuth2(issuedAt time.Time) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
	}
	if d, ok := t.ExpiresAfter(); ok {
		tok.ExpiresIn = int64(d / time.Second)
		tok.Expiry = issuedAt.Add(d)
	}
	return tok.WithExtra(map[string]any{"scope": t.Scope})
}

// MaskSecret keeps the first and last four characters of s
func MaskSecret(s string) string {
	if utf8.RuneCountInString(s) <= 8 {
		return "********"
	}
	r := []rune(s)
	return string(r[:4]) + "…" + string(r[len(r)-4:])
}
