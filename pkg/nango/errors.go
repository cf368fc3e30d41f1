package nango

import (
	"errors"
	"fmt"
)

// FetchErrorKind classifies why a token fetch failed
type FetchErrorKind int

const (
	// KindTransport is a network-level failure; safe to retry externally.
	KindTransport FetchErrorKind = iota + 1
	// KindHTTPStatus means the broker answered with a non-2xx status.
	KindHTTPStatus
	// KindDecode means the response envelope is not the expected nested document.
	KindDecode
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching on the kind of a *FetchError
var (
	ErrTransport  = errors.New("nango transport error")
	ErrHTTPStatus = errors.New("nango http status error")
	ErrDecode     = errors.New("nango decode error")
)

// FetchError is returned by FetchToken. StatusCode is set only for KindHTTPStatus.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("nango returned status %d", e.StatusCode)
	case KindTransport:
		return fmt.Sprintf("nango request failed: %v", e.Err)
	default:
		return fmt.Sprintf("failed to decode nango response: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for e.Kind
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrHTTPStatus:
		return e.Kind == KindHTTPStatus
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

func transportError(err error) *FetchError {
	return &FetchError{Kind: KindTransport, Err: err}
}

func statusError(code int) *FetchError {
	return &FetchError{Kind: KindHTTPStatus, StatusCode: code}
}

func decodeError(format string, args ...any) *FetchError {
	return &FetchError{Kind: KindDecode, Err: fmt.Errorf(format, args...)}
}
