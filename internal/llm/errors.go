package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a provider failure for the retry policy.
type Kind int

const (
	// KindUnavailable covers network failures and 5xx replies.
	KindUnavailable Kind = iota
	// KindRateLimited is a 429; RetryAfter may say how long to wait.
	KindRateLimited
	// KindInvalidResponse is a reply that is not JSON or breaks the schema.
	KindInvalidResponse
	// KindTruncated is a reply cut off at the token limit.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "truncated"
	default:
		return "unavailable"
	}
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrUnavailable     = &Error{Kind: KindUnavailable}
	ErrRateLimited     = &Error{Kind: KindRateLimited}
	ErrInvalidResponse = &Error{Kind: KindInvalidResponse}
	ErrTruncated       = &Error{Kind: KindTruncated}
)

// Error is a classified provider failure.
type Error struct {
	Kind       Kind
	RetryAfter time.Duration
	// Content is the offending reply for invalid and truncated responses.
	Content json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return "llm: " + e.Kind.String()
	case e.Kind == KindRateLimited && e.RetryAfter > 0:
		return fmt.Sprintf("llm: %s (retry after %s): %v", e.Kind, e.RetryAfter, e.Err)
	default:
		return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Kind == e.Kind
}

// KindOf reports the Kind of err, if it wraps an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// fromStatus classifies a vendor API error by HTTP status. A zero status
// means no HTTP reply arrived.
func fromStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimited, Err: err}
	}
	return &Error{Kind: KindUnavailable, Err: err}
}

func invalid(raw json.RawMessage, format string, args ...any) error {
	return &Error{Kind: KindInvalidResponse, Content: raw, Err: fmt.Errorf(format, args...)}
}
