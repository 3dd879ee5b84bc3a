package generation

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a provider failure.
type Kind string

const (
	KindRateLimited      Kind = "rate_limited"
	KindUnauthorized     Kind = "unauthorized"
	KindMalformedRequest Kind = "malformed_request"
	KindUnknownTransport Kind = "unknown_transport"
)

var (
	// ErrMissingAPIKey is returned before any request when no key is configured.
	ErrMissingAPIKey = errors.New("missing OpenRouter API key (set OPENROUTER_API_KEY)")

	// Kind sentinels for errors.Is.
	ErrRateLimited      = &Error{Kind: KindRateLimited}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized}
	ErrMalformedRequest = &Error{Kind: KindMalformedRequest}
	ErrUnknownTransport = &Error{Kind: KindUnknownTransport}
)

// Error is a failed generation request.
type Error struct {
	Kind   Kind
	Status int    // HTTP status, 0 when no response was received
	Body   string // provider response body, if any
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("generation %s (%d): %s", e.Kind, e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("generation %s (%d)", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("generation %s: %v", e.Kind, e.Err)
	}
	return "generation " + string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// UserMessage returns a message suitable for showing to the end user.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindRateLimited:
		return "Too many requests. Take a short break and try again."
	case KindUnauthorized:
		return "The API key is not valid. Check your chatblocks configuration."
	case KindMalformedRequest:
		return "The request was not accepted. Try a clearer image or rephrase the question."
	}
	if e.Status != 0 {
		return fmt.Sprintf("Error %d: could not reach the tutor.", e.Status)
	}
	return "Could not reach the tutor. Check your connection and try again."
}

// errorForStatus maps a non-2xx response to an *Error.
func errorForStatus(status int, body string) *Error {
	kind := KindUnknownTransport
	switch status {
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = KindUnauthorized
	case http.StatusBadRequest:
		kind = KindMalformedRequest
	}
	return &Error{Kind: kind, Status: status, Body: body}
}
