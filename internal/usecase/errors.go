package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind is the closed set of failure classes the chat handler maps to
// HTTP statuses.
type ErrorKind string

const (
	ErrorConfig       ErrorKind = "CONFIG_ERROR"
	ErrorBadRequest   ErrorKind = "BAD_REQUEST"
	ErrorUnauthorized ErrorKind = "UNAUTHORIZED"
	ErrorRateLimited  ErrorKind = "RATE_LIMITED"
	ErrorUnknown      ErrorKind = "UNKNOWN"
)

type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Kind, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Kind, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind ErrorKind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// KindOf reports the kind carried by err, or ErrorUnknown for untyped errors.
func KindOf(err error) ErrorKind {
	var ue *Error
	if errors.As(err, &ue) && ue.Kind != "" {
		return ue.Kind
	}
	return ErrorUnknown
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

// ClassifyUpstream maps a completion-provider failure to an ErrorKind. A
// structured HTTP status is trusted first. Otherwise the root cause's message
// is searched for the provider's known vocabulary, which misfires on any
// unrelated error that happens to contain the same words.
func ClassifyUpstream(err error) ErrorKind {
	if err == nil {
		return ErrorUnknown
	}
	if status, ok := upstreamStatusCode(err); ok {
		switch status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrorUnauthorized
		case http.StatusTooManyRequests:
			return ErrorRateLimited
		}
	}

	msg := rootCause(err).Error()
	switch {
	case strings.Contains(msg, "API key"), strings.Contains(msg, "API_KEY"):
		return ErrorUnauthorized
	case strings.Contains(msg, "quota"), strings.Contains(msg, "rate"):
		return ErrorRateLimited
	}
	return ErrorUnknown
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	code := statusErr.HTTPStatusCode()
	return code, code > 0
}

// rootCause follows the single-error Unwrap chain so that wrapping context
// added by this module never takes part in message matching.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
