package gemini

import (
	"errors"
	"net/http"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// StatusError attaches the upstream HTTP status to an SDK error. Its message
// is the SDK's own.
type StatusError struct {
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return http.StatusText(e.StatusCode)
	}
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error { return e.Err }

func (e *StatusError) HTTPStatusCode() int { return e.StatusCode }

func withStatus(err error) error {
	if code, ok := statusOf(err); ok {
		return &StatusError{StatusCode: code, Err: err}
	}
	return err
}

func statusOf(err error) (int, bool) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if code := apiErr.HTTPCode(); code > 0 {
			return code, true
		}
		if st := apiErr.GRPCStatus(); st != nil {
			if code, ok := httpFromGRPC(st.Code()); ok {
				return code, true
			}
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code > 0 {
		return gErr.Code, true
	}

	if st, ok := status.FromError(err); ok {
		return httpFromGRPC(st.Code())
	}
	return 0, false
}

func httpFromGRPC(c codes.Code) (int, bool) {
	switch c {
	case codes.Unauthenticated:
		return http.StatusUnauthorized, true
	case codes.PermissionDenied:
		return http.StatusForbidden, true
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests, true
	case codes.InvalidArgument, codes.FailedPrecondition:
		return http.StatusBadRequest, true
	case codes.NotFound:
		return http.StatusNotFound, true
	case codes.Unavailable:
		return http.StatusServiceUnavailable, true
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout, true
	case codes.Internal:
		return http.StatusInternalServerError, true
	}
	return 0, false
}
