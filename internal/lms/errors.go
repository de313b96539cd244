package lms

import (
	"errors"
	"fmt"
)

// ErrRemoteUnavailable indicates a transport-level failure reaching the LMS
// (timeout, DNS, connection reset). Retryable once the remote is back.
var ErrRemoteUnavailable = errors.New("lms: remote unreachable")

// APIError is a non-success HTTP response from the LMS.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lms: API error %d on %s", e.StatusCode, e.Endpoint)
}

// IsUnauthorized reports whether the error indicates an expired or invalid
// credential. Callers should prompt re-verification instead of retrying.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsUnavailable reports whether the error is a transport failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}
