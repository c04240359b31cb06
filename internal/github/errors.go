package github

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a failed call to the hosting API, either at the transport level
// (Cause set) or an unexpected HTTP status (StatusCode set).
type APIError struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("github request %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("github request %s: %s", e.URL, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is a 404 from the hosting API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether err is a rate-limit rejection (403 or 429).
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests ||
		(apiErr.StatusCode == http.StatusForbidden && apiErr.Message == "rate limit exceeded")
}
