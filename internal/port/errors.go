package port

import (
	"errors"
	"fmt"
)

// Sentinel errors used across ports.
var (
	ErrNoCredential = errors.New("no credential configured")
	ErrUnauthorized = errors.New("credential invalid or expired")
	ErrKeyNotFound  = errors.New("key not found")
)

// APIError is a remote API failure carrying an HTTP-like status. It is the
// only failure shape the engine sees from the GitHub port; no call in the
// refresh pipeline panics or aborts the cycle on its own.
type APIError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("github: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("github: %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsAuthFailure reports whether err is a remote 401/403, meaning the stored
// credential should be discarded.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return errors.Is(err, ErrUnauthorized)
}
