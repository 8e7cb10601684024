package gateway

import "errors"

var (
	// ErrUnavailable means the backend could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the backend declared the session invalid.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a business-rule rejection reported by the backend, such as
// "invalid code" or "incorrect password". Message is safe to show the user.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}
