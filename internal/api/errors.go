package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the backend. Message holds the
// backend-supplied message string verbatim and may be empty when the
// backend returned no parseable error body.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return e.Message
}

// NotFound reports whether the error is a backend 404.
func (e *Error) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Message extracts a user-facing message from an error. Backend-supplied
// messages are returned verbatim; anything else (transport failures,
// message-less backend errors) yields the fallback. No distinction is
// made between network, validation and authorization failures.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
