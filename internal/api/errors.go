package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response. Message is the server's {"error": ...}
// text, or the status text when the body carried none.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Message returns the text to show a user: the server message for API
// errors, the error string otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// IsUnauthorized reports a 401 from the server.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsNotFound reports a 404 from the server.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func hasStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type errorBody struct {
	Error string `json:"error"`
}
