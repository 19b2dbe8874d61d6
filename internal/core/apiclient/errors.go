package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why a commerce API call did not succeed.
type Kind string

const (
	// KindNetwork means the request never produced an HTTP response (DNS, refused, timeout).
	KindNetwork Kind = "network"
	// KindUnauthorized means the API answered 401 or 403.
	KindUnauthorized Kind = "unauthorized"
	// KindRejected means the API understood the request and refused it (4xx or success=false).
	KindRejected Kind = "rejected"
	// KindNotFound means the addressed resource does not exist.
	KindNotFound Kind = "not_found"
	// KindServer means a 5xx status or a body that could not be understood.
	KindServer Kind = "server"
)

// Error is the normalized failure of a single API call.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("commerce api %s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("commerce api %s error (%d): %s", e.Kind, e.Status, e.Message)
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, or "" otherwise.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= http.StatusInternalServerError:
		return KindServer
	default:
		return KindRejected
	}
}
