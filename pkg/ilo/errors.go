package ilo

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoHealthSummary is returned when the system resource carries no
// aggregate health block (iLO firmware too old, or not an HPE server).
var ErrNoHealthSummary = errors.New("iLO returned no health summary")

// StatusError is returned for non-2xx Redfish responses.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// IsAuth reports whether the iLO rejected the credentials.
func (e *StatusError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500
}

// IsAuthError reports whether err wraps an authentication failure.
func IsAuthError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.IsAuth()
}
