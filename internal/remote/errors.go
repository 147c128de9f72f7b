package remote

import (
	"errors"
	"fmt"
)

// ErrMissingTitle indicates the remote post had no usable title.
var ErrMissingTitle = errors.New("remote post has no title")

// StatusError represents a non-2xx response from the remote service
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote server error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("remote server error: HTTP %d: %s", e.StatusCode, e.Body)
}
