package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTranscript is returned before any request when the text is blank.
	ErrEmptyTranscript = errors.New("transcript text is empty")
	// ErrUnexpectedShape marks a response body the client cannot interpret.
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: backend returned %s", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: backend returned %s (%s)", e.Op, e.Status, e.Body)
}

// IsNotFound reports whether err carries a 404 from the backend.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == 404
}
