package canvas

import "fmt"

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// UnexpectedResponseError is returned when a 2xx body does not carry the
// fields the operation needs. Body holds the raw response for logging.
type UnexpectedResponseError struct {
	Op   string
	Body string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape", e.Op)
}
