package port

import (
	"errors"
	"fmt"
)

// Sentinel errors used across ports.
var (
	ErrNotFound    = errors.New("user not found")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// UpstreamError is any other non-success upstream response. The status code
// is kept for logging but is never leaked to API clients.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Status)
}
