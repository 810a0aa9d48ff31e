package gateway

import (
	"errors"
	"fmt"
)

// RejectionError means the backend processed the request and reported failure.
type RejectionError struct {
	Op     string
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("gateway %s rejected: %s", e.Op, e.Reason)
}

// TransportError covers network failures, timeouts and bodies that are not a
// response envelope.
type TransportError struct {
	Op     string
	Status int // 0 when no response arrived
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gateway %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsRejection reports whether err is a backend rejection and returns its reason.
func IsRejection(err error) (string, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}
