package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTransition signals a state-machine misuse, such as
	// completing a visit that is already terminal. Distinct from gate
	// denial so callers can map it to a different response.
	ErrInvalidTransition = errors.New("invalid visit status transition")

	// ErrStoreUnavailable wraps collaborator failures surfaced to callers.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrNotFound = errors.New("not found")
)

// DenyReason classifies why the contribution gate refused a mutation.
type DenyReason string

const (
	DenyReasonTerminalState DenyReason = "terminal-state"
	DenyReasonNotOpenYet    DenyReason = "not-open-yet"
	DenyReasonClosed        DenyReason = "closed"
	DenyReasonNotAuthorized DenyReason = "not-authorized"
)

// GateDeniedError is the structured outcome of a refused gate check.
// OpensAt/ClosedAt are set for the time-based reasons, in the service
// timezone, so callers can render a precise local-time message.
type GateDeniedError struct {
	Reason   DenyReason
	OpensAt  *time.Time
	ClosedAt *time.Time
}

func (e *GateDeniedError) Error() string {
	switch e.Reason {
	case DenyReasonNotOpenYet:
		return fmt.Sprintf("contribution window opens at %s", e.OpensAt.Format("3:04 PM on Jan 2, 2006"))
	case DenyReasonClosed:
		return fmt.Sprintf("contribution window closed at %s", e.ClosedAt.Format("3:04 PM on Jan 2, 2006"))
	case DenyReasonTerminalState:
		return "visit is no longer accepting contributions"
	case DenyReasonNotAuthorized:
		return "not a member of this visit's team"
	}
	return string(e.Reason)
}

// AsGateDenied unwraps err into a GateDeniedError if it is one.
func AsGateDenied(err error) (*GateDeniedError, bool) {
	var ge *GateDeniedError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
