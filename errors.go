package ipa

import (
	"errors"
	"fmt"
)

// ErrTryAgain is returned by the transport when the hardware is busy
// and the operation may succeed if repeated.
var ErrTryAgain = errors.New("hardware busy, try again")

// ErrTimedOut is returned by the transport when the hardware did not
// acknowledge an operation in time.
var ErrTimedOut = errors.New("hardware operation timed out")

// ErrNotSupported is returned for operations the active revision does
// not implement.
var ErrNotSupported = errors.New("operation not supported on this revision")

// ErrNotAllocated is returned when a client has no endpoint on the
// active revision.
type ErrNotAllocated struct {
	Client   Client
	Revision Revision
}

func (e ErrNotAllocated) Error() string {
	return fmt.Sprintf("client %s is not allocated on revision %s", e.Client, e.Revision)
}

// ErrPipeOutOfRange is returned when a mapped pipe index exceeds the
// pipe count of the revision.
type ErrPipeOutOfRange struct {
	Client   Client
	Pipe     int
	NumPipes int
}

func (e ErrPipeOutOfRange) Error() string {
	return fmt.Sprintf("client %s maps to pipe %d, outside [0, %d)", e.Client, e.Pipe, e.NumPipes)
}

// ErrChannelNotMapped is returned when no AP-owned endpoint uses a
// GSI channel.
type ErrChannelNotMapped struct {
	Channel int
}

func (e ErrChannelNotMapped) Error() string {
	return fmt.Sprintf("GSI channel %d is not mapped to an AP endpoint", e.Channel)
}

// ErrInvalidHandle is returned when a handle does not name an
// allocated endpoint.
type ErrInvalidHandle struct {
	Handle int
}

func (e ErrInvalidHandle) Error() string {
	return fmt.Sprintf("invalid endpoint handle %d", e.Handle)
}

// ErrAlreadyAllocated is returned when connecting a client whose pipe
// is already in use.
type ErrAlreadyAllocated struct {
	Client Client
	Pipe   int
}

func (e ErrAlreadyAllocated) Error() string {
	return fmt.Sprintf("pipe %d for client %s is already allocated", e.Pipe, e.Client)
}

// ErrWrongDirection is returned when a consumer-only or producer-only
// facet is applied to an endpoint of the other direction.
type ErrWrongDirection struct {
	Handle int
	Client Client
	Facet  string
}

func (e ErrWrongDirection) Error() string {
	return fmt.Sprintf("%s cannot be applied to endpoint %d (%s)", e.Facet, e.Handle, e.Client)
}

// ErrInvalidState is returned for an illegal endpoint state
// transition.
type ErrInvalidState struct {
	Handle int
	State  EndpointState
	Op     string
}

func (e ErrInvalidState) Error() string {
	return fmt.Sprintf("cannot %s endpoint %d in state %s", e.Op, e.Handle, e.State)
}

// ErrUnrepresentable is returned when a timer value cannot be encoded
// by any configured pulse generator.
type ErrUnrepresentable struct {
	Micros uint32
	Reason string
}

func (e ErrUnrepresentable) Error() string {
	return fmt.Sprintf("timer value %dus is not representable: %s", e.Micros, e.Reason)
}

// ErrStopRetriesExhausted is returned when a consumer channel could
// not be stopped within the retry budget.
type ErrStopRetriesExhausted struct {
	Handle   int
	Attempts int
	Last     error
}

func (e ErrStopRetriesExhausted) Error() string {
	return fmt.Sprintf("stop channel for endpoint %d failed after %d attempts: %v", e.Handle, e.Attempts, e.Last)
}

func (e ErrStopRetriesExhausted) Unwrap() error {
	return e.Last
}

// InvariantViolation is the panic value for states that indicate a
// programming error rather than a runtime failure.
type InvariantViolation struct {
	Msg string
}

func (v InvariantViolation) Error() string {
	return "ipa invariant violated: " + v.Msg
}
