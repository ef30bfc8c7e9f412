package host

import (
	"errors"
	"fmt"
)

// Host errors.
var (
	// ErrSystemCall is matched by every *CallError.
	ErrSystemCall = errors.New("host call failed")

	// ErrUnknownBuffer indicates the buffer is not open.
	ErrUnknownBuffer = errors.New("unknown buffer")

	// ErrInvalidPosition indicates a line or column outside the buffer.
	ErrInvalidPosition = errors.New("invalid position")
)

// CallError reports a failed buffer-access call.
type CallError struct {
	Op     string   // Call name (e.g., "GetLine", "SetPosition")
	Buffer BufferID // Buffer the call addressed, if any
	Err    error    // Underlying error
}

// NewCallError creates a new CallError.
func NewCallError(op string, id BufferID, err error) *CallError {
	return &CallError{Op: op, Buffer: id, Err: err}
}

func (e *CallError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Buffer != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Buffer)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CallError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is for CallError.
// Every CallError matches ErrSystemCall as well as its wrapped error.
func (e *CallError) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == ErrSystemCall {
		return true
	}
	return errors.Is(e.Err, target)
}
