package calltrace

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFailure stands in for a nil error passed to Tracer.Exception.
	ErrUnknownFailure = errors.New("calltrace: unknown failure")

	// ErrAborted closes the span of a traced call whose goroutine exited
	// without returning, as runtime.Goexit does.
	ErrAborted = errors.New("calltrace: call aborted")

	// ErrNotInterface is returned when a decorator is registered for a non-interface type.
	ErrNotInterface = errors.New("calltrace: decorated type must be an interface")

	// ErrDuplicateDecorator is returned when an interface already has a decorator.
	ErrDuplicateDecorator = errors.New("calltrace: decorator already registered")
)

// PanicError records a panic that escaped a traced call. The traced call
// re-panics with the original value; PanicError only appears in the trace line.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
