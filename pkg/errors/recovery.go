// Panic recovery utilities. Sweep workers and plot rendering run
// third-party code that can panic; these helpers convert such panics
// into structured errors so a training call fails instead of crashing
// the process.

package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/cockroachdb/errors"
)

// PanicError is a panic converted into an error. It keeps the original
// panic value and the goroutine stack captured at recovery time.
type PanicError struct {
	// Op identifies the operation whose deferred recovery caught the panic.
	Op string

	// Value is what was passed to panic().
	Value interface{}

	// Stack is the goroutine stack at the recovery point.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("rtbkit: panic during %s: %v", e.Op, e.Value)
}

// Detail returns the message together with the captured stack.
func (e *PanicError) Detail() string {
	return fmt.Sprintf("%s\n%s", e.Error(), e.Stack)
}

// NewPanicError captures the current stack and wraps the panic value.
func NewPanicError(op string, value interface{}) *PanicError {
	return &PanicError{
		Op:    op,
		Value: value,
		Stack: string(debug.Stack()),
	}
}

// Recover converts an in-flight panic into a *PanicError assigned
// through err. Defer it in any function that runs code outside this
// module's control:
//
//	func (s *splitSearch) sweep(feature int) (err error) {
//	    defer errors.Recover(&err, "sweep")
//	    ...
//	}
//
// When the function already failed, the original error is kept as the
// cause and the panic is layered on top, so errors.Is still reaches
// the original.
func Recover(err *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	if *err != nil {
		*err = errors.Wrapf(*err, "panic during %s: %v", op, r)
		return
	}
	*err = NewPanicError(op, r)
}

// SafeExecute runs fn and returns its error, converting a panic into a
// *PanicError. Used to contain libraries that panic on bad input, such
// as plot rendering.
func SafeExecute(op string, fn func() error) (err error) {
	defer Recover(&err, op)
	return fn()
}
