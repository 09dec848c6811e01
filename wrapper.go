package plenary

import "fmt"

// Wrapper is one buffered entry of a Capture: the original error, the trace
// it propagated with, and the scope that captured it. Context is nil for
// entries added without a scope.
type Wrapper struct {
	Err     error
	Stack   Stack
	Context *Context
}

// String returns the error message, followed by the scope label when one is
// set.
func (w Wrapper) String() string {
	if w.Err == nil {
		return "<nil>"
	}
	if w.Context != nil {
		return fmt.Sprintf("%s (context: %s)", w.Err.Error(), w.Context.Label())
	}
	return w.Err.Error()
}

// GoString renders the entry for %#v.
func (w Wrapper) GoString() string {
	if w.Context != nil {
		return fmt.Sprintf("%#v in %#v", w.Err, w.Context)
	}
	return fmt.Sprintf("%#v", w.Err)
}

// PanicError carries a recovered panic value that is not itself an error.
type PanicError struct {
	Value any
	Stack Stack
}

func (e *PanicError) Error() string     { return fmt.Sprintf("panic: %v", e.Value) }
func (e *PanicError) StackTrace() Stack { return e.Stack }

// panicToError converts a recovered value into an error. Error values are
// returned as-is so identity survives capture.
func panicToError(r any, stk Stack) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r, Stack: stk}
}
