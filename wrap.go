// wrap.go - attach a propagation trace to arbitrary errors.
//
// Kind errors keep their own stack slot; any other error is wrapped in a thin
// stacked value whose Error() is unchanged, so errors.Is/As and messages stay
// exactly as they were.
package plenary

import "fmt"

type stacked struct {
	err error
	stk Stack
}

func (s *stacked) Error() string     { return s.err.Error() }
func (s *stacked) Unwrap() error     { return s.err }
func (s *stacked) StackTrace() Stack { return s.stk }

func (s *stacked) Format(st fmt.State, verb rune) {
	if verb == 'v' && st.Flag('+') {
		_, _ = fmt.Fprintf(st, "%+v", s.err)
		writeStack(st, s.stk)
		return
	}
	formatDefault(st, verb, s)
}

// WithStack returns err annotated with the caller's stack. nil stays nil.
func WithStack(err error) error {
	return WithStackSkip(err, 1)
}

// WithStackSkip is like WithStack but skips 'skip' extra frames above the
// caller.
func WithStackSkip(err error, skip int) error {
	if err == nil {
		return nil
	}
	if ke, ok := err.(Error); ok {
		return ke.WithStackSkip(skip + 1)
	}
	return &stacked{err: err, stk: captureStackDefault(skip + 1)}
}
