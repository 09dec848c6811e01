// stack.go - propagation traces for captured errors.
//
// Design goals:
//   - Use runtime.Callers + runtime.CallersFrames for accurate frame resolution
//     (handles inlining correctly).
//   - Bounded depth; capture only happens on the exceptional path.
//   - Errors may carry their own trace (StackTrace() Stack); a capture prefers
//     that trace over one taken at the interception site.
package plenary

import (
	"errors"
	"runtime"
)

// Frame represents a single call site in a stack trace.
type Frame struct {
	PC       uintptr // program counter of the call return
	File     string  // absolute file path (as provided by runtime)
	Line     int     // line number
	Function string  // fully-qualified function name (pkg.Func or method)
}

// Stack is a slice of Frames from most recent call outward.
type Stack []Frame

// stackTracer is implemented by errors that carry the trace of where they
// were created or first propagated.
type stackTracer interface {
	StackTrace() Stack
}

const defaultMaxDepth = 64

// captureStackDefault captures a stack skipping 'skip' frames beyond its caller.
//
// Skip model: runtime.Callers, captureStack and captureStackDefault are always
// dropped, so skip=0 places the first frame at the caller of
// captureStackDefault.
func captureStackDefault(skip int) Stack {
	return captureStack(skip, defaultMaxDepth)
}

// captureStack captures up to maxDepth frames, skipping 'skip' initial frames.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+3, pc)
	if n == 0 {
		return nil
	}
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}

// StackOf returns the first trace carried along err's unwrap chain, or nil.
func StackOf(err error) Stack {
	if err == nil {
		return nil
	}
	var st stackTracer
	if errors.As(err, &st) {
		return st.StackTrace()
	}
	return nil
}

// Top returns the most recent frame, or the zero Frame for an empty stack.
func (s Stack) Top() Frame {
	if len(s) == 0 {
		return Frame{}
	}
	return s[0]
}
