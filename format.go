// format.go - fmt.Formatter support shared by the package's error types.
//
// Behavior:
//
//	%s, %v   → concise string (Error()).
//	%q       → quoted Error().
//	%+v      → verbose, multi-line:
//	             kind=<path> msg="<message>"
//	             ctx: key1=val1 key2=val2 ...
//	             cause: <recursively formatted with %+v>
//	             stack:
//	               funcA file.go:123
package plenary

import (
	"fmt"
	"io"
)

// formatDefault handles every verb except %+v.
func formatDefault(s fmt.State, verb rune, e error) {
	switch verb {
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = io.WriteString(s, e.Error())
	}
}

func writeFields(w io.Writer, fs fields) {
	if len(fs) == 0 {
		return
	}
	_, _ = io.WriteString(w, "\nctx:")
	for _, f := range fs {
		if f.Key != "" {
			_, _ = fmt.Fprintf(w, " %s=%v", f.Key, f.Val)
		}
	}
}

func writeStack(w io.Writer, stk Stack) {
	if len(stk) == 0 {
		return
	}
	_, _ = io.WriteString(w, "\nstack:")
	for _, fr := range stk {
		_, _ = fmt.Fprintf(w, "\n  %s %s:%d", fr.Function, fr.File, fr.Line)
	}
}

func (e *kindErr) Format(s fmt.State, verb rune) {
	if verb != 'v' || !s.Flag('+') {
		formatDefault(s, verb, e)
		return
	}
	_, _ = fmt.Fprintf(s, "kind=%s msg=%q", e.kind.Path(), e.msg)
	writeFields(s, e.ctx)
	if e.cause != nil {
		_, _ = io.WriteString(s, "\ncause: ")
		_, _ = fmt.Fprintf(s, "%+v", e.cause)
	}
	writeStack(s, e.stk)
}

func (e *PanicError) Format(s fmt.State, verb rune) {
	if verb != 'v' || !s.Flag('+') {
		formatDefault(s, verb, e)
		return
	}
	_, _ = fmt.Fprintf(s, "panic: %#v", e.Value)
	writeStack(s, e.Stack)
}

// Format renders %+v as the error's own %+v followed by its scope and trace.
func (w Wrapper) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' && s.Flag('#'):
		_, _ = io.WriteString(s, w.GoString())
	case verb == 'v' && s.Flag('+'):
		_, _ = fmt.Fprintf(s, "%+v", w.Err)
		if w.Context != nil {
			_, _ = fmt.Fprintf(s, "\ncontext: %s", w.Context.Label())
			writeFields(s, w.Context.fields)
		}
		if StackOf(w.Err) == nil {
			writeStack(s, w.Stack)
		}
	case verb == 'q':
		_, _ = fmt.Fprintf(s, "%q", w.String())
	default:
		_, _ = io.WriteString(s, w.String())
	}
}

func (a *AggregateError) Format(s fmt.State, verb rune) {
	if verb != 'v' || !s.Flag('+') {
		formatDefault(s, verb, a)
		return
	}
	_, _ = fmt.Fprintf(s, "%d errors:", len(a.wrappers))
	for i, w := range a.wrappers {
		_, _ = fmt.Fprintf(s, "\n[%d] %+v", i, w)
	}
}
