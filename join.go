// join.go - the aggregate error returned when a capture drains several entries.
//
// AggregateError mirrors errors.Join for traversal: Unwrap() []error exposes
// the original errors in capture order, so errors.Is/As find any of them.
// On top of that it keeps every entry's trace and scope.
package plenary

import (
	"iter"
	"strings"
)

// AggregateError wraps two or more captured entries in capture order.
type AggregateError struct {
	wrappers []Wrapper
}

// NewAggregate builds an aggregate from entries, skipping those with a nil
// error. It copies the slice.
func NewAggregate(entries ...Wrapper) *AggregateError {
	ws := make([]Wrapper, 0, len(entries))
	for _, w := range entries {
		if w.Err != nil {
			ws = append(ws, w)
		}
	}
	return &AggregateError{wrappers: ws}
}

// Error newline-joins the entries like errors.Join, with each entry's scope
// label attached.
func (a *AggregateError) Error() string {
	switch len(a.wrappers) {
	case 0:
		return ""
	case 1:
		return a.wrappers[0].String()
	}
	var sb strings.Builder
	for i, w := range a.wrappers {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(w.String())
	}
	return sb.String()
}

// Unwrap exposes the original errors to errors.Is/As.
func (a *AggregateError) Unwrap() []error { return a.Errors() }

// Len returns the number of entries.
func (a *AggregateError) Len() int { return len(a.wrappers) }

// At returns the i-th entry. It panics if i is out of range, like a slice.
func (a *AggregateError) At(i int) Wrapper { return a.wrappers[i] }

// All iterates entries in capture order.
func (a *AggregateError) All() iter.Seq2[int, Wrapper] {
	return func(yield func(int, Wrapper) bool) {
		for i, w := range a.wrappers {
			if !yield(i, w) {
				return
			}
		}
	}
}

// Wrappers returns a copy of the entries.
func (a *AggregateError) Wrappers() []Wrapper {
	out := make([]Wrapper, len(a.wrappers))
	copy(out, a.wrappers)
	return out
}

// Errors returns the original errors in capture order.
func (a *AggregateError) Errors() []error {
	return wrappedErrors(a.wrappers)
}

// Stacks returns the entries' traces in capture order.
func (a *AggregateError) Stacks() []Stack {
	out := make([]Stack, len(a.wrappers))
	for i, w := range a.wrappers {
		out[i] = w.Stack
	}
	return out
}

// Contains reports whether target itself is one of the entries.
func (a *AggregateError) Contains(target error) bool {
	return containsErr(a.Errors(), target)
}

// Match reports whether any entry is accepted by m.
func (a *AggregateError) Match(m Matcher) bool {
	return matchAny(a.Errors(), m)
}

func wrappedErrors(ws []Wrapper) []error {
	out := make([]error, len(ws))
	for i, w := range ws {
		out[i] = w.Err
	}
	return out
}

// ContainsType reports whether any entry of a captured set has T in its
// chain. src is a *Capture or an *AggregateError.
func ContainsType[T error](src interface{ Errors() []error }) bool {
	if src == nil {
		return false
	}
	return matchesType[T](src.Errors())
}
