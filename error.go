// error.go - the Kind hierarchy and the Error contract for kind errors.
//
// Go has no exception subclassing. Filters that must match "this kind or any
// of its descendants" are served two ways:
//   - interface types via Type[T] (every implementation matches), and
//   - an explicit hierarchy table of *Kind nodes that errors.Is understands.
//
// A *Kind is itself an error sentinel, so errors.Is(err, KindUnavailable) is
// true for an error of KindTimeout when KindTimeout descends from
// KindUnavailable.
package plenary

import "strings"

// Kind is one node of an error hierarchy. Kinds are immutable once created
// and compared by identity.
type Kind struct {
	name   string
	parent *Kind
}

// NewKind returns a new kind below parent. A nil parent creates a root kind.
func NewKind(name string, parent *Kind) *Kind {
	return &Kind{name: name, parent: parent}
}

// Name returns the kind's own name.
func (k *Kind) Name() string {
	if k == nil {
		return ""
	}
	return k.name
}

// Parent returns the direct ancestor, or nil for a root kind.
func (k *Kind) Parent() *Kind {
	if k == nil {
		return nil
	}
	return k.parent
}

// Path returns the slash-joined names from the root down to k.
func (k *Kind) Path() string {
	var names []string
	for n := k; n != nil; n = n.parent {
		names = append(names, n.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

// DescendsFrom reports whether k equals anc or has anc among its ancestors.
func (k *Kind) DescendsFrom(anc *Kind) bool {
	if anc == nil {
		return false
	}
	for n := k; n != nil; n = n.parent {
		if n == anc {
			return true
		}
	}
	return false
}

// Error makes a kind usable as a sentinel.
func (k *Kind) Error() string { return k.Name() }

// Is reports whether target is a kind that k descends from.
func (k *Kind) Is(target error) bool {
	t, ok := target.(*Kind)
	return ok && k.DescendsFrom(t)
}

// Error is the contract of errors built from a Kind.
//
// Fluent methods are non-mutating: they return a new Error and never alter
// the receiver, so a shared error value stays safe to read from any goroutine.
type Error interface {
	error

	// Kind returns the node of the hierarchy this error belongs to.
	Kind() *Kind

	// With adds a single key-value field. Returns a NEW Error.
	With(key string, val any) Error

	// WithStack captures the caller's stack. Returns a NEW Error.
	WithStack() Error

	// WithStackSkip is like WithStack but skips extra call frames.
	WithStackSkip(skip int) Error

	// Context returns a copy of the error's fields as a map.
	Context() map[string]any

	// StackTrace returns the captured stack, or nil.
	StackTrace() Stack

	// Unwrap returns the wrapped cause, or nil.
	Unwrap() error
}
