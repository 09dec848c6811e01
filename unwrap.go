// unwrap.go - traversal over single- and multi-wrapped error graphs.
//
// errors.Unwrap only follows Unwrap() error; aggregates and errors.Join expose
// Unwrap() []error. Walk and Flatten follow both forms.
//
// A map[error] "seen" set panics for unhashable values, so cycles are guarded
// two ways: hashable values by value, pointers by address. Anything else,
// including a comparable struct whose interface field holds a slice, is
// treated as acyclic and bounded by maxWalkDepth.
package plenary

import (
	"errors"
	"reflect"
)

type singleUnwrapper interface{ Unwrap() error }
type multiUnwrapper interface{ Unwrap() []error }

const maxWalkDepth = 1 << 12

type seenSet struct {
	byVal map[error]struct{}
	byPtr map[uintptr]struct{}
}

func newSeenSet() *seenSet {
	return &seenSet{
		byVal: make(map[error]struct{}, 16),
		byPtr: make(map[uintptr]struct{}, 16),
	}
}

// mark returns true if err was newly marked; false if already seen.
func (s *seenSet) mark(err error) bool {
	if err == nil {
		return false
	}
	if reflect.TypeOf(err).Comparable() {
		if fresh, hashable := s.markVal(err); hashable {
			return fresh
		}
	}
	if rv := reflect.ValueOf(err); rv.Kind() == reflect.Ptr && !rv.IsNil() {
		id := rv.Pointer()
		if _, ok := s.byPtr[id]; ok {
			return false
		}
		s.byPtr[id] = struct{}{}
	}
	return true
}

// markVal records err by value. A comparable type can still hold an
// unhashable value in an interface field; hashable is false in that case and
// err stays untracked.
func (s *seenSet) markVal(err error) (fresh, hashable bool) {
	defer func() {
		if recover() != nil {
			fresh, hashable = true, false
		}
	}()
	if _, ok := s.byVal[err]; ok {
		return false, true
	}
	s.byVal[err] = struct{}{}
	return true, true
}

// Walk visits each distinct node of err's graph in pre-order (visit before
// children, multi-unwrap children left to right). If visit returns false,
// traversal stops. nil is a no-op.
func Walk(err error, visit func(error) bool) {
	if err == nil || visit == nil {
		return
	}
	seen := newSeenSet()
	stack := make([]error, 0, 8)
	stack = append(stack, err)
	seen.mark(err)

	for len(stack) > 0 && len(stack) < maxWalkDepth {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(cur) {
			return
		}

		switch x := cur.(type) {
		case multiUnwrapper:
			kids := x.Unwrap()
			for i := len(kids) - 1; i >= 0; i-- {
				if kids[i] != nil && seen.mark(kids[i]) {
					stack = append(stack, kids[i])
				}
			}
		case singleUnwrapper:
			if u := x.Unwrap(); u != nil && seen.mark(u) {
				stack = append(stack, u)
			}
		}
	}
}

// Flatten returns the leaf errors (nodes with no children) of err's graph in
// depth-first order. nil returns nil.
func Flatten(err error) []error {
	var out []error
	Walk(err, func(e error) bool {
		switch x := e.(type) {
		case multiUnwrapper:
			if len(x.Unwrap()) > 0 {
				return true
			}
		case singleUnwrapper:
			if x.Unwrap() != nil {
				return true
			}
		}
		out = append(out, e)
		return true
	})
	return out
}

// Has reports whether target appears anywhere in err's unwrap graph.
// It wraps errors.Is with nil-safety.
func Has(err, target error) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.Is(err, target)
}
