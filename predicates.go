// predicates.go - error matchers and filters used by capture scopes.
//
// A Matcher answers "does this error belong to the set I describe?" through
// errors.Is / errors.As, so wrapped and joined errors are matched by what they
// contain, not just by their outermost value.
package plenary

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Matcher decides whether an error is selected by a filter.
type Matcher interface {
	Match(err error) bool
	String() string
}

type typeMatcher[T error] struct{}

func (typeMatcher[T]) Match(err error) bool {
	if err == nil {
		return false
	}
	var target T
	return errors.As(err, &target)
}

func (typeMatcher[T]) String() string {
	return reflect.TypeFor[T]().String()
}

// Type matches errors whose chain holds a value assignable to T. When T is an
// interface type every implementation matches, which is how a filter selects
// a whole family of error types.
func Type[T error]() Matcher { return typeMatcher[T]{} }

type isMatcher struct{ target error }

func (m isMatcher) Match(err error) bool { return Has(err, m.target) }
func (m isMatcher) String() string       { return fmt.Sprintf("Is(%v)", m.target) }

// Is matches errors for which errors.Is(err, target) holds. With a *Kind
// target it matches that kind and all of its descendants.
func Is(target error) Matcher { return isMatcher{target: target} }

type funcMatcher struct {
	name string
	fn   func(error) bool
}

func (m funcMatcher) Match(err error) bool { return err != nil && m.fn(err) }
func (m funcMatcher) String() string       { return m.name }

// MatchFunc adapts an arbitrary predicate. name is used in String().
func MatchFunc(name string, fn func(error) bool) Matcher {
	return funcMatcher{name: name, fn: fn}
}

// Filter is a set of matchers. An error passes when any matcher accepts it.
// An empty Filter places no restriction and accepts every non-nil error.
type Filter []Matcher

// Accepts reports whether err passes the filter.
func (f Filter) Accepts(err error) bool {
	if err == nil {
		return false
	}
	if len(f) == 0 {
		return true
	}
	return f.Any(err)
}

// Any reports whether at least one matcher accepts err. Unlike Accepts, an
// empty Filter matches nothing.
func (f Filter) Any(err error) bool {
	for _, m := range f {
		if m != nil && m.Match(err) {
			return true
		}
	}
	return false
}

func (f Filter) String() string {
	if len(f) == 0 {
		return "*"
	}
	parts := make([]string, 0, len(f))
	for _, m := range f {
		if m != nil {
			parts = append(parts, m.String())
		}
	}
	return strings.Join(parts, "|")
}

// Union returns a new filter holding the matchers of a followed by those of b.
func Union(a, b Filter) Filter {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make(Filter, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// matchAny reports whether m accepts any error in errs.
func matchAny(errs []error, m Matcher) bool {
	if m == nil {
		return false
	}
	for _, e := range errs {
		if m.Match(e) {
			return true
		}
	}
	return false
}

// matchesType reports whether any error in errs has T in its chain.
func matchesType[T error](errs []error) bool {
	return matchAny(errs, Type[T]())
}

// containsErr reports whether target is one of errs by identity.
func containsErr(errs []error, target error) bool {
	if target == nil {
		return false
	}
	for _, e := range errs {
		if sameErr(e, target) {
			return true
		}
	}
	return false
}

// sameErr is a == b, reporting false instead of panicking when both hold the
// same uncomparable value type.
func sameErr(a, b error) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
