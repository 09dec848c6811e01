// context.go - labelled capture scopes.
//
// A Context holds no mutable state: a label, an identity, an effective filter
// and optional fields. The same Context may be entered any number of times.
//
// Entering a scope is either Run(fn) or `defer x.Guard(&err)`. On exit an
// error that is propagating (returned or panicked) is either:
//   - captured: appended to the owning Capture and suppressed, or
//   - passed through unchanged when the filter rejects it (returned as-is,
//     or re-panicked with the original panic value).
package plenary

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context is a named scope of a Capture.
type Context struct {
	capture *Capture
	label   string
	id      string
	filter  Filter
	fields  fields
}

// ContextOption configures a scope created by Capture.Context.
type ContextOption func(*contextConfig)

type contextConfig struct {
	filter    Filter
	noInherit bool
	kv        []any
}

// Only sets the scope's own filter.
func Only(ms ...Matcher) ContextOption {
	return func(c *contextConfig) {
		c.filter = append(c.filter, ms...)
	}
}

// NoInherit makes the scope ignore the capture-level filter.
func NoInherit() ContextOption {
	return func(c *contextConfig) { c.noInherit = true }
}

// Fields attaches key-value metadata to the scope. It shows up in %+v output
// of captured entries.
func Fields(kv ...any) ContextOption {
	return func(c *contextConfig) {
		c.kv = append(c.kv, kv...)
	}
}

func newContext(c *Capture, label string, filter Filter, fs fields) *Context {
	return &Context{
		capture: c,
		label:   label,
		id:      uuid.NewString(),
		filter:  filter,
		fields:  fs,
	}
}

// Capture returns the owning capture.
func (x *Context) Capture() *Capture { return x.capture }

// Label returns the scope's label.
func (x *Context) Label() string { return x.label }

// ID returns a unique identifier for the scope, stable for its lifetime.
func (x *Context) ID() string { return x.id }

// Filter returns a copy of the effective filter. Empty means "everything".
func (x *Context) Filter() Filter { return Union(x.filter, nil) }

// Fields returns a copy of the scope's metadata.
func (x *Context) Fields() map[string]any { return x.fields.toMap() }

// Accepts reports whether the scope would capture err.
func (x *Context) Accepts(err error) bool { return x.filter.Accepts(err) }

func (x *Context) String() string { return x.label }

func (x *Context) GoString() string {
	return fmt.Sprintf("Context(%q, filter=%s)", x.label, x.filter)
}

// Run calls fn inside the scope. It returns nil when fn succeeds or when its
// failure was captured, and the failure itself when the filter rejected it.
// Rejected panics are re-raised with their original value.
func (x *Context) Run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			x.recovered(r, 1)
		}
	}()
	if err = fn(); err != nil {
		return x.intercept(err, captureStackDefault(1))
	}
	return nil
}

// Guard is the deferred form of Run. It must be deferred directly:
//
//	func step() (err error) {
//		defer scope.Guard(&err)
//		...
//	}
//
// A captured error resets *errp to nil. errp may be nil when only panics are
// of interest.
func (x *Context) Guard(errp *error) {
	x.settle(recover(), errp)
}

// settle finishes a Guard call. r is the value recovered by the deferred
// function itself.
func (x *Context) settle(r any, errp *error) {
	if r != nil {
		x.recovered(r, 2)
		return
	}
	if errp != nil && *errp != nil {
		*errp = x.intercept(*errp, captureStackDefault(2))
	}
}

// intercept buffers err when the filter accepts it and returns nil; otherwise
// it returns err unchanged.
func (x *Context) intercept(err error, stk Stack) error {
	if !x.filter.Accepts(err) {
		x.capture.log.Debug("error passed through scope",
			zap.String("context", x.label),
			zap.Stringer("filter", x.filter),
			zap.Error(err),
		)
		return err
	}
	if own := StackOf(err); own != nil {
		stk = own
	}
	x.capture.add(Wrapper{Err: err, Stack: stk, Context: x}, false)
	return nil
}

// recovered handles a panic value caught on scope exit. Rejected values are
// re-panicked as they were.
func (x *Context) recovered(r any, skip int) {
	stk := captureStackDefault(skip + 1)
	err := panicToError(r, stk)
	if x.intercept(err, stk) != nil {
		panic(r)
	}
}
