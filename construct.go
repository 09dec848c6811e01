// construct.go - the concrete kind error and its constructors.
//
// Notes:
//   - Copy-on-write everywhere: each fluent method returns a fresh value.
//   - Errors of KindDefect (and its descendants) capture a stack at creation;
//     other kinds stay cheap and opt in with WithStack.
package plenary

import "fmt"

type kindErr struct {
	kind  *Kind
	msg   string
	ctx   fields
	cause error
	stk   Stack
}

func (e *kindErr) Error() string {
	msg := e.msg
	if e.cause != nil {
		if msg == "" {
			msg = e.cause.Error()
		} else {
			msg = msg + ": " + e.cause.Error()
		}
	}
	if msg == "" {
		return e.kind.Name()
	}
	return fmt.Sprintf("%s: %s", e.kind.Name(), msg)
}

func (e *kindErr) Kind() *Kind             { return e.kind }
func (e *kindErr) Unwrap() error           { return e.cause }
func (e *kindErr) Context() map[string]any { return e.ctx.toMap() }
func (e *kindErr) StackTrace() Stack       { return e.stk }

// Is matches the error's kind and every ancestor of it.
func (e *kindErr) Is(target error) bool {
	t, ok := target.(*Kind)
	return ok && e.kind.DescendsFrom(t)
}

func (e *kindErr) With(key string, val any) Error {
	n := e.clone()
	n.ctx = cloneAppend(n.ctx, Field{Key: key, Val: val})
	return n
}

func (e *kindErr) WithStack() Error {
	return e.WithStackSkip(1)
}

func (e *kindErr) WithStackSkip(skip int) Error {
	n := e.clone()
	n.stk = captureStackDefault(skip + 1)
	return n
}

func (e *kindErr) clone() *kindErr {
	n := *e
	n.ctx = cloneAppend(e.ctx)
	return &n
}

// New creates an error of kind k with a message and optional key-values.
func (k *Kind) New(msg string, kv ...any) Error {
	e := &kindErr{kind: k, msg: msg, ctx: fieldsFromKV(kv...)}
	if k.DescendsFrom(KindDefect) {
		e.stk = captureStackDefault(1)
	}
	return e
}

// Errorf creates an error of kind k with a formatted message.
func (k *Kind) Errorf(format string, args ...any) Error {
	e := &kindErr{kind: k, msg: fmt.Sprintf(format, args...), ctx: emptyFields}
	if k.DescendsFrom(KindDefect) {
		e.stk = captureStackDefault(1)
	}
	return e
}

// Wrap classifies err as kind k. The cause stays reachable through Unwrap and
// keeps any stack it already carries. A nil err behaves like New(msg).
func (k *Kind) Wrap(err error, msg string, kv ...any) Error {
	e := &kindErr{kind: k, msg: msg, ctx: fieldsFromKV(kv...), cause: err}
	if k.DescendsFrom(KindDefect) {
		e.stk = captureStackDefault(1)
	}
	return e
}

// KindOf returns the kind of the first kind error or *Kind sentinel found
// along err's chain, or nil.
func KindOf(err error) *Kind {
	var found *Kind
	Walk(err, func(e error) bool {
		switch x := e.(type) {
		case *Kind:
			found = x
		case interface{ Kind() *Kind }:
			found = x.Kind()
		}
		return found == nil
	})
	return found
}

var _ Error = (*kindErr)(nil)
