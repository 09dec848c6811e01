package plenary

import (
	"sync"

	"go.uber.org/zap"
)

const rootLabel = "<root context>"

// Capture buffers errors intercepted by its scopes so a batch of independent
// operations can run to the end and report every failure afterwards.
//
// Errors are kept in the order they were captured until Raise drains them.
// The buffer is guarded by a mutex, so scopes of one Capture may run on
// several goroutines (see ForEach); capture order then follows completion
// order.
type Capture struct {
	mu     sync.Mutex
	buf    []Wrapper
	filter Filter
	root   *Context
	log    *zap.Logger
}

// Option configures a Capture.
type Option func(*Capture)

// WithFilter restricts capture to errors accepted by any of ms. Scopes
// created with Context inherit it unless NoInherit is given.
func WithFilter(ms ...Matcher) Option {
	return func(c *Capture) {
		c.filter = append(c.filter, ms...)
	}
}

// WithLogger sets the logger used for debug events. nil keeps the no-op
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Capture) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns an empty Capture.
func New(opts ...Option) *Capture {
	c := &Capture{log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	c.root = newContext(c, rootLabel, c.filter, emptyFields)
	return c
}

// Context creates a labelled scope on c. By default its filter is the union
// of the Only matchers and the capture's own filter, and it captures every
// error when both are empty. With NoInherit the filter is exactly the Only
// matchers.
func (c *Capture) Context(label string, opts ...ContextOption) *Context {
	var cfg contextConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	filter := cfg.filter
	if !cfg.noInherit {
		filter = Union(cfg.filter, c.filter)
	}
	return newContext(c, label, filter, fieldsFromKV(cfg.kv...))
}

// Root returns the unlabelled scope used when c itself acts as a scope.
func (c *Capture) Root() *Context { return c.root }

// Filter returns a copy of the capture-level filter.
func (c *Capture) Filter() Filter { return Union(c.filter, nil) }

// Run runs fn in the root scope. See Context.Run.
func (c *Capture) Run(fn func() error) error {
	return c.root.Run(fn)
}

// Guard is the deferred form of Run for the root scope:
//
//	func step() (err error) {
//		defer c.Guard(&err)
//		...
//	}
func (c *Capture) Guard(errp *error) {
	c.root.settle(recover(), errp)
}

// Add appends err with its trace and capturing scope. ctx may be nil. A nil
// err is ignored.
func (c *Capture) Add(err error, stk Stack, ctx *Context) {
	c.add(Wrapper{Err: err, Stack: stk, Context: ctx}, false)
}

// AddFront is like Add but places the entry at the front of the buffer.
func (c *Capture) AddFront(err error, stk Stack, ctx *Context) {
	c.add(Wrapper{Err: err, Stack: stk, Context: ctx}, true)
}

func (c *Capture) add(w Wrapper, front bool) {
	if w.Err == nil {
		return
	}
	c.mu.Lock()
	if front {
		c.buf = append([]Wrapper{w}, c.buf...)
	} else {
		c.buf = append(c.buf, w)
	}
	n := len(c.buf)
	c.mu.Unlock()

	label := ""
	if w.Context != nil {
		label = w.Context.label
	}
	c.log.Debug("captured error",
		zap.String("context", label),
		zap.Error(w.Err),
		zap.Int("buffered", n),
	)
}

// Raise drains the buffer and reports what it held:
//   - nothing buffered → nil
//   - one entry → the original error value, unchanged
//   - more → *AggregateError with every entry in capture order
//
// A second Raise without new captures returns nil.
func (c *Capture) Raise() error {
	c.mu.Lock()
	buf := c.buf
	c.buf = nil
	c.mu.Unlock()

	if len(buf) > 0 {
		c.log.Debug("raising buffered errors", zap.Int("count", len(buf)))
	}
	switch len(buf) {
	case 0:
		return nil
	case 1:
		return buf[0].Err
	default:
		return &AggregateError{wrappers: buf}
	}
}

// Buffer returns a copy of the buffered entries.
func (c *Capture) Buffer() []Wrapper {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Wrapper, len(c.buf))
	copy(out, c.buf)
	return out
}

// Errors returns the buffered errors in capture order.
func (c *Capture) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return wrappedErrors(c.buf)
}

// Len returns the number of buffered entries.
func (c *Capture) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buf)
}

// Contains reports whether target itself is buffered. Wrapped errors and
// kinds are matched with Match(Is(target)).
func (c *Capture) Contains(target error) bool {
	return containsErr(c.Errors(), target)
}

// Match reports whether m accepts any buffered error.
func (c *Capture) Match(m Matcher) bool {
	return matchAny(c.Errors(), m)
}
