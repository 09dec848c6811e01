// doc.go - package documentation for xgx-plenary
//
// Package plenary collects failures from a batch of independent operations
// instead of stopping at the first one, and reports them together afterwards.
//
// # Capture and scopes
//
// A Capture is an ordered buffer of captured errors. Work runs inside a scope:
// either the capture itself (its unlabelled root scope) or a labelled Context
// created with Capture.Context.
//
//	c := plenary.New()
//	for _, item := range items {
//		scope := c.Context(item.Name, plenary.Fields("id", item.ID))
//		_ = scope.Run(func() error { return process(item) })
//	}
//	if err := c.Raise(); err != nil {
//		return err
//	}
//
// A scope intercepts both returned errors and panics. What it keeps is decided
// by its Filter:
//
//   - An empty filter captures everything.
//   - Otherwise an error is captured only when a Matcher accepts it. Rejected
//     errors propagate unchanged: Run returns them, and panics are re-raised
//     with their original value.
//
// Scopes inherit the capture-level filter (WithFilter) by union unless created
// with NoInherit.
//
// # Matching families of errors
//
// Go has no exception subclassing. Two mechanisms cover "this type or any of
// its subtypes":
//
//   - Type[T] with an interface T matches every implementation.
//   - Is(kind) with a *Kind matches that kind and its descendants. Kinds form
//     an explicit tree (NewKind(name, parent)); see codes.go for the builtins.
//
// # Raising
//
// Raise drains the buffer. With one entry it returns the original error value
// (errors.Is by identity holds). With several it returns an *AggregateError
// that keeps every entry's error, trace and scope in capture order and
// implements Unwrap() []error.
//
// # Formatting
//
// Error types implement fmt.Formatter:
//   - %v, %s → concise Error()
//   - %+v    → verbose (kind, fields, cause, scope, stack)
//   - %q     → quoted Error()
//
// # Concurrency
//
// A Capture's buffer is mutex-guarded. ForEach runs items of a batch through a
// scope with bounded parallelism on top of errgroup.
package plenary
