package plenary

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// errRejectedPanic cancels the group while a rejected panic value is carried
// back to the caller's goroutine.
var errRejectedPanic = errors.New("plenary: rejected panic in batch item")

// ForEach runs fn for every item inside scope, at most limit at a time
// (limit <= 0 means unbounded). Failures the scope captures do not stop the
// batch; they stay buffered on the scope's Capture. The first failure the
// scope rejects cancels the context passed to the remaining items, stops
// scheduling new ones and is returned. A rejected panic is re-raised on the
// calling goroutine, with its original value, once every item has finished.
//
// Once the batch context is cancelled, an item error that only reports that
// cancellation is dropped rather than captured; ForEach reports it once.
//
// With limit == 1 items run one after another and capture order equals item
// order.
func ForEach[T any](ctx context.Context, scope *Context, items []T, limit int, fn func(context.Context, T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	var (
		once     sync.Once
		panicked bool
		panicVal any
	)
	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					once.Do(func() { panicked, panicVal = true, r })
					err = errRejectedPanic
				}
			}()
			return scope.Run(func() error {
				err := fn(gctx, item)
				if err != nil && gctx.Err() != nil && errors.Is(err, gctx.Err()) {
					return nil
				}
				return err
			})
		})
	}
	err := g.Wait()
	if panicked {
		panic(panicVal)
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}
