package enrich

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FanOutWidth is how many upstream lookups run at once.
const FanOutWidth = 8

// fetchAll calls fetch for every index in batches of FanOutWidth. A batch
// always runs to completion; the first error in it stops later batches
// and is returned. Results keep index order.
func fetchAll[T any](ctx context.Context, n int, fetch func(ctx context.Context, i int) (T, error)) ([]T, error) {
	out := make([]T, n)
	for lo := 0; lo < n; lo += FanOutWidth {
		hi := min(lo+FanOutWidth, n)

		// a plain group: a failure must not cancel the rest of the batch
		var g errgroup.Group
		for i := lo; i < hi; i++ {
			g.Go(func() error {
				v, err := fetch(ctx, i)
				if err != nil {
					return err
				}
				out[i] = v
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type outcome[T any] struct {
	val T
	err error
}

// settleAll is fetchAll without the short-circuit: every index is
// attempted and its value or error reported in index order.
func settleAll[T any](ctx context.Context, n int, fetch func(ctx context.Context, i int) (T, error)) []outcome[T] {
	out := make([]outcome[T], n)
	for lo := 0; lo < n; lo += FanOutWidth {
		hi := min(lo+FanOutWidth, n)

		var wg sync.WaitGroup
		for i := lo; i < hi; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := fetch(ctx, i)
				out[i] = outcome[T]{val: v, err: err}
			}()
		}
		wg.Wait()
	}
	return out
}
