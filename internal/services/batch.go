package services

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// fetchAll runs fn for every index in [0, n) with at most limit in flight and
// returns the results by index. The first error cancels the rest and fails the batch.
func fetchAll[T any](ctx context.Context, n, limit int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	if n == 0 {
		return results, nil
	}
	if limit <= 0 {
		limit = -1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			v, err := fn(gctx, i)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
