package algosht

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// chunksPerWorker oversplits the index range so uneven units balance out.
const chunksPerWorker = 4

// parallelRange runs fn over [0, n) split into contiguous chunks on at most
// workers goroutines. No new chunk starts once ctx is done; the first error
// (or ctx.Err()) is returned.
func parallelRange(ctx context.Context, workers, n int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return ctx.Err()
	}

	if workers <= 1 || n == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}

		return fn(0, n)
	}

	chunks := min(n, workers*chunksPerWorker)
	size := (n + chunks - 1) / chunks

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < n; lo += size {
		if gctx.Err() != nil {
			break
		}

		hi := min(lo+size, n)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			return fn(lo, hi)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}
