package dynamo

import (
	"golang.org/x/sync/errgroup"
)

// chunksPerWorker oversplits the range so a slow chunk does not hold up
// an idle worker.
const chunksPerWorker = 4

// ParallelFor executes fn over [0, n) in contiguous chunks of at least
// minChunk indices, with at most workers chunks running at once. Each index
// is visited by exactly one goroutine. Ranges no longer than minChunk, or a
// single worker, run inline on the caller's goroutine.
func ParallelFor(n, workers, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 1 || n <= minChunk {
		fn(0, n)
		return
	}

	chunkSize := (n + workers*chunksPerWorker - 1) / (workers * chunksPerWorker)
	if chunkSize < minChunk {
		chunkSize = minChunk
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}

	// chunks cannot fail
	_ = g.Wait()
}
