// Package parallel provides the index-range fan-out helper used for
// embarrassingly parallel passes over training data, such as building
// per-feature sort indexes or applying a stump to a prediction batch.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits [0, items) into one contiguous range per worker
// and calls fn(start, end) for each range on its own goroutine,
// returning after every range has been processed. Workers are capped
// at the CPU count and ranges differ in length by at most one, so the
// slowest worker never carries a double share.
//
// fn must be safe to run concurrently with itself on disjoint ranges.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}

	base := items / workers
	extra := items % workers

	var wg sync.WaitGroup
	wg.Add(workers)

	start := 0
	for w := 0; w < workers; w++ {
		size := base
		// The first `extra` workers absorb the remainder.
		if w < extra {
			size++
		}
		end := start + size
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
		start = end
	}

	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) inline when items is at or
// below threshold, and falls back to Parallelize above it. Small batches
// stay on the calling goroutine where spawning workers would cost more
// than the work itself.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}
