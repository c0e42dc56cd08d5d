package md

import (
	"runtime"
	"sync"
)

// parallelFor splits [0, n) into contiguous chunks, one per worker, and runs
// fn on each chunk in its own goroutine. fn receives the worker index so that
// callers can keep per-worker partial sums without sharing state. All workers
// have finished when parallelFor returns.
func parallelFor(n, workers int, fn func(worker, start, end int)) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, 0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(w, s, e int) {
			defer wg.Done()
			fn(w, s, e)
		}(w, start, end)
	}

	wg.Wait()
}
