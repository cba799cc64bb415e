package sim

import (
	"runtime"
	"sync"
)

// parallelFor partitions [0, n) into contiguous chunks and runs fn(start, end)
// for each chunk on its own goroutine, with at most workers chunks running
// at once, waiting for all chunks to finish before returning. Static,
// contiguous id ranges keep each worker's share cache-local along the
// z-fastest axis.
func parallelFor(n, workers, chunkSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if chunkSize <= 0 {
		chunkSize = (n + workers - 1) / workers
	}
	if chunkSize <= 0 {
		chunkSize = 1
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(s, e int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
