// Package parallel provides chunked worker helpers for the embarrassingly
// parallel parts of the library: kernel matrix fills and per-column
// triangular solves. Workers share no mutable state; each owns a disjoint
// index range.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides items across CPU cores and runs fn on each
// half-open range [start, end).
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// Ceiling division so every item is covered.
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items is at or below
// the threshold, and in parallel otherwise. Small matrices are cheaper to
// fill on one goroutine than to fan out.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// ParallelizeSym partitions the rows of an n×n upper-triangular fill so
// each worker gets roughly the same number of matrix entries. Row i of the
// upper triangle holds n-i entries, so equal row ranges would leave the
// first worker with far more work than the last; ranges are cut where the
// cumulative entry count crosses equal shares instead.
func ParallelizeSym(n int, fn func(start, end int)) {
	if n == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > n {
		numWorkers = n
	}
	if numWorkers == 1 {
		fn(0, n)
		return
	}

	total := n * (n + 1) / 2
	share := (total + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	start := 0
	acc := 0
	for i := start; i < n; i++ {
		acc += n - i
		if acc >= share || i == n-1 {
			wg.Add(1)
			go func(s, e int) {
				defer wg.Done()
				fn(s, e)
			}(start, i+1)
			start = i + 1
			acc = 0
		}
	}

	wg.Wait()
}

// ParallelizeSymWithThreshold is ParallelizeSym with a sequential fallback
// below the threshold row count.
func ParallelizeSymWithThreshold(n int, threshold int, fn func(start, end int)) {
	if n <= threshold {
		fn(0, n)
		return
	}
	ParallelizeSym(n, fn)
}
