package parallel

import (
	"sync"
	"testing"
)

func TestParallelizeCoversAllItems(t *testing.T) {
	const items = 1000
	seen := make([]bool, items)
	var mu sync.Mutex

	Parallelize(items, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < end; i++ {
			if seen[i] {
				t.Errorf("index %d visited twice", i)
			}
			seen[i] = true
		}
	})

	for i, ok := range seen {
		if !ok {
			t.Fatalf("index %d never visited", i)
		}
	}
}

func TestParallelizeZeroItems(t *testing.T) {
	called := false
	Parallelize(0, func(start, end int) { called = true })
	if called {
		t.Error("fn should not run for zero items")
	}
}

func TestParallelizeWithThresholdSequential(t *testing.T) {
	var calls int
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("expected single range [0,10), got [%d,%d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected one sequential call, got %d", calls)
	}
}

func TestParallelizeSymCoversAllRows(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64, 1000} {
		seen := make([]bool, n)
		var mu sync.Mutex

		ParallelizeSym(n, func(start, end int) {
			mu.Lock()
			defer mu.Unlock()
			for i := start; i < end; i++ {
				if seen[i] {
					t.Errorf("n=%d: row %d visited twice", n, i)
				}
				seen[i] = true
			}
		})

		for i, ok := range seen {
			if !ok {
				t.Fatalf("n=%d: row %d never visited", n, i)
			}
		}
	}
}
