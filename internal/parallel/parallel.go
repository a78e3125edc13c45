// Package parallel is a minimal parallel-for adapted from
// internal/dag's worker-pool chunking (dag.go: chunk work across
// runtime.NumCPU() goroutines, join with a sync.WaitGroup). The level
// scheduling dag.go builds that chunking for (dependency resolution
// between constraint-solver wires) has no counterpart here: every row of
// an R1CS and every column of a QAP is independent of every other, so
// there is nothing to schedule — only to chunk and join.
package parallel

import (
	"runtime"
	"sync"
)

// For calls fn(i) for every i in [0, n), distributed across
// runtime.NumCPU() goroutines, and blocks until all calls return. It
// panics if any fn(i) panics (the panic propagates from the first worker
// that observes it, after the others have been allowed to finish).
//
// For small n (below minPerGoroutine) it runs sequentially in the calling
// goroutine: spinning up goroutines for a handful of field multiplications
// costs more than it saves.
func For(n int, fn func(i int)) {
	const minPerGoroutine = 64

	if n <= 0 {
		return
	}

	nbGoroutines := runtime.NumCPU()
	if n/nbGoroutines < minPerGoroutine {
		nbGoroutines = (n + minPerGoroutine - 1) / minPerGoroutine
	}
	if nbGoroutines < 1 {
		nbGoroutines = 1
	}
	if nbGoroutines > n {
		nbGoroutines = n
	}
	if nbGoroutines == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := n / nbGoroutines
	extra := n - chunk*nbGoroutines

	var wg sync.WaitGroup
	wg.Add(nbGoroutines)

	var (
		panicOnce  sync.Once
		panicked   bool
		firstPanic interface{}
	)

	start := 0
	for g := 0; g < nbGoroutines; g++ {
		end := start + chunk
		if g < extra {
			end++
		}
		go func(start, end int) {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					panicOnce.Do(func() { panicked, firstPanic = true, p })
				}
			}()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
		start = end
	}
	wg.Wait()
	if panicked {
		panic(firstPanic)
	}
}
