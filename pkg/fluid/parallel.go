package fluid

import (
	"runtime"
	"sync"
)

// parallelRange runs fn for every i in [start,end), splitting the range into
// contiguous chunks across the available CPUs. It is only used for phases
// whose cells are written exactly once from immutable inputs (advection,
// divergence), so the result does not depend on the worker count. The
// Gauss-Seidel sweeps stay sequential on purpose.
func parallelRange(start, end int, fn func(i int)) {
	total := end - start
	if total <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > total {
		workers = total
	}
	if workers == 1 {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}

	chunk := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for s := start; s < end; s += chunk {
		e := s + chunk
		if e > end {
			e = end
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				fn(i)
			}
		}(s, e)
	}
	wg.Wait()
}
