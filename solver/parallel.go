package solver

import "sync"

// parallelRows runs fn for each row i in [start,end), split into
// contiguous chunks across workers goroutines. Callers guarantee
// disjoint writes per row, so the fan-out does not change the result.
func parallelRows(workers, start, end int, fn func(i int)) {
	total := end - start
	if total <= 0 {
		return
	}
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}
	chunk := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := start + w*chunk
		if lo >= end {
			break
		}
		hi := lo + chunk
		if hi > end {
			hi = end
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
