package parallel

import (
	"runtime"
	"sync"

	"github.com/YuminosukeSato/colorbayes/pkg/errors"
)

// Workers returns the worker count to use for n items: requested when
// positive, otherwise the number of CPU cores, never more than n.
func Workers(items, requested int) int {
	numWorkers := requested
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > items {
		numWorkers = items
	}
	return numWorkers
}

// Parallelize divides items into contiguous ranges, one per worker, and runs
// fn(start, end) for each range concurrently. workers <= 0 means one per CPU core.
func Parallelize(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := Workers(items, workers)

	// Calculate the number of items each worker handles (ceiling division)
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

// ForEach calls fn(i) for every i in [0, items). When parallel is false the
// calls run sequentially on the calling goroutine. Panics inside fn are
// converted to errors; the error with the lowest index is returned so the
// result does not depend on scheduling.
func ForEach(items int, parallel bool, workers int, fn func(i int) error) error {
	errs := make([]error, items)
	run := func(start, end int) {
		for i := start; i < end; i++ {
			idx := i
			errs[idx] = errors.SafeExecute("parallel.ForEach", func() error { return fn(idx) })
		}
	}

	if parallel {
		Parallelize(items, workers, run)
	} else {
		run(0, items)
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
