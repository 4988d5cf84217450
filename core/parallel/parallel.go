// Package parallel splits row-wise work across CPU cores.
package parallel

import (
	"runtime"
	"sync"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// Parallelize divides items into one contiguous range per CPU core and runs
// fn on every range concurrently. It returns when all ranges are done.
func Parallelize(items int, fn func(start, end int)) {
	_ = ParallelizeErr(items, func(start, end int) error {
		fn(start, end)
		return nil
	})
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items <= threshold and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// ParallelizeErr is Parallelize for work that can fail. A panic inside fn is
// recovered into an errors.PanicError. The error of the lowest failing range
// is returned so the result does not depend on scheduling.
func ParallelizeErr(items int, fn func(start, end int) error) error {
	if items == 0 {
		return nil
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers
	errs := make([]error, numWorkers)

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
		go func(w, s, e int) {
			defer wg.Done()
			errs[w] = runRange(s, e, fn)
		}(i, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ParallelizeErrWithThreshold is ParallelizeErr with the sequential fallback
// of ParallelizeWithThreshold.
func ParallelizeErrWithThreshold(items, threshold int, fn func(start, end int) error) error {
	if items <= threshold {
		return runRange(0, items, fn)
	}
	return ParallelizeErr(items, fn)
}

func runRange(start, end int, fn func(start, end int) error) (err error) {
	defer errors.Recover(&err, "parallel range")
	return fn(start, end)
}
