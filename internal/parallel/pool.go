// Package parallel runs row-partitioned work across a short-lived set of
// goroutines.
//
// A run is created fresh for each call: Partition splits the rows into
// contiguous ranges, Run starts one goroutine per range and joins them all
// before returning. There is no persistent pool, no queue, and no work
// stealing.
package parallel

import (
	"errors"
	"fmt"
	"sync"
)

// Errors returned by Partition and Run.
var (
	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("parallel: worker count must be positive")

	// ErrInvalidRows is returned when the row count is negative.
	ErrInvalidRows = errors.New("parallel: row count must not be negative")

	// ErrInvalidRange is returned by Run when a range is malformed.
	ErrInvalidRange = errors.New("parallel: invalid row range")

	// ErrWorkerPanic wraps a panic recovered from a worker.
	ErrWorkerPanic = errors.New("parallel: worker panicked")
)

// RowRange is a half-open interval of rows [Start, End).
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range covers no rows.
func (r RowRange) Empty() bool {
	return r.End <= r.Start
}

// String returns the range as "[start,end)".
func (r RowRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Partition splits totalRows into workers contiguous, non-overlapping
// ranges in ascending order. Every range but the last holds exactly
// totalRows/workers rows; the last range extends to totalRows and absorbs
// the remainder. When workers > totalRows the leading ranges are empty.
func Partition(totalRows, workers int) ([]RowRange, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	if totalRows < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRows, totalRows)
	}

	rowsPerWorker := totalRows / workers
	ranges := make([]RowRange, workers)
	for i := range workers {
		ranges[i] = RowRange{
			Start: i * rowsPerWorker,
			End:   (i + 1) * rowsPerWorker,
		}
	}
	ranges[workers-1].End = totalRows

	return ranges, nil
}

// Run executes task once per range, each on its own goroutine, and blocks
// until every goroutine has returned.
//
// Every range must satisfy 0 <= Start <= End. Ranges are passed by value.
// If any task returns an error or panics the whole run fails; the error of
// the lowest-indexed failing range is returned after all goroutines have
// been joined.
func Run(ranges []RowRange, task func(RowRange) error) error {
	for i, r := range ranges {
		if r.Start < 0 || r.End < r.Start {
			return fmt.Errorf("%w: range %d is %v", ErrInvalidRange, i, r)
		}
	}

	errs := make([]error, len(ranges))

	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for i, r := range ranges {
		go func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					errs[i] = fmt.Errorf("%w: range %v: %v", ErrWorkerPanic, r, p)
				}
			}()
			errs[i] = task(r)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
