// Package fileproc provides concurrent batch-processing utilities that
// preserve input order, so parallel stages feed deterministic output into
// the detection passes downstream.
package fileproc

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// ProcessingError represents an error that occurred while processing a file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects multiple file processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker count.
// 2x is optimal for mixed I/O and CGO workloads.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each item is processed.
type ProgressFunc func()

// ErrorFunc is called when an item fails processing.
// Receives the item's path and the error. If nil, errors are silently skipped.
type ErrorFunc func(path string, err error)

func workerCount(maxWorkers int) int {
	if maxWorkers <= 0 {
		return runtime.NumCPU() * DefaultWorkerMultiplier
	}
	return maxWorkers
}

// Map processes items in parallel and returns one result per item, in input
// order. If maxWorkers is <= 0, defaults to 2x NumCPU.
func Map[T, R any](items []T, maxWorkers int, fn func(T) R, onProgress ProgressFunc) []R {
	if len(items) == 0 {
		return nil
	}

	results := make([]R, len(items))

	p := pool.New().WithMaxGoroutines(workerCount(maxWorkers))
	for i, item := range items {
		p.Go(func() {
			results[i] = fn(item)
			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()

	return results
}

// FilterMap processes items in parallel, dropping items whose fn returns an
// error. Successful results keep their relative input order. The path
// function names an item for error reporting.
func FilterMap[T, R any](items []T, maxWorkers int, path func(T) string, fn func(T) (R, error), onProgress ProgressFunc, onError ErrorFunc) []R {
	if len(items) == 0 {
		return nil
	}

	results := make([]R, len(items))
	ok := make([]bool, len(items))

	p := pool.New().WithMaxGoroutines(workerCount(maxWorkers))
	for i, item := range items {
		p.Go(func() {
			r, err := fn(item)
			if err != nil {
				if onError != nil {
					onError(path(item), err)
				}
			} else {
				results[i] = r
				ok[i] = true
			}
			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()

	kept := results[:0]
	for i, good := range ok {
		if good {
			kept = append(kept, results[i])
		}
	}
	return kept
}

// ForEach runs fn over items in parallel with no result collection.
func ForEach[T any](items []T, maxWorkers int, fn func(T), onProgress ProgressFunc) {
	if len(items) == 0 {
		return
	}

	p := pool.New().WithMaxGoroutines(workerCount(maxWorkers))
	for _, item := range items {
		p.Go(func() {
			fn(item)
			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()
}
