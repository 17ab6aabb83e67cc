package service

import (
	"context"
	"errors"
	"sync"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

// TaskError accumulates multiple errors produced during concurrent batch
// loading.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BatchLoader loads one named input (typically a file path) into a
// validated transaction slice. Implementations live in cmd/analyze, backed
// by internal/ingress.
type BatchLoader func(ctx context.Context, source string) ([]domain.Transaction, error)

// BulkLoader concurrently loads multiple transaction-batch sources using a
// bounded worker pool: a channel of indices feeds a fixed set of goroutines,
// and per-source errors collect into one TaskError rather than aborting the
// whole run on the first failure. Results preserve input order.
type BulkLoader struct {
	load    BatchLoader
	workers int
}

// NewBulkLoader creates a BulkLoader with the given concurrency.
func NewBulkLoader(load BatchLoader, workers int) *BulkLoader {
	if workers <= 0 {
		workers = 4
	}
	return &BulkLoader{load: load, workers: workers}
}

// LoadAll loads every source concurrently and returns one transaction slice
// per source, in the same order as sources. A context cancellation during
// the run is returned immediately instead of being folded into the
// TaskError.
func (bl *BulkLoader) LoadAll(ctx context.Context, sources []string) ([][]domain.Transaction, error) {
	results := make([][]domain.Transaction, len(sources))
	err := bl.run(ctx, len(sources), func(idx int) error {
		txs, err := bl.load(ctx, sources[idx])
		if err != nil {
			return err
		}
		results[idx] = txs
		return nil
	})
	return results, err
}

func (bl *BulkLoader) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bl.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
