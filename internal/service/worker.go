package service

import (
	"context"
	"errors"
	"sync"
)

// TaskError accumulates multiple errors produced during bulk resolution.
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

// BulkResolver answers large sets of independent pairwise relationship
// queries using a worker pool. Each query runs to completion once started;
// cancellation takes effect between pairs.
type BulkResolver struct {
	service *KinshipService
	workers int
}

// NewBulkResolver creates a BulkResolver with the provided concurrency.
func NewBulkResolver(service *KinshipService, workers int) *BulkResolver {
	if workers <= 0 {
		workers = 4
	}
	return &BulkResolver{
		service: service,
		workers: workers,
	}
}

// ResolveAll resolves every pair concurrently. Results align by index with
// the input; pairs that failed hold the zero RelationshipResult and their
// errors are aggregated into a TaskError.
func (br *BulkResolver) ResolveAll(ctx context.Context, pairs []Pair) ([]RelationshipResult, error) {
	results := make([]RelationshipResult, len(pairs))
	err := br.run(ctx, len(pairs), func(idx int) error {
		res, err := br.service.Relationship(pairs[idx].A, pairs[idx].B)
		if err != nil {
			return err
		}
		results[idx] = res
		return nil
	})
	return results, err
}

func (br *BulkResolver) run(ctx context.Context, total int, workerFn func(idx int) error) error {
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

	for i := 0; i < br.workers; i++ {
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
