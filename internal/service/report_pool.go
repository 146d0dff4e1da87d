package service

import (
	"context"
	"sort"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/sourcegraph/conc/pool"
)

type indexedResult[R any] struct {
	index int
	value R
}

// fanOut runs fn for every item on at most concurrency goroutines and returns the
// results in the order of items. The first failure cancels the remaining work.
// A cancelled or expired ctx yields ErrIncomplete and never a partial result.
func fanOut[E, R any](ctx context.Context, concurrency int, items []E, fn func(ctx context.Context, item E) (R, error)) ([]R, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	p := pool.NewWithResults[indexedResult[R]]().
		WithContext(ctx).
		WithMaxGoroutines(concurrency).
		WithCancelOnError().
		WithFirstError()

	for i, item := range items {
		i, item := i, item
		p.Go(func(ctx context.Context) (indexedResult[R], error) {
			if err := ctx.Err(); err != nil {
				return indexedResult[R]{}, err
			}
			value, err := fn(ctx, item)
			if err != nil {
				return indexedResult[R]{}, err
			}
			return indexedResult[R]{index: i, value: value}, nil
		})
	}

	results, err := p.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, incomplete(ctxErr)
	}
	if err != nil {
		if ierr.Is(err, context.Canceled) || ierr.Is(err, context.DeadlineExceeded) {
			return nil, incomplete(err)
		}
		return nil, err
	}
	if len(results) != len(items) {
		return nil, ierr.NewErrorf("processed %d of %d items", len(results), len(items)).
			Mark(ierr.ErrIncomplete)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})

	out := make([]R, len(results))
	for i, r := range results {
		out[i] = r.value
	}
	return out, nil
}

func incomplete(err error) error {
	return ierr.WithError(err).
		WithHint("The report was cancelled before every student was processed").
		Mark(ierr.ErrIncomplete)
}

// interrupted marks err incomplete when ctx ended before err was returned.
// Store errors caused by the cancellation otherwise surface as database errors.
func interrupted(ctx context.Context, err error) error {
	if err == nil || ctx.Err() == nil || ierr.IsIncomplete(err) {
		return err
	}
	return incomplete(err)
}

// reportContext bounds a report run with the configured timeout
func (r billingReader) reportContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.Config == nil || r.Config.Billing.ReportTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.Config.Billing.ReportTimeout)
}

func (r billingReader) reportConcurrency() int {
	if r.Config == nil {
		return 1
	}
	return r.Config.Billing.ReportConcurrency
}
