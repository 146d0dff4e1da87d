package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOut_KeepsInputOrder(t *testing.T) {
	items := lo.Range(50)

	var running, peak int32
	results, err := fanOut(context.Background(), 4, items, func(_ context.Context, n int) (int, error) {
		current := atomic.AddInt32(&running, 1)
		for {
			seen := atomic.LoadInt32(&peak)
			if current <= seen || atomic.CompareAndSwapInt32(&peak, seen, current) {
				break
			}
		}
		// later items finish first
		time.Sleep(time.Duration(50-n) * 100 * time.Microsecond)
		atomic.AddInt32(&running, -1)
		return n * n, nil
	})

	require.NoError(t, err)
	require.Len(t, results, len(items))
	for i, r := range results {
		assert.Equal(t, i*i, r)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(4))
}

func TestFanOut_Empty(t *testing.T) {
	results, err := fanOut(context.Background(), 2, []string{}, func(_ context.Context, s string) (string, error) {
		return s, nil
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFanOut_PropagatesFirstError(t *testing.T) {
	_, err := fanOut(context.Background(), 1, lo.Range(10), func(_ context.Context, n int) (int, error) {
		if n == 3 {
			return 0, ierr.NewErrorf("item %d failed", n).Mark(ierr.ErrNoEffectiveFee)
		}
		return n, nil
	})

	require.Error(t, err)
	assert.True(t, ierr.IsNoEffectiveFee(err))
	assert.False(t, ierr.IsIncomplete(err))
}

func TestFanOut_CancelledContextIsIncomplete(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	results, err := fanOut(ctx, 2, lo.Range(10), func(_ context.Context, n int) (int, error) {
		atomic.AddInt32(&calls, 1)
		return n, nil
	})

	assert.Nil(t, results)
	assert.True(t, ierr.IsIncomplete(err), "got %v", err)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestFanOut_DeadlineIsIncomplete(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	results, err := fanOut(ctx, 1, lo.Range(5), func(ctx context.Context, n int) (int, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Second):
			return n, nil
		}
	})

	assert.Nil(t, results)
	assert.True(t, ierr.IsIncomplete(err), "got %v", err)
}

func TestFanOut_NonPositiveConcurrencyRunsSerially(t *testing.T) {
	results, err := fanOut(context.Background(), 0, []int{3, 1, 2}, func(_ context.Context, n int) (int, error) {
		return n + 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 3}, results)
}
