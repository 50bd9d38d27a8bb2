package polling

import (
	"context"
	"errors"
	"testing"
	"time"

	"mockmate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaiter_Wait(t *testing.T) {
	ctx := context.Background()

	t.Run("returns immediately when the first poll is done", func(t *testing.T) {
		w := New(time.Hour, 3)
		calls := 0
		err := w.Wait(ctx, func(context.Context) (bool, error) {
			calls++
			return true, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("polls until done", func(t *testing.T) {
		w := New(time.Millisecond, 10)
		calls := 0
		err := w.Wait(ctx, func(context.Context) (bool, error) {
			calls++
			return calls == 3, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausting the attempt budget is still-processing", func(t *testing.T) {
		w := New(time.Millisecond, 4)
		calls := 0
		err := w.Wait(ctx, func(context.Context) (bool, error) {
			calls++
			return false, nil
		})

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeStillProcessing, domainErr.Code)
		assert.Equal(t, 4, calls)
	})

	t.Run("poll errors surface unchanged", func(t *testing.T) {
		w := New(time.Millisecond, 5)
		sentinel := errors.New("backend gone")
		err := w.Wait(ctx, func(context.Context) (bool, error) {
			return false, sentinel
		})
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("cancellation stops the loop", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		w := New(time.Hour, 5)
		err := w.Wait(cancelCtx, func(context.Context) (bool, error) {
			cancel()
			return false, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("defaults replace non-positive settings", func(t *testing.T) {
		w := New(0, 0)
		assert.Equal(t, 5*time.Second, w.Interval)
		assert.Equal(t, 30, w.MaxAttempts)
	})
}
