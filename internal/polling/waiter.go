// Package polling implements the bounded client-side wait loop for results
// produced by background jobs. Callers poll a record until it reaches a
// terminal state instead of holding a request open across an AI call.
package polling

import (
	"context"
	"time"

	"mockmate/internal/domain"
)

// PollFunc checks once whether the awaited result is ready. It returns
// done=true when the owning record reached a terminal state.
type PollFunc func(ctx context.Context) (done bool, err error)

// Waiter polls at a fixed interval up to a fixed attempt ceiling.
type Waiter struct {
	Interval    time.Duration
	MaxAttempts int
}

// New creates a waiter, substituting defaults for non-positive settings.
func New(interval time.Duration, maxAttempts int) *Waiter {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 30
	}
	return &Waiter{Interval: interval, MaxAttempts: maxAttempts}
}

// Wait polls until done, the attempt ceiling is reached, or the context is
// cancelled. Exhausting the ceiling returns a still-processing error, which
// says nothing about the job itself: it may yet complete, and the caller can
// wait again.
func (w *Waiter) Wait(ctx context.Context, poll PollFunc) error {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for attempt := 0; attempt < w.MaxAttempts; attempt++ {
		done, err := poll(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return domain.NewError(domain.CodeStillProcessing, "result is still processing", nil)
}
