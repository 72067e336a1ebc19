// Package retry runs an operation under a bounded attempt budget,
// sleeping on an injectable clock between attempts.
package retry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jpillora/backoff"
)

// Clock sleeps. Sleep returns early with the context error when ctx is
// done.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

// RealClock returns a Clock backed by time.Timer.
func RealClock() Clock { return realClock{} }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FakeClock records requested sleeps without blocking.
type FakeClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

// Sleep records d.
func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	return nil
}

// Sleeps returns every recorded sleep in order.
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// Policy bounds an operation to Attempts tries. Sleeps between tries
// grow from Min by Factor up to Max.
type Policy struct {
	Attempts int
	Min      time.Duration
	Max      time.Duration
	Factor   float64
}

// ExhaustedError is returned when every attempt failed with a
// retryable error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Do calls fn until it succeeds, returns an error retryable rejects,
// or the budget is spent. fn receives the zero-based attempt number.
// It returns the number of attempts made.
func (p Policy) Do(ctx context.Context, clock Clock, retryable func(error) bool, fn func(attempt int) error) (int, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	b := &backoff.Backoff{Min: p.Min, Max: p.Max, Factor: p.Factor}

	var last error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if err := clock.Sleep(ctx, b.Duration()); err != nil {
				return i, err
			}
		}
		last = fn(i)
		if last == nil {
			return i + 1, nil
		}
		if !retryable(last) {
			return i + 1, last
		}
	}
	return attempts, &ExhaustedError{Attempts: attempts, Last: last}
}
