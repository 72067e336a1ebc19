// Package power tracks the clients that need the IPA clock on.
//
// The first reference votes the clock on and the last release votes
// it off. Callers take a reference for the duration of any operation
// that touches registers or channels:
//
//	release, err := tracker.Acquire(ctx, "configure")
//	if err != nil {
//	    return err
//	}
//	defer release()
package power

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Domain votes the platform clock on and off.
type Domain interface {
	Vote(ctx context.Context) error
	Unvote(ctx context.Context) error
}

// Tracker reference counts active clients over a Domain.
type Tracker struct {
	mu      sync.Mutex
	domain  Domain
	count   int
	reasons map[string]int
	logger  *slog.Logger
}

// NewTracker returns a tracker with no references held.
func NewTracker(domain Domain, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		domain:  domain,
		reasons: make(map[string]int),
		logger:  logger.With("component", "power"),
	}
}

// Acquire takes a reference. The returned release drops it; calling
// release more than once has no further effect.
func (t *Tracker) Acquire(ctx context.Context, reason string) (release func(), err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.count == 0 {
		if err := t.domain.Vote(ctx); err != nil {
			return nil, fmt.Errorf("vote clock for %s: %w", reason, err)
		}
		t.logger.DebugContext(ctx, "clock voted on", "reason", reason)
	}
	t.count++
	t.reasons[reason]++

	var once sync.Once
	return func() {
		once.Do(func() { t.release(reason) })
	}, nil
}

func (t *Tracker) release(reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.count--
	if t.reasons[reason]--; t.reasons[reason] == 0 {
		delete(t.reasons, reason)
	}
	if t.count > 0 {
		return
	}
	// The caller's context may already be cancelled; the unvote must
	// still reach the platform.
	if err := t.domain.Unvote(context.Background()); err != nil {
		t.logger.Error("clock unvote failed", "reason", reason, "error", err)
		return
	}
	t.logger.Debug("clock voted off", "reason", reason)
}

// Count returns the number of references held.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Holders returns the reference count per reason.
func (t *Tracker) Holders() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.reasons))
	for k, v := range t.reasons {
		out[k] = v
	}
	return out
}
