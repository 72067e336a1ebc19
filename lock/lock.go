// Package lock provides the cross-process attach lock using flock(2).
// Only one process may program an IPA instance at a time.
//
// Mutating operations that require exclusive ownership of the
// hardware take a WriterScope. A WriterScope can only be obtained by
// running code under Run, so holding one proves the lock is held.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// WriterScope represents the dynamic execution region in which the
// attach lock is held. It is a capability, not a mutex: it cannot be
// constructed, locked, or unlocked by callers.
type WriterScope interface {
	// FD returns the raw lock file descriptor (for logging/diagnostics).
	FD() int

	// writerScopeMarker is unexported to prevent external implementations.
	writerScopeMarker()
}

// writerScope is the concrete implementation of WriterScope.
type writerScope struct {
	f *os.File
}

func (*writerScope) writerScopeMarker() {}

func (s *writerScope) FD() int {
	return int(s.f.Fd())
}

// Run acquires the attach lock, executes fn, then releases.
// Uses LOCK_EX|LOCK_NB with exponential backoff, respects ctx cancellation.
func Run(ctx context.Context, lockPath string, fn func(context.Context, WriterScope) error) error {
	f, err := acquireWriter(ctx, lockPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return fn(ctx, &writerScope{f: f})
}

// Held is a lock acquired for the lifetime of a long-running
// process, such as the daemon.
type Held struct {
	scope *writerScope
}

// Acquire takes the attach lock until Close is called.
func Acquire(ctx context.Context, lockPath string) (*Held, error) {
	f, err := acquireWriter(ctx, lockPath)
	if err != nil {
		return nil, err
	}
	return &Held{scope: &writerScope{f: f}}, nil
}

// Scope returns the capability proving the lock is held.
func (h *Held) Scope() WriterScope {
	return h.scope
}

// Close releases the lock.
func (h *Held) Close() error {
	if h == nil || h.scope == nil {
		return nil
	}
	return h.scope.f.Close()
}

// acquireWriter opens the lock file and acquires exclusive lock.
func acquireWriter(ctx context.Context, path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	backoff := 25 * time.Millisecond
	const maxBackoff = 500 * time.Millisecond

	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) {
			f.Close()
			return nil, fmt.Errorf("flock: %w", err)
		}

		select {
		case <-ctx.Done():
			f.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}

		if backoff < maxBackoff {
			backoff *= 2
		}
	}
}
