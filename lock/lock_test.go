package lock_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-ipa/lock"
)

func TestRun_ProvidesScope(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")
	called := false
	err := lock.Run(context.Background(), path, func(_ context.Context, scope lock.WriterScope) error {
		called = true
		assert.Greater(t, scope.FD(), 0)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRun_PropagatesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")
	boom := errors.New("boom")
	err := lock.Run(context.Background(), path, func(context.Context, lock.WriterScope) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestAcquire_ExcludesSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	held, err := lock.Acquire(context.Background(), path)
	require.NoError(t, err)

	// flock locks are per open file description, so a second open in
	// the same process contends.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err = lock.Run(ctx, path, func(context.Context, lock.WriterScope) error {
		t.Fatal("lock acquired while held")
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, held.Close())
	require.NoError(t, lock.Run(context.Background(), path, func(context.Context, lock.WriterScope) error { return nil }))
}

func TestAcquire_MissingDirectory(t *testing.T) {
	_, err := lock.Acquire(context.Background(), filepath.Join(t.TempDir(), "absent", ".lock"))
	assert.ErrorContains(t, err, "open lock file")
}
