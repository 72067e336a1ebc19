package power_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-ipa/interpreter/sim"
	"github.com/frobware/go-ipa/power"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingDomain struct{}

func (failingDomain) Vote(context.Context) error   { return errors.New("no clock") }
func (failingDomain) Unvote(context.Context) error { return nil }

func TestAcquire_VotesOnceAndReleasesLast(t *testing.T) {
	hw := sim.New(0, testLogger())
	tr := power.NewTracker(hw, testLogger())
	ctx := context.Background()

	r1, err := tr.Acquire(ctx, "configure")
	require.NoError(t, err)
	r2, err := tr.Acquire(ctx, "stop")
	require.NoError(t, err)

	assert.Equal(t, 2, tr.Count())
	assert.Equal(t, 1, hw.Votes(), "only the first reference votes")
	assert.Equal(t, map[string]int{"configure": 1, "stop": 1}, tr.Holders())

	r1()
	assert.Equal(t, 1, hw.Votes(), "clock stays on while a reference is held")
	r2()
	assert.Equal(t, 0, hw.Votes())
	assert.Equal(t, 0, tr.Count())
	assert.Empty(t, tr.Holders())

	assert.Equal(t, []string{"vote", "unvote"}, hw.OpStrings())
}

func TestRelease_Idempotent(t *testing.T) {
	hw := sim.New(0, testLogger())
	tr := power.NewTracker(hw, testLogger())

	release, err := tr.Acquire(context.Background(), "connect")
	require.NoError(t, err)
	release()
	release()

	assert.Equal(t, 0, tr.Count())
	assert.Equal(t, []string{"vote", "unvote"}, hw.OpStrings())
}

func TestAcquire_VoteFailure(t *testing.T) {
	tr := power.NewTracker(failingDomain{}, testLogger())

	release, err := tr.Acquire(context.Background(), "attach")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vote clock for attach")
	assert.Nil(t, release)
	assert.Equal(t, 0, tr.Count())
}
