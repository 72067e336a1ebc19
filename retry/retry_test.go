package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-ipa/retry"
)

var errBusy = errors.New("busy")

func isBusy(err error) bool { return errors.Is(err, errBusy) }

func TestDo_SucceedsAfterRetries(t *testing.T) {
	clock := &retry.FakeClock{}
	p := retry.Policy{Attempts: 5, Min: time.Millisecond, Max: 8 * time.Millisecond, Factor: 2}

	var seen []int
	n, err := p.Do(context.Background(), clock, isBusy, func(attempt int) error {
		seen = append(seen, attempt)
		if attempt < 3 {
			return errBusy
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}, clock.Sleeps())
}

func TestDo_Exhausted(t *testing.T) {
	clock := &retry.FakeClock{}
	p := retry.Policy{Attempts: 3, Min: time.Millisecond, Max: 2 * time.Millisecond, Factor: 2}

	n, err := p.Do(context.Background(), clock, isBusy, func(int) error { return errBusy })
	assert.Equal(t, 3, n)

	var ex *retry.ExhaustedError
	require.ErrorAs(t, err, &ex)
	assert.Equal(t, 3, ex.Attempts)
	assert.ErrorIs(t, err, errBusy)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, clock.Sleeps(), "capped at Max")
}

func TestDo_HardErrorStopsImmediately(t *testing.T) {
	clock := &retry.FakeClock{}
	p := retry.Policy{Attempts: 10, Min: time.Millisecond, Max: time.Second, Factor: 2}
	hard := errors.New("hard")

	n, err := p.Do(context.Background(), clock, isBusy, func(int) error { return hard })
	assert.Equal(t, 1, n)
	assert.Same(t, hard, err)
	assert.Empty(t, clock.Sleeps())
}

func TestDo_CancelledWhileSleeping(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := retry.Policy{Attempts: 3, Min: time.Hour, Max: time.Hour, Factor: 2}

	n, err := p.Do(ctx, retry.RealClock(), isBusy, func(int) error {
		cancel()
		return errBusy
	})
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_, err := retry.Policy{}.Do(context.Background(), &retry.FakeClock{}, isBusy, func(int) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
