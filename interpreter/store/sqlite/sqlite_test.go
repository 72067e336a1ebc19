package sqlite_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/interpreter"
	"github.com/frobware/go-ipa/interpreter/store"
	"github.com/frobware/go-ipa/interpreter/store/sqlite"
)

// testLogger returns a logger for tests. By default it discards all output.
// Set IPA_TEST_VERBOSE=1 to enable logging.
func testLogger() *slog.Logger {
	if os.Getenv("IPA_TEST_VERBOSE") != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) interpreter.Store {
	t.Helper()
	s, err := sqlite.NewInMemory(context.Background(), testLogger())
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { s.Close() })
	return s
}

// testEndpoint returns a journalled USB_PROD endpoint.
func testEndpoint() ipa.EndpointStatus {
	return ipa.EndpointStatus{
		Handle:    1,
		Client:    ipa.USBProd,
		Pipe:      1,
		Channel:   0,
		State:     ipa.StateActive,
		KeepAwake: true,
		Session:   "5f0c6d1e-7a51-4c55-8f0a-2a4f7c0f1d11",
		Config: ipa.EndpointConfig{
			Mode: &ipa.ModeConfig{Mode: ipa.ModeDMA, Dst: ipa.USBCons},
			Seq:  &ipa.SeqConfig{Type: ipa.SeqDMAOnly},
			Aggr: &ipa.AggrConfig{Enable: ipa.AggrEnabled, TimeLimitUs: 5000},
		},
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestEndpoint_SaveGetRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	want := testEndpoint()
	require.NoError(t, s.SaveEndpoint(ctx, want))

	got, err := s.GetEndpoint(ctx, want.Pipe)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("endpoint mismatch (-want +got):\n%s", diff)
	}
}

func TestEndpoint_SaveReplaces(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ep := testEndpoint()
	require.NoError(t, s.SaveEndpoint(ctx, ep))

	ep.State = ipa.StateSuspended
	ep.Suspended = true
	require.NoError(t, s.SaveEndpoint(ctx, ep))

	all, err := s.ListEndpoints(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, ipa.StateSuspended, all[0].State)
	assert.True(t, all[0].Suspended)
}

func TestEndpoint_GetMissing(t *testing.T) {
	s := newStore(t)
	_, err := s.GetEndpoint(context.Background(), 7)
	assert.True(t, errors.Is(err, store.ErrNotFound), "got %v", err)
}

func TestEndpoint_DeleteMissing(t *testing.T) {
	s := newStore(t)
	err := s.DeleteEndpoint(context.Background(), 7)
	assert.True(t, errors.Is(err, store.ErrNotFound), "got %v", err)
}

func TestEndpoint_ListOrderedByPipe(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for i, c := range []ipa.Client{ipa.AppsLANCons, ipa.USBProd, ipa.WLAN1Cons} {
		ep := testEndpoint()
		ep.Client = c
		ep.Handle = 10 - i
		ep.Pipe = 20 - i*5
		require.NoError(t, s.SaveEndpoint(ctx, ep))
	}

	all, err := s.ListEndpoints(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{10, 15, 20}, []int{all[0].Pipe, all[1].Pipe, all[2].Pipe})
	assert.Equal(t, ipa.WLAN1Cons, all[0].Client)
}

func TestEndpoint_ClientIsUnique(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ep := testEndpoint()
	require.NoError(t, s.SaveEndpoint(ctx, ep))

	ep.Pipe = 9
	assert.Error(t, s.SaveEndpoint(ctx, ep), "same client on a second pipe")
}

func TestRunInTransaction_RollbackOnError(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.RunInTransaction(ctx, func(tx interpreter.Store) error {
		if err := tx.SaveEndpoint(ctx, testEndpoint()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := s.ListEndpoints(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "rolled back save must not be visible")
}

func TestRunInTransaction_Commit(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ep := testEndpoint()
	require.NoError(t, s.SaveEndpoint(ctx, ep))

	err := s.RunInTransaction(ctx, func(tx interpreter.Store) error {
		if err := tx.DeleteEndpoint(ctx, ep.Pipe); err != nil {
			return err
		}
		ep.Pipe = 4
		return tx.SaveEndpoint(ctx, ep)
	})
	require.NoError(t, err)

	_, err = s.GetEndpoint(ctx, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
	got, err := s.GetEndpoint(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, ipa.USBProd, got.Client)
}

func TestAttach_Latest(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.LatestAttach(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	first := interpreter.AttachRecord{
		Revision:   ipa.Rev4_0,
		HWType:     ipa.HWv4_0,
		Mode:       ipa.HWModeNormal,
		Session:    "a",
		AttachedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	second := interpreter.AttachRecord{
		Revision:   ipa.Rev4_5_AUTO_MHI,
		HWType:     ipa.HWv4_5,
		Mode:       ipa.HWModeEmulation,
		Session:    "b",
		AttachedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveAttach(ctx, first))
	require.NoError(t, s.SaveAttach(ctx, second))

	got, err := s.LatestAttach(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestNew_FileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "ipa.db")

	s, err := sqlite.New(ctx, path, testLogger())
	require.NoError(t, err)
	require.NoError(t, s.SaveEndpoint(ctx, testEndpoint()))
	require.NoError(t, s.Close())

	s, err = sqlite.New(ctx, path, testLogger())
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetEndpoint(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ipa.USBProd, got.Client)
}
