package manager_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/config"
	"github.com/frobware/go-ipa/epmap"
	"github.com/frobware/go-ipa/interpreter"
	"github.com/frobware/go-ipa/interpreter/sim"
	"github.com/frobware/go-ipa/interpreter/store/sqlite"
	"github.com/frobware/go-ipa/lock"
	"github.com/frobware/go-ipa/manager"
	"github.com/frobware/go-ipa/retry"
)

// testLogger returns a logger for tests. By default it discards all output.
// Set IPA_TEST_VERBOSE=1 to enable logging.
func testLogger() *slog.Logger {
	if os.Getenv("IPA_TEST_VERBOSE") != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testFixture provides access to all components for verification.
type testFixture struct {
	Manager *manager.Manager
	HW      *sim.Backend
	Store   interpreter.Store
	Clock   *retry.FakeClock
	Dirs    config.RuntimeDirs
	t       *testing.T
}

type fixtureOption func(*manager.Options)

func withPlatform(p ipa.Platform) fixtureOption {
	return func(o *manager.Options) { o.Platform = p }
}

// newTestFixture creates a manager over the emulation backend
// reporting hw. It is not attached.
func newTestFixture(t *testing.T, hw ipa.HWType, opts ...fixtureOption) *testFixture {
	t.Helper()
	store, err := sqlite.NewInMemory(context.Background(), testLogger())
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })
	dirs, err := config.NewRuntimeDirs(t.TempDir())
	require.NoError(t, err, "failed to create runtime dirs")

	backend := sim.New(hw, testLogger())
	clock := &retry.FakeClock{}
	o := manager.Options{
		Hardware: backend,
		Store:    store,
		Mode:     ipa.HWModeNormal,
		Clock:    clock,
		Logger:   testLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &testFixture{
		Manager: manager.New(o),
		HW:      backend,
		Store:   store,
		Clock:   clock,
		Dirs:    dirs,
		t:       t,
	}
}

// newAttachedFixture creates a fixture, attaches it and clears the
// attach writes from the operation log.
func newAttachedFixture(t *testing.T, hw ipa.HWType, opts ...fixtureOption) *testFixture {
	t.Helper()
	f := newTestFixture(t, hw, opts...)
	f.Attach()
	f.HW.ResetOps()
	return f
}

// Attach attaches the manager under the attach lock.
func (f *testFixture) Attach() interpreter.AttachRecord {
	f.t.Helper()
	var rec interpreter.AttachRecord
	err := lock.Run(context.Background(), f.Dirs.Lock(), func(ctx context.Context, scope lock.WriterScope) error {
		var err error
		rec, err = f.Manager.Attach(ctx, scope)
		return err
	})
	require.NoError(f.t, err, "attach failed")
	return rec
}

// Table returns the frozen endpoint table.
func (f *testFixture) Table() *epmap.Table {
	f.t.Helper()
	table, err := f.Manager.Table()
	require.NoError(f.t, err)
	return table
}

// Pipe returns the pipe of c on the active revision.
func (f *testFixture) Pipe(c ipa.Client) int {
	f.t.Helper()
	pipe, err := f.Table().PipeIndexFor(c)
	require.NoError(f.t, err)
	return pipe
}

// Channel returns the GSI channel of c on the active revision.
func (f *testFixture) Channel(c ipa.Client) int {
	f.t.Helper()
	ch, err := f.Table().GSIChannelFor(c)
	require.NoError(f.t, err)
	return ch
}

// Connect connects c and fails the test on error.
func (f *testFixture) Connect(c ipa.Client, cfg ipa.EndpointConfig, opts ...manager.ConnectOption) int {
	f.t.Helper()
	h, err := f.Manager.Connect(context.Background(), c, cfg, opts...)
	require.NoError(f.t, err, "connect %s", c)
	return h
}

// Registers returns the registers written for index, in order.
func (f *testFixture) Registers(index int) []ipa.Register {
	f.t.Helper()
	var regs []ipa.Register
	for _, op := range f.HW.Writes(index) {
		regs = append(regs, op.Reg)
	}
	return regs
}

// State returns the state of the endpoint behind handle.
func (f *testFixture) State(handle int) ipa.EndpointState {
	f.t.Helper()
	st, err := f.Manager.Endpoint(handle)
	require.NoError(f.t, err)
	return st.State
}

// AssertHWOps verifies the sequence of hardware operations.
func (f *testFixture) AssertHWOps(expected []string) {
	f.t.Helper()
	assert.Equal(f.t, expected, f.HW.OpStrings(), "hardware operations mismatch")
}

// AssertPowerReleased verifies no power references or clock votes
// are left behind.
func (f *testFixture) AssertPowerReleased() {
	f.t.Helper()
	assert.Equal(f.t, 0, f.Manager.ActiveClients(), "power references leaked")
	assert.Equal(f.t, 0, f.HW.Votes(), "clock votes leaked")
}

// AssertJournalEmpty verifies no endpoints remain in the store.
func (f *testFixture) AssertJournalEmpty() {
	f.t.Helper()
	all, err := f.Store.ListEndpoints(context.Background())
	require.NoError(f.t, err)
	assert.Empty(f.t, all, "expected no journalled endpoints")
}

func write(reg ipa.Register, index int) string {
	return fmt.Sprintf("write %s[%d]", reg, index)
}
