package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/config"
	"github.com/frobware/go-ipa/interpreter/sim"
	"github.com/frobware/go-ipa/interpreter/store/sqlite"
	"github.com/frobware/go-ipa/lock"
	"github.com/frobware/go-ipa/manager"
	"github.com/frobware/go-ipa/retry"
	"github.com/frobware/go-ipa/server"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/run/ipa/sock/ipa.sock", "unix:///run/ipa/sock/ipa.sock"},
		{"unix:///tmp/x.sock", "unix:///tmp/x.sock"},
		{"127.0.0.1:50061", "127.0.0.1:50061"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseAddress(tt.in), tt.in)
	}
}

func TestTranslateGRPCError(t *testing.T) {
	assert.NoError(t, translateGRPCError(nil))

	plain := errors.New("boom")
	assert.Same(t, plain, translateGRPCError(plain))

	assert.ErrorIs(t, translateGRPCError(status.Error(codes.Unimplemented, "suspend")), ipa.ErrNotSupported)
	assert.ErrorIs(t, translateGRPCError(status.Error(codes.Unavailable, "busy")), ipa.ErrTryAgain)
	assert.ErrorIs(t, translateGRPCError(status.Error(codes.NotFound, "handle 3")), ErrNotFound)

	err := translateGRPCError(status.Error(codes.InvalidArgument, "unknown resource"))
	assert.EqualError(t, err, "invalid argument: unknown resource")

	err = translateGRPCError(status.Error(codes.FailedPrecondition, "manager is not attached"))
	assert.EqualError(t, err, "manager is not attached")
}

// dialServer starts a daemon on emulated 4.5 hardware and returns a
// client connected over an in-memory listener.
func dialServer(t *testing.T) (Client, *manager.Manager, *sim.Backend) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	st, err := sqlite.NewInMemory(ctx, testLogger())
	require.NoError(t, err)
	dirs, err := config.NewRuntimeDirs(t.TempDir())
	require.NoError(t, err)

	hw := sim.New(ipa.HWv4_5, testLogger())
	mgr := manager.New(manager.Options{
		Hardware: hw,
		Store:    st,
		Mode:     ipa.HWModeEmulation,
		Clock:    &retry.FakeClock{},
		Logger:   testLogger(),
	})
	require.NoError(t, lock.Run(ctx, dirs.Lock(), func(ctx context.Context, scope lock.WriterScope) error {
		_, err := mgr.Attach(ctx, scope)
		return err
	}))

	lis := bufconn.Listen(1 << 20)
	done := make(chan error, 1)
	go func() { done <- server.New(mgr, testLogger()).Serve(ctx, lis) }()

	c, err := Dial("passthrough:///bufnet",
		WithLogger(testLogger()),
		WithGRPCOptions(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		})),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		c.Close()
		cancel()
		assert.NoError(t, <-done)
		st.Close()
	})
	return c, mgr, hw
}

func TestRemoteStatus(t *testing.T) {
	c, mgr, _ := dialServer(t)
	ctx := context.Background()

	_, err := mgr.Connect(ctx, ipa.WLAN1Cons, ipa.EndpointConfig{})
	require.NoError(t, err)

	st, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, ipa.Rev4_5, st.Revision)
	require.Len(t, st.Endpoints, 1)
	assert.Equal(t, ipa.WLAN1Cons, st.Endpoints[0].Client)
	assert.Equal(t, ipa.StateActive, st.Endpoints[0].State)

	assert.Equal(t, 23, st.Endpoints[0].Handle)

	ep, err := c.Endpoint(ctx, 23)
	require.NoError(t, err)
	assert.Equal(t, 16, ep.Channel)

	_, err = c.Endpoint(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoteSuspendResume(t *testing.T) {
	c, mgr, hw := dialServer(t)
	ctx := context.Background()

	handle, err := mgr.Connect(ctx, ipa.WLAN1Cons, ipa.EndpointConfig{})
	require.NoError(t, err)
	const ch = 16

	require.NoError(t, c.SuspendResource(ctx, "wlan_cons"))
	assert.False(t, hw.ChannelRunning(ch))

	ep, err := c.Endpoint(ctx, handle)
	require.NoError(t, err)
	assert.True(t, ep.Suspended)

	require.NoError(t, c.ResumeResource(ctx, "wlan_cons"))
	assert.True(t, hw.ChannelRunning(ch))

	hw.ScriptStop(ch, ipa.ErrTryAgain)
	assert.ErrorIs(t, c.SuspendResource(ctx, "wlan_cons"), ipa.ErrTryAgain)
}
