package server_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/config"
	"github.com/frobware/go-ipa/interpreter/sim"
	"github.com/frobware/go-ipa/interpreter/store/sqlite"
	"github.com/frobware/go-ipa/lock"
	"github.com/frobware/go-ipa/manager"
	"github.com/frobware/go-ipa/retry"
	"github.com/frobware/go-ipa/server"
	"github.com/frobware/go-ipa/server/pb"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	mgr    *manager.Manager
	hw     *sim.Backend
	client pb.DiagnosticsClient
}

// newFixture serves a manager attached to emulated 4.5 hardware over
// an in-memory listener.
func newFixture(t *testing.T) *fixture {
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

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		assert.NoError(t, <-done)
		st.Close()
	})
	return &fixture{mgr: mgr, hw: hw, client: pb.NewDiagnosticsClient(conn)}
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.mgr.Connect(ctx, ipa.USBCons, ipa.EndpointConfig{
		HOLB: &ipa.HOLBConfig{Enable: true, TimerUs: 500},
	})
	require.NoError(t, err)

	reply, err := f.client.Status(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	var got pb.Status
	require.NoError(t, pb.Decode(reply, &got))
	assert.Equal(t, ipa.Rev4_5, got.Revision)
	assert.Equal(t, "4.5", got.HWType)
	assert.Equal(t, "emulation", got.Mode)
	assert.NotEmpty(t, got.Session)
	assert.Equal(t, 0, got.ActiveClients)
	require.Len(t, got.Endpoints, 1)

	ep := got.Endpoints[0]
	assert.Equal(t, 19, ep.Handle)
	assert.Equal(t, ipa.USBCons, ep.Client)
	assert.Equal(t, ipa.StateActive, ep.State)
	require.NotNil(t, ep.Config.HOLB)
	assert.Equal(t, uint32(500), ep.Config.HOLB.TimerUs)
}

func TestEndpoint_NotFound(t *testing.T) {
	f := newFixture(t)

	req, err := pb.Encode(pb.EndpointRequest{Handle: 3})
	require.NoError(t, err)
	_, err = f.client.Endpoint(context.Background(), req)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestSuspendResumeResource(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h, err := f.mgr.Connect(ctx, ipa.WLAN1Cons, ipa.EndpointConfig{})
	require.NoError(t, err)

	req, err := pb.Encode(pb.ResourceRequest{Resource: "wlan_cons"})
	require.NoError(t, err)

	_, err = f.client.SuspendResource(ctx, req)
	require.NoError(t, err)
	epReq, err := pb.Encode(pb.EndpointRequest{Handle: h})
	require.NoError(t, err)
	reply, err := f.client.Endpoint(ctx, epReq)
	require.NoError(t, err)
	var st ipa.EndpointStatus
	require.NoError(t, pb.Decode(reply, &st))
	assert.True(t, st.Suspended)
	assert.Equal(t, ipa.StateStopped, st.State)

	_, err = f.client.ResumeResource(ctx, req)
	require.NoError(t, err)
	assert.True(t, f.hw.ChannelRunning(16))
}

func TestSuspendResource_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad, err := pb.Encode(pb.ResourceRequest{Resource: "bluetooth"})
	require.NoError(t, err)
	_, err = f.client.SuspendResource(ctx, bad)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = f.mgr.Connect(ctx, ipa.WLAN2Cons, ipa.EndpointConfig{})
	require.NoError(t, err)
	f.hw.ScriptStop(8, ipa.ErrTryAgain)
	req, err := pb.Encode(pb.ResourceRequest{Resource: "wlan_cons"})
	require.NoError(t, err)
	_, err = f.client.SuspendResource(ctx, req)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}
