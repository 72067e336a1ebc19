package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/cmd/ipactl/cli"
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

// run parses args and runs the selected command, returning its
// output. The config file never exists so defaults apply.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := cli.CLI{Out: &out}
	parser, err := kong.New(&c, cli.KongOptions()...)
	require.NoError(t, err)

	args = append([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, args...)
	ctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	err = ctx.Run(&c)
	return out.String(), err
}

func TestRevisions(t *testing.T) {
	out, err := run(t, "revisions")
	require.NoError(t, err)
	assert.Contains(t, out, "REVISION")
	assert.Contains(t, out, "4.5_AUTO_MHI")
	assert.Contains(t, out, "5.5_XR")
}

func TestMap_JSON(t *testing.T) {
	out, err := run(t, "map", "--revision", "4.5", "--client", "usb_prod", "-o", "json")
	require.NoError(t, err)

	var rows []struct {
		Client string `json:"client"`
		Entry  struct {
			GSI struct {
				Pipe    int `json:"pipe"`
				Channel int `json:"channel"`
			} `json:"gsi"`
		} `json:"entry"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "USB_PROD", rows[0].Client)
	assert.Equal(t, 1, rows[0].Entry.GSI.Pipe)
	assert.Equal(t, 0, rows[0].Entry.GSI.Channel)
}

func TestMap_Unmapped(t *testing.T) {
	_, err := run(t, "map", "--revision", "4.5", "--client", "HSIC1_PROD")
	assert.ErrorContains(t, err, "HSIC1_PROD is not mapped on 4.5")
}

func TestMap_UnknownRevision(t *testing.T) {
	_, err := run(t, "map", "--revision", "9.9")
	assert.ErrorContains(t, err, `unknown revision "9.9"`)
}

func TestLimits(t *testing.T) {
	out, err := run(t, "limits", "--revision", "4.5")
	require.NoError(t, err)
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "4.5: limits valid")
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		rev, usec, want string
	}{
		{"4.5", "500", "500us on 4.5: pulse generator 0 (100us) x 5\n"},
		{"4.5", "5000", "5000us on 4.5: pulse generator 1 (1ms) x 5\n"},
		{"4.0", "1000", "1000us on 4.0: legacy value 2\n"},
		{"4.5", "0", "0us on 4.5: disabled\n"},
	}
	for _, tt := range tests {
		t.Run(tt.rev+"/"+tt.usec, func(t *testing.T) {
			out, err := run(t, "quantize", "--revision", tt.rev, tt.usec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestQuantize_Unrepresentable(t *testing.T) {
	_, err := run(t, "quantize", "--revision", "4.5", "37")
	var unrep ipa.ErrUnrepresentable
	require.True(t, errors.As(err, &unrep), "got %v", err)
	assert.Equal(t, uint32(37), unrep.Micros)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "revisions valid")
}

func TestStatus(t *testing.T) {
	// Unix socket paths are short; t.TempDir can exceed the limit.
	dir, err := os.MkdirTemp("", "ipactl")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	sock := filepath.Join(dir, "ipa.sock")

	ctx, cancel := context.WithCancel(context.Background())
	st, err := sqlite.NewInMemory(ctx, testLogger())
	require.NoError(t, err)

	hw := sim.New(ipa.HWv4_5, testLogger())
	mgr := manager.New(manager.Options{
		Hardware: hw,
		Store:    st,
		Mode:     ipa.HWModeEmulation,
		Clock:    &retry.FakeClock{},
		Logger:   testLogger(),
	})
	require.NoError(t, lock.Run(ctx, filepath.Join(dir, "lock"), func(ctx context.Context, scope lock.WriterScope) error {
		_, err := mgr.Attach(ctx, scope)
		return err
	}))
	_, err = mgr.Connect(ctx, ipa.USBCons, ipa.EndpointConfig{})
	require.NoError(t, err)

	lis, err := net.Listen("unix", sock)
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- server.New(mgr, testLogger()).Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
		st.Close()
	})

	out, err := run(t, "status", "--remote", sock)
	require.NoError(t, err)
	assert.Contains(t, out, "revision:       4.5 (hw 4.5, emulation)")
	assert.Contains(t, out, "USB_CONS")

	out, err = run(t, "status", "--remote", "unix://"+sock, "-o", "json")
	require.NoError(t, err)
	var got struct {
		Endpoints []struct {
			Handle int `json:"handle"`
		} `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Endpoints, 1)
	assert.Equal(t, 19, got.Endpoints[0].Handle)
}
