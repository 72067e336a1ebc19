package client

import (
	"io"
	"log/slog"

	"google.golang.org/grpc"

	"github.com/frobware/go-ipa/config"
)

// DefaultSocketPath returns the daemon socket under the default
// runtime directory.
func DefaultSocketPath() string {
	return config.DefaultRuntimeDirs().SocketPath()
}

// Option configures Dial.
type Option func(*dialOptions)

type dialOptions struct {
	logger   *slog.Logger
	grpcOpts []grpc.DialOption
}

// WithLogger sets the logger for client operations. The default
// discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *dialOptions) { o.logger = l }
}

// WithGRPCOptions appends gRPC dial options, e.g. a custom dialer.
func WithGRPCOptions(opts ...grpc.DialOption) Option {
	return func(o *dialOptions) { o.grpcOpts = append(o.grpcOpts, opts...) }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Dial connects to a daemon. The address can be:
//   - "host:port" for TCP
//   - "unix:///path/to/socket" or "/path/to/socket" for a Unix socket
//
// The connection is established lazily. The returned client must be
// closed.
func Dial(address string, opts ...Option) (Client, error) {
	o := &dialOptions{logger: discardLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return newRemote(address, o)
}
