package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/server/pb"
)

// remoteClient translates between domain types and the Diagnostics
// wire messages.
type remoteClient struct {
	client pb.DiagnosticsClient
	conn   *grpc.ClientConn
	logger *slog.Logger
}

func newRemote(address string, o *dialOptions) (Client, error) {
	target := parseAddress(address)
	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, o.grpcOpts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", target, err)
	}
	return &remoteClient{
		client: pb.NewDiagnosticsClient(conn),
		conn:   conn,
		logger: o.logger.With("component", "client"),
	}, nil
}

// parseAddress normalises an address for gRPC. Absolute paths are
// Unix sockets.
func parseAddress(address string) string {
	if strings.HasPrefix(address, "/") {
		return "unix://" + address
	}
	return address
}

func (c *remoteClient) Close() error {
	return c.conn.Close()
}

func (c *remoteClient) Status(ctx context.Context) (pb.Status, error) {
	reply, err := c.client.Status(ctx, &emptypb.Empty{})
	if err != nil {
		return pb.Status{}, translateGRPCError(err)
	}
	var st pb.Status
	if err := pb.Decode(reply, &st); err != nil {
		return pb.Status{}, err
	}
	c.logger.DebugContext(ctx, "status", "revision", st.Revision, "endpoints", len(st.Endpoints))
	return st, nil
}

func (c *remoteClient) Endpoint(ctx context.Context, handle int) (ipa.EndpointStatus, error) {
	req, err := pb.Encode(pb.EndpointRequest{Handle: handle})
	if err != nil {
		return ipa.EndpointStatus{}, err
	}
	reply, err := c.client.Endpoint(ctx, req)
	if err != nil {
		return ipa.EndpointStatus{}, translateGRPCError(err)
	}
	var st ipa.EndpointStatus
	if err := pb.Decode(reply, &st); err != nil {
		return ipa.EndpointStatus{}, err
	}
	return st, nil
}

func (c *remoteClient) SuspendResource(ctx context.Context, resource string) error {
	req, err := pb.Encode(pb.ResourceRequest{Resource: resource})
	if err != nil {
		return err
	}
	_, err = c.client.SuspendResource(ctx, req)
	return translateGRPCError(err)
}

func (c *remoteClient) ResumeResource(ctx context.Context, resource string) error {
	req, err := pb.Encode(pb.ResourceRequest{Resource: resource})
	if err != nil {
		return err
	}
	_, err = c.client.ResumeResource(ctx, req)
	return translateGRPCError(err)
}

// translateGRPCError maps status codes back to the domain sentinels
// callers can test with errors.Is.
func translateGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unimplemented:
		return fmt.Errorf("%s: %w", st.Message(), ipa.ErrNotSupported)
	case codes.Unavailable:
		return fmt.Errorf("%s: %w", st.Message(), ipa.ErrTryAgain)
	case codes.NotFound:
		return fmt.Errorf("%s: %w", st.Message(), ErrNotFound)
	case codes.InvalidArgument:
		return fmt.Errorf("invalid argument: %s", st.Message())
	case codes.FailedPrecondition:
		return errors.New(st.Message())
	default:
		return err
	}
}
