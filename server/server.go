// Package server implements the ipa.v1.Diagnostics gRPC service over
// an attached manager.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync/atomic"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/manager"
	"github.com/frobware/go-ipa/server/pb"
)

// Server implements pb.DiagnosticsServer.
type Server struct {
	mgr       *manager.Manager
	logger    *slog.Logger
	opCounter atomic.Uint64
}

var _ pb.DiagnosticsServer = (*Server)(nil)

// New creates a server for mgr.
func New(mgr *manager.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		mgr:    mgr,
		logger: manager.WithOpIDHandler(logger).With("component", "server"),
	}
}

// Status reports the attach record, the power reference count and
// every allocated endpoint.
func (s *Server) Status(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	rec, err := s.mgr.AttachRecord()
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(pb.Status{
		Revision:      rec.Revision,
		HWType:        rec.HWType.String(),
		Mode:          rec.Mode.String(),
		Session:       rec.Session,
		AttachedAt:    rec.AttachedAt,
		ActiveClients: s.mgr.ActiveClients(),
		Endpoints:     s.mgr.Endpoints(),
	})
}

// Endpoint returns the snapshot of one endpoint.
func (s *Server) Endpoint(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.EndpointRequest
	if err := pb.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	st, err := s.mgr.Endpoint(req.Handle)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(st)
}

// SuspendResource suspends every endpoint of a resource.
func (s *Server) SuspendResource(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	res, err := decodeResource(in)
	if err != nil {
		return nil, err
	}
	if err := s.mgr.SuspendResource(ctx, res); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// ResumeResource resumes every endpoint of a resource.
func (s *Server) ResumeResource(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	res, err := decodeResource(in)
	if err != nil {
		return nil, err
	}
	if err := s.mgr.ResumeResource(ctx, res); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func decodeResource(in *structpb.Struct) (manager.Resource, error) {
	var req pb.ResourceRequest
	if err := pb.Decode(in, &req); err != nil {
		return 0, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := manager.ParseResource(req.Resource)
	if err != nil {
		return 0, status.Error(codes.InvalidArgument, err.Error())
	}
	return res, nil
}

func encode(v any) (*structpb.Struct, error) {
	s, err := pb.Encode(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}

// toStatus maps domain errors to gRPC status codes.
func toStatus(err error) error {
	var (
		invalidHandle ipa.ErrInvalidHandle
		invalidState  ipa.ErrInvalidState
		wrongDir      ipa.ErrWrongDirection
		unrep         ipa.ErrUnrepresentable
		exhausted     ipa.ErrStopRetriesExhausted
	)
	code := codes.Internal
	switch {
	case errors.Is(err, manager.ErrNotAttached):
		code = codes.FailedPrecondition
	case errors.As(err, &invalidHandle):
		code = codes.NotFound
	case errors.As(err, &invalidState):
		code = codes.FailedPrecondition
	case errors.As(err, &wrongDir), errors.As(err, &unrep):
		code = codes.InvalidArgument
	case errors.As(err, &exhausted):
		code = codes.DeadlineExceeded
	case errors.Is(err, ipa.ErrTryAgain), errors.Is(err, ipa.ErrTimedOut):
		code = codes.Unavailable
	case errors.Is(err, ipa.ErrNotSupported):
		code = codes.Unimplemented
	}
	return status.Error(code, err.Error())
}

// Serve serves the Diagnostics service on every listener until ctx
// is cancelled or a listener fails.
func (s *Server) Serve(ctx context.Context, listeners ...net.Listener) error {
	if len(listeners) == 0 {
		return errors.New("no listeners")
	}
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(s.loggingInterceptor()))
	pb.RegisterDiagnosticsServer(grpcServer, s)

	errChan := make(chan error, len(listeners))
	for _, lis := range listeners {
		go func() {
			s.logger.InfoContext(ctx, "diagnostics server listening", "network", lis.Addr().Network(), "address", lis.Addr().String())
			if err := grpcServer.Serve(lis); err != nil {
				errChan <- fmt.Errorf("serve %s: %w", lis.Addr(), err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "shutting down diagnostics server")
		grpcServer.GracefulStop()
		return nil
	case err := <-errChan:
		grpcServer.Stop()
		return err
	}
}

// loggingInterceptor assigns a monotonic operation ID to each request
// and logs failures.
func (s *Server) loggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		opID := s.opCounter.Add(1)
		ctx = manager.ContextWithOpID(ctx, opID)
		resp, err := handler(ctx, req)
		if err != nil {
			s.logger.ErrorContext(ctx, "grpc error", "method", info.FullMethod, "error", err)
		}
		return resp, err
	}
}
