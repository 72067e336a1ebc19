// Package pb defines the ipa.v1.Diagnostics gRPC service. Messages
// are protobuf well-known types: requests and replies travel as
// structpb.Struct carrying the JSON form of the wire types below.
package pb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/frobware/go-ipa"
)

// ServiceName is the fully qualified service name.
const ServiceName = "ipa.v1.Diagnostics"

const (
	methodStatus          = "/" + ServiceName + "/Status"
	methodEndpoint        = "/" + ServiceName + "/Endpoint"
	methodSuspendResource = "/" + ServiceName + "/SuspendResource"
	methodResumeResource  = "/" + ServiceName + "/ResumeResource"
)

// Status is the reply of Status.
type Status struct {
	Revision      ipa.Revision         `json:"revision"`
	HWType        string               `json:"hw_type"`
	Mode          string               `json:"mode"`
	Session       string               `json:"session"`
	AttachedAt    time.Time            `json:"attached_at"`
	ActiveClients int                  `json:"active_clients"`
	Endpoints     []ipa.EndpointStatus `json:"endpoints"`
}

// EndpointRequest names an endpoint by handle.
type EndpointRequest struct {
	Handle int `json:"handle"`
}

// ResourceRequest names a resource, e.g. "wlan_cons".
type ResourceRequest struct {
	Resource string `json:"resource"`
}

// Encode converts v to a Struct through its JSON form.
func Encode(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return structpb.NewStruct(m)
}

// Decode fills v from s.
func Decode(s *structpb.Struct, v any) error {
	b, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}

// DiagnosticsServer is the server API for the Diagnostics service.
type DiagnosticsServer interface {
	Status(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Endpoint(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SuspendResource(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	ResumeResource(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

func unary[Req any, Resp any](method string, call func(DiagnosticsServer, context.Context, Req) (Resp, error), newReq func() Req) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DiagnosticsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DiagnosticsServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func newEmpty() *emptypb.Empty    { return new(emptypb.Empty) }
func newStruct() *structpb.Struct { return new(structpb.Struct) }

// Diagnostics_ServiceDesc is the grpc.ServiceDesc for the Diagnostics
// service.
var Diagnostics_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiagnosticsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Status", Handler: unary(methodStatus, DiagnosticsServer.Status, newEmpty)},
		{MethodName: "Endpoint", Handler: unary(methodEndpoint, DiagnosticsServer.Endpoint, newStruct)},
		{MethodName: "SuspendResource", Handler: unary(methodSuspendResource, DiagnosticsServer.SuspendResource, newStruct)},
		{MethodName: "ResumeResource", Handler: unary(methodResumeResource, DiagnosticsServer.ResumeResource, newStruct)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ipa/v1/diagnostics",
}

// RegisterDiagnosticsServer registers srv with s.
func RegisterDiagnosticsServer(s grpc.ServiceRegistrar, srv DiagnosticsServer) {
	s.RegisterService(&Diagnostics_ServiceDesc, srv)
}

// DiagnosticsClient is the client API for the Diagnostics service.
type DiagnosticsClient interface {
	Status(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	Endpoint(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SuspendResource(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ResumeResource(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type diagnosticsClient struct {
	cc grpc.ClientConnInterface
}

// NewDiagnosticsClient returns a client using cc.
func NewDiagnosticsClient(cc grpc.ClientConnInterface) DiagnosticsClient {
	return &diagnosticsClient{cc}
}

func (c *diagnosticsClient) Status(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodStatus, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *diagnosticsClient) Endpoint(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodEndpoint, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *diagnosticsClient) SuspendResource(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, methodSuspendResource, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *diagnosticsClient) ResumeResource(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, methodResumeResource, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
