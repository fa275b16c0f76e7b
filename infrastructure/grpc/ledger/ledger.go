// Package ledger declares the chatstore.v1.Ledger gRPC service. Requests and
// responses are protobuf well-known types, so the descriptor is written by
// hand instead of generated from a .proto file.
package ledger

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "chatstore.v1.Ledger"

const (
	Ledger_Commit_FullMethodName         = "/chatstore.v1.Ledger/Commit"
	Ledger_FindMessage_FullMethodName    = "/chatstore.v1.Ledger/FindMessage"
	Ledger_FindChatroom_FullMethodName   = "/chatstore.v1.Ledger/FindChatroom"
	Ledger_FindPeer_FullMethodName       = "/chatstore.v1.Ledger/FindPeer"
	Ledger_FindVcard_FullMethodName      = "/chatstore.v1.Ledger/FindVcard"
	Ledger_SearchMessages_FullMethodName = "/chatstore.v1.Ledger/SearchMessages"
)

type (
	CommitServer = grpc.ClientStreamingServer[structpb.Struct, emptypb.Empty]
	CommitClient = grpc.ClientStreamingClient[structpb.Struct, emptypb.Empty]
)

// LedgerServer is the server API for the Ledger service.
type LedgerServer interface {
	// Commit applies a stream of wire records in order and acknowledges once
	// the whole stream is applied.
	Commit(CommitServer) error
	FindMessage(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	FindChatroom(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	FindPeer(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	FindVcard(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	SearchMessages(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
}

// UnimplementedLedgerServer answers Unimplemented to every call.
type UnimplementedLedgerServer struct{}

func (UnimplementedLedgerServer) Commit(CommitServer) error {
	return status.Errorf(codes.Unimplemented, "method Commit not implemented")
}
func (UnimplementedLedgerServer) FindMessage(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FindMessage not implemented")
}
func (UnimplementedLedgerServer) FindChatroom(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FindChatroom not implemented")
}
func (UnimplementedLedgerServer) FindPeer(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FindPeer not implemented")
}
func (UnimplementedLedgerServer) FindVcard(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FindVcard not implemented")
}
func (UnimplementedLedgerServer) SearchMessages(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SearchMessages not implemented")
}

func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&Ledger_ServiceDesc, srv)
}

type findFunc func(LedgerServer, context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)

// unaryHandler adapts one Find method to the grpc.MethodDesc signature.
func unaryHandler(fullMethod string, call func(LedgerServer, context.Context, *wrapperspb.StringValue) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(wrapperspb.StringValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServer), ctx, req.(*wrapperspb.StringValue))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func find(f findFunc) func(LedgerServer, context.Context, *wrapperspb.StringValue) (any, error) {
	return func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
		return f(s, ctx, in)
	}
}

func _Ledger_Commit_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(LedgerServer).Commit(&grpc.GenericServerStream[structpb.Struct, emptypb.Empty]{ServerStream: stream})
}

// Ledger_ServiceDesc is the grpc.ServiceDesc for the Ledger service.
var Ledger_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "FindMessage",
			Handler:    unaryHandler(Ledger_FindMessage_FullMethodName, find(LedgerServer.FindMessage)),
		},
		{
			MethodName: "FindChatroom",
			Handler:    unaryHandler(Ledger_FindChatroom_FullMethodName, find(LedgerServer.FindChatroom)),
		},
		{
			MethodName: "FindPeer",
			Handler:    unaryHandler(Ledger_FindPeer_FullMethodName, find(LedgerServer.FindPeer)),
		},
		{
			MethodName: "FindVcard",
			Handler:    unaryHandler(Ledger_FindVcard_FullMethodName, find(LedgerServer.FindVcard)),
		},
		{
			MethodName: "SearchMessages",
			Handler: unaryHandler(Ledger_SearchMessages_FullMethodName,
				func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
					return s.SearchMessages(ctx, in)
				}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Commit",
			Handler:       _Ledger_Commit_Handler,
			ClientStreams: true,
		},
	},
	Metadata: "chatstore/v1/ledger.proto",
}

// LedgerClient is the client API for the Ledger service.
type LedgerClient interface {
	Commit(ctx context.Context, opts ...grpc.CallOption) (CommitClient, error)
	FindMessage(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	FindChatroom(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	FindPeer(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	FindVcard(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	SearchMessages(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type ledgerClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient {
	return &ledgerClient{cc}
}

func (c *ledgerClient) Commit(ctx context.Context, opts ...grpc.CallOption) (CommitClient, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &Ledger_ServiceDesc.Streams[0], Ledger_Commit_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[structpb.Struct, emptypb.Empty]{ClientStream: stream}, nil
}

func (c *ledgerClient) invoke(ctx context.Context, method string, in *wrapperspb.StringValue, out any, opts []grpc.CallOption) error {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	return c.cc.Invoke(ctx, method, in, out, cOpts...)
}

func (c *ledgerClient) FindMessage(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, Ledger_FindMessage_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) FindChatroom(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, Ledger_FindChatroom_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) FindPeer(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, Ledger_FindPeer_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) FindVcard(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, Ledger_FindVcard_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) SearchMessages(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.invoke(ctx, Ledger_SearchMessages_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
