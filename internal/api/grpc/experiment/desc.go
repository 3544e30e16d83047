package experiment

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "elevatorids.v1.ExperimentService"

// Full method names.
const (
	RunRoundMethod = "/" + ServiceName + "/RunRound"
	RunGridMethod  = "/" + ServiceName + "/RunGrid"
)

// ExperimentServer is the server API for ExperimentService.
type ExperimentServer interface {
	RunRound(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	RunGrid(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// ExperimentClient is the client API for ExperimentService.
type ExperimentClient interface {
	RunRound(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RunGrid(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type experimentClient struct {
	cc grpc.ClientConnInterface
}

// NewExperimentClient returns a client calling ExperimentService over cc.
func NewExperimentClient(cc grpc.ClientConnInterface) ExperimentClient {
	return &experimentClient{cc: cc}
}

func (c *experimentClient) RunRound(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RunRoundMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *experimentClient) RunGrid(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RunGridMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// ServiceDesc describes ExperimentService for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ExperimentServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RunRound",
			Handler:    runRoundHandler,
		},
		{
			MethodName: "RunGrid",
			Handler:    runGridHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "elevatorids/v1/experiment.proto",
}

// RegisterExperimentServer registers srv on s.
func RegisterExperimentServer(s grpc.ServiceRegistrar, srv ExperimentServer) {
	s.RegisterService(&ServiceDesc, srv)
}

//nolint:revive // Handler signature is fixed by grpc.MethodDesc.
func runRoundHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ExperimentServer).RunRound(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RunRoundMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ExperimentServer).RunRound(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}

//nolint:revive // Handler signature is fixed by grpc.MethodDesc.
func runGridHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ExperimentServer).RunGrid(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RunGridMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ExperimentServer).RunGrid(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}
