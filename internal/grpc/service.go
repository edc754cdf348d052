package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

const driverServiceName = "delivery.driver.v1.DriverService"

// Full method names, as seen by interceptors.
const (
	registerMethod          = "/" + driverServiceName + "/Register"
	meMethod                = "/" + driverServiceName + "/Me"
	listAvailableJobsMethod = "/" + driverServiceName + "/ListAvailableJobs"
	acceptJobMethod         = "/" + driverServiceName + "/AcceptJob"
	listMyDeliveriesMethod  = "/" + driverServiceName + "/ListMyDeliveries"
	updateStatusMethod      = "/" + driverServiceName + "/UpdateStatus"
	healthCheckMethod       = "/grpc.health.v1.Health/Check"
	healthListMethod        = "/grpc.health.v1.Health/List"
)

// DriverServiceServer is the driver-facing API. Every method but Register
// requires a driver bearer token.
type DriverServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Me(context.Context, *Empty) (*DriverReply, error)
	ListAvailableJobs(context.Context, *Empty) (*JobsReply, error)
	AcceptJob(context.Context, *AcceptJobRequest) (*JobReply, error)
	ListMyDeliveries(context.Context, *Empty) (*JobsReply, error)
	UpdateStatus(context.Context, *UpdateStatusRequest) (*JobReply, error)
}

func unaryHandler[Req, Resp any](fullMethod string, call func(DriverServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DriverServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DriverServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DriverServiceDesc describes the driver service for grpc.Server.RegisterService.
var DriverServiceDesc = grpc.ServiceDesc{
	ServiceName: driverServiceName,
	HandlerType: (*DriverServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(registerMethod, DriverServiceServer.Register)},
		{MethodName: "Me", Handler: unaryHandler(meMethod, DriverServiceServer.Me)},
		{MethodName: "ListAvailableJobs", Handler: unaryHandler(listAvailableJobsMethod, DriverServiceServer.ListAvailableJobs)},
		{MethodName: "AcceptJob", Handler: unaryHandler(acceptJobMethod, DriverServiceServer.AcceptJob)},
		{MethodName: "ListMyDeliveries", Handler: unaryHandler(listMyDeliveriesMethod, DriverServiceServer.ListMyDeliveries)},
		{MethodName: "UpdateStatus", Handler: unaryHandler(updateStatusMethod, DriverServiceServer.UpdateStatus)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "delivery/driver/v1/driver.proto",
}

// RegisterDriverServiceServer registers srv on s.
func RegisterDriverServiceServer(s grpc.ServiceRegistrar, srv DriverServiceServer) {
	s.RegisterService(&DriverServiceDesc, srv)
}

// DriverServiceClient calls the driver service over the JSON codec.
type DriverServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDriverServiceClient(cc grpc.ClientConnInterface) *DriverServiceClient {
	return &DriverServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DriverServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, registerMethod, in, opts)
}

func (c *DriverServiceClient) Me(ctx context.Context, opts ...grpc.CallOption) (*DriverReply, error) {
	return invoke[DriverReply](ctx, c.cc, meMethod, &Empty{}, opts)
}

func (c *DriverServiceClient) ListAvailableJobs(ctx context.Context, opts ...grpc.CallOption) (*JobsReply, error) {
	return invoke[JobsReply](ctx, c.cc, listAvailableJobsMethod, &Empty{}, opts)
}

func (c *DriverServiceClient) AcceptJob(ctx context.Context, in *AcceptJobRequest, opts ...grpc.CallOption) (*JobReply, error) {
	return invoke[JobReply](ctx, c.cc, acceptJobMethod, in, opts)
}

func (c *DriverServiceClient) ListMyDeliveries(ctx context.Context, opts ...grpc.CallOption) (*JobsReply, error) {
	return invoke[JobsReply](ctx, c.cc, listMyDeliveriesMethod, &Empty{}, opts)
}

func (c *DriverServiceClient) UpdateStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*JobReply, error) {
	return invoke[JobReply](ctx, c.cc, updateStatusMethod, in, opts)
}
