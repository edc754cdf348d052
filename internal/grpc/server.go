// Package grpcserver exposes the driver workflow over gRPC.
package grpcserver

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"wholesaleDelivery/internal/app"
	"wholesaleDelivery/internal/auth"
)

// NewServer builds a gRPC server carrying the driver service and the
// standard health service. Only Register and health checks are reachable
// without a driver token.
func NewServer(a *app.App) *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		newObserveInterceptor(a.Logger, a.Metrics),
		auth.NewUnaryAuthInterceptor(a.Issuer, registerMethod, healthCheckMethod, healthListMethod),
	))
	RegisterDriverServiceServer(srv, &DriverServer{App: a})

	hs := health.NewServer()
	hs.SetServingStatus(driverServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv
}

// StartGRPC starts the gRPC server on addr and returns a shutdown function.
func StartGRPC(addr string, a *app.App) (func(context.Context) error, error) {
	if addr == "" {
		addr = ":50051"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := NewServer(a)
	go func() {
		if err := srv.Serve(lis); err != nil {
			a.Logger.Error("grpc server stopped", "error", err)
		}
	}()
	a.Logger.Info("grpc server listening", "address", lis.Addr().String())

	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
