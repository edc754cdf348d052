package grpcserver

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"wholesaleDelivery/internal/metrics"
)

// newObserveInterceptor logs each call and counts it by method and code.
// It runs outside the auth interceptor so rejected calls are counted too.
func newObserveInterceptor(logger *slog.Logger, m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		m.GRPCRequestsTotal.WithLabelValues(info.FullMethod, code.String()).Inc()
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		logger.LogAttrs(ctx, level, "grpc request",
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("latency", time.Since(start)),
		)
		return resp, err
	}
}
