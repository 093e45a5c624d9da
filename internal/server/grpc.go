package server

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// GRPCServer exposes grpc.health.v1.Health next to the HTTP API.
type GRPCServer struct {
	srv    *grpc.Server
	health *health.Server
	logger *slog.Logger
}

func NewGRPCServer(logger *slog.Logger) *GRPCServer {
	if logger == nil {
		logger = slog.Default()
	}
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	// Reflection for grpcurl
	reflection.Register(srv)
	return &GRPCServer{srv: srv, health: hs, logger: logger}
}

func (g *GRPCServer) Serve(lis net.Listener) error {
	g.logger.Info("grpc.serve", "addr", lis.Addr().String())
	return g.srv.Serve(lis)
}

// Shutdown reports NOT_SERVING and then drains in-flight RPCs. Open Watch streams never
// drain on their own, so the server is stopped hard once ctx expires.
func (g *GRPCServer) Shutdown(ctx context.Context) {
	g.health.Shutdown()

	done := make(chan struct{})
	go func() {
		g.srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		g.logger.Warn("grpc.force_stop", "error", ctx.Err())
		g.srv.Stop()
	}
	g.logger.Info("grpc.stopped")
}
