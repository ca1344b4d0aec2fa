package server

// Package server owns the lifecycle of a gRPC listener and the sidecar HTTP
// server that exposes metrics. Each process wires its protobuf implementation
// onto the gRPC server returned by GRPC() before calling Serve.

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/prajwalun/dealcart/internal/interceptors"
)

// RPCServer bundles the gRPC and metrics servers for one process.
type RPCServer struct {
	logger        *slog.Logger
	grpcAddr      string
	grpcServer    *grpc.Server
	healthServer  *health.Server
	metricsServer *http.Server
	services      []string
}

// Option customizes server construction.
type Option func(*options)

type options struct {
	metricsMux *http.ServeMux
}

// WithMetricsMux replaces the default sidecar mux (promhttp at /metrics).
// The pricing aggregator uses this to serve its JSON traffic metrics.
func WithMetricsMux(mux *http.ServeMux) Option {
	return func(o *options) { o.metricsMux = mux }
}

// New creates a configured RPCServer with health + reflection enabled and the
// unary + stream interceptor chains (request ID, recovery, logging) applied.
func New(grpcAddr, metricsAddr string, logger *slog.Logger, opts ...Option) *RPCServer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	grpcServer := grpc.NewServer(
		interceptors.UnaryChain(logger),
		interceptors.StreamChain(logger),
	)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	mux := o.metricsMux
	if mux == nil {
		mux = http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
	}
	metricsServer := &http.Server{
		Addr:              metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &RPCServer{
		logger:        logger,
		grpcAddr:      grpcAddr,
		grpcServer:    grpcServer,
		healthServer:  healthServer,
		metricsServer: metricsServer,
		services:      make([]string, 0, 2),
	}
}

// Serve starts the gRPC and metrics servers and blocks until context
// cancellation. Shutdown is graceful: ongoing RPCs are drained and the metrics
// listener is given 15 seconds to finish in-flight scrapes.
func (s *RPCServer) Serve(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.grpcAddr)
	if err != nil {
		return fmt.Errorf("listen gRPC: %w", err)
	}

	errCh := make(chan error, 2)

	go func() {
		s.logger.Info("metrics server starting", "addr", s.metricsServer.Addr)
		if err := s.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	go func() {
		s.logger.Info("gRPC server starting", "addr", s.grpcAddr)
		s.healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		for _, svc := range s.services {
			s.healthServer.SetServingStatus(svc, grpc_health_v1.HealthCheckResponse_SERVING)
		}
		if err := s.grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown requested")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}
	s.healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	for _, svc := range s.services {
		s.healthServer.SetServingStatus(svc, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.grpcServer.GracefulStop()
	if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("metrics shutdown error", "error", err)
	}
	return nil
}

// GRPC returns the underlying gRPC server for service registration.
func (s *RPCServer) GRPC() *grpc.Server {
	return s.grpcServer
}

// TrackService registers a service name with the health server so its status
// is updated alongside the global one.
func (s *RPCServer) TrackService(name string) {
	if name == "" {
		return
	}
	s.services = append(s.services, name)
	s.healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
}
