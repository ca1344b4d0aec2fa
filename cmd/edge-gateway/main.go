package main

// cmd/edge-gateway runs the HTTP edge bridge. It dials the pricing and
// checkout services once at startup and serves the browser-facing routes.

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/prajwalun/dealcart/internal/config"
	"github.com/prajwalun/dealcart/internal/gateway"
	"github.com/prajwalun/dealcart/internal/interceptors"
	"github.com/prajwalun/dealcart/internal/logging"
	dealcartv1 "github.com/prajwalun/dealcart/pkg/gen/proto"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

var startTime = time.Now()

func main() {
	var printVersion bool
	flag.BoolVar(&printVersion, "version", false, "print version information and exit")
	flag.Parse()

	if printVersion {
		fmt.Printf("edge-gateway version %s\n", version)
		fmt.Printf("build time: %s\n", buildTime)
		fmt.Printf("git commit: %s\n", gitCommit)
		return
	}

	cfg := config.LoadGateway()
	logger := logging.Setup("edge-gateway")

	logger.Info("starting edge-gateway",
		"port", cfg.Port,
		"pricing_addr", cfg.PricingAddr,
		"checkout_addr", cfg.CheckoutAddr,
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"rate_limit_qps", cfg.RateLimitQPS,
		"environment", logging.EnvironmentName(),
	)

	pricingConn, err := dialUpstream(cfg.PricingAddr)
	if err != nil {
		logger.Error("failed to create pricing channel", "error", err)
		os.Exit(1)
	}
	defer pricingConn.Close()

	checkoutConn, err := dialUpstream(cfg.CheckoutAddr)
	if err != nil {
		logger.Error("failed to create checkout channel", "error", err)
		os.Exit(1)
	}
	defer checkoutConn.Close()

	srv := gateway.NewServer(cfg,
		dealcartv1.NewVendorPricingClient(pricingConn),
		dealcartv1.NewCheckoutClient(checkoutConn),
		logger,
	)

	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     srv.Handler(),
		ReadTimeout: 15 * time.Second,
		// No write timeout: SSE streams stay open up to their own limits.
		IdleTimeout: 60 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete", "uptime", time.Since(startTime))
}

// dialUpstream opens a plaintext channel with the request-id propagating
// interceptors attached.
func dialUpstream(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(interceptors.UnaryClientRequestID()),
		grpc.WithStreamInterceptor(interceptors.StreamClientRequestID()),
	)
}
