package main

// cmd/checkout runs the checkout engine: the Start/GetStatus gRPC service,
// the in-memory inventory ledger, and the terminated-order eviction sweep.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prajwalun/dealcart/internal/checkout"
	"github.com/prajwalun/dealcart/internal/config"
	"github.com/prajwalun/dealcart/internal/logging"
	"github.com/prajwalun/dealcart/internal/server"
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
		fmt.Printf("checkout version %s\n", version)
		fmt.Printf("build time: %s\n", buildTime)
		fmt.Printf("git commit: %s\n", gitCommit)
		return
	}

	cfg := config.LoadCheckout()
	logger := logging.Setup("checkout")

	logger.Info("starting checkout",
		"port", cfg.Port,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"order_ttl", cfg.OrderTTL,
		"environment", logging.EnvironmentName(),
	)

	engine := checkout.NewEngine(checkout.NewInventory(), cfg.IdempotencyTTL, logger)

	srv := server.New(
		fmt.Sprintf(":%d", cfg.Port),
		fmt.Sprintf(":%d", cfg.Port+1000),
		logger,
	)
	dealcartv1.RegisterCheckoutServer(srv.GRPC(), engine)
	srv.TrackService(dealcartv1.Checkout_ServiceDesc.ServiceName)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Terminated orders are evicted after OrderTTL so memory does not grow
	// with cumulative checkouts.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				engine.SweepTerminated(cfg.OrderTTL)
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := srv.Serve(ctx); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete", "uptime", time.Since(startTime))
}
