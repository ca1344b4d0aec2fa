package main

// cmd/vendor-mock runs one simulated vendor backend. It wires config,
// logging, the simulator service, and blocks until shutdown signals.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prajwalun/dealcart/internal/config"
	"github.com/prajwalun/dealcart/internal/logging"
	"github.com/prajwalun/dealcart/internal/server"
	"github.com/prajwalun/dealcart/internal/vendor"
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
		fmt.Printf("vendor-mock version %s\n", version)
		fmt.Printf("build time: %s\n", buildTime)
		fmt.Printf("git commit: %s\n", gitCommit)
		return
	}

	cfg := config.LoadVendor()
	logger := logging.Setup("vendor-mock")

	logger.Info("starting vendor-mock",
		"vendor_name", cfg.VendorName,
		"port", cfg.Port,
		"environment", logging.EnvironmentName(),
	)

	simulator := vendor.NewSimulator(cfg.VendorName, logger)

	srv := server.New(
		fmt.Sprintf(":%d", cfg.Port),
		fmt.Sprintf(":%d", cfg.Port+1000),
		logger,
	)
	dealcartv1.RegisterVendorBackendServer(srv.GRPC(), simulator)
	srv.TrackService(dealcartv1.VendorBackend_ServiceDesc.ServiceName)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Serve(ctx); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete", "uptime", time.Since(startTime))
}
