package main

// cmd/vendor-pricing runs the pricing aggregator: the StreamQuotes fan-out
// service, its adaptive worker pool, and the traffic-metrics sidecar the
// external autoscaler polls.

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
	"github.com/prajwalun/dealcart/internal/pricing"
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
		fmt.Printf("vendor-pricing version %s\n", version)
		fmt.Printf("build time: %s\n", buildTime)
		fmt.Printf("git commit: %s\n", gitCommit)
		return
	}

	cfg := config.LoadPricing()
	logger := logging.Setup("vendor-pricing")

	if len(cfg.Endpoints) == 0 {
		logger.Error("no vendor endpoints configured, set VENDORS (host:port:name,...)")
		os.Exit(1)
	}

	logger.Info("starting vendor-pricing",
		"port", cfg.Port,
		"metrics_port", cfg.MetricsPort(),
		"vendors", len(cfg.Endpoints),
		"environment", logging.EnvironmentName(),
	)
	for _, ep := range cfg.Endpoints {
		logger.Info("vendor endpoint configured", "endpoint", ep.String())
	}

	poolCfg := pricing.DefaultPoolConfig()
	poolCfg.Min = cfg.AdaptiveMin
	poolCfg.Max = cfg.AdaptiveMax
	poolCfg.Step = cfg.AdaptiveStep
	poolCfg.TargetP95 = cfg.TargetP95
	poolCfg.LowerP95 = cfg.LowerP95
	poolCfg.WindowSize = cfg.LatencyWindow
	logger.Info("adaptive pool configured",
		"min", poolCfg.Min,
		"max", poolCfg.Max,
		"step", poolCfg.Step,
		"target_p95", poolCfg.TargetP95,
		"lower_p95", poolCfg.LowerP95,
		"window", poolCfg.WindowSize,
	)

	pool := pricing.NewPool(poolCfg, logger)
	traffic := pricing.NewTrafficRecorder()
	sys := pricing.NewSystemMetrics()
	collectors := pricing.NewCollectors()

	traffic.AttachCollectors(collectors)
	pool.ObserveSnapshots(func(_ time.Duration, size, active, depth int) {
		collectors.PoolSize.Set(float64(size))
		collectors.PoolActive.Set(float64(active))
		collectors.QueueDepth.Set(float64(depth))
	})

	aggregator := pricing.NewAggregator(cfg.Endpoints, pool, traffic, logger)

	metricsMux := pricing.NewMetricsMux(traffic, sys, collectors, logger)
	srv := server.New(
		fmt.Sprintf(":%d", cfg.Port),
		fmt.Sprintf(":%d", cfg.MetricsPort()),
		logger,
		server.WithMetricsMux(metricsMux),
	)
	dealcartv1.RegisterVendorPricingServer(srv.GRPC(), aggregator)
	srv.TrackService(dealcartv1.VendorPricing_ServiceDesc.ServiceName)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool.Start(ctx)

	if err := srv.Serve(ctx); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}

	pool.Stop()
	logger.Info("shutdown complete", "uptime", time.Since(startTime))
}
