package config

import (
	"testing"
	"time"
)

func TestParseVendorEndpoints(t *testing.T) {
	eps := ParseVendorEndpoints("localhost:9101:FastVendor, localhost:9102:SlowVendor")
	if len(eps) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(eps))
	}
	if eps[0].Host != "localhost" || eps[0].Port != 9101 || eps[0].DisplayName != "FastVendor" {
		t.Fatalf("unexpected endpoint: %+v", eps[0])
	}
	if eps[1].Addr() != "localhost:9102" {
		t.Fatalf("unexpected addr: %s", eps[1].Addr())
	}
}

func TestParseVendorEndpointsSkipsMalformed(t *testing.T) {
	eps := ParseVendorEndpoints("bad-entry,host:notaport:X,localhost:9101:OK,,")
	if len(eps) != 1 {
		t.Fatalf("expected 1 endpoint, got %d", len(eps))
	}
	if eps[0].DisplayName != "OK" {
		t.Fatalf("unexpected endpoint: %+v", eps[0])
	}
}

func TestParseVendorEndpointsEmpty(t *testing.T) {
	if eps := ParseVendorEndpoints(""); len(eps) != 0 {
		t.Fatalf("expected no endpoints, got %d", len(eps))
	}
}

func TestLoadPricingDefaults(t *testing.T) {
	cfg := LoadPricing()
	if cfg.Port != 9100 {
		t.Fatalf("expected default port 9100, got %d", cfg.Port)
	}
	if cfg.AdaptiveMin != 8 || cfg.AdaptiveMax != 64 || cfg.AdaptiveStep != 8 {
		t.Fatalf("unexpected adaptive defaults: %+v", cfg)
	}
	if cfg.TargetP95 != 250*time.Millisecond || cfg.LowerP95 != 200*time.Millisecond {
		t.Fatalf("unexpected p95 defaults: %+v", cfg)
	}
	if cfg.LatencyWindow != 2000 {
		t.Fatalf("unexpected latency window: %d", cfg.LatencyWindow)
	}
	if cfg.MetricsPort() != 10100 {
		t.Fatalf("metrics port should be service port + 1000, got %d", cfg.MetricsPort())
	}
}

func TestLoadPricingOverrides(t *testing.T) {
	t.Setenv("PORT", "9555")
	t.Setenv("ADAPTIVE_MIN", "4")
	t.Setenv("TARGET_P95_MS", "300")
	t.Setenv("VENDORS", "localhost:9101:V1")

	cfg := LoadPricing()
	if cfg.Port != 9555 {
		t.Fatalf("expected 9555, got %d", cfg.Port)
	}
	if cfg.AdaptiveMin != 4 {
		t.Fatalf("expected min 4, got %d", cfg.AdaptiveMin)
	}
	if cfg.TargetP95 != 300*time.Millisecond {
		t.Fatalf("expected 300ms, got %s", cfg.TargetP95)
	}
	if len(cfg.Endpoints) != 1 {
		t.Fatalf("expected 1 endpoint, got %d", len(cfg.Endpoints))
	}
}

func TestLoadGatewayDefaults(t *testing.T) {
	cfg := LoadGateway()
	if !cfg.RateLimitEnabled {
		t.Fatal("rate limiting should default on")
	}
	if cfg.RateLimitQPS != 100 {
		t.Fatalf("unexpected qps default: %d", cfg.RateLimitQPS)
	}
	if cfg.SearchDeadline != 1500*time.Millisecond {
		t.Fatalf("unexpected search deadline: %s", cfg.SearchDeadline)
	}
	if cfg.CheckoutDeadline != 2*time.Second {
		t.Fatalf("unexpected checkout deadline: %s", cfg.CheckoutDeadline)
	}
}

func TestLoadGatewayRateLimitDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadGateway()
	if cfg.RateLimitEnabled {
		t.Fatal("expected rate limiting disabled")
	}
}

func TestParseDurationEnvAcceptsMillis(t *testing.T) {
	t.Setenv("VENDOR_DEADLINE", "2500")
	cfg := LoadPricing()
	if cfg.VendorDeadline != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s, got %s", cfg.VendorDeadline)
	}

	t.Setenv("VENDOR_DEADLINE", "3s")
	cfg = LoadPricing()
	if cfg.VendorDeadline != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.VendorDeadline)
	}
}
