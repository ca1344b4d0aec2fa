package config

// Package config reads per-process runtime configuration from environment
// variables. Every process shares the parse helpers; each gets its own
// Load function so defaults stay next to the service they belong to.

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// VendorEndpoint is one configured vendor backend. The set is parsed once at
// startup and stays stable for the process lifetime.
type VendorEndpoint struct {
	Host        string
	Port        int
	DisplayName string
}

// Addr returns the dialable host:port for the endpoint.
func (e VendorEndpoint) Addr() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

func (e VendorEndpoint) String() string {
	return fmt.Sprintf("%s:%d:%s", e.Host, e.Port, e.DisplayName)
}

// ParseVendorEndpoints parses the VENDORS value: comma-separated
// "host:port:display_name" entries. Malformed entries are skipped.
func ParseVendorEndpoints(vendors string) []VendorEndpoint {
	var endpoints []VendorEndpoint
	for _, entry := range strings.Split(vendors, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			continue
		}
		port, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		endpoints = append(endpoints, VendorEndpoint{
			Host:        strings.TrimSpace(parts[0]),
			Port:        port,
			DisplayName: strings.TrimSpace(parts[2]),
		})
	}
	return endpoints
}

// Vendor holds configuration for the vendor-mock simulator.
type Vendor struct {
	Port       int
	VendorName string
}

// LoadVendor populates Vendor from the environment.
func LoadVendor() Vendor {
	return Vendor{
		Port:       parseIntEnv("PORT", 9101),
		VendorName: getenv("VENDOR_NAME", "MockVendor"),
	}
}

// Pricing holds configuration for the pricing aggregator.
type Pricing struct {
	Port      int
	Endpoints []VendorEndpoint

	// Adaptive pool
	AdaptiveMin   int
	AdaptiveMax   int
	AdaptiveStep  int
	TargetP95     time.Duration
	LowerP95      time.Duration
	LatencyWindow int

	// Per-vendor call deadline
	VendorDeadline time.Duration
}

// LoadPricing populates Pricing from the environment.
func LoadPricing() Pricing {
	return Pricing{
		Port:           parseIntEnv("PORT", 9100),
		Endpoints:      ParseVendorEndpoints(os.Getenv("VENDORS")),
		AdaptiveMin:    parseIntEnv("ADAPTIVE_MIN", 8),
		AdaptiveMax:    parseIntEnv("ADAPTIVE_MAX", 64),
		AdaptiveStep:   parseIntEnv("ADAPTIVE_STEP", 8),
		TargetP95:      time.Duration(parseIntEnv("TARGET_P95_MS", 250)) * time.Millisecond,
		LowerP95:       time.Duration(parseIntEnv("LOWER_P95_MS", 200)) * time.Millisecond,
		LatencyWindow:  parseIntEnv("LAT_WINDOW", 2000),
		VendorDeadline: parseDurationEnv("VENDOR_DEADLINE", 1500*time.Millisecond),
	}
}

// MetricsPort is the sidecar HTTP port, service port + 1000 by convention.
func (p Pricing) MetricsPort() int {
	return p.Port + 1000
}

// Checkout holds configuration for the checkout engine.
type Checkout struct {
	Port           int
	IdempotencyTTL time.Duration
	OrderTTL       time.Duration
}

// LoadCheckout populates Checkout from the environment.
func LoadCheckout() Checkout {
	return Checkout{
		Port:           parseIntEnv("PORT", 9200),
		IdempotencyTTL: parseDurationEnv("IDEMPOTENCY_TTL", 10*time.Minute),
		OrderTTL:       parseDurationEnv("ORDER_TTL", 30*time.Minute),
	}
}

// Gateway holds configuration for the edge bridge.
type Gateway struct {
	Port        int
	PricingAddr string
	CheckoutAddr string

	RateLimitEnabled bool
	RateLimitQPS     int

	// Upstream deadlines
	SearchDeadline   time.Duration
	QuoteBudget      time.Duration
	CheckoutDeadline time.Duration
	StatusDeadline   time.Duration
}

// LoadGateway populates Gateway from the environment.
func LoadGateway() Gateway {
	return Gateway{
		Port:             parseIntEnv("PORT", 8080),
		PricingAddr:      getenv("PRICING_ADDR", "localhost:9100"),
		CheckoutAddr:     getenv("CHECKOUT_ADDR", "localhost:9200"),
		RateLimitEnabled: strings.EqualFold(getenv("RATE_LIMIT_ENABLED", "true"), "true"),
		RateLimitQPS:     parseIntEnv("RATE_LIMIT_QPS", 100),
		SearchDeadline:   parseDurationEnv("SEARCH_DEADLINE", 1500*time.Millisecond),
		QuoteBudget:      parseDurationEnv("QUOTE_BUDGET", 3*time.Second),
		CheckoutDeadline: parseDurationEnv("CHECKOUT_DEADLINE", 2*time.Second),
		StatusDeadline:   parseDurationEnv("STATUS_DEADLINE", 120*time.Second),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if i, err := strconv.Atoi(v); err == nil {
			return time.Duration(i) * time.Millisecond
		}
	}
	return def
}
