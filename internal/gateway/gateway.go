package gateway

// Package gateway implements the HTTP edge: it terminates browser requests,
// applies the request-id and rate-limit layers, and bridges the gRPC pricing
// and checkout services onto JSON and SSE.

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prajwalun/dealcart/internal/config"
	dealcartv1 "github.com/prajwalun/dealcart/pkg/gen/proto"
)

// Server is the edge bridge.
type Server struct {
	logger   *slog.Logger
	cfg      config.Gateway
	pricing  dealcartv1.VendorPricingClient
	checkout dealcartv1.CheckoutClient
	rl       *tokenBucket
	handler  http.Handler

	// Stream housekeeping: SSE heartbeat interval and per-stream timeouts.
	heartbeatInterval   time.Duration
	searchStreamTimeout time.Duration
	statusStreamTimeout time.Duration
}

// NewServer wires the edge routes over the given upstream clients.
func NewServer(cfg config.Gateway, pricing dealcartv1.VendorPricingClient, checkout dealcartv1.CheckoutClient, logger *slog.Logger) *Server {
	s := &Server{
		logger:              logger,
		cfg:                 cfg,
		pricing:             pricing,
		checkout:            checkout,
		heartbeatInterval:   15 * time.Second,
		searchStreamTimeout: 60 * time.Second,
		statusStreamTimeout: 120 * time.Second,
	}
	if cfg.RateLimitEnabled && cfg.RateLimitQPS > 0 {
		s.rl = newTokenBucket(float64(cfg.RateLimitQPS))
	}
	s.setupRoutes()
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) setupRoutes() {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/quote", s.handleQuote)
	mux.HandleFunc("POST /api/checkout", s.handleCheckoutStart)
	mux.HandleFunc("GET /api/checkout/{id}/stream", s.handleCheckoutStream)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/status", s.handleAPIStatus)

	// Request-id runs first so every response, including 429s, carries one.
	s.handler = s.requestIDMiddleware(s.rateLimitMiddleware(s.loggingMiddleware(s.recoveryMiddleware(mux))))
}

var startTime = time.Now()

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleAPIStatus(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"service":        "edge-gateway",
		"status":         "operational",
		"uptime_seconds": int64(time.Since(startTime).Seconds()),
		"timestamp":      time.Now().Unix(),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, map[string]any{"error": message})
}
