package pricing

// Aggregator fans one quote request out to every configured vendor backend
// through the adaptive pool and streams quotes back in completion order.

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/prajwalun/dealcart/internal/config"
	"github.com/prajwalun/dealcart/internal/interceptors"
	dealcartv1 "github.com/prajwalun/dealcart/pkg/gen/proto"
)

const (
	defaultVendorDeadline   = 1500 * time.Millisecond
	defaultAggregateTimeout = 10 * time.Second
)

// ClientFactory opens a VendorBackend client for one endpoint. The returned
// close func releases the underlying channel.
type ClientFactory interface {
	Dial(endpoint config.VendorEndpoint) (dealcartv1.VendorBackendClient, func(), error)
}

// GRPCClientFactory dials a plaintext channel per call, mirroring the
// per-request channel lifecycle of the upstream services.
type GRPCClientFactory struct{}

// Dial opens a new client connection to the endpoint.
func (GRPCClientFactory) Dial(endpoint config.VendorEndpoint) (dealcartv1.VendorBackendClient, func(), error) {
	conn, err := grpc.NewClient(endpoint.Addr(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(interceptors.UnaryClientRequestID()),
	)
	if err != nil {
		return nil, nil, err
	}
	return dealcartv1.NewVendorBackendClient(conn), func() { _ = conn.Close() }, nil
}

// Aggregator implements dealcartv1.VendorPricingServer.
type Aggregator struct {
	dealcartv1.UnimplementedVendorPricingServer

	endpoints []config.VendorEndpoint
	pool      *Pool
	traffic   *TrafficRecorder
	clients   ClientFactory
	logger    *slog.Logger

	vendorDeadline   time.Duration
	aggregateTimeout time.Duration
}

// NewAggregator wires the aggregator over the given endpoint set.
func NewAggregator(endpoints []config.VendorEndpoint, pool *Pool, traffic *TrafficRecorder, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		endpoints:        endpoints,
		pool:             pool,
		traffic:          traffic,
		clients:          GRPCClientFactory{},
		logger:           logger,
		vendorDeadline:   defaultVendorDeadline,
		aggregateTimeout: defaultAggregateTimeout,
	}
}

// StreamQuotes fans out to every endpoint and emits each successful quote as
// it arrives. Vendor failures are absorbed; the stream ends when every task
// finishes, the aggregate timeout fires, or the client goes away.
func (a *Aggregator) StreamQuotes(req *dealcartv1.QuoteRequest, stream dealcartv1.VendorPricing_StreamQuotesServer) error {
	ctx := stream.Context()
	endpoints := a.endpoints // stable for the process lifetime

	a.logger.Info("stream request received",
		"product_id", req.GetProductId(),
		"quantity", req.GetQuantity(),
		"vendors", len(endpoints),
	)

	if len(endpoints) == 0 {
		return nil
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered for one quote per endpoint, so vendor tasks never block on a
	// slow stream consumer. The handler goroutine is the only writer on the
	// gRPC stream.
	quotes := make(chan *dealcartv1.PriceQuote, len(endpoints))

	var wg sync.WaitGroup
	var emitted, failed int
	for _, endpoint := range endpoints {
		endpoint := endpoint
		wg.Add(1)
		err := a.pool.Submit(func() {
			defer wg.Done()
			a.callVendor(callCtx, endpoint, req, quotes)
		})
		if err != nil {
			wg.Done()
			failed++
			a.traffic.Record(0, false)
			a.logger.Warn("vendor task rejected", "vendor", endpoint.DisplayName, "error", err)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timeout := time.NewTimer(a.aggregateTimeout)
	defer timeout.Stop()

	for {
		select {
		case quote := <-quotes:
			if err := stream.Send(quote); err != nil {
				cancel()
				return err
			}
			emitted++
		case <-done:
			// Drain quotes that landed between the last send and wg.Wait.
			for {
				select {
				case quote := <-quotes:
					if err := stream.Send(quote); err != nil {
						return err
					}
					emitted++
				default:
					a.logger.Info("stream completed", "emitted", emitted, "failed", failed)
					return nil
				}
			}
		case <-timeout.C:
			cancel()
			a.logger.Warn("aggregate timeout waiting for vendors", "emitted", emitted)
			return nil
		case <-ctx.Done():
			cancel()
			return ctx.Err()
		}
	}
}

// callVendor issues one GetQuote with the per-vendor deadline and records a
// latency and request sample whether or not the call succeeded.
func (a *Aggregator) callVendor(ctx context.Context, endpoint config.VendorEndpoint, req *dealcartv1.QuoteRequest, quotes chan<- *dealcartv1.PriceQuote) {
	start := time.Now()

	client, release, err := a.clients.Dial(endpoint)
	if err != nil {
		elapsed := time.Since(start)
		a.pool.RecordLatency(elapsed)
		a.traffic.Record(elapsed, false)
		a.logger.Error("vendor dial failed", "vendor", endpoint.DisplayName, "error", err)
		return
	}
	defer release()

	callCtx, cancel := context.WithTimeout(ctx, a.vendorDeadline)
	defer cancel()

	quote, err := client.GetQuote(callCtx, req)
	elapsed := time.Since(start)
	a.pool.RecordLatency(elapsed)

	if err != nil {
		a.traffic.Record(elapsed, false)
		a.logger.Error("vendor call failed",
			"vendor", endpoint.DisplayName,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	a.traffic.Record(elapsed, true)

	select {
	case quotes <- quote:
	case <-ctx.Done():
	}
}
