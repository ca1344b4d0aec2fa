package pricing

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/prajwalun/dealcart/internal/config"
	dealcartv1 "github.com/prajwalun/dealcart/pkg/gen/proto"
)

type fakeVendorClient struct {
	quote *dealcartv1.PriceQuote
	err   error
	delay time.Duration
}

func (f *fakeVendorClient) GetQuote(ctx context.Context, _ *dealcartv1.QuoteRequest, _ ...grpc.CallOption) (*dealcartv1.PriceQuote, error) {
	if f.delay > 0 {
		t := time.NewTimer(f.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.quote, nil
}

type fakeFactory struct {
	clients map[string]*fakeVendorClient
	dialErr error
}

func (f *fakeFactory) Dial(ep config.VendorEndpoint) (dealcartv1.VendorBackendClient, func(), error) {
	if f.dialErr != nil {
		return nil, nil, f.dialErr
	}
	return f.clients[ep.DisplayName], func() {}, nil
}

type fakeQuoteStream struct {
	grpc.ServerStream
	ctx context.Context

	mu   sync.Mutex
	sent []*dealcartv1.PriceQuote
}

func (s *fakeQuoteStream) Context() context.Context { return s.ctx }

func (s *fakeQuoteStream) Send(q *dealcartv1.PriceQuote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, q)
	return nil
}

func (s *fakeQuoteStream) quotes() []*dealcartv1.PriceQuote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*dealcartv1.PriceQuote(nil), s.sent...)
}

func quoteFor(vendor string, cents int64) *dealcartv1.PriceQuote {
	return &dealcartv1.PriceQuote{
		VendorId:   vendor,
		VendorName: vendor,
		ProductId:  "sku-1",
		Price:      &dealcartv1.Money{CurrencyCode: "USD", AmountCents: cents},
	}
}

func endpointsNamed(names ...string) []config.VendorEndpoint {
	eps := make([]config.VendorEndpoint, len(names))
	for i, n := range names {
		eps[i] = config.VendorEndpoint{Host: "localhost", Port: 9101 + i, DisplayName: n}
	}
	return eps
}

func newTestAggregator(t *testing.T, endpoints []config.VendorEndpoint, factory ClientFactory) (*Aggregator, *Pool) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := testPoolConfig()
	cfg.QueueCapacity = 64
	pool := NewPool(cfg, slog.Default())
	pool.Start(ctx)

	agg := NewAggregator(endpoints, pool, NewTrafficRecorder(), slog.Default())
	agg.clients = factory
	return agg, pool
}

func TestStreamQuotesAllVendorsRespond(t *testing.T) {
	factory := &fakeFactory{clients: map[string]*fakeVendorClient{
		"V1": {quote: quoteFor("v1", 1000)},
		"V2": {quote: quoteFor("v2", 2000)},
		"V3": {quote: quoteFor("v3", 3000)},
	}}
	agg, _ := newTestAggregator(t, endpointsNamed("V1", "V2", "V3"), factory)

	stream := &fakeQuoteStream{ctx: context.Background()}
	err := agg.StreamQuotes(&dealcartv1.QuoteRequest{ProductId: "sku-1", Quantity: 1}, stream)
	require.NoError(t, err)

	sent := stream.quotes()
	require.Len(t, sent, 3)

	seen := map[string]bool{}
	for _, q := range sent {
		require.False(t, seen[q.GetVendorId()], "duplicate vendor %s", q.GetVendorId())
		seen[q.GetVendorId()] = true
	}
}

func TestStreamQuotesEmptyVendorSet(t *testing.T) {
	agg, _ := newTestAggregator(t, nil, &fakeFactory{})

	stream := &fakeQuoteStream{ctx: context.Background()}
	err := agg.StreamQuotes(&dealcartv1.QuoteRequest{ProductId: "sku-1", Quantity: 1}, stream)
	require.NoError(t, err)
	require.Empty(t, stream.quotes())
}

func TestStreamQuotesAbsorbsVendorFailures(t *testing.T) {
	factory := &fakeFactory{clients: map[string]*fakeVendorClient{
		"V1": {quote: quoteFor("v1", 1000)},
		"V2": {err: errors.New("connection refused")},
	}}
	agg, _ := newTestAggregator(t, endpointsNamed("V1", "V2"), factory)

	stream := &fakeQuoteStream{ctx: context.Background()}
	err := agg.StreamQuotes(&dealcartv1.QuoteRequest{ProductId: "sku-1", Quantity: 1}, stream)
	require.NoError(t, err)

	sent := stream.quotes()
	require.Len(t, sent, 1)
	require.Equal(t, "v1", sent[0].GetVendorId())

	requests, errCount := agg.traffic.Totals()
	require.Equal(t, uint64(2), requests)
	require.Equal(t, uint64(1), errCount)
}

func TestStreamQuotesPerVendorDeadline(t *testing.T) {
	factory := &fakeFactory{clients: map[string]*fakeVendorClient{
		"Slow": {quote: quoteFor("slow", 1000), delay: time.Second},
	}}
	agg, _ := newTestAggregator(t, endpointsNamed("Slow"), factory)
	agg.vendorDeadline = 20 * time.Millisecond

	stream := &fakeQuoteStream{ctx: context.Background()}
	start := time.Now()
	err := agg.StreamQuotes(&dealcartv1.QuoteRequest{ProductId: "sku-1", Quantity: 1}, stream)
	require.NoError(t, err)
	require.Empty(t, stream.quotes())
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestStreamQuotesAggregateTimeout(t *testing.T) {
	factory := &fakeFactory{clients: map[string]*fakeVendorClient{
		"Fast": {quote: quoteFor("fast", 1000)},
		"Hang": {quote: quoteFor("hang", 2000), delay: 10 * time.Second},
	}}
	agg, _ := newTestAggregator(t, endpointsNamed("Fast", "Hang"), factory)
	agg.aggregateTimeout = 100 * time.Millisecond

	stream := &fakeQuoteStream{ctx: context.Background()}
	start := time.Now()
	err := agg.StreamQuotes(&dealcartv1.QuoteRequest{ProductId: "sku-1", Quantity: 1}, stream)
	require.NoError(t, err)
	require.Less(t, time.Since(start), time.Second)

	// The fast vendor's quote was already emitted and stays valid.
	sent := stream.quotes()
	require.Len(t, sent, 1)
	require.Equal(t, "fast", sent[0].GetVendorId())
}

func TestStreamQuotesClientCancellation(t *testing.T) {
	factory := &fakeFactory{clients: map[string]*fakeVendorClient{
		"Hang": {quote: quoteFor("hang", 1000), delay: 10 * time.Second},
	}}
	agg, _ := newTestAggregator(t, endpointsNamed("Hang"), factory)

	ctx, cancel := context.WithCancel(context.Background())
	stream := &fakeQuoteStream{ctx: ctx}

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := agg.StreamQuotes(&dealcartv1.QuoteRequest{ProductId: "sku-1", Quantity: 1}, stream)
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, time.Since(start), time.Second)
}

func TestStreamQuotesDialFailureRecorded(t *testing.T) {
	factory := &fakeFactory{dialErr: errors.New("no route to host")}
	agg, pool := newTestAggregator(t, endpointsNamed("V1"), factory)

	stream := &fakeQuoteStream{ctx: context.Background()}
	err := agg.StreamQuotes(&dealcartv1.QuoteRequest{ProductId: "sku-1", Quantity: 1}, stream)
	require.NoError(t, err)
	require.Empty(t, stream.quotes())
	require.Equal(t, 1, pool.window.Len())
}
