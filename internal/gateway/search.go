package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strings"

	dealcartv1 "github.com/prajwalun/dealcart/pkg/gen/proto"
)

// priceQuoteDTO is the camelCase JSON shape of one quote event. Price is
// rendered in dollars only here at the edge; everything upstream is cents.
type priceQuoteDTO struct {
	Vendor        string  `json:"vendor"`
	VendorID      string  `json:"vendorId"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	EstimatedDays int32   `json:"estimatedDays"`
	Timestamp     int64   `json:"timestamp"`
}

func quoteDTO(q *dealcartv1.PriceQuote) priceQuoteDTO {
	return priceQuoteDTO{
		Vendor:        q.GetVendorName(),
		VendorID:      q.GetVendorId(),
		Price:         float64(q.GetPrice().GetAmountCents()) / 100.0,
		Currency:      q.GetPrice().GetCurrencyCode(),
		EstimatedDays: q.GetEstimatedDays(),
		Timestamp:     q.GetTimestampMs(),
	}
}

// mapQueryToProductID hashes the free-text query to a stable product id so
// repeated searches hit the same SKU.
func mapQueryToProductID(query string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(query))))
	return fmt.Sprintf("sku-%d", h.Sum32()%1000)
}

// handleSearch bridges StreamQuotes onto an SSE stream of "quote" events.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	productID := mapQueryToProductID(query)
	s.logger.Info("search request", "query", query, "product_id", productID)

	// The HTTP stream lives at most searchStreamTimeout; the upstream call
	// gets the shorter pricing deadline.
	streamCtx, cancelStream := context.WithTimeout(r.Context(), s.searchStreamTimeout)
	defer cancelStream()
	upstreamCtx, cancelUpstream := context.WithTimeout(streamCtx, s.cfg.SearchDeadline)
	defer cancelUpstream()

	stream, err := s.pricing.StreamQuotes(upstreamCtx, &dealcartv1.QuoteRequest{
		ProductId:    productID,
		Quantity:     1,
		CurrencyCode: "USD",
	})
	if err != nil {
		s.logger.Error("failed to open quote stream", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to get quotes")
		return
	}

	sw, err := newSSEWriter(w)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sw.startHeartbeat(streamCtx, s.heartbeatInterval)

	for {
		quote, err := stream.Recv()
		if err != nil {
			// EOF is the clean close; anything else still just ends the
			// response and lets the client's SSE error handler fire.
			if !errors.Is(err, io.EOF) {
				s.logger.Warn("quote stream ended with error", "error", err)
			}
			return
		}
		payload, err := json.Marshal(quoteDTO(quote))
		if err != nil {
			s.logger.Error("failed to marshal quote", "error", err)
			continue
		}
		if err := sw.Event("quote", payload); err != nil {
			s.logger.Warn("client disconnected mid-stream", "error", err)
			return
		}
	}
}
