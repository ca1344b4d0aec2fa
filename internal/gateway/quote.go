package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"

	dealcartv1 "github.com/prajwalun/dealcart/pkg/gen/proto"
)

// handleQuote collects the full quote stream and answers in one JSON body.
// mode=best (default) picks the cheapest quote; mode=all returns everything.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("productId")
	if productID == "" {
		s.respondError(w, http.StatusBadRequest, "missing query parameter productId")
		return
	}
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "best"
	}

	s.logger.Info("quote request", "product_id", productID, "mode", mode)

	// Outer wall-time budget for collecting the whole stream; the upstream
	// call itself carries the pricing deadline.
	budgetCtx, cancelBudget := context.WithTimeout(r.Context(), s.cfg.QuoteBudget)
	defer cancelBudget()
	upstreamCtx, cancelUpstream := context.WithTimeout(budgetCtx, s.cfg.SearchDeadline)
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

	var quotes []*dealcartv1.PriceQuote
	for {
		quote, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.logger.Error("quote collection failed", "error", err)
			s.respondJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "Failed to get quotes",
				"message": err.Error(),
			})
			return
		}
		quotes = append(quotes, quote)
	}

	if mode == "all" {
		dtos := make([]priceQuoteDTO, len(quotes))
		for i, q := range quotes {
			dtos[i] = quoteDTO(q)
		}
		s.respondJSON(w, http.StatusOK, map[string]any{
			"productId":  productID,
			"quoteCount": len(dtos),
			"quotes":     dtos,
		})
		return
	}

	if len(quotes) == 0 {
		s.respondError(w, http.StatusNotFound, "No quotes available")
		return
	}

	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.GetPrice().GetAmountCents() < best.GetPrice().GetAmountCents() {
			best = q
		}
	}
	s.respondJSON(w, http.StatusOK, quoteDTO(best))
}
