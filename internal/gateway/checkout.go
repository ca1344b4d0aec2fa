package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	dealcartv1 "github.com/prajwalun/dealcart/pkg/gen/proto"
)

type moneyDTO struct {
	CurrencyCode string `json:"currencyCode"`
	AmountCents  int64  `json:"amountCents"`
}

type checkoutItemDTO struct {
	ProductID string   `json:"productId"`
	Quantity  int32    `json:"quantity"`
	UnitPrice moneyDTO `json:"unitPrice"`
	VendorID  string   `json:"vendorId"`
}

type checkoutRequestDTO struct {
	CustomerID      string            `json:"customerId"`
	Items           []checkoutItemDTO `json:"items"`
	ShippingAddress string            `json:"shippingAddress"`
	PaymentMethodID string            `json:"paymentMethodId"`
}

// handleCheckoutStart parses the order, forwards it (with any
// Idempotency-Key) to the checkout engine, and returns the checkout id.
func (s *Server) handleCheckoutStart(w http.ResponseWriter, r *http.Request) {
	var dto checkoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(dto.Items) == 0 {
		s.respondError(w, http.StatusBadRequest, "items must not be empty")
		return
	}
	for _, item := range dto.Items {
		if item.Quantity < 1 {
			s.respondError(w, http.StatusBadRequest, "quantity must be positive")
			return
		}
	}

	req := &dealcartv1.CheckoutRequest{
		CustomerId:      dto.CustomerID,
		ShippingAddress: dto.ShippingAddress,
		PaymentMethodId: dto.PaymentMethodID,
		IdempotencyKey:  r.Header.Get("Idempotency-Key"),
	}
	for _, item := range dto.Items {
		req.Items = append(req.Items, &dealcartv1.CheckoutItem{
			ProductId: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: &dealcartv1.Money{
				CurrencyCode: item.UnitPrice.CurrencyCode,
				AmountCents:  item.UnitPrice.AmountCents,
			},
			VendorId: item.VendorID,
		})
	}

	s.logger.Info("checkout request",
		"customer_id", dto.CustomerID,
		"items", len(dto.Items),
		"idempotency_key", req.GetIdempotencyKey(),
	)

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.CheckoutDeadline)
	defer cancel()

	resp, err := s.checkout.Start(ctx, req)
	if err != nil {
		s.logger.Error("checkout start failed", "error", err)
		s.respondJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Checkout failed",
			"message": err.Error(),
		})
		return
	}

	result := map[string]any{
		"checkoutId": resp.GetCheckoutId(),
		"status":     resp.GetStatus().String(),
		"message":    resp.GetMessage(),
	}
	if total := resp.GetTotalAmount(); total != nil {
		result["totalAmount"] = float64(total.GetAmountCents()) / 100.0
		result["currency"] = total.GetCurrencyCode()
	}
	s.respondJSON(w, http.StatusOK, result)
}

type nodeStatusDTO struct {
	NodeID       string `json:"nodeId"`
	State        string `json:"state"`
	Message      string `json:"message"`
	Timestamp    int64  `json:"timestamp"`
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// handleCheckoutStream bridges the GetStatus stream onto SSE "status" events.
func (s *Server) handleCheckoutStream(w http.ResponseWriter, r *http.Request) {
	checkoutID := r.PathValue("id")
	s.logger.Info("status stream requested", "checkout_id", checkoutID)

	ctx, cancel := context.WithTimeout(r.Context(), s.statusStreamTimeout)
	defer cancel()

	stream, err := s.checkout.GetStatus(ctx, &dealcartv1.CheckoutStatusRequest{CheckoutId: checkoutID})
	if err != nil {
		s.logger.Error("failed to open status stream", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to stream status")
		return
	}

	sw, err := newSSEWriter(w)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sw.startHeartbeat(ctx, s.heartbeatInterval)

	for {
		st, err := stream.Recv()
		if err != nil {
			// Unknown id and upstream termination both close the stream;
			// the SSE response just ends.
			if !errors.Is(err, io.EOF) {
				s.logger.Warn("status stream ended with error", "checkout_id", checkoutID, "error", err)
			}
			return
		}
		dto := nodeStatusDTO{
			NodeID:       st.GetNodeId(),
			State:        st.GetState().String(),
			Message:      st.GetMessage(),
			Timestamp:    st.GetTimestampMs(),
			ErrorCode:    st.GetErrorCode(),
			ErrorMessage: st.GetErrorMessage(),
		}
		payload, err := json.Marshal(dto)
		if err != nil {
			s.logger.Error("failed to marshal status", "error", err)
			continue
		}
		if err := sw.Event("status", payload); err != nil {
			s.logger.Warn("client disconnected mid-stream", "error", err)
			return
		}
	}
}
