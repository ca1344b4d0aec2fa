package checkout

// Package checkout runs the fixed order workflow:
//
//	reserve -> {price, tax} -> pay -> confirm
//
// with SAGA compensations (void payment, release inventory) on any failure
// after reserve. Node transitions stream to subscribers via GetStatus.

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	dealcartv1 "github.com/prajwalun/dealcart/pkg/gen/proto"
	"github.com/prajwalun/dealcart/pkg/idempotency"
)

type nodeID string

const (
	nodeReserve nodeID = "reserve"
	nodePrice   nodeID = "price"
	nodeTax     nodeID = "tax"
	nodePay     nodeID = "pay"
	nodeConfirm nodeID = "confirm"
	nodeRelease nodeID = "release"
	nodeVoid    nodeID = "void"
)

const (
	taxRatePercent = 8

	payAttempts        = 3
	payAttemptDeadline = 1500 * time.Millisecond
	payBackoff         = 200 * time.Millisecond

	priceTaxJoinDeadline = 3 * time.Second
)

// Engine implements dealcartv1.CheckoutServer.
type Engine struct {
	dealcartv1.UnimplementedCheckoutServer

	logger    *slog.Logger
	inventory *Inventory
	orders    *orderRegistry
	idem      *idempotency.Cache

	// Synthetic failure rates; tests pin these to 0 or 1.
	payFailureRate     float64
	confirmFailureRate float64
	voidFailureRate    float64
	payDeadline        time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand

	// sleep is swapped for a no-op in tests.
	sleep func(time.Duration)
}

// NewEngine builds the checkout engine with production failure rates.
func NewEngine(inventory *Inventory, idemTTL time.Duration, logger *slog.Logger) *Engine {
	return &Engine{
		logger:             logger,
		inventory:          inventory,
		orders:             newOrderRegistry(),
		idem:               idempotency.New(idemTTL),
		payFailureRate:     0.2,
		confirmFailureRate: 0.05,
		payDeadline:        payAttemptDeadline,
		rng:                rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:              time.Sleep,
	}
}

// Start validates the request, registers the order, and kicks off the
// workflow asynchronously. A replayed Idempotency-Key returns the original
// response without opening a second workflow.
func (e *Engine) Start(_ context.Context, req *dealcartv1.CheckoutRequest) (*dealcartv1.CheckoutResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if key := req.GetIdempotencyKey(); key != "" {
		if cached, ok := e.idem.Get(key); ok {
			if resp, ok := cached.(*dealcartv1.CheckoutResponse); ok {
				e.logger.Info("checkout replayed from idempotency cache", "checkout_id", resp.GetCheckoutId())
				return resp, nil
			}
		}
	}

	checkoutID := e.orders.newCheckoutID()
	e.logger.Info("starting checkout",
		"checkout_id", checkoutID,
		"customer_id", req.GetCustomerId(),
		"items", len(req.GetItems()),
	)

	ord := e.orders.create(checkoutID, req)
	go e.run(ord)

	resp := &dealcartv1.CheckoutResponse{
		CheckoutId: checkoutID,
		Status:     dealcartv1.CheckoutStatus_CHECKOUT_STATUS_PENDING,
		Message:    "Checkout initiated successfully",
	}
	if key := req.GetIdempotencyKey(); key != "" {
		e.idem.Set(key, resp)
	}
	return resp, nil
}

// GetStatus replays the order's full history, then streams the live tail.
// Replay and registration happen atomically, so the subscriber sees the
// canonical sequence with no gaps and no duplicates.
func (e *Engine) GetStatus(req *dealcartv1.CheckoutStatusRequest, stream dealcartv1.Checkout_GetStatusServer) error {
	ord, ok := e.orders.get(req.GetCheckoutId())
	if !ok {
		return status.Errorf(codes.NotFound, "checkout id not found: %s", req.GetCheckoutId())
	}

	history, tail, cancel, terminated := ord.subscribe()
	defer cancel()

	for _, s := range history {
		if err := stream.Send(s); err != nil {
			return err
		}
	}
	if terminated {
		return nil
	}

	for {
		select {
		case s, ok := <-tail:
			if !ok {
				return nil
			}
			if err := stream.Send(s); err != nil {
				return err
			}
		case <-stream.Context().Done():
			return stream.Context().Err()
		}
	}
}

// SweepTerminated evicts orders that terminated more than ttl ago.
func (e *Engine) SweepTerminated(ttl time.Duration) {
	if evicted := e.orders.sweep(ttl); evicted > 0 {
		e.logger.Info("evicted terminated checkouts", "count", evicted)
	}
}

func validateRequest(req *dealcartv1.CheckoutRequest) error {
	if len(req.GetItems()) == 0 {
		return fmt.Errorf("items must not be empty")
	}
	for _, item := range req.GetItems() {
		if item.GetQuantity() < 1 {
			return fmt.Errorf("quantity must be positive for product %s", item.GetProductId())
		}
	}
	return nil
}

// run drives the workflow for one order. Failure after reserve owes the
// compensation set of the failed stage: void (if a payment landed) then
// release. Compensation failures are logged and surfaced as status events but
// never re-compensated.
func (e *Engine) run(ord *order) {
	if !e.reserve(ord) {
		e.fail(ord, "Reservation failed")
		return
	}

	total, ok := e.priceAndTax(ord)
	if !ok {
		e.release(ord)
		e.fail(ord, "Pricing/Tax failed")
		return
	}

	if !e.pay(ord, total) {
		e.void(ord)
		e.release(ord)
		e.fail(ord, "Payment failed")
		return
	}

	if !e.confirm(ord) {
		e.void(ord)
		e.release(ord)
		e.fail(ord, "Confirmation failed")
		return
	}

	e.complete(ord, total)
}

func (e *Engine) reserve(ord *order) bool {
	e.emit(ord, nodeReserve, dealcartv1.NodeState_NODE_STATE_PENDING, "Reservation queued", "", "")
	e.emit(ord, nodeReserve, dealcartv1.NodeState_NODE_STATE_RUNNING, "Reserving inventory", "", "")

	if err := e.inventory.Reserve(ord.request.GetItems()); err != nil {
		e.emit(ord, nodeReserve, dealcartv1.NodeState_NODE_STATE_FAILED,
			"Insufficient inventory", "INSUFFICIENT_INVENTORY", err.Error())
		return false
	}

	e.emit(ord, nodeReserve, dealcartv1.NodeState_NODE_STATE_COMPLETED, "Inventory reserved successfully", "", "")
	return true
}

// priceAndTax runs the price and tax nodes concurrently and joins them under
// one aggregate deadline.
func (e *Engine) priceAndTax(ord *order) (*dealcartv1.Money, bool) {
	type result struct {
		money *dealcartv1.Money
		ok    bool
	}

	priceCh := make(chan result, 1)
	taxCh := make(chan result, 1)

	go func() {
		m, ok := e.price(ord)
		priceCh <- result{m, ok}
	}()
	go func() {
		m, ok := e.tax(ord)
		taxCh <- result{m, ok}
	}()

	deadline := time.NewTimer(priceTaxJoinDeadline)
	defer deadline.Stop()

	var price, tax *dealcartv1.Money
	for price == nil || tax == nil {
		select {
		case r := <-priceCh:
			if !r.ok {
				return nil, false
			}
			price = r.money
		case r := <-taxCh:
			if !r.ok {
				return nil, false
			}
			tax = r.money
		case <-deadline.C:
			e.logger.Error("price/tax join deadline exceeded", "checkout_id", ord.checkoutID)
			return nil, false
		}
	}

	return &dealcartv1.Money{
		CurrencyCode: price.GetCurrencyCode(),
		AmountCents:  price.GetAmountCents() + tax.GetAmountCents(),
	}, true
}

func (e *Engine) price(ord *order) (*dealcartv1.Money, bool) {
	e.emit(ord, nodePrice, dealcartv1.NodeState_NODE_STATE_PENDING, "Pricing queued", "", "")
	e.emit(ord, nodePrice, dealcartv1.NodeState_NODE_STATE_RUNNING, "Calculating price", "", "")

	e.sleep(e.randDuration(50, 150))

	subtotal := subtotalCents(ord.request)
	e.emit(ord, nodePrice, dealcartv1.NodeState_NODE_STATE_COMPLETED,
		fmt.Sprintf("Price calculated: $%.2f", float64(subtotal)/100), "", "")
	return &dealcartv1.Money{CurrencyCode: "USD", AmountCents: subtotal}, true
}

func (e *Engine) tax(ord *order) (*dealcartv1.Money, bool) {
	e.emit(ord, nodeTax, dealcartv1.NodeState_NODE_STATE_PENDING, "Tax queued", "", "")
	e.emit(ord, nodeTax, dealcartv1.NodeState_NODE_STATE_RUNNING, "Calculating tax", "", "")

	e.sleep(e.randDuration(30, 100))

	taxCents := subtotalCents(ord.request) * taxRatePercent / 100
	e.emit(ord, nodeTax, dealcartv1.NodeState_NODE_STATE_COMPLETED,
		fmt.Sprintf("Tax calculated: $%.2f", float64(taxCents)/100), "", "")
	return &dealcartv1.Money{CurrencyCode: "USD", AmountCents: taxCents}, true
}

// pay makes up to three attempts with a soft per-attempt deadline; synthetic
// gateway failures only hit non-final attempts.
func (e *Engine) pay(ord *order, amount *dealcartv1.Money) bool {
	e.emit(ord, nodePay, dealcartv1.NodeState_NODE_STATE_PENDING, "Payment queued", "", "")

	for attempt := 1; attempt <= payAttempts; attempt++ {
		e.emit(ord, nodePay, dealcartv1.NodeState_NODE_STATE_RUNNING,
			fmt.Sprintf("Processing payment (attempt %d)", attempt), "", "")

		start := time.Now()
		e.sleep(e.randDuration(100, 300))

		var attemptErr error
		if time.Since(start) > e.payDeadline {
			attemptErr = fmt.Errorf("payment timeout")
		} else if attempt < payAttempts && e.chance(e.payFailureRate) {
			attemptErr = fmt.Errorf("payment gateway error")
		}

		if attemptErr == nil {
			ord.setPaymentTxn("txn-" + uuid.NewString())
			e.emit(ord, nodePay, dealcartv1.NodeState_NODE_STATE_COMPLETED,
				fmt.Sprintf("Payment successful: $%.2f", float64(amount.GetAmountCents())/100), "", "")
			return true
		}

		if attempt < payAttempts {
			e.logger.Warn("payment attempt failed, retrying",
				"checkout_id", ord.checkoutID, "attempt", attempt, "error", attemptErr)
			e.sleep(payBackoff)
			continue
		}

		e.emit(ord, nodePay, dealcartv1.NodeState_NODE_STATE_FAILED,
			"Payment failed after retries", "PAYMENT_FAILED", attemptErr.Error())
	}
	return false
}

func (e *Engine) confirm(ord *order) bool {
	e.emit(ord, nodeConfirm, dealcartv1.NodeState_NODE_STATE_PENDING, "Confirmation queued", "", "")
	e.emit(ord, nodeConfirm, dealcartv1.NodeState_NODE_STATE_RUNNING, "Confirming order", "", "")

	e.sleep(e.randDuration(50, 150))

	if e.chance(e.confirmFailureRate) {
		e.emit(ord, nodeConfirm, dealcartv1.NodeState_NODE_STATE_FAILED,
			"Confirmation failed", "CONFIRMATION_FAILED", "vendor confirmation failed")
		return false
	}

	e.emit(ord, nodeConfirm, dealcartv1.NodeState_NODE_STATE_COMPLETED, "Order confirmed", "", "")
	return true
}

// release is the reserve compensation: put every reserved unit back.
func (e *Engine) release(ord *order) {
	e.logger.Info("compensating: releasing inventory", "checkout_id", ord.checkoutID)
	e.emit(ord, nodeRelease, dealcartv1.NodeState_NODE_STATE_PENDING, "Release queued", "", "")
	e.emit(ord, nodeRelease, dealcartv1.NodeState_NODE_STATE_RUNNING, "Releasing inventory", "", "")
	e.inventory.Release(ord.request.GetItems())
	e.emit(ord, nodeRelease, dealcartv1.NodeState_NODE_STATE_COMPLETED, "Inventory released", "", "")
}

// void is the pay compensation. It only runs when a payment transaction was
// actually recorded.
func (e *Engine) void(ord *order) {
	txn := ord.paymentTxnID()
	if txn == "" {
		return
	}

	e.logger.Info("compensating: voiding payment", "checkout_id", ord.checkoutID, "txn", txn)
	e.emit(ord, nodeVoid, dealcartv1.NodeState_NODE_STATE_PENDING, "Void queued", "", "")
	e.emit(ord, nodeVoid, dealcartv1.NodeState_NODE_STATE_RUNNING, "Voiding payment", "", "")

	e.sleep(50 * time.Millisecond)

	if e.chance(e.voidFailureRate) {
		e.logger.Error("void failed", "checkout_id", ord.checkoutID, "txn", txn)
		e.emit(ord, nodeVoid, dealcartv1.NodeState_NODE_STATE_FAILED,
			"Void failed", "VOID_FAILED", "payment void failed")
		return
	}

	e.emit(ord, nodeVoid, dealcartv1.NodeState_NODE_STATE_COMPLETED, "Payment voided", "", "")
}

func (e *Engine) fail(ord *order, message string) {
	e.logger.Error("checkout failed", "checkout_id", ord.checkoutID, "reason", message)
	ord.terminate(dealcartv1.CheckoutStatus_CHECKOUT_STATUS_FAILED, nil)
}

func (e *Engine) complete(ord *order, total *dealcartv1.Money) {
	e.logger.Info("checkout completed",
		"checkout_id", ord.checkoutID,
		"total_cents", total.GetAmountCents(),
	)
	ord.terminate(dealcartv1.CheckoutStatus_CHECKOUT_STATUS_COMPLETED, total)
}

func (e *Engine) emit(ord *order, node nodeID, state dealcartv1.NodeState, message, errCode, errMessage string) {
	ord.append(&dealcartv1.NodeStatus{
		NodeId:       string(node),
		State:        state,
		Message:      message,
		TimestampMs:  time.Now().UnixMilli(),
		ErrorCode:    errCode,
		ErrorMessage: errMessage,
	})
}

func subtotalCents(req *dealcartv1.CheckoutRequest) int64 {
	var total int64
	for _, item := range req.GetItems() {
		total += item.GetUnitPrice().GetAmountCents() * int64(item.GetQuantity())
	}
	return total
}

func (e *Engine) randDuration(minMs, maxMs int) time.Duration {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return time.Duration(minMs+e.rng.Intn(maxMs-minMs)) * time.Millisecond
}

func (e *Engine) chance(rate float64) bool {
	if rate <= 0 {
		return false
	}
	if rate >= 1 {
		return true
	}
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Float64() < rate
}
