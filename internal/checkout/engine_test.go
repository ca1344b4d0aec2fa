package checkout

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	dealcartv1 "github.com/prajwalun/dealcart/pkg/gen/proto"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(NewInventory(), time.Minute, slog.Default())
	e.rng = rand.New(rand.NewSource(1))
	e.sleep = func(time.Duration) {}
	e.payFailureRate = 0
	e.confirmFailureRate = 0
	return e
}

func checkoutRequest(items ...*dealcartv1.CheckoutItem) *dealcartv1.CheckoutRequest {
	return &dealcartv1.CheckoutRequest{
		CustomerId:      "c1",
		Items:           items,
		ShippingAddress: "123 Main St",
		PaymentMethodId: "pm-card-123",
	}
}

func priced(productID string, qty int32, cents int64) *dealcartv1.CheckoutItem {
	return &dealcartv1.CheckoutItem{
		ProductId: productID,
		Quantity:  qty,
		UnitPrice: &dealcartv1.Money{CurrencyCode: "USD", AmountCents: cents},
		VendorId:  "amz",
	}
}

// waitTerminated polls until the workflow reaches a terminal state.
func waitTerminated(t *testing.T, e *Engine, checkoutID string) *order {
	t.Helper()
	ord, ok := e.orders.get(checkoutID)
	require.True(t, ok)
	require.Eventually(t, func() bool {
		ord.mu.Lock()
		defer ord.mu.Unlock()
		return ord.terminated
	}, 5*time.Second, time.Millisecond)
	return ord
}

func historyOf(ord *order) []*dealcartv1.NodeStatus {
	ord.mu.Lock()
	defer ord.mu.Unlock()
	return append([]*dealcartv1.NodeStatus(nil), ord.history...)
}

// terminalStates maps node id to its last observed state.
func terminalStates(history []*dealcartv1.NodeStatus) map[string]dealcartv1.NodeState {
	out := map[string]dealcartv1.NodeState{}
	for _, s := range history {
		out[s.GetNodeId()] = s.GetState()
	}
	return out
}

func indexOf(history []*dealcartv1.NodeStatus, node string, state dealcartv1.NodeState) int {
	for i, s := range history {
		if s.GetNodeId() == node && s.GetState() == state {
			return i
		}
	}
	return -1
}

func TestStartValidation(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Start(context.Background(), checkoutRequest())
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = e.Start(context.Background(), checkoutRequest(priced("sku-laptop", 0, 89900)))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestStartReturnsImmediatelyPending(t *testing.T) {
	e := newTestEngine(t)

	resp, err := e.Start(context.Background(), checkoutRequest(priced("sku-laptop", 1, 89900)))
	require.NoError(t, err)
	require.Regexp(t, `^checkout-\d+-\d+$`, resp.GetCheckoutId())
	require.Equal(t, dealcartv1.CheckoutStatus_CHECKOUT_STATUS_PENDING, resp.GetStatus())
	waitTerminated(t, e, resp.GetCheckoutId())
}

func TestHappyCheckout(t *testing.T) {
	e := newTestEngine(t)

	resp, err := e.Start(context.Background(), checkoutRequest(priced("sku-laptop", 1, 89900)))
	require.NoError(t, err)

	ord := waitTerminated(t, e, resp.GetCheckoutId())
	history := historyOf(ord)
	states := terminalStates(history)

	for _, node := range []string{"reserve", "price", "tax", "pay", "confirm"} {
		require.Equal(t, dealcartv1.NodeState_NODE_STATE_COMPLETED, states[node], "node %s", node)
	}
	require.NotContains(t, states, "void")
	require.NotContains(t, states, "release")

	// reserve completes before pay runs; pay completes before confirm runs.
	require.Less(t,
		indexOf(history, "reserve", dealcartv1.NodeState_NODE_STATE_COMPLETED),
		indexOf(history, "pay", dealcartv1.NodeState_NODE_STATE_RUNNING))
	require.Less(t,
		indexOf(history, "pay", dealcartv1.NodeState_NODE_STATE_COMPLETED),
		indexOf(history, "confirm", dealcartv1.NodeState_NODE_STATE_RUNNING))

	// total = subtotal + floor(8% tax)
	ord.mu.Lock()
	total := ord.totalAmount.GetAmountCents()
	overall := ord.status
	ord.mu.Unlock()
	require.Equal(t, int64(89900+89900*8/100), total)
	require.Equal(t, dealcartv1.CheckoutStatus_CHECKOUT_STATUS_COMPLETED, overall)
}

func TestTotalUsesIntegerCents(t *testing.T) {
	e := newTestEngine(t)

	// subtotal 1999*3 = 5997; 8% = 479.76 -> floor 479
	resp, err := e.Start(context.Background(), checkoutRequest(priced("sku-book", 3, 1999)))
	require.NoError(t, err)

	ord := waitTerminated(t, e, resp.GetCheckoutId())
	ord.mu.Lock()
	total := ord.totalAmount.GetAmountCents()
	ord.mu.Unlock()
	require.Equal(t, int64(5997+479), total)
}

func TestInventoryShortageFailsBeforeAnythingElse(t *testing.T) {
	e := newTestEngine(t)
	e.inventory.Set("sku-x", 0)

	resp, err := e.Start(context.Background(), checkoutRequest(priced("sku-x", 1, 1000)))
	require.NoError(t, err)

	ord := waitTerminated(t, e, resp.GetCheckoutId())
	history := historyOf(ord)
	states := terminalStates(history)

	require.Equal(t, dealcartv1.NodeState_NODE_STATE_FAILED, states["reserve"])
	for _, node := range []string{"price", "tax", "pay", "confirm", "void", "release"} {
		require.NotContains(t, states, node, "node %s must not emit", node)
	}

	failedIdx := indexOf(history, "reserve", dealcartv1.NodeState_NODE_STATE_FAILED)
	require.Equal(t, "INSUFFICIENT_INVENTORY", history[failedIdx].GetErrorCode())
}

func TestPaymentExhaustionCompensatesWithReleaseOnly(t *testing.T) {
	e := newTestEngine(t)
	// A zero attempt deadline makes every attempt time out, exhausting the
	// retries without relying on the synthetic failure draw.
	e.payDeadline = 0

	e.inventory.Set("sku-a", 10)
	resp, err := e.Start(context.Background(), checkoutRequest(priced("sku-a", 2, 1000)))
	require.NoError(t, err)

	ord := waitTerminated(t, e, resp.GetCheckoutId())
	history := historyOf(ord)
	states := terminalStates(history)

	require.Equal(t, dealcartv1.NodeState_NODE_STATE_COMPLETED, states["reserve"])
	require.Equal(t, dealcartv1.NodeState_NODE_STATE_COMPLETED, states["price"])
	require.Equal(t, dealcartv1.NodeState_NODE_STATE_COMPLETED, states["tax"])
	require.Equal(t, dealcartv1.NodeState_NODE_STATE_FAILED, states["pay"])
	require.Equal(t, dealcartv1.NodeState_NODE_STATE_COMPLETED, states["release"])
	require.NotContains(t, states, "void", "no payment landed, so no void")

	failedIdx := indexOf(history, "pay", dealcartv1.NodeState_NODE_STATE_FAILED)
	require.Equal(t, "PAYMENT_FAILED", history[failedIdx].GetErrorCode())

	// Ledger returned to its pre-reserve state.
	require.Equal(t, 10, e.inventory.OnHand("sku-a"))
}

func TestConfirmFailureVoidsPaymentAndReleases(t *testing.T) {
	e := newTestEngine(t)
	e.confirmFailureRate = 1

	e.inventory.Set("sku-a", 5)
	resp, err := e.Start(context.Background(), checkoutRequest(priced("sku-a", 1, 1000)))
	require.NoError(t, err)

	ord := waitTerminated(t, e, resp.GetCheckoutId())
	states := terminalStates(historyOf(ord))

	require.Equal(t, dealcartv1.NodeState_NODE_STATE_COMPLETED, states["pay"])
	require.Equal(t, dealcartv1.NodeState_NODE_STATE_FAILED, states["confirm"])
	require.Equal(t, dealcartv1.NodeState_NODE_STATE_COMPLETED, states["void"])
	require.Equal(t, dealcartv1.NodeState_NODE_STATE_COMPLETED, states["release"])
	require.Equal(t, 5, e.inventory.OnHand("sku-a"))

	ord.mu.Lock()
	overall := ord.status
	ord.mu.Unlock()
	require.Equal(t, dealcartv1.CheckoutStatus_CHECKOUT_STATUS_FAILED, overall)
}

func TestIdempotencyKeyReplaysResponse(t *testing.T) {
	e := newTestEngine(t)

	req := checkoutRequest(priced("sku-laptop", 1, 89900))
	req.IdempotencyKey = "idem-1"

	first, err := e.Start(context.Background(), req)
	require.NoError(t, err)
	second, err := e.Start(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, first.GetCheckoutId(), second.GetCheckoutId())

	// Only one workflow ran.
	e.orders.mu.Lock()
	n := len(e.orders.orders)
	e.orders.mu.Unlock()
	require.Equal(t, 1, n)
}

type fakeStatusStream struct {
	grpc.ServerStream
	ctx context.Context

	mu   sync.Mutex
	sent []*dealcartv1.NodeStatus
}

func (s *fakeStatusStream) Context() context.Context { return s.ctx }

func (s *fakeStatusStream) Send(st *dealcartv1.NodeStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, st)
	return nil
}

func (s *fakeStatusStream) events() []*dealcartv1.NodeStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*dealcartv1.NodeStatus(nil), s.sent...)
}

func TestGetStatusUnknownID(t *testing.T) {
	e := newTestEngine(t)
	stream := &fakeStatusStream{ctx: context.Background()}
	err := e.GetStatus(&dealcartv1.CheckoutStatusRequest{CheckoutId: "checkout-nope"}, stream)
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestGetStatusReplayMatchesCanonicalHistory(t *testing.T) {
	e := newTestEngine(t)

	resp, err := e.Start(context.Background(), checkoutRequest(priced("sku-laptop", 1, 89900)))
	require.NoError(t, err)
	ord := waitTerminated(t, e, resp.GetCheckoutId())

	stream := &fakeStatusStream{ctx: context.Background()}
	require.NoError(t, e.GetStatus(&dealcartv1.CheckoutStatusRequest{CheckoutId: resp.GetCheckoutId()}, stream))

	canonical := historyOf(ord)
	got := stream.events()
	require.Equal(t, len(canonical), len(got))
	for i := range canonical {
		require.Equal(t, canonical[i].GetNodeId(), got[i].GetNodeId())
		require.Equal(t, canonical[i].GetState(), got[i].GetState())
	}
}

// A subscriber that attaches while the workflow is running sees the same
// canonical sequence as a late subscriber.
func TestGetStatusLiveTailEqualsReplay(t *testing.T) {
	e := newTestEngine(t)
	// Small real sleeps keep the workflow running long enough to subscribe
	// mid-flight.
	e.sleep = func(d time.Duration) { time.Sleep(d / 50) }

	resp, err := e.Start(context.Background(), checkoutRequest(priced("sku-laptop", 1, 89900)))
	require.NoError(t, err)

	live := &fakeStatusStream{ctx: context.Background()}
	doneCh := make(chan error, 1)
	go func() {
		doneCh <- e.GetStatus(&dealcartv1.CheckoutStatusRequest{CheckoutId: resp.GetCheckoutId()}, live)
	}()

	ord := waitTerminated(t, e, resp.GetCheckoutId())
	require.NoError(t, <-doneCh)

	canonical := historyOf(ord)
	got := live.events()
	require.Equal(t, len(canonical), len(got))
	for i := range canonical {
		require.Equal(t, canonical[i].GetNodeId(), got[i].GetNodeId())
		require.Equal(t, canonical[i].GetState(), got[i].GetState())
		require.Equal(t, canonical[i].GetTimestampMs(), got[i].GetTimestampMs())
	}
}
