package checkout

// Order status tracking: each order carries an append-only NodeStatus history
// and a subscriber set. Appends and subscriber registration share one mutex so
// every subscriber sees replay + live tail as one gapless, duplicate-free
// sequence.

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	dealcartv1 "github.com/prajwalun/dealcart/pkg/gen/proto"
)

// subscriberBuffer bounds the per-subscriber event channel. A checkout emits
// a few dozen events at most; a subscriber that cannot keep up is dropped.
const subscriberBuffer = 64

type order struct {
	checkoutID string
	request    *dealcartv1.CheckoutRequest

	mu          sync.Mutex
	history     []*dealcartv1.NodeStatus
	subscribers map[int]chan *dealcartv1.NodeStatus
	nextSubID   int
	status      dealcartv1.CheckoutStatus
	totalAmount *dealcartv1.Money
	paymentTxn  string
	terminated  bool
	terminatedAt time.Time
}

func newOrder(checkoutID string, req *dealcartv1.CheckoutRequest) *order {
	return &order{
		checkoutID:  checkoutID,
		request:     req,
		subscribers: make(map[int]chan *dealcartv1.NodeStatus),
		status:      dealcartv1.CheckoutStatus_CHECKOUT_STATUS_PENDING,
	}
}

// append records one status event and notifies live subscribers. A subscriber
// whose buffer is full is closed and dropped, like a disconnected observer.
func (o *order) append(status *dealcartv1.NodeStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = append(o.history, status)
	for id, ch := range o.subscribers {
		select {
		case ch <- status:
		default:
			close(ch)
			delete(o.subscribers, id)
		}
	}
}

// subscribe atomically snapshots the history and registers a live channel.
// When the order already terminated the channel is nil and the caller should
// complete after replay.
func (o *order) subscribe() (history []*dealcartv1.NodeStatus, ch <-chan *dealcartv1.NodeStatus, cancel func(), terminated bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	history = append([]*dealcartv1.NodeStatus(nil), o.history...)
	if o.terminated {
		return history, nil, func() {}, true
	}

	id := o.nextSubID
	o.nextSubID++
	c := make(chan *dealcartv1.NodeStatus, subscriberBuffer)
	o.subscribers[id] = c

	cancel = func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if _, ok := o.subscribers[id]; ok {
			delete(o.subscribers, id)
		}
	}
	return history, c, cancel, false
}

// terminate marks the order done and closes every subscriber stream.
func (o *order) terminate(status dealcartv1.CheckoutStatus, total *dealcartv1.Money) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = status
	o.totalAmount = total
	o.terminated = true
	o.terminatedAt = time.Now()
	for id, ch := range o.subscribers {
		close(ch)
		delete(o.subscribers, id)
	}
}

func (o *order) setPaymentTxn(txn string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.paymentTxn = txn
}

func (o *order) paymentTxnID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.paymentTxn
}

// orderRegistry owns the checkout-id keyed order map.
type orderRegistry struct {
	mu     sync.Mutex
	orders map[string]*order
	seq    atomic.Uint64
}

func newOrderRegistry() *orderRegistry {
	return &orderRegistry{orders: make(map[string]*order)}
}

func (r *orderRegistry) newCheckoutID() string {
	return fmt.Sprintf("checkout-%d-%d", time.Now().UnixMilli(), r.seq.Add(1))
}

func (r *orderRegistry) create(checkoutID string, req *dealcartv1.CheckoutRequest) *order {
	o := newOrder(checkoutID, req)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[checkoutID] = o
	return o
}

func (r *orderRegistry) get(checkoutID string) (*order, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[checkoutID]
	return o, ok
}

// sweep drops orders that terminated more than ttl ago and returns how many
// were evicted.
func (r *orderRegistry) sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, o := range r.orders {
		o.mu.Lock()
		stale := o.terminated && o.terminatedAt.Before(cutoff)
		o.mu.Unlock()
		if stale {
			delete(r.orders, id)
			evicted++
		}
	}
	return evicted
}
