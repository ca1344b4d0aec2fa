package checkout

import (
	"errors"
	"fmt"
	"sync"

	dealcartv1 "github.com/prajwalun/dealcart/pkg/gen/proto"
)

// ErrInsufficientInventory is returned when any item in a reservation cannot
// be covered by on-hand stock.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// Unknown products default to a large on-hand count so stress runs never fail
// checkouts on inventory.
const defaultOnHand = 100000

// seedInventory is the process-start stock per SKU.
var seedInventory = map[string]int{
	// Electronics
	"sku-laptop":     5000,
	"sku-macbook":    3000,
	"sku-iphone":     10000,
	"sku-ipad":       7000,
	"sku-airpods":    15000,
	"sku-watch":      8000,
	"sku-monitor":    4000,
	"sku-keyboard":   12000,
	"sku-mouse":      18000,
	"sku-headphones": 6000,
	"sku-camera":     2000,
	"sku-drone":      1500,
	"sku-tablet":     5000,

	// Home & kitchen
	"sku-blender":   8000,
	"sku-toaster":   10000,
	"sku-microwave": 5000,
	"sku-vacuum":    4000,
	"sku-coffee":    7000,
	"sku-airfryer":  6000,

	// Sports & outdoors
	"sku-bike":     3000,
	"sku-yoga-mat": 15000,
	"sku-dumbbell": 10000,
	"sku-tent":     4000,
	"sku-backpack": 8000,

	// Books & media
	"sku-book":     20000,
	"sku-textbook": 5000,

	// Clothing
	"sku-jacket": 7000,
	"sku-shoes":  12000,
	"sku-jeans":  15000,
	"sku-shirt":  20000,

	// Legacy test SKUs
	"sku-123": 50000,
	"sku-456": 50000,
	"sku-789": 50000,
}

// Inventory is the in-memory ledger: product_id -> on-hand units. Restart
// reinitializes from the seed; only reserve/release mutate it.
type Inventory struct {
	mu     sync.Mutex
	onHand map[string]int
}

// NewInventory returns a ledger seeded with the default stock.
func NewInventory() *Inventory {
	onHand := make(map[string]int, len(seedInventory))
	for sku, n := range seedInventory {
		onHand[sku] = n
	}
	return &Inventory{onHand: onHand}
}

// Reserve decrements stock for every item, atomically across the request:
// if any item cannot be covered, decrements already applied in this call are
// rolled back before the error is reported.
func (inv *Inventory) Reserve(items []*dealcartv1.CheckoutItem) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for i, item := range items {
		available := inv.lookupLocked(item.GetProductId())
		qty := int(item.GetQuantity())
		if available < qty {
			for _, done := range items[:i] {
				inv.onHand[done.GetProductId()] += int(done.GetQuantity())
			}
			return fmt.Errorf("%w: product %s requested %d available %d",
				ErrInsufficientInventory, item.GetProductId(), qty, available)
		}
		inv.onHand[item.GetProductId()] = available - qty
	}
	return nil
}

// Release returns reserved stock to the ledger.
func (inv *Inventory) Release(items []*dealcartv1.CheckoutItem) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, item := range items {
		inv.onHand[item.GetProductId()] = inv.lookupLocked(item.GetProductId()) + int(item.GetQuantity())
	}
}

// OnHand reports the current stock for a product.
func (inv *Inventory) OnHand(productID string) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.lookupLocked(productID)
}

// Set overrides the stock for a product (seeding and tests).
func (inv *Inventory) Set(productID string, n int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.onHand[productID] = n
}

func (inv *Inventory) lookupLocked(productID string) int {
	if n, ok := inv.onHand[productID]; ok {
		return n
	}
	return defaultOnHand
}
