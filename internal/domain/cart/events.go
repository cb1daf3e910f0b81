package cart

import (
	"time"

	"github.com/example/curated-storefront/internal/catalog"
)

const (
	EventItemAdded       = "ItemAddedToCart"
	EventQuantityUpdated = "ItemQuantityUpdated"
	EventItemRemoved     = "ItemRemovedFromCart"
	EventCartCleared     = "CartCleared"
	EventItemsCheckedOut = "ItemsCheckedOut"
)

// ItemAddedToCart carries the full product so replay does not depend on the
// catalog that was loaded when the event was written.
type ItemAddedToCart struct {
	CartID    string          `json:"cart_id"`
	SessionID string          `json:"session_id"`
	Product   catalog.Product `json:"product"`
	AddedAt   time.Time       `json:"added_at"`
}

type ItemQuantityUpdated struct {
	CartID    string    `json:"cart_id"`
	SessionID string    `json:"session_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ItemRemovedFromCart struct {
	CartID    string    `json:"cart_id"`
	SessionID string    `json:"session_id"`
	ProductID string    `json:"product_id"`
	RemovedAt time.Time `json:"removed_at"`
}

type CartCleared struct {
	CartID    string    `json:"cart_id"`
	SessionID string    `json:"session_id"`
	ClearedAt time.Time `json:"cleared_at"`
}

// CheckedOutLine is the quantity of one product that left the cart with an
// accepted order.
type CheckedOutLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ItemsCheckedOut removes exactly the ordered quantities. Lines added or
// raised while the order was in flight stay in the cart.
type ItemsCheckedOut struct {
	CartID       string           `json:"cart_id"`
	SessionID    string           `json:"session_id"`
	Lines        []CheckedOutLine `json:"lines"`
	CheckedOutAt time.Time        `json:"checked_out_at"`
}
