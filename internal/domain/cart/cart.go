package cart

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/example/curated-storefront/internal/catalog"
	"github.com/example/curated-storefront/internal/infrastructure/store"
	"github.com/shopspring/decimal"
)

const AggregateType = "Cart"

// CartItem is a product line in the cart. Quantity is always at least 1.
type CartItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered list of items, unique by product id. The zero value is
// an empty cart.
type Cart struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	Version   int        `json:"version"`
}

func New(id, sessionID string) *Cart {
	return &Cart{ID: id, SessionID: sessionID}
}

func (c *Cart) indexOf(productID string) int {
	return slices.IndexFunc(c.Items, func(i CartItem) bool { return i.ID == productID })
}

// Contains reports whether the cart holds productID.
func (c *Cart) Contains(productID string) bool {
	return c.indexOf(productID) >= 0
}

// Quantity returns the quantity of productID, or 0 if absent.
func (c *Cart) Quantity(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// AddToCart increments the quantity of an existing line or appends a new one
// with quantity 1.
func (c *Cart) AddToCart(p catalog.Product) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: 1})
}

// RemoveFromCart deletes the line for productID. Absent ids are ignored.
func (c *Cart) RemoveFromCart(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.Items = slices.Delete(c.Items, i, i+1)
	}
}

// UpdateQuantity sets the quantity of an existing line. A quantity below 1
// removes the line; an absent id is a no-op and never creates a line.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		c.RemoveFromCart(productID)
		return
	}
	if i := c.indexOf(productID); i >= 0 {
		c.Items[i].Quantity = quantity
	}
}

// CheckOut subtracts each line's quantity. Lines that reach zero are removed;
// absent ids are ignored.
func (c *Cart) CheckOut(lines []CheckedOutLine) {
	for _, line := range lines {
		if i := c.indexOf(line.ProductID); i >= 0 {
			c.UpdateQuantity(line.ProductID, c.Items[i].Quantity-line.Quantity)
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Count is the sum of all quantities.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// TotalPrice is the exact sum of price times quantity.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Snapshot returns a copy of the items, safe to hand to a submission.
func (c *Cart) Snapshot() []CartItem {
	return slices.Clone(c.Items)
}

func (c *Cart) GetID() string   { return c.ID }
func (c *Cart) GetVersion() int { return c.Version }

// ApplyEvent replays a stored event onto the cart.
func (c *Cart) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventItemAdded:
		var data ItemAddedToCart
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		c.AddToCart(data.Product)
	case EventQuantityUpdated:
		var data ItemQuantityUpdated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		c.UpdateQuantity(data.ProductID, data.Quantity)
	case EventItemRemoved:
		var data ItemRemovedFromCart
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		c.RemoveFromCart(data.ProductID)
	case EventCartCleared:
		c.Clear()
	case EventItemsCheckedOut:
		var data ItemsCheckedOut
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		c.CheckOut(data.Lines)
	default:
		return fmt.Errorf("unknown cart event type %q", event.EventType)
	}
	c.Version = event.Version
	return nil
}
