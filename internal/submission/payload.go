package submission

import (
	"time"

	"github.com/example/curated-storefront/internal/catalog"
	"github.com/example/curated-storefront/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// OrderPayload is the checkout body sent to the webhook.
type OrderPayload struct {
	CheckoutForm
	Items      []cart.CartItem `json:"items"`
	TotalPrice catalog.Money   `json:"totalPrice"`
	OrderDate  string          `json:"orderDate"`
}

// RentalPayload is the rental request body sent to the webhook.
type RentalPayload struct {
	RentalForm
	Item        catalog.RentalItem `json:"item"`
	RequestDate string             `json:"requestDate"`
}

// CustomOrderPayload is the custom order body sent to the webhook.
type CustomOrderPayload struct {
	OrderDescription string        `json:"orderDescription"`
	ContactEmail     string        `json:"contactEmail"`
	Name             string        `json:"name"`
	Offer            catalog.Money `json:"offer"`
	OrderType        string        `json:"orderType"`
	OrderDate        string        `json:"orderDate"`
}

const OrderTypeCustom = "custom"

const (
	OrderAggregateType  = "Order"
	EventOrderSubmitted = "OrderSubmitted"
)

// OrderSubmitted is published after a checkout reached the webhook.
type OrderSubmitted struct {
	OrderID    string          `json:"order_id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Address    string          `json:"address"`
	Items      []cart.CartItem `json:"items"`
	TotalPrice catalog.Money   `json:"total_price"`
	OrderDate  string          `json:"order_date"`
}

func totalOf(items []cart.CartItem) catalog.Money {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return catalog.NewMoney(total)
}
