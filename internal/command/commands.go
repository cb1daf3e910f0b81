package command

import "github.com/example/curated-storefront/internal/submission"

// Cart Commands
type AddToCart struct {
	SessionID string `json:"-"`
	ProductID string `json:"productId"`
}

type UpdateCartItem struct {
	SessionID string `json:"-"`
	ProductID string `json:"-"`
	Quantity  int    `json:"quantity"`
}

type RemoveFromCart struct {
	SessionID string `json:"-"`
	ProductID string `json:"-"`
}

type ClearCart struct {
	SessionID string `json:"-"`
}

// EndSession drops everything the session owned.
type EndSession struct {
	SessionID string `json:"-"`
}

// Submission Commands
type Checkout struct {
	SessionID string                  `json:"-"`
	Form      submission.CheckoutForm `json:"form"`
}

type RequestRental struct {
	RentalID string                `json:"-"`
	Form     submission.RentalForm `json:"form"`
}

type PlaceCustomOrder struct {
	Form submission.CustomOrderForm `json:"form"`
}
