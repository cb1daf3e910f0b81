package command

import (
	"context"
	"errors"
	"sync"

	"github.com/example/curated-storefront/internal/catalog"
	"github.com/example/curated-storefront/internal/domain/cart"
	"github.com/example/curated-storefront/internal/submission"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrRentalNotFound     = errors.New("rental item not found")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// Submitter sends validated forms to the order endpoint.
type Submitter interface {
	SubmitOrder(ctx context.Context, items []cart.CartItem, form submission.CheckoutForm) submission.Result
	SubmitRental(ctx context.Context, item catalog.RentalItem, form submission.RentalForm) submission.Result
	SubmitCustomOrder(ctx context.Context, form submission.CustomOrderForm) submission.Result
}

type Handler struct {
	catalog   *catalog.Catalog
	cartSvc   *cart.Service
	submitter Submitter
	logger    *zap.Logger

	mu       sync.Mutex
	checkout map[string]struct{} // sessions with a checkout in flight
}

func NewHandler(c *catalog.Catalog, cartSvc *cart.Service, submitter Submitter, logger *zap.Logger) *Handler {
	return &Handler{
		catalog:   c,
		cartSvc:   cartSvc,
		submitter: submitter,
		logger:    logger.Named("command"),
		checkout:  make(map[string]struct{}),
	}
}

// AddToCart adds one unit of a catalog product to the session's cart
func (h *Handler) AddToCart(ctx context.Context, cmd AddToCart) (*cart.Cart, error) {
	p, ok := h.catalog.Product(cmd.ProductID)
	if !ok {
		return nil, ErrProductNotFound
	}
	return h.cartSvc.AddItem(ctx, cmd.SessionID, p)
}

// UpdateCartItem sets the quantity of a cart line
func (h *Handler) UpdateCartItem(ctx context.Context, cmd UpdateCartItem) (*cart.Cart, error) {
	return h.cartSvc.UpdateQuantity(ctx, cmd.SessionID, cmd.ProductID, cmd.Quantity)
}

// RemoveFromCart removes a cart line
func (h *Handler) RemoveFromCart(ctx context.Context, cmd RemoveFromCart) (*cart.Cart, error) {
	return h.cartSvc.RemoveItem(ctx, cmd.SessionID, cmd.ProductID)
}

// ClearCart empties the cart
func (h *Handler) ClearCart(ctx context.Context, cmd ClearCart) (*cart.Cart, error) {
	return h.cartSvc.Clear(ctx, cmd.SessionID)
}

// EndSession clears the cart of a session that is going away
func (h *Handler) EndSession(ctx context.Context, cmd EndSession) error {
	_, err := h.cartSvc.Clear(ctx, cmd.SessionID)
	return err
}

func (h *Handler) beginCheckout(sessionID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, busy := h.checkout[sessionID]; busy {
		return false
	}
	h.checkout[sessionID] = struct{}{}
	return true
}

func (h *Handler) endCheckout(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.checkout, sessionID)
}

// Checkout submits the current cart. Once the order endpoint accepted it the
// ordered quantities leave the cart; every other outcome leaves it intact.
// Lines added while the order was in flight are kept. A second checkout for
// the same session while one is in flight is refused.
//
// Delivery and cart update run detached from ctx cancellation so a client
// disconnect cannot leave an accepted order in the cart.
func (h *Handler) Checkout(ctx context.Context, cmd Checkout) (submission.Result, error) {
	if !h.beginCheckout(cmd.SessionID) {
		return submission.Result{}, ErrCheckoutInProgress
	}
	defer h.endCheckout(cmd.SessionID)
	ctx = context.WithoutCancel(ctx)

	c, err := h.cartSvc.Get(ctx, cmd.SessionID)
	if err != nil {
		return submission.Result{}, err
	}

	ordered := c.Snapshot()
	result := h.submitter.SubmitOrder(ctx, ordered, cmd.Form)
	if !result.Success {
		return result, nil
	}

	// The order is already accepted downstream; a failed update is logged, not reported.
	if _, err := h.cartSvc.CheckOut(ctx, cmd.SessionID, ordered); err != nil {
		h.logger.Error("failed to remove ordered items from cart",
			zap.String("session_id", cmd.SessionID),
			zap.Error(err),
		)
	}
	return result, nil
}

// RequestRental submits a rental request for a catalog rental item
func (h *Handler) RequestRental(ctx context.Context, cmd RequestRental) (submission.Result, error) {
	item, ok := h.catalog.Rental(cmd.RentalID)
	if !ok {
		return submission.Result{}, ErrRentalNotFound
	}
	return h.submitter.SubmitRental(ctx, item, cmd.Form), nil
}

// PlaceCustomOrder submits a custom order
func (h *Handler) PlaceCustomOrder(ctx context.Context, cmd PlaceCustomOrder) submission.Result {
	return h.submitter.SubmitCustomOrder(ctx, cmd.Form)
}
