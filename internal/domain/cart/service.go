package cart

import (
	"context"
	"errors"
	"time"

	"github.com/example/curated-storefront/internal/catalog"
	"github.com/example/curated-storefront/internal/domain/aggregate"
	"github.com/example/curated-storefront/internal/infrastructure/store"
	"go.uber.org/zap"
)

var (
	ErrInvalidProduct = errors.New("product id is required")
	ErrInvalidSession = errors.New("session id is required")
)

// Service owns one cart per session. Every state change is appended to the
// event store; calls for the same session are serialized.
type Service struct {
	eventStore store.EventStoreInterface
	logger     *zap.Logger
	locks      *keyedMutex
	now        func() time.Time
}

func NewService(es store.EventStoreInterface, logger *zap.Logger) *Service {
	return &Service{
		eventStore: es,
		logger:     logger.Named("cart"),
		locks:      newKeyedMutex(),
		now:        time.Now,
	}
}

// GetCartID returns the cart aggregate id for a session.
func GetCartID(sessionID string) string {
	return "cart-" + sessionID
}

func (s *Service) load(ctx context.Context, sessionID string) (*Cart, error) {
	cartID := GetCartID(sessionID)
	c, _, err := aggregate.LoadAggregate(ctx, s.eventStore, cartID, func() *Cart {
		return New(cartID, sessionID)
	})
	return c, err
}

// mutate loads the cart under the session lock and, when build returns an
// event, appends it and applies the stored version to the cart.
func (s *Service) mutate(ctx context.Context, sessionID string, build func(c *Cart) (eventType string, data any)) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	eventType, data := build(c)
	if eventType == "" {
		return c, nil
	}

	event, err := s.eventStore.Append(ctx, c.ID, AggregateType, eventType, data)
	if err != nil {
		return nil, err
	}
	if err := c.ApplyEvent(*event); err != nil {
		return nil, err
	}

	if err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, c, AggregateType); err != nil {
		s.logger.Warn("failed to create snapshot", zap.String("cart_id", c.ID), zap.Error(err))
	}

	s.logger.Debug("cart updated",
		zap.String("cart_id", c.ID),
		zap.String("event", eventType),
		zap.Int("count", c.Count()),
	)
	return c, nil
}

// Get returns the current cart for a session. A session without events has an
// empty cart.
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()
	return s.load(ctx, sessionID)
}

// AddItem adds one unit of product.
func (s *Service) AddItem(ctx context.Context, sessionID string, product catalog.Product) (*Cart, error) {
	if product.ID == "" {
		return nil, ErrInvalidProduct
	}
	return s.mutate(ctx, sessionID, func(c *Cart) (string, any) {
		return EventItemAdded, ItemAddedToCart{
			CartID:    c.ID,
			SessionID: sessionID,
			Product:   product,
			AddedAt:   s.now(),
		}
	})
}

// UpdateQuantity sets the quantity of a line. A quantity below 1 removes it;
// unknown products and unchanged quantities record nothing.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*Cart, error) {
	if productID == "" {
		return nil, ErrInvalidProduct
	}
	return s.mutate(ctx, sessionID, func(c *Cart) (string, any) {
		current := c.Quantity(productID)
		switch {
		case current == 0:
			return "", nil
		case quantity < 1:
			return EventItemRemoved, ItemRemovedFromCart{
				CartID:    c.ID,
				SessionID: sessionID,
				ProductID: productID,
				RemovedAt: s.now(),
			}
		case quantity == current:
			return "", nil
		default:
			return EventQuantityUpdated, ItemQuantityUpdated{
				CartID:    c.ID,
				SessionID: sessionID,
				ProductID: productID,
				Quantity:  quantity,
				UpdatedAt: s.now(),
			}
		}
	})
}

// RemoveItem deletes a line. Removing an absent product is a no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*Cart, error) {
	if productID == "" {
		return nil, ErrInvalidProduct
	}
	return s.mutate(ctx, sessionID, func(c *Cart) (string, any) {
		if !c.Contains(productID) {
			return "", nil
		}
		return EventItemRemoved, ItemRemovedFromCart{
			CartID:    c.ID,
			SessionID: sessionID,
			ProductID: productID,
			RemovedAt: s.now(),
		}
	})
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) (string, any) {
		if c.IsEmpty() {
			return "", nil
		}
		return EventCartCleared, CartCleared{
			CartID:    c.ID,
			SessionID: sessionID,
			ClearedAt: s.now(),
		}
	})
}

// CheckOut removes the ordered quantities from the cart. Anything not in
// ordered, or added on top of it since, is kept. Nothing is recorded when no
// ordered product is still in the cart.
func (s *Service) CheckOut(ctx context.Context, sessionID string, ordered []CartItem) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) (string, any) {
		var lines []CheckedOutLine
		for _, item := range ordered {
			if item.Quantity < 1 || !c.Contains(item.ID) {
				continue
			}
			lines = append(lines, CheckedOutLine{ProductID: item.ID, Quantity: item.Quantity})
		}
		if len(lines) == 0 {
			return "", nil
		}
		return EventItemsCheckedOut, ItemsCheckedOut{
			CartID:       c.ID,
			SessionID:    sessionID,
			Lines:        lines,
			CheckedOutAt: s.now(),
		}
	})
}
