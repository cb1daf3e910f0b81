// Package notification reacts to published storefront events.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/curated-storefront/internal/email"
	"github.com/example/curated-storefront/internal/infrastructure/store"
	"github.com/example/curated-storefront/internal/submission"
	"go.uber.org/zap"
)

// Mailer sends order confirmation mail.
type Mailer interface {
	SendOrderConfirmation(c email.Confirmation) error
}

// Handler processes events for sending notifications
type Handler struct {
	mailer Mailer
	logger *zap.Logger
}

func NewHandler(mailer Mailer, logger *zap.Logger) *Handler {
	return &Handler{mailer: mailer, logger: logger.Named("notifier")}
}

// HandleEvent processes an event from Kafka. Events other than
// OrderSubmitted are ignored.
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event store.Event
	if err := json.Unmarshal(value, &event); err != nil {
		h.logger.Error("failed to unmarshal event", zap.ByteString("key", key), zap.Error(err))
		return err
	}

	if event.EventType == submission.EventOrderSubmitted {
		return h.handleOrderSubmitted(event)
	}
	return nil
}

func (h *Handler) handleOrderSubmitted(event store.Event) error {
	var e submission.OrderSubmitted
	if err := json.Unmarshal(event.Data, &e); err != nil {
		return fmt.Errorf("unmarshal %s: %w", event.EventType, err)
	}
	if e.Email == "" {
		h.logger.Warn("order has no email address", zap.String("order_id", e.OrderID))
		return nil
	}

	items := make([]email.OrderItem, len(e.Items))
	for i, item := range e.Items {
		items[i] = email.OrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price.Decimal,
		}
	}

	err := h.mailer.SendOrderConfirmation(email.Confirmation{
		To:      e.Email,
		Name:    e.Name,
		OrderID: e.OrderID,
		Address: e.Address,
		Items:   items,
		Total:   e.TotalPrice.Decimal,
	})
	if err != nil {
		return fmt.Errorf("send confirmation for order %s: %w", e.OrderID, err)
	}

	h.logger.Info("order confirmation sent", zap.String("order_id", e.OrderID))
	return nil
}
