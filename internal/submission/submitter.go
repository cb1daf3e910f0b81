// Package submission validates storefront forms, builds webhook payloads and
// reports every outcome as a Result.
package submission

import (
	"context"
	"errors"
	"time"

	"github.com/example/curated-storefront/internal/catalog"
	"github.com/example/curated-storefront/internal/domain/cart"
	"github.com/example/curated-storefront/internal/infrastructure/store"
	"github.com/example/curated-storefront/internal/validation"
	"github.com/example/curated-storefront/internal/webhook"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Failure classifies why a submission did not succeed.
type Failure int

const (
	FailureNone Failure = iota
	FailureValidation
	FailureConfiguration
	FailureDelivery
)

// Result is returned by every submission. Err and Failure never leave the
// process; Message is safe to show to the shopper.
type Result struct {
	Success     bool                   `json:"success"`
	Message     string                 `json:"message"`
	FieldErrors validation.FieldErrors `json:"fieldErrors,omitempty"`
	State       State                  `json:"state"`
	Failure     Failure                `json:"-"`
	Err         error                  `json:"-"`
}

// Deliverer sends one payload to the order endpoint.
type Deliverer interface {
	Deliver(ctx context.Context, payload any) error
}

type Submitter struct {
	deliverer Deliverer
	validator *validation.Validator
	publisher store.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Submitter)

// WithPublisher publishes OrderSubmitted after each delivered checkout.
func WithPublisher(p store.Publisher) Option {
	return func(s *Submitter) { s.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

func NewSubmitter(d Deliverer, v *validation.Validator, logger *zap.Logger, opts ...Option) *Submitter {
	RegisterMessages(v)
	s := &Submitter{
		deliverer: d,
		validator: v,
		logger:    logger.Named("submission"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitOrder validates the checkout form against a non-empty cart snapshot
// and posts the order. It does not touch the cart.
func (s *Submitter) SubmitOrder(ctx context.Context, items []cart.CartItem, form CheckoutForm) Result {
	a := &attempt{}
	a.advance(StateValidating)

	errs := s.validator.Struct(form)
	if len(items) == 0 {
		if errs == nil {
			errs = validation.FieldErrors{}
		}
		errs.Add("items", msgEmptyCart)
	}
	if errs != nil {
		return s.invalid(a, "order", errs)
	}

	now := s.now()
	payload := OrderPayload{
		CheckoutForm: form,
		Items:        items,
		TotalPrice:   totalOf(items),
		OrderDate:    timestamp(now),
	}

	result := s.deliver(ctx, a, "order", checkoutFlow, payload)
	if result.Success {
		s.publishOrder(ctx, payload)
	}
	return result
}

// SubmitRental validates the rental form and posts the request for item.
func (s *Submitter) SubmitRental(ctx context.Context, item catalog.RentalItem, form RentalForm) Result {
	a := &attempt{}
	a.advance(StateValidating)

	if errs := s.validator.Struct(form); errs != nil {
		return s.invalid(a, "rental", errs)
	}

	// isodate already passed, so the date parses.
	day, _ := validation.ParseDay(form.RentalDate)
	form.RentalDate = timestamp(day)

	payload := RentalPayload{
		RentalForm:  form,
		Item:        item,
		RequestDate: timestamp(s.now()),
	}
	return s.deliver(ctx, a, "rental", rentalFlow, payload)
}

// SubmitCustomOrder validates a custom order and posts it tagged as custom.
func (s *Submitter) SubmitCustomOrder(ctx context.Context, form CustomOrderForm) Result {
	a := &attempt{}
	a.advance(StateValidating)

	if errs := s.validator.Struct(form); errs != nil {
		return s.invalid(a, "custom_order", errs)
	}

	offer, _ := form.Offer.Decimal()
	payload := CustomOrderPayload{
		OrderDescription: form.OrderDescription,
		ContactEmail:     form.ContactEmail,
		Name:             form.Name,
		Offer:            catalog.NewMoney(offer),
		OrderType:        OrderTypeCustom,
		OrderDate:        timestamp(s.now()),
	}
	return s.deliver(ctx, a, "custom_order", customOrderFlow, payload)
}

// Malformed is the result for a request body that could not be decoded into
// a form at all.
func Malformed() Result {
	return Result{Message: msgInvalidForm, State: StateValidationFailed, Failure: FailureValidation}
}

func (s *Submitter) invalid(a *attempt, kind string, errs validation.FieldErrors) Result {
	a.advance(StateValidationFailed)
	s.logger.Info("submission rejected", zap.String("kind", kind), zap.Int("fields", len(errs)))
	return Result{
		Message:     msgInvalidForm,
		FieldErrors: errs,
		State:       a.state,
		Failure:     FailureValidation,
	}
}

func (s *Submitter) deliver(ctx context.Context, a *attempt, kind string, msgs flowMessages, payload any) Result {
	a.advance(StateSubmitting)

	err := s.deliverer.Deliver(ctx, payload)
	if err == nil {
		a.advance(StateDelivered)
		s.logger.Info("submission delivered", zap.String("kind", kind))
		return Result{Success: true, Message: msgs.success, State: a.state}
	}

	a.advance(StateDeliveryFailed)
	if errors.Is(err, webhook.ErrNotConfigured) {
		s.logger.Error("webhook url is not configured", zap.String("kind", kind))
		return Result{Message: msgs.configuration, State: a.state, Failure: FailureConfiguration, Err: err}
	}

	fields := []zap.Field{zap.String("kind", kind), zap.Error(err)}
	var statusErr *webhook.StatusError
	if errors.As(err, &statusErr) {
		fields = append(fields, zap.Int("status", statusErr.StatusCode))
	}
	s.logger.Error("failed to deliver submission", fields...)
	return Result{Message: msgs.delivery, State: a.state, Failure: FailureDelivery, Err: err}
}

// publishOrder is best effort; the order has already been accepted.
func (s *Submitter) publishOrder(ctx context.Context, payload OrderPayload) {
	if s.publisher == nil {
		return
	}
	orderID := uuid.New().String()
	event, err := store.NewEvent(orderID, OrderAggregateType, EventOrderSubmitted, OrderSubmitted{
		OrderID:    orderID,
		Name:       payload.Name,
		Email:      payload.Email,
		Address:    payload.Address,
		Items:      payload.Items,
		TotalPrice: payload.TotalPrice,
		OrderDate:  payload.OrderDate,
	})
	if err == nil {
		event.Version = 1
		err = s.publisher.Publish(ctx, orderID, event)
	}
	if err != nil {
		s.logger.Warn("failed to publish order event", zap.String("order_id", orderID), zap.Error(err))
	}
}
