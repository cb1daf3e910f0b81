package submission

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/curated-storefront/internal/catalog"
	"github.com/example/curated-storefront/internal/domain/cart"
	"github.com/example/curated-storefront/internal/infrastructure/store"
	"github.com/example/curated-storefront/internal/validation"
	"github.com/example/curated-storefront/internal/webhook"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 3, 15, 9, 30, 15, 123_000_000, time.UTC)

type fakeDeliverer struct {
	mu       sync.Mutex
	payloads []any
	err      error
}

func (d *fakeDeliverer) Deliver(_ context.Context, payload any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.payloads = append(d.payloads, payload)
	return d.err
}

type fakePublisher struct {
	keys   []string
	events []any
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, event any) error {
	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return p.err
}

func newTestSubmitter(d Deliverer, opts ...Option) *Submitter {
	clock := func() time.Time { return fixedNow }
	v := validation.New(validation.WithClock(clock))
	return NewSubmitter(d, v, zap.NewNop(), append([]Option{WithClock(clock)}, opts...)...)
}

func testItems() []cart.CartItem {
	return []cart.CartItem{
		{Product: catalog.Product{ID: "p1", Name: "Headphones", Price: catalog.MustMoney("10.00")}, Quantity: 2},
		{Product: catalog.Product{ID: "p2", Name: "Coffee", Price: catalog.MustMoney("5.50")}, Quantity: 1},
	}
}

func validCheckout() CheckoutForm {
	return CheckoutForm{Name: "Ada Lovelace", Email: "ada@example.com", Address: "12 Analytical Way"}
}

func testRental() catalog.RentalItem {
	return catalog.RentalItem{ID: "rent1", Name: "Projector", PricePerDay: catalog.MustMoney("75"), Category: "Event Gear"}
}

// ============================================
// State Machine Tests
// ============================================

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StateIdle, StateValidating))
	assert.True(t, CanTransition(StateValidating, StateSubmitting))
	assert.True(t, CanTransition(StateValidating, StateValidationFailed))
	assert.True(t, CanTransition(StateSubmitting, StateDelivered))
	assert.True(t, CanTransition(StateSubmitting, StateDeliveryFailed))

	assert.False(t, CanTransition(StateIdle, StateSubmitting))
	assert.False(t, CanTransition(StateValidationFailed, StateSubmitting))
	assert.False(t, CanTransition(StateDelivered, StateSubmitting))
	assert.False(t, CanTransition(StateDeliveryFailed, StateValidating))
}

func TestAttempt_IllegalTransitionPanics(t *testing.T) {
	a := &attempt{}
	assert.Panics(t, func() { a.advance(StateDelivered) })
}

func TestState_JSON(t *testing.T) {
	data, err := json.Marshal(Result{State: StateDeliveryFailed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"","state":"delivery_failed"}`, string(data))
	assert.True(t, StateDelivered.Terminal())
	assert.False(t, StateSubmitting.Terminal())
}

// ============================================
// Checkout Tests
// ============================================

func TestSubmitOrder_ValidationFailureMakesNoNetworkCall(t *testing.T) {
	d := &fakeDeliverer{}
	s := newTestSubmitter(d)

	form := validCheckout()
	form.Name = ""
	result := s.SubmitOrder(context.Background(), testItems(), form)

	assert.False(t, result.Success)
	assert.Equal(t, "Invalid form data.", result.Message)
	assert.Equal(t, StateValidationFailed, result.State)
	assert.Equal(t, FailureValidation, result.Failure)
	assert.Equal(t, []string{"Name must be at least 2 characters"}, result.FieldErrors["name"])
	assert.Empty(t, d.payloads)
}

func TestSubmitOrder_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CheckoutForm)
		field  string
		msg    string
	}{
		{"one-letter name", func(f *CheckoutForm) { f.Name = "A" }, "name", "Name must be at least 2 characters"},
		{"bad email", func(f *CheckoutForm) { f.Email = "not-an-email" }, "email", "Invalid email address"},
		{"short address", func(f *CheckoutForm) { f.Address = "1 A" }, "address", "Address must be at least 5 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validCheckout()
			tt.mutate(&form)

			result := newTestSubmitter(&fakeDeliverer{}).SubmitOrder(context.Background(), testItems(), form)

			assert.Equal(t, []string{tt.msg}, result.FieldErrors[tt.field])
			assert.Len(t, result.FieldErrors, 1)
		})
	}
}

func TestSubmitOrder_EmptyCartIsValidationFailure(t *testing.T) {
	d := &fakeDeliverer{}

	result := newTestSubmitter(d).SubmitOrder(context.Background(), nil, validCheckout())

	assert.Equal(t, FailureValidation, result.Failure)
	assert.Equal(t, []string{"Your cart is empty."}, result.FieldErrors["items"])
	assert.Empty(t, d.payloads)
}

func TestSubmitOrder_Delivered(t *testing.T) {
	d := &fakeDeliverer{}
	form := validCheckout()
	form.DiscountCode = "SPRING"

	result := newTestSubmitter(d).SubmitOrder(context.Background(), testItems(), form)

	assert.True(t, result.Success)
	assert.Equal(t, "Order placed successfully!", result.Message)
	assert.Equal(t, StateDelivered, result.State)
	assert.Nil(t, result.FieldErrors)

	require.Len(t, d.payloads, 1)
	payload := d.payloads[0].(OrderPayload)
	assert.Equal(t, "2026-03-15T09:30:15.123Z", payload.OrderDate)
	assert.True(t, payload.TotalPrice.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, "SPRING", payload.DiscountCode)
}

func TestSubmitOrder_PayloadJSONShape(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &body))
	}))
	defer server.Close()

	s := newTestSubmitter(webhook.NewClient(server.URL, time.Second))
	result := s.SubmitOrder(context.Background(), testItems(), validCheckout())

	require.True(t, result.Success)
	assert.Equal(t, "Ada Lovelace", body["name"])
	assert.Equal(t, "ada@example.com", body["email"])
	assert.Equal(t, "12 Analytical Way", body["address"])
	assert.NotContains(t, body, "discountCode")
	assert.Equal(t, 25.5, body["totalPrice"])
	assert.Equal(t, "2026-03-15T09:30:15.123Z", body["orderDate"])
	items := body["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "p1", first["id"])
	assert.Equal(t, float64(2), first["quantity"])
	assert.Equal(t, float64(10), first["price"])
}

func TestSubmitOrder_NotConfigured(t *testing.T) {
	s := newTestSubmitter(webhook.NewClient("", time.Second))

	result := s.SubmitOrder(context.Background(), testItems(), validCheckout())

	assert.False(t, result.Success)
	assert.Equal(t, "Server configuration error. Could not process order.", result.Message)
	assert.Equal(t, FailureConfiguration, result.Failure)
	assert.Equal(t, StateDeliveryFailed, result.State)
	assert.ErrorIs(t, result.Err, webhook.ErrNotConfigured)
}

func TestSubmitOrder_NonSuccessStatusGivesGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result := newTestSubmitter(webhook.NewClient(server.URL, time.Second)).
		SubmitOrder(context.Background(), testItems(), validCheckout())

	assert.False(t, result.Success)
	assert.Equal(t, "Failed to place order. Please try again later.", result.Message)
	assert.Equal(t, FailureDelivery, result.Failure)
	assert.NotContains(t, result.Message, server.URL)
	assert.NotContains(t, result.Message, "500")

	var statusErr *webhook.StatusError
	require.ErrorAs(t, result.Err, &statusErr)
	assert.Equal(t, 500, statusErr.StatusCode)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(data), server.URL)
}

func TestSubmitOrder_PublishesOrderSubmitted(t *testing.T) {
	pub := &fakePublisher{}
	s := newTestSubmitter(&fakeDeliverer{}, WithPublisher(pub))

	result := s.SubmitOrder(context.Background(), testItems(), validCheckout())

	require.True(t, result.Success)
	require.Len(t, pub.events, 1)
	event := pub.events[0].(store.Event)
	assert.Equal(t, EventOrderSubmitted, event.EventType)
	assert.Equal(t, OrderAggregateType, event.AggregateType)
	assert.Equal(t, pub.keys[0], event.AggregateID)

	var data OrderSubmitted
	require.NoError(t, json.Unmarshal(event.Data, &data))
	assert.Equal(t, "ada@example.com", data.Email)
	assert.True(t, data.TotalPrice.Equal(decimal.RequireFromString("25.5")))
}

func TestSubmitOrder_PublishFailureDoesNotChangeResult(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	s := newTestSubmitter(&fakeDeliverer{}, WithPublisher(pub))

	result := s.SubmitOrder(context.Background(), testItems(), validCheckout())

	assert.True(t, result.Success)
}

func TestSubmitOrder_NoPublishOnFailure(t *testing.T) {
	pub := &fakePublisher{}
	s := newTestSubmitter(&fakeDeliverer{err: errors.New("timeout")}, WithPublisher(pub))

	result := s.SubmitOrder(context.Background(), testItems(), validCheckout())

	assert.False(t, result.Success)
	assert.Empty(t, pub.events)
}

// ============================================
// Rental Tests
// ============================================

func TestSubmitRental_Delivered(t *testing.T) {
	d := &fakeDeliverer{}
	form := RentalForm{MinecraftUsername: "Steve", DiscordID: "steve#0001", RentalDate: "2026-03-20"}

	result := newTestSubmitter(d).SubmitRental(context.Background(), testRental(), form)

	assert.True(t, result.Success)
	assert.Equal(t, "Rental request submitted!", result.Message)
	require.Len(t, d.payloads, 1)
	payload := d.payloads[0].(RentalPayload)
	assert.Equal(t, "2026-03-20T00:00:00.000Z", payload.RentalDate)
	assert.Equal(t, "2026-03-15T09:30:15.123Z", payload.RequestDate)
	assert.Equal(t, "rent1", payload.Item.ID)
}

func TestSubmitRental_TimestampDateIsSentAsItsDay(t *testing.T) {
	d := &fakeDeliverer{}
	form := RentalForm{MinecraftUsername: "Steve", DiscordID: "steve#0001", RentalDate: "2026-03-20T17:45:00+01:00"}

	result := newTestSubmitter(d).SubmitRental(context.Background(), testRental(), form)

	require.True(t, result.Success)
	require.Len(t, d.payloads, 1)
	assert.Equal(t, "2026-03-20T00:00:00.000Z", d.payloads[0].(RentalPayload).RentalDate)
}

func TestSubmitRental_Validation(t *testing.T) {
	tests := []struct {
		name     string
		form     RentalForm
		expected validation.FieldErrors
	}{
		{
			name: "all missing",
			form: RentalForm{},
			expected: validation.FieldErrors{
				"minecraftUsername": {"Minecraft username is required."},
				"discordId":         {"Discord ID is required."},
				"rentalDate":        {"Please select a date."},
			},
		},
		{
			name:     "past date",
			form:     RentalForm{MinecraftUsername: "Steve", DiscordID: "1", RentalDate: "2026-03-14"},
			expected: validation.FieldErrors{"rentalDate": {"Rental date cannot be in the past."}},
		},
		{
			name:     "unparseable date",
			form:     RentalForm{MinecraftUsername: "Steve", DiscordID: "1", RentalDate: "soon"},
			expected: validation.FieldErrors{"rentalDate": {"Please select a valid date."}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeDeliverer{}

			result := newTestSubmitter(d).SubmitRental(context.Background(), testRental(), tt.form)

			assert.Equal(t, tt.expected, result.FieldErrors)
			assert.Empty(t, d.payloads)
		})
	}
}

func TestSubmitRental_DeliveryFailure(t *testing.T) {
	d := &fakeDeliverer{err: &webhook.StatusError{StatusCode: 503}}
	form := RentalForm{MinecraftUsername: "Steve", DiscordID: "1", RentalDate: "2026-03-15"}

	result := newTestSubmitter(d).SubmitRental(context.Background(), testRental(), form)

	assert.Equal(t, "Failed to submit request. Please try again.", result.Message)
	assert.Equal(t, FailureDelivery, result.Failure)
}

func TestSubmitRental_NotConfigured(t *testing.T) {
	d := &fakeDeliverer{err: webhook.ErrNotConfigured}
	form := RentalForm{MinecraftUsername: "Steve", DiscordID: "1", RentalDate: "2026-03-15"}

	result := newTestSubmitter(d).SubmitRental(context.Background(), testRental(), form)

	assert.Equal(t, "Server configuration error. Could not process request.", result.Message)
	assert.Equal(t, FailureConfiguration, result.Failure)
}

// ============================================
// Custom Order Tests
// ============================================

func TestSubmitCustomOrder_Delivered(t *testing.T) {
	d := &fakeDeliverer{}
	form := CustomOrderForm{
		OrderDescription: "A diamond pickaxe with my name engraved",
		ContactEmail:     "alex@example.com",
		Name:             "Alex",
		Offer:            "249.99",
	}

	result := newTestSubmitter(d).SubmitCustomOrder(context.Background(), form)

	assert.True(t, result.Success)
	require.Len(t, d.payloads, 1)
	payload := d.payloads[0].(CustomOrderPayload)
	assert.Equal(t, "custom", payload.OrderType)
	assert.Equal(t, "249.99", payload.Offer.String())

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"offer":249.99`), string(data))
}

func TestSubmitCustomOrder_Validation(t *testing.T) {
	form := CustomOrderForm{ContactEmail: "nope", Offer: "0"}

	result := newTestSubmitter(&fakeDeliverer{}).SubmitCustomOrder(context.Background(), form)

	assert.Equal(t, validation.FieldErrors{
		"orderDescription": {"Order description is required."},
		"contactEmail":     {"A valid email is required."},
		"name":             {"Your name is required."},
		"offer":            {"Offer must be a positive number."},
	}, result.FieldErrors)
}
