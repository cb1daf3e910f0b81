package query

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/example/curated-storefront/internal/catalog"
	"github.com/example/curated-storefront/internal/domain/cart"
	"github.com/example/curated-storefront/internal/infrastructure/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler() (*Handler, *cart.Service) {
	cartSvc := cart.NewService(store.NewMemoryEventStore(nil), zap.NewNop())
	return NewHandler(catalog.Default(), cartSvc), cartSvc
}

func TestHandler_ListProducts(t *testing.T) {
	h, _ := newTestHandler()

	tests := []struct {
		name     string
		query    string
		category string
		count    int
	}{
		{"everything", "", "", 8},
		{"explicit all", "", "all", 8},
		{"by category", "", "Electronics", 2},
		{"by query", "COFFEE", "", 1},
		{"query in description", "gluten-free", "all", 1},
		{"no match", "bicycle", "", 0},
		{"unknown category", "", "Toys", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.ListProducts(tt.query, tt.category)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.count)
		})
	}
}

func TestHandler_ListProducts_PreservesCatalogOrder(t *testing.T) {
	h, _ := newTestHandler()

	got := h.ListProducts("", "Apparel")

	require.Len(t, got, 2)
	assert.Equal(t, "prod4", got[0].ID)
	assert.Equal(t, "prod8", got[1].ID)
}

func TestHandler_ListRentals(t *testing.T) {
	h, _ := newTestHandler()

	assert.Len(t, h.ListRentals("", ""), 8)
	assert.Len(t, h.ListRentals("drill", "Mining Equipment"), 4)
	assert.Len(t, h.ListRentals("", "Event Gear"), 2)

	r, ok := h.GetRental("rent3")
	require.True(t, ok)
	assert.Equal(t, "Outdoor Equipment", r.Category)
}

func TestHandler_Categories(t *testing.T) {
	h, _ := newTestHandler()

	view := h.Categories()

	assert.Equal(t, []string{"Electronics", "Home Goods", "Groceries", "Apparel"}, view.Products)
	assert.Contains(t, view.Rentals, "Mining Equipment")
}

func TestHandler_GetCart(t *testing.T) {
	h, cartSvc := newTestHandler()
	ctx := context.Background()

	empty, err := h.GetCart(ctx, "s1")
	require.NoError(t, err)
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"count":0,"totalPrice":0}`, string(data))

	p, _ := h.GetProduct("prod2")
	_, err = cartSvc.AddItem(ctx, "s1", p)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, "s1", p)
	require.NoError(t, err)

	view, err := h.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "159", view.TotalPrice.String())
}
