package query

import (
	"context"
	"slices"

	"github.com/example/curated-storefront/internal/catalog"
	"github.com/example/curated-storefront/internal/domain/cart"
)

type Handler struct {
	catalog *catalog.Catalog
	cartSvc *cart.Service
}

func NewHandler(c *catalog.Catalog, cartSvc *cart.Service) *Handler {
	return &Handler{catalog: c, cartSvc: cartSvc}
}

func normalizeCategory(category string) string {
	if category == "" {
		return catalog.AllCategories
	}
	return category
}

// Products
func (h *Handler) ListProducts(query, category string) []catalog.Product {
	out := slices.Collect(catalog.FilterItems(h.catalog.Products(), query, normalizeCategory(category)))
	if out == nil {
		return []catalog.Product{}
	}
	return out
}

func (h *Handler) GetProduct(id string) (catalog.Product, bool) {
	return h.catalog.Product(id)
}

// Rentals
func (h *Handler) ListRentals(query, category string) []catalog.RentalItem {
	out := slices.Collect(catalog.FilterItems(h.catalog.Rentals(), query, normalizeCategory(category)))
	if out == nil {
		return []catalog.RentalItem{}
	}
	return out
}

func (h *Handler) GetRental(id string) (catalog.RentalItem, bool) {
	return h.catalog.Rental(id)
}

func (h *Handler) Categories() CategoriesView {
	return CategoriesView{
		Products: h.catalog.Categories(),
		Rentals:  h.catalog.RentalCategories(),
	}
}

// Cart
func (h *Handler) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	c, err := h.cartSvc.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return NewCartView(c), nil
}
