package query

import (
	"github.com/example/curated-storefront/internal/catalog"
	"github.com/example/curated-storefront/internal/domain/cart"
)

type CartView struct {
	Items      []cart.CartItem `json:"items"`
	Count      int             `json:"count"`
	TotalPrice catalog.Money   `json:"totalPrice"`
}

func NewCartView(c *cart.Cart) *CartView {
	items := c.Snapshot()
	if items == nil {
		items = []cart.CartItem{}
	}
	return &CartView{
		Items:      items,
		Count:      c.Count(),
		TotalPrice: catalog.NewMoney(c.TotalPrice()),
	}
}

type CategoriesView struct {
	Products []string `json:"products"`
	Rentals  []string `json:"rentals"`
}
