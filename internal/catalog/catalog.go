package catalog

// Product is a sellable catalog entry. Products are immutable once defined.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
	Category    string `json:"category"`
	ImageID     string `json:"imageId"`
}

// RentalItem is a time-bounded, non-purchased catalog entry priced per day.
type RentalItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PricePerDay Money  `json:"pricePerDay"`
	Category    string `json:"category"`
	ImageID     string `json:"imageId"`
	Color       string `json:"color,omitempty"`
}

func (p Product) searchFields() (name, description, category string) {
	return p.Name, p.Description, p.Category
}

func (r RentalItem) searchFields() (name, description, category string) {
	return r.Name, r.Description, r.Category
}

// Catalog holds the read-only product and rental lists. It is safe for
// concurrent use because nothing mutates it after construction.
type Catalog struct {
	products         []Product
	rentals          []RentalItem
	categories       []string
	rentalCategories []string

	productIndex map[string]int
	rentalIndex  map[string]int
}

// New builds a catalog from the given lists. The slices are copied.
func New(products []Product, rentals []RentalItem, categories, rentalCategories []string) *Catalog {
	c := &Catalog{
		products:         append([]Product(nil), products...),
		rentals:          append([]RentalItem(nil), rentals...),
		categories:       append([]string(nil), categories...),
		rentalCategories: append([]string(nil), rentalCategories...),
		productIndex:     make(map[string]int, len(products)),
		rentalIndex:      make(map[string]int, len(rentals)),
	}
	for i, p := range c.products {
		c.productIndex[p.ID] = i
	}
	for i, r := range c.rentals {
		c.rentalIndex[r.ID] = i
	}
	return c
}

// Default returns the storefront's built-in catalog.
func Default() *Catalog {
	return New(defaultProducts(), defaultRentals(), defaultCategories, defaultRentalCategories)
}

func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

func (c *Catalog) Rentals() []RentalItem {
	return append([]RentalItem(nil), c.rentals...)
}

func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

func (c *Catalog) RentalCategories() []string {
	return append([]string(nil), c.rentalCategories...)
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.productIndex[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Rental looks up a rental item by id.
func (c *Catalog) Rental(id string) (RentalItem, bool) {
	i, ok := c.rentalIndex[id]
	if !ok {
		return RentalItem{}, false
	}
	return c.rentals[i], true
}
