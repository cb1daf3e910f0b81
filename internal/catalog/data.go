package catalog

var defaultCategories = []string{
	"Electronics",
	"Home Goods",
	"Groceries",
	"Apparel",
}

var defaultRentalCategories = []string{
	"Event Gear",
	"Tools",
	"Outdoor Equipment",
	"Mining Equipment",
}

func defaultProducts() []Product {
	return []Product{
		{
			ID:          "prod1",
			Name:        "Pro-Grade Noise-Cancelling Headphones",
			Description: "Experience immersive sound with our top-of-the-line noise-cancelling headphones. Perfect for audiophiles and commuters alike.",
			Price:       MustMoney("349.99"),
			Category:    "Electronics",
			ImageID:     "headphones",
		},
		{
			ID:          "prod2",
			Name:        "Artisanal Pour-Over Coffee Maker",
			Description: "Brew the perfect cup every morning. This stylish and functional pour-over coffee maker enhances your coffee ritual.",
			Price:       MustMoney("79.50"),
			Category:    "Home Goods",
			ImageID:     "coffee-maker",
		},
		{
			ID:          "prod3",
			Name:        "Organic Mediterranean Olive Oil - 2L",
			Description: "A large jug of premium, cold-pressed extra virgin olive oil, sourced from the finest groves in the Mediterranean.",
			Price:       MustMoney("45.00"),
			Category:    "Groceries",
			ImageID:     "olive-oil",
		},
		{
			ID:          "prod4",
			Name:        "All-Weather Performance Jacket",
			Description: "Stay dry and comfortable in any condition with this versatile, waterproof, and breathable performance jacket.",
			Price:       MustMoney("199.99"),
			Category:    "Apparel",
			ImageID:     "jacket",
		},
		{
			ID:          "prod5",
			Name:        "4K Ultra-HD Smart Television",
			Description: "Bring cinema-quality viewing to your living room. A 65-inch screen with vibrant colors and smart connectivity.",
			Price:       MustMoney("1299.00"),
			Category:    "Electronics",
			ImageID:     "television",
		},
		{
			ID:          "prod6",
			Name:        "Minimalist Dutch Oven",
			Description: "An essential for any kitchen. Enameled cast iron dutch oven, perfect for braising, baking, and stewing.",
			Price:       MustMoney("150.00"),
			Category:    "Home Goods",
			ImageID:     "dutch-oven",
		},
		{
			ID:          "prod7",
			Name:        "Bulk Almond Flour - 5kg",
			Description: "Finely ground almond flour for all your gluten-free baking needs. A pantry staple in a convenient bulk size.",
			Price:       MustMoney("65.25"),
			Category:    "Groceries",
			ImageID:     "almond-flour",
		},
		{
			ID:          "prod8",
			Name:        "Merino Wool Crewneck Sweater",
			Description: "A timeless classic. Soft, breathable, and temperature-regulating merino wool sweater for everyday luxury.",
			Price:       MustMoney("110.00"),
			Category:    "Apparel",
			ImageID:     "sweater",
		},
	}
}

func defaultRentals() []RentalItem {
	return []RentalItem{
		{
			ID:          "rent1",
			Name:        "Professional Event Projector",
			Description: "High-lumen projector suitable for large venues, presentations, and movie nights. Includes all necessary cables.",
			PricePerDay: MustMoney("75"),
			Category:    "Event Gear",
			ImageID:     "projector",
		},
		{
			ID:          "rent2",
			Name:        "Heavy-Duty Pressure Washer",
			Description: "Gas-powered pressure washer for tackling tough cleaning jobs on decks, driveways, and siding.",
			PricePerDay: MustMoney("50"),
			Category:    "Tools",
			ImageID:     "pressure-washer",
		},
		{
			ID:          "rent3",
			Name:        "Premium 4-Person Camping Tent",
			Description: "Spacious and weatherproof tent for your next outdoor adventure. Easy setup and durable materials.",
			PricePerDay: MustMoney("35"),
			Category:    "Outdoor Equipment",
			ImageID:     "tent",
		},
		{
			ID:          "rent4",
			Name:        "Portable PA System",
			Description: "All-in-one PA system with two speakers, a mixer, and microphones. Perfect for parties, weddings, and public speaking.",
			PricePerDay: MustMoney("100"),
			Category:    "Event Gear",
			ImageID:     "pa-system",
		},
		{
			ID:          "rent5",
			Name:        "Golden Mining Drill",
			Description: "Top-tier mining drill for extracting rare resources with unparalleled speed and efficiency.",
			PricePerDay: MustMoney("600"),
			Category:    "Mining Equipment",
			ImageID:     "golden-drill",
		},
		{
			ID:          "rent6",
			Name:        "Iron Mining Drill",
			Description: "A reliable and sturdy drill for all your standard mining operations. Great for iron and coal.",
			PricePerDay: MustMoney("500"),
			Category:    "Mining Equipment",
			ImageID:     "iron-drill",
		},
		{
			ID:          "rent7",
			Name:        "Copper Mining Drill",
			Description: "Efficient and lightweight, this drill is perfect for extracting copper and other soft metals.",
			PricePerDay: MustMoney("300"),
			Category:    "Mining Equipment",
			ImageID:     "copper-drill",
		},
		{
			ID:          "rent8",
			Name:        "Diamond Mining Drill",
			Description: "The ultimate mining tool. Capable of boring through obsidian and finding the rarest gems.",
			PricePerDay: MustMoney("1000"),
			Category:    "Mining Equipment",
			ImageID:     "diamond-drill",
		},
	}
}
