package submission

import "github.com/example/curated-storefront/internal/validation"

// CheckoutForm is the shopper's shipping and contact data.
type CheckoutForm struct {
	Name         string `json:"name" validate:"min=2"`
	Email        string `json:"email" validate:"email"`
	Address      string `json:"address" validate:"min=5"`
	DiscountCode string `json:"discountCode,omitempty"`
}

// RentalForm is a request to rent one item on a given day.
type RentalForm struct {
	MinecraftUsername string `json:"minecraftUsername" validate:"min=1"`
	DiscordID         string `json:"discordId" validate:"min=1"`
	RentalDate        string `json:"rentalDate" validate:"required,isodate,notpast"`
}

// CustomOrderForm describes a bespoke order with the shopper's offer.
type CustomOrderForm struct {
	OrderDescription string            `json:"orderDescription" validate:"min=1"`
	ContactEmail     string            `json:"contactEmail" validate:"email"`
	Name             string            `json:"name" validate:"min=1"`
	Offer            validation.Amount `json:"offer" validate:"posdecimal"`
}

const (
	msgInvalidForm = "Invalid form data."
	msgEmptyCart   = "Your cart is empty."
)

var checkoutMessages = validation.Messages{
	"name":    {"min": "Name must be at least 2 characters"},
	"email":   {"email": "Invalid email address"},
	"address": {"min": "Address must be at least 5 characters"},
}

var rentalMessages = validation.Messages{
	"minecraftUsername": {"min": "Minecraft username is required."},
	"discordId":         {"min": "Discord ID is required."},
	"rentalDate": {
		"required": "Please select a date.",
		"isodate":  "Please select a valid date.",
		"notpast":  "Rental date cannot be in the past.",
	},
}

var customOrderMessages = validation.Messages{
	"orderDescription": {"min": "Order description is required."},
	"contactEmail":     {"email": "A valid email is required."},
	"name":             {"min": "Your name is required."},
	"offer":            {"posdecimal": "Offer must be a positive number."},
}

// RegisterMessages installs the form message tables on v.
func RegisterMessages(v *validation.Validator) {
	v.RegisterMessages(CheckoutForm{}, checkoutMessages)
	v.RegisterMessages(RentalForm{}, rentalMessages)
	v.RegisterMessages(CustomOrderForm{}, customOrderMessages)
}

// flowMessages are the user-facing outcomes of one submission flow.
type flowMessages struct {
	success       string
	configuration string
	delivery      string
}

var (
	checkoutFlow = flowMessages{
		success:       "Order placed successfully!",
		configuration: "Server configuration error. Could not process order.",
		delivery:      "Failed to place order. Please try again later.",
	}
	rentalFlow = flowMessages{
		success:       "Rental request submitted!",
		configuration: "Server configuration error. Could not process request.",
		delivery:      "Failed to submit request. Please try again.",
	}
	customOrderFlow = flowMessages{
		success:       "Custom order submitted!",
		configuration: "Server configuration error. Could not process request.",
		delivery:      "Failed to submit custom order. Please try again.",
	}
)
