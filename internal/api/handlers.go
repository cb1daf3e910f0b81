package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/curated-storefront/internal/api/middleware"
	"github.com/example/curated-storefront/internal/auth"
	"github.com/example/curated-storefront/internal/command"
	"github.com/example/curated-storefront/internal/generation"
	"github.com/example/curated-storefront/internal/query"
	"github.com/example/curated-storefront/internal/submission"
	"github.com/example/curated-storefront/internal/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	msgCheckoutInProgress = "A checkout is already in progress."
	msgQuantityWhole      = "Quantity must be a whole number."
)

type Handlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
	descriptions *generation.Service
	jwtService   *auth.JWTService
	admin        *auth.AdminAuthenticator
	logger       *zap.Logger
}

func NewHandlers(
	cmdHandler *command.Handler,
	queryHandler *query.Handler,
	descriptions *generation.Service,
	jwtService *auth.JWTService,
	admin *auth.AdminAuthenticator,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
		descriptions: descriptions,
		jwtService:   jwtService,
		admin:        admin,
		logger:       logger.Named("api"),
	}
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.queryHandler.GetCart(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		h.internalError(w, "failed to load cart", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var cmd command.AddToCart
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.SessionID = middleware.GetSessionID(r.Context())

	c, err := h.cmdHandler.AddToCart(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, command.ErrProductNotFound) {
			respondJSONError(w, "Product not found", http.StatusNotFound)
			return
		}
		h.internalError(w, "failed to add to cart", err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewCartView(c))
}

// UpdateCartItem accepts only whole-number quantities; anything else is a
// field error and the cart is not touched.
func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	quantity, ok := parseQuantity(req.Quantity)
	if !ok {
		fe := validation.FieldErrors{}
		fe.Add("quantity", msgQuantityWhole)
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":       msgQuantityWhole,
			"fieldErrors": fe,
		})
		return
	}

	c, err := h.cmdHandler.UpdateCartItem(r.Context(), command.UpdateCartItem{
		SessionID: middleware.GetSessionID(r.Context()),
		ProductID: r.PathValue("id"),
		Quantity:  quantity,
	})
	if err != nil {
		h.internalError(w, "failed to update cart", err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewCartView(c))
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cmdHandler.RemoveFromCart(r.Context(), command.RemoveFromCart{
		SessionID: middleware.GetSessionID(r.Context()),
		ProductID: r.PathValue("id"),
	})
	if err != nil {
		h.internalError(w, "failed to remove from cart", err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewCartView(c))
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cmdHandler.ClearCart(r.Context(), command.ClearCart{
		SessionID: middleware.GetSessionID(r.Context()),
	})
	if err != nil {
		h.internalError(w, "failed to clear cart", err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewCartView(c))
}

// Submission Handlers

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	cmd := command.Checkout{SessionID: middleware.GetSessionID(r.Context())}
	if err := json.NewDecoder(r.Body).Decode(&cmd.Form); err != nil {
		respondResult(w, submission.Malformed())
		return
	}

	result, err := h.cmdHandler.Checkout(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, command.ErrCheckoutInProgress) {
			respondJSON(w, http.StatusConflict, submission.Result{
				Message: msgCheckoutInProgress,
				State:   submission.StateSubmitting,
			})
			return
		}
		h.internalError(w, "checkout failed", err)
		return
	}
	respondResult(w, result)
}

func (h *Handlers) RequestRental(w http.ResponseWriter, r *http.Request) {
	cmd := command.RequestRental{RentalID: r.PathValue("id")}
	if err := json.NewDecoder(r.Body).Decode(&cmd.Form); err != nil {
		respondResult(w, submission.Malformed())
		return
	}

	result, err := h.cmdHandler.RequestRental(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, command.ErrRentalNotFound) {
			respondJSONError(w, "Rental item not found", http.StatusNotFound)
			return
		}
		h.internalError(w, "rental request failed", err)
		return
	}
	respondResult(w, result)
}

func (h *Handlers) PlaceCustomOrder(w http.ResponseWriter, r *http.Request) {
	var cmd command.PlaceCustomOrder
	if err := json.NewDecoder(r.Body).Decode(&cmd.Form); err != nil {
		respondResult(w, submission.Malformed())
		return
	}
	respondResult(w, h.cmdHandler.PlaceCustomOrder(r.Context(), cmd))
}

// Admin Handlers

func (h *Handlers) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	var in generation.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.descriptions.GenerateDescription(r.Context(), in)
	switch {
	case result.Success:
		respondJSON(w, http.StatusOK, result)
	case len(result.FieldErrors) > 0:
		respondJSON(w, http.StatusBadRequest, result)
	default:
		respondJSON(w, http.StatusInternalServerError, result)
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper functions

func (h *Handlers) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	respondJSONError(w, "Internal server error", http.StatusInternalServerError)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondResult maps a submission outcome to its status code.
func respondResult(w http.ResponseWriter, result submission.Result) {
	status := http.StatusOK
	switch result.Failure {
	case submission.FailureValidation:
		status = http.StatusBadRequest
	case submission.FailureConfiguration:
		status = http.StatusInternalServerError
	case submission.FailureDelivery:
		status = http.StatusBadGateway
	}
	respondJSON(w, status, result)
}

// parseQuantity accepts a JSON number or numeric string with no fractional part.
func parseQuantity(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return 0, false
		}
		text = num.String()
	}
	d, err := decimal.NewFromString(text)
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	// values beyond int32 are not meaningful quantities
	if d.Abs().GreaterThan(decimal.NewFromInt(1 << 31)) {
		return 0, false
	}
	return int(d.IntPart()), true
}
