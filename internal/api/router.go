package api

import (
	"net/http"

	"github.com/example/curated-storefront/internal/api/middleware"
	"github.com/example/curated-storefront/internal/auth"
	"go.uber.org/zap"
)

func NewRouter(handlers *Handlers, jwtService *auth.JWTService, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	session := middleware.SessionMiddleware(jwtService)
	admin := func(next http.HandlerFunc) http.Handler {
		return session(middleware.RequireRole(auth.RoleAdmin)(next))
	}

	mux.HandleFunc("GET /healthz", handlers.Health)

	// Session
	mux.HandleFunc("POST /session", handlers.CreateSession)
	mux.Handle("DELETE /session", session(http.HandlerFunc(handlers.EndSession)))

	// Catalog
	mux.HandleFunc("GET /products", handlers.ListProducts)
	mux.HandleFunc("GET /products/{id}", handlers.GetProduct)
	mux.HandleFunc("GET /rentals", handlers.ListRentals)
	mux.HandleFunc("GET /rentals/{id}", handlers.GetRental)
	mux.HandleFunc("GET /categories", handlers.ListCategories)

	// Cart
	mux.Handle("GET /cart", session(http.HandlerFunc(handlers.GetCart)))
	mux.Handle("DELETE /cart", session(http.HandlerFunc(handlers.ClearCart)))
	mux.Handle("POST /cart/items", session(http.HandlerFunc(handlers.AddToCart)))
	mux.Handle("PUT /cart/items/{id}", session(http.HandlerFunc(handlers.UpdateCartItem)))
	mux.Handle("DELETE /cart/items/{id}", session(http.HandlerFunc(handlers.RemoveFromCart)))

	// Submissions
	mux.Handle("POST /checkout", session(http.HandlerFunc(handlers.Checkout)))
	mux.HandleFunc("POST /rentals/{id}/requests", handlers.RequestRental)
	mux.HandleFunc("POST /custom-orders", handlers.PlaceCustomOrder)

	// Admin
	mux.Handle("POST /admin/login", session(http.HandlerFunc(handlers.AdminLogin)))
	mux.Handle("POST /admin/descriptions", admin(handlers.GenerateDescription))

	return middleware.Recoverer(logger)(middleware.RequestLogger(logger)(mux))
}
