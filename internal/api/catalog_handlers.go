package api

import (
	"net/http"
)

// Catalog handlers are public and read-only.

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respondJSON(w, http.StatusOK, h.queryHandler.ListProducts(q.Get("query"), q.Get("category")))
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.queryHandler.GetProduct(r.PathValue("id"))
	if !ok {
		respondJSONError(w, "Product not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) ListRentals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respondJSON(w, http.StatusOK, h.queryHandler.ListRentals(q.Get("query"), q.Get("category")))
}

func (h *Handlers) GetRental(w http.ResponseWriter, r *http.Request) {
	item, ok := h.queryHandler.GetRental(r.PathValue("id"))
	if !ok {
		respondJSONError(w, "Rental item not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.Categories())
}
