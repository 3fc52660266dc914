// Package httpapi is the thin HTTP surface UI callers drive the cart engine
// through. Operation failures do not surface here: per the engine contract
// they go to the notification sink, and every response carries the current
// cart snapshot for the caller to reconcile against.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/webstore/cart-engine/internal/domain"
)

// CartEngine is the mutation surface the handler drives.
type CartEngine interface {
	AddProduct(ctx context.Context, productID int64)
	RemoveProduct(ctx context.Context, productID int64)
	UpdateProductAmount(ctx context.Context, productID int64, amount int)
	Cart() domain.Cart
}

// CartHandler owns the serialization the engine requires: net/http runs each
// request in its own goroutine, while the engine must see one operation at a
// time. The mutex is held across every engine call, reads included.
type CartHandler struct {
	mu     sync.Mutex
	engine CartEngine
	log    *logrus.Logger
}

func NewCartHandler(engine CartEngine, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		engine: engine,
		log:    log,
	}
}

func (h *CartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/cart", h.GetCart)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/{product_id}", h.UpdateAmount)
	r.Delete("/cart/items/{product_id}", h.RemoveItem)
	return r
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type UpdateAmountRequestDTO struct {
	Amount int `json:"amount"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	cart := h.engine.Cart()
	h.mu.Unlock()

	h.respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	h.mu.Lock()
	h.engine.AddProduct(r.Context(), req.ProductID)
	cart := h.engine.Cart()
	h.mu.Unlock()

	h.respondJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateAmountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.mu.Lock()
	h.engine.UpdateProductAmount(r.Context(), productID, req.Amount)
	cart := h.engine.Cart()
	h.mu.Unlock()

	h.respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productIDParam(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	h.engine.RemoveProduct(r.Context(), productID)
	cart := h.engine.Cart()
	h.mu.Unlock()

	h.respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}

func (h *CartHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.WithError(err).Error("failed to encode response")
	}
}

func (h *CartHandler) respondError(w http.ResponseWriter, status int, code, message string) {
	h.respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
