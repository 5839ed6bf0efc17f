package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecofinds/ecofinds-api/internal/api/middleware"
	"github.com/ecofinds/ecofinds-api/internal/api/response"
	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Add puts a product into the caller's cart
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.CartAdd
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	cart, err := h.cartService.Add(r.Context(), userID, input)
	if err != nil {
		writeCartError(w, err)
		return
	}

	response.OK(w, map[string]any{"cart": cart})
}

// Get returns the caller's populated cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	cart, err := h.cartService.Get(r.Context(), userID)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{"cart": cart})
}

// UpdateItem sets the quantity of one cart entry
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.CartItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	cart, err := h.cartService.UpdateQuantity(r.Context(), userID, chi.URLParam(r, "productID"), input.Quantity)
	if err != nil {
		writeCartError(w, err)
		return
	}

	response.OK(w, map[string]any{"cart": cart})
}

// RemoveItem deletes one product from the cart
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	cart, err := h.cartService.Remove(r.Context(), userID, chi.URLParam(r, "productID"))
	if err != nil {
		writeCartError(w, err)
		return
	}

	response.OK(w, map[string]any{"cart": cart})
}

// Clear empties the caller's cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.cartService.Clear(r.Context(), userID); err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Cart cleared successfully", nil)
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProductInactive):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrOwnProduct):
		response.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrItemNotInCart):
		response.NotFound(w, err.Error())
	default:
		response.InternalError(w, err.Error())
	}
}
