package handler

import (
	"errors"
	"net/http"

	"github.com/ecofinds/ecofinds-api/internal/api/middleware"
	"github.com/ecofinds/ecofinds-api/internal/api/response"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// PurchaseHandler handles checkout and purchase history endpoints
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Checkout converts the caller's cart into a purchase
func (h *PurchaseHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	purchase, err := h.purchaseService.Checkout(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) || errors.Is(err, service.ErrItemsUnavailable) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.Success(w, http.StatusCreated, "Purchase completed successfully", map[string]any{
		"purchase":    purchase,
		"total_items": purchase.TotalItems(),
	})
}

// List returns the caller's purchase history plus aggregate stats
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	q := r.URL.Query()
	purchases, pagination, stats, err := h.purchaseService.List(
		r.Context(), userID, intQuery(q.Get("page"), 1), intQuery(q.Get("limit"), 10))
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"purchases":  purchases,
		"pagination": pagination,
		"stats":      stats,
	})
}

// Get returns one purchase owned by the caller
func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	purchase, err := h.purchaseService.Get(r.Context(), userID, chi.URLParam(r, "purchaseID"))
	if err != nil {
		if errors.Is(err, service.ErrPurchaseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"purchase":    purchase,
		"total_items": purchase.TotalItems(),
	})
}
