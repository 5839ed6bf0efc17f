package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ecofinds/ecofinds-api/internal/api/middleware"
	"github.com/ecofinds/ecofinds-api/internal/api/response"
	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create publishes a new listing
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.ProductCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	product, err := h.productService.Create(r.Context(), userID, input)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.Created(w, map[string]any{"product": product})
}

// List returns available listings with search, filters and pagination
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.ProductFilter{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		Page:      intQuery(q.Get("page"), 1),
		Limit:     intQuery(q.Get("limit"), 10),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	if v := q.Get("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := q.Get("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}

	products, pagination, err := h.productService.List(r.Context(), filter)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"products":   products,
		"pagination": pagination,
	})
}

// Get returns one listing
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.Get(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{"product": product})
}

// Update modifies a listing owned by the caller
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.ProductCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	product, err := h.productService.Update(r.Context(), userID, chi.URLParam(r, "productID"), input)
	if err != nil {
		writeProductError(w, err)
		return
	}

	response.OK(w, map[string]any{"product": product})
}

// Delete removes a listing owned by the caller
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.productService.Delete(r.Context(), userID, chi.URLParam(r, "productID")); err != nil {
		writeProductError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Product deleted successfully", nil)
}

// MyProducts returns the caller's own listings
func (h *ProductHandler) MyProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	q := r.URL.Query()
	products, pagination, err := h.productService.ListByUser(
		r.Context(), userID, intQuery(q.Get("page"), 1), intQuery(q.Get("limit"), 10))
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"products":   products,
		"pagination": pagination,
	})
}

func writeProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, err.Error())
	}
}

func intQuery(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
