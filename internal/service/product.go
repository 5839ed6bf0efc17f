package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotOwner        = errors.New("not authorized to modify this product")
)

// ProductService handles catalog listings
type ProductService struct {
	productRepo domain.ProductRepository
	userRepo    domain.UserRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo domain.ProductRepository, userRepo domain.UserRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// Create publishes a new listing for the given seller
func (s *ProductService) Create(ctx context.Context, userID string, input domain.ProductCreate) (*domain.Product, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	product := &domain.Product{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Image:       input.Image,
		SellerName:  user.Username,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// List returns available listings matching the filter with pagination info
func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, *domain.Pagination, error) {
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return products, paginate(filter.Page, filter.Limit, total), nil
}

// ListByUser returns a seller's own listings
func (s *ProductService) ListByUser(ctx context.Context, userID string, page, limit int) ([]domain.Product, *domain.Pagination, error) {
	products, total, err := s.productRepo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return products, paginate(page, limit, total), nil
}

// Get returns one listing
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Update applies changes to a listing owned by userID
func (s *ProductService) Update(ctx context.Context, userID, productID string, input domain.ProductCreate) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.UserID != userID {
		return nil, ErrNotOwner
	}

	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.Image = input.Image

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete removes a listing owned by userID
func (s *ProductService) Delete(ctx context.Context, userID, productID string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if product.UserID != userID {
		return ErrNotOwner
	}

	return s.productRepo.Delete(ctx, productID)
}

// SearchSummaries implements the assistant's catalog collaborator contract
func (s *ProductService) SearchSummaries(ctx context.Context, params domain.IntentParams, limit int) ([]domain.ProductSummary, error) {
	filter := domain.ProductFilter{
		Search:   params.Search,
		Category: params.Category,
		Page:     1,
		Limit:    limit,
	}
	if params.MinPrice != nil {
		v := float64(*params.MinPrice)
		filter.MinPrice = &v
	}
	if params.MaxPrice != nil {
		v := float64(*params.MaxPrice)
		filter.MaxPrice = &v
	}

	products, _, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ProductSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, domain.ProductSummary{
			ID:       p.ID,
			Title:    p.Title,
			Price:    p.Price,
			Category: p.Category,
			Images:   []string{p.Image},
			Seller:   p.SellerName,
		})
	}
	return summaries, nil
}

func paginate(page, limit int, total int64) *domain.Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &domain.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
