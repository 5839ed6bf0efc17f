package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrItemsUnavailable = errors.New("some products in your cart are no longer available")
	ErrPurchaseNotFound = errors.New("purchase not found")
)

// Eco points reward rate: 1 point per 10 spent
const ecoPointsDivisor = 10

// PurchaseService handles checkout and purchase history
type PurchaseService struct {
	purchaseRepo domain.PurchaseRepository
	cartRepo     domain.CartRepository
	productRepo  domain.ProductRepository
	userRepo     domain.UserRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo domain.PurchaseRepository,
	cartRepo domain.CartRepository,
	productRepo domain.ProductRepository,
	userRepo domain.UserRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
	}
}

// Checkout converts the user's cart into a purchase. Every product is
// rechecked for availability right before committing; a single stale item
// fails the whole checkout.
func (s *PurchaseService) Checkout(ctx context.Context, userID string) (*domain.Purchase, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	var items []domain.PurchaseItem
	var totalAmount float64

	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product: %w", err)
		}
		if product == nil || !product.IsAvailable {
			return nil, ErrItemsUnavailable
		}

		items = append(items, domain.PurchaseItem{
			ProductID:   product.ID,
			Title:       product.Title,
			Description: product.Description,
			Price:       product.Price,
			Category:    product.Category,
			Image:       product.Image,
			SellerName:  product.SellerName,
			Quantity:    item.Quantity,
		})
		totalAmount += product.Price * float64(item.Quantity)
	}

	ecoPoints := int(totalAmount / ecoPointsDivisor)

	purchase := &domain.Purchase{
		UserID:          userID,
		Items:           items,
		TotalAmount:     totalAmount,
		EcoPointsGained: ecoPoints,
		Status:          domain.PurchaseCompleted,
		CreatedAt:       time.Now(),
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	// Second-hand listings are single units; a sale takes them off the market.
	for _, item := range items {
		if err := s.productRepo.SetAvailability(ctx, item.ProductID, false); err != nil {
			log.Error().Err(err).Str("product_id", item.ProductID).Msg("failed to mark product sold")
		}
	}

	if err := s.userRepo.AddEcoPoints(ctx, userID, ecoPoints); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to credit eco points")
	}

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart after checkout")
	}

	return purchase, nil
}

// List returns the user's purchase history plus aggregate stats
func (s *PurchaseService) List(ctx context.Context, userID string, page, limit int) ([]domain.Purchase, *domain.Pagination, *domain.PurchaseStats, error) {
	purchases, total, err := s.purchaseRepo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, nil, nil, err
	}

	stats, err := s.purchaseRepo.StatsByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	return purchases, paginate(page, limit, total), stats, nil
}

// Get returns one purchase scoped to its owner
func (s *PurchaseService) Get(ctx context.Context, userID, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID, userID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}
