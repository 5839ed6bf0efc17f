package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecofinds/ecofinds-api/internal/domain"
)

var (
	ErrOwnProduct      = errors.New("you cannot add your own product to cart")
	ErrItemNotInCart   = errors.New("product not in cart")
	ErrProductInactive = errors.New("product not found or not available")
)

// CartService manages the per-user shopping cart
type CartService struct {
	cartRepo    domain.CartRepository
	productRepo domain.ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(cartRepo domain.CartRepository, productRepo domain.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Add puts a product in the user's cart, bumping quantity if it is
// already there. Sellers cannot add their own listings.
func (s *CartService) Add(ctx context.Context, userID string, input domain.CartAdd) (*domain.CartView, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsAvailable {
		return nil, ErrProductInactive
	}
	if product.UserID == userID {
		return nil, ErrOwnProduct
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == input.ProductID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: input.ProductID, Quantity: quantity})
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	return s.view(ctx, cart)
}

// Get returns the user's populated cart, dropping items whose products
// have disappeared or been sold
func (s *CartService) Get(ctx context.Context, userID string) (*domain.CartView, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// UpdateQuantity sets the quantity of one cart entry
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.CartView, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotInCart
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// Remove deletes one product from the cart
func (s *CartService) Remove(ctx context.Context, userID, productID string) (*domain.CartView, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	found := false
	for _, item := range cart.Items {
		if item.ProductID == productID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return nil, ErrItemNotInCart
	}
	cart.Items = items

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.cartRepo.Clear(ctx, userID)
}

// view joins cart items with their products and computes totals
func (s *CartService) view(ctx context.Context, cart *domain.Cart) (*domain.CartView, error) {
	view := &domain.CartView{Items: []domain.CartItemDetail{}}

	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load cart product: %w", err)
		}
		if product == nil || !product.IsAvailable {
			continue
		}
		view.Items = append(view.Items, domain.CartItemDetail{
			Product:  *product,
			Quantity: item.Quantity,
		})
		view.TotalAmount += product.Price * float64(item.Quantity)
		view.TotalItems += item.Quantity
	}

	return view, nil
}
