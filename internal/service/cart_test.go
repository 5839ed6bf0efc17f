package service

import (
	"context"
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func availableProduct(id, sellerID string, price float64) *domain.Product {
	return &domain.Product{
		ID:          id,
		UserID:      sellerID,
		Title:       "Refurbished Lamp",
		Price:       price,
		Category:    "Home & Garden",
		IsAvailable: true,
	}
}

func TestCartService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("adds new item", func(t *testing.T) {
		mockCartRepo := new(MockCartRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewCartService(mockCartRepo, mockProductRepo)

		product := availableProduct("p1", "seller-1", 250)
		mockProductRepo.On("GetByID", ctx, "p1").Return(product, nil)
		mockCartRepo.On("GetByUser", ctx, "buyer-1").Return(&domain.Cart{UserID: "buyer-1"}, nil)
		mockCartRepo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

		view, err := svc.Add(ctx, "buyer-1", domain.CartAdd{ProductID: "p1", Quantity: 2})

		assert.NoError(t, err)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, 2, view.TotalItems)
		assert.Equal(t, 500.0, view.TotalAmount)
	})

	t.Run("bumps quantity for existing item", func(t *testing.T) {
		mockCartRepo := new(MockCartRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewCartService(mockCartRepo, mockProductRepo)

		product := availableProduct("p1", "seller-1", 100)
		cart := &domain.Cart{
			UserID: "buyer-1",
			Items:  []domain.CartItem{{ProductID: "p1", Quantity: 1}},
		}
		mockProductRepo.On("GetByID", ctx, "p1").Return(product, nil)
		mockCartRepo.On("GetByUser", ctx, "buyer-1").Return(cart, nil)
		mockCartRepo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

		view, err := svc.Add(ctx, "buyer-1", domain.CartAdd{ProductID: "p1", Quantity: 1})

		assert.NoError(t, err)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, 2, view.Items[0].Quantity)
	})

	t.Run("rejects own product", func(t *testing.T) {
		mockCartRepo := new(MockCartRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewCartService(mockCartRepo, mockProductRepo)

		product := availableProduct("p1", "buyer-1", 100)
		mockProductRepo.On("GetByID", ctx, "p1").Return(product, nil)

		_, err := svc.Add(ctx, "buyer-1", domain.CartAdd{ProductID: "p1"})

		assert.ErrorIs(t, err, ErrOwnProduct)
		mockCartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unavailable product", func(t *testing.T) {
		mockCartRepo := new(MockCartRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewCartService(mockCartRepo, mockProductRepo)

		product := availableProduct("p1", "seller-1", 100)
		product.IsAvailable = false
		mockProductRepo.On("GetByID", ctx, "p1").Return(product, nil)

		_, err := svc.Add(ctx, "buyer-1", domain.CartAdd{ProductID: "p1"})

		assert.ErrorIs(t, err, ErrProductInactive)
	})

	t.Run("defaults quantity to one", func(t *testing.T) {
		mockCartRepo := new(MockCartRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewCartService(mockCartRepo, mockProductRepo)

		product := availableProduct("p1", "seller-1", 100)
		mockProductRepo.On("GetByID", ctx, "p1").Return(product, nil)
		mockCartRepo.On("GetByUser", ctx, "buyer-1").Return(&domain.Cart{UserID: "buyer-1"}, nil)
		mockCartRepo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

		view, err := svc.Add(ctx, "buyer-1", domain.CartAdd{ProductID: "p1", Quantity: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, view.TotalItems)
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("item not in cart", func(t *testing.T) {
		mockCartRepo := new(MockCartRepository)
		mockProductRepo := new(MockProductRepository)
		svc := NewCartService(mockCartRepo, mockProductRepo)

		mockCartRepo.On("GetByUser", ctx, "buyer-1").Return(&domain.Cart{UserID: "buyer-1"}, nil)

		_, err := svc.UpdateQuantity(ctx, "buyer-1", "missing", 3)

		assert.ErrorIs(t, err, ErrItemNotInCart)
	})
}

func TestCartService_Get_SkipsSoldProducts(t *testing.T) {
	ctx := context.Background()
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	svc := NewCartService(mockCartRepo, mockProductRepo)

	cart := &domain.Cart{
		UserID: "buyer-1",
		Items: []domain.CartItem{
			{ProductID: "live", Quantity: 1},
			{ProductID: "sold", Quantity: 1},
		},
	}
	sold := availableProduct("sold", "seller-1", 100)
	sold.IsAvailable = false

	mockCartRepo.On("GetByUser", ctx, "buyer-1").Return(cart, nil)
	mockProductRepo.On("GetByID", ctx, "live").Return(availableProduct("live", "seller-1", 300), nil)
	mockProductRepo.On("GetByID", ctx, "sold").Return(sold, nil)

	view, err := svc.Get(ctx, "buyer-1")

	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "live", view.Items[0].Product.ID)
	assert.Equal(t, 300.0, view.TotalAmount)
}
