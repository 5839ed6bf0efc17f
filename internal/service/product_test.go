package service

import (
	"context"
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockProductRepo := new(MockProductRepository)
		mockUserRepo := new(MockUserRepository)
		svc := NewProductService(mockProductRepo, mockUserRepo)

		seller := &domain.User{ID: "seller-1", Username: "greenseller"}
		mockUserRepo.On("GetByID", ctx, "seller-1").Return(seller, nil)
		mockProductRepo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

		product, err := svc.Create(ctx, "seller-1", domain.ProductCreate{
			Title:       "Vintage Bookshelf",
			Description: "Solid wood, gently used, perfect condition",
			Price:       1200,
			Category:    "Home & Garden",
			Image:       "https://example.com/shelf.jpg",
		})

		assert.NoError(t, err)
		assert.Equal(t, "greenseller", product.SellerName)
		assert.True(t, product.IsAvailable)
		assert.False(t, product.CreatedAt.IsZero())
	})

	t.Run("seller missing", func(t *testing.T) {
		mockProductRepo := new(MockProductRepository)
		mockUserRepo := new(MockUserRepository)
		svc := NewProductService(mockProductRepo, mockUserRepo)

		mockUserRepo.On("GetByID", ctx, "ghost").Return(nil, nil)

		_, err := svc.Create(ctx, "ghost", domain.ProductCreate{})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("only owner can update", func(t *testing.T) {
		mockProductRepo := new(MockProductRepository)
		svc := NewProductService(mockProductRepo, new(MockUserRepository))

		existing := &domain.Product{ID: "p1", UserID: "seller-1", Title: "Old Title"}
		mockProductRepo.On("GetByID", ctx, "p1").Return(existing, nil)

		_, err := svc.Update(ctx, "intruder", "p1", domain.ProductCreate{Title: "Hacked"})

		assert.ErrorIs(t, err, ErrNotOwner)
		mockProductRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mockProductRepo := new(MockProductRepository)
		svc := NewProductService(mockProductRepo, new(MockUserRepository))

		mockProductRepo.On("GetByID", ctx, "missing").Return(nil, nil)

		_, err := svc.Update(ctx, "seller-1", "missing", domain.ProductCreate{})

		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	svc := NewProductService(mockProductRepo, new(MockUserRepository))

	existing := &domain.Product{ID: "p1", UserID: "seller-1"}
	mockProductRepo.On("GetByID", ctx, "p1").Return(existing, nil)

	err := svc.Delete(ctx, "intruder", "p1")

	assert.ErrorIs(t, err, ErrNotOwner)
	mockProductRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductService_SearchSummaries(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	svc := NewProductService(mockProductRepo, new(MockUserRepository))

	maxPrice := 5000
	products := []domain.Product{
		{ID: "p1", Title: "Used Monitor", Price: 3000, Category: "Electronics", Image: "img1", SellerName: "alice"},
	}

	mockProductRepo.On("List", ctx, mock.MatchedBy(func(f domain.ProductFilter) bool {
		return f.Category == "Electronics" && f.MaxPrice != nil && *f.MaxPrice == 5000 && f.Limit == 3
	})).Return(products, int64(1), nil)

	summaries, err := svc.SearchSummaries(ctx, domain.IntentParams{
		Category: "Electronics",
		MaxPrice: &maxPrice,
	}, 3)

	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, "Used Monitor", summaries[0].Title)
	assert.Equal(t, []string{"img1"}, summaries[0].Images)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"first of many", 1, 10, 35, 4, true, false},
		{"middle page", 2, 10, 35, 4, true, true},
		{"last page", 4, 10, 35, 4, false, true},
		{"empty", 1, 10, 0, 0, false, false},
		{"defaults applied", 0, 0, 5, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginate(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantNext, p.HasNextPage)
			assert.Equal(t, tt.wantPrev, p.HasPrevPage)
		})
	}
}
