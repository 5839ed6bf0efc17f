package domain

import (
	"context"
	"time"
)

// Purchase status values
const (
	PurchaseCompleted  = "completed"
	PurchaseProcessing = "processing"
	PurchaseCancelled  = "cancelled"
)

// PurchaseItem is a snapshot of a product at checkout time
type PurchaseItem struct {
	ProductID   string  `json:"product_id" bson:"product_id"`
	Title       string  `json:"title" bson:"title"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	Category    string  `json:"category" bson:"category"`
	Image       string  `json:"image" bson:"image"`
	SellerName  string  `json:"seller_name" bson:"seller_name"`
	Quantity    int     `json:"quantity" bson:"quantity"`
}

// Purchase represents a completed checkout
type Purchase struct {
	ID              string         `json:"id" bson:"_id,omitempty"`
	UserID          string         `json:"user_id" bson:"user_id"`
	Items           []PurchaseItem `json:"items" bson:"items"`
	TotalAmount     float64        `json:"total_amount" bson:"total_amount"`
	EcoPointsGained int            `json:"eco_points_gained" bson:"eco_points_gained"`
	Status          string         `json:"status" bson:"status"`
	CreatedAt       time.Time      `json:"created_at" bson:"created_at"`
}

// TotalItems sums item quantities
func (p *Purchase) TotalItems() int {
	total := 0
	for _, item := range p.Items {
		total += item.Quantity
	}
	return total
}

// PurchaseStats aggregates a user's purchase history
type PurchaseStats struct {
	TotalSpent     float64 `json:"total_spent" bson:"total_spent"`
	TotalEcoPoints int     `json:"total_eco_points" bson:"total_eco_points"`
	TotalOrders    int     `json:"total_orders" bson:"total_orders"`
	TotalItems     int     `json:"total_items" bson:"total_items"`
}

// PurchaseRepository defines purchase history storage operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) error
	GetByID(ctx context.Context, id, userID string) (*Purchase, error)
	ListByUser(ctx context.Context, userID string, page, limit int) ([]Purchase, int64, error)
	StatsByUser(ctx context.Context, userID string) (*PurchaseStats, error)
}
