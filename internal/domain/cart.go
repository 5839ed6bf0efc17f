package domain

import (
	"context"
	"time"
)

// CartItem is one product entry in a cart
type CartItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Cart holds a user's pending items, one cart per user
type Cart struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"user_id" bson:"user_id"`
	Items     []CartItem `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// CartAdd represents an add-to-cart request
type CartAdd struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// CartItemUpdate sets the quantity for one cart entry
type CartItemUpdate struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartItemDetail is a cart entry joined with its product
type CartItemDetail struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartView is the populated cart returned to clients
type CartView struct {
	Items       []CartItemDetail `json:"items"`
	TotalAmount float64          `json:"total_amount"`
	TotalItems  int              `json:"total_items"`
}

// CartRepository defines cart storage operations
type CartRepository interface {
	GetByUser(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Clear(ctx context.Context, userID string) error
}
