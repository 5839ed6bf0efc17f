package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepository stores carts in the carts collection, one per user
type CartRepository struct {
	coll *mongo.Collection
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *DB) *CartRepository {
	return &CartRepository{coll: db.db.Collection(cartsCollection)}
}

// GetByUser returns the user's cart, creating an empty one if absent
func (r *CartRepository) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		now := time.Now()
		cart = domain.Cart{
			ID:        primitive.NewObjectID().Hex(),
			UserID:    userID,
			Items:     []domain.CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := r.coll.InsertOne(ctx, &cart); err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	return &cart, nil
}

// Save upserts the cart items
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"items":      cart.Items,
			"updated_at": cart.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        cart.ID,
			"user_id":    cart.UserID,
			"created_at": cart.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"user_id": cart.UserID}, update, opts); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Clear empties the user's cart
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	update := bson.M{"$set": bson.M{"items": []domain.CartItem{}, "updated_at": time.Now()}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
