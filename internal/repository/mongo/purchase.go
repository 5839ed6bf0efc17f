package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PurchaseRepository stores completed checkouts
type PurchaseRepository struct {
	coll *mongo.Collection
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *DB) *PurchaseRepository {
	return &PurchaseRepository{coll: db.db.Collection(purchasesCollection)}
}

// Create inserts a purchase record
func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.coll.InsertOne(ctx, purchase); err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}
	return nil
}

// GetByID returns one purchase scoped to its owner, nil if not found
func (r *PurchaseRepository) GetByID(ctx context.Context, id, userID string) (*domain.Purchase, error) {
	var purchase domain.Purchase
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&purchase)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase: %w", err)
	}
	return &purchase, nil
}

// ListByUser returns the user's purchase history, newest first
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID string, page, limit int) ([]domain.Purchase, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer cursor.Close(ctx)

	var purchases []domain.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, 0, fmt.Errorf("failed to decode purchases: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	return purchases, total, nil
}

// StatsByUser aggregates totals over the user's purchase history
func (r *PurchaseRepository) StatsByUser(ctx context.Context, userID string) (*domain.PurchaseStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":              nil,
			"total_spent":      bson.M{"$sum": "$total_amount"},
			"total_eco_points": bson.M{"$sum": "$eco_points_gained"},
			"total_orders":     bson.M{"$sum": 1},
			"total_items":      bson.M{"$sum": bson.M{"$sum": "$items.quantity"}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate purchases: %w", err)
	}
	defer cursor.Close(ctx)

	var results []domain.PurchaseStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	if len(results) == 0 {
		return &domain.PurchaseStats{}, nil
	}
	return &results[0], nil
}
