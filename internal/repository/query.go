package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/altiq/altiq/internal/model"
)

// recommendationCountField is the document path incremented when a
// recommendation is created or deleted for a query.
const recommendationCountField = "userInfo.recommendationCount"

// QueryFilter narrows query listings.
type QueryFilter struct {
	// OwnerEmail, when set, restricts results to queries owned by that email.
	OwnerEmail string
}

func (f QueryFilter) toBSON() bson.M {
	filter := bson.M{}
	if f.OwnerEmail != "" {
		filter["userInfo.email"] = f.OwnerEmail
	}
	return filter
}

// ListQueries returns queries matching the filter, newest first.
func (r *Repository) ListQueries(ctx context.Context, filter QueryFilter) ([]*model.Query, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(queriesCollection).Find(ctx, filter.toBSON(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	defer cursor.Close(ctx)

	queries := []*model.Query{}
	if err := cursor.All(ctx, &queries); err != nil {
		return nil, fmt.Errorf("failed to decode queries: %w", err)
	}

	return queries, nil
}

// GetQueryByID retrieves a single query by its identifier.
func (r *Repository) GetQueryByID(ctx context.Context, id string) (*model.Query, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var query model.Query
	err = r.db.Collection(queriesCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&query)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get query by id: %w", err)
	}

	return &query, nil
}

// InsertQuery inserts a new query and returns its generated identifier.
func (r *Repository) InsertQuery(ctx context.Context, query *model.Query) (string, error) {
	result, err := r.db.Collection(queriesCollection).InsertOne(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to insert query: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	return oid.Hex(), nil
}

// UpdateQueryByID replaces the five settable fields of a query.
// All other fields on the stored document are left untouched.
func (r *Repository) UpdateQueryByID(ctx context.Context, id string, update model.QueryUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	set := bson.M{
		"productName": update.ProductName,
		"brand":       update.Brand,
		"image":       update.Image,
		"title":       update.Title,
		"reason":      update.Reason,
	}

	result, err := r.db.Collection(queriesCollection).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("failed to update query: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// IncrementRecommendationCount atomically adds delta to a query's
// recommendation count. Concurrent deltas against the same document
// never lose updates, though the count is not transactional with the
// recommendation lifecycle that drives it.
func (r *Repository) IncrementRecommendationCount(ctx context.Context, id string, delta int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.db.Collection(queriesCollection).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{recommendationCountField: delta}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment recommendation count: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteQueryByID removes a query.
func (r *Repository) DeleteQueryByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.db.Collection(queriesCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete query: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
