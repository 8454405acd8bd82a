package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/altiq/altiq/internal/model"
)

// RecommendationFilter narrows recommendation listings.
// Fields are combined with AND; zero values are ignored.
type RecommendationFilter struct {
	// QueryID restricts results to recommendations for one query.
	QueryID string
	// RecommenderEmail restricts results to recommendations made by that email.
	RecommenderEmail string
	// UserEmail restricts results to recommendations targeting that email.
	UserEmail string
}

func (f RecommendationFilter) toBSON() bson.M {
	filter := bson.M{}
	if f.QueryID != "" {
		filter["queryId"] = f.QueryID
	}
	if f.RecommenderEmail != "" {
		filter["recommenderEmail"] = f.RecommenderEmail
	}
	if f.UserEmail != "" {
		filter["userEmail"] = f.UserEmail
	}
	return filter
}

// ListRecommendations returns recommendations matching the filter, newest first.
func (r *Repository) ListRecommendations(ctx context.Context, filter RecommendationFilter) ([]*model.Recommendation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(recommendationsCollection).Find(ctx, filter.toBSON(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer cursor.Close(ctx)

	recommendations := []*model.Recommendation{}
	if err := cursor.All(ctx, &recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}

	return recommendations, nil
}

// InsertRecommendation inserts a new recommendation and returns its
// generated identifier.
func (r *Repository) InsertRecommendation(ctx context.Context, rec *model.Recommendation) (string, error) {
	result, err := r.db.Collection(recommendationsCollection).InsertOne(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("failed to insert recommendation: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	return oid.Hex(), nil
}

// DeleteRecommendationByID removes a recommendation.
func (r *Repository) DeleteRecommendationByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.db.Collection(recommendationsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete recommendation: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
