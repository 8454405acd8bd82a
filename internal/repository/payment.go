package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/altiq/altiq/internal/model"
)

// InsertPayment inserts a payment record and returns its generated identifier.
func (r *Repository) InsertPayment(ctx context.Context, payment *model.Payment) (string, error) {
	result, err := r.db.Collection(paymentsCollection).InsertOne(ctx, payment)
	if err != nil {
		return "", fmt.Errorf("failed to insert payment: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	return oid.Hex(), nil
}

// ListPayments returns payment records, newest first. When email is
// non-empty, results are restricted to that payer.
func (r *Repository) ListPayments(ctx context.Context, email string) ([]*model.Payment, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(paymentsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []*model.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}

	return payments, nil
}
