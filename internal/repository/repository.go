// Package repository provides database access layer.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Common errors for repository operations.
var (
	// ErrNotFound is returned when no document matches the given identifier.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when an identifier is not a valid ObjectID hex.
	ErrInvalidID = errors.New("invalid document id")
)

// Collection names.
const (
	queriesCollection         = "queries"
	recommendationsCollection = "recommendations"
	paymentsCollection        = "payments"
)

// Repository provides document store access methods.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New creates a Repository connected to the given MongoDB deployment.
// The connection is verified with a ping before returning; callers
// should treat an error as fatal rather than serving traffic against
// an unconnected store.
func New(ctx context.Context, uri, dbName string) (*Repository, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetMinPoolSize(2).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Repository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Database returns the underlying database handle.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) Database() *mongo.Database {
	return r.db
}
