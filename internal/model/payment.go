package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is a record of a completed payment, written after the client
// confirms a payment intent. The record is stored as supplied; the
// provider-side intent status is not re-verified before insertion.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"email" json:"email"`
	Price         float64            `bson:"price" json:"price"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
