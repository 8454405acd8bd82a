// Package model defines the document entities stored by the application.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QueryOwner is the owner block embedded in a query document.
// RecommendationCount tracks how many recommendations the query has received;
// it is mutated via atomic increments, never by full-document writes.
type QueryOwner struct {
	Name                string `bson:"name,omitempty" json:"name,omitempty"`
	Email               string `bson:"email" json:"email"`
	Photo               string `bson:"photo,omitempty" json:"photo,omitempty"`
	RecommendationCount int64  `bson:"recommendationCount" json:"recommendationCount"`
}

// Query represents a product-alternative request.
type Query struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductName string             `bson:"productName" json:"productName"`
	Brand       string             `bson:"brand" json:"brand"`
	Image       string             `bson:"image" json:"image"`
	Title       string             `bson:"title" json:"title"`
	Reason      string             `bson:"reason" json:"reason"`
	UserInfo    QueryOwner         `bson:"userInfo" json:"userInfo"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// QueryUpdate carries the settable fields of a query.
// These five fields are the only ones a full update may touch.
type QueryUpdate struct {
	ProductName string `json:"productName"`
	Brand       string `json:"brand"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Reason      string `json:"reason"`
}
