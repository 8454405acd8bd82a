package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recommendation links a query to a recommended alternative product.
// RecommenderEmail is the identity that made the recommendation;
// UserEmail is the owner of the query it targets. Both are weak
// relations, looked up by value rather than enforced by the store.
type Recommendation struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QueryID          string             `bson:"queryId" json:"queryId"`
	QueryTitle       string             `bson:"queryTitle,omitempty" json:"queryTitle,omitempty"`
	ProductName      string             `bson:"productName,omitempty" json:"productName,omitempty"`
	Title            string             `bson:"title,omitempty" json:"title,omitempty"`
	Image            string             `bson:"image,omitempty" json:"image,omitempty"`
	Reason           string             `bson:"reason,omitempty" json:"reason,omitempty"`
	RecommenderEmail string             `bson:"recommenderEmail" json:"recommenderEmail"`
	RecommenderName  string             `bson:"recommenderName,omitempty" json:"recommenderName,omitempty"`
	UserEmail        string             `bson:"userEmail" json:"userEmail"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
