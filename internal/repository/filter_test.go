package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/altiq/altiq/internal/model"
)

func TestQueryFilter_ToBSON(t *testing.T) {
	if got := (QueryFilter{}).toBSON(); len(got) != 0 {
		t.Errorf("empty filter should produce empty document, got %v", got)
	}

	got := QueryFilter{OwnerEmail: "a@x.com"}.toBSON()
	if got["userInfo.email"] != "a@x.com" {
		t.Errorf("expected owner filter on userInfo.email, got %v", got)
	}
}

func TestRecommendationFilter_ToBSON(t *testing.T) {
	if got := (RecommendationFilter{}).toBSON(); len(got) != 0 {
		t.Errorf("empty filter should produce empty document, got %v", got)
	}

	got := RecommendationFilter{
		QueryID:          "q1",
		RecommenderEmail: "b@x.com",
		UserEmail:        "a@x.com",
	}.toBSON()

	if got["queryId"] != "q1" {
		t.Errorf("expected queryId filter, got %v", got)
	}
	if got["recommenderEmail"] != "b@x.com" {
		t.Errorf("expected recommenderEmail filter, got %v", got)
	}
	if got["userEmail"] != "a@x.com" {
		t.Errorf("expected userEmail filter, got %v", got)
	}
}

// Malformed identifiers are rejected before any store access, so a
// zero-value Repository is sufficient here.
func TestInvalidIDsRejectedLocally(t *testing.T) {
	r := &Repository{}
	ctx := context.Background()

	if _, err := r.GetQueryByID(ctx, "nope"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("GetQueryByID: expected ErrInvalidID, got %v", err)
	}
	if err := r.UpdateQueryByID(ctx, "nope", model.QueryUpdate{}); !errors.Is(err, ErrInvalidID) {
		t.Errorf("UpdateQueryByID: expected ErrInvalidID, got %v", err)
	}
	if err := r.IncrementRecommendationCount(ctx, "nope", 1); !errors.Is(err, ErrInvalidID) {
		t.Errorf("IncrementRecommendationCount: expected ErrInvalidID, got %v", err)
	}
	if err := r.DeleteQueryByID(ctx, "nope"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("DeleteQueryByID: expected ErrInvalidID, got %v", err)
	}
	if err := r.DeleteRecommendationByID(ctx, "nope"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("DeleteRecommendationByID: expected ErrInvalidID, got %v", err)
	}
}
