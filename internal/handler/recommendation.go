package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/altiq/altiq/internal/handler/dto"
	"github.com/altiq/altiq/internal/model"
	"github.com/altiq/altiq/internal/repository"
)

// RecommendationStore is the repository surface the recommendation
// handlers depend on.
type RecommendationStore interface {
	ListRecommendations(ctx context.Context, filter repository.RecommendationFilter) ([]*model.Recommendation, error)
	InsertRecommendation(ctx context.Context, rec *model.Recommendation) (string, error)
	DeleteRecommendationByID(ctx context.Context, id string) error
}

// RecommendationHandler handles HTTP requests for recommendation documents.
type RecommendationHandler struct {
	store  RecommendationStore
	logger *slog.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(store RecommendationStore, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		store:  store,
		logger: logger,
	}
}

// Create handles POST /recommendations.
// Note: bumping the query's recommendation count is a separate PATCH
// from the client; the two writes are not transactional.
func (h *RecommendationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec model.Recommendation
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	rec.CreatedAt = time.Now()

	id, err := h.store.InsertRecommendation(r.Context(), &rec)
	if err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("recommendation_created",
		"recommendation_id", id,
		"query_id", rec.QueryID,
		"recommender", rec.RecommenderEmail,
	)

	writeJSON(w, http.StatusCreated, dto.SuccessResponse{Success: true, ID: id})
}

// List handles GET /recommendations.
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.ListRecommendations(r.Context(), repository.RecommendationFilter{})
	if err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

// ListByQuery handles GET /recommendations/{id}, listing the
// recommendations made for one query.
func (h *RecommendationHandler) ListByQuery(w http.ResponseWriter, r *http.Request) {
	queryID := chi.URLParam(r, "id")
	if queryID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Query ID is required")
		return
	}

	recs, err := h.store.ListRecommendations(r.Context(), repository.RecommendationFilter{QueryID: queryID})
	if err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

// ListByRecommender handles GET /myrecommendations/{email}.
func (h *RecommendationHandler) ListByRecommender(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	recs, err := h.store.ListRecommendations(r.Context(), repository.RecommendationFilter{RecommenderEmail: email})
	if err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

// ListForUser handles GET /recommendationme/{email}, listing the
// recommendations other users made on this user's queries.
func (h *RecommendationHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	recs, err := h.store.ListRecommendations(r.Context(), repository.RecommendationFilter{UserEmail: email})
	if err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

// Delete handles DELETE /recommendations/{id}.
func (h *RecommendationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Recommendation ID is required")
		return
	}

	if err := h.store.DeleteRecommendationByID(r.Context(), id); err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("recommendation_deleted", "recommendation_id", id)

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}
