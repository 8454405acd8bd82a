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

// QueryStore is the repository surface the query handlers depend on.
type QueryStore interface {
	ListQueries(ctx context.Context, filter repository.QueryFilter) ([]*model.Query, error)
	GetQueryByID(ctx context.Context, id string) (*model.Query, error)
	InsertQuery(ctx context.Context, query *model.Query) (string, error)
	UpdateQueryByID(ctx context.Context, id string, update model.QueryUpdate) error
	IncrementRecommendationCount(ctx context.Context, id string, delta int64) error
	DeleteQueryByID(ctx context.Context, id string) error
}

// QueryHandler handles HTTP requests for query documents.
type QueryHandler struct {
	store  QueryStore
	logger *slog.Logger
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store QueryStore, logger *slog.Logger) *QueryHandler {
	return &QueryHandler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /queries.
func (h *QueryHandler) List(w http.ResponseWriter, r *http.Request) {
	queries, err := h.store.ListQueries(r.Context(), repository.QueryFilter{})
	if err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, queries)
}

// ListByOwner handles GET /myqueries/{email}.
// The owner check has already run; the path email equals the session email.
func (h *QueryHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	queries, err := h.store.ListQueries(r.Context(), repository.QueryFilter{OwnerEmail: email})
	if err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, queries)
}

// Get handles GET /queries/{id}.
func (h *QueryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Query ID is required")
		return
	}

	query, err := h.store.GetQueryByID(r.Context(), id)
	if err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, query)
}

// Create handles POST /addqueries.
func (h *QueryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var query model.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	query.CreatedAt = time.Now()
	query.UserInfo.RecommendationCount = 0

	id, err := h.store.InsertQuery(r.Context(), &query)
	if err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("query_created",
		"query_id", id,
		"owner", query.UserInfo.Email,
	)

	writeJSON(w, http.StatusCreated, dto.SuccessResponse{Success: true, ID: id})
}

// Update handles PUT /queries/{id}.
// Only the five settable fields are written; anything else on the
// stored document survives untouched.
func (h *QueryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Query ID is required")
		return
	}

	var update model.QueryUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.store.UpdateQueryByID(r.Context(), id, update); err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("query_updated", "query_id", id)

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, ID: id})
}

// Increment handles PATCH /myrecqueries/{id}.
func (h *QueryHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.adjustRecommendationCount(w, r, 1)
}

// Decrement handles PATCH /queiresdec/{id}.
func (h *QueryHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.adjustRecommendationCount(w, r, -1)
}

func (h *QueryHandler) adjustRecommendationCount(w http.ResponseWriter, r *http.Request, delta int64) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Query ID is required")
		return
	}

	if err := h.store.IncrementRecommendationCount(r.Context(), id, delta); err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true, ID: id})
}

// Delete handles DELETE /queries/{id}.
func (h *QueryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Query ID is required")
		return
	}

	if err := h.store.DeleteQueryByID(r.Context(), id); err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("query_deleted", "query_id", id)

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}
