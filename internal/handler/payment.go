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
	"github.com/altiq/altiq/internal/payment"
)

// PaymentStore is the repository surface the payment handlers depend on.
type PaymentStore interface {
	InsertPayment(ctx context.Context, p *model.Payment) (string, error)
	ListPayments(ctx context.Context, email string) ([]*model.Payment, error)
}

// PaymentHandler handles payment-intent creation and payment records.
type PaymentHandler struct {
	intents payment.IntentCreator
	store   PaymentStore
	logger  *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(intents payment.IntentCreator, store PaymentStore, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		intents: intents,
		store:   store,
		logger:  logger,
	}
}

// CreateIntent handles POST /create-payment-intent.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PRICE", "Price must be greater than zero")
		return
	}

	cents := payment.PriceToCents(req.Price)

	clientSecret, err := h.intents.CreateIntent(r.Context(), cents)
	if err != nil {
		h.logger.Error("payment intent creation failed", "error", err, "amount_cents", cents)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("payment_intent_created", "amount_cents", cents)

	writeJSON(w, http.StatusOK, dto.PaymentIntentResponse{ClientSecret: clientSecret})
}

// Record handles POST /payments.
// The record is stored as the client supplied it; the provider-side
// intent status is not re-verified here.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var p model.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	p.CreatedAt = time.Now()

	id, err := h.store.InsertPayment(r.Context(), &p)
	if err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("payment_recorded",
		"payment_id", id,
		"email", p.Email,
		"transaction_id", p.TransactionID,
	)

	writeJSON(w, http.StatusCreated, dto.SuccessResponse{Success: true, ID: id})
}

// ListByOwner handles GET /payments/{email}.
// The owner check has already run; the path email equals the session email.
func (h *PaymentHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	payments, err := h.store.ListPayments(r.Context(), email)
	if err != nil {
		handleRepoError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, payments)
}
