// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// IssueTokenRequest is the body of POST /jwt. Email identifies the
// authenticated user; the upstream identity provider has already
// vouched for it by the time this endpoint is called.
type IssueTokenRequest struct {
	Email string `json:"email"`
}

// SuccessResponse is the explicit response shape for mutations.
// It deliberately hides store-operation metadata such as matched or
// deleted counts.
type SuccessResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// CreatePaymentIntentRequest is the body of POST /create-payment-intent.
type CreatePaymentIntentRequest struct {
	Price float64 `json:"price"`
}

// PaymentIntentResponse carries the provider's client-side confirmation secret.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
