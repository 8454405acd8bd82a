// Package payment wraps the Stripe payment-intent API.
package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// IntentCreator creates a payment intent for an amount in minor units
// and returns the client-side confirmation secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64) (clientSecret string, err error)
}

// StripeClient creates payment intents against the Stripe API.
type StripeClient struct {
	api *client.API
}

// NewStripeClient creates a StripeClient with the given secret key.
func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

// CreateIntent creates a payment intent for amountCents in USD.
func (s *StripeClient) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	return intent.ClientSecret, nil
}

// PriceToCents converts a decimal price to an integer amount in minor
// units. The fractional remainder below one cent is truncated
// (19.99 -> 1999). The epsilon compensates for binary float error in
// price*100 so a price that is exactly a whole number of cents never
// truncates one cent short.
func PriceToCents(price float64) int64 {
	return int64(math.Trunc(price*100 + 1e-9))
}
