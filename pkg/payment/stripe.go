package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway creates card-only PaymentIntents.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway builds a gateway with its own API client instead of the package-level key.
func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, nil)}
}

// CreateIntent requests a PaymentIntent and returns its client secret.
func (g *StripeGateway) CreateIntent(ctx context.Context, intent Intent) (*IntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(intent.AmountMinor),
		Currency:           stripe.String(intent.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	if intent.Email != "" {
		params.ReceiptEmail = stripe.String(intent.Email)
	}
	if intent.Reference != "" {
		params.AddMetadata("reference", intent.Reference)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}
	return &IntentResult{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
