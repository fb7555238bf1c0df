// Package payment creates client-confirmable payment intents with an external processor.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/noah-isme/dojo-api/pkg/config"
)

// ErrMissingSecret is returned when a processor is configured without credentials.
var ErrMissingSecret = errors.New("payment secret key is not configured")

// Intent describes the amount to collect.
type Intent struct {
	AmountMinor int64
	Currency    string
	Email       string
	Reference   string
}

// IntentResult carries what the client needs to confirm the payment.
type IntentResult struct {
	ID           string
	ClientSecret string
}

// Gateway is implemented by every supported processor.
type Gateway interface {
	CreateIntent(ctx context.Context, intent Intent) (*IntentResult, error)
}

// New returns the gateway selected by configuration.
func New(cfg config.PaymentConfig) (Gateway, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecret
	}
	switch cfg.Provider {
	case "", config.PaymentProviderStripe:
		return NewStripeGateway(cfg.SecretKey), nil
	case config.PaymentProviderMidtrans:
		return NewMidtransGateway(cfg.SecretKey, cfg.Production), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider %q", cfg.Provider)
	}
}

// ToMinorUnits converts a major-unit price into minor units (cents), rounding half away from zero.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
