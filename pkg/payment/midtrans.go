package payment

import (
	"context"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransGateway creates Snap transactions; the Snap token plays the client secret role.
type MidtransGateway struct {
	client snap.Client
}

// NewMidtransGateway configures a Snap client for sandbox or production.
func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	g := &MidtransGateway{}
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g.client.New(serverKey, env)
	return g
}

// CreateIntent creates a credit-card-only Snap transaction. Midtrans amounts carry no minor unit.
func (g *MidtransGateway) CreateIntent(ctx context.Context, intent Intent) (*IntentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gross := intent.AmountMinor / 100
	if gross <= 0 {
		return nil, fmt.Errorf("midtrans amount must be at least 1, got %d minor units", intent.AmountMinor)
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  intent.Reference,
			GrossAmt: gross,
		},
		CreditCard:      &snap.CreditCardDetails{Secure: true},
		EnabledPayments: []snap.SnapPaymentType{snap.PaymentTypeCreditCard},
	}
	if intent.Email != "" {
		req.CustomerDetail = &midtrans.CustomerDetails{Email: intent.Email}
	}

	resp, merr := g.client.CreateTransaction(req)
	if merr != nil {
		return nil, fmt.Errorf("midtrans create transaction: %w", merr)
	}
	return &IntentResult{ID: intent.Reference, ClientSecret: resp.Token}, nil
}
