package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dojo-api/internal/models"
)

const paymentColumns = `id, email, amount, transaction_id, class_id, selected_class_id, class_name, date`

// PaymentRepository reads the payment ledger.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// ListByEmail returns the payments of email, most recent first.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]models.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE email = $1 ORDER BY date DESC`
	items := []models.PaymentRecord{}
	if err := r.db.SelectContext(ctx, &items, query, email); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return items, nil
}
