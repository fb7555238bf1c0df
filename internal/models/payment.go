package models

import "time"

// PaymentRecord is an append-only ledger entry for a completed payment.
type PaymentRecord struct {
	ID              string    `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	Amount          float64   `db:"amount" json:"price"`
	TransactionID   string    `db:"transaction_id" json:"transactionId"`
	ClassID         string    `db:"class_id" json:"classId"`
	SelectedClassID string    `db:"selected_class_id" json:"selectedClassId"`
	ClassName       string    `db:"class_name" json:"className"`
	Date            time.Time `db:"date" json:"date"`
}

// PaymentIntent is the client-confirmable handle returned by the payment processor.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}
