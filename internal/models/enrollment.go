package models

import "time"

// EnrolledClass is a durable enrollment produced by a completed payment.
type EnrolledClass struct {
	ID              string    `db:"id" json:"id"`
	StudentEmail    string    `db:"student_email" json:"studentEmail"`
	ClassID         string    `db:"class_id" json:"classId"`
	SelectedClassID string    `db:"selected_class_id" json:"selectedClassId"`
	ClassName       string    `db:"class_name" json:"name"`
	Image           string    `db:"image" json:"image"`
	InstructorName  string    `db:"instructor_name" json:"instructorName"`
	Price           float64   `db:"price" json:"price"`
	TransactionID   string    `db:"transaction_id" json:"transactionId"`
	EnrolledAt      time.Time `db:"enrolled_at" json:"enrolledAt"`
}

// Checkout is everything the enrollment transaction needs to turn a selection into an enrollment.
type Checkout struct {
	StudentEmail    string
	SelectedClassID string
	ClassID         string
	TransactionID   string
	Amount          float64
}

// CheckoutResult reports the rows written by a successful checkout.
type CheckoutResult struct {
	Payment    PaymentRecord `json:"payment"`
	Enrollment EnrolledClass `json:"enrollment"`
}
