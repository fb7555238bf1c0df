package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dojo-api/internal/models"
)

// CheckoutRepository runs the enrollment transaction.
type CheckoutRepository struct {
	db *sqlx.DB
}

// NewCheckoutRepository constructs the repository.
func NewCheckoutRepository(db *sqlx.DB) *CheckoutRepository {
	return &CheckoutRepository{db: db}
}

// Complete turns a locked selection into an enrollment. The seat decrement, the payment record,
// the enrollment and the selection delete are committed together or not at all.
func (r *CheckoutRepository) Complete(ctx context.Context, in models.Checkout) (res *models.CheckoutResult, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var sel models.SelectedClass
	lockQuery := `SELECT ` + selectedClassColumns + ` FROM selected_classes WHERE id = $1 AND student_email = $2 FOR UPDATE`
	if err = tx.GetContext(ctx, &sel, lockQuery, in.SelectedClassID, in.StudentEmail); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSelectionNotFound
		}
		return nil, fmt.Errorf("lock selected class: %w", err)
	}
	if sel.ClassID != in.ClassID {
		return nil, ErrSelectionMismatch
	}

	now := time.Now().UTC()
	const seatQuery = `UPDATE classes SET available_seats = available_seats - 1, enrolled_students = enrolled_students + 1, updated_at = $2 WHERE id = $1 AND available_seats > 0`
	result, err := tx.ExecContext(ctx, seatQuery, sel.ClassID, now)
	if err != nil {
		return nil, fmt.Errorf("reserve seat: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reserve seat rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNoSeatsAvailable
	}

	payment := models.PaymentRecord{
		ID:              uuid.NewString(),
		Email:           in.StudentEmail,
		Amount:          in.Amount,
		TransactionID:   in.TransactionID,
		ClassID:         sel.ClassID,
		SelectedClassID: sel.ID,
		ClassName:       sel.ClassName,
		Date:            now,
	}
	const paymentQuery = `INSERT INTO payments (id, email, amount, transaction_id, class_id, selected_class_id, class_name, date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err = tx.ExecContext(ctx, paymentQuery,
		payment.ID, payment.Email, payment.Amount, payment.TransactionID,
		payment.ClassID, payment.SelectedClassID, payment.ClassName, payment.Date,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTransaction
		}
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	enrollment := models.EnrolledClass{
		ID:              uuid.NewString(),
		StudentEmail:    in.StudentEmail,
		ClassID:         sel.ClassID,
		SelectedClassID: sel.ID,
		ClassName:       sel.ClassName,
		Image:           sel.Image,
		InstructorName:  sel.InstructorName,
		Price:           sel.Price,
		TransactionID:   in.TransactionID,
		EnrolledAt:      now,
	}
	const enrollQuery = `INSERT INTO enrolled_classes (id, student_email, class_id, selected_class_id, class_name, image, instructor_name, price, transaction_id, enrolled_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err = tx.ExecContext(ctx, enrollQuery,
		enrollment.ID, enrollment.StudentEmail, enrollment.ClassID, enrollment.SelectedClassID,
		enrollment.ClassName, enrollment.Image, enrollment.InstructorName, enrollment.Price,
		enrollment.TransactionID, enrollment.EnrolledAt,
	); err != nil {
		return nil, fmt.Errorf("insert enrolled class: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM selected_classes WHERE id = $1`, sel.ID); err != nil {
		return nil, fmt.Errorf("delete selected class: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout transaction: %w", err)
	}
	return &models.CheckoutResult{Payment: payment, Enrollment: enrollment}, nil
}
