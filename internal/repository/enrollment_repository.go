package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dojo-api/internal/models"
)

const enrolledClassColumns = `id, student_email, class_id, selected_class_id, class_name, image, instructor_name, price, transaction_id, enrolled_at`

// EnrollmentRepository reads enrolled classes. Rows are written only by CheckoutRepository.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListByStudent returns a student's enrollments, newest first.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, email string) ([]models.EnrolledClass, error) {
	query := `SELECT ` + enrolledClassColumns + ` FROM enrolled_classes WHERE student_email = $1 ORDER BY enrolled_at DESC`
	items := []models.EnrolledClass{}
	if err := r.db.SelectContext(ctx, &items, query, email); err != nil {
		return nil, fmt.Errorf("list enrolled classes: %w", err)
	}
	return items, nil
}
