package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dojo-api/internal/models"
)

const selectedClassColumns = `id, student_email, class_id, class_name, image, instructor_name, price, created_at`

// SelectedClassRepository stores students' pending selections.
type SelectedClassRepository struct {
	db *sqlx.DB
}

// NewSelectedClassRepository constructs the repository.
func NewSelectedClassRepository(db *sqlx.DB) *SelectedClassRepository {
	return &SelectedClassRepository{db: db}
}

// Create inserts a selection snapshot.
func (r *SelectedClassRepository) Create(ctx context.Context, sel *models.SelectedClass) error {
	if sel.ID == "" {
		sel.ID = uuid.NewString()
	}
	if sel.CreatedAt.IsZero() {
		sel.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO selected_classes (id, student_email, class_id, class_name, image, instructor_name, price, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query,
		sel.ID, sel.StudentEmail, sel.ClassID, sel.ClassName, sel.Image, sel.InstructorName, sel.Price, sel.CreatedAt,
	); err != nil {
		return fmt.Errorf("create selected class: %w", err)
	}
	return nil
}

// ListByStudent returns the selections of a student, newest first.
func (r *SelectedClassRepository) ListByStudent(ctx context.Context, email string) ([]models.SelectedClass, error) {
	query := `SELECT ` + selectedClassColumns + ` FROM selected_classes WHERE student_email = $1 ORDER BY created_at DESC`
	items := []models.SelectedClass{}
	if err := r.db.SelectContext(ctx, &items, query, email); err != nil {
		return nil, fmt.Errorf("list selected classes: %w", err)
	}
	return items, nil
}

// Delete removes a selection and returns the number of rows removed; a missing id removes nothing.
func (r *SelectedClassRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM selected_classes WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete selected class: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete selected class rows affected: %w", err)
	}
	return n, nil
}
