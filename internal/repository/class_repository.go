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

const classColumns = `id, name, slug, image, instructor_name, instructor_email, price, available_seats, enrolled_students, status, feedback, created_at, updated_at`

// ClassRepository provides persistence for class offerings.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a class offering.
func (r *ClassRepository) Create(ctx context.Context, class *models.ClassOffering) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now

	const query = `INSERT INTO classes (id, name, slug, image, instructor_name, instructor_email, price, available_seats, enrolled_students, status, feedback, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := r.db.ExecContext(ctx, query,
		class.ID, class.Name, class.Slug, class.Image, class.InstructorName, class.InstructorEmail,
		class.Price, class.AvailableSeats, class.EnrolledStudents, class.Status, class.Feedback,
		class.CreatedAt, class.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// FindByID returns a class by id. sql.ErrNoRows is returned unwrapped.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.ClassOffering, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = $1`
	var class models.ClassOffering
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &class, nil
}

// List returns every class, newest first.
func (r *ClassRepository) List(ctx context.Context) ([]models.ClassOffering, error) {
	return r.selectClasses(ctx, "list classes", `SELECT `+classColumns+` FROM classes ORDER BY created_at DESC`)
}

// ListApproved returns approved classes, newest first.
func (r *ClassRepository) ListApproved(ctx context.Context) ([]models.ClassOffering, error) {
	return r.selectClasses(ctx, "list approved classes",
		`SELECT `+classColumns+` FROM classes WHERE status = $1 ORDER BY created_at DESC`, models.ClassStatusApproved)
}

// ListPopular returns at most limit approved classes ordered by enrolled students descending.
func (r *ClassRepository) ListPopular(ctx context.Context, limit int) ([]models.ClassOffering, error) {
	return r.selectClasses(ctx, "list popular classes",
		`SELECT `+classColumns+` FROM classes WHERE status = $1 ORDER BY enrolled_students DESC, created_at DESC LIMIT $2`,
		models.ClassStatusApproved, limit)
}

// ListByInstructor returns the classes taught by email.
func (r *ClassRepository) ListByInstructor(ctx context.Context, email string) ([]models.ClassOffering, error) {
	return r.selectClasses(ctx, "list instructor classes",
		`SELECT `+classColumns+` FROM classes WHERE instructor_email = $1 ORDER BY created_at DESC`, email)
}

// UpdateStatus moderates a class and returns the updated row. sql.ErrNoRows is returned unwrapped.
func (r *ClassRepository) UpdateStatus(ctx context.Context, id string, status models.ClassStatus, feedback string) (*models.ClassOffering, error) {
	query := `UPDATE classes SET status = $2, feedback = $3, updated_at = $4 WHERE id = $1 RETURNING ` + classColumns
	var class models.ClassOffering
	if err := r.db.GetContext(ctx, &class, query, id, status, feedback, time.Now().UTC()); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update class status: %w", err)
	}
	return &class, nil
}

func (r *ClassRepository) selectClasses(ctx context.Context, op, query string, args ...interface{}) ([]models.ClassOffering, error) {
	classes := []models.ClassOffering{}
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return classes, nil
}
