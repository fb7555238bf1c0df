package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dojo-api/internal/models"
)

const userColumns = `email, name, photo_url, role, created_at, updated_at`

// UserRepository provides database access for users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address. sql.ErrNoRows is returned unwrapped.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Create inserts the user unless the email is taken. It reports whether a row was written.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (bool, error) {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const query = `INSERT INTO users (email, name, photo_url, role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (email) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, user.Email, user.Name, user.PhotoURL, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("create user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create user rows affected: %w", err)
	}
	return affected == 1, nil
}

// List returns every user ordered by role, users without a role last.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY role ASC NULLS LAST, email ASC`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListByRole returns users holding role ordered by name.
func (r *UserRepository) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY name ASC, email ASC`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, role); err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// UpsertRole sets the role of a user, creating the user when it does not exist yet.
func (r *UserRepository) UpsertRole(ctx context.Context, email, name string, role models.UserRole) (*models.User, error) {
	now := time.Now().UTC()
	query := `INSERT INTO users (email, name, photo_url, role, created_at, updated_at) VALUES ($1, $2, '', $3, $4, $4)
ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, updated_at = EXCLUDED.updated_at
RETURNING ` + userColumns
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email, name, role, now); err != nil {
		return nil, fmt.Errorf("upsert user role: %w", err)
	}
	return &user, nil
}
