package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/dojo-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "postgres")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

var userRowColumns = []string{"email", "name", "photo_url", "role", "created_at", "updated_at"}

func TestFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).AddRow("user@example.com", "User", "", "admin", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT email, name, photo_url, role, created_at, updated_at FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("user@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.True(t, user.HasRole(models.RoleAdmin))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailWithoutRole(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).AddRow("new@example.com", "New", "", nil, now, now)
	mock.ExpectQuery("FROM users WHERE email").WithArgs("new@example.com").WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Nil(t, user.Role)
	assert.False(t, user.HasRole(models.RoleStudent))
}

func TestFindByEmailNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users WHERE email").WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCreateUserIsIdempotent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	insert := regexp.QuoteMeta("INSERT INTO users (email, name, photo_url, role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (email) DO NOTHING")
	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Create(context.Background(), &models.User{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Create(context.Background(), &models.User{Email: "a@example.com", Name: "A again"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsersOrderedByRole(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow("a@example.com", "A", "", "admin", now, now).
		AddRow("s@example.com", "S", "", "student", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY role ASC NULLS LAST, email ASC")).WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRole(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role")).
		WithArgs("i@example.com", "", models.RoleInstructor, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow("i@example.com", "", "", "instructor", now, now))

	user, err := repo.UpsertRole(context.Background(), "i@example.com", "", models.RoleInstructor)
	require.NoError(t, err)
	assert.True(t, user.HasRole(models.RoleInstructor))
	assert.NoError(t, mock.ExpectationsWereMet())
}
