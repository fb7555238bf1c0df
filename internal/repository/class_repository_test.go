package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/dojo-api/internal/models"
)

var classRowColumns = []string{"id", "name", "slug", "image", "instructor_name", "instructor_email", "price", "available_seats", "enrolled_students", "status", "feedback", "created_at", "updated_at"}

func TestClassRepositoryListPopular(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(classRowColumns).
		AddRow("c1", "Karate", "karate-1", "", "Sensei", "sensei@example.com", 49.99, 3, 20, "approved", "", now, now).
		AddRow("c2", "Judo", "judo-2", "", "Sensei", "sensei@example.com", 29.0, 5, 8, "approved", "", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 ORDER BY enrolled_students DESC, created_at DESC LIMIT $2")).
		WithArgs(models.ClassStatusApproved, models.HomeClassesLimit).
		WillReturnRows(rows)

	classes, err := repo.ListPopular(context.Background(), models.HomeClassesLimit)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, 20, classes[0].EnrolledStudents)
	assert.InDelta(t, 49.99, classes[0].Price, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec("INSERT INTO classes").WillReturnResult(sqlmock.NewResult(0, 1))

	class := &models.ClassOffering{Name: "Aikido", Slug: "aikido", InstructorEmail: "i@example.com", Status: models.ClassStatusPending, AvailableSeats: 10}
	require.NoError(t, repo.Create(context.Background(), class))
	assert.NotEmpty(t, class.ID)
	assert.False(t, class.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE classes SET status = $2, feedback = $3")).
		WithArgs("missing", models.ClassStatusApproved, "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(classRowColumns))

	_, err := repo.UpdateStatus(context.Background(), "missing", models.ClassStatusApproved, "")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSelectedClassDeleteMissingIsNoop(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSelectedClassRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM selected_classes WHERE id = $1")).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Delete(context.Background(), "nope")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryListByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "amount", "transaction_id", "class_id", "selected_class_id", "class_name", "date"}).
		AddRow("p2", "s@example.com", 10.0, "tx-2", "c1", "sel-2", "Karate", now).
		AddRow("p1", "s@example.com", 12.5, "tx-1", "c2", "sel-1", "Judo", now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE email = $1 ORDER BY date DESC")).
		WithArgs("s@example.com").
		WillReturnRows(rows)

	items, err := repo.ListByEmail(context.Background(), "s@example.com")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "tx-2", items[0].TransactionID)
}
