package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/dojo-api/internal/models"
)

var (
	lockSelection = regexp.QuoteMeta("FROM selected_classes WHERE id = $1 AND student_email = $2 FOR UPDATE")
	reserveSeat   = regexp.QuoteMeta("UPDATE classes SET available_seats = available_seats - 1, enrolled_students = enrolled_students + 1, updated_at = $2 WHERE id = $1 AND available_seats > 0")
)

var selectionColumns = []string{"id", "student_email", "class_id", "class_name", "image", "instructor_name", "price", "created_at"}

func selectionRows(classID string) *sqlmock.Rows {
	return sqlmock.NewRows(selectionColumns).
		AddRow("sel-1", "s@example.com", classID, "Karate", "https://img.example.com/k.png", "Sensei", 49.99, time.Now())
}

func checkoutInput() models.Checkout {
	return models.Checkout{
		StudentEmail:    "s@example.com",
		SelectedClassID: "sel-1",
		ClassID:         "class-1",
		TransactionID:   "pi_123",
		Amount:          49.99,
	}
}

func TestCheckoutCompleteCommits(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCheckoutRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockSelection).WithArgs("sel-1", "s@example.com").WillReturnRows(selectionRows("class-1"))
	mock.ExpectExec(reserveSeat).WithArgs("class-1", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO enrolled_classes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM selected_classes WHERE id = $1")).WithArgs("sel-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := repo.Complete(context.Background(), checkoutInput())
	require.NoError(t, err)
	assert.Equal(t, "pi_123", res.Payment.TransactionID)
	assert.Equal(t, "class-1", res.Enrollment.ClassID)
	assert.Equal(t, "sel-1", res.Enrollment.SelectedClassID)
	assert.Equal(t, "Sensei", res.Enrollment.InstructorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutNoSeatsRollsBackBeforeAnyInsert(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCheckoutRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockSelection).WillReturnRows(selectionRows("class-1"))
	mock.ExpectExec(reserveSeat).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Complete(context.Background(), checkoutInput())
	assert.ErrorIs(t, err, ErrNoSeatsAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutMissingSelectionRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCheckoutRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockSelection).WillReturnRows(sqlmock.NewRows(selectionColumns))
	mock.ExpectRollback()

	_, err := repo.Complete(context.Background(), checkoutInput())
	assert.ErrorIs(t, err, ErrSelectionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutClassMismatchRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCheckoutRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockSelection).WillReturnRows(selectionRows("class-9"))
	mock.ExpectRollback()

	_, err := repo.Complete(context.Background(), checkoutInput())
	assert.ErrorIs(t, err, ErrSelectionMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutEnrollmentFailureRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCheckoutRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockSelection).WillReturnRows(selectionRows("class-1"))
	mock.ExpectExec(reserveSeat).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO enrolled_classes").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.Complete(context.Background(), checkoutInput())
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutDuplicateTransaction(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCheckoutRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockSelection).WillReturnRows(selectionRows("class-1"))
	mock.ExpectExec(reserveSeat).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Complete(context.Background(), checkoutInput())
	assert.ErrorIs(t, err, ErrDuplicateTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}
