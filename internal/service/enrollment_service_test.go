package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/models"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
)

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvalidator) InvalidateListings(context.Context) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func newSeatStore(seats int, selections ...models.SelectedClass) *seatStore {
	store := &seatStore{
		seats:      map[string]int{"class-1": seats},
		enrolled:   map[string]int{"class-1": 0},
		selections: map[string]models.SelectedClass{},
	}
	for _, s := range selections {
		store.selections[s.ID] = s
	}
	return store
}

func paymentFor(selID string) dto.PaymentRequest {
	return dto.PaymentRequest{
		TransactionID: "tx-" + selID,
		Price:         20,
		ClassItem:     dto.ClassItem{ID: selID, ClassID: "class-1"},
	}
}

func TestEnrollmentServiceCompleteSuccess(t *testing.T) {
	store := newSeatStore(3, models.SelectedClass{ID: "sel-1", StudentEmail: "s@example.com", ClassID: "class-1"})
	inv := &countingInvalidator{}
	auditRepo := &fakeAuditRepo{}
	svc := NewEnrollmentService(store, store, inv, NewMetricsService(), NewAuditService(auditRepo, nil), nil, nil)

	res, err := svc.Complete(context.Background(), paymentFor("sel-1"), dto.RequestMeta{ActorEmail: "s@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "tx-sel-1", res.Payment.TransactionID)
	assert.Equal(t, 2, store.seats["class-1"])
	assert.Equal(t, 1, store.enrolled["class-1"])
	assert.Empty(t, store.selections)
	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, []string{models.AuditActionEnrollment}, auditRepo.actions())

	enrolled, err := svc.ListByStudent(context.Background(), "s@example.com")
	require.NoError(t, err)
	assert.Len(t, enrolled, 1)
}

func TestEnrollmentServiceLastSeatConcurrent(t *testing.T) {
	store := newSeatStore(1,
		models.SelectedClass{ID: "sel-a", StudentEmail: "a@example.com", ClassID: "class-1"},
		models.SelectedClass{ID: "sel-b", StudentEmail: "b@example.com", ClassID: "class-1"},
	)
	svc := NewEnrollmentService(store, store, nil, nil, nil, nil, nil)

	callers := map[string]string{"sel-a": "a@example.com", "sel-b": "b@example.com"}
	errs := make(chan error, len(callers))
	var start sync.WaitGroup
	start.Add(1)
	var wg sync.WaitGroup
	for selID, email := range callers {
		wg.Add(1)
		go func(selID, email string) {
			defer wg.Done()
			start.Wait()
			_, err := svc.Complete(context.Background(), paymentFor(selID), dto.RequestMeta{ActorEmail: email})
			errs <- err
		}(selID, email)
	}
	start.Done()
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, appErrors.ErrNoSeatsAvailable):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 0, store.seats["class-1"])
	assert.Equal(t, 1, store.enrolled["class-1"])
	assert.Len(t, store.payments, 1)
	assert.Len(t, store.enrollments, 1)
}

func TestEnrollmentServiceNoSeatsWritesNothing(t *testing.T) {
	store := newSeatStore(0, models.SelectedClass{ID: "sel-1", StudentEmail: "s@example.com", ClassID: "class-1"})
	auditRepo := &fakeAuditRepo{}
	svc := NewEnrollmentService(store, store, nil, nil, NewAuditService(auditRepo, nil), nil, nil)

	_, err := svc.Complete(context.Background(), paymentFor("sel-1"), dto.RequestMeta{ActorEmail: "s@example.com"})
	assert.ErrorIs(t, err, appErrors.ErrNoSeatsAvailable)
	assert.Empty(t, store.payments)
	assert.Empty(t, store.enrollments)
	assert.Len(t, store.selections, 1)
	assert.Empty(t, auditRepo.actions())
}

func TestEnrollmentServiceErrors(t *testing.T) {
	store := newSeatStore(5, models.SelectedClass{ID: "sel-1", StudentEmail: "s@example.com", ClassID: "class-1"})
	svc := NewEnrollmentService(store, store, nil, nil, nil, nil, nil)
	ctx := context.Background()
	meta := dto.RequestMeta{ActorEmail: "s@example.com"}

	_, err := svc.Complete(ctx, dto.PaymentRequest{Price: 20, ClassItem: dto.ClassItem{ID: "sel-1", ClassID: "class-1"}}, meta)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Complete(ctx, paymentFor("sel-404"), meta)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	req := paymentFor("sel-1")
	req.ClassItem.ClassID = "class-2"
	_, err = svc.Complete(ctx, req, meta)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	req = paymentFor("sel-1")
	req.Email = "someone-else@example.com"
	_, err = svc.Complete(ctx, req, meta)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Complete(ctx, paymentFor("sel-1"), dto.RequestMeta{ActorEmail: "intruder@example.com"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Len(t, store.selections, 1)
}
