package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/dojo-api/internal/models"
	"github.com/noah-isme/dojo-api/internal/repository"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
	"github.com/noah-isme/dojo-api/pkg/payment"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	findErr error
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*models.User{}}
	for i := range users {
		u := users[i]
		repo.users[u.Email] = &u
	}
	return repo
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return false, nil
	}
	cp := *user
	f.users[user.Email] = &cp
	return true, nil
}

func (f *fakeUserRepo) List(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role models.UserRole) ([]models.User, error) {
	all, _ := f.List(context.Background())
	var out []models.User
	for _, u := range all {
		if u.HasRole(role) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpsertRole(_ context.Context, email, name string, role models.UserRole) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		u = &models.User{Email: email, Name: name}
		f.users[email] = u
	}
	r := role
	u.Role = &r
	cp := *u
	return &cp, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*models.AuditLog
	err     error
}

func (f *fakeAuditRepo) Create(_ context.Context, log *models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeAuditRepo) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeClassRepo struct {
	mu          sync.Mutex
	classes     map[string]*models.ClassOffering
	listCalls   int
	popularArgs []int
}

func newFakeClassRepo(classes ...models.ClassOffering) *fakeClassRepo {
	repo := &fakeClassRepo{classes: map[string]*models.ClassOffering{}}
	for i := range classes {
		c := classes[i]
		repo.classes[c.ID] = &c
	}
	return repo
}

func (f *fakeClassRepo) Create(_ context.Context, class *models.ClassOffering) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *class
	f.classes[class.ID] = &cp
	return nil
}

func (f *fakeClassRepo) FindByID(_ context.Context, id string) (*models.ClassOffering, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClassRepo) filter(keep func(models.ClassOffering) bool) []models.ClassOffering {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := []models.ClassOffering{}
	for _, c := range f.classes {
		if keep(*c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeClassRepo) List(context.Context) ([]models.ClassOffering, error) {
	return f.filter(func(models.ClassOffering) bool { return true }), nil
}

func (f *fakeClassRepo) ListApproved(context.Context) ([]models.ClassOffering, error) {
	return f.filter(func(c models.ClassOffering) bool { return c.Status == models.ClassStatusApproved }), nil
}

func (f *fakeClassRepo) ListPopular(_ context.Context, limit int) ([]models.ClassOffering, error) {
	out := f.filter(func(c models.ClassOffering) bool { return c.Status == models.ClassStatusApproved })
	sort.SliceStable(out, func(i, j int) bool { return out[i].EnrolledStudents > out[j].EnrolledStudents })
	f.mu.Lock()
	f.popularArgs = append(f.popularArgs, limit)
	f.mu.Unlock()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeClassRepo) ListByInstructor(_ context.Context, email string) ([]models.ClassOffering, error) {
	return f.filter(func(c models.ClassOffering) bool { return c.InstructorEmail == email }), nil
}

func (f *fakeClassRepo) UpdateStatus(_ context.Context, id string, status models.ClassStatus, feedback string) (*models.ClassOffering, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	c.Status = status
	c.Feedback = feedback
	cp := *c
	return &cp, nil
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	entries map[string]interface{}
	deletes [][]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: map[string]interface{}{}}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if classes, ok := v.([]models.ClassOffering); ok {
		*(dest.(*[]models.ClassOffering)) = classes
	}
	return nil
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	return nil
}

func (f *fakeCacheRepo) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, keys)
	for _, k := range keys {
		delete(f.entries, k)
	}
	return nil
}

// seatStore mimics the checkout transaction with a single lock standing in for row locks.
type seatStore struct {
	mu          sync.Mutex
	seats       map[string]int
	enrolled    map[string]int
	selections  map[string]models.SelectedClass
	payments    []models.PaymentRecord
	enrollments []models.EnrolledClass
}

func (s *seatStore) Complete(_ context.Context, in models.Checkout) (*models.CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, ok := s.selections[in.SelectedClassID]
	if !ok || sel.StudentEmail != in.StudentEmail {
		return nil, repository.ErrSelectionNotFound
	}
	if sel.ClassID != in.ClassID {
		return nil, repository.ErrSelectionMismatch
	}
	if s.seats[sel.ClassID] <= 0 {
		return nil, repository.ErrNoSeatsAvailable
	}
	s.seats[sel.ClassID]--
	s.enrolled[sel.ClassID]++
	p := models.PaymentRecord{ID: in.TransactionID, Email: in.StudentEmail, Amount: in.Amount, TransactionID: in.TransactionID, ClassID: sel.ClassID, SelectedClassID: sel.ID}
	e := models.EnrolledClass{ID: "enr-" + sel.ID, StudentEmail: in.StudentEmail, ClassID: sel.ClassID, SelectedClassID: sel.ID, TransactionID: in.TransactionID}
	s.payments = append(s.payments, p)
	s.enrollments = append(s.enrollments, e)
	delete(s.selections, sel.ID)
	return &models.CheckoutResult{Payment: p, Enrollment: e}, nil
}

func (s *seatStore) ListByStudent(_ context.Context, email string) ([]models.EnrolledClass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.EnrolledClass
	for _, e := range s.enrollments {
		if e.StudentEmail == email {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeGateway struct {
	mu      sync.Mutex
	intents []payment.Intent
	err     error
}

func (f *fakeGateway) CreateIntent(_ context.Context, intent payment.Intent) (*payment.IntentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intents = append(f.intents, intent)
	if f.err != nil {
		return nil, f.err
	}
	return &payment.IntentResult{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}
