package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/middleware"
	"github.com/noah-isme/dojo-api/internal/models"
	"github.com/noah-isme/dojo-api/internal/service"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
)

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func signIn(c *gin.Context, email string) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: email})
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

type userServiceMock struct {
	registerResp *dto.RegisterUserResult
	registerErr  error
	hasRole      bool
	hasRoleErr   error
	hasRoleCalls int
	users        []models.User
	setRoleResp  *models.User
	setRoleErr   error
	lastSetRole  dto.SetRoleRequest
	lastMeta     dto.RequestMeta
}

func (m *userServiceMock) Register(ctx context.Context, req dto.RegisterUserRequest) (*dto.RegisterUserResult, error) {
	return m.registerResp, m.registerErr
}

func (m *userServiceMock) HasRole(ctx context.Context, email string, role models.UserRole) (bool, error) {
	m.hasRoleCalls++
	return m.hasRole, m.hasRoleErr
}

func (m *userServiceMock) List(ctx context.Context) ([]models.User, error) {
	return m.users, nil
}

func (m *userServiceMock) ListInstructors(ctx context.Context) ([]models.User, error) {
	return m.users, nil
}

func (m *userServiceMock) SetRole(ctx context.Context, req dto.SetRoleRequest, meta dto.RequestMeta) (*models.User, error) {
	m.lastSetRole = req
	m.lastMeta = meta
	return m.setRoleResp, m.setRoleErr
}

// Get satisfies UserLookup for router tests.
func (m *userServiceMock) Get(ctx context.Context, email string) (*models.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			return &m.users[i], nil
		}
	}
	return nil, appErrors.ErrNotFound
}

type classServiceMock struct {
	classes        []models.ClassOffering
	created        *models.ClassOffering
	lastInstructor *models.User
	lastStatusID   string
	lastStatus     dto.UpdateClassStatusRequest
	lastMineEmail  string
	err            error
}

func (m *classServiceMock) Create(ctx context.Context, req dto.CreateClassRequest, instructor *models.User) (*models.ClassOffering, error) {
	m.lastInstructor = instructor
	return m.created, m.err
}

func (m *classServiceMock) ListAll(ctx context.Context) ([]models.ClassOffering, error) {
	return m.classes, m.err
}

func (m *classServiceMock) ListApproved(ctx context.Context) ([]models.ClassOffering, error) {
	return m.classes, m.err
}

func (m *classServiceMock) ListHome(ctx context.Context) ([]models.ClassOffering, error) {
	return m.classes, m.err
}

func (m *classServiceMock) ListByInstructor(ctx context.Context, email string) ([]models.ClassOffering, error) {
	m.lastMineEmail = email
	return m.classes, m.err
}

func (m *classServiceMock) UpdateStatus(ctx context.Context, id string, req dto.UpdateClassStatusRequest, meta dto.RequestMeta) (*models.ClassOffering, error) {
	m.lastStatusID = id
	m.lastStatus = req
	return &models.ClassOffering{ID: id, Status: models.ClassStatus(req.Status)}, m.err
}

type selectionServiceMock struct {
	items       []models.SelectedClass
	selectCalls int
	lastEmail   string
	deleted     int64
}

func (m *selectionServiceMock) Select(ctx context.Context, req dto.SelectClassRequest) (*models.SelectedClass, error) {
	m.selectCalls++
	return &models.SelectedClass{ID: "sel-1", ClassID: req.ClassID, StudentEmail: req.StudentEmail}, nil
}

func (m *selectionServiceMock) ListByStudent(ctx context.Context, email string) ([]models.SelectedClass, error) {
	m.lastEmail = email
	return m.items, nil
}

func (m *selectionServiceMock) Delete(ctx context.Context, id string) (*dto.DeleteResult, error) {
	return &dto.DeleteResult{DeletedCount: m.deleted}, nil
}

type enrollmentServiceMock struct {
	result    *models.CheckoutResult
	err       error
	lastReq   dto.PaymentRequest
	lastMeta  dto.RequestMeta
	lastEmail string
}

func (m *enrollmentServiceMock) Complete(ctx context.Context, req dto.PaymentRequest, meta dto.RequestMeta) (*models.CheckoutResult, error) {
	m.lastReq = req
	m.lastMeta = meta
	return m.result, m.err
}

func (m *enrollmentServiceMock) ListByStudent(ctx context.Context, email string) ([]models.EnrolledClass, error) {
	m.lastEmail = email
	return []models.EnrolledClass{}, nil
}

type paymentServiceMock struct {
	intent     *models.PaymentIntent
	err        error
	lastEmail  string
	lastFormat string
	file       *service.ExportFile
}

func (m *paymentServiceMock) CreateIntent(ctx context.Context, req dto.PaymentIntentRequest, email string) (*models.PaymentIntent, error) {
	m.lastEmail = email
	return m.intent, m.err
}

func (m *paymentServiceMock) History(ctx context.Context, email string) ([]models.PaymentRecord, error) {
	m.lastEmail = email
	return []models.PaymentRecord{}, m.err
}

func (m *paymentServiceMock) ExportHistory(ctx context.Context, email, format string) (*service.ExportFile, error) {
	m.lastEmail = email
	m.lastFormat = format
	return m.file, m.err
}
