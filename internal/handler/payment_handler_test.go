package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/dojo-api/internal/models"
	"github.com/noah-isme/dojo-api/internal/service"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
)

func TestPaymentHandlerCreateIntent(t *testing.T) {
	svc := &paymentServiceMock{intent: &models.PaymentIntent{ClientSecret: "pi_secret"}}
	h := NewPaymentHandler(svc)

	c, w := newContext(http.MethodPost, "/create-payment-intents", `{"price":12.5}`)
	signIn(c, "student@example.com")
	h.CreateIntent(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"clientSecret":"pi_secret"}}`, w.Body.String())
	assert.Equal(t, "student@example.com", svc.lastEmail)
}

func TestPaymentHandlerCreateIntentUpstreamFailure(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceMock{err: appErrors.Wrap(errors.New("card_declined: secret"), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)})

	c, w := newContext(http.MethodPost, "/create-payment-intents", `{"price":12.5}`)
	signIn(c, "student@example.com")
	h.CreateIntent(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "card_declined")
}

func TestPaymentHandlerExportWritesAttachment(t *testing.T) {
	svc := &paymentServiceMock{file: &service.ExportFile{
		Filename:    "payment-history-20240102.csv",
		ContentType: "text/csv; charset=utf-8",
		Body:        []byte("Date,Class\n"),
	}}
	h := NewPaymentHandler(svc)

	c, w := newContext(http.MethodGet, "/payment-history/export?format=csv", "")
	signIn(c, "student@example.com")
	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="payment-history-20240102.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Date,Class\n", w.Body.String())
	assert.Equal(t, "csv", svc.lastFormat)
	assert.Equal(t, "student@example.com", svc.lastEmail)
}

func TestMetricsHandlerReadyReportsDown(t *testing.T) {
	h := NewMetricsHandler(nil, map[string]Pinger{
		"database": PingFunc(func(ctx context.Context) error { return nil }),
		"cache":    PingFunc(func(ctx context.Context) error { return errors.New("dial tcp: refused") }),
	}, nil)

	c, w := newContext(http.MethodGet, "/ready", "")
	h.Ready(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","checks":{"database":"up","cache":"down"}}`, w.Body.String())
}

func TestMetricsHandlerRoot(t *testing.T) {
	h := NewMetricsHandler(service.NewMetricsService(), nil, nil)

	c, w := newContext(http.MethodGet, "/", "")
	h.Root(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dojo is running", w.Body.String())
}
