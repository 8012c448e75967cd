package controllers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"classregistration/internal/delivery/http/helpers"
	"classregistration/internal/delivery/http/middleware"
	"classregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminAuth struct {
	token string
	err   error
}

func (f *fakeAdminAuth) Login(ctx context.Context, password string) (string, error) {
	return f.token, f.err
}

type fakeReconciliations struct {
	items      []*domain.PaymentReconciliation
	total      int
	listErr    error
	lastParams domain.PaginationParams
	retried    *domain.PaymentReconciliation
	retryErr   error
}

func (f *fakeReconciliations) ListOpen(ctx context.Context, params domain.PaginationParams) ([]*domain.PaymentReconciliation, int, error) {
	f.lastParams = params
	return f.items, f.total, f.listErr
}

func (f *fakeReconciliations) Retry(ctx context.Context, id string) (*domain.PaymentReconciliation, error) {
	return f.retried, f.retryErr
}

func TestAdminController_Login(t *testing.T) {
	tests := []struct {
		name       string
		auth       *fakeAdminAuth
		body       string
		wantStatus int
	}{
		{"ok", &fakeAdminAuth{token: "jwt"}, `{"password":"s3cret"}`, http.StatusOK},
		{"wrong password", &fakeAdminAuth{err: domain.ErrInvalidCredentials}, `{"password":"nope"}`, http.StatusUnauthorized},
		{"issuer failure", &fakeAdminAuth{err: errors.New("sign")}, `{"password":"s3cret"}`, http.StatusInternalServerError},
		{"unknown field", &fakeAdminAuth{token: "jwt"}, `{"user":"root"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAdminController(testLogger, tt.auth, &fakeReconciliations{})
			rr := httptest.NewRecorder()
			c.Login(rr, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var got AdminLoginResponse
				decodeEnvelope(t, rr, &got)
				assert.Equal(t, "jwt", got.Token)
			}
		})
	}
}

func TestAdminController_ListReconciliations(t *testing.T) {
	recs := &fakeReconciliations{items: []*domain.PaymentReconciliation{{ID: "rec-1"}}, total: 41}
	c := NewAdminController(testLogger, &fakeAdminAuth{}, recs)
	rr := httptest.NewRecorder()

	c.ListReconciliations(rr, httptest.NewRequest(http.MethodGet, "/admin/reconciliations?page=2&page_size=20", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 20}, recs.lastParams)
	var got ListReconciliationsResponse
	decodeEnvelope(t, rr, &got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, helpers.PaginationMeta{Page: 2, PageSize: 20, Total: 41, TotalPages: 3}, got.Pagination)

	recs.listErr = errors.New("db down")
	rr = httptest.NewRecorder()
	c.ListReconciliations(rr, httptest.NewRequest(http.MethodGet, "/admin/reconciliations", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAdminController_RetryReconciliation(t *testing.T) {
	recs := &fakeReconciliations{retried: &domain.PaymentReconciliation{ID: "rec-1", Attempts: 1}}
	c := NewAdminController(testLogger, &fakeAdminAuth{}, recs)
	req := httptest.NewRequest(http.MethodPost, "/admin/reconciliations/rec-1/retry", nil)
	req.SetPathValue("id", "rec-1")

	rr := httptest.NewRecorder()
	c.RetryReconciliation(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	recs.retryErr = domain.NewWorkflowError(domain.KindNotFound, "Reconciliation not found.", domain.ErrNotFound)
	rr = httptest.NewRecorder()
	c.RetryReconciliation(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	recs.retryErr = domain.NewWorkflowError(domain.KindPersistence, "Failed to mark registration paid. Please try again.", errors.New("locked"))
	rr = httptest.NewRecorder()
	c.RetryReconciliation(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAdminController_RetryReconciliation_LogsSubject(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	recs := &fakeReconciliations{retried: &domain.PaymentReconciliation{ID: "rec-7"}}
	c := NewAdminController(logger, &fakeAdminAuth{}, recs)

	req := httptest.NewRequest(http.MethodPost, "/admin/reconciliations/rec-7/retry", nil)
	req.SetPathValue("id", "rec-7")
	req = req.WithContext(middleware.SetSubject(req.Context(), domain.AdminSubject))

	rr := httptest.NewRecorder()
	c.RetryReconciliation(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, buf.String(), "reconciliation_id=rec-7")
	assert.Contains(t, buf.String(), "subject="+domain.AdminSubject)
}
