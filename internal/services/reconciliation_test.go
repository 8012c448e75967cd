package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"classregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciliationService(recs *fakeReconciliationRepo, regs *fakeRegistrationRepo) *reconciliationService {
	s := NewReconciliationService(recs, regs, discardLogger(), time.Second).(*reconciliationService)
	s.now = func() time.Time { return time.Date(2026, time.March, 3, 8, 0, 0, 0, time.UTC) }
	return s
}

func seedPartialFailure(t *testing.T, recs *fakeReconciliationRepo, regs *fakeRegistrationRepo) (recID, regID string) {
	t.Helper()
	reg := &domain.Registration{EventID: "1", Status: domain.RegistrationPending}
	require.NoError(t, regs.Create(context.Background(), reg))
	rec := domain.NewPaymentReconciliation(&domain.PartialFailureError{
		PaymentID: "pay-1", RegistrationID: reg.ID, Err: errors.New("deadlock detected"),
	}, time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))
	require.NoError(t, recs.Create(context.Background(), rec))
	return rec.ID, reg.ID
}

func TestReconciliationService_Retry_Resolves(t *testing.T) {
	recs, regs := newFakeReconciliationRepo(), newFakeRegistrationRepo()
	s := newTestReconciliationService(recs, regs)
	recID, regID := seedPartialFailure(t, recs, regs)

	rec, err := s.Retry(context.Background(), recID)
	require.NoError(t, err)
	require.NotNil(t, rec.ResolvedAt)
	assert.Equal(t, 1, rec.Attempts)
	assert.Equal(t, domain.RegistrationPaid, regs.status(regID))

	open, total, err := s.ListOpen(context.Background(), domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, open)
	assert.Zero(t, total)

	// Retrying a resolved record is a no-op.
	again, err := s.Retry(context.Background(), recID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Attempts)
}

func TestReconciliationService_Retry_FailsAgain(t *testing.T) {
	recs, regs := newFakeReconciliationRepo(), newFakeRegistrationRepo()
	s := newTestReconciliationService(recs, regs)
	recID, regID := seedPartialFailure(t, recs, regs)
	regs.markPaidErr = errors.New("still locked")

	rec, err := s.Retry(context.Background(), recID)
	assert.Nil(t, rec)
	var wf *domain.WorkflowError
	require.ErrorAs(t, err, &wf)
	assert.Equal(t, domain.KindPersistence, wf.Kind)
	assert.Equal(t, domain.RegistrationPending, regs.status(regID))

	stored, err := recs.GetByID(context.Background(), recID)
	require.NoError(t, err)
	assert.Nil(t, stored.ResolvedAt)
	assert.Equal(t, 1, stored.Attempts)
	assert.Equal(t, "still locked", stored.Reason)
}

func TestReconciliationService_Retry_NotFound(t *testing.T) {
	s := newTestReconciliationService(newFakeReconciliationRepo(), newFakeRegistrationRepo())

	_, err := s.Retry(context.Background(), "rec-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var wf *domain.WorkflowError
	require.ErrorAs(t, err, &wf)
	assert.Equal(t, domain.KindNotFound, wf.Kind)
}

func TestReconciliationService_ListOpen_Paginates(t *testing.T) {
	recs, regs := newFakeReconciliationRepo(), newFakeRegistrationRepo()
	s := newTestReconciliationService(recs, regs)
	for i := 0; i < 3; i++ {
		seedPartialFailure(t, recs, regs)
	}

	page, total, err := s.ListOpen(context.Background(), domain.PaginationParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "rec-3", page[0].ID)
}
