package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"classregistration/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	events []*domain.Event
	err    error // if set, every call returns this error

	lastFrom  time.Time
	lastLimit int
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*domain.Event, error) {
	f.lastFrom, f.lastLimit = from, limit
	if f.err != nil {
		return nil, f.err
	}
	out := []*domain.Event{}
	for _, e := range f.events {
		if !e.Date.Before(from) && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeRegistrationRepo is an in-memory RegistrationRepository for tests.
type fakeRegistrationRepo struct {
	mu          sync.Mutex
	byID        map[string]*domain.Registration
	nextID      int
	createErr   error
	getErr      error
	markPaidErr error
	markCalls   int
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{byID: make(map[string]*domain.Registration), nextID: 1}
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, r *domain.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	r.ID = fmt.Sprintf("reg-%d", f.nextID)
	f.nextID++
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRegistrationRepo) MarkPaid(ctx context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markCalls++
	if f.markPaidErr != nil {
		return f.markPaidErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Status = domain.RegistrationPaid
	r.UpdatedAt = at
	return nil
}

func (f *fakeRegistrationRepo) status(id string) domain.RegistrationStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id].Status
}

// fakePaymentRepo is an in-memory PaymentRepository for tests.
type fakePaymentRepo struct {
	byID      map[string]*domain.Payment
	nextID    int
	createErr error
	getErr    error
	creates   int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byID: make(map[string]*domain.Payment), nextID: 1}
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.RegistrationID == p.RegistrationID {
			return domain.ErrDuplicatePayment
		}
	}
	p.ID = fmt.Sprintf("pay-%d", f.nextID)
	f.nextID++
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePaymentRepo) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.Payment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, p := range f.byID {
		if p.RegistrationID == registrationID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeReconciliationRepo is an in-memory ReconciliationRepository for tests.
type fakeReconciliationRepo struct {
	byID      map[string]*domain.PaymentReconciliation
	order     []string
	nextID    int
	createErr error
}

func newFakeReconciliationRepo() *fakeReconciliationRepo {
	return &fakeReconciliationRepo{byID: make(map[string]*domain.PaymentReconciliation), nextID: 1}
}

func (f *fakeReconciliationRepo) Create(ctx context.Context, rec *domain.PaymentReconciliation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.RegistrationID == rec.RegistrationID && existing.ResolvedAt == nil {
			return domain.ErrReconciliationOpen
		}
	}
	rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.nextID++
	cp := *rec
	f.byID[rec.ID] = &cp
	f.order = append(f.order, rec.ID)
	return nil
}

func (f *fakeReconciliationRepo) GetByID(ctx context.Context, id string) (*domain.PaymentReconciliation, error) {
	rec, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeReconciliationRepo) ListOpen(ctx context.Context, params domain.PaginationParams) ([]*domain.PaymentReconciliation, int, error) {
	var open []*domain.PaymentReconciliation
	for _, id := range f.order {
		if rec := f.byID[id]; rec.ResolvedAt == nil {
			open = append(open, rec)
		}
	}
	total := len(open)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return open[start:end], total, nil
}

func (f *fakeReconciliationRepo) RecordAttempt(ctx context.Context, id, reason string, at time.Time) error {
	rec, ok := f.byID[id]
	if !ok || rec.ResolvedAt != nil {
		return domain.ErrNotFound
	}
	rec.Attempts++
	rec.Reason = reason
	rec.UpdatedAt = at
	return nil
}

func (f *fakeReconciliationRepo) MarkResolved(ctx context.Context, id string, at time.Time) error {
	rec, ok := f.byID[id]
	if !ok || rec.ResolvedAt != nil {
		return domain.ErrNotFound
	}
	rec.Attempts++
	rec.ResolvedAt = &at
	rec.UpdatedAt = at
	return nil
}

func (f *fakeReconciliationRepo) open() []*domain.PaymentReconciliation {
	recs, _, _ := f.ListOpen(context.Background(), domain.PaginationParams{Page: 1, PageSize: 100})
	return recs
}

// fakeEmailService records confirmations instead of sending them.
type fakeEmailService struct {
	sent []*domain.PaymentConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendPaymentConfirmation(ctx context.Context, data *domain.PaymentConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
