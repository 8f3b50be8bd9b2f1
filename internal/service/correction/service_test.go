package correction

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/correction"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCorrectionRepo struct {
	requests map[correction.RequestID]correction.Request
	nextID   int
}

func newFakeCorrectionRepo() *fakeCorrectionRepo {
	return &fakeCorrectionRepo{requests: map[correction.RequestID]correction.Request{}}
}

func (r *fakeCorrectionRepo) Create(ctx context.Context, req correction.Request) (correction.Request, error) {
	r.nextID++
	req.ID = correction.RequestID(fmt.Sprintf("req-%d", r.nextID))
	r.requests[req.ID] = req
	return req, nil
}

func (r *fakeCorrectionRepo) GetByID(ctx context.Context, id correction.RequestID) (correction.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return correction.Request{}, correction.ErrRequestNotFound
	}
	return req, nil
}

func (r *fakeCorrectionRepo) Update(ctx context.Context, req correction.Request) error {
	if _, ok := r.requests[req.ID]; !ok {
		return correction.ErrRequestNotFound
	}
	r.requests[req.ID] = req
	return nil
}

func (r *fakeCorrectionRepo) CountOpenByRecord(ctx context.Context, recordID attendance.RecordID, exclude correction.RequestID) (int, error) {
	n := 0
	for _, req := range r.requests {
		if req.AttendanceRecord != recordID || req.ID == exclude {
			continue
		}
		if !req.Status.IsTerminal() {
			n++
		}
	}
	return n, nil
}

func (r *fakeCorrectionRepo) List(ctx context.Context, filter correction.ListFilter) ([]correction.Request, int64, error) {
	var out []correction.Request
	for _, req := range r.requests {
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

type fakeRecordRepo struct {
	records map[attendance.RecordID]attendance.Record
}

func (r *fakeRecordRepo) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *fakeRecordRepo) GetByID(ctx context.Context, id attendance.RecordID) (attendance.Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (r *fakeRecordRepo) GetByEmployeeAndDate(ctx context.Context, employeeID ref.EmployeeID, day time.Time) (*attendance.Record, error) {
	return nil, nil
}

func (r *fakeRecordRepo) Update(ctx context.Context, rec attendance.Record) error {
	r.records[rec.ID] = rec
	return nil
}

func (r *fakeRecordRepo) List(ctx context.Context, filter attendance.ListRecordsFilter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

type fakeNotificationService struct{}

func (fakeNotificationService) Notify(ctx context.Context, to ref.EmployeeID, typ notification.Type, message string) error {
	return nil
}

func (fakeNotificationService) ListLogs(ctx context.Context, filter notification.ListFilter) (notification.ListResponse, error) {
	return notification.ListResponse{}, nil
}

type correctionFixture struct {
	svc     correction.Service
	repo    *fakeCorrectionRepo
	records *fakeRecordRepo
}

func newCorrectionFixture() correctionFixture {
	repo := newFakeCorrectionRepo()
	records := &fakeRecordRepo{records: map[attendance.RecordID]attendance.Record{
		"rec-1": {ID: "rec-1", EmployeeID: "emp-1", FinalisedForPayroll: true},
	}}

	return correctionFixture{
		svc:     NewCorrectionService(fakeTxRunner{}, repo, records, fakeNotificationService{}),
		repo:    repo,
		records: records,
	}
}

func (f correctionFixture) finalised(t *testing.T) bool {
	t.Helper()
	rec, err := f.records.GetByID(context.Background(), "rec-1")
	require.NoError(t, err)
	return rec.FinalisedForPayroll
}

func submitRequest() correction.SubmitRequest {
	return correction.SubmitRequest{
		AttendanceRecordID: "rec-1",
		EmployeeID:         "emp-1",
	}
}

func TestSubmit_BlocksFinalisation(t *testing.T) {
	ctx := context.Background()
	f := newCorrectionFixture()

	resp, err := f.svc.Submit(ctx, submitRequest())
	require.NoError(t, err)

	assert.Equal(t, string(correction.StatusSubmitted), resp.Status)
	assert.False(t, f.finalised(t))
}

func TestSubmit_SecondRequestIsIdempotentOnFlag(t *testing.T) {
	ctx := context.Background()
	f := newCorrectionFixture()

	_, err := f.svc.Submit(ctx, submitRequest())
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, submitRequest())
	require.NoError(t, err)

	assert.False(t, f.finalised(t))
	assert.Len(t, f.repo.requests, 2)
}

func TestSubmit_RecordMustExist(t *testing.T) {
	ctx := context.Background()
	f := newCorrectionFixture()

	_, err := f.svc.Submit(ctx, correction.SubmitRequest{
		AttendanceRecordID: "rec-missing",
		EmployeeID:         "emp-1",
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestResolve_LastOpenRequestRestoresFinalisation(t *testing.T) {
	ctx := context.Background()
	f := newCorrectionFixture()

	first, err := f.svc.Submit(ctx, submitRequest())
	require.NoError(t, err)
	second, err := f.svc.Submit(ctx, submitRequest())
	require.NoError(t, err)

	_, err = f.svc.Resolve(ctx, correction.RequestID(first.ID), correction.ResolveRequest{Decision: "APPROVED"})
	require.NoError(t, err)
	assert.False(t, f.finalised(t), "one dispute still open")

	_, err = f.svc.Resolve(ctx, correction.RequestID(second.ID), correction.ResolveRequest{Decision: "REJECTED"})
	require.NoError(t, err)
	assert.True(t, f.finalised(t))
}

func TestResolve_OrderDoesNotMatter(t *testing.T) {
	ctx := context.Background()
	f := newCorrectionFixture()

	first, err := f.svc.Submit(ctx, submitRequest())
	require.NoError(t, err)
	second, err := f.svc.Submit(ctx, submitRequest())
	require.NoError(t, err)

	_, err = f.svc.Resolve(ctx, correction.RequestID(second.ID), correction.ResolveRequest{Decision: "REJECTED"})
	require.NoError(t, err)
	assert.False(t, f.finalised(t))

	_, err = f.svc.Resolve(ctx, correction.RequestID(first.ID), correction.ResolveRequest{Decision: "APPROVED"})
	require.NoError(t, err)
	assert.True(t, f.finalised(t))
}

func TestResolve_AlreadyTerminalFails(t *testing.T) {
	ctx := context.Background()
	f := newCorrectionFixture()

	resp, err := f.svc.Submit(ctx, submitRequest())
	require.NoError(t, err)
	id := correction.RequestID(resp.ID)

	_, err = f.svc.Resolve(ctx, id, correction.ResolveRequest{Decision: "APPROVED"})
	require.NoError(t, err)

	_, err = f.svc.Resolve(ctx, id, correction.ResolveRequest{Decision: "REJECTED"})
	var transitionErr *correction.TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, correction.StatusApproved, transitionErr.Current)
}

func TestResolve_RejectsUnknownDecision(t *testing.T) {
	ctx := context.Background()
	f := newCorrectionFixture()

	resp, err := f.svc.Submit(ctx, submitRequest())
	require.NoError(t, err)

	_, err = f.svc.Resolve(ctx, correction.RequestID(resp.ID), correction.ResolveRequest{Decision: "MAYBE"})
	require.Error(t, err)
}

func TestReviewAndEscalateFlow(t *testing.T) {
	ctx := context.Background()
	f := newCorrectionFixture()

	resp, err := f.svc.Submit(ctx, submitRequest())
	require.NoError(t, err)
	id := correction.RequestID(resp.ID)

	reviewed, err := f.svc.Review(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(correction.StatusInReview), reviewed.Status)

	escalated, err := f.svc.Escalate(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(correction.StatusEscalated), escalated.Status)

	// An escalated dispute still blocks finalisation.
	assert.False(t, f.finalised(t))

	_, err = f.svc.Resolve(ctx, id, correction.ResolveRequest{Decision: "APPROVED"})
	require.NoError(t, err)
	assert.True(t, f.finalised(t))
}
