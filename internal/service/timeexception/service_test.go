package timeexception

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/timeexception"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeExceptionRepo struct {
	exceptions map[timeexception.ExceptionID]timeexception.Exception
	nextID     int
}

func newFakeExceptionRepo() *fakeExceptionRepo {
	return &fakeExceptionRepo{exceptions: map[timeexception.ExceptionID]timeexception.Exception{}}
}

func (r *fakeExceptionRepo) Create(ctx context.Context, exc timeexception.Exception) (timeexception.Exception, error) {
	r.nextID++
	exc.ID = timeexception.ExceptionID(fmt.Sprintf("exc-%d", r.nextID))
	exc.CreatedAt = time.Now()
	r.exceptions[exc.ID] = exc
	return exc, nil
}

func (r *fakeExceptionRepo) GetByID(ctx context.Context, id timeexception.ExceptionID) (timeexception.Exception, error) {
	exc, ok := r.exceptions[id]
	if !ok {
		return timeexception.Exception{}, timeexception.ErrExceptionNotFound
	}
	return exc, nil
}

func (r *fakeExceptionRepo) Update(ctx context.Context, exc timeexception.Exception) error {
	if _, ok := r.exceptions[exc.ID]; !ok {
		return timeexception.ErrExceptionNotFound
	}
	r.exceptions[exc.ID] = exc
	return nil
}

func (r *fakeExceptionRepo) ListByRecord(ctx context.Context, recordID attendance.RecordID) ([]timeexception.Exception, error) {
	var out []timeexception.Exception
	for _, exc := range r.exceptions {
		if exc.AttendanceRecordID == recordID {
			out = append(out, exc)
		}
	}
	return out, nil
}

func (r *fakeExceptionRepo) Delete(ctx context.Context, id timeexception.ExceptionID) error {
	if _, ok := r.exceptions[id]; !ok {
		return timeexception.ErrExceptionNotFound
	}
	delete(r.exceptions, id)
	return nil
}

func (r *fakeExceptionRepo) List(ctx context.Context, filter timeexception.ListFilter) ([]timeexception.Exception, int64, error) {
	var out []timeexception.Exception
	for _, exc := range r.exceptions {
		out = append(out, exc)
	}
	return out, int64(len(out)), nil
}

type fakeRecordRepo struct {
	records map[attendance.RecordID]attendance.Record
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[attendance.RecordID]attendance.Record{}}
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

type fakeAttendanceService struct {
	recomputed []attendance.RecordID
}

func (s *fakeAttendanceService) RecordPunch(ctx context.Context, req attendance.RecordPunchRequest) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, nil
}

func (s *fakeAttendanceService) Recompute(ctx context.Context, id attendance.RecordID) (attendance.RecordResponse, error) {
	s.recomputed = append(s.recomputed, id)
	return attendance.RecordResponse{ID: id.String()}, nil
}

func (s *fakeAttendanceService) GetRecord(ctx context.Context, id attendance.RecordID) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, nil
}

func (s *fakeAttendanceService) ListRecords(ctx context.Context, filter attendance.ListRecordsFilter) (attendance.ListRecordsResponse, error) {
	return attendance.ListRecordsResponse{}, nil
}

type fakeNotificationService struct {
	types []notification.Type
}

func (s *fakeNotificationService) Notify(ctx context.Context, to ref.EmployeeID, typ notification.Type, message string) error {
	s.types = append(s.types, typ)
	return nil
}

func (s *fakeNotificationService) ListLogs(ctx context.Context, filter notification.ListFilter) (notification.ListResponse, error) {
	return notification.ListResponse{}, nil
}

type exceptionFixture struct {
	svc        timeexception.Service
	repo       *fakeExceptionRepo
	records    *fakeRecordRepo
	attendance *fakeAttendanceService
}

func newExceptionFixture() exceptionFixture {
	repo := newFakeExceptionRepo()
	records := newFakeRecordRepo()
	attendanceSvc := &fakeAttendanceService{}

	return exceptionFixture{
		svc:        NewExceptionService(fakeTxRunner{}, repo, records, attendanceSvc, &fakeNotificationService{}),
		repo:       repo,
		records:    records,
		attendance: attendanceSvc,
	}
}

func (f exceptionFixture) seed(t *testing.T, kind timeexception.Kind, status timeexception.Status) timeexception.ExceptionID {
	t.Helper()
	exc, err := f.repo.Create(context.Background(), timeexception.Exception{
		EmployeeID:         "emp-1",
		Kind:               kind,
		AttendanceRecordID: "rec-1",
		AssignedTo:         "reviewer-1",
		Status:             status,
	})
	require.NoError(t, err)
	return exc.ID
}

func transitionTo(target timeexception.Status) timeexception.TransitionRequest {
	return timeexception.TransitionRequest{
		TargetStatus: string(target),
		ActorID:      "reviewer-1",
	}
}

func TestTransition_HappyPath(t *testing.T) {
	ctx := context.Background()
	f := newExceptionFixture()
	id := f.seed(t, timeexception.KindMissedPunch, timeexception.StatusOpen)

	for _, target := range []timeexception.Status{
		timeexception.StatusPending,
		timeexception.StatusApproved,
		timeexception.StatusResolved,
	} {
		resp, err := f.svc.Transition(ctx, id, transitionTo(target))
		require.NoError(t, err)
		assert.Equal(t, string(target), resp.Status)
	}
}

func TestTransition_InvalidMoveLeavesStatusUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newExceptionFixture()
	id := f.seed(t, timeexception.KindMissedPunch, timeexception.StatusRejected)

	_, err := f.svc.Transition(ctx, id, transitionTo(timeexception.StatusResolved))

	var transitionErr *timeexception.TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, timeexception.StatusRejected, transitionErr.Current)
	assert.Equal(t, timeexception.StatusResolved, transitionErr.Attempted)

	exc, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, timeexception.StatusRejected, exc.Status)
}

func TestTransition_EscalationLoopReassigns(t *testing.T) {
	ctx := context.Background()
	f := newExceptionFixture()
	id := f.seed(t, timeexception.KindMissedPunch, timeexception.StatusPending)

	_, err := f.svc.Transition(ctx, id, transitionTo(timeexception.StatusEscalated))
	require.NoError(t, err)

	reassign := transitionTo(timeexception.StatusPending)
	senior := "senior-1"
	reassign.AssignTo = &senior

	resp, err := f.svc.Transition(ctx, id, reassign)
	require.NoError(t, err)
	assert.Equal(t, string(timeexception.StatusPending), resp.Status)
	assert.Equal(t, "senior-1", resp.AssignedTo)
	assert.Equal(t, 1, resp.EscalationCount)
}

func TestTransition_EscalationCap(t *testing.T) {
	ctx := context.Background()
	f := newExceptionFixture()
	id := f.seed(t, timeexception.KindMissedPunch, timeexception.StatusPending)

	for i := 0; i < timeexception.MaxEscalations; i++ {
		_, err := f.svc.Transition(ctx, id, transitionTo(timeexception.StatusEscalated))
		require.NoError(t, err)
		_, err = f.svc.Transition(ctx, id, transitionTo(timeexception.StatusPending))
		require.NoError(t, err)
	}

	_, err := f.svc.Transition(ctx, id, transitionTo(timeexception.StatusEscalated))
	assert.ErrorIs(t, err, timeexception.ErrEscalationExceeded)
}

func TestTransition_AmendingKindTriggersRecompute(t *testing.T) {
	ctx := context.Background()
	f := newExceptionFixture()
	id := f.seed(t, timeexception.KindManualAdjustment, timeexception.StatusPending)

	_, err := f.svc.Transition(ctx, id, transitionTo(timeexception.StatusApproved))
	require.NoError(t, err)

	require.Len(t, f.attendance.recomputed, 1)
	assert.Equal(t, attendance.RecordID("rec-1"), f.attendance.recomputed[0])
}

func TestTransition_NonAmendingKindSkipsRecompute(t *testing.T) {
	ctx := context.Background()
	f := newExceptionFixture()
	id := f.seed(t, timeexception.KindMissedPunch, timeexception.StatusPending)

	_, err := f.svc.Transition(ctx, id, transitionTo(timeexception.StatusApproved))
	require.NoError(t, err)

	assert.Empty(t, f.attendance.recomputed)
}

func TestTransition_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newExceptionFixture()

	_, err := f.svc.Transition(ctx, "missing", transitionTo(timeexception.StatusPending))
	assert.ErrorIs(t, err, timeexception.ErrExceptionNotFound)
}

func TestCreateManual_AttachesToRecord(t *testing.T) {
	ctx := context.Background()
	f := newExceptionFixture()
	f.records.records["rec-1"] = attendance.Record{ID: "rec-1", EmployeeID: "emp-1"}

	resp, err := f.svc.CreateManual(ctx, timeexception.CreateManualRequest{
		EmployeeID:         "emp-1",
		Kind:               string(timeexception.KindManualAdjustment),
		AttendanceRecordID: "rec-1",
		AssignedTo:         "reviewer-1",
	})
	require.NoError(t, err)
	assert.Equal(t, string(timeexception.StatusOpen), resp.Status)

	rec := f.records.records["rec-1"]
	require.Len(t, rec.ExceptionIDs, 1)
	assert.Equal(t, resp.ID, rec.ExceptionIDs[0])
}

func TestCreateManual_RecordMustExist(t *testing.T) {
	ctx := context.Background()
	f := newExceptionFixture()

	_, err := f.svc.CreateManual(ctx, timeexception.CreateManualRequest{
		EmployeeID:         "emp-1",
		Kind:               string(timeexception.KindManualAdjustment),
		AttendanceRecordID: "rec-missing",
		AssignedTo:         "reviewer-1",
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
