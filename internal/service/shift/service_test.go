package shift

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/notification"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/ref"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/shift"
	"github.com/hrmsuite/time-management-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeShiftRepo struct {
	assignments map[shift.AssignmentID]shift.Assignment
	nextID      int
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{assignments: map[shift.AssignmentID]shift.Assignment{}}
}

func (r *fakeShiftRepo) Create(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	r.nextID++
	a.ID = shift.AssignmentID(fmt.Sprintf("assign-%d", r.nextID))
	r.assignments[a.ID] = a
	return a, nil
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id shift.AssignmentID) (shift.Assignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return shift.Assignment{}, shift.ErrAssignmentNotFound
	}
	return a, nil
}

func (r *fakeShiftRepo) Update(ctx context.Context, a shift.Assignment) error {
	if _, ok := r.assignments[a.ID]; !ok {
		return shift.ErrAssignmentNotFound
	}
	r.assignments[a.ID] = a
	return nil
}

func (r *fakeShiftRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]shift.Assignment, error) {
	var out []shift.Assignment
	for _, a := range r.assignments {
		if a.Status != shift.StatusApproved {
			continue
		}
		end, ok := a.End.Date()
		if !ok {
			continue
		}
		if end.Before(from) || end.After(to) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeShiftRepo) List(ctx context.Context, filter shift.ListFilter) ([]shift.Assignment, int64, error) {
	var out []shift.Assignment
	for _, a := range r.assignments {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

type fakeNotificationService struct {
	calls []notification.Type
	to    []ref.EmployeeID
}

func (s *fakeNotificationService) Notify(ctx context.Context, to ref.EmployeeID, typ notification.Type, message string) error {
	s.calls = append(s.calls, typ)
	s.to = append(s.to, to)
	return nil
}

func (s *fakeNotificationService) ListLogs(ctx context.Context, filter notification.ListFilter) (notification.ListResponse, error) {
	return notification.ListResponse{}, nil
}

var testToday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type shiftFixture struct {
	svc           shift.Service
	repo          *fakeShiftRepo
	notifications *fakeNotificationService
}

func newShiftFixture() shiftFixture {
	repo := newFakeShiftRepo()
	notifications := &fakeNotificationService{}

	svc := NewShiftService(fakeTxRunner{}, repo, notifications, Config{HRRecipient: "hr-1"})
	svc.(*ServiceImpl).now = func() time.Time { return testToday.Add(10 * time.Hour) }

	return shiftFixture{svc: svc, repo: repo, notifications: notifications}
}

// seed stores an assignment for emp-1 ending the given number of days from
// the pinned test day.
func (f shiftFixture) seed(t *testing.T, status shift.Status, endInDays int) shift.AssignmentID {
	t.Helper()
	a, err := f.repo.Create(context.Background(), shift.Assignment{
		Binding:   shift.Binding{EmployeeID: "emp-1"},
		ShiftID:   "shift-1",
		StartDate: testToday.AddDate(0, 0, -30),
		End:       shift.Until(testToday.AddDate(0, 0, endInDays)),
		Status:    status,
	})
	require.NoError(t, err)
	return a.ID
}

func TestScanExpiring_ClassifiesUrgency(t *testing.T) {
	ctx := context.Background()
	f := newShiftFixture()
	f.seed(t, shift.StatusApproved, 2)
	f.seed(t, shift.StatusApproved, 5)
	f.seed(t, shift.StatusApproved, 10)

	resp, err := f.svc.ScanExpiring(ctx, shift.ScanExpiringRequest{DaysBeforeExpiry: 14})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 1, resp.Summary.HighUrgency)
	assert.Equal(t, 1, resp.Summary.MediumUrgency)
	assert.Equal(t, 1, resp.Summary.LowUrgency)
}

func TestScanExpiring_WindowExcludesLaterEndDates(t *testing.T) {
	ctx := context.Background()
	f := newShiftFixture()
	f.seed(t, shift.StatusApproved, 2)
	f.seed(t, shift.StatusApproved, 10)

	resp, err := f.svc.ScanExpiring(ctx, shift.ScanExpiringRequest{DaysBeforeExpiry: 7})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 1, resp.Summary.HighUrgency)
	assert.Equal(t, 0, resp.Summary.LowUrgency)
}

func TestScanExpiring_IgnoresNonApproved(t *testing.T) {
	ctx := context.Background()
	f := newShiftFixture()
	f.seed(t, shift.StatusCancelled, 2)
	f.seed(t, shift.StatusPending, 3)
	f.seed(t, shift.StatusExpired, 4)

	resp, err := f.svc.ScanExpiring(ctx, shift.ScanExpiringRequest{DaysBeforeExpiry: 7})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Count)
}

func TestScanExpiring_RejectsWindowOutOfRange(t *testing.T) {
	ctx := context.Background()
	f := newShiftFixture()

	for _, days := range []int{0, -1, 31} {
		_, err := f.svc.ScanExpiring(ctx, shift.ScanExpiringRequest{DaysBeforeExpiry: days})

		var validationErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &validationErrs, "days=%d", days)
	}
}

func TestScanExpiring_BoundaryDays(t *testing.T) {
	ctx := context.Background()
	f := newShiftFixture()
	f.seed(t, shift.StatusApproved, 1)

	resp, err := f.svc.ScanExpiring(ctx, shift.ScanExpiringRequest{DaysBeforeExpiry: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	resp, err = f.svc.ScanExpiring(ctx, shift.ScanExpiringRequest{DaysBeforeExpiry: 30})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
}

func TestNotifyExpiring_PerAssignmentPlusSummary(t *testing.T) {
	ctx := context.Background()
	f := newShiftFixture()
	f.seed(t, shift.StatusApproved, 2)
	f.seed(t, shift.StatusApproved, 5)

	resp, err := f.svc.NotifyExpiring(ctx, shift.ScanExpiringRequest{DaysBeforeExpiry: 7})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)

	require.Len(t, f.notifications.calls, 3)
	assert.Equal(t, notification.TypeShiftExpiring, f.notifications.calls[0])
	assert.Equal(t, notification.TypeShiftExpiring, f.notifications.calls[1])
	assert.Equal(t, notification.TypeShiftExpirySummary, f.notifications.calls[2])
	assert.Equal(t, ref.EmployeeID("hr-1"), f.notifications.to[2])
}

func TestCreateAssignment_RequiresExactlyOneBinding(t *testing.T) {
	ctx := context.Background()
	f := newShiftFixture()

	employee := "emp-1"
	department := "dept-1"
	_, err := f.svc.CreateAssignment(ctx, shift.CreateAssignmentRequest{
		EmployeeID:   &employee,
		DepartmentID: &department,
		ShiftID:      "shift-1",
		StartDate:    "2026-03-01",
	})
	require.Error(t, err)

	_, err = f.svc.CreateAssignment(ctx, shift.CreateAssignmentRequest{
		ShiftID:   "shift-1",
		StartDate: "2026-03-01",
	})
	require.Error(t, err)
}

func TestCreateAssignment_StartsPending(t *testing.T) {
	ctx := context.Background()
	f := newShiftFixture()

	employee := "emp-1"
	end := "2026-06-30"
	resp, err := f.svc.CreateAssignment(ctx, shift.CreateAssignmentRequest{
		EmployeeID: &employee,
		ShiftID:    "shift-1",
		StartDate:  "2026-03-01",
		EndDate:    &end,
	})
	require.NoError(t, err)

	assert.Equal(t, string(shift.StatusPending), resp.Status)
	require.NotNil(t, resp.EndDate)
	assert.Equal(t, "2026-06-30", *resp.EndDate)
}

func TestLifecycle_ApproveCancelExpire(t *testing.T) {
	ctx := context.Background()
	f := newShiftFixture()
	id := f.seed(t, shift.StatusPending, -1)

	approved, err := f.svc.Approve(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(shift.StatusApproved), approved.Status)

	// End date already passed, so expiry is permitted.
	expired, err := f.svc.MarkExpired(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(shift.StatusExpired), expired.Status)

	_, err = f.svc.Cancel(ctx, id)
	var transitionErr *shift.TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, shift.StatusExpired, transitionErr.Current)
}

func TestMarkExpired_GuardsFutureEndDate(t *testing.T) {
	ctx := context.Background()
	f := newShiftFixture()
	id := f.seed(t, shift.StatusApproved, 5)

	_, err := f.svc.MarkExpired(ctx, id)
	assert.ErrorIs(t, err, shift.ErrNotYetExpired)
}

func TestMarkExpired_OngoingNeverExpires(t *testing.T) {
	ctx := context.Background()
	f := newShiftFixture()
	a, err := f.repo.Create(ctx, shift.Assignment{
		Binding:   shift.Binding{EmployeeID: "emp-1"},
		ShiftID:   "shift-1",
		StartDate: testToday.AddDate(0, 0, -30),
		End:       shift.Ongoing(),
		Status:    shift.StatusApproved,
	})
	require.NoError(t, err)

	_, err = f.svc.MarkExpired(ctx, a.ID)
	assert.ErrorIs(t, err, shift.ErrNotYetExpired)
}
