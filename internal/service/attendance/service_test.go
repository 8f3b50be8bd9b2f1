package attendance

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/holiday"
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

type fakeRecordRepo struct {
	records map[attendance.RecordID]attendance.Record
	nextID  int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[attendance.RecordID]attendance.Record{}}
}

func (r *fakeRecordRepo) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	r.nextID++
	rec.ID = attendance.RecordID(fmt.Sprintf("rec-%d", r.nextID))
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
	day = attendance.DayOf(day)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(day) {
			out := rec
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeRecordRepo) Update(ctx context.Context, rec attendance.Record) error {
	if _, ok := r.records[rec.ID]; !ok {
		return attendance.ErrRecordNotFound
	}
	r.records[rec.ID] = rec
	return nil
}

func (r *fakeRecordRepo) List(ctx context.Context, filter attendance.ListRecordsFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
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
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
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

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (r *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.holidays = append(r.holidays, h)
	return h, nil
}

func (r *fakeHolidayRepo) ListActiveOn(ctx context.Context, day time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range r.holidays {
		if h.Covers(day) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeHolidayRepo) List(ctx context.Context) ([]holiday.Holiday, error) {
	return r.holidays, nil
}

type notifyCall struct {
	To   ref.EmployeeID
	Type notification.Type
}

type fakeNotificationService struct {
	calls []notifyCall
}

func (s *fakeNotificationService) Notify(ctx context.Context, to ref.EmployeeID, typ notification.Type, message string) error {
	s.calls = append(s.calls, notifyCall{To: to, Type: typ})
	return nil
}

func (s *fakeNotificationService) ListLogs(ctx context.Context, filter notification.ListFilter) (notification.ListResponse, error) {
	return notification.ListResponse{}, nil
}

type attendanceFixture struct {
	svc           attendance.Service
	records       *fakeRecordRepo
	exceptions    *fakeExceptionRepo
	holidays      *fakeHolidayRepo
	notifications *fakeNotificationService
}

func newAttendanceFixture(cfg Config) attendanceFixture {
	records := newFakeRecordRepo()
	exceptions := newFakeExceptionRepo()
	holidays := &fakeHolidayRepo{}
	notifications := &fakeNotificationService{}

	return attendanceFixture{
		svc:           NewAttendanceService(fakeTxRunner{}, records, exceptions, holidays, notifications, cfg),
		records:       records,
		exceptions:    exceptions,
		holidays:      holidays,
		notifications: notifications,
	}
}

func punchRequest(employeeID string, typ attendance.PunchType, hour, minute int) attendance.RecordPunchRequest {
	return attendance.RecordPunchRequest{
		EmployeeID: employeeID,
		PunchType:  string(typ),
		Timestamp:  time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC).Format(time.RFC3339),
	}
}

func TestRecordPunch_DayLedger(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(Config{DefaultReviewer: "reviewer-1"})

	first, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 9, 0))
	require.NoError(t, err)

	second, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchOut, 13, 0))
	require.NoError(t, err)

	// Same employee, same day: one record.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 240, second.TotalWorkMinutes)
	assert.False(t, second.HasMissedPunch)
	assert.Len(t, f.records.records, 1)
}

func TestRecordPunch_TrailingInRaisesOneException(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(Config{DefaultReviewer: "reviewer-1"})

	_, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 9, 0))
	require.NoError(t, err)
	_, err = f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchOut, 13, 0))
	require.NoError(t, err)
	resp, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 14, 0))
	require.NoError(t, err)

	assert.Equal(t, 240, resp.TotalWorkMinutes)
	assert.True(t, resp.HasMissedPunch)
	require.Len(t, resp.ExceptionIDs, 1)

	exc := f.exceptions.exceptions[timeexception.ExceptionID(resp.ExceptionIDs[0])]
	assert.Equal(t, timeexception.KindMissedPunch, exc.Kind)
	assert.Equal(t, timeexception.StatusOpen, exc.Status)
	assert.Equal(t, ref.EmployeeID("reviewer-1"), exc.AssignedTo)

	// The reviewer hears about each raise; the 09:00 IN raised a
	// provisional exception later withdrawn by the 13:00 OUT.
	require.Len(t, f.notifications.calls, 2)
	assert.Equal(t, notification.TypeExceptionRaised, f.notifications.calls[0].Type)
	assert.Equal(t, notification.TypeExceptionRaised, f.notifications.calls[1].Type)
}

func TestRecordPunch_CompleteDayLeavesNoExceptions(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(Config{DefaultReviewer: "reviewer-1", StandardWorkMinutes: 480})

	_, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 9, 0))
	require.NoError(t, err)
	resp, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchOut, 17, 0))
	require.NoError(t, err)

	// The provisional exception from the open 09:00 IN is withdrawn once
	// the 17:00 OUT completes the pair.
	assert.Equal(t, 480, resp.TotalWorkMinutes)
	assert.False(t, resp.HasMissedPunch)
	assert.Empty(t, resp.ExceptionIDs)
	assert.Empty(t, f.exceptions.exceptions)
}

func TestRecordPunch_SplitShiftWithdrawsShortTime(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(Config{DefaultReviewer: "reviewer-1", StandardWorkMinutes: 480})

	_, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 9, 0))
	require.NoError(t, err)
	midday, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchOut, 12, 0))
	require.NoError(t, err)

	// 180 of 480 minutes at midday: one SHORT_TIME exception so far.
	require.Len(t, midday.ExceptionIDs, 1)
	exc := f.exceptions.exceptions[timeexception.ExceptionID(midday.ExceptionIDs[0])]
	assert.Equal(t, timeexception.KindShortTime, exc.Kind)

	_, err = f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 13, 0))
	require.NoError(t, err)
	resp, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchOut, 18, 0))
	require.NoError(t, err)

	// The afternoon pair lifts the total to the standard; nothing remains.
	assert.Equal(t, 480, resp.TotalWorkMinutes)
	assert.Empty(t, resp.ExceptionIDs)
	assert.Empty(t, f.exceptions.exceptions)
}

func TestRecordPunch_ReviewedExceptionIsNeverWithdrawn(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(Config{DefaultReviewer: "reviewer-1"})

	first, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 9, 0))
	require.NoError(t, err)
	require.Len(t, first.ExceptionIDs, 1)

	// A reviewer picks the exception up before the matching OUT arrives.
	excID := timeexception.ExceptionID(first.ExceptionIDs[0])
	exc := f.exceptions.exceptions[excID]
	exc.Status = timeexception.StatusPending
	require.NoError(t, f.exceptions.Update(ctx, exc))

	resp, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchOut, 17, 0))
	require.NoError(t, err)

	assert.False(t, resp.HasMissedPunch)
	require.Len(t, resp.ExceptionIDs, 1)
	assert.Equal(t, excID.String(), resp.ExceptionIDs[0])
	assert.Contains(t, f.exceptions.exceptions, excID)
}

func TestRecompute_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(Config{DefaultReviewer: "reviewer-1"})

	_, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 9, 0))
	require.NoError(t, err)
	resp, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 14, 0))
	require.NoError(t, err)
	require.Len(t, resp.ExceptionIDs, 2)

	// Recomputing an unchanged sequence raises nothing new.
	again, err := f.svc.Recompute(ctx, attendance.RecordID(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, resp.TotalWorkMinutes, again.TotalWorkMinutes)
	assert.Len(t, again.ExceptionIDs, 2)
	assert.Len(t, f.exceptions.exceptions, 2)
}

func TestRecordPunch_RejectsOutOfOrder(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(Config{DefaultReviewer: "reviewer-1"})

	_, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 9, 0))
	require.NoError(t, err)

	_, err = f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchOut, 8, 0))
	assert.ErrorIs(t, err, attendance.ErrPunchOutOfOrder)
}

func TestRecordPunch_RejectsFutureTimestamp(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(Config{DefaultReviewer: "reviewer-1"})

	req := attendance.RecordPunchRequest{
		EmployeeID: "emp-1",
		PunchType:  "IN",
		Timestamp:  time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
	}
	_, err := f.svc.RecordPunch(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrFutureTimestamp)
}

func TestRecordPunch_ShortTimeOnWorkingDay(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(Config{DefaultReviewer: "reviewer-1", StandardWorkMinutes: 480})

	_, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 9, 0))
	require.NoError(t, err)
	resp, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchOut, 12, 0))
	require.NoError(t, err)

	require.Len(t, resp.ExceptionIDs, 1)
	exc := f.exceptions.exceptions[timeexception.ExceptionID(resp.ExceptionIDs[0])]
	assert.Equal(t, timeexception.KindShortTime, exc.Kind)
}

func TestRecordPunch_NoShortTimeOnHoliday(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(Config{DefaultReviewer: "reviewer-1", StandardWorkMinutes: 480})
	f.holidays.holidays = append(f.holidays.holidays, holiday.Holiday{
		Type:      holiday.TypeNational,
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Name:      "Independence Day",
		Active:    true,
	})

	_, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchIn, 9, 0))
	require.NoError(t, err)
	resp, err := f.svc.RecordPunch(ctx, punchRequest("emp-1", attendance.PunchOut, 12, 0))
	require.NoError(t, err)

	assert.Empty(t, resp.ExceptionIDs)
}

func TestRecordPunch_ValidatesInput(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(Config{DefaultReviewer: "reviewer-1"})

	_, err := f.svc.RecordPunch(ctx, attendance.RecordPunchRequest{
		EmployeeID: "",
		PunchType:  "SIDEWAYS",
		Timestamp:  "not-a-time",
	})
	require.Error(t, err)
	assert.Empty(t, f.records.records)
}
