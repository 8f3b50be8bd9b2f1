package attendance

import (
	"testing"
	"time"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func punchAt(typ attendance.PunchType, hour, minute int) attendance.Punch {
	return attendance.Punch{
		Type: typ,
		Time: time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC),
	}
}

func TestCompute_PairsConsecutivePunches(t *testing.T) {
	totals := Compute([]attendance.Punch{
		punchAt(attendance.PunchIn, 9, 0),
		punchAt(attendance.PunchOut, 12, 0),
		punchAt(attendance.PunchIn, 13, 0),
		punchAt(attendance.PunchOut, 17, 30),
	})

	assert.Equal(t, 450, totals.WorkMinutes)
	assert.False(t, totals.HasMissedPunch)
	assert.Equal(t, 0, totals.UnmatchedIn)
}

func TestCompute_TrailingInIsMissedPunch(t *testing.T) {
	totals := Compute([]attendance.Punch{
		punchAt(attendance.PunchIn, 9, 0),
		punchAt(attendance.PunchOut, 13, 0),
		punchAt(attendance.PunchIn, 14, 0),
	})

	assert.Equal(t, 240, totals.WorkMinutes)
	assert.True(t, totals.HasMissedPunch)
	assert.Equal(t, 1, totals.UnmatchedIn)
}

func TestCompute_ConsecutiveInsEachCount(t *testing.T) {
	totals := Compute([]attendance.Punch{
		punchAt(attendance.PunchIn, 8, 0),
		punchAt(attendance.PunchIn, 9, 0),
		punchAt(attendance.PunchOut, 10, 0),
	})

	// The first IN has no immediately following OUT; only the second pairs.
	assert.Equal(t, 60, totals.WorkMinutes)
	assert.Equal(t, 1, totals.UnmatchedIn)
}

func TestCompute_StrayOutIsSkipped(t *testing.T) {
	totals := Compute([]attendance.Punch{
		punchAt(attendance.PunchOut, 8, 0),
		punchAt(attendance.PunchIn, 9, 0),
		punchAt(attendance.PunchOut, 11, 0),
	})

	assert.Equal(t, 120, totals.WorkMinutes)
	assert.False(t, totals.HasMissedPunch)
}

func TestCompute_OrdersByTimestamp(t *testing.T) {
	// Punches arrive out of order; the computation sorts before pairing.
	totals := Compute([]attendance.Punch{
		punchAt(attendance.PunchOut, 13, 0),
		punchAt(attendance.PunchIn, 9, 0),
	})

	assert.Equal(t, 240, totals.WorkMinutes)
	assert.False(t, totals.HasMissedPunch)
}

func TestCompute_Empty(t *testing.T) {
	totals := Compute(nil)

	assert.Equal(t, 0, totals.WorkMinutes)
	assert.False(t, totals.HasMissedPunch)
}

func TestCompute_Idempotent(t *testing.T) {
	punches := []attendance.Punch{
		punchAt(attendance.PunchIn, 9, 0),
		punchAt(attendance.PunchOut, 13, 0),
		punchAt(attendance.PunchIn, 14, 0),
	}

	first := Compute(punches)
	second := Compute(punches)

	assert.Equal(t, first, second)
}
