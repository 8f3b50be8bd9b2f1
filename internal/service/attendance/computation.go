package attendance

import (
	"sort"

	"github.com/hrmsuite/time-management-backend-go/internal/domain/attendance"
)

// Totals is the derived output of one computation pass over a punch
// sequence. Running the computation twice on the same sequence yields the
// same Totals.
type Totals struct {
	WorkMinutes    int
	HasMissedPunch bool

	// UnmatchedIn counts IN punches with no immediately following OUT. Each
	// one corresponds to exactly one MISSED_PUNCH exception.
	UnmatchedIn int
}

// Compute pairs consecutive IN/OUT punches in chronological order and sums
// worked minutes. An IN not immediately followed by an OUT, including a
// trailing IN, is a missed punch and contributes no minutes. Stray OUT
// punches with no preceding IN are skipped.
func Compute(punches []attendance.Punch) Totals {
	ordered := make([]attendance.Punch, len(punches))
	copy(ordered, punches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Time.Before(ordered[j].Time)
	})

	var t Totals
	for i := 0; i < len(ordered); {
		if ordered[i].Type != attendance.PunchIn {
			i++
			continue
		}
		if i+1 < len(ordered) && ordered[i+1].Type == attendance.PunchOut {
			t.WorkMinutes += int(ordered[i+1].Time.Sub(ordered[i].Time).Minutes())
			i += 2
			continue
		}
		t.UnmatchedIn++
		i++
	}

	t.HasMissedPunch = t.UnmatchedIn > 0
	return t
}
