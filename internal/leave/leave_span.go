package leave

import (
	"time"

	leaveerrors "leavedesk/internal/leave/errors"
)

// ComputeSpan returns the inclusive day count of [start, end]. Both dates
// are normalized to midnight UTC before subtraction so time-of-day and
// timezone offsets cannot shift the count by a day.
func ComputeSpan(start, end time.Time) (int, error) {
	s := toUTCDate(start)
	e := toUTCDate(end)

	if e.Before(s) {
		return 0, leaveerrors.ErrInvalidDateRange
	}

	return int(e.Sub(s).Hours()/24) + 1, nil
}

func toUTCDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
