package analytics

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

// Range is an inclusive [Start, End] instant range covering a calendar
// period. Start is at 00:00:00.000 and End at 23:59:59.999 of their days.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the millisecond timestamp falls within the range,
// inclusive on both bounds
func (r Range) Contains(tsMillis int64) bool {
	return tsMillis >= r.Start.UnixMilli() && tsMillis <= r.End.UnixMilli()
}

// ResolvePeriod converts a reference date and a period selector into an
// inclusive start/end range in the given location. The time component of the
// reference date is ignored.
//
// day: start and end on the reference date. week: Monday through Sunday of
// the containing week, treating Sunday as weekday 7. month: first through
// last calendar day of the reference date's month.
func ResolvePeriod(date time.Time, period types.PeriodType, loc *time.Location) (Range, error) {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := date.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch period {
	case types.PeriodDay:
		return dayRange(day, day), nil

	case types.PeriodWeek:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		monday := day.AddDate(0, 0, -(weekday - 1))
		sunday := monday.AddDate(0, 0, 6)
		return dayRange(monday, sunday), nil

	case types.PeriodMonth:
		first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		// day 0 of the next month is the last day of this one
		last := time.Date(y, m+1, 0, 0, 0, 0, 0, loc)
		return dayRange(first, last), nil

	default:
		return Range{}, goerr.New("invalid period type", goerr.V("period", period))
	}
}

func dayRange(startDay, endDay time.Time) Range {
	loc := startDay.Location()
	sy, sm, sd := startDay.Date()
	ey, em, ed := endDay.Date()
	return Range{
		Start: time.Date(sy, sm, sd, 0, 0, 0, 0, loc),
		End:   time.Date(ey, em, ed, 23, 59, 59, int(999*time.Millisecond), loc),
	}
}
