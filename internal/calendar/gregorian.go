package calendar

import "time"

// DateLayout is the layout used for Gregorian dates on the wire.
const DateLayout = "2006-01-02"

// secondsPerDay is the length of a civil day in Unix time.
const secondsPerDay = 86400

// ParseDateString parses a date string in YYYY-MM-DD format.
func ParseDateString(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// civil drops the clock and zone of t, keeping the calendar date it shows
// in its own location.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dayNumber counts days from 1970-01-01 to a civil date (midnight UTC).
func dayNumber(t time.Time) int {
	return int(floorDiv64(t.Unix(), secondsPerDay))
}

// fromDayNumber is the inverse of dayNumber.
func fromDayNumber(n int) time.Time {
	return time.Unix(int64(n)*secondsPerDay, 0).UTC()
}

// DaysBetween returns the signed number of civil days from a to b.
// Time of day is ignored, which keeps the result exact across DST changes.
func DaysBetween(a, b time.Time) int {
	return dayNumber(civil(b)) - dayNumber(civil(a))
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorDiv(a, b int) int {
	return int(floorDiv64(int64(a), int64(b)))
}
