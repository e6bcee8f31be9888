// Package calendar converts between the Gregorian calendar and the
// Umm al-Qura variant of the Hijri calendar.
//
// Conversions inside the tabulated range walk a packed month-length table
// from a fixed epoch. Outside that range the package degrades instead of
// failing:
//   - Gregorian dates before the epoch and Hijri years before the table use
//     the arithmetic Islamic calendar (see approx.go).
//   - Hijri years after the table use an alternating 30/29 month pattern.
//
// Every function is pure and safe for concurrent use. Nothing here reads
// the wall clock; see Almanac for the "today" conveniences.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Source identifies which algorithm served a conversion.
type Source int

const (
	// SourceTable means the month-length table answered the query.
	SourceTable Source = iota
	// SourceExtrapolated means the query fell after the table and the
	// alternating 30/29 month pattern was used.
	SourceExtrapolated
	// SourceApproximation means the query fell before the table and the
	// arithmetic Islamic calendar was used.
	SourceApproximation
)

// String returns the lower-case name of the source.
func (s Source) String() string {
	switch s {
	case SourceTable:
		return "table"
	case SourceExtrapolated:
		return "extrapolated"
	case SourceApproximation:
		return "approximation"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// maxEpochDrift bounds how far an epoch may sit from the arithmetic
// calendar's 1 Muharram of the first year. Umm al-Qura and the arithmetic
// calendar never disagree by more than a couple of days.
const maxEpochDrift = 3

var (
	// ErrEmptyTable is returned by New when no year records are given.
	ErrEmptyTable = errors.New("calendar: empty month-length table")

	// ErrInconsistentEpoch is returned by New when the epoch does not fall
	// on 1 Muharram of the first tabulated year.
	ErrInconsistentEpoch = errors.New("calendar: epoch does not match first year")
)

// Calendar bundles a month-length table with the epoch it is anchored to.
// The epoch is 1 Muharram of the first tabulated year. A Calendar is
// immutable once built.
type Calendar struct {
	epoch     time.Time
	epochDay  int
	firstYear int
	years     []YearRecord
	tableDays int
}

// UmmAlQura is the Umm al-Qura calendar for 1356-1500 AH.
var UmmAlQura = MustNew(ummAlQuraEpoch, FirstTabulatedYear, ummAlQuraYears)

// New builds a Calendar whose table starts at firstYear, with epoch as
// 1 Muharram of that year. Only the civil date of epoch is used.
func New(epoch time.Time, firstYear int, years []YearRecord) (*Calendar, error) {
	if len(years) == 0 {
		return nil, ErrEmptyTable
	}
	if firstYear < 1 {
		return nil, fmt.Errorf("calendar: first year must be positive, got %d", firstYear)
	}

	total := 0
	for i, r := range years {
		if r&^recordMask != 0 {
			return nil, fmt.Errorf("calendar: record for year %d has bits beyond month 12: %#x",
				firstYear+i, uint16(r))
		}
		total += r.Days()
	}

	epoch = civil(epoch)
	epochDay := dayNumber(epoch)
	expected := approxToJDN(firstYear, 1, 1) - unixEpochJDN
	if drift := epochDay - expected; drift > maxEpochDrift || drift < -maxEpochDrift {
		return nil, fmt.Errorf("%w: %s is %d days from 1 Muharram %d",
			ErrInconsistentEpoch, epoch.Format(DateLayout), drift, firstYear)
	}

	return &Calendar{
		epoch:     epoch,
		epochDay:  epochDay,
		firstYear: firstYear,
		years:     append([]YearRecord(nil), years...),
		tableDays: total,
	}, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// tables that are known to be valid.
func MustNew(epoch time.Time, firstYear int, years []YearRecord) *Calendar {
	c, err := New(epoch, firstYear, years)
	if err != nil {
		panic(err)
	}
	return c
}

// Epoch returns the Gregorian date of 1 Muharram of the first tabulated year.
func (c *Calendar) Epoch() time.Time {
	return c.epoch
}

// FirstYear returns the first tabulated Hijri year.
func (c *Calendar) FirstYear() int {
	return c.firstYear
}

// LastYear returns the last tabulated Hijri year.
func (c *Calendar) LastYear() int {
	return c.firstYear + len(c.years) - 1
}

// IsTabulated reports whether year is covered by the table.
func (c *Calendar) IsTabulated(year int) bool {
	_, ok := c.record(year)
	return ok
}

// record looks up the table entry for year. The index is bounds-checked
// so that any int is a safe argument.
func (c *Calendar) record(year int) (YearRecord, bool) {
	i := year - c.firstYear
	if i < 0 || i >= len(c.years) {
		return 0, false
	}
	return c.years[i], true
}

// MonthLengths returns the length of each month of year, Muharram first.
// Years outside the table get the alternating 30/29 approximation.
func (c *Calendar) MonthLengths(year int) [12]int {
	if r, ok := c.record(year); ok {
		return r.Lengths()
	}
	return fallbackLengths
}

// DaysInYear returns the number of days in a Hijri year.
func (c *Calendar) DaysInYear(year int) int {
	if r, ok := c.record(year); ok {
		return r.Days()
	}
	return fallbackYearDays
}

// DaysInMonth returns the number of days in a Hijri month. Months outside
// 1..12 report 30.
func (c *Calendar) DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 30
	}
	return c.MonthLengths(year)[month-1]
}

// ToHijri converts the civil date of t to a Hijri date.
func (c *Calendar) ToHijri(t time.Time) HijriDate {
	h, _ := c.ToHijriWithSource(t)
	return h
}

// ToHijriWithSource converts the civil date of t and reports which
// algorithm produced the result.
func (c *Calendar) ToHijriWithSource(t time.Time) (HijriDate, Source) {
	day := dayNumber(civil(t))
	offset := day - c.epochDay
	if offset < 0 {
		return approxFromJDN(day + unixEpochJDN), SourceApproximation
	}

	// Whole tabulated years.
	year := c.firstYear
	end := c.firstYear + len(c.years)
	for year < end {
		n := c.DaysInYear(year)
		if offset < n {
			break
		}
		offset -= n
		year++
	}

	source := SourceTable
	if year == end {
		// Past the table every year has the fallback length.
		source = SourceExtrapolated
		year += offset / fallbackYearDays
		offset %= fallbackYearDays
	}

	// Whole months.
	lengths := c.MonthLengths(year)
	month := 1
	for month < 12 && offset >= lengths[month-1] {
		offset -= lengths[month-1]
		month++
	}

	return HijriDate{Day: offset + 1, Month: month, Year: year}, source
}

// ToGregorian converts a Hijri date to its Gregorian date at midnight UTC.
// The date is not validated; out-of-range days and months are counted
// through, so 30 Safar of a 29-day Safar lands on 1 Rabi' al-Awwal.
func (c *Calendar) ToGregorian(h HijriDate) time.Time {
	t, _ := c.ToGregorianWithSource(h)
	return t
}

// ToGregorianDMY is ToGregorian for an explicit day, month and year.
func (c *Calendar) ToGregorianDMY(day, month, year int) time.Time {
	return c.ToGregorian(HijriDate{Day: day, Month: month, Year: year})
}

// ToGregorianWithSource converts a Hijri date and reports which algorithm
// produced the result. Day counts are plain int arithmetic, so results
// are meaningless (though never a panic) beyond roughly ±10^13 years.
func (c *Calendar) ToGregorianWithSource(h HijriDate) (time.Time, Source) {
	if h.Year < c.firstYear {
		return fromDayNumber(approxToJDN(h.Year, h.Month, h.Day) - unixEpochJDN), SourceApproximation
	}

	source := SourceTable
	offset := 0
	if end := c.firstYear + len(c.years); h.Year >= end {
		source = SourceExtrapolated
		offset = c.tableDays + (h.Year-end)*fallbackYearDays
	} else {
		for y := c.firstYear; y < h.Year; y++ {
			offset += c.DaysInYear(y)
		}
	}

	whole := h.Month - 1
	if whole > 12 {
		// Months beyond Dhu al-Hijjah count 30 days each.
		offset += (whole - 12) * 30
		whole = 12
	}
	for m := 1; m <= whole; m++ {
		offset += c.DaysInMonth(h.Year, m)
	}
	offset += h.Day - 1

	return fromDayNumber(c.epochDay + offset), source
}

// IsValidHijriDate reports whether day/month/year names a real date:
// month in 1..12 and day between 1 and the month's length. Outside the
// table the 30/29 pattern decides, so an arithmetic leap day returned by
// ToHijri before the epoch (30 Dhu al-Hijjah) is not valid input.
func (c *Calendar) IsValidHijriDate(day, month, year int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= c.DaysInMonth(year, month)
}
