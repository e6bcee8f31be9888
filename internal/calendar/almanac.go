package calendar

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Almanac answers "today" questions against a Calendar. The civil date
// of "today" is taken in Location, since the Hijri date of an instant
// depends on where it is observed.
type Almanac struct {
	Calendar *Calendar
	Clock    Clock
	Location *time.Location
}

// NewAlmanac returns an Almanac over cal. A nil clock means RealClock and
// a nil location means UTC.
func NewAlmanac(cal *Calendar, clock Clock, loc *time.Location) *Almanac {
	if clock == nil {
		clock = RealClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Almanac{Calendar: cal, Clock: clock, Location: loc}
}

// Now returns the current time in the almanac's location.
func (a *Almanac) Now() time.Time {
	return a.Clock.Now().In(a.Location)
}

// Today returns today's Hijri date.
func (a *Almanac) Today() HijriDate {
	return a.Calendar.ToHijri(a.Now())
}

// IsTodayRamadan reports whether today falls in Ramadan.
func (a *Almanac) IsTodayRamadan() bool {
	return a.Calendar.IsRamadan(a.Now())
}

// DaysUntilNextRamadan counts days from today to the next 1 Ramadan.
func (a *Almanac) DaysUntilNextRamadan() int {
	return a.Calendar.DaysUntilNextRamadan(a.Now())
}

// DaysRemainingInRamadan returns the days left in Ramadan including today,
// or NotInRamadan.
func (a *Almanac) DaysRemainingInRamadan() int {
	return a.Calendar.DaysRemainingInRamadan(a.Now())
}

// UpcomingEvents returns up to limit observances from today on.
func (a *Almanac) UpcomingEvents(limit int) []IslamicEvent {
	return a.Calendar.UpcomingEvents(a.Now(), limit)
}

// MonthView lays out a Hijri month with today marked.
func (a *Almanac) MonthView(year, month int) MonthView {
	return a.Calendar.MonthView(year, month, a.Now())
}
