package calendar

import "time"

// NotInRamadan is returned by DaysRemainingInRamadan outside Ramadan.
const NotInRamadan = -1

// IsRamadan reports whether the civil date of t falls in Ramadan.
func (c *Calendar) IsRamadan(t time.Time) bool {
	return c.ToHijri(t).IsRamadan()
}

// FirstDayOfRamadan returns the Gregorian date of 1 Ramadan of year.
func (c *Calendar) FirstDayOfRamadan(year int) time.Time {
	return c.ToGregorianDMY(1, Ramadan, year)
}

// LastDayOfRamadan returns the Gregorian date of the last day of Ramadan
// of year (the 29th or 30th).
func (c *Calendar) LastDayOfRamadan(year int) time.Time {
	return c.ToGregorianDMY(c.DaysInMonth(year, Ramadan), Ramadan, year)
}

// DaysUntilNextRamadan counts days from today to the next 1 Ramadan.
// From 1 Ramadan onward the target is the following year's Ramadan.
func (c *Calendar) DaysUntilNextRamadan(today time.Time) int {
	h := c.ToHijri(today)
	year := h.Year
	if h.Month >= Ramadan {
		year++
	}
	return DaysBetween(today, c.FirstDayOfRamadan(year))
}

// DaysRemainingInRamadan counts the days left in Ramadan including today,
// or returns NotInRamadan when today is not in Ramadan.
func (c *Calendar) DaysRemainingInRamadan(today time.Time) int {
	h := c.ToHijri(today)
	if !h.IsRamadan() {
		return NotInRamadan
	}
	return c.DaysInMonth(h.Year, Ramadan) - h.Day + 1
}
