package calendar

import "time"

// The functions below use the UmmAlQura calendar.

// ToHijri converts the civil date of t to an Umm al-Qura Hijri date.
func ToHijri(t time.Time) HijriDate {
	return UmmAlQura.ToHijri(t)
}

// ToGregorian converts a Hijri date to its Gregorian date.
func ToGregorian(h HijriDate) time.Time {
	return UmmAlQura.ToGregorian(h)
}

// ToGregorianDMY converts an explicit day, month and year.
func ToGregorianDMY(day, month, year int) time.Time {
	return UmmAlQura.ToGregorianDMY(day, month, year)
}

// DaysInHijriYear returns the number of days in a Hijri year.
func DaysInHijriYear(year int) int {
	return UmmAlQura.DaysInYear(year)
}

// DaysInHijriMonth returns the number of days in a Hijri month.
func DaysInHijriMonth(year, month int) int {
	return UmmAlQura.DaysInMonth(year, month)
}

// IsValidHijriDate reports whether day/month/year is a real Hijri date.
func IsValidHijriDate(day, month, year int) bool {
	return UmmAlQura.IsValidHijriDate(day, month, year)
}

// IsRamadan reports whether the civil date of t falls in Ramadan.
func IsRamadan(t time.Time) bool {
	return UmmAlQura.IsRamadan(t)
}

// FirstDayOfRamadan returns the Gregorian date of 1 Ramadan of year.
func FirstDayOfRamadan(year int) time.Time {
	return UmmAlQura.FirstDayOfRamadan(year)
}

// LastDayOfRamadan returns the Gregorian date of the last day of Ramadan.
func LastDayOfRamadan(year int) time.Time {
	return UmmAlQura.LastDayOfRamadan(year)
}
