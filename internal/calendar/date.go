package calendar

import "fmt"

// Hijri month numbers.
const (
	Muharram = iota + 1
	Safar
	RabiAlAwwal
	RabiAlThani
	JumadaAlAwwal
	JumadaAlThani
	Rajab
	Shaban
	Ramadan
	Shawwal
	DhuAlQidah
	DhuAlHijjah
)

// HijriDate is a date on the Hijri calendar. It is a plain value: two
// dates are equal when their fields are, and they order by year, then
// month, then day.
type HijriDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Compare returns -1, 0 or +1 depending on whether h is before, equal to,
// or after other.
func (h HijriDate) Compare(other HijriDate) int {
	switch {
	case h.Year != other.Year:
		return sign(h.Year - other.Year)
	case h.Month != other.Month:
		return sign(h.Month - other.Month)
	default:
		return sign(h.Day - other.Day)
	}
}

// Before reports whether h is strictly before other.
func (h HijriDate) Before(other HijriDate) bool {
	return h.Compare(other) < 0
}

// After reports whether h is strictly after other.
func (h HijriDate) After(other HijriDate) bool {
	return h.Compare(other) > 0
}

// IsRamadan reports whether h falls in Ramadan.
func (h HijriDate) IsRamadan() bool {
	return h.Month == Ramadan
}

// MonthName returns the English name of h's month.
func (h HijriDate) MonthName() string {
	return MonthName(h.Month)
}

// MonthNameArabic returns the Arabic name of h's month.
func (h HijriDate) MonthNameArabic() string {
	return MonthNameArabic(h.Month)
}

// String formats h as YYYY-MM-DD.
func (h HijriDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", h.Year, h.Month, h.Day)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
