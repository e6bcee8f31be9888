package calendar

// The arithmetic Islamic calendar: a 30-year cycle of 354- and 355-day
// years with leap years 2, 5, 7, 10, 13, 16, 18, 21, 24, 26 and 29, and
// months alternating 30 and 29 days (Dhu al-Hijjah gets 30 in leap years).
//
// It only serves dates the Umm al-Qura table does not cover before its
// epoch. It ignores observational adjustments and can differ from the
// table by a day or two near the boundary. The two directions below are
// not promised to round-trip exactly.
//
// Leap years give Dhu al-Hijjah a 30th day here, but IsValidHijriDate
// judges years outside the table by the 30/29 pattern and rejects it.

const (
	// islamicEpochJDN is the Julian Day Number of 1 Muharram 1 AH
	// (civil epoch, 16 July 622 Julian).
	islamicEpochJDN = 1948440

	// unixEpochJDN is the Julian Day Number of 1970-01-01.
	unixEpochJDN = 2440588
)

// approxToJDN returns the Julian Day Number of an arithmetic Hijri date.
func approxToJDN(year, month, day int) int {
	return day +
		floorDiv(59*(month-1)+1, 2) + // ceil(29.5 * (month-1))
		(year-1)*354 +
		floorDiv(3+11*year, 30) +
		islamicEpochJDN - 1
}

// approxFromJDN returns the arithmetic Hijri date of a Julian Day Number.
func approxFromJDN(jdn int) HijriDate {
	year := floorDiv(30*(jdn-islamicEpochJDN)+10646, 10631)

	// ceil((jdn - (29 + start)) / 29.5) + 1, in integers.
	month := -floorDiv(-2*(jdn-(29+approxToJDN(year, 1, 1))), 59) + 1
	if month < 1 {
		month = 1
	}
	if month > 12 {
		month = 12
	}

	day := jdn - approxToJDN(year, month, 1) + 1
	return HijriDate{Day: day, Month: month, Year: year}
}
