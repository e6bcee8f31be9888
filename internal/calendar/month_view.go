package calendar

import "time"

// DayView is one cell of a Hijri month calendar.
type DayView struct {
	Gregorian time.Time      `json:"gregorian"`
	Hijri     HijriDate      `json:"hijri"`
	Events    []IslamicEvent `json:"events"`
	IsToday   bool           `json:"is_today"`
	IsRamadan bool           `json:"is_ramadan"`
}

// MonthView is a Hijri month laid out day by day.
type MonthView struct {
	Year            int            `json:"year"`
	Month           int            `json:"month"`
	MonthName       string         `json:"month_name"`
	MonthNameArabic string         `json:"month_name_arabic"`
	Days            []DayView      `json:"days"`
	Events          []IslamicEvent `json:"events"`
}

// MonthView lays out every day of a Hijri month with its Gregorian date
// and observances. today marks the matching cell. A month outside 1..12
// yields a view with no days.
func (c *Calendar) MonthView(year, month int, today time.Time) MonthView {
	view := MonthView{
		Year:            year,
		Month:           month,
		MonthName:       MonthName(month),
		MonthNameArabic: MonthNameArabic(month),
		Days:            []DayView{},
		Events:          []IslamicEvent{},
	}
	if month < 1 || month > 12 {
		return view
	}

	todayHijri := c.ToHijri(today)
	first := c.ToGregorianDMY(1, month, year)

	for day := 1; day <= c.DaysInMonth(year, month); day++ {
		h := HijriDate{Day: day, Month: month, Year: year}
		events := EventsOn(h)
		if events == nil {
			events = []IslamicEvent{}
		}
		view.Days = append(view.Days, DayView{
			Gregorian: first.AddDate(0, 0, day-1),
			Hijri:     h,
			Events:    events,
			IsToday:   h == todayHijri,
			IsRamadan: h.IsRamadan(),
		})
		view.Events = append(view.Events, events...)
	}

	return view
}
