package calendar

import (
	"slices"
	"time"
)

// EventCategory classifies an Islamic calendar event.
type EventCategory string

const (
	CategoryEid             EventCategory = "EID"
	CategoryHoliday         EventCategory = "HOLIDAY"
	CategoryRamadan         EventCategory = "RAMADAN"
	CategorySpecialNight    EventCategory = "SPECIAL_NIGHT"
	CategoryRecommendedFast EventCategory = "RECOMMENDED_FAST"
	CategoryCommemoration   EventCategory = "COMMEMORATION"
)

// ValidCategories returns all event categories.
func ValidCategories() []EventCategory {
	return []EventCategory{
		CategoryEid,
		CategoryHoliday,
		CategoryRamadan,
		CategorySpecialNight,
		CategoryRecommendedFast,
		CategoryCommemoration,
	}
}

// IsValid checks if a category is one of the known categories.
func (c EventCategory) IsValid() bool {
	return slices.Contains(ValidCategories(), c)
}

// IslamicEvent is a recurring observance placed in a concrete Hijri year.
type IslamicEvent struct {
	Day        int           `json:"day"`
	Month      int           `json:"month"`
	Year       int           `json:"year"`
	Name       string        `json:"name"`
	NameArabic string        `json:"name_arabic"`
	Category   EventCategory `json:"category"`
}

// HijriDate returns the date the event falls on.
func (e IslamicEvent) HijriDate() HijriDate {
	return HijriDate{Day: e.Day, Month: e.Month, Year: e.Year}
}

// eventTemplate is an observance without a year.
type eventTemplate struct {
	day, month int
	name       string
	nameArabic string
	category   EventCategory
}

// eventTemplates is ordered by date within the year.
var eventTemplates = []eventTemplate{
	{1, Muharram, "Islamic New Year", "رأس السنة الهجرية", CategoryHoliday},
	{10, Muharram, "Day of Ashura", "يوم عاشوراء", CategoryRecommendedFast},
	{12, RabiAlAwwal, "Mawlid al-Nabi", "المولد النبوي", CategoryCommemoration},
	{27, Rajab, "Isra and Mi'raj", "الإسراء والمعراج", CategoryCommemoration},
	{15, Shaban, "Mid-Sha'ban", "ليلة النصف من شعبان", CategoryCommemoration},
	{1, Ramadan, "First Day of Ramadan", "أول أيام رمضان", CategoryRamadan},
	{27, Ramadan, "Laylat al-Qadr (estimated)", "ليلة القدر", CategorySpecialNight},
	{1, Shawwal, "Eid al-Fitr", "عيد الفطر", CategoryEid},
	{9, DhuAlHijjah, "Day of Arafah", "يوم عرفة", CategoryRecommendedFast},
	{10, DhuAlHijjah, "Eid al-Adha", "عيد الأضحى", CategoryEid},
	{11, DhuAlHijjah, "Tashreeq Day 1", "أيام التشريق", CategoryHoliday},
	{12, DhuAlHijjah, "Tashreeq Day 2", "أيام التشريق", CategoryHoliday},
	{13, DhuAlHijjah, "Tashreeq Day 3", "أيام التشريق", CategoryHoliday},
}

// IslamicEvents returns the observances of a Hijri year in date order.
func IslamicEvents(year int) []IslamicEvent {
	events := make([]IslamicEvent, 0, len(eventTemplates))
	for _, t := range eventTemplates {
		events = append(events, IslamicEvent{
			Day:        t.day,
			Month:      t.month,
			Year:       year,
			Name:       t.name,
			NameArabic: t.nameArabic,
			Category:   t.category,
		})
	}
	return events
}

// EventsOn returns the observances falling on a Hijri date.
func EventsOn(h HijriDate) []IslamicEvent {
	var events []IslamicEvent
	for _, e := range IslamicEvents(h.Year) {
		if e.HijriDate() == h {
			events = append(events, e)
		}
	}
	return events
}

// EventDate returns the Gregorian date of an event.
func (c *Calendar) EventDate(e IslamicEvent) time.Time {
	return c.ToGregorian(e.HijriDate())
}

// UpcomingEvents returns up to limit observances on or after today's
// Hijri date, drawn from this Hijri year and the next, earliest first.
func (c *Calendar) UpcomingEvents(today time.Time, limit int) []IslamicEvent {
	if limit <= 0 {
		return []IslamicEvent{}
	}

	h := c.ToHijri(today)
	candidates := append(IslamicEvents(h.Year), IslamicEvents(h.Year+1)...)

	upcoming := make([]IslamicEvent, 0, len(candidates))
	for _, e := range candidates {
		if !e.HijriDate().Before(h) {
			upcoming = append(upcoming, e)
		}
	}

	slices.SortStableFunc(upcoming, func(a, b IslamicEvent) int {
		return a.HijriDate().Compare(b.HijriDate())
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}
