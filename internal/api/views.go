package api

import (
	"fmt"
	"time"

	"github.com/zapponejosh/hijri-api/internal/calendar"
	"github.com/zapponejosh/hijri-api/internal/i18n"
)

// DayResponse describes one day on both calendars.
type DayResponse struct {
	Gregorian string             `json:"gregorian"`
	Hijri     calendar.HijriDate `json:"hijri"`
	MonthName string             `json:"month_name"`
	Display   string             `json:"display"`
	Source    string             `json:"source"`
	IsRamadan bool               `json:"is_ramadan"`
	Events    []EventResponse    `json:"events"`
}

// EventResponse is an observance with its Gregorian date. DaysUntil is set
// only by the upcoming-events endpoint.
type EventResponse struct {
	Name      string                 `json:"name"`
	Category  calendar.EventCategory `json:"category"`
	Hijri     calendar.HijriDate     `json:"hijri"`
	Gregorian string                 `json:"gregorian"`
	DaysUntil *int                   `json:"days_until,omitempty"`
}

// MonthInfo is one month of a Hijri year.
type MonthInfo struct {
	Month      int    `json:"month"`
	Name       string `json:"name"`
	NameArabic string `json:"name_arabic"`
	Days       int    `json:"days,omitempty"`
	FirstDay   string `json:"first_day,omitempty"`
}

// YearResponse summarises a Hijri year.
type YearResponse struct {
	Year      int         `json:"year"`
	Days      int         `json:"days"`
	Tabulated bool        `json:"tabulated"`
	FirstDay  string      `json:"first_day"`
	LastDay   string      `json:"last_day"`
	Months    []MonthInfo `json:"months"`
}

// MonthViewResponse is a Hijri month laid out day by day.
type MonthViewResponse struct {
	Year      int                `json:"year"`
	Month     int                `json:"month"`
	MonthName string             `json:"month_name"`
	Days      []MonthDayResponse `json:"days"`
	Events    []EventResponse    `json:"events"`
}

// MonthDayResponse is one cell of a MonthViewResponse.
type MonthDayResponse struct {
	Gregorian string             `json:"gregorian"`
	Hijri     calendar.HijriDate `json:"hijri"`
	IsToday   bool               `json:"is_today"`
	IsRamadan bool               `json:"is_ramadan"`
	Events    []EventResponse    `json:"events"`
}

// RamadanStatusResponse reports where today stands relative to Ramadan.
type RamadanStatusResponse struct {
	Today            calendar.HijriDate `json:"today"`
	IsRamadan        bool               `json:"is_ramadan"`
	DaysRemaining    *int               `json:"days_remaining,omitempty"`
	DaysUntilNext    int                `json:"days_until_next"`
	NextRamadanStart string             `json:"next_ramadan_start"`
	Message          string             `json:"message"`
}

// RamadanResponse gives the bounds of Ramadan in a Hijri year.
type RamadanResponse struct {
	Year     int    `json:"year"`
	FirstDay string `json:"first_day"`
	LastDay  string `json:"last_day"`
	Days     int    `json:"days"`
}

// monthName picks the month name in the localizer's language.
func monthName(l *i18n.Localizer, month int) string {
	if l.Arabic() {
		return calendar.MonthNameArabic(month)
	}
	return calendar.MonthName(month)
}

func displayDate(l *i18n.Localizer, h calendar.HijriDate) string {
	return fmt.Sprintf("%d %s %d", h.Day, monthName(l, h.Month), h.Year)
}

func newDayResponse(l *i18n.Localizer, cal *calendar.Calendar, g time.Time, h calendar.HijriDate, src calendar.Source) DayResponse {
	return DayResponse{
		Gregorian: calendar.FormatDate(g),
		Hijri:     h,
		MonthName: monthName(l, h.Month),
		Display:   displayDate(l, h),
		Source:    src.String(),
		IsRamadan: h.IsRamadan(),
		Events:    newEventResponses(l, cal, calendar.EventsOn(h)),
	}
}

func newEventResponse(l *i18n.Localizer, cal *calendar.Calendar, e calendar.IslamicEvent) EventResponse {
	name := e.Name
	if l.Arabic() {
		name = e.NameArabic
	}
	return EventResponse{
		Name:      name,
		Category:  e.Category,
		Hijri:     e.HijriDate(),
		Gregorian: calendar.FormatDate(cal.EventDate(e)),
	}
}

func newEventResponses(l *i18n.Localizer, cal *calendar.Calendar, events []calendar.IslamicEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, newEventResponse(l, cal, e))
	}
	return out
}

func newMonthViewResponse(l *i18n.Localizer, cal *calendar.Calendar, view calendar.MonthView) MonthViewResponse {
	resp := MonthViewResponse{
		Year:      view.Year,
		Month:     view.Month,
		MonthName: monthName(l, view.Month),
		Days:      make([]MonthDayResponse, 0, len(view.Days)),
		Events:    newEventResponses(l, cal, view.Events),
	}
	for _, d := range view.Days {
		resp.Days = append(resp.Days, MonthDayResponse{
			Gregorian: calendar.FormatDate(d.Gregorian),
			Hijri:     d.Hijri,
			IsToday:   d.IsToday,
			IsRamadan: d.IsRamadan,
			Events:    newEventResponses(l, cal, d.Events),
		})
	}
	return resp
}
