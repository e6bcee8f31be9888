// Package ics renders the Islamic events of a Hijri year as an iCalendar
// (RFC 5545) feed of all-day events.
package ics

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/zapponejosh/hijri-api/internal/calendar"
)

const (
	prodID = "-//hijri-api//Umm al-Qura events//EN"
	domain = "hijri-api"

	// ContentType is the media type of an encoded feed.
	ContentType = "text/calendar; charset=utf-8"
)

// Feed describes one calendar to render.
type Feed struct {
	Year        int    // Hijri year
	Title       string // X-WR-CALNAME
	Description string // X-WR-CALDESC, optional
	Arabic      bool   // use Arabic event names for SUMMARY
}

// Build returns the calendar object for feed. DTSTAMP is stamp in UTC.
func Build(cal *calendar.Calendar, feed Feed, stamp time.Time) *ical.Calendar {
	out := ical.NewCalendar()
	out.Props.SetText(ical.PropVersion, "2.0")
	out.Props.SetText(ical.PropProductID, prodID)
	out.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	out.Props.SetText("X-WR-CALNAME", feed.Title)
	if feed.Description != "" {
		out.Props.SetText("X-WR-CALDESC", feed.Description)
	}

	dtStamp := ical.NewProp(ical.PropDateTimeStamp)
	dtStamp.SetDateTime(stamp.UTC())

	for _, e := range calendar.IslamicEvents(feed.Year) {
		start := cal.EventDate(e)

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, eventUID(e))
		event.Props.Set(dtStamp)

		summary := e.Name
		if feed.Arabic {
			summary = e.NameArabic
		}
		event.Props.SetText(ical.PropSummary, summary)
		event.Props.SetText(ical.PropDescription, fmt.Sprintf("%d %s %d AH", e.Day, calendar.MonthName(e.Month), e.Year))
		event.Props.SetText(ical.PropCategories, string(e.Category))
		event.Props.SetText(ical.PropTransparency, "TRANSPARENT")

		dtStart := ical.NewProp(ical.PropDateTimeStart)
		dtStart.SetDate(start)
		event.Props.Set(dtStart)

		dtEnd := ical.NewProp(ical.PropDateTimeEnd)
		dtEnd.SetDate(start.AddDate(0, 0, 1))
		event.Props.Set(dtEnd)

		out.Children = append(out.Children, event.Component)
	}

	return out
}

// Encode renders feed as iCalendar text.
func Encode(cal *calendar.Calendar, feed Feed, stamp time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(Build(cal, feed, stamp)); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// eventUID identifies an event; it is the same on every render.
func eventUID(e calendar.IslamicEvent) string {
	return fmt.Sprintf("%04d%02d%02d-%s@%s", e.Year, e.Month, e.Day, slug(e.Name), domain)
}

// slug lowercases name and joins its ASCII letter and digit runs with '-'.
func slug(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(words, "-")
}
