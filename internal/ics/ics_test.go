package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/hijri-api/internal/calendar"
)

var stamp = time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC)

func decode(t *testing.T, data []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	return cal
}

func eventBySummary(t *testing.T, cal *ical.Calendar, summary string) ical.Event {
	t.Helper()
	for _, e := range cal.Events() {
		if s, _ := e.Props.Text(ical.PropSummary); s == summary {
			return e
		}
	}
	t.Fatalf("no event with SUMMARY %q", summary)
	return ical.Event{}
}

func TestEncode_EventsOfYear(t *testing.T) {
	data, err := Encode(calendar.UmmAlQura, Feed{Year: 1446, Title: "Islamic events 1446 AH"}, stamp)
	require.NoError(t, err)

	cal := decode(t, data)
	assert.Len(t, cal.Events(), len(calendar.IslamicEvents(1446)))

	name, err := cal.Props.Text("X-WR-CALNAME")
	require.NoError(t, err)
	assert.Equal(t, "Islamic events 1446 AH", name)

	got, err := cal.Props.Text(ical.PropProductID)
	require.NoError(t, err)
	assert.Equal(t, prodID, got)
}

func TestEncode_EventDates(t *testing.T) {
	data, err := Encode(calendar.UmmAlQura, Feed{Year: 1446, Title: "t"}, stamp)
	require.NoError(t, err)
	cal := decode(t, data)

	tests := []struct {
		summary string
		start   string
		end     string
	}{
		{"First Day of Ramadan", "20250301", "20250302"},
		{"Eid al-Fitr", "20250330", "20250331"},
		{"Eid al-Adha", "20250606", "20250607"},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			e := eventBySummary(t, cal, tt.summary)

			start := e.Props.Get(ical.PropDateTimeStart)
			require.NotNil(t, start)
			assert.Equal(t, tt.start, start.Value)
			assert.Equal(t, "DATE", start.Params.Get(ical.ParamValue))

			end := e.Props.Get(ical.PropDateTimeEnd)
			require.NotNil(t, end)
			assert.Equal(t, tt.end, end.Value)
		})
	}
}

func TestEncode_EventProperties(t *testing.T) {
	data, err := Encode(calendar.UmmAlQura, Feed{Year: 1446, Title: "t"}, stamp)
	require.NoError(t, err)
	e := eventBySummary(t, decode(t, data), "Eid al-Fitr")

	uid, err := e.Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "14461001-eid-al-fitr@hijri-api", uid)

	cat, err := e.Props.Text(ical.PropCategories)
	require.NoError(t, err)
	assert.Equal(t, "EID", cat)

	dtStamp := e.Props.Get(ical.PropDateTimeStamp)
	require.NotNil(t, dtStamp)
	assert.Equal(t, "20250115T083000Z", dtStamp.Value)
}

func TestEncode_Arabic(t *testing.T) {
	data, err := Encode(calendar.UmmAlQura, Feed{Year: 1446, Title: "المناسبات الإسلامية 1446 هـ", Arabic: true}, stamp)
	require.NoError(t, err)

	cal := decode(t, data)
	e := eventBySummary(t, cal, "عيد الفطر")
	uid, _ := e.Props.Text(ical.PropUID)
	assert.True(t, strings.HasPrefix(uid, "14461001-eid-al-fitr@"), "UID should not depend on language: %s", uid)
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Eid al-Fitr":                "eid-al-fitr",
		"Isra and Mi'raj":            "isra-and-mi-raj",
		"Laylat al-Qadr (estimated)": "laylat-al-qadr-estimated",
		"Tashreeq Day 2":             "tashreeq-day-2",
	}
	for in, want := range tests {
		assert.Equal(t, want, slug(in), in)
	}
}
