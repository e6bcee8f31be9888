package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/hijri-api/internal/calendar"
	"github.com/zapponejosh/hijri-api/internal/config"
	"github.com/zapponejosh/hijri-api/internal/i18n"
	"github.com/zapponejosh/hijri-api/internal/logger"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// 3 Jumada al-Awwal 1448.
var defaultNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Port:           8080,
		Env:            config.EnvDevelopment,
		Timezone:       "UTC",
		UpcomingLimit:  5,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		LogLevel:       "error",
		LogFormat:      "text",
	}
}

// setupRouter builds the full router with the clock fixed at now.
func setupRouter(t *testing.T, now time.Time, cfg *config.Config) http.Handler {
	t.Helper()
	almanac := calendar.NewAlmanac(calendar.UmmAlQura, fixedClock{now}, time.UTC)
	h := NewHandlers(almanac, i18n.MustLoad(), NewMetrics(), cfg)
	return SetupRoutes(h, cfg, logger.Discard())
}

func doGet(t *testing.T, router http.Handler, path string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors Response with the payload left raw for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorInfo      `json:"error"`
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.True(t, env.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *ErrorInfo {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error
}

// =============================================================================
// HEALTH & CONVERSION
// =============================================================================

func TestHealthCheck(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())
	rec := doGet(t, router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]interface{}
	decodeData(t, rec, &data)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "1937-03-14", data["epoch"])
	assert.Equal(t, float64(1356), data["first_year"])
	assert.Equal(t, float64(1500), data["last_year"])
}

func TestGetHijriForDate(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())

	tests := []struct {
		date      string
		want      calendar.HijriDate
		source    string
		isRamadan bool
		event     string
	}{
		{"2025-03-01", calendar.HijriDate{Day: 1, Month: 9, Year: 1446}, "table", true, "First Day of Ramadan"},
		{"2025-03-30", calendar.HijriDate{Day: 1, Month: 10, Year: 1446}, "table", false, "Eid al-Fitr"},
		{"1937-03-14", calendar.HijriDate{Day: 1, Month: 1, Year: 1356}, "table", false, "Islamic New Year"},
		{"2077-11-17", calendar.HijriDate{Day: 1, Month: 1, Year: 1501}, "extrapolated", false, "Islamic New Year"},
		{"1937-03-13", calendar.HijriDate{Day: 30, Month: 12, Year: 1355}, "approximation", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			rec := doGet(t, router, "/api/v1/hijri/"+tt.date)
			require.Equal(t, http.StatusOK, rec.Code)

			var day DayResponse
			decodeData(t, rec, &day)
			assert.Equal(t, tt.date, day.Gregorian)
			assert.Equal(t, tt.want, day.Hijri)
			assert.Equal(t, tt.source, day.Source)
			assert.Equal(t, tt.isRamadan, day.IsRamadan)
			if tt.event == "" {
				assert.Empty(t, day.Events)
			} else {
				require.Len(t, day.Events, 1)
				assert.Equal(t, tt.event, day.Events[0].Name)
			}
		})
	}
}

func TestGetHijriForDate_Invalid(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())

	for _, date := range []string{"2025-13-01", "not-a-date", "2025-02-30"} {
		t.Run(date, func(t *testing.T) {
			rec := doGet(t, router, "/api/v1/hijri/"+date)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "BAD_REQUEST", decodeError(t, rec).Code)
		})
	}
}

func TestGetToday(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())
	rec := doGet(t, router, "/api/v1/hijri/today")
	require.Equal(t, http.StatusOK, rec.Code)

	var day DayResponse
	decodeData(t, rec, &day)
	assert.Equal(t, "2026-10-14", day.Gregorian)
	assert.Equal(t, calendar.HijriDate{Day: 3, Month: 5, Year: 1448}, day.Hijri)
	assert.Equal(t, "3 Jumada al-Awwal 1448", day.Display)
}

func TestGetToday_Timezone(t *testing.T) {
	// 22:00 UTC on 28 Feb is already 1 March (1 Ramadan 1446) in Riyadh.
	now := time.Date(2025, time.February, 28, 22, 0, 0, 0, time.UTC)
	cfg := testConfig()
	almanac := calendar.NewAlmanac(calendar.UmmAlQura, fixedClock{now}, time.FixedZone("AST", 3*60*60))
	h := NewHandlers(almanac, i18n.MustLoad(), NewMetrics(), cfg)
	router := SetupRoutes(h, cfg, logger.Discard())

	rec := doGet(t, router, "/api/v1/hijri/today")
	require.Equal(t, http.StatusOK, rec.Code)

	var day DayResponse
	decodeData(t, rec, &day)
	assert.Equal(t, "2025-03-01", day.Gregorian)
	assert.Equal(t, calendar.HijriDate{Day: 1, Month: 9, Year: 1446}, day.Hijri)
}

func TestGetGregorian(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())

	tests := []struct {
		path      string
		gregorian string
		source    string
	}{
		{"/api/v1/gregorian/1446/10/1", "2025-03-30", "table"},
		{"/api/v1/gregorian/1446/12/10", "2025-06-06", "table"},
		{"/api/v1/gregorian/1356/1/1", "1937-03-14", "table"},
		{"/api/v1/gregorian/1445/9/30", "2024-04-09", "table"},
		{"/api/v1/gregorian/1501/1/1", "2077-11-17", "extrapolated"},
		{"/api/v1/gregorian/1355/12/29", "1937-03-12", "approximation"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := doGet(t, router, tt.path)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var day DayResponse
			decodeData(t, rec, &day)
			assert.Equal(t, tt.gregorian, day.Gregorian)
			assert.Equal(t, tt.source, day.Source)
		})
	}
}

func TestGetGregorian_Invalid(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())

	tests := []struct {
		name string
		path string
	}{
		{"day past month end", "/api/v1/gregorian/1446/9/30"},
		{"day zero", "/api/v1/gregorian/1446/9/0"},
		{"month 13", "/api/v1/gregorian/1446/13/1"},
		{"month zero", "/api/v1/gregorian/1446/0/1"},
		{"year zero", "/api/v1/gregorian/0/1/1"},
		{"non-numeric day", "/api/v1/gregorian/1446/1/first"},
		{"non-numeric year", "/api/v1/gregorian/abc/1/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, router, tt.path)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "BAD_REQUEST", decodeError(t, rec).Code)
		})
	}
}

func TestValidate(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())

	tests := []struct {
		query string
		valid bool
	}{
		{"day=30&month=9&year=1445", true},
		{"day=30&month=9&year=1446", false},
		{"day=29&month=9&year=1446", true},
		{"day=1&month=13&year=1446", false},
		{"day=0&month=1&year=1446", false},
		{"day=30&month=1&year=1600", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := doGet(t, router, "/api/v1/validate?"+tt.query)
			require.Equal(t, http.StatusOK, rec.Code)

			var data struct {
				Valid bool `json:"valid"`
			}
			decodeData(t, rec, &data)
			assert.Equal(t, tt.valid, data.Valid)
		})
	}
}

func TestValidate_MissingParameters(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())

	for _, q := range []string{"", "?day=1&month=1", "?day=x&month=1&year=1446"} {
		rec := doGet(t, router, "/api/v1/validate"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

// =============================================================================
// YEARS & MONTHS
// =============================================================================

func TestGetYear(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())
	rec := doGet(t, router, "/api/v1/years/1446")
	require.Equal(t, http.StatusOK, rec.Code)

	var year YearResponse
	decodeData(t, rec, &year)
	assert.Equal(t, 1446, year.Year)
	assert.Equal(t, 354, year.Days)
	assert.True(t, year.Tabulated)
	assert.Equal(t, "2024-07-07", year.FirstDay)
	assert.Equal(t, "2025-06-25", year.LastDay)
	require.Len(t, year.Months, 12)
	assert.Equal(t, "Ramadan", year.Months[8].Name)
	assert.Equal(t, 29, year.Months[8].Days)
	assert.Equal(t, "2025-03-01", year.Months[8].FirstDay)

	total := 0
	for _, m := range year.Months {
		total += m.Days
	}
	assert.Equal(t, year.Days, total)
}

func TestGetYear_Untabulated(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())
	rec := doGet(t, router, "/api/v1/years/1600")
	require.Equal(t, http.StatusOK, rec.Code)

	var year YearResponse
	decodeData(t, rec, &year)
	assert.False(t, year.Tabulated)
	assert.Equal(t, 354, year.Days)
}

func TestGetMonths(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())
	rec := doGet(t, router, "/api/v1/months")
	require.Equal(t, http.StatusOK, rec.Code)

	var months []MonthInfo
	decodeData(t, rec, &months)
	require.Len(t, months, 12)
	assert.Equal(t, "Muharram", months[0].Name)
	assert.Equal(t, "رمضان", months[8].NameArabic)
	assert.Equal(t, 12, months[11].Month)
}

func TestGetMonthView(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC) // 10 Ramadan 1446
	router := setupRouter(t, now, testConfig())
	rec := doGet(t, router, "/api/v1/months/1446/9")
	require.Equal(t, http.StatusOK, rec.Code)

	var view MonthViewResponse
	decodeData(t, rec, &view)
	assert.Equal(t, "Ramadan", view.MonthName)
	require.Len(t, view.Days, 29)
	assert.Equal(t, "2025-03-01", view.Days[0].Gregorian)
	assert.Equal(t, "2025-03-29", view.Days[28].Gregorian)
	assert.True(t, view.Days[9].IsToday)
	assert.False(t, view.Days[8].IsToday)
	assert.True(t, view.Days[0].IsRamadan)
	assert.Len(t, view.Events, 2)
}

func TestGetMonthView_InvalidMonth(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())
	rec := doGet(t, router, "/api/v1/months/1446/13")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// RAMADAN
// =============================================================================

func TestGetRamadanStatus_Outside(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())
	rec := doGet(t, router, "/api/v1/ramadan/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var status RamadanStatusResponse
	decodeData(t, rec, &status)
	assert.False(t, status.IsRamadan)
	assert.Nil(t, status.DaysRemaining)
	assert.Equal(t, 117, status.DaysUntilNext)
	assert.Equal(t, "2027-02-08", status.NextRamadanStart)
	assert.Equal(t, "117 days until Ramadan", status.Message)
}

func TestGetRamadanStatus_During(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC) // 15 Ramadan 1446
	router := setupRouter(t, now, testConfig())
	rec := doGet(t, router, "/api/v1/ramadan/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var status RamadanStatusResponse
	decodeData(t, rec, &status)
	assert.True(t, status.IsRamadan)
	require.NotNil(t, status.DaysRemaining)
	assert.Equal(t, 15, *status.DaysRemaining)
	assert.Equal(t, "Ramadan Mubarak: 15 days remaining", status.Message)
	assert.Equal(t, "2026-02-18", status.NextRamadanStart)
}

func TestGetRamadan(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())

	tests := []struct {
		year  string
		first string
		last  string
		days  int
	}{
		{"1445", "2024-03-11", "2024-04-09", 30},
		{"1446", "2025-03-01", "2025-03-29", 29},
		{"1447", "2026-02-18", "2026-03-19", 30},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			rec := doGet(t, router, "/api/v1/ramadan/"+tt.year)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp RamadanResponse
			decodeData(t, rec, &resp)
			assert.Equal(t, tt.first, resp.FirstDay)
			assert.Equal(t, tt.last, resp.LastDay)
			assert.Equal(t, tt.days, resp.Days)
		})
	}
}

// =============================================================================
// EVENTS
// =============================================================================

type upcomingData struct {
	Today  calendar.HijriDate `json:"today"`
	Limit  int                `json:"limit"`
	Events []EventResponse    `json:"events"`
}

func TestGetUpcomingEvents(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())
	rec := doGet(t, router, "/api/v1/events/upcoming")
	require.Equal(t, http.StatusOK, rec.Code)

	var data upcomingData
	decodeData(t, rec, &data)
	assert.Equal(t, 5, data.Limit)
	require.Len(t, data.Events, 5)

	first := data.Events[0]
	assert.Equal(t, "Isra and Mi'raj", first.Name)
	assert.Equal(t, "2027-01-05", first.Gregorian)
	require.NotNil(t, first.DaysUntil)
	assert.Equal(t, 83, *first.DaysUntil)

	ramadan := data.Events[2]
	assert.Equal(t, "First Day of Ramadan", ramadan.Name)
	require.NotNil(t, ramadan.DaysUntil)
	assert.Equal(t, 117, *ramadan.DaysUntil)

	for i := 1; i < len(data.Events); i++ {
		assert.False(t, data.Events[i].Hijri.Before(data.Events[i-1].Hijri), "events out of order at %d", i)
	}
}

func TestGetUpcomingEvents_Limit(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())

	rec := doGet(t, router, "/api/v1/events/upcoming?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)
	var data upcomingData
	decodeData(t, rec, &data)
	assert.Len(t, data.Events, 3)

	for _, bad := range []string{"0", "-1", "51", "many"} {
		rec := doGet(t, router, "/api/v1/events/upcoming?limit="+bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", bad)
	}
}

func TestGetYearEvents(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())
	rec := doGet(t, router, "/api/v1/events/1446")
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Year   int             `json:"year"`
		Events []EventResponse `json:"events"`
	}
	decodeData(t, rec, &data)
	assert.Equal(t, 1446, data.Year)
	assert.Len(t, data.Events, len(calendar.IslamicEvents(1446)))

	var adha *EventResponse
	for i := range data.Events {
		if data.Events[i].Name == "Eid al-Adha" {
			adha = &data.Events[i]
		}
	}
	require.NotNil(t, adha)
	assert.Equal(t, "2025-06-06", adha.Gregorian)
	assert.Equal(t, calendar.CategoryEid, adha.Category)
	assert.Nil(t, adha.DaysUntil)
}

func TestGetYearCalendar(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())
	rec := doGet(t, router, "/api/v1/events/1446/calendar.ics")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "hijri-1446.ics")

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))
	assert.Equal(t, len(calendar.IslamicEvents(1446)), strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20250330")
}

// =============================================================================
// LANGUAGE
// =============================================================================

func TestLanguageSelection(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())

	tests := []struct {
		name      string
		path      string
		headers   []string
		monthName string
		lang      string
	}{
		{"default english", "/api/v1/hijri/2025-03-01", nil, "Ramadan", "en"},
		{"query arabic", "/api/v1/hijri/2025-03-01?lang=ar", nil, "رمضان", "ar"},
		{"header arabic", "/api/v1/hijri/2025-03-01", []string{"Accept-Language", "ar-SA,ar;q=0.9"}, "رمضان", "ar"},
		{"query beats header", "/api/v1/hijri/2025-03-01?lang=en", []string{"Accept-Language", "ar"}, "Ramadan", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, router, tt.path, tt.headers...)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.lang, rec.Header().Get("Content-Language"))

			var day DayResponse
			decodeData(t, rec, &day)
			assert.Equal(t, tt.monthName, day.MonthName)
		})
	}
}

func TestLanguageSelection_ArabicEventsAndErrors(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())

	rec := doGet(t, router, "/api/v1/hijri/2025-03-30?lang=ar")
	var day DayResponse
	decodeData(t, rec, &day)
	require.Len(t, day.Events, 1)
	assert.Equal(t, "عيد الفطر", day.Events[0].Name)

	rec = doGet(t, router, "/api/v1/hijri/nope?lang=ar")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "تاريخ غير صالح")
}

// captureLogs routes the default logger into a buffer at debug level for
// the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logger.New(&buf, "debug", "text"))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestHandlerLogs_CarryRequestID(t *testing.T) {
	logs := captureLogs(t)
	router := setupRouter(t, defaultNow, testConfig())

	rec := doGet(t, router, "/api/v1/hijri/1937-03-13", "X-Request-ID", "trace-1937")
	require.Equal(t, http.StatusOK, rec.Code)

	out := logs.String()
	assert.Contains(t, out, "conversion outside table")
	assert.Contains(t, out, "request_id=trace-1937")
	assert.Contains(t, out, "source=approximation")
}

// failingWriter accepts headers but fails every body write.
type failingWriter struct {
	header http.Header
	code   int
}

func (w *failingWriter) Header() http.Header { return w.header }

func (w *failingWriter) WriteHeader(code int) { w.code = code }

func (w *failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestGetYearCalendar_LogsWriteError(t *testing.T) {
	logs := captureLogs(t)
	router := setupRouter(t, defaultNow, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/1446/calendar.ics", nil)
	req.Header.Set("X-Request-ID", "ics-1446")
	w := &failingWriter{header: http.Header{}}
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.code)
	out := logs.String()
	assert.Contains(t, out, "failed to write calendar")
	assert.Contains(t, out, "request_id=ics-1446")
	assert.Contains(t, out, "year=1446")
	assert.Contains(t, out, "connection reset by peer")
}

// Before the table the arithmetic calendar can yield 30 Dhu al-Hijjah,
// which validation (30/29 pattern outside the table) does not accept.
func TestApproximationLeapDay_NotAcceptedAsInput(t *testing.T) {
	router := setupRouter(t, defaultNow, testConfig())

	rec := doGet(t, router, "/api/v1/hijri/1902-04-09")
	require.Equal(t, http.StatusOK, rec.Code)
	var day DayResponse
	decodeData(t, rec, &day)
	assert.Equal(t, calendar.HijriDate{Day: 30, Month: 12, Year: 1319}, day.Hijri)
	assert.Equal(t, "approximation", day.Source)

	rec = doGet(t, router, "/api/v1/gregorian/1319/12/30")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", decodeError(t, rec).Code)
}
