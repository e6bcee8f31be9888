package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/hijri-api/internal/calendar"
	"github.com/zapponejosh/hijri-api/internal/config"
	"github.com/zapponejosh/hijri-api/internal/i18n"
	"github.com/zapponejosh/hijri-api/internal/ics"
	"github.com/zapponejosh/hijri-api/internal/logger"
)

// Hijri years accepted in paths and queries.
const (
	minYear = 1
	maxYear = 9999
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	almanac   *calendar.Almanac
	catalogue *i18n.Catalogue
	metrics   *Metrics
	cfg       *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(almanac *calendar.Almanac, catalogue *i18n.Catalogue, metrics *Metrics, cfg *config.Config) *Handlers {
	return &Handlers{
		almanac:   almanac,
		catalogue: catalogue,
		metrics:   metrics,
		cfg:       cfg,
	}
}

func (h *Handlers) cal() *calendar.Calendar {
	return h.almanac.Calendar
}

// localizer picks the response language from ?lang= then Accept-Language
// and records it in Content-Language.
func (h *Handlers) localizer(w http.ResponseWriter, r *http.Request) *i18n.Localizer {
	l := localizerFor(h.catalogue, r)
	w.Header().Set("Content-Language", l.Tag().String())
	return l
}

func localizerFor(c *i18n.Catalogue, r *http.Request) *i18n.Localizer {
	return c.For(i18n.Match(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language")))
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	cal := h.cal()
	WriteSuccess(w, map[string]interface{}{
		"status":     "healthy",
		"epoch":      calendar.FormatDate(cal.Epoch()),
		"first_year": cal.FirstYear(),
		"last_year":  cal.LastYear(),
	})
}

// NotFound handles unmatched routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	WriteNotFound(w, h.localizer(w, r).T(i18n.MsgNotFound, nil))
}

// GetToday handles GET /api/v1/hijri/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	h.writeDay(w, r, h.almanac.Now().Format(calendar.DateLayout))
}

// GetHijriForDate handles GET /api/v1/hijri/{date}
func (h *Handlers) GetHijriForDate(w http.ResponseWriter, r *http.Request) {
	h.writeDay(w, r, chi.URLParam(r, "date"))
}

func (h *Handlers) writeDay(w http.ResponseWriter, r *http.Request, dateStr string) {
	l := h.localizer(w, r)

	date, err := calendar.ParseDateString(dateStr)
	if err != nil {
		WriteBadRequest(w, l.T(i18n.MsgInvalidGregorianDate, map[string]any{"Value": dateStr}))
		return
	}

	hd, src := h.cal().ToHijriWithSource(date)
	h.metrics.ObserveConversion(DirectionToHijri, src)
	if src != calendar.SourceTable {
		logger.Debug(r.Context(), "conversion outside table",
			slog.String("date", dateStr),
			slog.String("source", src.String()))
	}

	WriteSuccess(w, newDayResponse(l, h.cal(), date, hd, src))
}

// GetGregorian handles GET /api/v1/gregorian/{year}/{month}/{day}
func (h *Handlers) GetGregorian(w http.ResponseWriter, r *http.Request) {
	l := h.localizer(w, r)

	hd, ok := h.parseHijriDate(w, l, chi.URLParam(r, "day"), chi.URLParam(r, "month"), chi.URLParam(r, "year"))
	if !ok {
		return
	}
	if !h.cal().IsValidHijriDate(hd.Day, hd.Month, hd.Year) {
		WriteBadRequest(w, l.T(i18n.MsgInvalidHijriDate, map[string]any{
			"Day": hd.Day, "Month": hd.Month, "Year": hd.Year,
		}))
		return
	}

	g, src := h.cal().ToGregorianWithSource(hd)
	h.metrics.ObserveConversion(DirectionToGregorian, src)

	WriteSuccess(w, newDayResponse(l, h.cal(), g, hd, src))
}

// Validate handles GET /api/v1/validate?day=&month=&year=
func (h *Handlers) Validate(w http.ResponseWriter, r *http.Request) {
	l := h.localizer(w, r)
	q := r.URL.Query()

	if q.Get("day") == "" || q.Get("month") == "" || q.Get("year") == "" {
		WriteBadRequest(w, l.T(i18n.MsgMissingParameters, nil))
		return
	}

	day, errDay := strconv.Atoi(q.Get("day"))
	month, errMonth := strconv.Atoi(q.Get("month"))
	year, errYear := strconv.Atoi(q.Get("year"))
	if errDay != nil || errMonth != nil || errYear != nil {
		WriteBadRequest(w, l.T(i18n.MsgMissingParameters, nil))
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"day":   day,
		"month": month,
		"year":  year,
		"valid": h.cal().IsValidHijriDate(day, month, year),
	})
}

// GetYear handles GET /api/v1/years/{year}
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	l := h.localizer(w, r)

	year, ok := h.parseYear(w, l, chi.URLParam(r, "year"))
	if !ok {
		return
	}

	cal := h.cal()
	lengths := cal.MonthLengths(year)
	months := make([]MonthInfo, 0, len(lengths))
	for i, days := range lengths {
		month := i + 1
		months = append(months, MonthInfo{
			Month:      month,
			Name:       calendar.MonthName(month),
			NameArabic: calendar.MonthNameArabic(month),
			Days:       days,
			FirstDay:   calendar.FormatDate(cal.ToGregorianDMY(1, month, year)),
		})
	}

	WriteSuccess(w, YearResponse{
		Year:      year,
		Days:      cal.DaysInYear(year),
		Tabulated: cal.IsTabulated(year),
		FirstDay:  calendar.FormatDate(cal.ToGregorianDMY(1, calendar.Muharram, year)),
		LastDay:   calendar.FormatDate(cal.ToGregorianDMY(lengths[11], calendar.DhuAlHijjah, year)),
		Months:    months,
	})
}

// GetMonths handles GET /api/v1/months
func (h *Handlers) GetMonths(w http.ResponseWriter, r *http.Request) {
	months := make([]MonthInfo, 0, 12)
	for month := calendar.Muharram; month <= calendar.DhuAlHijjah; month++ {
		months = append(months, MonthInfo{
			Month:      month,
			Name:       calendar.MonthName(month),
			NameArabic: calendar.MonthNameArabic(month),
		})
	}
	WriteSuccess(w, months)
}

// GetMonthView handles GET /api/v1/months/{year}/{month}
func (h *Handlers) GetMonthView(w http.ResponseWriter, r *http.Request) {
	l := h.localizer(w, r)

	year, ok := h.parseYear(w, l, chi.URLParam(r, "year"))
	if !ok {
		return
	}
	month, ok := h.parseMonth(w, l, chi.URLParam(r, "month"))
	if !ok {
		return
	}

	WriteSuccess(w, newMonthViewResponse(l, h.cal(), h.almanac.MonthView(year, month)))
}

// GetRamadanStatus handles GET /api/v1/ramadan/status
func (h *Handlers) GetRamadanStatus(w http.ResponseWriter, r *http.Request) {
	l := h.localizer(w, r)

	now := h.almanac.Now()
	cal := h.cal()
	until := cal.DaysUntilNextRamadan(now)

	resp := RamadanStatusResponse{
		Today:            cal.ToHijri(now),
		DaysUntilNext:    until,
		NextRamadanStart: calendar.FormatDate(now.AddDate(0, 0, until)),
	}

	if remaining := cal.DaysRemainingInRamadan(now); remaining != calendar.NotInRamadan {
		resp.IsRamadan = true
		resp.DaysRemaining = &remaining
		resp.Message = l.T(i18n.MsgRamadanActive, map[string]any{"Days": remaining})
	} else {
		resp.Message = l.T(i18n.MsgRamadanAwaited, map[string]any{"Days": until})
	}

	WriteSuccess(w, resp)
}

// GetRamadan handles GET /api/v1/ramadan/{year}
func (h *Handlers) GetRamadan(w http.ResponseWriter, r *http.Request) {
	l := h.localizer(w, r)

	year, ok := h.parseYear(w, l, chi.URLParam(r, "year"))
	if !ok {
		return
	}

	cal := h.cal()
	WriteSuccess(w, RamadanResponse{
		Year:     year,
		FirstDay: calendar.FormatDate(cal.FirstDayOfRamadan(year)),
		LastDay:  calendar.FormatDate(cal.LastDayOfRamadan(year)),
		Days:     cal.DaysInMonth(year, calendar.Ramadan),
	})
}

// GetUpcomingEvents handles GET /api/v1/events/upcoming?limit=N
func (h *Handlers) GetUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	l := h.localizer(w, r)

	limit := h.cfg.UpcomingLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > config.MaxUpcomingLimit {
			WriteBadRequest(w, l.T(i18n.MsgInvalidLimit, map[string]any{"Max": config.MaxUpcomingLimit}))
			return
		}
		limit = n
	}

	now := h.almanac.Now()
	events := h.almanac.UpcomingEvents(limit)

	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp := newEventResponse(l, h.cal(), e)
		days := calendar.DaysBetween(now, h.cal().EventDate(e))
		resp.DaysUntil = &days
		out = append(out, resp)
	}

	WriteSuccess(w, map[string]interface{}{
		"today":  h.cal().ToHijri(now),
		"limit":  limit,
		"events": out,
	})
}

// GetYearEvents handles GET /api/v1/events/{year}
func (h *Handlers) GetYearEvents(w http.ResponseWriter, r *http.Request) {
	l := h.localizer(w, r)

	year, ok := h.parseYear(w, l, chi.URLParam(r, "year"))
	if !ok {
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"year":   year,
		"events": newEventResponses(l, h.cal(), calendar.IslamicEvents(year)),
	})
}

// GetYearCalendar handles GET /api/v1/events/{year}/calendar.ics
func (h *Handlers) GetYearCalendar(w http.ResponseWriter, r *http.Request) {
	l := h.localizer(w, r)

	year, ok := h.parseYear(w, l, chi.URLParam(r, "year"))
	if !ok {
		return
	}

	data := map[string]any{"Year": year}
	feed := ics.Feed{
		Year:        year,
		Title:       l.T(i18n.MsgFeedTitle, data),
		Description: l.T(i18n.MsgFeedDescription, data),
		Arabic:      l.Arabic(),
	}

	body, err := ics.Encode(h.cal(), feed, h.almanac.Clock.Now())
	if err != nil {
		logger.Error(r.Context(), "failed to encode calendar", err, slog.Int("year", year))
		WriteInternalError(w, l.T(i18n.MsgInternalError, nil))
		return
	}

	w.Header().Set("Content-Type", ics.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="hijri-%d.ics"`, year))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Error(r.Context(), "failed to write calendar", err, slog.Int("year", year))
	}
}

// parseYear validates a Hijri year path segment, writing a 400 on failure.
func (h *Handlers) parseYear(w http.ResponseWriter, l *i18n.Localizer, s string) (int, bool) {
	year, err := strconv.Atoi(s)
	if err != nil || year < minYear || year > maxYear {
		WriteBadRequest(w, l.T(i18n.MsgInvalidYear, map[string]any{"Value": s}))
		return 0, false
	}
	return year, true
}

func (h *Handlers) parseMonth(w http.ResponseWriter, l *i18n.Localizer, s string) (int, bool) {
	month, err := strconv.Atoi(s)
	if err != nil || month < calendar.Muharram || month > calendar.DhuAlHijjah {
		WriteBadRequest(w, l.T(i18n.MsgInvalidMonth, map[string]any{"Value": s}))
		return 0, false
	}
	return month, true
}

// parseHijriDate parses the three components. Range checks beyond the
// month number are left to IsValidHijriDate.
func (h *Handlers) parseHijriDate(w http.ResponseWriter, l *i18n.Localizer, dayStr, monthStr, yearStr string) (calendar.HijriDate, bool) {
	year, ok := h.parseYear(w, l, yearStr)
	if !ok {
		return calendar.HijriDate{}, false
	}
	month, ok := h.parseMonth(w, l, monthStr)
	if !ok {
		return calendar.HijriDate{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		WriteBadRequest(w, l.T(i18n.MsgInvalidDay, map[string]any{"Value": dayStr}))
		return calendar.HijriDate{}, false
	}
	return calendar.HijriDate{Day: day, Month: month, Year: year}, true
}
