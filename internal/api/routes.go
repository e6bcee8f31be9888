package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/hijri-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health
//	GET /metrics
//	GET /api/v1/hijri/today
//	GET /api/v1/hijri/{date}                     date = YYYY-MM-DD (Gregorian)
//	GET /api/v1/gregorian/{year}/{month}/{day}   Hijri date to Gregorian
//	GET /api/v1/validate?day=&month=&year=
//	GET /api/v1/years/{year}
//	GET /api/v1/months
//	GET /api/v1/months/{year}/{month}
//	GET /api/v1/ramadan/status
//	GET /api/v1/ramadan/{year}
//	GET /api/v1/events/upcoming?limit=N
//	GET /api/v1/events/{year}
//	GET /api/v1/events/{year}/calendar.ics
//
// Every /api/v1 route honours ?lang=en|ar and Accept-Language and is rate
// limited per client address.
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger, handlers.catalogue),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		MetricsMiddleware(handlers.metrics),
		CORSMiddleware(),
	)

	r.NotFound(handlers.NotFound)

	r.Get("/health", handlers.HealthCheck)
	r.Method(http.MethodGet, "/metrics", handlers.metrics.Handler())

	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(limiter, handlers.catalogue))

		r.Get("/hijri/today", handlers.GetToday)
		r.Get("/hijri/{date}", handlers.GetHijriForDate)
		r.Get("/gregorian/{year}/{month}/{day}", handlers.GetGregorian)
		r.Get("/validate", handlers.Validate)
		r.Get("/years/{year}", handlers.GetYear)

		r.Get("/months", handlers.GetMonths)
		r.Get("/months/{year}/{month}", handlers.GetMonthView)

		r.Get("/ramadan/status", handlers.GetRamadanStatus)
		r.Get("/ramadan/{year}", handlers.GetRamadan)

		r.Get("/events/upcoming", handlers.GetUpcomingEvents)
		r.Get("/events/{year}", handlers.GetYearEvents)
		r.Get("/events/{year}/calendar.ics", handlers.GetYearCalendar)
	})

	return r
}
