package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type HijriDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (h HijriDate) String() string {
	return fmt.Sprintf("%d/%d/%d", h.Day, h.Month, h.Year)
}

// DayResponse is the response for /hijri/{date}, /hijri/today and /gregorian/...
type DayResponse struct {
	Gregorian string          `json:"gregorian"`
	Hijri     HijriDate       `json:"hijri"`
	MonthName string          `json:"month_name"`
	Display   string          `json:"display"`
	Source    string          `json:"source"`
	IsRamadan bool            `json:"is_ramadan"`
	Events    []EventResponse `json:"events"`
}

type EventResponse struct {
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Hijri     HijriDate `json:"hijri"`
	Gregorian string    `json:"gregorian"`
	DaysUntil *int      `json:"days_until,omitempty"`
}

type RamadanResponse struct {
	Year     int    `json:"year"`
	FirstDay string `json:"first_day"`
	LastDay  string `json:"last_day"`
	Days     int    `json:"days"`
}

type RamadanStatusResponse struct {
	Today         HijriDate `json:"today"`
	IsRamadan     bool      `json:"is_ramadan"`
	DaysRemaining *int      `json:"days_remaining,omitempty"`
	DaysUntilNext int       `json:"days_until_next"`
	Message       string    `json:"message"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status    string `json:"status"`
	FirstYear int    `json:"first_year"`
	LastYear  int    `json:"last_year"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Hijri API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testToday()
	tr.testKnownDates()
	tr.testInverse()
	tr.testValidation()
	tr.testRamadan()
	tr.testEvents()
	tr.testLanguage()
	tr.testErrors()
	tr.testMetrics()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (table %d-%d)", health.FirstYear, health.LastYear))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	var day DayResponse
	if err := tr.getData("/api/v1/hijri/today", &day); err != nil {
		tr.recordError("Today", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today is %s (%s, %s)", day.Display, day.Gregorian, day.Source))
	tr.printDayDetail(&day)

	var status RamadanStatusResponse
	if err := tr.getData("/api/v1/ramadan/status", &status); err != nil {
		tr.recordError("Ramadan status", err.Error())
		return
	}
	if status.Today != day.Hijri {
		tr.recordError("Ramadan status", fmt.Sprintf("today %s differs from /hijri/today %s", status.Today, day.Hijri))
		return
	}
	tr.recordSuccess(status.Message)
}

// knownDates are Umm al-Qura conversions published by the Saudi authorities.
var knownDates = []struct {
	gregorian string
	hijri     HijriDate
}{
	{"1937-03-14", HijriDate{1, 1, 1356}},
	{"1970-01-01", HijriDate{22, 10, 1389}},
	{"2000-01-01", HijriDate{24, 9, 1420}},
	{"2024-03-11", HijriDate{1, 9, 1445}},
	{"2025-03-01", HijriDate{1, 9, 1446}},
	{"2025-03-30", HijriDate{1, 10, 1446}},
	{"2025-06-06", HijriDate{10, 12, 1446}},
	{"2077-11-16", HijriDate{30, 12, 1500}},
}

func (tr *TestRunner) testKnownDates() {
	tr.printSection("Gregorian to Hijri")

	for _, kd := range knownDates {
		var day DayResponse
		if err := tr.getData("/api/v1/hijri/"+kd.gregorian, &day); err != nil {
			tr.recordError(kd.gregorian, err.Error())
			continue
		}
		if day.Hijri != kd.hijri {
			tr.recordError(kd.gregorian, fmt.Sprintf("got %s, want %s", day.Hijri, kd.hijri))
			continue
		}
		if day.Source != "table" {
			tr.recordError(kd.gregorian, "source = "+day.Source)
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s → %s", kd.gregorian, day.Display))
	}
}

func (tr *TestRunner) testInverse() {
	tr.printSection("Hijri to Gregorian")

	for _, kd := range knownDates {
		path := fmt.Sprintf("/api/v1/gregorian/%d/%d/%d", kd.hijri.Year, kd.hijri.Month, kd.hijri.Day)
		var day DayResponse
		if err := tr.getData(path, &day); err != nil {
			tr.recordError(kd.hijri.String(), err.Error())
			continue
		}
		if day.Gregorian != kd.gregorian {
			tr.recordError(kd.hijri.String(), fmt.Sprintf("got %s, want %s", day.Gregorian, kd.gregorian))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s → %s", kd.hijri, day.Gregorian))
	}

	var day DayResponse
	if err := tr.getData("/api/v1/gregorian/1501/1/1", &day); err != nil {
		tr.recordError("Beyond table", err.Error())
	} else if day.Source != "extrapolated" {
		tr.recordError("Beyond table", "source = "+day.Source)
	} else {
		tr.recordSuccess("1/1/1501 → " + day.Gregorian + " (extrapolated)")
	}
}

func (tr *TestRunner) testValidation() {
	tr.printSection("Validation")

	cases := []struct {
		query string
		valid bool
	}{
		{"day=30&month=9&year=1445", true},
		{"day=30&month=9&year=1446", false},
		{"day=1&month=13&year=1446", false},
	}
	for _, c := range cases {
		var data struct {
			Valid bool `json:"valid"`
		}
		if err := tr.getData("/api/v1/validate?"+c.query, &data); err != nil {
			tr.recordError(c.query, err.Error())
			continue
		}
		if data.Valid != c.valid {
			tr.recordError(c.query, fmt.Sprintf("valid = %v, want %v", data.Valid, c.valid))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s → valid=%v", c.query, data.Valid))
	}
}

func (tr *TestRunner) testRamadan() {
	tr.printSection("Ramadan")

	cases := []RamadanResponse{
		{Year: 1445, FirstDay: "2024-03-11", LastDay: "2024-04-09", Days: 30},
		{Year: 1446, FirstDay: "2025-03-01", LastDay: "2025-03-29", Days: 29},
	}
	for _, want := range cases {
		var got RamadanResponse
		if err := tr.getData(fmt.Sprintf("/api/v1/ramadan/%d", want.Year), &got); err != nil {
			tr.recordError(fmt.Sprintf("Ramadan %d", want.Year), err.Error())
			continue
		}
		if got != want {
			tr.recordError(fmt.Sprintf("Ramadan %d", want.Year), fmt.Sprintf("got %+v, want %+v", got, want))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("Ramadan %d: %s to %s (%d days)", got.Year, got.FirstDay, got.LastDay, got.Days))
	}
}

func (tr *TestRunner) testEvents() {
	tr.printSection("Events")

	var upcoming struct {
		Events []EventResponse `json:"events"`
	}
	if err := tr.getData("/api/v1/events/upcoming?limit=5", &upcoming); err != nil {
		tr.recordError("Upcoming", err.Error())
	} else if len(upcoming.Events) != 5 {
		tr.recordError("Upcoming", fmt.Sprintf("got %d events, want 5", len(upcoming.Events)))
	} else {
		tr.recordSuccess(fmt.Sprintf("Next event: %s on %s", upcoming.Events[0].Name, upcoming.Events[0].Gregorian))
		if tr.verbose {
			for _, e := range upcoming.Events {
				fmt.Printf("    %s  %-28s %s\n", e.Gregorian, e.Name, e.Category)
			}
		}
	}

	var year struct {
		Events []EventResponse `json:"events"`
	}
	if err := tr.getData("/api/v1/events/1446", &year); err != nil {
		tr.recordError("Events 1446", err.Error())
	} else {
		tr.recordSuccess(fmt.Sprintf("Events 1446: %d observances", len(year.Events)))
	}

	resp, err := tr.getRaw("/api/v1/events/1446/calendar.ics")
	if err != nil {
		tr.recordError("iCalendar", err.Error())
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	switch {
	case resp.StatusCode != http.StatusOK:
		tr.recordError("iCalendar", fmt.Sprintf("status %d", resp.StatusCode))
	case !strings.HasPrefix(string(body), "BEGIN:VCALENDAR"):
		tr.recordError("iCalendar", "body is not a VCALENDAR")
	default:
		tr.recordSuccess(fmt.Sprintf("iCalendar feed: %d events", strings.Count(string(body), "BEGIN:VEVENT")))
	}
}

func (tr *TestRunner) testLanguage() {
	tr.printSection("Language")

	var day DayResponse
	if err := tr.getData("/api/v1/hijri/2025-03-01?lang=ar", &day); err != nil {
		tr.recordError("Arabic", err.Error())
		return
	}
	if day.MonthName != "رمضان" {
		tr.recordError("Arabic", "month_name = "+day.MonthName)
		return
	}
	tr.recordSuccess("Arabic: " + day.Display)
}

func (tr *TestRunner) testErrors() {
	tr.printSection("Error Handling")

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/v1/hijri/2025-13-45", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/gregorian/1446/9/30", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/months/1446/13", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/events/upcoming?limit=0", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/does-not-exist", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, c := range cases {
		resp, err := tr.getRaw(c.path)
		if err != nil {
			tr.recordError(c.path, err.Error())
			continue
		}
		var apiResp APIResponse
		err = json.NewDecoder(resp.Body).Decode(&apiResp)
		resp.Body.Close()
		if err != nil {
			tr.recordError(c.path, fmt.Sprintf("parse error: %v", err))
			continue
		}
		if resp.StatusCode != c.status || apiResp.Error == nil || apiResp.Error.Code != c.code {
			tr.recordError(c.path, fmt.Sprintf("status %d, error %+v", resp.StatusCode, apiResp.Error))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s → %d %s", c.path, resp.StatusCode, c.code))
	}
}

func (tr *TestRunner) testMetrics() {
	tr.printSection("Metrics")

	resp, err := tr.getRaw("/metrics")
	if err != nil {
		tr.recordError("Metrics", err.Error())
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "hijri_conversions_total") {
		tr.recordError("Metrics", "hijri_conversions_total not exported")
		return
	}
	tr.recordSuccess("Conversion metrics exported")
}

// =============================================================================
// Helpers
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w (body: %s)", err, string(body))
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getData(path string, target interface{}) error {
	resp, err := tr.get(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(resp.Data, target)
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	url := tr.baseURL + path
	return tr.client.Get(url)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printDayDetail(d *DayResponse) {
	if !tr.verbose || d == nil {
		return
	}
	fmt.Printf("    Month:   %s\n", d.MonthName)
	fmt.Printf("    Ramadan: %v\n", d.IsRamadan)
	for _, e := range d.Events {
		fmt.Printf("    Event:   %s (%s)\n", e.Name, e.Category)
	}
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show response details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
