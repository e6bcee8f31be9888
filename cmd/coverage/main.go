package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/zapponejosh/hijri-api/internal/calendar"
)

// This tool walks every day of the tabulated Umm al-Qura range and checks
// that conversion is a bijection: each Gregorian day maps to the day after
// its predecessor's Hijri date and converts back to itself.

// Failure is one problem found during the walk.
type Failure struct {
	Date  string `json:"date"`
	Hijri string `json:"hijri,omitempty"`
	Check string `json:"check"`
	Error string `json:"error"`
}

// YearStats tracks the walk for one Hijri year.
type YearStats struct {
	Year       int `json:"year"`
	Days       int `json:"days"`
	FailedDays int `json:"failed_days"`
}

// Analysis holds the results of a walk.
type Analysis struct {
	TotalDays   int                `json:"total_days"`
	TotalFailed int                `json:"total_failed"`
	ByYear      map[int]*YearStats `json:"by_year"`
	ByCheck     map[string]int     `json:"by_check"`
	Failures    []Failure          `json:"failures"`
}

func main() {
	cal := calendar.UmmAlQura

	startYear := flag.Int("start", cal.FirstYear(), "First Hijri year to walk")
	endYear := flag.Int("end", cal.LastYear(), "Last Hijri year to walk")
	verbose := flag.Bool("v", false, "Verbose output (show each year)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	if *startYear < cal.FirstYear() || *endYear > cal.LastYear() || *startYear > *endYear {
		fmt.Printf("Error: year range must lie within %d-%d\n", cal.FirstYear(), cal.LastYear())
		os.Exit(2)
	}

	fmt.Println("================================================================")
	fmt.Println("Umm al-Qura Table - Full Coverage Walk")
	fmt.Println("================================================================")
	fmt.Printf("Hijri Years: %d to %d\n", *startYear, *endYear)
	fmt.Printf("Table:       %d to %d (epoch %s)\n", cal.FirstYear(), cal.LastYear(), calendar.FormatDate(cal.Epoch()))
	fmt.Println()

	analysis := walk(cal, *startYear, *endYear, *verbose)

	printSummary(analysis, *startYear, *endYear)
	printFailures(analysis)

	if *outputFile != "" {
		saveResults(*outputFile, analysis)
	}

	// Exit with error code if there were failures
	if analysis.TotalFailed > 0 {
		os.Exit(1)
	}
}

func walk(cal *calendar.Calendar, startYear, endYear int, verbose bool) *Analysis {
	analysis := &Analysis{
		ByYear:  make(map[int]*YearStats),
		ByCheck: make(map[string]int),
	}

	fail := func(stats *YearStats, date time.Time, h calendar.HijriDate, check, msg string) {
		f := Failure{Date: calendar.FormatDate(date), Check: check, Error: msg}
		if h != (calendar.HijriDate{}) {
			f.Hijri = h.String()
		}
		analysis.Failures = append(analysis.Failures, f)
		analysis.ByCheck[check]++
		stats.FailedDays++
	}

	for year := startYear; year <= endYear; year++ {
		stats := &YearStats{Year: year}
		analysis.ByYear[year] = stats

		lengths := cal.MonthLengths(year)
		total := 0
		for i, n := range lengths {
			if n != 29 && n != 30 {
				fail(stats, cal.ToGregorianDMY(1, i+1, year), calendar.HijriDate{Day: 1, Month: i + 1, Year: year},
					"month-length", fmt.Sprintf("month %d has %d days", i+1, n))
			}
			total += n
		}
		if total != cal.DaysInYear(year) || (total != 354 && total != 355) {
			fail(stats, cal.ToGregorianDMY(1, 1, year), calendar.HijriDate{Day: 1, Month: 1, Year: year},
				"year-length", fmt.Sprintf("year has %d days (DaysInYear %d)", total, cal.DaysInYear(year)))
		}

		first := cal.ToGregorianDMY(1, calendar.Muharram, year)
		prev, _ := cal.ToHijriWithSource(first.AddDate(0, 0, -1))

		for offset := 0; offset < total; offset++ {
			date := first.AddDate(0, 0, offset)
			h, src := cal.ToHijriWithSource(date)
			stats.Days++
			analysis.TotalDays++

			if src != calendar.SourceTable {
				fail(stats, date, h, "source", "converted by "+src.String())
			}
			if back := cal.ToGregorian(h); !back.Equal(date) {
				fail(stats, date, h, "round-trip", "converts back to "+calendar.FormatDate(back))
			}
			if want := successor(cal, prev); h != want {
				fail(stats, date, h, "monotonic", fmt.Sprintf("follows %s, want %s", prev, want))
			}
			prev = h
		}

		if verbose {
			status := "✓"
			if stats.FailedDays > 0 {
				status = "✗"
			}
			fmt.Printf("  %s %d: %d days from %s\n", status, year, stats.Days, calendar.FormatDate(first))
		}
	}

	analysis.TotalFailed = len(analysis.Failures)
	return analysis
}

// successor returns the Hijri date after h.
func successor(cal *calendar.Calendar, h calendar.HijriDate) calendar.HijriDate {
	switch {
	case h.Day < cal.DaysInMonth(h.Year, h.Month):
		return calendar.HijriDate{Day: h.Day + 1, Month: h.Month, Year: h.Year}
	case h.Month < calendar.DhuAlHijjah:
		return calendar.HijriDate{Day: 1, Month: h.Month + 1, Year: h.Year}
	default:
		return calendar.HijriDate{Day: 1, Month: calendar.Muharram, Year: h.Year + 1}
	}
}

func printSummary(analysis *Analysis, startYear, endYear int) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days Walked: %d\n", analysis.TotalDays)
	fmt.Printf("Failures:          %d\n", analysis.TotalFailed)
	fmt.Println()

	var failedYears []int
	for year := startYear; year <= endYear; year++ {
		if stats, ok := analysis.ByYear[year]; ok && stats.FailedDays > 0 {
			failedYears = append(failedYears, year)
		}
	}
	if len(failedYears) > 0 {
		fmt.Printf("Years with failures: %v\n\n", failedYears)
	}
}

func printFailures(analysis *Analysis) {
	if analysis.TotalFailed == 0 {
		fmt.Println("No failures! 🎉")
		return
	}

	fmt.Println("================================================================")
	fmt.Println("FAILURES BY CHECK")
	fmt.Println("================================================================")

	checks := make([]string, 0, len(analysis.ByCheck))
	for check := range analysis.ByCheck {
		checks = append(checks, check)
	}
	sort.Slice(checks, func(i, j int) bool {
		return analysis.ByCheck[checks[i]] > analysis.ByCheck[checks[j]]
	})

	for _, check := range checks {
		fmt.Printf("\n%s: %d failures\n", check, analysis.ByCheck[check])
		shown := 0
		for _, f := range analysis.Failures {
			if f.Check != check {
				continue
			}
			if shown >= 5 {
				fmt.Printf("  ... and %d more\n", analysis.ByCheck[check]-5)
				break
			}
			fmt.Printf("  - %s (%s): %s\n", f.Date, f.Hijri, f.Error)
			shown++
		}
	}
	fmt.Println()
}

func saveResults(filename string, analysis *Analysis) {
	output := struct {
		GeneratedAt string `json:"generated_at"`
		*Analysis
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Analysis:    analysis,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}
