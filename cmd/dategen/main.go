package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/zapponejosh/hijri-api/internal/calendar"
	"github.com/zapponejosh/hijri-api/internal/i18n"
	"github.com/zapponejosh/hijri-api/internal/ics"
)

// This tool prints the key dates of a Hijri year: month starts and every
// observance, with their Gregorian dates. It can also write the year's
// events as an iCalendar file.

func main() {
	cal := calendar.UmmAlQura
	today := cal.ToHijri(time.Now())

	year := flag.Int("year", today.Year, "Hijri year to generate dates for")
	arabic := flag.Bool("ar", false, "Print Arabic names")
	icsFile := flag.String("ics", "", "Also write the year's events to this .ics file")
	flag.Parse()

	if *year < 1 {
		fmt.Println("Error: -year must be positive")
		os.Exit(2)
	}

	fmt.Printf("=== Hijri Date Generator for %d AH ===\n\n", *year)
	if !cal.IsTabulated(*year) {
		fmt.Printf("Note: %d is outside the Umm al-Qura table (%d-%d); dates are computed arithmetically.\n\n",
			*year, cal.FirstYear(), cal.LastYear())
	}

	name := func(e calendar.IslamicEvent) string {
		if *arabic {
			return e.NameArabic
		}
		return e.Name
	}
	monthName := calendar.MonthName
	if *arabic {
		monthName = calendar.MonthNameArabic
	}

	fmt.Println("Key Dates:")
	fmt.Printf("  New Year:        %s\n", formatDate(cal.ToGregorianDMY(1, calendar.Muharram, *year)))
	fmt.Printf("  Ramadan Start:   %s\n", formatDate(cal.FirstDayOfRamadan(*year)))
	fmt.Printf("  Ramadan End:     %s (%d days)\n", formatDate(cal.LastDayOfRamadan(*year)), cal.DaysInMonth(*year, calendar.Ramadan))
	fmt.Printf("  Eid al-Fitr:     %s\n", formatDate(cal.ToGregorianDMY(1, calendar.Shawwal, *year)))
	fmt.Printf("  Day of Arafah:   %s\n", formatDate(cal.ToGregorianDMY(9, calendar.DhuAlHijjah, *year)))
	fmt.Printf("  Eid al-Adha:     %s\n", formatDate(cal.ToGregorianDMY(10, calendar.DhuAlHijjah, *year)))
	fmt.Printf("  Year Length:     %d days\n", cal.DaysInYear(*year))
	fmt.Println()

	fmt.Println("Months:")
	for month := calendar.Muharram; month <= calendar.DhuAlHijjah; month++ {
		fmt.Printf("  %2d %-16s %s  %d days\n", month, monthName(month),
			formatDate(cal.ToGregorianDMY(1, month, *year)), cal.DaysInMonth(*year, month))
	}
	fmt.Println()

	events := calendar.IslamicEvents(*year)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].HijriDate().Before(events[j].HijriDate())
	})

	categoryCounts := make(map[calendar.EventCategory]int)
	for _, e := range events {
		categoryCounts[e.Category]++
	}

	fmt.Println("Events by category:")
	for _, c := range calendar.ValidCategories() {
		if count, ok := categoryCounts[c]; ok {
			fmt.Printf("  %-18s %d\n", string(c)+":", count)
		}
	}
	fmt.Printf("  %-18s %d\n", "TOTAL:", len(events))
	fmt.Println()

	fmt.Println("=== All Events ===")
	fmt.Println("Gregorian,Hijri,Event,Category")
	for _, e := range events {
		fmt.Printf("%s,%s,%s,%s\n", formatDate(cal.EventDate(e)), e.HijriDate(), name(e), e.Category)
	}

	if *icsFile != "" {
		data, err := ics.Encode(cal, newFeed(*year, *arabic), time.Now())
		if err != nil {
			fmt.Printf("Error encoding calendar: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*icsFile, data, 0644); err != nil {
			fmt.Printf("Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nCalendar saved to: %s\n", *icsFile)
	}
}

// newFeed titles the iCalendar feed in the language of the printed names.
func newFeed(year int, arabic bool) ics.Feed {
	lang := "en"
	if arabic {
		lang = "ar"
	}
	l := i18n.MustLoad().For(i18n.Match(lang))
	data := map[string]any{"Year": year}
	return ics.Feed{
		Year:        year,
		Title:       l.T(i18n.MsgFeedTitle, data),
		Description: l.T(i18n.MsgFeedDescription, data),
		Arabic:      l.Arabic(),
	}
}

func formatDate(t time.Time) string {
	return fmt.Sprintf("%s %s", calendar.FormatDate(t), t.Weekday().String()[:3])
}
