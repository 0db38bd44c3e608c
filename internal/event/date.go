package event

import (
	"strings"
	"time"
)

// danishMonths maps lowercase Danish month names to their calendar month.
var danishMonths = map[string]time.Month{
	"januar":    time.January,
	"februar":   time.February,
	"marts":     time.March,
	"april":     time.April,
	"maj":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"august":    time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// danishWeekdays holds the lowercase Danish weekday names, including the
// common abbreviated forms used in calendar listings.
var danishWeekdays = map[string]bool{
	"mandag":  true,
	"tirsdag": true,
	"onsdag":  true,
	"torsdag": true,
	"fredag":  true,
	"lørdag":  true,
	"søndag":  true,
	"man":     true,
	"tir":     true,
	"ons":     true,
	"tor":     true,
	"fre":     true,
	"lør":     true,
	"søn":     true,
}

// MonthByName resolves a Danish month name to a time.Month.
// Matching is case-insensitive.
func MonthByName(name string) (time.Month, bool) {
	m, ok := danishMonths[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// WeekdayLabel scans free text for the first token that is a Danish weekday
// name and returns it as written in the source. Returns "" when no weekday
// is present. Trailing punctuation on the token is ignored for matching but
// stripped from the result.
func WeekdayLabel(text string) string {
	for _, token := range strings.Fields(text) {
		trimmed := strings.TrimRight(token, ".,:")
		if danishWeekdays[strings.ToLower(trimmed)] {
			return trimmed
		}
	}
	return ""
}
