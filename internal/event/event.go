package event

import "time"

// Record represents a single concert or show occurrence scraped from a
// calendar page. The ID field is assigned by the workflow via Identity,
// not by the scraper; a freshly parsed record has an empty ID.
type Record struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Weekday     string    `json:"weekday,omitempty"`
	Artists     []string  `json:"artists"`
	Venue       string    `json:"venue"`
	URL         string    `json:"url"`
	Slug        string    `json:"slug,omitempty"`
	Cancelled   bool      `json:"cancelled"`
	NewlyListed bool      `json:"newly_listed"`
	Festival    bool      `json:"festival"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// Valid reports whether the record carries the minimum fields required to
// be kept: at least one artist, a venue and a detail URL. Rows failing
// this check are dropped by the scraper, not surfaced as errors.
func (r *Record) Valid() bool {
	return len(r.Artists) > 0 && r.Venue != "" && r.URL != ""
}
