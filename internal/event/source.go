package event

import "time"

// DefaultScrapeInterval is used when a source has no explicit re-scrape
// interval configured.
const DefaultScrapeInterval = 24 * time.Hour

// Source is a configured origin to scrape. Sources are created by
// configuration; the workflow only ever mutates the last-attempt status
// fields after each run.
type Source struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	ScraperKey  string        `json:"scraper_key"`
	URL         string        `json:"url"`
	Interval    time.Duration `json:"interval"`
	LastScraped *time.Time    `json:"last_scraped,omitempty"`
	LastSuccess *bool         `json:"last_success,omitempty"`
	LastError   string        `json:"last_error,omitempty"`
	Enabled     bool          `json:"enabled"`
}

// Due reports whether the source should be scraped now: it is enabled and
// either has never been attempted or its re-scrape interval has elapsed
// since the last attempt.
func (s *Source) Due(now time.Time) bool {
	if !s.Enabled {
		return false
	}
	if s.LastScraped == nil {
		return true
	}
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultScrapeInterval
	}
	return !now.Before(s.LastScraped.Add(interval))
}
