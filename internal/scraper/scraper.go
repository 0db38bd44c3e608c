package scraper

import (
	"context"
	"time"

	"github.com/martinnjensen/MetalWatch/internal/event"
)

// Outcome is the transient result of one scrape attempt. A failed fetch
// produces Success=false with the error text; a fetched document always
// produces Success=true, even when it yields zero records.
type Outcome struct {
	Success   bool
	Records   []*event.Record
	Error     string
	Scraped   int
	ScrapedAt time.Time
}

// Scraper extracts concert records from a calendar page. Implementations
// never return an error: transport and structural failures are reported
// through the outcome, and malformed rows are skipped individually.
type Scraper interface {
	Scrape(ctx context.Context, url string) *Outcome
}
