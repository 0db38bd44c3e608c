package scraper

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/martinnjensen/MetalWatch/internal/event"
	"github.com/martinnjensen/MetalWatch/internal/logger"
)

const (
	// KeyHeavyMetal is the registry selector key for this scraper.
	KeyHeavyMetal = "heavymetal"

	// DefaultOrigin prefixes relative detail links.
	DefaultOrigin = "https://www.heavymetal.dk"

	// Markers embedded in the free-text date cell, matched as
	// case-insensitive substrings anywhere in the cell.
	markerCancelled   = "aflyst"
	markerNewlyListed = "nyhed"
)

// Selectors for the date-grouped calendar layout.
const (
	selMonthHeader = "h2.month-header"
	selEntryTable  = "table.concert-list"
	selEntryRow    = "tr.concert"
	selDateCell    = "td.concert-date"
	selVenueLink   = "td.concert-venue a"
	selInfoLink    = "td.concert-info a"
	selBandsCell   = "td.concert-bands"
	selFestival    = "strong a"
	selBandLink    = "a.band"
)

// monthHeaderPattern matches headers like "Januar 2026" or a bare "Januar".
var monthHeaderPattern = regexp.MustCompile(`(?i)^([a-zæøå]+)\s*(\d{4})?$`)

// dayMonthPattern matches the leading day/month pair of a display date such
// as "Fredag 15/1" or a range start like "30/12 - 2/1".
var dayMonthPattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})`)

// HeavyMetal scrapes the heavymetal.dk concert calendar: a page grouped by
// month sections, each followed by a table of concert rows.
type HeavyMetal struct {
	fetcher Fetcher
	origin  string
}

// NewHeavyMetal creates the scraper with the default origin for relative
// detail links.
func NewHeavyMetal(fetcher Fetcher) *HeavyMetal {
	return &HeavyMetal{
		fetcher: fetcher,
		origin:  DefaultOrigin,
	}
}

// Scrape fetches the calendar page and extracts all valid concert records.
// Fetch failures produce a failed outcome; parse problems never do.
func (s *HeavyMetal) Scrape(ctx context.Context, pageURL string) *Outcome {
	now := time.Now().UTC()

	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return &Outcome{
			Success:   false,
			Error:     err.Error(),
			ScrapedAt: now,
		}
	}

	records := s.parse(body, now)
	return &Outcome{
		Success:   true,
		Records:   records,
		Scraped:   len(records),
		ScrapedAt: now,
	}
}

// monthContext is the (month, year) parsed from a section header.
type monthContext struct {
	month time.Month
	year  int
}

// parse extracts records from the raw document. It never fails: an
// unreadable document yields zero records with a logged diagnostic.
func (s *HeavyMetal) parse(body string, scrapedAt time.Time) []*event.Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		logger.Error("parsing calendar HTML", logger.Fields{"scraper": KeyHeavyMetal}, err)
		return nil
	}

	records := make([]*event.Record, 0)
	var prev *monthContext

	doc.Find(selMonthHeader).Each(func(i int, header *goquery.Selection) {
		mc, ok := parseMonthHeader(strings.TrimSpace(header.Text()), prev)
		if !ok {
			logger.Warn("skipping unrecognized month header", logger.Fields{
				"header": strings.TrimSpace(header.Text()),
			})
			return
		}
		prev = &mc

		table := header.NextAllFiltered(selEntryTable).First()
		if table.Length() == 0 {
			return
		}

		table.Find(selEntryRow).Each(func(j int, row *goquery.Selection) {
			if rec := s.parseRow(row, mc, scrapedAt); rec != nil {
				records = append(records, rec)
			}
		})
	})

	return records
}

// parseMonthHeader parses a Danish month name and optional four-digit year.
// A header without a year carries the year forward from the previous
// section, bumping it when the month number decreases (December followed by
// January belongs to the next year).
func parseMonthHeader(text string, prev *monthContext) (monthContext, bool) {
	matches := monthHeaderPattern.FindStringSubmatch(text)
	if matches == nil {
		return monthContext{}, false
	}

	month, ok := event.MonthByName(matches[1])
	if !ok {
		return monthContext{}, false
	}

	if matches[2] != "" {
		year, err := strconv.Atoi(matches[2])
		if err != nil {
			return monthContext{}, false
		}
		return monthContext{month: month, year: year}, true
	}

	if prev == nil {
		return monthContext{}, false
	}
	year := prev.year
	if month < prev.month {
		year++
	}
	return monthContext{month: month, year: year}, true
}

// parseRow extracts a single concert record. Rows missing a date, venue,
// detail link or any artist are discarded with a debug log.
func (s *HeavyMetal) parseRow(row *goquery.Selection, mc monthContext, scrapedAt time.Time) *event.Record {
	dateCell := row.Find(selDateCell).First()
	dateText := strings.TrimSpace(dateCell.Text())

	date := parseRowDate(dateCell, dateText, mc)
	if date.IsZero() {
		logger.Debug("skipping row without a parseable date", logger.Fields{"text": dateText})
		return nil
	}

	lowerDate := strings.ToLower(dateText)

	venueText := strings.TrimSpace(row.Find(selVenueLink).First().Text())
	venue := venueText
	if idx := strings.Index(venueText, ","); idx >= 0 {
		// The right-hand segment is a locality suffix ("Pumpehuset,
		// København") and is discarded.
		venue = strings.TrimSpace(venueText[:idx])
	}

	detailURL := s.detailURL(row)

	rec := &event.Record{
		Date:        date,
		Weekday:     event.WeekdayLabel(dateText),
		Venue:       venue,
		URL:         detailURL,
		Slug:        slugFromURL(detailURL),
		Cancelled:   strings.Contains(lowerDate, markerCancelled),
		NewlyListed: strings.Contains(lowerDate, markerNewlyListed),
		ScrapedAt:   scrapedAt,
	}

	bands := row.Find(selBandsCell).First()
	if lead := bands.Find(selFestival).First(); lead.Length() > 0 {
		if name := strings.TrimSpace(lead.Text()); name != "" {
			rec.Artists = append(rec.Artists, name)
			rec.Festival = true
		}
	}
	bands.Find(selBandLink).Each(func(_ int, a *goquery.Selection) {
		if name := strings.TrimSpace(a.Text()); name != "" {
			rec.Artists = append(rec.Artists, name)
		}
	})

	if !rec.Valid() {
		logger.Debug("skipping incomplete row", logger.Fields{
			"venue":   rec.Venue,
			"url":     rec.URL,
			"artists": len(rec.Artists),
		})
		return nil
	}

	return rec
}

// parseRowDate reads the canonical ISO date attribute, which is
// authoritative over the display text. When the attribute is missing, the
// leading day/month pair of the display text is interpreted in the section's
// month context; a January pair under a December section rolls into the next
// year, which covers ranges spanning the month boundary.
func parseRowDate(cell *goquery.Selection, dateText string, mc monthContext) time.Time {
	if iso, ok := cell.Attr("data-date"); ok {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(iso)); err == nil {
			return d
		}
	}

	matches := dayMonthPattern.FindStringSubmatch(dateText)
	if matches == nil {
		return time.Time{}
	}
	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}
	}

	year := mc.year
	if time.Month(month) < mc.month {
		year++
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// detailURL extracts the info link href, prefixing the origin when the link
// is relative.
func (s *HeavyMetal) detailURL(row *goquery.Selection) string {
	href, ok := row.Find(selInfoLink).First().Attr("href")
	if !ok {
		return ""
	}
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return strings.TrimSuffix(s.origin, "/") + href
}

// slugFromURL derives a candidate slug from the final path segment of the
// detail URL. The slug is retained for diagnostics only; record identity is
// content-derived.
func slugFromURL(detailURL string) string {
	if detailURL == "" {
		return ""
	}
	u, err := url.Parse(detailURL)
	if err != nil {
		return ""
	}
	trimmed := strings.TrimSuffix(u.Path, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
