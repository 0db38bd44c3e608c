package scraper

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

// stubFetcher returns a canned body or error without touching the network.
type stubFetcher struct {
	body string
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.body, nil
}

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/sample_calendar.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func TestScrapeFixture(t *testing.T) {
	s := NewHeavyMetal(&stubFetcher{body: loadFixture(t)})

	outcome := s.Scrape(context.Background(), "https://www.heavymetal.dk/koncerter/")
	if !outcome.Success {
		t.Fatalf("expected success, got error: %s", outcome.Error)
	}
	if outcome.Scraped != len(outcome.Records) {
		t.Errorf("Scraped = %d, want %d", outcome.Scraped, len(outcome.Records))
	}

	// Four valid rows: the empty-bands December row is discarded and the
	// unrecognized "Kommende højdepunkter" section is skipped entirely.
	if len(outcome.Records) != 4 {
		for _, r := range outcome.Records {
			t.Logf("record: %s %v @ %s", r.Date.Format("2006-01-02"), r.Artists, r.Venue)
		}
		t.Fatalf("expected 4 records, got %d", len(outcome.Records))
	}

	einherjer := outcome.Records[0]
	if einherjer.Venue != "Pumpehuset" {
		t.Errorf("expected locality suffix stripped, got venue %q", einherjer.Venue)
	}
	if einherjer.Weekday != "Fredag" {
		t.Errorf("expected weekday 'Fredag', got %q", einherjer.Weekday)
	}
	if got := einherjer.Date.Format("2006-01-02"); got != "2025-12-12" {
		t.Errorf("expected date 2025-12-12, got %s", got)
	}
	if einherjer.URL != "https://www.heavymetal.dk/koncerter/einherjer-pumpehuset-2025/" {
		t.Errorf("expected origin-prefixed URL, got %q", einherjer.URL)
	}
	if einherjer.Slug != "einherjer-pumpehuset-2025" {
		t.Errorf("expected slug from final path segment, got %q", einherjer.Slug)
	}
	if len(einherjer.Artists) != 2 || einherjer.Artists[0] != "Einherjer" || einherjer.Artists[1] != "Gaahls Wyrd" {
		t.Errorf("unexpected artists: %v", einherjer.Artists)
	}
	if einherjer.Cancelled || einherjer.NewlyListed || einherjer.Festival {
		t.Error("expected no flags on plain row")
	}

	myrkur := outcome.Records[1]
	if !myrkur.Cancelled {
		t.Error("expected AFLYST marker to set Cancelled")
	}
	if myrkur.URL != "https://www.heavymetal.dk/koncerter/myrkur-vega-2025/" {
		t.Errorf("absolute URL should pass through unchanged, got %q", myrkur.URL)
	}

	konkylie := outcome.Records[2]
	if !konkylie.NewlyListed {
		t.Error("expected NYHED marker to set NewlyListed")
	}
	if konkylie.Cancelled {
		t.Error("NYHED row should not be cancelled")
	}

	festival := outcome.Records[3]
	if !festival.Festival {
		t.Error("expected strong leading link to set Festival")
	}
	if len(festival.Artists) != 3 || festival.Artists[0] != "Frost Fest" {
		t.Errorf("expected festival name first, got %v", festival.Artists)
	}
	// Row has no data-date: the day/month pair is resolved against the
	// January section context carried over from the December header.
	if got := festival.Date.Format("2006-01-02"); got != "2026-01-24" {
		t.Errorf("expected rollover year 2026, got %s", got)
	}
}

func TestScrapeIsIdempotent(t *testing.T) {
	body := loadFixture(t)
	s := NewHeavyMetal(&stubFetcher{body: body})

	first := s.Scrape(context.Background(), "https://www.heavymetal.dk/koncerter/")
	second := s.Scrape(context.Background(), "https://www.heavymetal.dk/koncerter/")

	if len(first.Records) != len(second.Records) {
		t.Fatalf("record counts differ: %d vs %d", len(first.Records), len(second.Records))
	}
	for i := range first.Records {
		a, b := first.Records[i], second.Records[i]
		if !a.Date.Equal(b.Date) || a.Venue != b.Venue || fmt.Sprint(a.Artists) != fmt.Sprint(b.Artists) {
			t.Errorf("record %d differs between runs: %+v vs %+v", i, a, b)
		}
	}
}

func TestScrapeFetchFailure(t *testing.T) {
	s := NewHeavyMetal(&stubFetcher{err: fmt.Errorf("unexpected status code: 503")})

	outcome := s.Scrape(context.Background(), "https://www.heavymetal.dk/koncerter/")
	if outcome.Success {
		t.Fatal("expected failed outcome")
	}
	if outcome.Error == "" {
		t.Error("expected error text on failed outcome")
	}
	if len(outcome.Records) != 0 {
		t.Errorf("expected no records on failure, got %d", len(outcome.Records))
	}
}

func TestScrapeUnparseableDocument(t *testing.T) {
	s := NewHeavyMetal(&stubFetcher{body: "not a calendar at all"})

	outcome := s.Scrape(context.Background(), "https://www.heavymetal.dk/koncerter/")
	if !outcome.Success {
		t.Fatalf("structural failure should not fail the outcome: %s", outcome.Error)
	}
	if len(outcome.Records) != 0 {
		t.Errorf("expected zero records, got %d", len(outcome.Records))
	}
}

func TestParseMonthHeader(t *testing.T) {
	december := monthContext{month: time.December, year: 2025}

	tests := []struct {
		name      string
		text      string
		prev      *monthContext
		wantOK    bool
		wantMonth time.Month
		wantYear  int
	}{
		{"month with year", "December 2025", nil, true, time.December, 2025},
		{"lowercase month", "januar 2026", nil, true, time.January, 2026},
		{"january after december rolls year", "Januar", &december, true, time.January, 2026},
		{"same-year carry", "Maj", &monthContext{month: time.March, year: 2026}, true, time.May, 2026},
		{"yearless without context", "Januar", nil, false, 0, 0},
		{"unknown month", "Kalender 2026", nil, false, 0, 0},
		{"not a header", "Kommende højdepunkter", nil, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc, ok := parseMonthHeader(tt.text, tt.prev)
			if ok != tt.wantOK {
				t.Fatalf("parseMonthHeader(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if mc.month != tt.wantMonth || mc.year != tt.wantYear {
				t.Errorf("parseMonthHeader(%q) = %v %d, want %v %d",
					tt.text, mc.month, mc.year, tt.wantMonth, tt.wantYear)
			}
		})
	}
}

func TestSlugFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.heavymetal.dk/koncerter/einherjer-pumpehuset-2025/", "einherjer-pumpehuset-2025"},
		{"https://www.heavymetal.dk/koncerter/myrkur-vega-2025", "myrkur-vega-2025"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := slugFromURL(tt.url); got != tt.expected {
			t.Errorf("slugFromURL(%q) = %q, expected %q", tt.url, got, tt.expected)
		}
	}
}
