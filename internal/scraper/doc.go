// Package scraper fetches and parses concert calendar pages into structured
// event records.
//
// Scrapers are selected through a Registry keyed by a short name or matched
// against a source URL, so new calendar layouts can be added without
// touching the workflow. A scrape never fails on malformed rows: individual
// rows that cannot be parsed are skipped and logged, and only transport
// problems or an unreadable document produce a failed outcome.
package scraper
