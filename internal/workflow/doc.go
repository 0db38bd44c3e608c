// Package workflow drives the per-source scrape pipeline: it resolves a
// scraper for each due source, assigns content identities to the scraped
// records, diffs them against the persisted store, persists the fresh
// listing, and publishes a NewRecordsFound occurrence for anything not seen
// before.
//
// Persistence always commits before the occurrence is published, so a crash
// during notification can never leave the store inconsistent with what the
// next run will report as new.
package workflow
