// Package event provides the domain model for MetalWatch: concert records,
// scrape sources, and the content-derived identity scheme.
//
// Each record is assigned a deterministic SHA-256-based identity computed
// from its venue, date and sorted artist list, so the same concert reported
// by two different sources (or across runs with a changed detail URL)
// resolves to the same identifier.
package event
