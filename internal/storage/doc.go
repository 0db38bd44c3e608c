// Package storage persists MetalWatch state as JSON documents in a data
// directory: the current record listing, the preference profile, and the
// configured sources with their scrape status. Missing or malformed files
// are treated as empty defaults, never as errors.
package storage
