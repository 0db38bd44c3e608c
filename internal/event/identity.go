package event

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

const (
	identityDelimiter = "|"
	identityLength    = 16
)

// Identity computes the deterministic content-derived identifier for a
// record. The artist list is sorted before hashing so the identifier is
// stable under reordering; venue, ISO date and artists are joined with a
// fixed delimiter and hashed with SHA-256, of which the first 16 lowercase
// hex characters are kept.
func Identity(r *Record) string {
	artists := make([]string, len(r.Artists))
	copy(artists, r.Artists)
	sort.Strings(artists)

	payload := r.Venue + identityDelimiter +
		r.Date.Format("2006-01-02") + identityDelimiter +
		strings.Join(artists, identityDelimiter)

	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])[:identityLength]
}

// AssignIdentities overwrites the ID of every record with its content
// identity. Any slug-derived identifier set during extraction is discarded.
func AssignIdentities(records []*Record) {
	for _, r := range records {
		r.ID = Identity(r)
	}
}
