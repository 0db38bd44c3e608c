package match

import (
	"sort"
	"strings"
	"time"

	"github.com/martinnjensen/MetalWatch/internal/event"
)

// Profile holds a user's matching criteria. The notification address is
// opaque to the matcher; only the notification channel interprets it.
type Profile struct {
	FavoriteArtists []string   `json:"favorite_artists"`
	FavoriteVenues  []string   `json:"favorite_venues"`
	Keywords        []string   `json:"keywords"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	NotifyAddress   string     `json:"notify_address,omitempty"`
}

// Scoring weights.
const (
	artistPoints  = 100
	venuePoints   = 50
	keywordPoints = 25
)

// Score computes the relevance score of a record against a profile:
// +100 per favorite artist that equals any of the record's artists,
// +50 when a favorite venue equals the record's venue, and +25 per keyword
// that is a substring of any artist name. All comparisons are
// case-insensitive. A nil profile scores zero.
func Score(r *event.Record, p *Profile) int {
	if p == nil {
		return 0
	}

	score := 0

	for _, fav := range p.FavoriteArtists {
		for _, artist := range r.Artists {
			if strings.EqualFold(fav, artist) {
				score += artistPoints
				break
			}
		}
	}

	for _, fav := range p.FavoriteVenues {
		if strings.EqualFold(fav, r.Venue) {
			score += venuePoints
			break
		}
	}

	for _, keyword := range p.Keywords {
		if keyword == "" {
			continue
		}
		lowerKeyword := strings.ToLower(keyword)
		for _, artist := range r.Artists {
			if strings.Contains(strings.ToLower(artist), lowerKeyword) {
				score += keywordPoints
				break
			}
		}
	}

	return score
}

// FindMatches filters and orders records for notification. Cancelled
// records are always excluded. With a profile set, records outside the
// inclusive [StartDate, EndDate] bounds are dropped and only records with a
// positive score are kept, ordered by descending score with ties broken by
// ascending date. A nil profile passes everything through at zero score, in
// ascending date order.
func FindMatches(records []*event.Record, p *Profile) []*event.Record {
	matches := make([]*event.Record, 0)
	for _, r := range records {
		if r.Cancelled {
			continue
		}
		if p != nil {
			if p.StartDate != nil && r.Date.Before(*p.StartDate) {
				continue
			}
			if p.EndDate != nil && r.Date.After(*p.EndDate) {
				continue
			}
			if Score(r, p) <= 0 {
				continue
			}
		}
		matches = append(matches, r)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		si, sj := Score(matches[i], p), Score(matches[j], p)
		if si != sj {
			return si > sj
		}
		return matches[i].Date.Before(matches[j].Date)
	})

	return matches
}
