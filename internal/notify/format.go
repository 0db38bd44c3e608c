package notify

import (
	"fmt"
	"strings"

	"github.com/martinnjensen/MetalWatch/internal/event"
)

// FormatRecord renders one record as a human-readable line pair.
func FormatRecord(r *event.Record) string {
	var b strings.Builder

	if r.Weekday != "" {
		fmt.Fprintf(&b, "%s ", r.Weekday)
	}
	fmt.Fprintf(&b, "%s  %s @ %s", r.Date.Format("2006-01-02"), strings.Join(r.Artists, ", "), r.Venue)

	if r.Festival {
		b.WriteString(" [festival]")
	}
	if r.Cancelled {
		b.WriteString(" [AFLYST]")
	}
	if r.NewlyListed {
		b.WriteString(" [nyhed]")
	}

	b.WriteString("\n  ")
	b.WriteString(r.URL)
	return b.String()
}

// FormatDigest renders a set of records as a single message body.
func FormatDigest(records []*event.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d new concert(s) matching your preferences:\n\n", len(records))
	for _, r := range records {
		b.WriteString(FormatRecord(r))
		b.WriteString("\n")
	}
	return b.String()
}
