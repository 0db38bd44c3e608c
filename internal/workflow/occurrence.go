package workflow

import (
	"time"

	"github.com/martinnjensen/MetalWatch/internal/event"
)

// KindNewRecordsFound is the occurrence kind published when a run discovers
// records not present in the store.
const KindNewRecordsFound = "NewRecordsFound"

// NewRecordsFound carries the full, unfiltered set of newly identified
// records from one source run. Published at most once per run per source,
// and only when the set is non-empty.
type NewRecordsFound struct {
	Records   []*event.Record
	SourceURL string
	FoundAt   time.Time
}

// Kind implements bus.Occurrence.
func (NewRecordsFound) Kind() string { return KindNewRecordsFound }
