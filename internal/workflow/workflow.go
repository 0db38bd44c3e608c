package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/martinnjensen/MetalWatch/internal/bus"
	"github.com/martinnjensen/MetalWatch/internal/event"
	"github.com/martinnjensen/MetalWatch/internal/logger"
	"github.com/martinnjensen/MetalWatch/internal/metrics"
	"github.com/martinnjensen/MetalWatch/internal/scraper"
)

// Store is the persistence surface the orchestrator depends on. The record
// store is global, not source-scoped: SaveRecords replaces the full set of
// what the sources currently list.
type Store interface {
	PreviousRecords(ctx context.Context) ([]*event.Record, error)
	SaveRecords(ctx context.Context, records []*event.Record) error
	DueSources(ctx context.Context) ([]*event.Source, error)
	UpdateSourceScraped(ctx context.Context, sourceID string, at time.Time, success bool, errText string) error
}

// Outcome is the externally reported result of one orchestrator run for one
// source.
type Outcome struct {
	RunID      string    `json:"run_id"`
	Success    bool      `json:"success"`
	SourceID   string    `json:"source_id"`
	SourceName string    `json:"source_name"`
	Scraped    int       `json:"scraped"`
	NewRecords int       `json:"new_records"`
	Published  []string  `json:"published,omitempty"`
	Error      string    `json:"error,omitempty"`
	ExecutedAt time.Time `json:"executed_at"`
}

// Orchestrator sequences scraping, persistence and occurrence publication
// across the configured sources, one source at a time.
type Orchestrator struct {
	store    Store
	scrapers *scraper.Registry
	bus      *bus.Bus
	now      func() time.Time
}

// New creates an orchestrator.
func New(store Store, scrapers *scraper.Registry, b *bus.Bus) *Orchestrator {
	return &Orchestrator{
		store:    store,
		scrapers: scrapers,
		bus:      b,
		now:      time.Now,
	}
}

// RunDueWorkflows runs the pipeline for every enabled source whose
// re-scrape interval has elapsed and returns one outcome per source in
// processing order. Scrape failures are isolated per source and reported in
// the outcome; storage failures abort the run and are returned, since
// without durable state the new-record detection of subsequent runs is
// compromised. Cancellation is honored at each per-source iteration.
func (o *Orchestrator) RunDueWorkflows(ctx context.Context) ([]*Outcome, error) {
	due, err := o.store.DueSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading due sources: %w", err)
	}
	if len(due) == 0 {
		return nil, nil
	}

	outcomes := make([]*Outcome, 0, len(due))
	for _, src := range due {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcome, err := o.runSource(ctx, src)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// runSource executes the pipeline for a single source. The returned error
// is non-nil only for storage or cancellation failures; everything else is
// folded into the outcome.
func (o *Orchestrator) runSource(ctx context.Context, src *event.Source) (*Outcome, error) {
	now := o.now().UTC()
	outcome := &Outcome{
		RunID:      uuid.NewString(),
		SourceID:   src.ID,
		SourceName: src.Name,
		ExecutedAt: now,
	}
	metrics.ScrapeRuns.Inc()

	sc, err := o.scrapers.ByKey(src.ScraperKey)
	if err != nil {
		return o.failSource(ctx, src, outcome, now, err.Error())
	}

	result := sc.Scrape(ctx, src.URL)
	if !result.Success {
		return o.failSource(ctx, src, outcome, now, result.Error)
	}

	event.AssignIdentities(result.Records)

	previous, err := o.store.PreviousRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading previous records: %w", err)
	}
	fresh := event.SelectNew(result.Records, event.KnownIDs(previous))

	// Persist before publishing: the store must already reflect this run
	// when notification handlers observe the occurrence.
	if err := o.store.SaveRecords(ctx, result.Records); err != nil {
		return nil, fmt.Errorf("saving records: %w", err)
	}

	if len(fresh) > 0 {
		occ := NewRecordsFound{Records: fresh, SourceURL: src.URL, FoundAt: now}
		if err := o.bus.Publish(ctx, occ); err != nil {
			// Notification channel errors never reach the bus; anything
			// surfacing here is a storage or cancellation failure inside a
			// handler and aborts the run.
			return nil, fmt.Errorf("publishing occurrence: %w", err)
		}
		outcome.Published = append(outcome.Published, KindNewRecordsFound)
		metrics.NewRecords.Add(float64(len(fresh)))
	}

	if err := o.store.UpdateSourceScraped(ctx, src.ID, now, true, ""); err != nil {
		return nil, fmt.Errorf("updating source status: %w", err)
	}

	outcome.Success = true
	outcome.Scraped = result.Scraped
	outcome.NewRecords = len(fresh)
	metrics.RecordsScraped.Add(float64(result.Scraped))

	logger.Info("source scraped", logger.Fields{
		"source":  src.ID,
		"scraped": outcome.Scraped,
		"new":     outcome.NewRecords,
	})
	return outcome, nil
}

// failSource records a failed outcome and source status without persisting
// any records or publishing anything.
func (o *Orchestrator) failSource(ctx context.Context, src *event.Source, outcome *Outcome, now time.Time, errText string) (*Outcome, error) {
	outcome.Error = errText
	metrics.ScrapeFailures.Inc()
	logger.Error("source scrape failed", logger.Fields{"source": src.ID}, fmt.Errorf("%s", errText))

	if err := o.store.UpdateSourceScraped(ctx, src.ID, now, false, errText); err != nil {
		return nil, fmt.Errorf("updating source status: %w", err)
	}
	return outcome, nil
}
