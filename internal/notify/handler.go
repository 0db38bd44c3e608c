package notify

import (
	"context"

	"github.com/martinnjensen/MetalWatch/internal/bus"
	"github.com/martinnjensen/MetalWatch/internal/logger"
	"github.com/martinnjensen/MetalWatch/internal/match"
	"github.com/martinnjensen/MetalWatch/internal/metrics"
	"github.com/martinnjensen/MetalWatch/internal/workflow"
)

// ProfileStore loads the preference profile used to filter new records.
type ProfileStore interface {
	Profile(ctx context.Context) (*match.Profile, error)
}

// Handler subscribes to NewRecordsFound occurrences, runs the relevance
// matcher over the new records, and forwards matches to the notification
// channel. Channel failures are logged and swallowed so that notification
// problems can never affect the workflow's persisted state.
type Handler struct {
	store    ProfileStore
	notifier Notifier
}

// NewHandler creates the handler and subscribes it to the bus.
func NewHandler(b *bus.Bus, store ProfileStore, notifier Notifier) *Handler {
	h := &Handler{store: store, notifier: notifier}
	b.Subscribe(workflow.KindNewRecordsFound, h.handle)
	return h
}

func (h *Handler) handle(ctx context.Context, occ bus.Occurrence) error {
	found, ok := occ.(workflow.NewRecordsFound)
	if !ok {
		logger.Warn("unexpected occurrence payload", logger.Fields{"kind": occ.Kind()})
		return nil
	}
	if len(found.Records) == 0 {
		return nil
	}

	profile, err := h.store.Profile(ctx)
	if err != nil {
		// Storage failures propagate to the publisher; they indicate the
		// run itself is compromised, not the channel.
		return err
	}

	matches := match.FindMatches(found.Records, profile)
	if len(matches) == 0 {
		logger.Debug("no records matched the profile", logger.Fields{
			"new": len(found.Records),
		})
		return nil
	}

	result, err := h.notifier.Notify(ctx, matches)
	if err != nil {
		logger.Error("notification channel failed", logger.Fields{
			"matches": len(matches),
			"source":  found.SourceURL,
		}, err)
		return nil
	}
	if !result.Success {
		logger.Warn("notification reported failure", logger.Fields{
			"message": result.Message,
		})
		return nil
	}

	metrics.NotificationsSent.Add(float64(result.Notified))
	logger.Info("notification sent", logger.Fields{
		"notified": result.Notified,
		"message":  result.Message,
	})
	return nil
}
