package notify

import (
	"context"

	"github.com/martinnjensen/MetalWatch/internal/event"
)

// Result reports the outcome of one notification attempt.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Notified int    `json:"notified"`
}

// Notifier defines the interface for delivering matched records.
type Notifier interface {
	// Notify delivers notifications for the given records.
	Notify(ctx context.Context, records []*event.Record) (*Result, error)
}
