package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/martinnjensen/MetalWatch/internal/event"
)

// ConsoleNotifier prints matched records to a writer, typically stdout.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a console notifier writing to stdout.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{out: os.Stdout}
}

// NewConsoleNotifierTo creates a console notifier writing to the given
// writer.
func NewConsoleNotifierTo(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// Notify prints one block per record.
func (n *ConsoleNotifier) Notify(ctx context.Context, records []*event.Record) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, r := range records {
		fmt.Fprintf(n.out, "--- Match %d/%d ---\n%s\n\n", i+1, len(records), FormatRecord(r))
	}

	return &Result{
		Success:  true,
		Message:  fmt.Sprintf("printed %d match(es) to console", len(records)),
		Notified: len(records),
	}, nil
}
