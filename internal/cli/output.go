package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/martinnjensen/MetalWatch/internal/workflow"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output after a run
type OutputResult struct {
	CheckedAt  time.Time           `json:"checked_at"`
	Outcomes   []*workflow.Outcome `json:"outcomes"`
	NewRecords int                 `json:"new_records"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeText(w io.Writer, result *OutputResult) error {
	if len(result.Outcomes) == 0 {
		fmt.Fprintln(w, "No sources due for scraping.")
		return nil
	}

	for _, outcome := range result.Outcomes {
		if !outcome.Success {
			fmt.Fprintf(w, "FAIL %s: %s\n", outcome.SourceName, outcome.Error)
			continue
		}
		fmt.Fprintf(w, "OK   %s: %d scraped, %d new\n",
			outcome.SourceName, outcome.Scraped, outcome.NewRecords)
	}

	fmt.Fprintf(w, "\nTotal: %d new record(s) across %d source(s)\n",
		result.NewRecords, len(result.Outcomes))
	return nil
}
