package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List configured sources and their scrape status",
		RunE:  runSources,
	}
}

func runSources(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := buildApp(ctx, flagConfig)
	if err != nil {
		return err
	}

	sources, err := application.store.Sources(ctx)
	if err != nil {
		return fmt.Errorf("loading sources: %w", err)
	}
	if len(sources) == 0 {
		fmt.Println("No sources configured.")
		return nil
	}

	now := time.Now().UTC()
	for _, src := range sources {
		state := "disabled"
		if src.Enabled {
			state = "idle"
			if src.Due(now) {
				state = "due"
			}
		}

		fmt.Printf("%s (%s)\n", src.Name, src.ID)
		fmt.Printf("  url:      %s\n", src.URL)
		fmt.Printf("  scraper:  %s\n", src.ScraperKey)
		fmt.Printf("  interval: %s\n", src.Interval)
		fmt.Printf("  state:    %s\n", state)
		if src.LastScraped != nil {
			status := "ok"
			if src.LastSuccess != nil && !*src.LastSuccess {
				status = fmt.Sprintf("failed: %s", src.LastError)
			}
			fmt.Printf("  last:     %s (%s)\n", src.LastScraped.Format(time.RFC3339), status)
		}
		fmt.Println()
	}
	return nil
}
