package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/martinnjensen/MetalWatch/internal/logger"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitNewRecords = 2
)

var (
	flagConfig  string
	flagDataDir string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metalwatch",
		Short: "Watch Danish metal concert calendars for new shows",
		Long: `MetalWatch scrapes configured concert calendar pages, detects shows
not seen in any previous run, and notifies you when a new show matches
your preference profile.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "metalwatch.yaml", "Path to config file")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Override data directory from config")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newProfileCmd())
	cmd.AddCommand(newSourcesCmd())

	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scrape all due sources once and report new records",
		RunE:  runOnce,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	return cmd
}

// runOnce is the one-shot command logic. Exit code 0 means no new records,
// 2 means new records were found.
func runOnce(cmd *cobra.Command, args []string) error {
	format := OutputFormat(flagFormat)
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := buildApp(ctx, flagConfig)
	if err != nil {
		return err
	}

	outcomes, err := application.orch.RunDueWorkflows(ctx)
	if err != nil {
		return fmt.Errorf("running workflows: %w", err)
	}

	result := &OutputResult{
		CheckedAt: time.Now().UTC(),
		Outcomes:  outcomes,
	}
	for _, outcome := range outcomes {
		result.NewRecords += outcome.NewRecords
	}

	if err := WriteOutput(os.Stdout, result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if result.NewRecords > 0 {
		os.Exit(ExitNewRecords)
	}
	os.Exit(ExitSuccess)
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
