package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/martinnjensen/MetalWatch/internal/match"
)

var (
	flagArtists  []string
	flagVenues   []string
	flagKeywords []string
	flagFrom     string
	flagTo       string
	flagNotify   string
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the preference profile",
		RunE:  runProfileShow,
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the preference profile",
		RunE:  runProfileSet,
	}
	setCmd.Flags().StringSliceVar(&flagArtists, "artists", nil, "Favorite artists")
	setCmd.Flags().StringSliceVar(&flagVenues, "venues", nil, "Favorite venues")
	setCmd.Flags().StringSliceVar(&flagKeywords, "keywords", nil, "Keywords matched against artist names")
	setCmd.Flags().StringVar(&flagFrom, "from", "", "Earliest date of interest (YYYY-MM-DD)")
	setCmd.Flags().StringVar(&flagTo, "to", "", "Latest date of interest (YYYY-MM-DD)")
	setCmd.Flags().StringVar(&flagNotify, "notify", "", "Notification address")

	cmd.AddCommand(setCmd)
	return cmd
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := buildApp(ctx, flagConfig)
	if err != nil {
		return err
	}

	profile, err := application.store.Profile(ctx)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	if profile == nil {
		fmt.Println("No preference profile stored. Use 'metalwatch profile set' to create one.")
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(profile)
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := buildApp(ctx, flagConfig)
	if err != nil {
		return err
	}

	profile := &match.Profile{
		FavoriteArtists: flagArtists,
		FavoriteVenues:  flagVenues,
		Keywords:        flagKeywords,
		NotifyAddress:   flagNotify,
	}

	if flagFrom != "" {
		from, err := time.Parse("2006-01-02", flagFrom)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		profile.StartDate = &from
	}
	if flagTo != "" {
		to, err := time.Parse("2006-01-02", flagTo)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		profile.EndDate = &to
	}

	if err := application.store.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	fmt.Println("Profile saved.")
	return nil
}
