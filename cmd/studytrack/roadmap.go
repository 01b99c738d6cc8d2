package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/cli"
	"github.com/at-ishikawa/studytrack/internal/tracker"
)

const missingAnchorHint = "The roadmap has not started yet. Run `studytrack init` first."

func newInitCommand() *cobra.Command {
	var start string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Start the roadmap and create the weekly goals of every week",
		Long: "Start the roadmap on --start, or on the Monday of the current week.\n" +
			"Every existing weekly goal is replaced, so --force is required once the roadmap has started.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				ctx := cmd.Context()
				startDate := tracker.DefaultStartDate(app.today)
				if start != "" {
					var err error
					if startDate, err = calendar.ParseDate(start); err != nil {
						return err
					}
				}

				anchor, err := app.service.Anchor(ctx)
				switch {
				case errors.Is(err, tracker.ErrMissingAnchor):
				case err != nil:
					return err
				case !force:
					return fmt.Errorf("the roadmap already started on %s; rerun with --force to reset every weekly goal", anchor)
				}

				count, err := app.service.Initialize(ctx, startDate)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Roadmap starts on %s with %d weekly goals.\n", startDate, count)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD). Defaults to this week's Monday")
	cmd.Flags().BoolVar(&force, "force", false, "Reset the weekly goals of a roadmap that already started")
	return cmd
}

func newTodayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's roadmap position, topics and streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				overview, err := app.service.Overview(cmd.Context(), app.today)
				if errors.Is(err, tracker.ErrMissingAnchor) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), missingAnchorHint)
					return nil
				}
				if err != nil {
					return err
				}
				cli.PrintOverview(cmd.OutOrStdout(), overview)
				return nil
			})
		},
	}
}

func newStreakCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the number of consecutive logged days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				streak, err := app.service.Streak(cmd.Context(), app.today)
				if err != nil {
					return err
				}
				cli.PrintStreak(cmd.OutOrStdout(), streak)
				return nil
			})
		},
	}
}
