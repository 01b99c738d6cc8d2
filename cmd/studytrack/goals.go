package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytrack/internal/cli"
	"github.com/at-ishikawa/studytrack/internal/tracker"
)

func newGoalsCommand() *cobra.Command {
	goalsCommand := &cobra.Command{
		Use:   "goals",
		Short: "Weekly goal commands",
	}
	goalsCommand.AddCommand(newGoalsListCommand())
	goalsCommand.AddCommand(newGoalsToggleCommand())
	goalsCommand.AddCommand(newGoalsDeleteCommand())
	return goalsCommand
}

func newGoalsListCommand() *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the goals of a week with its progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				goals, err := app.service.WeekGoals(cmd.Context(), app.today, week)
				if errors.Is(err, tracker.ErrMissingAnchor) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), missingAnchorHint)
					return nil
				}
				if err != nil {
					return err
				}
				cli.PrintWeekGoals(cmd.OutOrStdout(), goals)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&week, "week", "w", 0, "Week number. Defaults to the current week")
	return cmd
}

func newGoalsToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the completion of a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				goal, err := app.service.ToggleGoal(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				state := "not done"
				if goal.Done {
					state = "done"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as %s.\n", goal.Text, state)
				return nil
			})
		},
	}
}

func newGoalsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				if err := app.service.DeleteGoal(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %s.\n", args[0])
				return nil
			})
		},
	}
}
