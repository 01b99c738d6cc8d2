package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytrack/internal/cli"
	"github.com/at-ishikawa/studytrack/internal/record"
)

// parseMonth parses YYYY-MM. An empty value means every month.
func parseMonth(value string) (year, month int, err error) {
	if value == "" {
		return 0, 0, nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: got %q", record.ErrInvalidMonth, value)
	}
	return t.Year(), int(t.Month()), nil
}

func newStatsCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the streak, confidence and quiz analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, monthNumber, err := parseMonth(month)
			if err != nil {
				return err
			}
			return withApplication(cmd.Context(), func(app *application) error {
				stats, err := app.service.Stats(cmd.Context(), app.today, year, monthNumber)
				if err != nil {
					return err
				}
				cli.PrintStats(cmd.OutOrStdout(), stats)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "Limit the monthly breakdown to a month (YYYY-MM)")
	return cmd
}

func newAssessCommand() *cobra.Command {
	assessCommand := &cobra.Command{
		Use:   "assess",
		Short: "Monthly self-assessment commands",
	}
	assessCommand.AddCommand(newAssessAddCommand())
	assessCommand.AddCommand(newAssessListCommand())
	return assessCommand
}

func newAssessAddCommand() *cobra.Command {
	var rating int
	var reflection string

	cmd := &cobra.Command{
		Use:   "add [month]",
		Short: "Rate a month (YYYY-MM, the current month by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				month := app.today.Format("2006-01")
				if len(args) == 1 {
					month = args[0]
				}
				assessment := &record.MonthlyAssessment{
					Month:      month,
					Reflection: reflection,
					Rating:     rating,
				}
				if err := app.service.SaveAssessment(cmd.Context(), assessment); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved the assessment of %s: %d/%d.\n", assessment.Month, assessment.Rating, record.MaxRating)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&rating, "rating", "r", 0, fmt.Sprintf("Rating from %d to %d", record.MinRating, record.MaxRating))
	cmd.Flags().StringVar(&reflection, "reflection", "", "What went well and what did not")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func newAssessListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the monthly assessments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				assessments, err := app.service.Assessments(cmd.Context())
				if err != nil {
					return err
				}
				cli.PrintAssessments(cmd.OutOrStdout(), assessments)
				return nil
			})
		},
	}
}
