package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/cli"
	"github.com/at-ishikawa/studytrack/internal/record"
)

func newLogCommand() *cobra.Command {
	logCommand := &cobra.Command{
		Use:   "log",
		Short: "Daily study log commands",
	}
	logCommand.AddCommand(newLogSaveCommand())
	logCommand.AddCommand(newLogShowCommand())
	return logCommand
}

func newLogSaveCommand() *cobra.Command {
	var topics []string
	var notes string
	var confidence int

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save today's log, replacing anything logged on the same day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				log := &record.DailyLog{
					Date:       app.today,
					Topics:     record.NormalizeTopics(topics),
					Notes:      notes,
					Confidence: confidence,
				}
				if err := app.service.SaveLog(cmd.Context(), log); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved the log of %s.\n", log.Date)
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVarP(&topics, "topics", "t", nil, "Topics studied, separated by commas")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-form notes")
	cmd.Flags().IntVarP(&confidence, "confidence", "c", 0, fmt.Sprintf("Confidence from %d to %d", record.MinConfidence, record.MaxConfidence))
	_ = cmd.MarkFlagRequired("confidence")
	return cmd
}

func newLogShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show the log of a date, today by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				date := app.today
				if len(args) == 1 {
					var err error
					if date, err = calendar.ParseDate(args[0]); err != nil {
						return err
					}
				}
				log, err := app.service.GetLog(cmd.Context(), date)
				if err != nil {
					return err
				}
				if log == nil {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Nothing was logged on %s.\n", date)
					return nil
				}
				cli.PrintLog(cmd.OutOrStdout(), log)
				return nil
			})
		},
	}
}
