package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytrack/internal/cli"
)

func newQuizCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Take today's multiple choice quiz on the current week's topic",
		Long:  "Take today's multiple choice quiz on the current week's topic. Only the first result of a day is kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				session, err := app.service.TodayQuiz(cmd.Context(), app.today)
				if err != nil {
					return err
				}
				quizCLI := cli.NewDailyQuizCLI(session, app.service, cmd.InOrStdin(), cmd.OutOrStdout())
				return quizCLI.Start(cmd.Context())
			})
		},
	}
}
