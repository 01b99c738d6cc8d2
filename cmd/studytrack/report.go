package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytrack/internal/tracker"
)

func newReportCommand() *cobra.Command {
	var generatePDF bool
	var outputDirectory string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a markdown progress report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				if outputDirectory == "" {
					outputDirectory = app.cfg.Outputs.ReportDirectory
				}
				writer := tracker.NewReportWriter(app.service, app.cfg.Templates.ReportTemplate, cmd.OutOrStdout())
				_, err := writer.OutputReport(cmd.Context(), app.today, outputDirectory, generatePDF)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&generatePDF, "pdf", false, "Also convert the report to PDF")
	cmd.Flags().StringVarP(&outputDirectory, "output", "o", "", "Output directory. Defaults to outputs.report_directory")
	return cmd
}
