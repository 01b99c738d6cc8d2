package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytrack/internal/datasync"
)

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every record to a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				if output == "" {
					output = filepath.Join(app.cfg.Outputs.ExportDirectory, "studytrack-"+app.today.String()+".yml")
				}
				snapshot, err := datasync.NewExporter(app.repos).Export(cmd.Context(), app.today)
				if err != nil {
					return fmt.Errorf("exporter.Export() > %w", err)
				}
				if err := datasync.WriteFile(output, snapshot); err != nil {
					return fmt.Errorf("datasync.WriteFile(%s) > %w", output, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d logs, %d goals, %d projects, %d quiz results and %d assessments to %s\n",
					len(snapshot.DailyLogs), len(snapshot.WeeklyGoals), len(snapshot.Projects), len(snapshot.Quizzes), len(snapshot.Assessments), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file. Defaults to a dated file in outputs.export_directory")
	return cmd
}

func newImportCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import records from an exported YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := datasync.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("datasync.ReadFile(%s) > %w", args[0], err)
			}
			return withApplication(cmd.Context(), func(app *application) error {
				stdout := cmd.OutOrStdout()
				importer := datasync.NewImporter(app.repos, stdout)
				opts := datasync.ImportOptions{
					DryRun:         dryRun,
					UpdateExisting: updateExisting,
				}
				result, err := importer.Import(cmd.Context(), snapshot, opts)
				if err != nil {
					return fmt.Errorf("importer.Import() > %w", err)
				}

				_, _ = fmt.Fprintln(stdout, "\nImport Summary:")
				if opts.DryRun {
					_, _ = fmt.Fprintln(stdout, "  (dry-run mode, no changes made)")
				}
				for _, row := range []struct {
					name   string
					counts datasync.Counts
				}{
					{name: "Start date", counts: result.Settings},
					{name: "Daily logs", counts: result.DailyLogs},
					{name: "Weekly goals", counts: result.WeeklyGoals},
					{name: "Projects", counts: result.Projects},
					{name: "Quiz results", counts: result.Quizzes},
					{name: "Assessments", counts: result.Assessments},
				} {
					_, _ = fmt.Fprintf(stdout, "  %-14s %d new, %d skipped, %d updated\n", row.name+":", row.counts.New, row.counts.Skipped, row.counts.Updated)
				}
				if result.Warnings > 0 {
					_, _ = fmt.Fprintf(stdout, "  Warnings:      %d\n", result.Warnings)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	return cmd
}
