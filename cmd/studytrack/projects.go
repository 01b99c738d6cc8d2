package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytrack/internal/cli"
	"github.com/at-ishikawa/studytrack/internal/record"
)

func newProjectsCommand() *cobra.Command {
	projectsCommand := &cobra.Command{
		Use:   "projects",
		Short: "Portfolio project commands",
	}
	projectsCommand.AddCommand(
		newProjectsListCommand(),
		newProjectsStatusCommand(),
		newProjectsLinkCommand(),
		newProjectsAddCommand(),
		newProjectsSetStatusCommand(),
	)
	return projectsCommand
}

func newProjectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the roadmap projects and your own projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), func(app *application) error {
				projects, err := app.service.Projects(cmd.Context(), app.today)
				if err != nil {
					return err
				}
				cli.PrintProjects(cmd.OutOrStdout(), projects)
				return nil
			})
		},
	}
}

func parseRoadmapDay(value string) (int, error) {
	day, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid roadmap day %q: %w", value, err)
	}
	return day, nil
}

func newProjectsStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <day> <status>",
		Short: "Set the status of the roadmap project due on a day",
		Long:  "Set the status of the roadmap project due on a day. The status is one of not_started, in_progress or done.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseRoadmapDay(args[0])
			if err != nil {
				return err
			}
			status, err := record.ParseProjectStatus(args[1])
			if err != nil {
				return err
			}
			return withApplication(cmd.Context(), func(app *application) error {
				project, err := app.service.SetRoadmapProjectStatus(cmd.Context(), day, status)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s.\n", project.Name, project.Status.Label())
				return nil
			})
		},
	}
}

func newProjectsLinkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "link <day> <url>",
		Short: "Attach a link to the roadmap project due on a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseRoadmapDay(args[0])
			if err != nil {
				return err
			}
			return withApplication(cmd.Context(), func(app *application) error {
				project, err := app.service.LinkRoadmapProject(cmd.Context(), day, args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Linked %s to %s.\n", project.Name, project.Link)
				return nil
			})
		},
	}
}

func newProjectsAddCommand() *cobra.Command {
	var description string
	var status string
	var link string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project outside of the roadmap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var projectStatus record.ProjectStatus
			if status != "" {
				var err error
				if projectStatus, err = record.ParseProjectStatus(status); err != nil {
					return err
				}
			}
			return withApplication(cmd.Context(), func(app *application) error {
				project, err := app.service.AddProject(cmd.Context(), args[0], description, projectStatus, link)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (id: %s).\n", project.Name, project.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "What the project is about")
	cmd.Flags().StringVarP(&status, "status", "s", "", "not_started, in_progress or done. Defaults to not_started")
	cmd.Flags().StringVarP(&link, "link", "l", "", "Repository or demo URL")
	return cmd
}

func newProjectsSetStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Set the status of a project by its id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := record.ParseProjectStatus(args[1])
			if err != nil {
				return err
			}
			return withApplication(cmd.Context(), func(app *application) error {
				project, err := app.service.SetProjectStatus(cmd.Context(), args[0], status)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s.\n", project.Name, project.Status.Label())
				return nil
			})
		},
	}
}
