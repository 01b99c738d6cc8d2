package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/at-ishikawa/studytrack/internal/assets"
	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/pdf"
	"github.com/at-ishikawa/studytrack/internal/progress"
	"github.com/at-ishikawa/studytrack/internal/record"
)

// Report is everything the progress report shows.
type Report struct {
	Date calendar.Date
	// Anchor is nil when the roadmap has not been initialized.
	Anchor      *calendar.Date
	Position    calendar.Position
	RangeErr    error
	CurrentWeek int
	Weeks       []WeekGoals
	Projects    []ProjectView
	Stats       *Stats
	Assessments []record.MonthlyAssessment
}

func (s *Service) Report(ctx context.Context, today calendar.Date) (*Report, error) {
	report := &Report{Date: today}

	anchor, err := s.Anchor(ctx)
	switch {
	case errors.Is(err, ErrMissingAnchor):
	case err != nil:
		return nil, err
	default:
		report.Anchor = &anchor
		report.Position, report.RangeErr = calendar.Locate(anchor, today)
		report.CurrentWeek = calendar.CurrentWeek(anchor, today)
		if report.Weeks, err = s.allWeekGoals(ctx, anchor); err != nil {
			return nil, err
		}
	}

	if report.Projects, err = s.Projects(ctx, today); err != nil {
		return nil, err
	}
	if report.Stats, err = s.Stats(ctx, today, 0, 0); err != nil {
		return nil, err
	}
	if report.Assessments, err = s.Assessments(ctx); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) allWeekGoals(ctx context.Context, anchor calendar.Date) ([]WeekGoals, error) {
	goals, err := s.goals.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("goals.FindAll() > %w", err)
	}
	byWeekStart := make(map[string][]record.WeeklyGoal)
	for _, goal := range goals {
		key := goal.WeekStart.String()
		byWeekStart[key] = append(byWeekStart[key], goal)
	}

	weeks := make([]WeekGoals, 0, calendar.TotalWeeks)
	for _, info := range s.catalog.Weeks() {
		weekStart := calendar.WeekStart(anchor, info.Number)
		week := WeekGoals{
			Week:      info.Number,
			Title:     info.Title,
			WeekStart: weekStart,
			Goals:     byWeekStart[weekStart.String()],
		}
		week.Done, week.Percent = progress.GoalProgress(week.Goals)
		weeks = append(weeks, week)
	}
	return weeks, nil
}

// ReportWriter renders the progress report to markdown and optionally PDF.
type ReportWriter struct {
	service      *Service
	templatePath string
	stdout       io.Writer
}

func NewReportWriter(service *Service, templatePath string, stdout io.Writer) *ReportWriter {
	return &ReportWriter{
		service:      service,
		templatePath: templatePath,
		stdout:       stdout,
	}
}

// OutputReport writes progress-<date>.md into outputDirectory and returns its path.
func (writer ReportWriter) OutputReport(ctx context.Context, today calendar.Date, outputDirectory string, generatePDF bool) (string, error) {
	report, err := writer.service.Report(ctx, today)
	if err != nil {
		return "", fmt.Errorf("service.Report() > %w", err)
	}

	if err := os.MkdirAll(outputDirectory, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", outputDirectory, err)
	}
	outputFilename := filepath.Join(outputDirectory, "progress-"+today.String()+".md")
	output, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", outputFilename, err)
	}
	defer func() {
		_ = output.Close()
	}()

	if err := assets.WriteProgressReport(output, writer.templatePath, convertToAssetsReport(report)); err != nil {
		return "", fmt.Errorf("assets.WriteProgressReport(%s, %s) > %w", outputFilename, writer.templatePath, err)
	}
	_, _ = fmt.Fprintf(writer.stdout, "Progress report written to: %s\n", outputFilename)

	if generatePDF {
		if err := output.Sync(); err != nil {
			return "", fmt.Errorf("output.Sync() > %w", err)
		}
		pdfPath, err := pdf.ConvertMarkdownToPDF(outputFilename)
		if err != nil {
			return "", fmt.Errorf("pdf.ConvertMarkdownToPDF(%s) > %w", outputFilename, err)
		}
		_, _ = fmt.Fprintf(writer.stdout, "PDF generated at: %s\n", pdfPath)
	}
	return outputFilename, nil
}

func convertToAssetsReport(report *Report) assets.ProgressReport {
	result := assets.ProgressReport{
		GeneratedOn:       report.Date.String(),
		Streak:            report.Stats.Streak,
		TotalLogs:         report.Stats.TotalLogs,
		AverageConfidence: report.Stats.AverageConfidence,
	}

	if report.Anchor != nil {
		result.StartDate = report.Anchor.String()
		switch {
		case errors.Is(report.RangeErr, calendar.ErrBeforeStart):
			result.Position = "It has not started yet."
		case errors.Is(report.RangeErr, calendar.ErrPastEnd):
			result.Position = "It is complete."
		default:
			result.Position = fmt.Sprintf("Day %d of %d, week %d.", report.Position.Day, calendar.TotalDays, report.Position.Week)
		}
	}

	for _, week := range report.Weeks {
		result.Weeks = append(result.Weeks, assets.ReportWeek{
			Number:  week.Week,
			Title:   week.Title,
			Start:   week.WeekStart.String(),
			Done:    week.Done,
			Total:   len(week.Goals),
			Percent: week.Percent,
			Current: week.Week == report.CurrentWeek,
		})
	}
	for _, project := range report.Projects {
		status := "Unknown"
		if project.Status != "" {
			status = project.Status.Label()
		}
		result.Projects = append(result.Projects, assets.ReportProject{
			Day:    project.RoadmapDay,
			Name:   project.Name,
			Status: status,
			Link:   project.Link,
		})
	}
	for _, log := range report.Stats.RecentLogs {
		result.RecentLogs = append(result.RecentLogs, assets.ReportLog{
			Date:       log.Date.String(),
			Topics:     log.Topics,
			Confidence: log.Confidence,
			Notes:      log.Notes,
		})
	}
	for _, quiz := range report.Stats.Quizzes {
		result.Quizzes = append(result.Quizzes, assets.ReportQuiz{
			Date:  quiz.Date.String(),
			Topic: quiz.Topic,
			Score: quiz.Score,
			Total: quiz.Total,
		})
	}
	for _, assessment := range report.Assessments {
		result.Assessments = append(result.Assessments, assets.ReportAssessment(assessment))
	}
	return result
}
