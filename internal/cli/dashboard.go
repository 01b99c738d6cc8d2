package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/record"
	"github.com/at-ishikawa/studytrack/internal/tracker"
)

var (
	heading = color.New(color.Bold, color.FgCyan)
	muted   = color.New(color.Faint)
)

// PrintOverview writes the "today" dashboard.
func PrintOverview(w io.Writer, overview *tracker.Overview) {
	_, _ = heading.Fprintf(w, "%s\n", overview.Date)

	switch {
	case errors.Is(overview.RangeErr, calendar.ErrBeforeStart):
		_, _ = fmt.Fprintf(w, "The roadmap starts on %s (%d days to go).\n",
			overview.Anchor, 1-overview.Position.Day)
	case errors.Is(overview.RangeErr, calendar.ErrPastEnd):
		_, _ = fmt.Fprintf(w, "The roadmap finished %d days ago. Congratulations!\n",
			overview.Position.Day-calendar.TotalDays)
	default:
		_, _ = fmt.Fprintf(w, "Day %d / %d, week %d: %s\n",
			overview.Position.Day, calendar.TotalDays, overview.Position.Week, overview.Week.Title)
		if overview.Day.Title != "" {
			_, _ = fmt.Fprintf(w, "Today: %s\n", overview.Day.Title)
		}
		for _, topic := range overview.Day.Topics {
			_, _ = fmt.Fprintf(w, "  - %s\n", topic)
		}
	}

	if overview.Position.IsReviewDay() && overview.RangeErr == nil {
		_, _ = heading.Fprintln(w, "Weekly revision")
		if len(overview.RevisionTopics) == 0 {
			_, _ = muted.Fprintln(w, "  No topics logged this week.")
		}
		for _, topic := range overview.RevisionTopics {
			_, _ = fmt.Fprintf(w, "  - %s\n", topic)
		}
	}

	if overview.Log != nil {
		_, _ = fmt.Fprintf(w, "Logged today: %s (confidence %d/%d)\n",
			strings.Join(overview.Log.Topics, ", "), overview.Log.Confidence, record.MaxConfidence)
	} else {
		_, _ = muted.Fprintln(w, "Nothing logged today yet.")
	}
	PrintStreak(w, overview.Streak)
}

// PrintLog writes one daily log.
func PrintLog(w io.Writer, log *record.DailyLog) {
	_, _ = heading.Fprintf(w, "%s\n", log.Date)
	_, _ = fmt.Fprintf(w, "Topics: %s\n", strings.Join(log.Topics, ", "))
	_, _ = fmt.Fprintf(w, "Confidence: %d/%d\n", log.Confidence, record.MaxConfidence)
	if log.Notes != "" {
		_, _ = fmt.Fprintf(w, "Notes:\n%s\n", log.Notes)
	}
}

// PrintWeekGoals writes a week's checklist with its progress.
func PrintWeekGoals(w io.Writer, goals *tracker.WeekGoals) {
	_, _ = heading.Fprintf(w, "Week %d: %s (from %s)\n", goals.Week, goals.Title, goals.WeekStart)
	if len(goals.Goals) == 0 {
		_, _ = muted.Fprintln(w, "No goals for this week.")
		return
	}
	for _, goal := range goals.Goals {
		mark := "[ ]"
		if goal.Done {
			mark = "[x]"
		}
		_, _ = fmt.Fprintf(w, "%s %s  %s\n", mark, goal.Text, muted.Sprint(goal.ID))
	}
	_, _ = fmt.Fprintf(w, "Progress: %d/%d (%d%%)\n", goals.Done, len(goals.Goals), goals.Percent)
}

// PrintProjects writes the project portfolio.
func PrintProjects(w io.Writer, projects []tracker.ProjectView) {
	for _, project := range projects {
		if project.RoadmapDay > 0 {
			_, _ = heading.Fprintf(w, "Day %d: %s", project.RoadmapDay, project.Name)
		} else {
			_, _ = heading.Fprint(w, project.Name)
		}
		_, _ = fmt.Fprintf(w, " [%s]\n", statusColor(project.Status).Sprint(statusLabel(project.Status)))
		if project.Description != "" {
			_, _ = fmt.Fprintf(w, "  %s\n", project.Description)
		}
		for _, feature := range project.Features {
			_, _ = fmt.Fprintf(w, "  - %s\n", feature)
		}
		if project.Link != "" {
			_, _ = fmt.Fprintf(w, "  Link: %s\n", project.Link)
		}
		if project.Record != nil && project.RoadmapDay == 0 {
			_, _ = muted.Fprintf(w, "  id: %s\n", project.Record.ID)
		}
	}
}

func statusLabel(status record.ProjectStatus) string {
	if status == "" {
		return "Unknown"
	}
	return status.Label()
}

func statusColor(status record.ProjectStatus) *color.Color {
	switch status {
	case record.ProjectStatusDone:
		return color.New(color.FgGreen)
	case record.ProjectStatusInProgress:
		return color.New(color.FgYellow)
	case record.ProjectStatusMissing:
		return color.New(color.FgRed)
	default:
		return color.New(color.Reset)
	}
}

// PrintStats writes the analytics dashboard.
func PrintStats(w io.Writer, stats *tracker.Stats) {
	_, _ = heading.Fprintln(w, "Overview")
	_, _ = fmt.Fprintf(w, "Streak: %d %s\n", stats.Streak, plural(stats.Streak, "day", "days"))
	_, _ = fmt.Fprintf(w, "Total logs: %d\n", stats.TotalLogs)
	_, _ = fmt.Fprintf(w, "Average confidence: %.1f\n", stats.AverageConfidence)

	_, _ = heading.Fprintln(w, "Recent logs")
	if len(stats.RecentLogs) == 0 {
		_, _ = muted.Fprintln(w, "  none")
	}
	for _, log := range stats.RecentLogs {
		_, _ = fmt.Fprintf(w, "  %s  %d/%d  %s\n", log.Date, log.Confidence, record.MaxConfidence, strings.Join(log.Topics, ", "))
	}

	if len(stats.Trend) > 0 {
		_, _ = heading.Fprintln(w, "Confidence trend")
		for _, point := range stats.Trend {
			_, _ = fmt.Fprintf(w, "  %s %s\n", point.Date, strings.Repeat("█", point.Confidence))
		}
	}

	_, _ = heading.Fprintln(w, "Quiz history")
	if len(stats.Quizzes) == 0 {
		_, _ = muted.Fprintln(w, "  none")
	}
	for _, result := range stats.Quizzes {
		_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", result.Date,
			scoreColor(result.Score, result.Total).Sprintf("%2d/%d", result.Score, result.Total), result.Topic)
	}

	if len(stats.Monthly.Periods) > 0 {
		_, _ = heading.Fprintln(w, "By month")
		for _, period := range stats.Monthly.Periods {
			_, _ = fmt.Fprintf(w, "  %s  logs %d  topics %d  confidence %.1f  quizzes %d  avg score %.1f\n",
				period.Period, period.LogCount, period.UniqueTopics, period.AverageConfidence,
				period.QuizCount, period.AverageQuizScore)
		}
	}
}

// PrintAssessments writes monthly assessments as given.
func PrintAssessments(w io.Writer, assessments []record.MonthlyAssessment) {
	if len(assessments) == 0 {
		_, _ = muted.Fprintln(w, "No assessments yet.")
		return
	}
	for _, assessment := range assessments {
		_, _ = heading.Fprintf(w, "%s  %d/%d\n", assessment.Month, assessment.Rating, record.MaxRating)
		if assessment.Reflection != "" {
			_, _ = fmt.Fprintf(w, "%s\n", assessment.Reflection)
		}
	}
}

func PrintStreak(w io.Writer, streak int) {
	_, _ = fmt.Fprintf(w, "🔥 Streak: %d %s\n", streak, plural(streak, "day", "days"))
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return singular
	}
	return many
}
