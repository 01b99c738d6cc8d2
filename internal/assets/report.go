package assets

import (
	"fmt"
	"io"
)

// ProgressReport is the data of the markdown progress report
type ProgressReport struct {
	GeneratedOn string
	// StartDate is empty when the roadmap has not been initialized.
	StartDate string
	Position  string

	Streak            int
	TotalLogs         int
	AverageConfidence float64

	Weeks       []ReportWeek
	Projects    []ReportProject
	RecentLogs  []ReportLog
	Quizzes     []ReportQuiz
	Assessments []ReportAssessment
}

type ReportWeek struct {
	Number  int
	Title   string
	Start   string
	Done    int
	Total   int
	Percent int
	Current bool
}

type ReportProject struct {
	Day    int
	Name   string
	Status string
	Link   string
}

type ReportLog struct {
	Date       string
	Topics     []string
	Confidence int
	Notes      string
}

type ReportQuiz struct {
	Date  string
	Topic string
	Score int
	Total int
}

type ReportAssessment struct {
	Month      string
	Reflection string
	Rating     int
}

func WriteProgressReport(output io.Writer, templatePath string, templateData ProgressReport) error {
	tmpl, err := ParseProgressReportTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseProgressReportTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
