package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/record"
	"github.com/at-ishikawa/studytrack/internal/statistics"
)

const recentLogLimit = 3

// Stats is the analytics dashboard.
type Stats struct {
	Streak            int
	TotalLogs         int
	AverageConfidence float64
	RecentLogs        []record.DailyLog
	Trend             []statistics.ConfidencePoint
	// Quizzes is newest first.
	Quizzes []record.QuizResult
	Monthly statistics.StatisticsResult
}

// Stats computes the dashboard. year and month filter the monthly breakdown; 0 means all.
func (s *Service) Stats(ctx context.Context, today calendar.Date, year, month int) (*Stats, error) {
	logs, err := s.logs.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("logs.FindAll() > %w", err)
	}
	recent, err := s.logs.FindRecent(ctx, recentLogLimit)
	if err != nil {
		return nil, fmt.Errorf("logs.FindRecent() > %w", err)
	}
	quizzes, err := s.QuizHistory(ctx)
	if err != nil {
		return nil, err
	}
	streak, err := s.Streak(ctx, today)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Streak:            streak,
		TotalLogs:         len(logs),
		AverageConfidence: statistics.AverageConfidence(logs),
		RecentLogs:        recent,
		Trend:             statistics.ConfidenceTrend(logs),
		Quizzes:           quizzes,
		Monthly:           statistics.CalculateStatistics(logs, quizzes, year, month),
	}, nil
}

// SaveAssessment validates assessment and replaces the one of the same month.
func (s *Service) SaveAssessment(ctx context.Context, assessment *record.MonthlyAssessment) error {
	assessment.Reflection = strings.TrimSpace(assessment.Reflection)
	if err := assessment.Validate(); err != nil {
		return err
	}
	if err := s.assessments.Upsert(ctx, assessment); err != nil {
		return fmt.Errorf("assessments.Upsert() > %w", err)
	}
	return nil
}

// Assessments returns every monthly assessment, newest month first.
func (s *Service) Assessments(ctx context.Context) ([]record.MonthlyAssessment, error) {
	assessments, err := s.assessments.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("assessments.FindAll() > %w", err)
	}
	return assessments, nil
}
