// Package tracker implements the study tracker use cases on top of the
// record repositories, the roadmap catalog and the derivation rules.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/progress"
	"github.com/at-ishikawa/studytrack/internal/record"
	"github.com/at-ishikawa/studytrack/internal/roadmap"
)

var (
	ErrMissingAnchor  = errors.New("roadmap start date is not set")
	ErrUnknownProject = errors.New("unknown project")
	ErrGoalNotFound   = errors.New("goal not found")
	ErrNotReviewDay   = errors.New("not a weekly review day")
	ErrInvalidWeek    = fmt.Errorf("week must be between 1 and %d", calendar.TotalWeeks)
)

// Repositories groups the storage the service depends on.
type Repositories struct {
	Logs        record.LogRepository
	Goals       record.GoalRepository
	Projects    record.ProjectRepository
	Quizzes     record.QuizRepository
	Settings    record.SettingRepository
	Assessments record.AssessmentRepository
}

type Service struct {
	logs        record.LogRepository
	goals       record.GoalRepository
	projects    record.ProjectRepository
	quizzes     record.QuizRepository
	settings    record.SettingRepository
	assessments record.AssessmentRepository
	catalog     *roadmap.Catalog
	newID       func() string
}

func NewService(repos Repositories, catalog *roadmap.Catalog) *Service {
	return &Service{
		logs:        repos.Logs,
		goals:       repos.Goals,
		projects:    repos.Projects,
		quizzes:     repos.Quizzes,
		settings:    repos.Settings,
		assessments: repos.Assessments,
		catalog:     catalog,
		newID:       uuid.NewString,
	}
}

func (s *Service) Catalog() *roadmap.Catalog {
	return s.catalog
}

// Anchor returns the roadmap start date, or ErrMissingAnchor.
func (s *Service) Anchor(ctx context.Context) (calendar.Date, error) {
	value, ok, err := s.settings.Find(ctx, record.SettingRoadmapStartDate)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("settings.Find() > %w", err)
	}
	if !ok || value == "" {
		return calendar.Date{}, ErrMissingAnchor
	}
	anchor, err := calendar.ParseDate(value)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid %s setting %q: %w", record.SettingRoadmapStartDate, value, err)
	}
	return anchor, nil
}

// DefaultStartDate returns the Monday of the week containing today.
func DefaultStartDate(today calendar.Date) calendar.Date {
	offset := (int(today.Weekday()) + 6) % 7
	return today.AddDays(-offset)
}

// Initialize replaces every weekly goal with the roadmap goals anchored at start
// and stores start as the roadmap start date. It returns the number of goals created.
func (s *Service) Initialize(ctx context.Context, start calendar.Date) (int, error) {
	var goals []record.WeeklyGoal
	for _, week := range s.catalog.Weeks() {
		weekStart := calendar.WeekStart(start, week.Number)
		for i, goal := range week.Goals {
			goals = append(goals, record.WeeklyGoal{
				ID:        s.newID(),
				WeekStart: weekStart,
				Text:      fmt.Sprintf("Week %d [%s]: %s", week.Number, week.Title, goal),
				SortOrder: i,
			})
		}
	}

	if err := s.goals.ReplaceAll(ctx, goals); err != nil {
		return 0, fmt.Errorf("goals.ReplaceAll() > %w", err)
	}
	if err := s.settings.Upsert(ctx, record.SettingRoadmapStartDate, start.String()); err != nil {
		return 0, fmt.Errorf("settings.Upsert() > %w", err)
	}
	slog.Default().Info("roadmap initialized",
		slog.String("start", start.String()),
		slog.Int("goals", len(goals)),
	)
	return len(goals), nil
}

// Overview is the state of the roadmap on one date.
type Overview struct {
	Date   calendar.Date
	Anchor calendar.Date
	// Position is only meaningful when RangeErr is nil.
	Position calendar.Position
	// RangeErr is calendar.ErrBeforeStart or calendar.ErrPastEnd when Date is outside the roadmap.
	RangeErr error
	// Week is the current week clamped to the roadmap.
	Week           roadmap.WeekInfo
	Day            roadmap.DayInfo
	Log            *record.DailyLog
	Streak         int
	RevisionTopics []string
}

// Overview returns today's roadmap position, its topics and the engagement state.
func (s *Service) Overview(ctx context.Context, today calendar.Date) (*Overview, error) {
	anchor, err := s.Anchor(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{Date: today, Anchor: anchor}
	overview.Position, overview.RangeErr = calendar.Locate(anchor, today)
	overview.Week, _ = s.catalog.Week(calendar.CurrentWeek(anchor, today))
	if overview.RangeErr == nil {
		overview.Day, _ = s.catalog.Day(overview.Position.Day)
	}

	if overview.Log, err = s.logs.FindByDate(ctx, today); err != nil {
		return nil, fmt.Errorf("logs.FindByDate() > %w", err)
	}
	if overview.Streak, err = s.Streak(ctx, today); err != nil {
		return nil, err
	}
	if overview.RangeErr == nil && overview.Position.IsReviewDay() {
		topics, err := progress.WeeklyRevision(ctx, today, s.logs)
		if err != nil && !errors.Is(err, progress.ErrNoRevisionTopics) {
			return nil, fmt.Errorf("progress.WeeklyRevision() > %w", err)
		}
		overview.RevisionTopics = topics
	}
	return overview, nil
}

// currentDay returns the program day number of today, which may be outside 1..168.
func (s *Service) currentDay(ctx context.Context, today calendar.Date) (int, error) {
	anchor, err := s.Anchor(ctx)
	if err != nil {
		return 0, err
	}
	return calendar.DayNumber(anchor, today), nil
}
