package tracker

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/progress"
	"github.com/at-ishikawa/studytrack/internal/record"
)

// WeekGoals is the goal list of one roadmap week.
type WeekGoals struct {
	Week      int
	Title     string
	WeekStart calendar.Date
	Goals     []record.WeeklyGoal
	Done      int
	Percent   int
}

// WeekGoals returns the goals of week, or of the current week when week is 0.
func (s *Service) WeekGoals(ctx context.Context, today calendar.Date, week int) (*WeekGoals, error) {
	anchor, err := s.Anchor(ctx)
	if err != nil {
		return nil, err
	}
	if week == 0 {
		week = calendar.CurrentWeek(anchor, today)
	}
	if week < 1 || week > calendar.TotalWeeks {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWeek, week)
	}

	weekStart := calendar.WeekStart(anchor, week)
	goals, err := s.goals.FindByWeek(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("goals.FindByWeek() > %w", err)
	}
	result := &WeekGoals{
		Week:      week,
		WeekStart: weekStart,
		Goals:     goals,
	}
	if info, ok := s.catalog.Week(week); ok {
		result.Title = info.Title
	}
	result.Done, result.Percent = progress.GoalProgress(goals)
	return result, nil
}

// ToggleGoal flips the completion flag of a goal and returns the updated goal.
func (s *Service) ToggleGoal(ctx context.Context, id string) (*record.WeeklyGoal, error) {
	goal, err := s.findGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	goal.Done = !goal.Done
	if err := s.goals.SetDone(ctx, id, goal.Done); err != nil {
		return nil, fmt.Errorf("goals.SetDone() > %w", err)
	}
	return goal, nil
}

func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	if _, err := s.findGoal(ctx, id); err != nil {
		return err
	}
	if err := s.goals.Delete(ctx, id); err != nil {
		return fmt.Errorf("goals.Delete() > %w", err)
	}
	return nil
}

func (s *Service) findGoal(ctx context.Context, id string) (*record.WeeklyGoal, error) {
	goal, err := s.goals.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("goals.FindByID() > %w", err)
	}
	if goal == nil {
		return nil, fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	}
	return goal, nil
}
