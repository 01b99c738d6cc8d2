package tracker

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/progress"
	"github.com/at-ishikawa/studytrack/internal/record"
)

// SaveLog validates log and replaces whatever was logged on its date.
func (s *Service) SaveLog(ctx context.Context, log *record.DailyLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	if err := s.logs.Upsert(ctx, log); err != nil {
		return fmt.Errorf("logs.Upsert() > %w", err)
	}
	return nil
}

// GetLog returns the log of date, or nil.
func (s *Service) GetLog(ctx context.Context, date calendar.Date) (*record.DailyLog, error) {
	log, err := s.logs.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("logs.FindByDate() > %w", err)
	}
	return log, nil
}

func (s *Service) Streak(ctx context.Context, today calendar.Date) (int, error) {
	dates, err := s.logs.ListDates(ctx)
	if err != nil {
		return 0, fmt.Errorf("logs.ListDates() > %w", err)
	}
	return progress.CurrentStreak(dates, today), nil
}

// WeeklyRevision returns the topics to revise on a review day.
// Dates outside the roadmap return the calendar range error and other days ErrNotReviewDay.
func (s *Service) WeeklyRevision(ctx context.Context, date calendar.Date) ([]string, error) {
	anchor, err := s.Anchor(ctx)
	if err != nil {
		return nil, err
	}
	position, err := calendar.Locate(anchor, date)
	if err != nil {
		return nil, err
	}
	if !position.IsReviewDay() {
		return nil, fmt.Errorf("%w: %s is day %d of week %d", ErrNotReviewDay, date, position.DayInWeek(), position.Week)
	}
	return progress.WeeklyRevision(ctx, date, s.logs)
}
