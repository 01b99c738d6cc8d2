package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/quiz"
	"github.com/at-ishikawa/studytrack/internal/record"
)

// QuizSession is the quiz of one day. Existing is set when the day was already graded.
type QuizSession struct {
	Date      calendar.Date
	Topic     string
	Questions []quiz.Question
	Existing  *record.QuizResult
}

type SubmitResult struct {
	Result *record.QuizResult
	// Created is false when a result already existed for the date and was kept.
	Created bool
}

// QuizTopic returns the title of the current roadmap week, or quiz.DefaultTopic
// when the roadmap has not been initialized.
func (s *Service) QuizTopic(ctx context.Context, today calendar.Date) (string, error) {
	anchor, err := s.Anchor(ctx)
	if errors.Is(err, ErrMissingAnchor) {
		return quiz.DefaultTopic, nil
	}
	if err != nil {
		return "", err
	}
	week, ok := s.catalog.Week(calendar.CurrentWeek(anchor, today))
	if !ok || week.Title == "" {
		return quiz.DefaultTopic, nil
	}
	return week.Title, nil
}

func (s *Service) TodayQuiz(ctx context.Context, today calendar.Date) (*QuizSession, error) {
	topic, err := s.QuizTopic(ctx, today)
	if err != nil {
		return nil, err
	}
	existing, err := s.quizzes.FindByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("quizzes.FindByDate() > %w", err)
	}
	return &QuizSession{
		Date:      today,
		Topic:     topic,
		Questions: quiz.Generate(topic),
		Existing:  existing,
	}, nil
}

// SubmitQuiz grades selections and stores the result of date.
// The first result of a date wins; later submissions return it unchanged.
func (s *Service) SubmitQuiz(ctx context.Context, session *QuizSession, selections []string) (*SubmitResult, error) {
	graded, err := quiz.Score(session.Questions, selections)
	if err != nil {
		return nil, err
	}
	result := &record.QuizResult{
		Date:  session.Date,
		Score: graded.Score,
		Total: graded.Total,
		Topic: session.Topic,
	}
	created, err := s.quizzes.CreateIfAbsent(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("quizzes.CreateIfAbsent() > %w", err)
	}
	if created {
		return &SubmitResult{Result: result, Created: true}, nil
	}

	stored, err := s.quizzes.FindByDate(ctx, session.Date)
	if err != nil {
		return nil, fmt.Errorf("quizzes.FindByDate() > %w", err)
	}
	slog.Default().Info("quiz already submitted for the day, keeping the first result",
		slog.String("date", session.Date.String()),
		slog.Int("discarded_score", graded.Score),
	)
	if stored == nil {
		stored = result
	}
	return &SubmitResult{Result: stored, Created: false}, nil
}

func (s *Service) QuizHistory(ctx context.Context) ([]record.QuizResult, error) {
	results, err := s.quizzes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("quizzes.FindAll() > %w", err)
	}
	return results, nil
}
