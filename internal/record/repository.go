package record

import (
	"context"
	"fmt"
	"strings"

	"github.com/at-ishikawa/studytrack/internal/calendar"
)

//go:generate mockgen -source=repository.go -destination=../mocks/record/mock_repository.go -package=mock_record

// LogRepository stores at most one DailyLog per date.
type LogRepository interface {
	FindByDate(ctx context.Context, date calendar.Date) (*DailyLog, error)
	Upsert(ctx context.Context, log *DailyLog) error
	// ListDates returns every logged date, newest first.
	ListDates(ctx context.Context) ([]calendar.Date, error)
	FindRecent(ctx context.Context, limit int) ([]DailyLog, error)
	// FindAll returns every log, oldest first.
	FindAll(ctx context.Context) ([]DailyLog, error)
}

type GoalRepository interface {
	FindByWeek(ctx context.Context, weekStart calendar.Date) ([]WeeklyGoal, error)
	FindAll(ctx context.Context) ([]WeeklyGoal, error)
	FindByID(ctx context.Context, id string) (*WeeklyGoal, error)
	Create(ctx context.Context, goal *WeeklyGoal) error
	SetDone(ctx context.Context, id string, done bool) error
	Delete(ctx context.Context, id string) error
	// ReplaceAll atomically swaps the whole goal set.
	ReplaceAll(ctx context.Context, goals []WeeklyGoal) error
}

type ProjectRepository interface {
	FindAll(ctx context.Context) ([]Project, error)
	FindByID(ctx context.Context, id string) (*Project, error)
	FindByRoadmapDay(ctx context.Context, day int) (*Project, error)
	Upsert(ctx context.Context, project *Project) error
}

// QuizRepository stores at most one QuizResult per date; the first one wins.
type QuizRepository interface {
	FindByDate(ctx context.Context, date calendar.Date) (*QuizResult, error)
	// CreateIfAbsent inserts result unless one exists for its date and reports whether it did.
	CreateIfAbsent(ctx context.Context, result *QuizResult) (bool, error)
	FindAll(ctx context.Context) ([]QuizResult, error)
}

type SettingRepository interface {
	Find(ctx context.Context, key string) (string, bool, error)
	Upsert(ctx context.Context, key, value string) error
}

type AssessmentRepository interface {
	FindAll(ctx context.Context) ([]MonthlyAssessment, error)
	Upsert(ctx context.Context, assessment *MonthlyAssessment) error
}

// Dialect selects the SQL flavour used for upserts.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DialectOf maps a database/sql driver name to its Dialect.
func DialectOf(driverName string) Dialect {
	switch driverName {
	case "pgx", "postgres":
		return DialectPostgres
	case "sqlite", "sqlite3":
		return DialectSQLite
	default:
		return DialectMySQL
	}
}

// upsertSuffix returns the clause that turns an INSERT into replace-by-key.
func (d Dialect) upsertSuffix(conflictColumn string, columns ...string) string {
	assignments := make([]string, len(columns))
	if d == DialectMySQL {
		for i, column := range columns {
			assignments[i] = fmt.Sprintf("%s = VALUES(%s)", column, column)
		}
		return "ON DUPLICATE KEY UPDATE " + strings.Join(assignments, ", ")
	}
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = excluded.%s", column, column)
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", conflictColumn, strings.Join(assignments, ", "))
}

// insertIfAbsent builds an INSERT that silently keeps an existing row with the same key.
func (d Dialect) insertIfAbsent(table, conflictColumn string, columns ...string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	if d == DialectMySQL {
		return fmt.Sprintf("INSERT IGNORE INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
		table, strings.Join(columns, ", "), placeholders, conflictColumn)
}

func storageError(call string, err error) error {
	return fmt.Errorf("%s > %w: %w", call, ErrStorageFailure, err)
}
