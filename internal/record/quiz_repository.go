package record

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studytrack/internal/calendar"
)

type quizResultRow struct {
	Date  calendar.Date `db:"quiz_date"`
	Score int           `db:"score"`
	Total int           `db:"total"`
	Topic string        `db:"topic"`
}

const quizResultColumns = "quiz_date, score, total, topic"

// DBQuizRepository implements QuizRepository using sqlx.
type DBQuizRepository struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewDBQuizRepository creates a new DBQuizRepository.
func NewDBQuizRepository(db *sqlx.DB) *DBQuizRepository {
	return &DBQuizRepository{db: db, dialect: DialectOf(db.DriverName())}
}

// FindByDate returns the result of a date, or nil if no quiz was taken.
func (r *DBQuizRepository) FindByDate(ctx context.Context, date calendar.Date) (*QuizResult, error) {
	var row quizResultRow
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind("SELECT "+quizResultColumns+" FROM quiz_results WHERE quiz_date = ?"), date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("db.GetContext(quiz_results)", err)
	}
	result := QuizResult(row)
	return &result, nil
}

// CreateIfAbsent inserts result and reports false without touching the row when the date already has one.
func (r *DBQuizRepository) CreateIfAbsent(ctx context.Context, result *QuizResult) (bool, error) {
	query := r.dialect.insertIfAbsent("quiz_results", "quiz_date", "quiz_date", "score", "total", "topic")
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), result.Date, result.Score, result.Total, result.Topic)
	if err != nil {
		return false, storageError("db.ExecContext(insert quiz_result)", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, storageError("result.RowsAffected()", err)
	}
	return affected > 0, nil
}

// FindAll returns every result, newest first.
func (r *DBQuizRepository) FindAll(ctx context.Context) ([]QuizResult, error) {
	var rows []quizResultRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT "+quizResultColumns+" FROM quiz_results ORDER BY quiz_date DESC"); err != nil {
		return nil, storageError("db.SelectContext(quiz_results)", err)
	}
	results := make([]QuizResult, len(rows))
	for i, row := range rows {
		results[i] = QuizResult(row)
	}
	return results, nil
}
