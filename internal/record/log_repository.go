package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studytrack/internal/calendar"
)

type dailyLogRow struct {
	Date       calendar.Date `db:"log_date"`
	Topics     string        `db:"topics"`
	Notes      string        `db:"notes"`
	Confidence int           `db:"confidence"`
}

func (row dailyLogRow) toLog() (DailyLog, error) {
	var topics []string
	if row.Topics != "" {
		if err := json.Unmarshal([]byte(row.Topics), &topics); err != nil {
			return DailyLog{}, fmt.Errorf("json.Unmarshal(topics of %s) > %w", row.Date, err)
		}
	}
	return DailyLog{
		Date:       row.Date,
		Topics:     topics,
		Notes:      row.Notes,
		Confidence: row.Confidence,
	}, nil
}

const dailyLogColumns = "log_date, topics, notes, confidence"

// DBLogRepository implements LogRepository using sqlx.
type DBLogRepository struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewDBLogRepository creates a new DBLogRepository.
func NewDBLogRepository(db *sqlx.DB) *DBLogRepository {
	return &DBLogRepository{db: db, dialect: DialectOf(db.DriverName())}
}

// FindByDate returns the log of a date, or nil if nothing was logged.
func (r *DBLogRepository) FindByDate(ctx context.Context, date calendar.Date) (*DailyLog, error) {
	var row dailyLogRow
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind("SELECT "+dailyLogColumns+" FROM daily_logs WHERE log_date = ?"), date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("db.GetContext(daily_logs)", err)
	}
	log, err := row.toLog()
	if err != nil {
		return nil, storageError("dailyLogRow.toLog()", err)
	}
	return &log, nil
}

// Upsert creates or replaces the log of log.Date.
func (r *DBLogRepository) Upsert(ctx context.Context, log *DailyLog) error {
	topics := NormalizeTopics(log.Topics)
	encoded, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("json.Marshal(topics) > %w", err)
	}

	query := "INSERT INTO daily_logs (" + dailyLogColumns + ") VALUES (?, ?, ?, ?) " +
		r.dialect.upsertSuffix("log_date", "topics", "notes", "confidence")
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		log.Date, string(encoded), log.Notes, log.Confidence); err != nil {
		return storageError("db.ExecContext(upsert daily_log)", err)
	}
	log.Topics = topics
	return nil
}

// ListDates returns every logged date, newest first.
func (r *DBLogRepository) ListDates(ctx context.Context) ([]calendar.Date, error) {
	var dates []calendar.Date
	if err := r.db.SelectContext(ctx, &dates, "SELECT log_date FROM daily_logs ORDER BY log_date DESC"); err != nil {
		return nil, storageError("db.SelectContext(daily_logs dates)", err)
	}
	return dates, nil
}

// FindRecent returns up to limit logs, newest first.
func (r *DBLogRepository) FindRecent(ctx context.Context, limit int) ([]DailyLog, error) {
	var rows []dailyLogRow
	if err := r.db.SelectContext(ctx, &rows,
		r.db.Rebind("SELECT "+dailyLogColumns+" FROM daily_logs ORDER BY log_date DESC LIMIT ?"), limit); err != nil {
		return nil, storageError("db.SelectContext(recent daily_logs)", err)
	}
	return toLogs(rows)
}

// FindAll returns every log, oldest first.
func (r *DBLogRepository) FindAll(ctx context.Context) ([]DailyLog, error) {
	var rows []dailyLogRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT "+dailyLogColumns+" FROM daily_logs ORDER BY log_date"); err != nil {
		return nil, storageError("db.SelectContext(daily_logs)", err)
	}
	return toLogs(rows)
}

func toLogs(rows []dailyLogRow) ([]DailyLog, error) {
	logs := make([]DailyLog, 0, len(rows))
	for _, row := range rows {
		log, err := row.toLog()
		if err != nil {
			return nil, storageError("dailyLogRow.toLog()", err)
		}
		logs = append(logs, log)
	}
	return logs, nil
}
