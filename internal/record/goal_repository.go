package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studytrack/internal/calendar"
)

type weeklyGoalRow struct {
	ID        string        `db:"id"`
	WeekStart calendar.Date `db:"week_start"`
	Text      string        `db:"goal_text"`
	Done      bool          `db:"done"`
	SortOrder int           `db:"sort_order"`
}

func (row weeklyGoalRow) toGoal() WeeklyGoal {
	return WeeklyGoal(row)
}

func toGoals(rows []weeklyGoalRow) []WeeklyGoal {
	goals := make([]WeeklyGoal, len(rows))
	for i, row := range rows {
		goals[i] = row.toGoal()
	}
	return goals
}

const weeklyGoalColumns = "id, week_start, goal_text, done, sort_order"

// DBGoalRepository implements GoalRepository using sqlx.
type DBGoalRepository struct {
	db *sqlx.DB
}

// NewDBGoalRepository creates a new DBGoalRepository.
func NewDBGoalRepository(db *sqlx.DB) *DBGoalRepository {
	return &DBGoalRepository{db: db}
}

// FindByWeek returns the goals anchored at weekStart in insertion order.
func (r *DBGoalRepository) FindByWeek(ctx context.Context, weekStart calendar.Date) ([]WeeklyGoal, error) {
	var rows []weeklyGoalRow
	if err := r.db.SelectContext(ctx, &rows,
		r.db.Rebind("SELECT "+weeklyGoalColumns+" FROM weekly_goals WHERE week_start = ? ORDER BY sort_order"),
		weekStart); err != nil {
		return nil, storageError("db.SelectContext(weekly_goals by week)", err)
	}
	return toGoals(rows), nil
}

func (r *DBGoalRepository) FindAll(ctx context.Context) ([]WeeklyGoal, error) {
	var rows []weeklyGoalRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT "+weeklyGoalColumns+" FROM weekly_goals ORDER BY week_start, sort_order"); err != nil {
		return nil, storageError("db.SelectContext(weekly_goals)", err)
	}
	return toGoals(rows), nil
}

// FindByID returns a goal, or nil if not found.
func (r *DBGoalRepository) FindByID(ctx context.Context, id string) (*WeeklyGoal, error) {
	var row weeklyGoalRow
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind("SELECT "+weeklyGoalColumns+" FROM weekly_goals WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("db.GetContext(weekly_goal)", err)
	}
	goal := row.toGoal()
	return &goal, nil
}

func (r *DBGoalRepository) Create(ctx context.Context, goal *WeeklyGoal) error {
	if _, err := r.db.ExecContext(ctx,
		r.db.Rebind("INSERT INTO weekly_goals ("+weeklyGoalColumns+") VALUES (?, ?, ?, ?, ?)"),
		goal.ID, goal.WeekStart, goal.Text, goal.Done, goal.SortOrder); err != nil {
		return storageError("db.ExecContext(insert weekly_goal)", err)
	}
	return nil
}

func (r *DBGoalRepository) SetDone(ctx context.Context, id string, done bool) error {
	if _, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE weekly_goals SET done = ? WHERE id = ?"), done, id); err != nil {
		return storageError("db.ExecContext(update weekly_goal)", err)
	}
	return nil
}

func (r *DBGoalRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx,
		r.db.Rebind("DELETE FROM weekly_goals WHERE id = ?"), id); err != nil {
		return storageError("db.ExecContext(delete weekly_goal)", err)
	}
	return nil
}

// ReplaceAll deletes every goal and inserts goals inside one transaction.
func (r *DBGoalRepository) ReplaceAll(ctx context.Context, goals []WeeklyGoal) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageError("db.BeginTxx()", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = fmt.Errorf("%w. Reason: tx.Rollback() > %w", err, rollbackErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM weekly_goals"); err != nil {
		return storageError("tx.ExecContext(delete weekly_goals)", err)
	}
	insert := tx.Rebind("INSERT INTO weekly_goals (" + weeklyGoalColumns + ") VALUES (?, ?, ?, ?, ?)")
	for _, goal := range goals {
		if _, err = tx.ExecContext(ctx, insert,
			goal.ID, goal.WeekStart, goal.Text, goal.Done, goal.SortOrder); err != nil {
			return storageError("tx.ExecContext(insert weekly_goal)", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return storageError("tx.Commit()", err)
	}
	return nil
}
