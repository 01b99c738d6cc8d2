package record

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studytrack/internal/calendar"
)

var goalColumns = []string{"id", "week_start", "goal_text", "done", "sort_order"}

func TestDBGoalRepository_FindByWeek(t *testing.T) {
	db, mock := newMockDB(t, "mysql")
	rows := sqlmock.NewRows(goalColumns).
		AddRow("g1", "2025-01-06", "Week 1 [Python]: NumPy", true, 0).
		AddRow("g2", "2025-01-06", "Week 1 [Python]: Pandas", false, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, week_start, goal_text, done, sort_order FROM weekly_goals WHERE week_start = ? ORDER BY sort_order")).
		WithArgs("2025-01-06").
		WillReturnRows(rows)

	got, err := NewDBGoalRepository(db).FindByWeek(context.Background(), calendar.NewDate(2025, 1, 6))
	require.NoError(t, err)
	assert.Equal(t, []WeeklyGoal{
		{ID: "g1", WeekStart: calendar.NewDate(2025, 1, 6), Text: "Week 1 [Python]: NumPy", Done: true, SortOrder: 0},
		{ID: "g2", WeekStart: calendar.NewDate(2025, 1, 6), Text: "Week 1 [Python]: Pandas", Done: false, SortOrder: 1},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBGoalRepository_FindByID(t *testing.T) {
	query := regexp.QuoteMeta("SELECT id, week_start, goal_text, done, sort_order FROM weekly_goals WHERE id = ?")

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t, "mysql")
		mock.ExpectQuery(query).WithArgs("g1").
			WillReturnRows(sqlmock.NewRows(goalColumns).AddRow("g1", "2025-01-13", "goal", false, 2))

		got, err := NewDBGoalRepository(db).FindByID(context.Background(), "g1")
		require.NoError(t, err)
		assert.Equal(t, &WeeklyGoal{ID: "g1", WeekStart: calendar.NewDate(2025, 1, 13), Text: "goal", SortOrder: 2}, got)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t, "mysql")
		mock.ExpectQuery(query).WithArgs("missing").WillReturnRows(sqlmock.NewRows(goalColumns))

		got, err := NewDBGoalRepository(db).FindByID(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestDBGoalRepository_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		db, mock := newMockDB(t, "mysql")
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_goals (id, week_start, goal_text, done, sort_order) VALUES (?, ?, ?, ?, ?)")).
			WithArgs("g1", "2025-01-06", "goal", false, 0).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, NewDBGoalRepository(db).Create(ctx, &WeeklyGoal{ID: "g1", WeekStart: calendar.NewDate(2025, 1, 6), Text: "goal"}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set done", func(t *testing.T) {
		db, mock := newMockDB(t, "pgx")
		mock.ExpectExec(regexp.QuoteMeta("UPDATE weekly_goals SET done = $1 WHERE id = $2")).
			WithArgs(true, "g1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewDBGoalRepository(db).SetDone(ctx, "g1", true))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete failure", func(t *testing.T) {
		db, mock := newMockDB(t, "mysql")
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_goals WHERE id = ?")).
			WithArgs("g1").
			WillReturnError(errors.New("locked"))

		err := NewDBGoalRepository(db).Delete(ctx, "g1")
		assert.ErrorIs(t, err, ErrStorageFailure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBGoalRepository_ReplaceAll(t *testing.T) {
	insert := regexp.QuoteMeta("INSERT INTO weekly_goals (id, week_start, goal_text, done, sort_order) VALUES (?, ?, ?, ?, ?)")
	goals := []WeeklyGoal{
		{ID: "g1", WeekStart: calendar.NewDate(2025, 1, 6), Text: "first", SortOrder: 0},
		{ID: "g2", WeekStart: calendar.NewDate(2025, 1, 13), Text: "second", SortOrder: 0},
	}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   []string
	}{
		{
			name: "commits every goal",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_goals")).WillReturnResult(sqlmock.NewResult(0, 5))
				mock.ExpectExec(insert).WithArgs("g1", "2025-01-06", "first", false, 0).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(insert).WithArgs("g2", "2025-01-13", "second", false, 0).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back when an insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_goals")).WillReturnResult(sqlmock.NewResult(0, 5))
				mock.ExpectExec(insert).WithArgs("g1", "2025-01-06", "first", false, 0).WillReturnError(errors.New("duplicate"))
				mock.ExpectRollback()
			},
			wantErr: []string{"duplicate"},
		},
		{
			name: "reports a failed rollback",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM weekly_goals")).WillReturnError(errors.New("locked"))
				mock.ExpectRollback().WillReturnError(errors.New("connection lost"))
			},
			wantErr: []string{"locked", "tx.Rollback() > connection lost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t, "mysql")
			tt.setupMock(mock)

			err := NewDBGoalRepository(db).ReplaceAll(context.Background(), goals)
			if len(tt.wantErr) > 0 {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrStorageFailure)
				for _, want := range tt.wantErr {
					assert.Contains(t, err.Error(), want)
				}
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
