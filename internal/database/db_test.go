package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/config"
	"github.com/at-ishikawa/studytrack/internal/record"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.DatabaseConfig
		wantDriver string
		wantErr    bool
	}{
		{
			name: "mysql with valid config",
			cfg: config.DatabaseConfig{
				Driver:   DriverMySQL,
				Host:     "localhost",
				Database: "testdb",
				Username: "testuser",
				Password: "testpass",
			},
			wantDriver: "mysql",
		},
		{
			name: "mysql with pool settings",
			cfg: config.DatabaseConfig{
				Driver:          DriverMySQL,
				Host:            "db.example.com",
				Port:            3307,
				Database:        "studytrack",
				Username:        "admin",
				Password:        "secret",
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 300,
			},
			wantDriver: "mysql",
		},
		{
			name: "postgres",
			cfg: config.DatabaseConfig{
				Driver:   DriverPostgres,
				Host:     "localhost",
				Database: "studytrack",
				Username: "tracker",
				Password: "p@ss word",
				Params:   map[string]string{"application_name": "studytrack"},
			},
			wantDriver: "pgx",
		},
		{
			name:       "sqlite",
			cfg:        config.DatabaseConfig{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "open.db")},
			wantDriver: "sqlite",
		},
		{
			name:    "unknown driver",
			cfg:     config.DatabaseConfig{Driver: "oracle"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			defer got.Close()

			assert.Equal(t, tt.wantDriver, got.DriverName())
		})
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name       string
		attempts   uint
		pingErrors []error
		wantErr    bool
	}{
		{
			name:       "first ping succeeds",
			attempts:   3,
			pingErrors: []error{nil},
		},
		{
			name:       "succeeds after a retry",
			attempts:   3,
			pingErrors: []error{errors.New("connection refused"), nil},
		},
		{
			name:       "gives up after the last attempt",
			attempts:   2,
			pingErrors: []error{errors.New("connection refused"), errors.New("connection refused")},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer db.Close()
			for _, pingErr := range tt.pingErrors {
				mock.ExpectPing().WillReturnError(pingErr)
			}

			err = Ping(context.Background(), sqlx.NewDb(db, "mysql"), tt.attempts)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "connection refused")
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSchemaStatements(t *testing.T) {
	tests := []struct {
		name     string
		dialect  record.Dialect
		dateType string
	}{
		{name: "sqlite stores dates as text", dialect: record.DialectSQLite, dateType: "log_date TEXT"},
		{name: "mysql uses DATE", dialect: record.DialectMySQL, dateType: "log_date DATE"},
		{name: "postgres uses DATE", dialect: record.DialectPostgres, dateType: "log_date DATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SchemaStatements(tt.dialect)
			require.NoError(t, err)
			require.Len(t, got, 6)
			assert.Contains(t, got[0], tt.dateType)
			for _, statement := range got {
				assert.Contains(t, statement, "CREATE TABLE IF NOT EXISTS")
				assert.NotContains(t, statement, "{{")
			}
		})
	}
}

func TestMigrate(t *testing.T) {
	t.Run("executes every statement", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for _, table := range []string{"daily_logs", "weekly_goals", "projects", "quiz_results", "settings", "monthly_assessments"} {
			mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).WillReturnResult(sqlmock.NewResult(0, 0))
		}

		require.NoError(t, Migrate(context.Background(), sqlx.NewDb(db, "mysql")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps failures as storage errors", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS daily_logs").WillReturnError(errors.New("permission denied"))

		err = Migrate(context.Background(), sqlx.NewDb(db, "mysql"))
		require.Error(t, err)
		assert.ErrorIs(t, err, record.ErrStorageFailure)
		assert.Contains(t, err.Error(), "CREATE TABLE IF NOT EXISTS daily_logs")
	})
}

func TestConnect_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "studytrack.db")
	db, err := Connect(ctx, config.DatabaseConfig{Driver: DriverSQLite, Path: path, ConnectAttempts: 1})
	require.NoError(t, err)
	defer db.Close()

	// Migrating twice keeps existing rows.
	require.NoError(t, Migrate(ctx, db))

	monday := calendar.NewDate(2025, 1, 6)

	t.Run("daily logs", func(t *testing.T) {
		logs := record.NewDBLogRepository(db)
		require.NoError(t, logs.Upsert(ctx, &record.DailyLog{Date: monday, Topics: []string{"NumPy", " NumPy ", "Pandas"}, Notes: "arrays", Confidence: 3}))
		require.NoError(t, logs.Upsert(ctx, &record.DailyLog{Date: monday, Topics: []string{"Linear algebra"}, Notes: "vectors", Confidence: 4}))
		require.NoError(t, logs.Upsert(ctx, &record.DailyLog{Date: monday.AddDays(1), Topics: nil, Confidence: 2}))

		got, err := logs.FindByDate(ctx, monday)
		require.NoError(t, err)
		assert.Equal(t, &record.DailyLog{Date: monday, Topics: []string{"Linear algebra"}, Notes: "vectors", Confidence: 4}, got)

		missing, err := logs.FindByDate(ctx, monday.AddDays(5))
		require.NoError(t, err)
		assert.Nil(t, missing)

		dates, err := logs.ListDates(ctx)
		require.NoError(t, err)
		assert.Equal(t, []calendar.Date{monday.AddDays(1), monday}, dates)
	})

	t.Run("quiz results keep the first submission", func(t *testing.T) {
		quizzes := record.NewDBQuizRepository(db)
		created, err := quizzes.CreateIfAbsent(ctx, &record.QuizResult{Date: monday, Score: 9, Total: 15, Topic: "Python"})
		require.NoError(t, err)
		assert.True(t, created)

		created, err = quizzes.CreateIfAbsent(ctx, &record.QuizResult{Date: monday, Score: 15, Total: 15, Topic: "Python"})
		require.NoError(t, err)
		assert.False(t, created)

		got, err := quizzes.FindByDate(ctx, monday)
		require.NoError(t, err)
		assert.Equal(t, 9, got.Score)
	})

	t.Run("projects order roadmap days before free-form ones", func(t *testing.T) {
		projects := record.NewDBProjectRepository(db)
		day := 26
		require.NoError(t, projects.Upsert(ctx, &record.Project{ID: "b", Name: "Blog", Status: record.ProjectStatusInProgress}))
		require.NoError(t, projects.Upsert(ctx, &record.Project{ID: "a", Name: "Loan Default", Status: record.ProjectStatusDone, RoadmapDay: &day}))
		require.NoError(t, projects.Upsert(ctx, &record.Project{ID: "c", Name: "App", Status: record.ProjectStatusNotStarted}))

		got, err := projects.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"a", "c", "b"}, []string{got[0].ID, got[1].ID, got[2].ID})

		byDay, err := projects.FindByRoadmapDay(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, "Loan Default", byDay.Name)
	})

	t.Run("goals and settings", func(t *testing.T) {
		goals := record.NewDBGoalRepository(db)
		require.NoError(t, goals.ReplaceAll(ctx, []record.WeeklyGoal{
			{ID: "g1", WeekStart: monday, Text: "Week 1: NumPy", SortOrder: 0},
			{ID: "g2", WeekStart: monday, Text: "Week 1: Pandas", SortOrder: 1},
		}))
		require.NoError(t, goals.SetDone(ctx, "g2", true))

		got, err := goals.FindByWeek(ctx, monday)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.False(t, got[0].Done)
		assert.True(t, got[1].Done)

		settings := record.NewDBSettingRepository(db)
		require.NoError(t, settings.Upsert(ctx, record.SettingRoadmapStartDate, "2025-01-06"))
		require.NoError(t, settings.Upsert(ctx, record.SettingRoadmapStartDate, "2025-01-13"))
		value, ok, err := settings.Find(ctx, record.SettingRoadmapStartDate)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "2025-01-13", value)
	})
}
