package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/config"
	"github.com/at-ishikawa/studytrack/internal/database"
	"github.com/at-ishikawa/studytrack/internal/record"
	"github.com/at-ishikawa/studytrack/internal/roadmap"
	"github.com/at-ishikawa/studytrack/internal/tracker"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// resolveToday returns the --date value, or the current day in timezone.
func resolveToday(date string, timezone string) (calendar.Date, error) {
	if date != "" {
		return calendar.ParseDate(date)
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("time.LoadLocation(%s) > %w", timezone, err)
	}
	return calendar.Today(location), nil
}

// application holds what every command needs once the config is loaded.
type application struct {
	cfg     *config.Config
	db      *sqlx.DB
	repos   tracker.Repositories
	service *tracker.Service
	today   calendar.Date
}

func newApplication(ctx context.Context) (*application, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	today, err := resolveToday(dateFlag, cfg.Roadmap.Timezone)
	if err != nil {
		return nil, err
	}
	catalog, err := roadmap.Load(cfg.Roadmap.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("roadmap.Load() > %w", err)
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Connect() > %w", err)
	}
	repos := tracker.Repositories{
		Logs:        record.NewDBLogRepository(db),
		Goals:       record.NewDBGoalRepository(db),
		Projects:    record.NewDBProjectRepository(db),
		Quizzes:     record.NewDBQuizRepository(db),
		Settings:    record.NewDBSettingRepository(db),
		Assessments: record.NewDBAssessmentRepository(db),
	}
	return &application{
		cfg:     cfg,
		db:      db,
		repos:   repos,
		service: tracker.NewService(repos, catalog),
		today:   today,
	}, nil
}

func (app *application) Close() {
	_ = app.db.Close()
}

// withApplication opens the application for the duration of run.
func withApplication(ctx context.Context, run func(app *application) error) error {
	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	if err := run(app); err != nil {
		if errors.Is(err, tracker.ErrMissingAnchor) {
			return fmt.Errorf("%w. Run `studytrack init` first", err)
		}
		return err
	}
	return nil
}
