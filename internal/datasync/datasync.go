// Package datasync provides YAML export and import of every tracker record.
package datasync

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/record"
	"github.com/at-ishikawa/studytrack/internal/tracker"
)

// SnapshotVersion is the format version written by the exporter.
const SnapshotVersion = 1

// Snapshot is the YAML document holding every record.
type Snapshot struct {
	Version     int               `yaml:"version"`
	ExportedOn  calendar.Date     `yaml:"exported_on"`
	StartDate   *calendar.Date    `yaml:"roadmap_start_date,omitempty"`
	DailyLogs   []DailyLogEntry   `yaml:"daily_logs"`
	WeeklyGoals []WeeklyGoalEntry `yaml:"weekly_goals"`
	Projects    []ProjectEntry    `yaml:"projects"`
	Quizzes     []QuizResultEntry `yaml:"quiz_results"`
	Assessments []AssessmentEntry `yaml:"monthly_assessments"`
}

type DailyLogEntry struct {
	Date       calendar.Date `yaml:"date"`
	Topics     []string      `yaml:"topics"`
	Notes      string        `yaml:"notes,omitempty"`
	Confidence int           `yaml:"confidence"`
}

type WeeklyGoalEntry struct {
	ID        string        `yaml:"id"`
	WeekStart calendar.Date `yaml:"week_start"`
	Text      string        `yaml:"text"`
	Done      bool          `yaml:"done"`
	SortOrder int           `yaml:"sort_order"`
}

type ProjectEntry struct {
	ID          string               `yaml:"id"`
	Name        string               `yaml:"name"`
	Description string               `yaml:"description,omitempty"`
	Status      record.ProjectStatus `yaml:"status"`
	Link        string               `yaml:"link,omitempty"`
	RoadmapDay  *int                 `yaml:"roadmap_day,omitempty"`
}

type QuizResultEntry struct {
	Date  calendar.Date `yaml:"date"`
	Score int           `yaml:"score"`
	Total int           `yaml:"total"`
	Topic string        `yaml:"topic"`
}

type AssessmentEntry struct {
	Month      string `yaml:"month"`
	Reflection string `yaml:"reflection,omitempty"`
	Rating     int    `yaml:"rating"`
}

// WriteYAML encodes snapshot to w.
func WriteYAML(w io.Writer, snapshot *Snapshot) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return nil
}

// ReadYAML decodes a snapshot and rejects unknown fields and newer versions.
func ReadYAML(r io.Reader) (*Snapshot, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var snapshot Snapshot
	if err := decoder.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decoder.Decode() > %w", err)
	}
	if snapshot.Version > SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d, expected at most %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}

// WriteFile writes snapshot to path, creating its directory.
func WriteFile(path string, snapshot *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return WriteYAML(file, snapshot)
}

func ReadFile(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return ReadYAML(file)
}

// Exporter reads every record from the database.
type Exporter struct {
	repos tracker.Repositories
}

func NewExporter(repos tracker.Repositories) *Exporter {
	return &Exporter{repos: repos}
}

// Export reads all data from the database.
func (e *Exporter) Export(ctx context.Context, today calendar.Date) (*Snapshot, error) {
	snapshot := &Snapshot{Version: SnapshotVersion, ExportedOn: today}

	value, ok, err := e.repos.Settings.Find(ctx, record.SettingRoadmapStartDate)
	if err != nil {
		return nil, fmt.Errorf("settings.Find() > %w", err)
	}
	if ok && value != "" {
		start, err := calendar.ParseDate(value)
		if err != nil {
			return nil, fmt.Errorf("calendar.ParseDate(%s) > %w", value, err)
		}
		snapshot.StartDate = &start
	}

	logs, err := e.repos.Logs.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("logs.FindAll() > %w", err)
	}
	for _, log := range logs {
		snapshot.DailyLogs = append(snapshot.DailyLogs, DailyLogEntry(log))
	}

	goals, err := e.repos.Goals.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("goals.FindAll() > %w", err)
	}
	for _, goal := range goals {
		snapshot.WeeklyGoals = append(snapshot.WeeklyGoals, WeeklyGoalEntry(goal))
	}

	projects, err := e.repos.Projects.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("projects.FindAll() > %w", err)
	}
	for _, project := range projects {
		snapshot.Projects = append(snapshot.Projects, ProjectEntry(project))
	}

	quizzes, err := e.repos.Quizzes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("quizzes.FindAll() > %w", err)
	}
	for _, quiz := range quizzes {
		snapshot.Quizzes = append(snapshot.Quizzes, QuizResultEntry(quiz))
	}

	assessments, err := e.repos.Assessments.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("assessments.FindAll() > %w", err)
	}
	for _, assessment := range assessments {
		snapshot.Assessments = append(snapshot.Assessments, AssessmentEntry(assessment))
	}
	return snapshot, nil
}
