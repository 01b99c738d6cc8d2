// Package record provides the persisted tracker records and their repositories.
package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/studytrack/internal/calendar"
)

// SettingRoadmapStartDate is the anchor date every day/week number is computed from.
const SettingRoadmapStartDate = "roadmap_start_date"

const (
	MinConfidence = 1
	MaxConfidence = 5
	MinRating     = 1
	MaxRating     = 10

	// QuizTotal is the number of questions stored with every quiz result.
	QuizTotal = 15
)

var (
	ErrStorageFailure    = errors.New("storage failure")
	ErrInvalidConfidence = fmt.Errorf("confidence must be between %d and %d", MinConfidence, MaxConfidence)
	ErrInvalidRating     = fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	ErrInvalidStatus     = errors.New("invalid project status")
	ErrInvalidMonth      = errors.New("month must be in YYYY-MM format")
)

// DailyLog is the single study entry of a calendar day.
type DailyLog struct {
	Date       calendar.Date
	Topics     []string
	Notes      string
	Confidence int
}

// Validate checks the confidence range.
func (l DailyLog) Validate() error {
	if l.Confidence < MinConfidence || l.Confidence > MaxConfidence {
		return fmt.Errorf("%w: got %d", ErrInvalidConfidence, l.Confidence)
	}
	return nil
}

// NormalizeTopics trims topics and drops blanks and duplicates, keeping the first occurrence.
func NormalizeTopics(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	result := make([]string, 0, len(topics))
	for _, topic := range topics {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		result = append(result, topic)
	}
	return result
}

type WeeklyGoal struct {
	ID        string
	WeekStart calendar.Date
	Text      string
	Done      bool
	SortOrder int
}

// ProjectStatus is the lifecycle state of a project.
// Upcoming and Missing are derived from elapsed time and never persisted.
type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "not_started"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusDone       ProjectStatus = "done"
	ProjectStatusUpcoming   ProjectStatus = "upcoming"
	ProjectStatusMissing    ProjectStatus = "missing"
)

// PersistedStatuses lists the statuses a user can choose.
var PersistedStatuses = []ProjectStatus{
	ProjectStatusNotStarted,
	ProjectStatusInProgress,
	ProjectStatusDone,
}

// ParseProjectStatus accepts the stored form ("in_progress") or the label ("In Progress").
// Only persistable statuses are accepted.
func ParseProjectStatus(value string) (ProjectStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	for _, status := range PersistedStatuses {
		if string(status) == normalized {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

// IsPersisted reports whether the status can be stored on a Project record.
func (s ProjectStatus) IsPersisted() bool {
	for _, status := range PersistedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s ProjectStatus) Label() string {
	switch s {
	case ProjectStatusNotStarted:
		return "Not Started"
	case ProjectStatusInProgress:
		return "In Progress"
	case ProjectStatusDone:
		return "Done"
	case ProjectStatusUpcoming:
		return "Upcoming"
	case ProjectStatusMissing:
		return "Missing"
	}
	return string(s)
}

// Project is a portfolio project. RoadmapDay is set for projects defined by the roadmap catalog.
type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
	Link        string
	RoadmapDay  *int
}

type QuizResult struct {
	Date  calendar.Date
	Score int
	Total int
	Topic string
}

// MonthlyAssessment is a reflection over one month, keyed by YYYY-MM.
type MonthlyAssessment struct {
	Month      string
	Reflection string
	Rating     int
}

func (a MonthlyAssessment) Validate() error {
	if !isMonth(a.Month) {
		return fmt.Errorf("%w: got %q", ErrInvalidMonth, a.Month)
	}
	if a.Rating < MinRating || a.Rating > MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, a.Rating)
	}
	return nil
}

func isMonth(value string) bool {
	_, err := calendar.ParseDate(value + "-01")
	return err == nil && len(value) == len("2006-01")
}
