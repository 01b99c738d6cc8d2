package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/progress"
	"github.com/at-ishikawa/studytrack/internal/record"
	"github.com/at-ishikawa/studytrack/internal/roadmap"
)

var ErrEmptyProjectName = errors.New("project name is required")

// ProjectView is a project as shown to the user. Roadmap projects the user never
// touched have no Record and a derived Status.
type ProjectView struct {
	// RoadmapDay is 0 for free-form projects.
	RoadmapDay  int
	Name        string
	Description string
	Features    []string
	Link        string
	// Status is empty when it cannot be derived because the roadmap has no start date.
	Status record.ProjectStatus
	Record *record.Project
}

// Projects lists roadmap projects by day followed by free-form projects by name.
func (s *Service) Projects(ctx context.Context, today calendar.Date) ([]ProjectView, error) {
	currentDay, err := s.currentDay(ctx, today)
	anchorKnown := err == nil
	if err != nil && !errors.Is(err, ErrMissingAnchor) {
		return nil, err
	}

	persisted, err := s.projects.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("projects.FindAll() > %w", err)
	}
	byDay := make(map[int]*record.Project)
	var freeForm []ProjectView
	for i := range persisted {
		project := &persisted[i]
		if project.RoadmapDay == nil {
			freeForm = append(freeForm, persistedView(project))
			continue
		}
		byDay[*project.RoadmapDay] = project
	}

	days := s.catalog.ProjectDays()
	for day := range byDay {
		if _, ok := s.catalog.Project(day); !ok {
			days = append(days, day)
		}
	}
	sort.Ints(days)

	views := make([]ProjectView, 0, len(days)+len(freeForm))
	for _, day := range days {
		project := byDay[day]
		var view ProjectView
		if project != nil {
			view = persistedView(project)
		} else {
			view = ProjectView{RoadmapDay: day}
			if anchorKnown {
				view.Status = progress.ResolveProjectStatus(day, currentDay, nil)
			}
		}
		if definition, ok := s.catalog.Project(day); ok {
			view.Name = definition.Title
			view.Features = definition.Features
			if view.Description == "" {
				view.Description = definition.Description
			}
		}
		views = append(views, view)
	}

	sort.SliceStable(freeForm, func(i, j int) bool {
		return strings.ToLower(freeForm[i].Name) < strings.ToLower(freeForm[j].Name)
	})
	return append(views, freeForm...), nil
}

func persistedView(project *record.Project) ProjectView {
	view := ProjectView{
		Name:        project.Name,
		Description: project.Description,
		Link:        project.Link,
		Status:      project.Status,
		Record:      project,
	}
	if project.RoadmapDay != nil {
		view.RoadmapDay = *project.RoadmapDay
	}
	return view
}

// SetRoadmapProjectStatus records a status for the project scheduled on day.
// The first call materializes the project; derived statuses no longer apply to it.
func (s *Service) SetRoadmapProjectStatus(ctx context.Context, day int, status record.ProjectStatus) (*record.Project, error) {
	if !status.IsPersisted() {
		return nil, fmt.Errorf("%w: %q", record.ErrInvalidStatus, status)
	}
	return s.updateRoadmapProject(ctx, day, func(project *record.Project) {
		project.Status = status
	})
}

// LinkRoadmapProject records a repository or demo link for the project scheduled on day.
func (s *Service) LinkRoadmapProject(ctx context.Context, day int, link string) (*record.Project, error) {
	return s.updateRoadmapProject(ctx, day, func(project *record.Project) {
		project.Link = strings.TrimSpace(link)
	})
}

func (s *Service) updateRoadmapProject(ctx context.Context, day int, update func(project *record.Project)) (*record.Project, error) {
	definition, ok := s.catalog.Project(day)
	if !ok {
		return nil, fmt.Errorf("%w: no roadmap project on day %d", ErrUnknownProject, day)
	}
	project, err := s.projects.FindByRoadmapDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("projects.FindByRoadmapDay() > %w", err)
	}
	if project == nil {
		project = newRoadmapProject(s.newID(), definition)
	}
	update(project)
	if err := s.projects.Upsert(ctx, project); err != nil {
		return nil, fmt.Errorf("projects.Upsert() > %w", err)
	}
	return project, nil
}

func newRoadmapProject(id string, definition roadmap.ProjectDefinition) *record.Project {
	day := definition.Day
	return &record.Project{
		ID:          id,
		Name:        definition.Title,
		Description: definition.Description,
		Status:      record.ProjectStatusNotStarted,
		RoadmapDay:  &day,
	}
}

// AddProject creates a free-form project that is not part of the roadmap.
func (s *Service) AddProject(ctx context.Context, name, description string, status record.ProjectStatus, link string) (*record.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProjectName
	}
	if status == "" {
		status = record.ProjectStatusNotStarted
	}
	if !status.IsPersisted() {
		return nil, fmt.Errorf("%w: %q", record.ErrInvalidStatus, status)
	}

	project := &record.Project{
		ID:          s.newID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Status:      status,
		Link:        strings.TrimSpace(link),
	}
	if err := s.projects.Upsert(ctx, project); err != nil {
		return nil, fmt.Errorf("projects.Upsert() > %w", err)
	}
	return project, nil
}

// SetProjectStatus changes the status of a persisted project by ID.
func (s *Service) SetProjectStatus(ctx context.Context, id string, status record.ProjectStatus) (*record.Project, error) {
	if !status.IsPersisted() {
		return nil, fmt.Errorf("%w: %q", record.ErrInvalidStatus, status)
	}
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("projects.FindByID() > %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProject, id)
	}
	project.Status = status
	if err := s.projects.Upsert(ctx, project); err != nil {
		return nil, fmt.Errorf("projects.Upsert() > %w", err)
	}
	return project, nil
}
