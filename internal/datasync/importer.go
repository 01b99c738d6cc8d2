package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/studytrack/internal/record"
	"github.com/at-ishikawa/studytrack/internal/tracker"
)

// Counts tracks what happened to the records of one kind.
type Counts struct {
	New     int
	Skipped int
	Updated int
}

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	Settings    Counts
	DailyLogs   Counts
	WeeklyGoals Counts
	Projects    Counts
	Quizzes     Counts
	Assessments Counts
	Warnings    int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer writes a snapshot into the database. Importing the same snapshot
// twice changes nothing; quiz results are never overwritten.
type Importer struct {
	repos  tracker.Repositories
	writer io.Writer
}

func NewImporter(repos tracker.Repositories, writer io.Writer) *Importer {
	return &Importer{
		repos:  repos,
		writer: writer,
	}
}

func (imp *Importer) Import(ctx context.Context, snapshot *Snapshot, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult
	steps := []struct {
		name string
		run  func(ctx context.Context, snapshot *Snapshot, opts ImportOptions, result *ImportResult) error
	}{
		{name: "importStartDate", run: imp.importStartDate},
		{name: "importDailyLogs", run: imp.importDailyLogs},
		{name: "importWeeklyGoals", run: imp.importWeeklyGoals},
		{name: "importProjects", run: imp.importProjects},
		{name: "importQuizzes", run: imp.importQuizzes},
		{name: "importAssessments", run: imp.importAssessments},
	}
	for _, step := range steps {
		if err := step.run(ctx, snapshot, opts, &result); err != nil {
			return nil, fmt.Errorf("%s() > %w", step.name, err)
		}
	}
	return &result, nil
}

func (imp *Importer) importStartDate(ctx context.Context, snapshot *Snapshot, opts ImportOptions, result *ImportResult) error {
	if snapshot.StartDate == nil {
		return nil
	}
	value := snapshot.StartDate.String()
	existing, ok, err := imp.repos.Settings.Find(ctx, record.SettingRoadmapStartDate)
	if err != nil {
		return fmt.Errorf("settings.Find() > %w", err)
	}
	switch {
	case ok && existing == value:
		result.Settings.Skipped++
		return nil
	case ok && !opts.UpdateExisting:
		_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  roadmap start date %s (keeping %s)\n", value, existing)
		result.Settings.Skipped++
		return nil
	}

	if !opts.DryRun {
		if err := imp.repos.Settings.Upsert(ctx, record.SettingRoadmapStartDate, value); err != nil {
			return fmt.Errorf("settings.Upsert() > %w", err)
		}
	}
	if ok {
		_, _ = fmt.Fprintf(imp.writer, "  [UPDATE]  roadmap start date %s\n", value)
		result.Settings.Updated++
	} else {
		_, _ = fmt.Fprintf(imp.writer, "  [NEW]  roadmap start date %s\n", value)
		result.Settings.New++
	}
	return nil
}

func (imp *Importer) importDailyLogs(ctx context.Context, snapshot *Snapshot, opts ImportOptions, result *ImportResult) error {
	for _, entry := range snapshot.DailyLogs {
		log := record.DailyLog(entry)
		log.Topics = record.NormalizeTopics(log.Topics)
		if err := log.Validate(); err != nil {
			_, _ = fmt.Fprintf(imp.writer, "  [WARN]  daily log %s: %v\n", log.Date, err)
			result.Warnings++
			continue
		}

		existing, err := imp.repos.Logs.FindByDate(ctx, log.Date)
		if err != nil {
			return fmt.Errorf("logs.FindByDate(%s) > %w", log.Date, err)
		}
		if existing != nil && !opts.UpdateExisting {
			result.DailyLogs.Skipped++
			continue
		}
		if !opts.DryRun {
			if err := imp.repos.Logs.Upsert(ctx, &log); err != nil {
				return fmt.Errorf("logs.Upsert(%s) > %w", log.Date, err)
			}
		}
		if existing != nil {
			_, _ = fmt.Fprintf(imp.writer, "  [UPDATE]  daily log %s\n", log.Date)
			result.DailyLogs.Updated++
		} else {
			_, _ = fmt.Fprintf(imp.writer, "  [NEW]  daily log %s\n", log.Date)
			result.DailyLogs.New++
		}
	}
	return nil
}

func (imp *Importer) importWeeklyGoals(ctx context.Context, snapshot *Snapshot, opts ImportOptions, result *ImportResult) error {
	for _, entry := range snapshot.WeeklyGoals {
		goal := record.WeeklyGoal(entry)
		existing, err := imp.repos.Goals.FindByID(ctx, goal.ID)
		if err != nil {
			return fmt.Errorf("goals.FindByID(%s) > %w", goal.ID, err)
		}

		if existing == nil {
			if !opts.DryRun {
				if err := imp.repos.Goals.Create(ctx, &goal); err != nil {
					return fmt.Errorf("goals.Create(%s) > %w", goal.ID, err)
				}
			}
			_, _ = fmt.Fprintf(imp.writer, "  [NEW]  goal %q\n", goal.Text)
			result.WeeklyGoals.New++
			continue
		}
		// Only the completion flag of an existing goal can change.
		if !opts.UpdateExisting || existing.Done == goal.Done {
			result.WeeklyGoals.Skipped++
			continue
		}
		if !opts.DryRun {
			if err := imp.repos.Goals.SetDone(ctx, goal.ID, goal.Done); err != nil {
				return fmt.Errorf("goals.SetDone(%s) > %w", goal.ID, err)
			}
		}
		_, _ = fmt.Fprintf(imp.writer, "  [UPDATE]  goal %q\n", goal.Text)
		result.WeeklyGoals.Updated++
	}
	return nil
}

func (imp *Importer) importProjects(ctx context.Context, snapshot *Snapshot, opts ImportOptions, result *ImportResult) error {
	for _, entry := range snapshot.Projects {
		project := record.Project(entry)
		if !project.Status.IsPersisted() {
			_, _ = fmt.Fprintf(imp.writer, "  [WARN]  project %q has status %q\n", project.Name, project.Status)
			result.Warnings++
			continue
		}

		existing, err := imp.repos.Projects.FindByID(ctx, project.ID)
		if err != nil {
			return fmt.Errorf("projects.FindByID(%s) > %w", project.ID, err)
		}
		if existing != nil && !opts.UpdateExisting {
			result.Projects.Skipped++
			continue
		}

		// A saved roadmap project stays on its day.
		if existing != nil && existing.RoadmapDay != nil {
			if project.RoadmapDay != nil && *project.RoadmapDay != *existing.RoadmapDay {
				_, _ = fmt.Fprintf(imp.writer, "  [WARN]  project %q: cannot move from day %d to day %d\n", project.Name, *existing.RoadmapDay, *project.RoadmapDay)
				result.Warnings++
				continue
			}
			project.RoadmapDay = existing.RoadmapDay
		} else if project.RoadmapDay != nil {
			sameDay, err := imp.repos.Projects.FindByRoadmapDay(ctx, *project.RoadmapDay)
			if err != nil {
				return fmt.Errorf("projects.FindByRoadmapDay(%d) > %w", *project.RoadmapDay, err)
			}
			if sameDay != nil {
				_, _ = fmt.Fprintf(imp.writer, "  [WARN]  project %q: day %d already has project %s\n", project.Name, *project.RoadmapDay, sameDay.ID)
				result.Warnings++
				continue
			}
		}

		if !opts.DryRun {
			if err := imp.repos.Projects.Upsert(ctx, &project); err != nil {
				return fmt.Errorf("projects.Upsert(%s) > %w", project.ID, err)
			}
		}
		if existing != nil {
			_, _ = fmt.Fprintf(imp.writer, "  [UPDATE]  project %q\n", project.Name)
			result.Projects.Updated++
		} else {
			_, _ = fmt.Fprintf(imp.writer, "  [NEW]  project %q\n", project.Name)
			result.Projects.New++
		}
	}
	return nil
}

func (imp *Importer) importQuizzes(ctx context.Context, snapshot *Snapshot, opts ImportOptions, result *ImportResult) error {
	for _, entry := range snapshot.Quizzes {
		quiz := record.QuizResult(entry)
		if opts.DryRun {
			existing, err := imp.repos.Quizzes.FindByDate(ctx, quiz.Date)
			if err != nil {
				return fmt.Errorf("quizzes.FindByDate(%s) > %w", quiz.Date, err)
			}
			if existing != nil {
				result.Quizzes.Skipped++
			} else {
				result.Quizzes.New++
			}
			continue
		}

		created, err := imp.repos.Quizzes.CreateIfAbsent(ctx, &quiz)
		if err != nil {
			return fmt.Errorf("quizzes.CreateIfAbsent(%s) > %w", quiz.Date, err)
		}
		if !created {
			result.Quizzes.Skipped++
			continue
		}
		_, _ = fmt.Fprintf(imp.writer, "  [NEW]  quiz result %s\n", quiz.Date)
		result.Quizzes.New++
	}
	return nil
}

func (imp *Importer) importAssessments(ctx context.Context, snapshot *Snapshot, opts ImportOptions, result *ImportResult) error {
	if len(snapshot.Assessments) == 0 {
		return nil
	}
	existingAssessments, err := imp.repos.Assessments.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("assessments.FindAll() > %w", err)
	}
	existing := make(map[string]struct{}, len(existingAssessments))
	for _, assessment := range existingAssessments {
		existing[assessment.Month] = struct{}{}
	}

	for _, entry := range snapshot.Assessments {
		assessment := record.MonthlyAssessment(entry)
		if err := assessment.Validate(); err != nil {
			_, _ = fmt.Fprintf(imp.writer, "  [WARN]  assessment %s: %v\n", assessment.Month, err)
			result.Warnings++
			continue
		}
		_, found := existing[assessment.Month]
		if found && !opts.UpdateExisting {
			result.Assessments.Skipped++
			continue
		}
		if !opts.DryRun {
			if err := imp.repos.Assessments.Upsert(ctx, &assessment); err != nil {
				return fmt.Errorf("assessments.Upsert(%s) > %w", assessment.Month, err)
			}
		}
		if found {
			_, _ = fmt.Fprintf(imp.writer, "  [UPDATE]  assessment %s\n", assessment.Month)
			result.Assessments.Updated++
		} else {
			_, _ = fmt.Fprintf(imp.writer, "  [NEW]  assessment %s\n", assessment.Month)
			result.Assessments.New++
		}
	}
	return nil
}
