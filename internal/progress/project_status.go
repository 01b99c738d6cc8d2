package progress

import "github.com/at-ishikawa/studytrack/internal/record"

// MissingGraceDays is how long a reached roadmap project stays NotStarted
// before it is reported as Missing.
const MissingGraceDays = 7

// ResolveProjectStatus returns the status of the roadmap project scheduled on roadmapDay.
// A persisted record always wins; otherwise the status is derived from currentDay.
func ResolveProjectStatus(roadmapDay, currentDay int, persisted *record.Project) record.ProjectStatus {
	if persisted != nil {
		return persisted.Status
	}
	switch {
	case currentDay < roadmapDay:
		return record.ProjectStatusUpcoming
	case currentDay <= roadmapDay+MissingGraceDays:
		return record.ProjectStatusNotStarted
	default:
		return record.ProjectStatusMissing
	}
}
