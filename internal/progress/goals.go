package progress

import "github.com/at-ishikawa/studytrack/internal/record"

// GoalProgress returns the number of completed goals and the completion
// percentage rounded down. An empty goal list is 0%.
func GoalProgress(goals []record.WeeklyGoal) (done int, percent int) {
	if len(goals) == 0 {
		return 0, 0
	}
	for _, goal := range goals {
		if goal.Done {
			done++
		}
	}
	return done, done * 100 / len(goals)
}
