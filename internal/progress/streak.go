// Package progress derives streaks, weekly revision topics and project
// statuses from logged records and the roadmap calendar.
package progress

import (
	"sort"

	"github.com/at-ishikawa/studytrack/internal/calendar"
)

// CurrentStreak counts consecutive logged days ending today or yesterday.
// A gap of two or more days between today and the latest log breaks the streak.
// Dates after today are ignored and duplicates count once.
func CurrentStreak(dates []calendar.Date, today calendar.Date) int {
	logged := make([]calendar.Date, 0, len(dates))
	seen := make(map[calendar.Date]struct{}, len(dates))
	for _, date := range dates {
		if date.After(today.Time) {
			continue
		}
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		logged = append(logged, date)
	}
	if len(logged) == 0 {
		return 0
	}
	sort.Slice(logged, func(i, j int) bool {
		return logged[i].After(logged[j].Time)
	})

	if today.DaysSince(logged[0]) > 1 {
		return 0
	}
	streak := 1
	for i := 1; i < len(logged); i++ {
		if logged[i-1].DaysSince(logged[i]) != 1 {
			break
		}
		streak++
	}
	return streak
}
