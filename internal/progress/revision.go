package progress

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/record"
)

// revisionLookback is the number of study days before a review day.
const revisionLookback = 5

var ErrNoRevisionTopics = errors.New("no topics logged this week")

// LogLookup returns the log of a date, or nil if nothing was logged.
type LogLookup interface {
	FindByDate(ctx context.Context, date calendar.Date) (*record.DailyLog, error)
}

// WeeklyRevision collects the topics logged on the five days before a review day.
// The result is deduplicated and sorted. ErrNoRevisionTopics is returned when
// none of those days has a topic.
func WeeklyRevision(ctx context.Context, reviewDate calendar.Date, lookup LogLookup) ([]string, error) {
	topics := make(map[string]struct{})
	for offset := 1; offset <= revisionLookback; offset++ {
		log, err := lookup.FindByDate(ctx, reviewDate.AddDays(-offset))
		if err != nil {
			return nil, fmt.Errorf("lookup.FindByDate() > %w", err)
		}
		if log == nil {
			continue
		}
		for _, topic := range record.NormalizeTopics(log.Topics) {
			topics[topic] = struct{}{}
		}
	}
	if len(topics) == 0 {
		return nil, ErrNoRevisionTopics
	}

	result := make([]string, 0, len(topics))
	for topic := range topics {
		result = append(result, topic)
	}
	sort.Strings(result)
	return result, nil
}
