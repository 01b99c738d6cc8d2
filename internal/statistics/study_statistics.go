package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/at-ishikawa/studytrack/internal/calendar"
	"github.com/at-ishikawa/studytrack/internal/record"
)

// StudyStatistics holds statistics for one month
type StudyStatistics struct {
	Period            string // "2025-01"
	LogCount          int
	UniqueTopics      int
	AverageConfidence float64 // rounded to one decimal, 0 without logs
	QuizCount         int
	AverageQuizScore  float64 // rounded to one decimal, 0 without quizzes
}

// AggregateStatistics holds totals across all periods with global unique counts
type AggregateStatistics struct {
	LogCount          int
	UniqueTopics      int
	AverageConfidence float64
	QuizCount         int
	AverageQuizScore  float64
}

// StatisticsResult holds both per-period and aggregate statistics
type StatisticsResult struct {
	Periods   []StudyStatistics
	Aggregate AggregateStatistics
}

// ConfidencePoint is one entry of the confidence trend.
type ConfidencePoint struct {
	Date       calendar.Date
	Confidence int
}

type periodData struct {
	logCount        int
	confidenceTotal int
	topics          map[string]struct{}
	quizCount       int
	quizScoreTotal  int
}

// CalculateStatistics groups logs and quiz results by month.
// It accepts optional year and month filters (0 means no filter).
func CalculateStatistics(logs []record.DailyLog, quizzes []record.QuizResult, year, month int) StatisticsResult {
	stats := make(map[string]*periodData)
	globalTopics := make(map[string]struct{})
	var aggregate periodData

	for _, log := range logs {
		if !matchesFilter(log.Date, year, month) {
			continue
		}
		data := ensurePeriodExists(stats, log.Date)
		data.logCount++
		data.confidenceTotal += log.Confidence
		aggregate.logCount++
		aggregate.confidenceTotal += log.Confidence
		for _, topic := range record.NormalizeTopics(log.Topics) {
			data.topics[topic] = struct{}{}
			globalTopics[topic] = struct{}{}
		}
	}
	for _, quiz := range quizzes {
		if !matchesFilter(quiz.Date, year, month) {
			continue
		}
		data := ensurePeriodExists(stats, quiz.Date)
		data.quizCount++
		data.quizScoreTotal += quiz.Score
		aggregate.quizCount++
		aggregate.quizScoreTotal += quiz.Score
	}

	periods := make([]StudyStatistics, 0, len(stats))
	for period, data := range stats {
		periods = append(periods, StudyStatistics{
			Period:            period,
			LogCount:          data.logCount,
			UniqueTopics:      len(data.topics),
			AverageConfidence: average(data.confidenceTotal, data.logCount),
			QuizCount:         data.quizCount,
			AverageQuizScore:  average(data.quizScoreTotal, data.quizCount),
		})
	}

	// Sort by period descending (newest first)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	return StatisticsResult{
		Periods: periods,
		Aggregate: AggregateStatistics{
			LogCount:          aggregate.logCount,
			UniqueTopics:      len(globalTopics),
			AverageConfidence: average(aggregate.confidenceTotal, aggregate.logCount),
			QuizCount:         aggregate.quizCount,
			AverageQuizScore:  average(aggregate.quizScoreTotal, aggregate.quizCount),
		},
	}
}

// AverageConfidence returns the mean confidence of logs rounded to one decimal.
func AverageConfidence(logs []record.DailyLog) float64 {
	total := 0
	for _, log := range logs {
		total += log.Confidence
	}
	return average(total, len(logs))
}

// ConfidenceTrend returns the confidence of each log, oldest first.
func ConfidenceTrend(logs []record.DailyLog) []ConfidencePoint {
	points := make([]ConfidencePoint, len(logs))
	for i, log := range logs {
		points[i] = ConfidencePoint{Date: log.Date, Confidence: log.Confidence}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date.Time)
	})
	return points
}

func ensurePeriodExists(stats map[string]*periodData, date calendar.Date) *periodData {
	period := fmt.Sprintf("%d-%02d", date.Year(), int(date.Month()))
	if stats[period] == nil {
		stats[period] = &periodData{topics: make(map[string]struct{})}
	}
	return stats[period]
}

func matchesFilter(date calendar.Date, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if date.Year() != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return int(date.Month()) == filterMonth
}

func average(total, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(total)/float64(count)*10) / 10
}
