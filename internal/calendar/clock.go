package calendar

import (
	"errors"
	"fmt"
)

const (
	DaysPerWeek = 7
	TotalWeeks  = 24
	TotalDays   = TotalWeeks * DaysPerWeek

	// ReviewDay is the day of each week (day_number % 7) reserved for revision.
	ReviewDay = 6
)

var (
	ErrInvalidDateRange = errors.New("date outside the roadmap")
	ErrBeforeStart      = fmt.Errorf("%w: before start", ErrInvalidDateRange)
	ErrPastEnd          = fmt.Errorf("%w: past end", ErrInvalidDateRange)
)

// Position is where a date falls inside the roadmap.
type Position struct {
	Day  int
	Week int
}

// DayInWeek returns the 1-based day inside the week (1..7).
func (p Position) DayInWeek() int {
	return (p.Day-1)%DaysPerWeek + 1
}

// IsReviewDay reports whether the position is the weekly revision day.
func (p Position) IsReviewDay() bool {
	return IsReviewDay(p.Day)
}

// DayNumber returns the 1-based offset of date from anchor.
// The result is not range checked; see Locate.
func DayNumber(anchor, date Date) int {
	return date.DaysSince(anchor) + 1
}

// WeekOfDay returns the week containing a day number.
func WeekOfDay(day int) int {
	return (day-1)/DaysPerWeek + 1
}

// Locate maps date onto the roadmap that starts at anchor.
// Dates outside 1..TotalDays return ErrBeforeStart or ErrPastEnd together with
// the unclamped day number, so callers can still report how far off they are.
func Locate(anchor, date Date) (Position, error) {
	day := DayNumber(anchor, date)
	switch {
	case day < 1:
		return Position{Day: day}, ErrBeforeStart
	case day > TotalDays:
		return Position{Day: day}, ErrPastEnd
	}
	return Position{Day: day, Week: WeekOfDay(day)}, nil
}

// CurrentWeek returns the week used for goal and quiz selection on today.
// It is always within 1..TotalWeeks.
func CurrentWeek(anchor, today Date) int {
	diff := today.DaysSince(anchor)
	week := diff / DaysPerWeek
	if diff < 0 {
		week = 0
	}
	return clamp(week, 0, TotalWeeks-1) + 1
}

// WeekStart returns the anchor date of a week.
func WeekStart(anchor Date, week int) Date {
	return anchor.AddDays((week - 1) * DaysPerWeek)
}

// IsReviewDay reports whether a day number is the weekly revision day.
func IsReviewDay(day int) bool {
	return day%DaysPerWeek == ReviewDay
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
