// Package roadmap provides the immutable study roadmap: week titles, goals,
// daily topics and the portfolio projects scheduled on specific days.
package roadmap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/at-ishikawa/studytrack/internal/calendar"
)

const (
	studyDaysPerWeek = 5
	revisionDayTitle = "Weekly Revision"
	restDayTitle     = "Rest"
)

var ErrInvalidCatalog = errors.New("invalid roadmap catalog")

// WeekInfo describes one roadmap week. Days is keyed by program day number.
type WeekInfo struct {
	Number int
	Title  string
	Goals  []string
	Days   map[int]DayInfo
}

type DayInfo struct {
	Title  string
	Topics []string
}

// ProjectDefinition is a portfolio project the roadmap schedules on Day.
type ProjectDefinition struct {
	Day         int
	Title       string
	Description string
	Features    []string
}

// Catalog is the lookup from week and day numbers to roadmap content.
type Catalog struct {
	weeks    map[int]WeekInfo
	projects map[int]ProjectDefinition
}

// Week returns week n (1..24).
func (c *Catalog) Week(n int) (WeekInfo, bool) {
	week, ok := c.weeks[n]
	return week, ok
}

// Day returns the content of a program day number (1..168).
func (c *Catalog) Day(day int) (DayInfo, bool) {
	week, ok := c.weeks[calendar.WeekOfDay(day)]
	if !ok {
		return DayInfo{}, false
	}
	info, ok := week.Days[day]
	return info, ok
}

// Weeks returns every week in order.
func (c *Catalog) Weeks() []WeekInfo {
	weeks := make([]WeekInfo, 0, len(c.weeks))
	for n := 1; n <= calendar.TotalWeeks; n++ {
		if week, ok := c.weeks[n]; ok {
			weeks = append(weeks, week)
		}
	}
	return weeks
}

// Projects returns the project catalog keyed by roadmap day.
func (c *Catalog) Projects() map[int]ProjectDefinition {
	projects := make(map[int]ProjectDefinition, len(c.projects))
	for day, project := range c.projects {
		projects[day] = project
	}
	return projects
}

func (c *Catalog) Project(day int) (ProjectDefinition, bool) {
	project, ok := c.projects[day]
	return project, ok
}

// ProjectDays returns the scheduled project days in ascending order.
func (c *Catalog) ProjectDays() []int {
	days := make([]int, 0, len(c.projects))
	for day := range c.projects {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// newCatalog validates the decoded document and fills in the days a week leaves implicit.
func newCatalog(doc catalogDocument) (*Catalog, error) {
	catalog := &Catalog{
		weeks:    make(map[int]WeekInfo, calendar.TotalWeeks),
		projects: make(map[int]ProjectDefinition, len(doc.Projects)),
	}

	for _, w := range doc.Weeks {
		if w.Week < 1 || w.Week > calendar.TotalWeeks {
			return nil, fmt.Errorf("%w: week %d is outside 1..%d", ErrInvalidCatalog, w.Week, calendar.TotalWeeks)
		}
		if _, ok := catalog.weeks[w.Week]; ok {
			return nil, fmt.Errorf("%w: week %d is defined twice", ErrInvalidCatalog, w.Week)
		}
		if w.Title == "" {
			return nil, fmt.Errorf("%w: week %d has no title", ErrInvalidCatalog, w.Week)
		}

		week := WeekInfo{
			Number: w.Week,
			Title:  w.Title,
			Goals:  w.Goals,
			Days:   derivedDays(w.Week, w.Title, w.Goals),
		}
		first := (w.Week-1)*calendar.DaysPerWeek + 1
		for _, d := range w.Days {
			if d.Day < first || d.Day >= first+calendar.DaysPerWeek {
				return nil, fmt.Errorf("%w: day %d does not belong to week %d", ErrInvalidCatalog, d.Day, w.Week)
			}
			week.Days[d.Day] = DayInfo{Title: d.Title, Topics: d.Topics}
		}
		catalog.weeks[w.Week] = week
	}
	if len(catalog.weeks) != calendar.TotalWeeks {
		return nil, fmt.Errorf("%w: expected %d weeks, got %d", ErrInvalidCatalog, calendar.TotalWeeks, len(catalog.weeks))
	}

	for _, p := range doc.Projects {
		if p.Day < 1 || p.Day > calendar.TotalDays {
			return nil, fmt.Errorf("%w: project %q is scheduled on day %d", ErrInvalidCatalog, p.Title, p.Day)
		}
		if _, ok := catalog.projects[p.Day]; ok {
			return nil, fmt.Errorf("%w: two projects are scheduled on day %d", ErrInvalidCatalog, p.Day)
		}
		if p.Title == "" {
			return nil, fmt.Errorf("%w: project on day %d has no title", ErrInvalidCatalog, p.Day)
		}
		catalog.projects[p.Day] = ProjectDefinition(p)
	}
	return catalog, nil
}

// derivedDays spreads the goals of a week over its five study days.
func derivedDays(week int, title string, goals []string) map[int]DayInfo {
	first := (week-1)*calendar.DaysPerWeek + 1
	days := make(map[int]DayInfo, calendar.DaysPerWeek)
	for i := 0; i < studyDaysPerWeek; i++ {
		var topics []string
		for j := i; j < len(goals); j += studyDaysPerWeek {
			topics = append(topics, goals[j])
		}
		if len(topics) == 0 {
			topics = []string{title}
		}
		days[first+i] = DayInfo{Title: title, Topics: topics}
	}
	days[first+calendar.ReviewDay-1] = DayInfo{Title: revisionDayTitle}
	days[first+calendar.DaysPerWeek-1] = DayInfo{Title: restDayTitle}
	return days
}
