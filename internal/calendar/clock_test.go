package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayNumber(t *testing.T) {
	anchor := MustParseDate("2025-01-06")

	tests := []struct {
		name string
		date Date
		want int
	}{
		{name: "anchor is day 1", date: anchor, want: 1},
		{name: "next day", date: anchor.AddDays(1), want: 2},
		{name: "first day of week 2", date: anchor.AddDays(7), want: 8},
		{name: "last day of the roadmap", date: anchor.AddDays(167), want: 168},
		{name: "day before anchor", date: anchor.AddDays(-1), want: 0},
		{name: "across a month boundary", date: MustParseDate("2025-02-01"), want: 27},
		{name: "across a DST change in other zones", date: MustParseDate("2025-03-31"), want: 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayNumber(anchor, tt.date))
		})
	}
}

func TestDayNumber_Succession(t *testing.T) {
	anchor := MustParseDate("2024-12-30")
	prev := DayNumber(anchor, anchor)
	require.Equal(t, 1, prev)

	for d := anchor.AddDays(1); d.DaysSince(anchor) < 400; d = d.AddDays(1) {
		got := DayNumber(anchor, d)
		require.Equal(t, prev+1, got, "date %s", d)
		prev = got
	}
}

func TestWeekOfDay_Monotonic(t *testing.T) {
	prev := WeekOfDay(1)
	require.Equal(t, 1, prev)

	for day := 2; day <= TotalDays; day++ {
		week := WeekOfDay(day)
		if (day-1)%DaysPerWeek == 0 {
			assert.Equal(t, prev+1, week, "day %d starts a new week", day)
		} else {
			assert.Equal(t, prev, week, "day %d stays in the same week", day)
		}
		prev = week
	}
	assert.Equal(t, TotalWeeks, prev)
}

func TestLocate(t *testing.T) {
	anchor := MustParseDate("2025-01-06")

	tests := []struct {
		name    string
		date    Date
		want    Position
		wantErr error
	}{
		{
			name: "first day",
			date: anchor,
			want: Position{Day: 1, Week: 1},
		},
		{
			name: "review day of week 1",
			date: anchor.AddDays(5),
			want: Position{Day: 6, Week: 1},
		},
		{
			name: "day 8 is week 2",
			date: anchor.AddDays(7),
			want: Position{Day: 8, Week: 2},
		},
		{
			name: "last day",
			date: anchor.AddDays(167),
			want: Position{Day: 168, Week: 24},
		},
		{
			name:    "before start",
			date:    anchor.AddDays(-3),
			want:    Position{Day: -2},
			wantErr: ErrBeforeStart,
		},
		{
			name:    "past end",
			date:    anchor.AddDays(168),
			want:    Position{Day: 169},
			wantErr: ErrPastEnd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Locate(anchor, tt.date)
			assert.Equal(t, tt.want, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidDateRange)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPosition_DayInWeek(t *testing.T) {
	tests := []struct {
		day        int
		want       int
		wantReview bool
	}{
		{day: 1, want: 1},
		{day: 6, want: 6, wantReview: true},
		{day: 7, want: 7},
		{day: 8, want: 1},
		{day: 13, want: 6, wantReview: true},
		{day: 168, want: 7},
	}

	for _, tt := range tests {
		p := Position{Day: tt.day, Week: WeekOfDay(tt.day)}
		assert.Equal(t, tt.want, p.DayInWeek(), "day %d", tt.day)
		assert.Equal(t, tt.wantReview, p.IsReviewDay(), "day %d", tt.day)
	}
}

func TestCurrentWeek(t *testing.T) {
	anchor := MustParseDate("2025-01-06")

	tests := []struct {
		name  string
		today Date
		want  int
	}{
		{name: "before start clamps to week 1", today: anchor.AddDays(-10), want: 1},
		{name: "day before start", today: anchor.AddDays(-1), want: 1},
		{name: "first day", today: anchor, want: 1},
		{name: "day 7", today: anchor.AddDays(6), want: 1},
		{name: "day 8", today: anchor.AddDays(7), want: 2},
		{name: "last day", today: anchor.AddDays(167), want: 24},
		{name: "after end clamps to week 24", today: anchor.AddDays(400), want: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentWeek(anchor, tt.today))
		})
	}
}

func TestWeekStart(t *testing.T) {
	anchor := MustParseDate("2025-01-06")

	assert.Equal(t, anchor, WeekStart(anchor, 1))
	assert.Equal(t, MustParseDate("2025-01-13"), WeekStart(anchor, 2))
	assert.Equal(t, MustParseDate("2025-06-16"), WeekStart(anchor, 24))
}

func TestIsReviewDay(t *testing.T) {
	var reviewDays []int
	for day := 1; day <= 21; day++ {
		if IsReviewDay(day) {
			reviewDays = append(reviewDays, day)
		}
	}
	assert.Equal(t, []int{6, 13, 20}, reviewDays)
}
