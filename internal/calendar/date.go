// Package calendar converts calendar dates into roadmap-relative day and week numbers.
package calendar

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Layout is the canonical persisted form of a Date.
const Layout = "2006-01-02"

// Date is a civil calendar day, stored as midnight UTC.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar day of t as observed in loc.
func FromTime(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return NewDate(local.Year(), local.Month(), local.Day())
}

// Today returns the current calendar day in loc.
func Today(loc *time.Location) Date {
	return FromTime(time.Now(), loc)
}

// ParseDate parses a date in YYYY-MM-DD format.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("unable to parse date '%s': expected YYYY-MM-DD format", value)
	}
	return Date{Time: t}, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(value string) Date {
	d, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// DaysSince returns the number of whole days from other to d.
func (d Date) DaysSince(other Date) int {
	return int((d.Unix() - other.Unix()) / secondsPerDay)
}

// Exact because every Date is UTC midnight.
const secondsPerDay = 24 * 60 * 60

// String returns the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(Layout)
}

// MarshalYAML implements the yaml.Marshaler interface
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDate(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so dates persist as YYYY-MM-DD strings.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
	case time.Time:
		*d = FromTime(v, time.UTC)
	default:
		return fmt.Errorf("cannot scan %T into calendar.Date", src)
	}
	return nil
}
