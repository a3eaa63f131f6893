// Package date provides a day-granularity Date used for due dates, payment
// dates, recurrence schedules and historical report points.
package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// TimeFormat is the hour:minute format used by transaction forms.
const TimeFormat = "15:04"

// other layouts the backend is known to produce.
var readLayouts = []string{
	readDateFormat,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01",
}

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// Of returns the Date of t in t's own location.
func Of(t time.Time) Date { return New(t.Date()) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.Time().Before(x.Time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.Time().After(x.Time()) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Today returns the current date.
func Today() Date { return Of(time.Now()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// AddMonths returns a new Date with the given number of months added, keeping the day of month.
func (d Date) AddMonths(i int) Date { return New(d.y, d.m+time.Month(i), d.d) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String format the date in its standard format. The zero Date is "".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateFormat)
}

// Format formats the date with a time layout.
func (d Date) Format(layout string) string { return d.Time().Format(layout) }

// Parse parses a Date from a string. It is lenient and accepts formats like
// "2025-7-1", plain months "2025-07", and full timestamps.
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	for _, layout := range readLayouts {
		if on, err := time.Parse(layout, str); err == nil {
			return Of(on), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", str, DateFormat)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// NextDayOfMonth returns the next occurrence of day on or after today: this
// month's day if it has not passed yet, next month's otherwise.
// Days beyond the end of a month roll over into the following month.
func NextDayOfMonth(today Date, day int) Date {
	next := New(today.y, today.m, day)
	if next.Before(today) {
		next = New(today.y, today.m+1, day)
	}
	return next
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
// An empty string or null decodes to the zero Date.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str *string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == nil || *str == "" {
		*j = Date{}
		return nil
	}
	d, err := Parse(*str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
