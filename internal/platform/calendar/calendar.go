// Package calendar holds the calendar-day primitives shared by every module.
// All values are midnight UTC; callers decide what "today" is and pass explicit ranges.
package calendar

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// Day truncates t to midnight UTC of the calendar day it falls on.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Parse(value string) (time.Time, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

func Format(t time.Time) string {
	return Day(t).Format(Layout)
}

// Range is an inclusive span of calendar days.
type Range struct {
	From time.Time
	To   time.Time
}

func NewRange(from, to time.Time) (Range, error) {
	r := Range{From: Day(from), To: Day(to)}
	if r.To.Before(r.From) {
		return Range{}, fmt.Errorf("range end %s is before start %s", Format(r.To), Format(r.From))
	}
	return r, nil
}

func SingleDay(t time.Time) Range {
	d := Day(t)
	return Range{From: d, To: d}
}

// LastDays returns the n-day window ending on end, inclusive. n below 1 is treated as 1.
func LastDays(end time.Time, n int) Range {
	if n < 1 {
		n = 1
	}
	to := Day(end)
	return Range{From: to.AddDate(0, 0, -(n - 1)), To: to}
}

func (r Range) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(r.From) && !d.After(r.To)
}

func (r Range) Len() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

// DaysDescending lists the days of r starting from the most recent.
func (r Range) DaysDescending() []time.Time {
	out := make([]time.Time, 0, r.Len())
	for d := r.To; !d.Before(r.From); d = d.AddDate(0, 0, -1) {
		out = append(out, d)
	}
	return out
}

func (r Range) String() string {
	return Format(r.From) + ".." + Format(r.To)
}
