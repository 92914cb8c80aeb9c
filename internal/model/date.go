package model

import (
	"fmt"
	"time"
)

// Date layouts used across the application.
const (
	DateLayout      = "2006-01-02"
	YearMonthLayout = "2006-01"
	DisplayLayout   = "02/01/2006"
)

// NewDate builds a calendar date at 00:00 UTC.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the time-of-day component, keeping the wall-clock calendar date.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current local calendar date.
func Today() time.Time {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// WeekBounds returns the Monday and Sunday of the ISO week containing d.
func WeekBounds(d time.Time) (time.Time, time.Time) {
	d = DateOf(d)
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a YYYY-MM month.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(YearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return YearMonthOf(t), nil
}

// Contains reports whether t falls in the month.
func (ym YearMonth) Contains(t time.Time) bool {
	return t.Year() == ym.Year && t.Month() == ym.Month
}

// First returns the first day of the month.
func (ym YearMonth) First() time.Time {
	return NewDate(ym.Year, ym.Month, 1)
}

// Last returns the last day of the month.
func (ym YearMonth) Last() time.Time {
	return ym.First().AddDate(0, 1, -1)
}

// AddMonths shifts the month by n, which may be negative.
func (ym YearMonth) AddMonths(n int) YearMonth {
	return YearMonthOf(ym.First().AddDate(0, n, 0))
}

func (ym YearMonth) String() string {
	return ym.First().Format(YearMonthLayout)
}
