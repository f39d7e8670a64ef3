package core

import (
	"fmt"
	"strconv"
	"time"
)

// Bounds accepted when a user jumps to an explicit month.
const (
	MinYear = 1900
	MaxYear = 2100
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Month is a (year, month) bucket key.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth validates a year and month a user typed in, within MinYear-MaxYear.
func NewMonth(year, month int) (Month, error) {
	if year < MinYear || year > MaxYear {
		return Month{}, fmt.Errorf("%w: year %d", ErrInvalidMonth, year)
	}
	return MonthAt(year, month)
}

// MonthAt builds a month without the jump bounds, for months reached by
// stepping back and forth. Only the four digit year range is enforced.
func MonthAt(year, month int) (Month, error) {
	if year < 1 || year > 9999 {
		return Month{}, fmt.Errorf("%w: year %d", ErrInvalidMonth, year)
	}
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: month %d", ErrInvalidMonth, month)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// ParseMonth parses YYYY-MM.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return NewMonth(t.Year(), int(t.Month()))
}

func MonthOf(d Date) Month {
	return Month{Year: d.Year(), Month: d.Time.Month()}
}

func CurrentMonth(now time.Time) Month {
	return MonthOf(DateOf(now))
}

// Add shifts by delta months, rolling the year over in either direction.
func (m Month) Add(delta int) Month {
	t := time.Date(m.Year, m.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) First() Date {
	return NewDate(m.Year, int(m.Month), 1)
}

func (m Month) Last() Date {
	return Date{Time: m.Add(1).First().AddDate(0, 0, -1)}
}

func (m Month) Days() int {
	return m.Last().Day()
}

func (m Month) Range() DateRange {
	return DateRange{From: m.First(), To: m.Last()}
}

func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year && d.Time.Month() == m.Month
}

// String returns YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label returns the Spanish display name, e.g. "Enero 2024".
func (m Month) Label() string {
	return monthNames[m.Month-1] + " " + strconv.Itoa(m.Year)
}
