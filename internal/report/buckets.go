// Package report derives calendar, financial and per-client views from the
// raw rows a store returns. Everything here is pure: no I/O, no clock.
package report

import (
	"sort"
	"time"

	"servicios/internal/core"
)

// DistinctDates returns the set of service days in ascending order.
func DistinctDates(services []core.Service) []core.Date {
	seen := make(map[string]struct{}, len(services))
	out := make([]core.Date, 0, len(services))
	for _, s := range services {
		k := s.Date.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s.Date)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// InMonth keeps services whose date falls in m, preserving input order.
func InMonth(services []core.Service, m core.Month) []core.Service {
	out := make([]core.Service, 0)
	for _, s := range services {
		if m.Contains(s.Date) {
			out = append(out, s)
		}
	}
	return out
}

// OnDay keeps services scheduled on d, preserving input order.
func OnDay(services []core.Service, d core.Date) []core.Service {
	out := make([]core.Service, 0)
	for _, s := range services {
		if s.Date.SameDay(d) {
			out = append(out, s)
		}
	}
	return out
}

// DayCell is one square of the month grid. Blank cells pad the first week.
type DayCell struct {
	Blank    bool
	Date     core.Date
	Services []core.Service
}

func (c DayCell) HasServices() bool { return len(c.Services) > 0 }

// Grid is a Sunday-first month calendar.
type Grid struct {
	Month core.Month
	Cells []DayCell
}

// Weekdays are the Spanish column headers, Sunday first.
var Weekdays = [7]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

// MonthGrid lays the month out with leading blanks up to the weekday of the
// 1st and attaches each day's services.
func MonthGrid(m core.Month, services []core.Service) Grid {
	byDay := make(map[string][]core.Service)
	for _, s := range InMonth(services, m) {
		k := s.Date.Key()
		byDay[k] = append(byDay[k], s)
	}

	lead := int(m.First().Weekday() - time.Sunday)
	cells := make([]DayCell, 0, lead+m.Days())
	for i := 0; i < lead; i++ {
		cells = append(cells, DayCell{Blank: true})
	}
	for day := 1; day <= m.Days(); day++ {
		d := core.NewDate(m.Year, int(m.Month), day)
		cells = append(cells, DayCell{Date: d, Services: byDay[d.Key()]})
	}
	return Grid{Month: m, Cells: cells}
}

// Weeks splits the grid into rows of seven; the last row may be short.
func (g Grid) Weeks() [][]DayCell {
	var rows [][]DayCell
	for i := 0; i < len(g.Cells); i += 7 {
		end := i + 7
		if end > len(g.Cells) {
			end = len(g.Cells)
		}
		rows = append(rows, g.Cells[i:end])
	}
	return rows
}
