package report

import "servicios/internal/core"

// Navigator walks the calendar through the days that have services.
//
// The cursor indexes the ascending distinct dates and is independent of the
// displayed month: changing the month never moves it.
type Navigator struct {
	dates  []core.Date
	cursor int
	month  core.Month
}

// NewNavigator positions the cursor at the first service day, or leaves it
// undefined when there are none. The displayed month starts at start.
func NewNavigator(services []core.Service, start core.Month) *Navigator {
	n := &Navigator{dates: DistinctDates(services), cursor: -1, month: start}
	if len(n.dates) > 0 {
		n.cursor = 0
	}
	return n
}

// Restore rebuilds a navigator from a previously rendered cursor and month.
// Out of range cursors are clamped.
func Restore(services []core.Service, month core.Month, cursor int) *Navigator {
	n := NewNavigator(services, month)
	if len(n.dates) == 0 {
		return n
	}
	switch {
	case cursor < 0:
		n.cursor = 0
	case cursor >= len(n.dates):
		n.cursor = len(n.dates) - 1
	default:
		n.cursor = cursor
	}
	return n
}

func (n *Navigator) Month() core.Month { return n.month }

func (n *Navigator) Dates() []core.Date { return n.dates }

// Cursor returns the current index, false when there are no service days.
func (n *Navigator) Cursor() (int, bool) {
	if n.cursor < 0 {
		return 0, false
	}
	return n.cursor, true
}

func (n *Navigator) Current() (core.Date, bool) {
	if n.cursor < 0 {
		return core.Date{}, false
	}
	return n.dates[n.cursor], true
}

// ChangeMonth shifts the displayed month by delta.
func (n *Navigator) ChangeMonth(delta int) {
	n.month = n.month.Add(delta)
}

// GoToFirstService jumps to the earliest service day. No-op without data.
func (n *Navigator) GoToFirstService() bool {
	if len(n.dates) == 0 {
		return false
	}
	n.cursor = 0
	n.month = core.MonthOf(n.dates[0])
	return true
}

// GoToNextService advances to the next service day and shows its month.
// It reports false, changing nothing, once the last day is reached.
func (n *Navigator) GoToNextService() bool {
	if !n.HasNext() {
		return false
	}
	n.cursor++
	n.month = core.MonthOf(n.dates[n.cursor])
	return true
}

func (n *Navigator) HasNext() bool {
	return n.cursor >= 0 && n.cursor < len(n.dates)-1
}
