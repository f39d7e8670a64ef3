package http

import (
	"servicios/internal/core"
	"servicios/internal/report"
	"servicios/internal/services"
)

// View models. Templates only read fields and call single-result methods,
// so anything needing a comma-ok or arithmetic is computed here.

type monthRef struct {
	Year  int
	Month int
	Label string
}

func refOf(m core.Month) monthRef {
	return monthRef{Year: m.Year, Month: int(m.Month), Label: m.Label()}
}

type servicesPage struct {
	Nav      string
	Today    string
	Clients  []core.Client
	Month    monthRef
	Services []core.Service
	Summary  report.MonthSummary
}

type serviceDetailPage struct {
	Nav     string
	Service core.Service
	Month   monthRef
}

type clientRow struct {
	report.ClientSummary
	Last string
}

func newClientRow(c report.ClientSummary) clientRow {
	row := clientRow{ClientSummary: c, Last: "-"}
	if d, ok := c.LastService(); ok {
		row.Last = d.Display()
	}
	return row
}

type clientsPage struct {
	Nav           string
	Term          string
	Rows          []clientRow
	TotalClients  int
	TotalServices int
	TotalAmount   core.Money
}

func newClientsPage(v services.ClientsView) clientsPage {
	p := clientsPage{
		Nav:           "clients",
		Term:          v.Term,
		TotalClients:  len(v.Rollup.Clients),
		TotalServices: v.Rollup.TotalServices,
		TotalAmount:   v.Rollup.TotalAmount,
	}
	for _, c := range v.Visible {
		p.Rows = append(p.Rows, newClientRow(c))
	}
	return p
}

type clientDetailPage struct {
	Nav    string
	Client clientRow
}

type dayCell struct {
	Blank    bool
	Day      int
	Key      string
	Current  bool
	Services []core.Service
	Total    core.Money
}

type calendarPage struct {
	Nav       string
	Month     monthRef
	Weekdays  [7]string
	Weeks     [][]dayCell
	Summary   report.MonthSummary
	Services  []core.Service
	Cursor    int
	HasCursor bool
	Current   string
	HasNext   bool
	Exhausted bool
}

func newCalendarPage(v services.CalendarView) calendarPage {
	p := calendarPage{
		Nav:       "calendar",
		Month:     refOf(v.Month),
		Weekdays:  report.Weekdays,
		Summary:   v.Summary,
		Services:  v.Services,
		Cursor:    v.Cursor,
		HasCursor: v.HasCursor,
		HasNext:   v.HasNext,
		Exhausted: v.Exhausted,
	}
	if v.HasCursor {
		p.Current = v.Current.Key()
	}
	for _, week := range v.Grid.Weeks() {
		row := make([]dayCell, 0, len(week))
		for _, c := range week {
			if c.Blank {
				row = append(row, dayCell{Blank: true})
				continue
			}
			cell := dayCell{
				Day:      c.Date.Day(),
				Key:      c.Date.Key(),
				Current:  v.HasCursor && c.Date.SameDay(v.Current),
				Services: c.Services,
			}
			for _, s := range c.Services {
				cell.Total = cell.Total.Add(s.Amount)
			}
			row = append(row, cell)
		}
		p.Weeks = append(p.Weeks, row)
	}
	return p
}

type expenseOption struct {
	Value string
	Label string
}

func expenseOptions() []expenseOption {
	types := core.ExpenseTypes()
	out := make([]expenseOption, len(types))
	for i, t := range types {
		out[i] = expenseOption{Value: string(t), Label: t.Label()}
	}
	return out
}

type financesPage struct {
	Nav     string
	Month   monthRef
	Prev    monthRef
	Next    monthRef
	Summary report.Summary
	Ledger  []report.Transaction
	ByType  []report.TypeTotal
	Types   []expenseOption
	Today   string
	MinYear int
	MaxYear int
}

func newFinancesPage(v services.FinanceView, today core.Date) financesPage {
	return financesPage{
		Nav:     "finances",
		Month:   refOf(v.Month),
		Prev:    refOf(v.Month.Add(-1)),
		Next:    refOf(v.Month.Add(1)),
		Summary: v.Summary,
		Ledger:  v.Ledger,
		ByType:  v.ByType,
		Types:   expenseOptions(),
		Today:   today.Key(),
		MinYear: core.MinYear,
		MaxYear: core.MaxYear,
	}
}

// summaryJSON is the /api/summary payload. Amounts are integer cents.
type summaryJSON struct {
	Month              string          `json:"month"`
	Label              string          `json:"label"`
	TotalPaidCents     int64           `json:"total_paid_cents"`
	TotalPendingCents  int64           `json:"total_pending_cents"`
	TotalExpensesCents int64           `json:"total_expenses_cents"`
	BalanceCents       int64           `json:"balance_cents"`
	Balance            string          `json:"balance"`
	Services           int             `json:"services"`
	ExpensesByType     []typeTotalJSON `json:"expenses_by_type"`
}

type typeTotalJSON struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	TotalCents int64  `json:"total_cents"`
}

func newSummaryJSON(v services.FinanceView) summaryJSON {
	out := summaryJSON{
		Month:              v.Month.String(),
		Label:              v.Month.Label(),
		TotalPaidCents:     v.Summary.TotalPaid.Cents,
		TotalPendingCents:  v.Summary.TotalPending.Cents,
		TotalExpensesCents: v.Summary.TotalExpenses.Cents,
		BalanceCents:       v.Summary.Balance.Cents,
		Balance:            v.Summary.Balance.Display(),
		Services:           len(v.Services),
		ExpensesByType:     []typeTotalJSON{},
	}
	for _, t := range v.ByType {
		out.ExpensesByType = append(out.ExpensesByType, typeTotalJSON{
			Type:       string(t.Type),
			Count:      t.Count,
			TotalCents: t.Total.Cents,
		})
	}
	return out
}
