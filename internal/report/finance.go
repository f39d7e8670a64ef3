package report

import (
	"sort"

	"servicios/internal/core"
)

// Summary is the finance view. Balance counts only collected income:
// pending amounts are receivables, not cash.
type Summary struct {
	TotalPaid     core.Money
	TotalPending  core.Money
	TotalExpenses core.Money
	Balance       core.Money
}

// Summarize partitions income by IsPaid and nets expenses against paid
// income.
func Summarize(services []core.Service, expenses []core.Expense) Summary {
	var s Summary
	for _, svc := range services {
		if svc.IsPaid {
			s.TotalPaid = s.TotalPaid.Add(svc.Amount)
		} else {
			s.TotalPending = s.TotalPending.Add(svc.Amount)
		}
	}
	for _, e := range expenses {
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
	}
	s.Balance = s.TotalPaid.Sub(s.TotalExpenses)
	return s
}

// MonthSummary backs the table under the calendar.
type MonthSummary struct {
	Count   int
	Paid    core.Money
	Pending core.Money
}

func SummarizeMonth(services []core.Service) MonthSummary {
	var m MonthSummary
	for _, s := range services {
		m.Count++
		if s.IsPaid {
			m.Paid = m.Paid.Add(s.Amount)
		} else {
			m.Pending = m.Pending.Add(s.Amount)
		}
	}
	return m
}

type TransactionKind string

const (
	Income  TransactionKind = "ingreso"
	Outflow TransactionKind = "gasto"
)

// Transaction is one row of the combined movements list.
type Transaction struct {
	ID          string
	Kind        TransactionKind
	Date        core.Date
	Description string
	Amount      core.Money
	IsPaid      bool
}

// Ledger merges income and expenses, newest first. Expense rows are
// described as "<Type>: <details>".
func Ledger(services []core.Service, expenses []core.Expense) []Transaction {
	out := make([]Transaction, 0, len(services)+len(expenses))
	for _, s := range services {
		desc := s.Description
		if s.ClientName != "" {
			desc = s.ClientName + " - " + s.Description
		}
		out = append(out, Transaction{
			ID: s.ID, Kind: Income, Date: s.Date,
			Description: desc, Amount: s.Amount, IsPaid: s.IsPaid,
		})
	}
	for _, e := range expenses {
		desc := e.Type.Label()
		if e.Details != "" {
			desc += ": " + e.Details
		}
		out = append(out, Transaction{
			ID: e.ID, Kind: Outflow, Date: e.Date,
			Description: desc, Amount: e.Amount, IsPaid: true,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Key() > out[j].Date.Key()
	})
	return out
}

type TypeTotal struct {
	Type  core.ExpenseType
	Count int
	Total core.Money
}

// ExpensesByType totals expenses per type in the fixed enumeration order.
// Types with no rows are omitted.
func ExpensesByType(expenses []core.Expense) []TypeTotal {
	acc := make(map[core.ExpenseType]*TypeTotal)
	for _, e := range expenses {
		t, ok := acc[e.Type]
		if !ok {
			t = &TypeTotal{Type: e.Type}
			acc[e.Type] = t
		}
		t.Count++
		t.Total = t.Total.Add(e.Amount)
	}
	out := make([]TypeTotal, 0, len(acc))
	for _, typ := range core.ExpenseTypes() {
		if t, ok := acc[typ]; ok {
			out = append(out, *t)
		}
	}
	return out
}
