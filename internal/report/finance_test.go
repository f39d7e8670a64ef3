package report

import (
	"testing"

	"servicios/internal/core"
)

func exp(id string, typ core.ExpenseType, date string, cents int64, details string) core.Expense {
	return core.Expense{ID: id, Type: typ, Date: core.MustParseDate(date), Amount: core.Money{Cents: cents}, Details: details}
}

func TestSummarizeExample(t *testing.T) {
	services := []core.Service{
		svc("1", "a", "2024-01-01", 100, true),
		svc("2", "a", "2024-01-02", 50, false),
	}
	expenses := []core.Expense{exp("e1", core.Consumables, "2024-01-03", 30, "")}

	got := Summarize(services, expenses)
	want := Summary{
		TotalPaid:     core.Money{Cents: 100},
		TotalPending:  core.Money{Cents: 50},
		TotalExpenses: core.Money{Cents: 30},
		Balance:       core.Money{Cents: 70},
	}
	if got != want {
		t.Fatalf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSummarizeProperties(t *testing.T) {
	cases := []struct {
		name     string
		services []core.Service
		expenses []core.Expense
	}{
		{"empty", nil, nil},
		{"only expenses", nil, []core.Expense{exp("e", core.Repairs, "2024-01-01", 999, "")}},
		{"all pending", []core.Service{svc("1", "a", "2024-01-01", 10, false), svc("2", "b", "2024-01-01", 15, false)}, nil},
		{"mixed", []core.Service{
			svc("1", "a", "2024-01-01", 123456, true),
			svc("2", "b", "2024-01-01", 1, false),
			svc("3", "c", "2024-01-01", 0, true),
		}, []core.Expense{exp("e", core.PerDiem, "2024-01-01", 200000, "")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Summarize(tc.services, tc.expenses)
			var income int64
			for _, svc := range tc.services {
				income += svc.Amount.Cents
			}
			if s.TotalPaid.Cents+s.TotalPending.Cents != income {
				t.Fatalf("paid+pending = %d, income = %d", s.TotalPaid.Cents+s.TotalPending.Cents, income)
			}
			if s.Balance.Cents != s.TotalPaid.Cents-s.TotalExpenses.Cents {
				t.Fatalf("balance %d != paid %d - expenses %d", s.Balance.Cents, s.TotalPaid.Cents, s.TotalExpenses.Cents)
			}
		})
	}
	if (Summarize(nil, nil) != Summary{}) {
		t.Fatalf("empty input must give zero summary")
	}
}

func TestLedger(t *testing.T) {
	services := []core.Service{svc("s1", "a", "2024-01-05", 100, true)}
	expenses := []core.Expense{
		exp("e1", core.Machinery, "2024-01-10", 40, "motosierra"),
		exp("e2", core.PerDiem, "2024-01-01", 10, ""),
	}
	got := Ledger(services, expenses)
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].ID != "e1" || got[1].ID != "s1" || got[2].ID != "e2" {
		t.Fatalf("order = %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[0].Description != "Maquinaria: motosierra" || got[0].Kind != Outflow {
		t.Fatalf("expense row = %+v", got[0])
	}
	if got[2].Description != "Viaticos" {
		t.Fatalf("expense without details = %q", got[2].Description)
	}
	if got[1].Description != "Cliente a - servicio s1" || got[1].Kind != Income {
		t.Fatalf("income row = %+v", got[1])
	}
}

func TestSummarizeMonthAndByType(t *testing.T) {
	m := SummarizeMonth([]core.Service{
		svc("1", "a", "2024-01-01", 100, true),
		svc("2", "a", "2024-01-02", 25, false),
		svc("3", "a", "2024-01-03", 5, false),
	})
	if m.Count != 3 || m.Paid.Cents != 100 || m.Pending.Cents != 30 {
		t.Fatalf("SummarizeMonth = %+v", m)
	}

	totals := ExpensesByType([]core.Expense{
		exp("1", core.Repairs, "2024-01-01", 10, ""),
		exp("2", core.PerDiem, "2024-01-01", 5, ""),
		exp("3", core.Repairs, "2024-01-01", 7, ""),
	})
	if len(totals) != 2 {
		t.Fatalf("len = %d", len(totals))
	}
	if totals[0].Type != core.PerDiem || totals[1].Type != core.Repairs {
		t.Fatalf("order = %v, %v", totals[0].Type, totals[1].Type)
	}
	if totals[1].Count != 2 || totals[1].Total.Cents != 17 {
		t.Fatalf("repairs = %+v", totals[1])
	}
}
