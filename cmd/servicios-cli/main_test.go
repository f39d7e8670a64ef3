package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"servicios/internal/core"
	"servicios/internal/storage/memory"
	"servicios/internal/store"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	st := memory.New()
	if _, err := st.CreateServiceWithClient(ctx, "demo", core.Client{Name: "Ana", Phone: "555"}, core.Service{
		Description: "Poda", Amount: core.Money{Cents: 120000}, Date: core.MustParseDate("2024-06-03"), IsPaid: true,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.CreateClient(ctx, "demo", core.Client{Name: "Bruno"}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.CreateExpense(ctx, "demo", core.Expense{
		Type: core.Consumables, Amount: core.Money{Cents: 20000}, Details: "Bolsas", Date: core.MustParseDate("2024-06-04"),
	}); err != nil {
		t.Fatal(err)
	}
	return st
}

func run(t *testing.T, st store.Store, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func(string) (store.Store, error) { return st, nil })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSummaryCommand(t *testing.T) {
	out, err := run(t, seededStore(t), "summary", "--user", "demo", "--month", "2024-06")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"Junio 2024", "$1,200", "$200", "$1,000", "Insumos (1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryCommandRejectsBadInput(t *testing.T) {
	if _, err := run(t, seededStore(t), "summary", "--user", "demo", "--month", "junio"); err == nil {
		t.Error("expected error for malformed month")
	}
	if _, err := run(t, seededStore(t), "summary"); err == nil {
		t.Error("expected error without --user")
	}
}

func TestClientsCommand(t *testing.T) {
	out, err := run(t, seededStore(t), "clients", "--user", "demo")
	if err != nil {
		t.Fatalf("clients: %v", err)
	}
	for _, want := range []string{"Ana", "03/06/2024", "Bruno", "TOTAL (2 clientes)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, seededStore(t), "clients", "--user", "demo", "-q", "zzz")
	if err != nil || !strings.Contains(out, "No clients found.") {
		t.Errorf("filtered output = %q, err = %v", out, err)
	}
}

func TestMigrateCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	out, err := run(t, nil, "--db", db, "migrate")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "schema version 1 (dirty=false)") {
		t.Errorf("output = %q", out)
	}
}
