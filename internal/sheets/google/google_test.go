package google

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"servicios/internal/core"
)

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Config{})
	if err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
	if err.Error() != "missing GOOGLE_SPREADSHEET_ID" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewSheetsService_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := newSheetsService(context.Background(), "", "")
	if err == nil {
		t.Fatal("expected error without credentials")
	}
	if !strings.Contains(err.Error(), "missing service account credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewSheetsService_UnreadableFile(t *testing.T) {
	_, err := newSheetsService(context.Background(), "", filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestClient_NilService(t *testing.T) {
	c := &Client{spreadsheetID: "test", servicesBase: "Servicios", expensesBase: "Gastos"}
	ctx := context.Background()
	s := core.Service{ID: "s1", Date: core.NewDate(2024, 1, 1)}

	if _, err := c.AppendService(ctx, "u", s); err == nil {
		t.Error("AppendService should fail without a service")
	}
	if _, err := c.UpsertService(ctx, "u", s); err == nil {
		t.Error("UpsertService should fail without a service")
	}
	if _, err := c.AppendExpense(ctx, "u", core.Expense{Date: core.NewDate(2024, 1, 1)}); err == nil {
		t.Error("AppendExpense should fail without a service")
	}
}

func TestServiceRow(t *testing.T) {
	row := serviceRow("u1", core.Service{
		ID:          "s1",
		ClientName:  "Ana",
		Description: "poda",
		Location:    "Centro",
		Amount:      core.Money{Cents: 150050},
		Date:        core.NewDate(2024, 3, 9),
		IsPaid:      true,
		Notes:       "efectivo",
	})
	want := []any{"s1", "2024-03-09", "u1", "Ana", "poda", "Centro", "1500.50", "Sí", "efectivo"}
	if len(row) != len(want) {
		t.Fatalf("len = %d, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("col %d = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestExpenseRow(t *testing.T) {
	row := expenseRow("u1", core.Expense{
		ID: "e1", Type: core.Machinery, Details: "cadena", Amount: core.Money{Cents: 999}, Date: core.NewDate(2024, 12, 31),
	})
	if row[3] != "Maquinaria" || row[5] != "9.99" || row[1] != "2024-12-31" {
		t.Fatalf("row = %v", row)
	}
}

func TestFindRow(t *testing.T) {
	values := [][]interface{}{
		{"ID"},
		{},
		{"abc"},
		{" def "},
	}
	tests := []struct {
		id   string
		want int
	}{
		{"abc", 3},
		{"def", 4},
		{"zzz", 0},
	}
	for _, tt := range tests {
		if got := findRow(values, tt.id); got != tt.want {
			t.Errorf("findRow(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		base string
		year int
		want string
	}{
		{"Servicios", 2024, "2024 Servicios"},
		{"  Gastos ", 2023, "2023 Gastos"},
		{"2022 Servicios", 2024, "2022 Servicios"},
		{"", 2024, ""},
		{"12345", 2024, "2024 12345"},
	}
	for _, tt := range tests {
		if got := yearPrefixedName(tt.base, tt.year); got != tt.want {
			t.Errorf("yearPrefixedName(%q, %d) = %q, want %q", tt.base, tt.year, got, tt.want)
		}
	}
}
