package report

import (
	"testing"
	"time"

	"servicios/internal/core"
)

func TestNavigatorEmpty(t *testing.T) {
	start := core.Month{Year: 2024, Month: time.May}
	n := NewNavigator(nil, start)
	if _, ok := n.Cursor(); ok {
		t.Fatalf("cursor must be undefined without dates")
	}
	if n.GoToFirstService() || n.GoToNextService() {
		t.Fatalf("navigation must be a no-op without dates")
	}
	if n.Month() != start {
		t.Fatalf("month moved to %v", n.Month())
	}
}

func TestNavigatorNextSaturates(t *testing.T) {
	services := []core.Service{
		svc("1", "a", "2024-03-01", 1, true),
		svc("2", "a", "2023-11-20", 1, true),
		svc("3", "a", "2024-03-01", 1, true),
		svc("4", "a", "2025-01-15", 1, true),
	}
	n := NewNavigator(services, core.Month{Year: 2024, Month: time.June})
	if !n.GoToFirstService() {
		t.Fatalf("GoToFirstService failed")
	}
	if n.Month().String() != "2023-11" {
		t.Fatalf("first month = %s", n.Month())
	}

	count := len(n.Dates())
	advanced := 0
	for i := 0; i < count; i++ {
		if n.GoToNextService() {
			advanced++
		}
	}
	if advanced != count-1 {
		t.Fatalf("advanced %d times, want %d", advanced, count-1)
	}
	idx, ok := n.Cursor()
	if !ok || idx != count-1 {
		t.Fatalf("cursor = %d, want %d", idx, count-1)
	}
	if n.Month().String() != "2025-01" {
		t.Fatalf("month = %s", n.Month())
	}
	if n.HasNext() || n.GoToNextService() {
		t.Fatalf("navigation past the end must report exhaustion")
	}
	if idx2, _ := n.Cursor(); idx2 != idx {
		t.Fatalf("cursor moved past the end")
	}
}

func TestNavigatorChangeMonthKeepsCursor(t *testing.T) {
	services := []core.Service{svc("1", "a", "2024-01-10", 1, true), svc("2", "a", "2024-02-10", 1, true)}
	n := NewNavigator(services, core.Month{Year: 2024, Month: time.January})
	n.GoToNextService()

	n.ChangeMonth(-1)
	if n.Month().String() != "2024-01" {
		t.Fatalf("month = %s", n.Month())
	}
	n.ChangeMonth(13)
	if n.Month().String() != "2025-02" {
		t.Fatalf("month = %s", n.Month())
	}
	if d, _ := n.Current(); d.Key() != "2024-02-10" {
		t.Fatalf("ChangeMonth moved the cursor to %s", d.Key())
	}
}

func TestRestoreClampsCursor(t *testing.T) {
	services := []core.Service{svc("1", "a", "2024-01-10", 1, true), svc("2", "a", "2024-02-10", 1, true)}
	m := core.Month{Year: 2024, Month: time.March}
	for _, tc := range []struct{ in, want int }{{-5, 0}, {0, 0}, {1, 1}, {99, 1}} {
		n := Restore(services, m, tc.in)
		if got, _ := n.Cursor(); got != tc.want {
			t.Errorf("Restore(%d) cursor = %d, want %d", tc.in, got, tc.want)
		}
		if n.Month() != m {
			t.Errorf("Restore must keep the month")
		}
	}
}
