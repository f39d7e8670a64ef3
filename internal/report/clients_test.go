package report

import (
	"testing"

	"servicios/internal/core"
)

func TestRollup(t *testing.T) {
	services := []core.Service{
		svc("1", "b", "2024-01-01", 100, true),
		svc("2", "a", "2024-01-02", 50, false),
		svc("3", "b", "2024-01-03", 25, false),
	}
	services[2].ClientName = "renamed later" // first record wins

	known := []core.Client{
		{ID: "a", Name: "Cliente a"},
		{ID: "z", Name: "Sin servicios", Phone: "555"},
	}
	r := Rollup(services, known)

	if r.TotalServices != 3 || r.TotalAmount.Cents != 175 {
		t.Fatalf("totals = %d / %d", r.TotalServices, r.TotalAmount.Cents)
	}
	if len(r.Clients) != 3 {
		t.Fatalf("clients = %d", len(r.Clients))
	}
	b := r.Clients[0]
	if b.ClientID != "b" || b.Name != "Cliente b" || b.TotalServices != 2 || b.TotalAmount.Cents != 125 {
		t.Fatalf("first client = %+v", b)
	}
	if b.Services[0].ID != "1" || b.Services[1].ID != "3" {
		t.Fatalf("service order not preserved")
	}
	if last, ok := b.LastService(); !ok || last.Key() != "2024-01-03" {
		t.Fatalf("LastService = %v", last)
	}
	z, ok := r.Find("z")
	if !ok || z.TotalServices != 0 || z.Phone != "555" {
		t.Fatalf("zero-service client = %+v", z)
	}
	if _, ok := z.LastService(); ok {
		t.Fatalf("zero-service client has no last service")
	}

	var sum int64
	for _, c := range r.Clients {
		sum += c.TotalAmount.Cents
	}
	if sum != r.TotalAmount.Cents {
		t.Fatalf("per-client sum %d != global %d", sum, r.TotalAmount.Cents)
	}
}

func TestRollupEmpty(t *testing.T) {
	r := Rollup(nil, nil)
	if len(r.Clients) != 0 || r.TotalServices != 0 || !r.TotalAmount.IsZero() {
		t.Fatalf("empty rollup = %+v", r)
	}
}

func TestFilterByName(t *testing.T) {
	clients := []ClientSummary{{Name: "María López"}, {Name: "Juan Pérez"}, {Name: "mario"}}
	cases := []struct {
		term string
		want int
	}{
		{"", 3},
		{"mar", 2},
		{"MAR", 2},
		{" pérez ", 1},
		{"xyz", 0},
	}
	for _, tc := range cases {
		if got := FilterByName(clients, tc.term); len(got) != tc.want {
			t.Errorf("FilterByName(%q) = %d, want %d", tc.term, len(got), tc.want)
		}
	}
}
