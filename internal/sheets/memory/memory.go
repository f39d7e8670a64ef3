// Package memory keeps exported ledger rows in process. The worker uses it
// when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"servicios/internal/core"
)

type Ledger struct {
	mu       sync.Mutex
	services []core.Service
	expenses []core.Expense
}

func New() *Ledger {
	return &Ledger{}
}

func (l *Ledger) AppendService(_ context.Context, _ string, s core.Service) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, s)
	return fmt.Sprintf("mem:servicios:%d", len(l.services)), nil
}

func (l *Ledger) UpsertService(ctx context.Context, userID string, s core.Service) (string, error) {
	l.mu.Lock()
	for i := range l.services {
		if l.services[i].ID == s.ID {
			l.services[i] = s
			l.mu.Unlock()
			return fmt.Sprintf("mem:servicios:%d", i+1), nil
		}
	}
	l.mu.Unlock()
	return l.AppendService(ctx, userID, s)
}

func (l *Ledger) AppendExpense(_ context.Context, _ string, e core.Expense) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expenses = append(l.expenses, e)
	return fmt.Sprintf("mem:gastos:%d", len(l.expenses)), nil
}

// Services returns a copy of the exported service rows.
func (l *Ledger) Services() []core.Service {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Service(nil), l.services...)
}

func (l *Ledger) Expenses() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Expense(nil), l.expenses...)
}
