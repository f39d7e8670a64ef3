package services

import (
	"context"
	"fmt"

	"servicios/internal/amqp"
	"servicios/internal/core"
	"servicios/internal/store"
)

// ExpenseService saves expenses and announces them for the ledger export.
type ExpenseService struct {
	store     store.ExpenseStore
	publisher EventPublisher
}

func NewExpenseService(st store.ExpenseStore, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{store: st, publisher: publisher}
}

// CreateExpense saves locally first; the event is best effort.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID string, e core.Expense) (core.Expense, error) {
	if err := requireUser(userID); err != nil {
		return core.Expense{}, err
	}
	created, err := s.store.CreateExpense(ctx, userID, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	publish(ctx, s.publisher, amqp.NewEvent(amqp.ExpenseCreated, userID, created.ID))
	return created, nil
}
