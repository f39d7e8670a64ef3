package sheets

import (
	"context"

	"servicios/internal/core"
)

// LedgerWriter receives bookkeeping rows exported from the store. It is an
// offline export, not a second source of truth.
type LedgerWriter interface {
	AppendService(ctx context.Context, userID string, s core.Service) (rowRef string, err error)
	// UpsertService rewrites the row of s.ID, appending it when missing.
	UpsertService(ctx context.Context, userID string, s core.Service) (rowRef string, err error)
	AppendExpense(ctx context.Context, userID string, e core.Expense) (rowRef string, err error)
}
