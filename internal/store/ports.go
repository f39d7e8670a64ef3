// Package store declares the persistence ports used by the services and
// reporting layers. Every call is scoped by an explicit user id.
package store

import (
	"context"

	"servicios/internal/core"
)

type (
	ServiceReader interface {
		// FetchServices returns the user's services ordered by date, then id.
		// A nil range returns everything.
		FetchServices(ctx context.Context, userID string, r *core.DateRange) ([]core.Service, error)
		// GetService returns core.ErrNotFound when the id is unknown for userID.
		GetService(ctx context.Context, userID, id string) (core.Service, error)
	}

	ServiceWriter interface {
		CreateService(ctx context.Context, userID string, s core.Service) (core.Service, error)
		// CreateServiceWithClient inserts a new client and its first service
		// in one transaction.
		CreateServiceWithClient(ctx context.Context, userID string, c core.Client, s core.Service) (core.Service, error)
		UpdateService(ctx context.Context, userID, id string, u core.ServiceUpdate) (core.Service, error)
		// DeleteServices removes every service of clientID and reports how
		// many rows went.
		DeleteServices(ctx context.Context, userID, clientID string) (int64, error)
	}

	ClientStore interface {
		FetchClients(ctx context.Context, userID string) ([]core.Client, error)
		CreateClient(ctx context.Context, userID string, c core.Client) (core.Client, error)
		// DeleteClientCascade deletes the client's services and then the
		// client atomically. On failure nothing is deleted and the error
		// wraps core.ErrCascadeAborted.
		DeleteClientCascade(ctx context.Context, userID, clientID string) (removed int64, err error)
	}

	ExpenseStore interface {
		FetchExpenses(ctx context.Context, userID string, r *core.DateRange) ([]core.Expense, error)
		CreateExpense(ctx context.Context, userID string, e core.Expense) (core.Expense, error)
		GetExpense(ctx context.Context, userID, id string) (core.Expense, error)
	}

	// Store is the full data surface a backend provides.
	Store interface {
		ServiceReader
		ServiceWriter
		ClientStore
		ExpenseStore
		Ping(ctx context.Context) error
		Close() error
	}
)
