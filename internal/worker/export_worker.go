package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"servicios/internal/amqp"
	"servicios/internal/core"
	"servicios/internal/sheets"
	"servicios/internal/store"
)

// EventSource is satisfied by *amqp.Client.
type EventSource interface {
	Consume(ctx context.Context, handler func(context.Context, amqp.Event) error) error
}

type exportStore interface {
	store.ServiceReader
	GetExpense(ctx context.Context, userID, id string) (core.Expense, error)
}

// ExportWorker copies newly created or updated records into the ledger
// spreadsheet as domain events arrive.
type ExportWorker struct {
	store  exportStore
	ledger sheets.LedgerWriter
	source EventSource

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	doneCh  chan struct{}
	err     error
}

func NewExportWorker(st exportStore, ledger sheets.LedgerWriter, source EventSource) *ExportWorker {
	return &ExportWorker{store: st, ledger: ledger, source: source}
}

// HandleEvent exports one event. Rows that vanished before export are
// dropped rather than retried.
func (w *ExportWorker) HandleEvent(ctx context.Context, e amqp.Event) error {
	slog.InfoContext(ctx, "Processing export event",
		"type", e.Type,
		"entity_id", e.EntityID)

	var (
		ref string
		err error
	)
	switch e.Type {
	case amqp.ServiceCreated, amqp.ServiceUpdated:
		var s core.Service
		s, err = w.store.GetService(ctx, e.UserID, e.EntityID)
		if err != nil {
			return classify(fmt.Errorf("get service: %w", err))
		}
		if e.Type == amqp.ServiceCreated {
			ref, err = w.ledger.AppendService(ctx, e.UserID, s)
		} else {
			ref, err = w.ledger.UpsertService(ctx, e.UserID, s)
		}
	case amqp.ExpenseCreated:
		var x core.Expense
		x, err = w.store.GetExpense(ctx, e.UserID, e.EntityID)
		if err != nil {
			return classify(fmt.Errorf("get expense: %w", err))
		}
		ref, err = w.ledger.AppendExpense(ctx, e.UserID, x)
	case amqp.ClientDeleted:
		// The ledger keeps history; exported rows stay.
		slog.InfoContext(ctx, "Client deleted, ledger rows kept",
			"client_id", e.EntityID,
			"services_removed", e.Count)
		return nil
	default:
		return amqp.Permanent(fmt.Errorf("unsupported event type %q", e.Type))
	}
	if err != nil {
		return fmt.Errorf("export %s %s: %w", e.Type, e.EntityID, err)
	}

	slog.InfoContext(ctx, "Exported to ledger",
		"type", e.Type,
		"entity_id", e.EntityID,
		"sheets_ref", ref)
	return nil
}

func classify(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return amqp.Permanent(err)
	}
	return err
}

// Start begins consuming in the background. Returns an error if already
// running.
func (w *ExportWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("export worker is already running")
	}
	if w.source == nil {
		return fmt.Errorf("export worker has no event source")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.running = true
	w.cancel = cancel
	w.doneCh = make(chan struct{})
	w.err = nil

	go func() {
		defer close(w.doneCh)
		err := w.source.Consume(runCtx, w.HandleEvent)
		w.mu.Lock()
		if err != nil && !errors.Is(err, context.Canceled) {
			w.err = err
		}
		w.running = false
		w.mu.Unlock()
	}()

	slog.InfoContext(ctx, "Export worker started")
	return nil
}

// Stop cancels consumption and waits for it to wind down or for ctx.
func (w *ExportWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	cancel, done := w.cancel, w.doneCh
	w.mu.Unlock()

	cancel()
	select {
	case <-done:
		slog.InfoContext(ctx, "Export worker stopped gracefully")
		return nil
	case <-ctx.Done():
		slog.WarnContext(ctx, "Export worker stop timed out")
		return ctx.Err()
	}
}

// Done is closed when the consumer exits; Err then reports why.
func (w *ExportWorker) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doneCh
}

func (w *ExportWorker) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *ExportWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
