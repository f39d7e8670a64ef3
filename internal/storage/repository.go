package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"servicios/internal/core"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

// DSN builds the modernc connection string. Foreign keys are enforced on
// every pooled connection.
func DSN(dbPath string) string {
	return "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := DSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// DB exposes the pool for maintenance commands and tests.
func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(r.queries.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.ErrorContext(ctx, "Rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}

// FetchClients implements store.ClientStore
func (r *SQLiteRepository) FetchClients(ctx context.Context, userID string) ([]core.Client, error) {
	rows, err := r.queries.ListClients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	out := make([]core.Client, len(rows))
	for i, c := range rows {
		out[i] = core.Client{ID: c.ID, Name: c.Name, Phone: c.Phone}
	}
	return out, nil
}

// CreateClient implements store.ClientStore
func (r *SQLiteRepository) CreateClient(ctx context.Context, userID string, c core.Client) (core.Client, error) {
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}
	c.ID = uuid.NewString()
	err := r.queries.CreateClient(ctx, CreateClientParams{ID: c.ID, UserID: userID, Name: c.Name, Phone: c.Phone})
	if err != nil {
		return core.Client{}, fmt.Errorf("create client: %w", err)
	}
	slog.InfoContext(ctx, "Client saved to SQLite", "id", c.ID, "user_id", userID)
	return c, nil
}

// DeleteClientCascade implements store.ClientStore. Services go first, then
// the client, in one transaction.
func (r *SQLiteRepository) DeleteClientCascade(ctx context.Context, userID, clientID string) (int64, error) {
	var removed int64
	err := r.withTx(ctx, func(q *Queries) error {
		n, err := q.DeleteServicesByClient(ctx, userID, clientID)
		if err != nil {
			return fmt.Errorf("%w: delete services: %w", core.ErrCascadeAborted, err)
		}
		removed = n

		deleted, err := q.DeleteClient(ctx, userID, clientID)
		if err != nil {
			return fmt.Errorf("%w: delete client: %w", core.ErrCascadeAborted, err)
		}
		if deleted == 0 {
			return core.ErrNotFound
		}
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, core.ErrCascadeAborted), errors.Is(err, core.ErrNotFound):
		return 0, err
	default:
		return 0, fmt.Errorf("%w: %w", core.ErrCascadeAborted, err)
	}
	slog.InfoContext(ctx, "Client deleted with services",
		"client_id", clientID,
		"user_id", userID,
		"services_removed", removed)
	return removed, nil
}

// FetchServices implements store.ServiceReader
func (r *SQLiteRepository) FetchServices(ctx context.Context, userID string, dr *core.DateRange) ([]core.Service, error) {
	var (
		rows []ServiceRow
		err  error
	)
	if dr == nil {
		rows, err = r.queries.ListServices(ctx, userID)
	} else {
		rows, err = r.queries.ListServicesBetween(ctx, ListServicesBetweenParams{
			UserID: userID, From: dr.From.Key(), To: dr.To.Key(),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	out := make([]core.Service, 0, len(rows))
	for _, row := range rows {
		s, err := toService(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// GetService implements store.ServiceReader
func (r *SQLiteRepository) GetService(ctx context.Context, userID, id string) (core.Service, error) {
	row, err := r.queries.GetService(ctx, userID, id)
	if err != nil {
		return core.Service{}, fmt.Errorf("get service %s: %w", id, notFound(err))
	}
	return toService(row)
}

// CreateService implements store.ServiceWriter
func (r *SQLiteRepository) CreateService(ctx context.Context, userID string, s core.Service) (core.Service, error) {
	if err := s.Validate(); err != nil {
		return core.Service{}, err
	}
	// The client must belong to the same user.
	if _, err := r.queries.GetClient(ctx, userID, s.ClientID); err != nil {
		return core.Service{}, fmt.Errorf("get client %s: %w", s.ClientID, notFound(err))
	}
	s.ID = uuid.NewString()
	if err := r.queries.CreateService(ctx, serviceParams(userID, s)); err != nil {
		return core.Service{}, fmt.Errorf("create service: %w", err)
	}
	slog.InfoContext(ctx, "Service saved to SQLite",
		"id", s.ID,
		"client_id", s.ClientID,
		"amount_cents", s.Amount.Cents,
		"date", s.Date.Key())
	return r.GetService(ctx, userID, s.ID)
}

// CreateServiceWithClient implements store.ServiceWriter
func (r *SQLiteRepository) CreateServiceWithClient(ctx context.Context, userID string, c core.Client, s core.Service) (core.Service, error) {
	if err := c.Validate(); err != nil {
		return core.Service{}, err
	}
	c.ID = uuid.NewString()
	s.ClientID = c.ID
	if err := s.Validate(); err != nil {
		return core.Service{}, err
	}
	s.ID = uuid.NewString()

	err := r.withTx(ctx, func(q *Queries) error {
		if err := q.CreateClient(ctx, CreateClientParams{ID: c.ID, UserID: userID, Name: c.Name, Phone: c.Phone}); err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		if err := q.CreateService(ctx, serviceParams(userID, s)); err != nil {
			return fmt.Errorf("create service: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Service{}, err
	}
	slog.InfoContext(ctx, "Service saved with new client",
		"id", s.ID,
		"client_id", c.ID,
		"amount_cents", s.Amount.Cents)
	return r.GetService(ctx, userID, s.ID)
}

// UpdateService implements store.ServiceWriter
func (r *SQLiteRepository) UpdateService(ctx context.Context, userID, id string, u core.ServiceUpdate) (core.Service, error) {
	if u.IsEmpty() {
		return core.Service{}, core.ErrEmptyUpdate
	}
	arg := UpdateServiceParams{UserID: userID, ID: id}
	if u.Notes != nil {
		arg.SetNotes = true
		arg.Notes = sql.NullString{String: *u.Notes, Valid: *u.Notes != ""}
	}
	if u.IsPaid != nil {
		arg.SetIsPaid = true
		arg.IsPaid = boolToInt(*u.IsPaid)
	}
	n, err := r.queries.UpdateService(ctx, arg)
	if err != nil {
		return core.Service{}, fmt.Errorf("update service %s: %w", id, err)
	}
	if n == 0 {
		return core.Service{}, fmt.Errorf("update service %s: %w", id, core.ErrNotFound)
	}
	return r.GetService(ctx, userID, id)
}

// DeleteServices implements store.ServiceWriter
func (r *SQLiteRepository) DeleteServices(ctx context.Context, userID, clientID string) (int64, error) {
	n, err := r.queries.DeleteServicesByClient(ctx, userID, clientID)
	if err != nil {
		return 0, fmt.Errorf("delete services of client %s: %w", clientID, err)
	}
	return n, nil
}

// FetchExpenses implements store.ExpenseStore
func (r *SQLiteRepository) FetchExpenses(ctx context.Context, userID string, dr *core.DateRange) ([]core.Expense, error) {
	var (
		rows []Expense
		err  error
	)
	if dr == nil {
		rows, err = r.queries.ListExpenses(ctx, userID)
	} else {
		rows, err = r.queries.ListExpensesBetween(ctx, ListExpensesBetweenParams{
			UserID: userID, From: dr.From.Key(), To: dr.To.Key(),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	out := make([]core.Expense, 0, len(rows))
	for _, row := range rows {
		e, err := toExpense(row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// CreateExpense implements store.ExpenseStore
func (r *SQLiteRepository) CreateExpense(ctx context.Context, userID string, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()
	err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		ID:          e.ID,
		UserID:      userID,
		ExpenseType: string(e.Type),
		AmountCents: e.Amount.Cents,
		Details:     e.Details,
		ExpenseDate: e.Date.Key(),
	})
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"type", e.Type,
		"amount_cents", e.Amount.Cents,
		"date", e.Date.Key())
	return e, nil
}

// GetExpense implements store.ExpenseStore
func (r *SQLiteRepository) GetExpense(ctx context.Context, userID, id string) (core.Expense, error) {
	row, err := r.queries.GetExpense(ctx, userID, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %s: %w", id, notFound(err))
	}
	return toExpense(row)
}

func serviceParams(userID string, s core.Service) CreateServiceParams {
	return CreateServiceParams{
		ID:          s.ID,
		UserID:      userID,
		ClientID:    s.ClientID,
		Description: s.Description,
		AmountCents: s.Amount.Cents,
		ServiceDate: s.Date.Key(),
		Location:    s.Location,
		IsPaid:      boolToInt(s.IsPaid),
		Notes:       sql.NullString{String: s.Notes, Valid: s.Notes != ""},
	}
}

// toService fails on a malformed stored date rather than mis-bucketing it.
// The parse error is flattened so corrupt rows never read as user input
// errors.
func toService(row ServiceRow) (core.Service, error) {
	d, err := core.ParseDate(row.ServiceDate)
	if err != nil {
		return core.Service{}, fmt.Errorf("service %s: stored date %q unreadable: %v", row.ID, row.ServiceDate, err)
	}
	return core.Service{
		ID:          row.ID,
		ClientID:    row.ClientID,
		ClientName:  row.ClientName,
		ClientPhone: row.ClientPhone,
		Description: row.Description,
		Amount:      core.Money{Cents: row.AmountCents},
		Date:        d,
		Location:    row.Location,
		IsPaid:      row.IsPaid != 0,
		Notes:       row.Notes.String,
	}, nil
}

func toExpense(row Expense) (core.Expense, error) {
	d, err := core.ParseDate(row.ExpenseDate)
	if err != nil {
		return core.Expense{}, fmt.Errorf("expense %s: stored date %q unreadable: %v", row.ID, row.ExpenseDate, err)
	}
	return core.Expense{
		ID:      row.ID,
		Type:    core.ExpenseType(row.ExpenseType),
		Amount:  core.Money{Cents: row.AmountCents},
		Details: row.Details,
		Date:    d,
	}, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
