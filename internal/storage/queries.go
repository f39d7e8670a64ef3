package storage

import (
	"context"
	"database/sql"
)

const createClient = `-- name: CreateClient :exec
INSERT INTO clients (id, user_id, name, phone) VALUES (?, ?, ?, ?)
`

type CreateClientParams struct {
	ID     string
	UserID string
	Name   string
	Phone  string
}

func (q *Queries) CreateClient(ctx context.Context, arg CreateClientParams) error {
	_, err := q.db.ExecContext(ctx, createClient, arg.ID, arg.UserID, arg.Name, arg.Phone)
	return err
}

const getClient = `-- name: GetClient :one
SELECT id, user_id, name, phone FROM clients WHERE user_id = ? AND id = ?
`

func (q *Queries) GetClient(ctx context.Context, userID, id string) (Client, error) {
	row := q.db.QueryRowContext(ctx, getClient, userID, id)
	var i Client
	err := row.Scan(&i.ID, &i.UserID, &i.Name, &i.Phone)
	return i, err
}

const listClients = `-- name: ListClients :many
SELECT id, user_id, name, phone FROM clients WHERE user_id = ? ORDER BY name COLLATE NOCASE, id
`

func (q *Queries) ListClients(ctx context.Context, userID string) ([]Client, error) {
	rows, err := q.db.QueryContext(ctx, listClients, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Client
	for rows.Next() {
		var i Client
		if err := rows.Scan(&i.ID, &i.UserID, &i.Name, &i.Phone); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteClient = `-- name: DeleteClient :execrows
DELETE FROM clients WHERE user_id = ? AND id = ?
`

func (q *Queries) DeleteClient(ctx context.Context, userID, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteClient, userID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createService = `-- name: CreateService :exec
INSERT INTO services (id, user_id, client_id, description, amount_cents, service_date, location, is_paid, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateServiceParams struct {
	ID          string
	UserID      string
	ClientID    string
	Description string
	AmountCents int64
	ServiceDate string
	Location    string
	IsPaid      int64
	Notes       sql.NullString
}

func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) error {
	_, err := q.db.ExecContext(ctx, createService,
		arg.ID,
		arg.UserID,
		arg.ClientID,
		arg.Description,
		arg.AmountCents,
		arg.ServiceDate,
		arg.Location,
		arg.IsPaid,
		arg.Notes,
	)
	return err
}

const serviceColumns = `s.id, s.user_id, s.client_id, c.name, c.phone, s.description, s.amount_cents,
       s.service_date, s.location, s.is_paid, s.notes
FROM services s JOIN clients c ON c.id = s.client_id
`

const getService = `-- name: GetService :one
SELECT ` + serviceColumns + `WHERE s.user_id = ? AND s.id = ?
`

func (q *Queries) GetService(ctx context.Context, userID, id string) (ServiceRow, error) {
	row := q.db.QueryRowContext(ctx, getService, userID, id)
	return scanService(row)
}

const listServices = `-- name: ListServices :many
SELECT ` + serviceColumns + `WHERE s.user_id = ? ORDER BY s.service_date, s.created_at, s.id
`

func (q *Queries) ListServices(ctx context.Context, userID string) ([]ServiceRow, error) {
	return q.queryServices(ctx, listServices, userID)
}

const listServicesBetween = `-- name: ListServicesBetween :many
SELECT ` + serviceColumns + `WHERE s.user_id = ? AND s.service_date BETWEEN ? AND ?
ORDER BY s.service_date, s.created_at, s.id
`

type ListServicesBetweenParams struct {
	UserID string
	From   string
	To     string
}

func (q *Queries) ListServicesBetween(ctx context.Context, arg ListServicesBetweenParams) ([]ServiceRow, error) {
	return q.queryServices(ctx, listServicesBetween, arg.UserID, arg.From, arg.To)
}

const updateService = `-- name: UpdateService :execrows
UPDATE services
SET notes = CASE WHEN ? THEN ? ELSE notes END,
    is_paid = CASE WHEN ? THEN ? ELSE is_paid END,
    updated_at = CURRENT_TIMESTAMP
WHERE user_id = ? AND id = ?
`

type UpdateServiceParams struct {
	SetNotes  bool
	Notes     sql.NullString
	SetIsPaid bool
	IsPaid    int64
	UserID    string
	ID        string
}

func (q *Queries) UpdateService(ctx context.Context, arg UpdateServiceParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateService,
		arg.SetNotes,
		arg.Notes,
		arg.SetIsPaid,
		arg.IsPaid,
		arg.UserID,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteServicesByClient = `-- name: DeleteServicesByClient :execrows
DELETE FROM services WHERE user_id = ? AND client_id = ?
`

func (q *Queries) DeleteServicesByClient(ctx context.Context, userID, clientID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteServicesByClient, userID, clientID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createExpense = `-- name: CreateExpense :exec
INSERT INTO expenses (id, user_id, expense_type, amount_cents, details, expense_date)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateExpenseParams struct {
	ID          string
	UserID      string
	ExpenseType string
	AmountCents int64
	Details     string
	ExpenseDate string
}

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) error {
	_, err := q.db.ExecContext(ctx, createExpense,
		arg.ID,
		arg.UserID,
		arg.ExpenseType,
		arg.AmountCents,
		arg.Details,
		arg.ExpenseDate,
	)
	return err
}

const getExpense = `-- name: GetExpense :one
SELECT id, user_id, expense_type, amount_cents, details, expense_date
FROM expenses WHERE user_id = ? AND id = ?
`

func (q *Queries) GetExpense(ctx context.Context, userID, id string) (Expense, error) {
	row := q.db.QueryRowContext(ctx, getExpense, userID, id)
	var i Expense
	err := row.Scan(&i.ID, &i.UserID, &i.ExpenseType, &i.AmountCents, &i.Details, &i.ExpenseDate)
	return i, err
}

const listExpenses = `-- name: ListExpenses :many
SELECT id, user_id, expense_type, amount_cents, details, expense_date
FROM expenses WHERE user_id = ? ORDER BY expense_date, created_at, id
`

func (q *Queries) ListExpenses(ctx context.Context, userID string) ([]Expense, error) {
	return q.queryExpenses(ctx, listExpenses, userID)
}

const listExpensesBetween = `-- name: ListExpensesBetween :many
SELECT id, user_id, expense_type, amount_cents, details, expense_date
FROM expenses WHERE user_id = ? AND expense_date BETWEEN ? AND ?
ORDER BY expense_date, created_at, id
`

type ListExpensesBetweenParams struct {
	UserID string
	From   string
	To     string
}

func (q *Queries) ListExpensesBetween(ctx context.Context, arg ListExpensesBetweenParams) ([]Expense, error) {
	return q.queryExpenses(ctx, listExpensesBetween, arg.UserID, arg.From, arg.To)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (ServiceRow, error) {
	var i ServiceRow
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ClientID,
		&i.ClientName,
		&i.ClientPhone,
		&i.Description,
		&i.AmountCents,
		&i.ServiceDate,
		&i.Location,
		&i.IsPaid,
		&i.Notes,
	)
	return i, err
}

func (q *Queries) queryServices(ctx context.Context, query string, args ...interface{}) ([]ServiceRow, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ServiceRow
	for rows.Next() {
		i, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (q *Queries) queryExpenses(ctx context.Context, query string, args ...interface{}) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expense
	for rows.Next() {
		var i Expense
		if err := rows.Scan(&i.ID, &i.UserID, &i.ExpenseType, &i.AmountCents, &i.Details, &i.ExpenseDate); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
