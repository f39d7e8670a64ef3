package storage

import (
	"database/sql"
)

type Client struct {
	ID     string
	UserID string
	Name   string
	Phone  string
}

// ServiceRow is a service joined with its client's name and phone.
type ServiceRow struct {
	ID          string
	UserID      string
	ClientID    string
	ClientName  string
	ClientPhone string
	Description string
	AmountCents int64
	ServiceDate string
	Location    string
	IsPaid      int64
	Notes       sql.NullString
}

type Expense struct {
	ID          string
	UserID      string
	ExpenseType string
	AmountCents int64
	Details     string
	ExpenseDate string
}
