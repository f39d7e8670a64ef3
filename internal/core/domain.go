package core

import (
	"strings"
	"time"
)

const (
	PerDiem     ExpenseType = "viaticos"
	Consumables ExpenseType = "insumos"
	Machinery   ExpenseType = "maquinaria"
	Repairs     ExpenseType = "reparaciones"
)

type (
	ExpenseType string

	// Date is a calendar day. The wrapped time is always midnight UTC and is
	// used as a civil date, never as an instant.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Client struct {
		ID    string
		Name  string
		Phone string
	}

	// Service is a billable job. ClientName and ClientPhone are a read-only
	// projection of the owning client taken at fetch time; they may lag a
	// rename until the next fetch.
	Service struct {
		ID          string
		ClientID    string
		ClientName  string
		ClientPhone string
		Description string
		Amount      Money
		Date        Date
		Location    string
		IsPaid      bool
		Notes       string
	}

	// ServiceUpdate carries the fields a detail edit may change. Nil means
	// unchanged.
	ServiceUpdate struct {
		Notes  *string
		IsPaid *bool
	}

	Expense struct {
		ID      string
		Type    ExpenseType
		Amount  Money
		Details string
		Date    Date
	}

	// DateRange is inclusive on both ends.
	DateRange struct {
		From Date
		To   Date
	}
)

// ExpenseTypes lists the fixed expense enumeration in display order.
func ExpenseTypes() []ExpenseType {
	return []ExpenseType{PerDiem, Consumables, Machinery, Repairs}
}

func (t ExpenseType) IsValid() bool {
	switch t {
	case PerDiem, Consumables, Machinery, Repairs:
		return true
	}
	return false
}

// Label returns the capitalised type name used in ledgers.
func (t ExpenseType) Label() string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 120 {
		return ErrNameTooLong
	}
	return nil
}

func (s Service) Validate() error {
	if strings.TrimSpace(s.ClientID) == "" {
		return ErrMissingClient
	}
	if err := s.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Description) == "" {
		return ErrEmptyDescription
	}
	if len(s.Description) > 500 {
		return ErrDescriptionTooLong
	}
	return s.Amount.Validate()
}

func (u ServiceUpdate) IsEmpty() bool {
	return u.Notes == nil && u.IsPaid == nil
}

func (e Expense) Validate() error {
	if !e.Type.IsValid() {
		return ErrInvalidExpenseType
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(e.Details) > 500 {
		return ErrDescriptionTooLong
	}
	return nil
}

func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.From.Time) && !d.After(r.To.Time)
}
