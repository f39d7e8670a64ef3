package services

import (
	"context"
	"fmt"

	"servicios/internal/core"
	"servicios/internal/report"
	"servicios/internal/store"

	"golang.org/x/sync/errgroup"
)

type reportStore interface {
	store.ServiceReader
	store.ClientStore
	store.ExpenseStore
}

// ReportService loads the rows a view needs concurrently and hands them to
// the pure report functions. Nothing is cached between loads.
type ReportService struct {
	store reportStore
}

func NewReportService(st reportStore) *ReportService {
	return &ReportService{store: st}
}

type FinanceView struct {
	Month    core.Month
	Summary  report.Summary
	Ledger   []report.Transaction
	ByType   []report.TypeTotal
	Services []core.Service
}

// Finances aggregates the given month's income and expenses.
func (s *ReportService) Finances(ctx context.Context, userID string, m core.Month) (FinanceView, error) {
	if err := requireUser(userID); err != nil {
		return FinanceView{}, err
	}
	r := m.Range()

	var (
		services []core.Service
		expenses []core.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = s.store.FetchServices(gctx, userID, &r)
		if err != nil {
			return fmt.Errorf("fetch services: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = s.store.FetchExpenses(gctx, userID, &r)
		if err != nil {
			return fmt.Errorf("fetch expenses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return FinanceView{}, err
	}

	return FinanceView{
		Month:    m,
		Summary:  report.Summarize(services, expenses),
		Ledger:   report.Ledger(services, expenses),
		ByType:   report.ExpensesByType(expenses),
		Services: services,
	}, nil
}

type ClientsView struct {
	Rollup  report.ClientRollup
	Visible []report.ClientSummary
	Term    string
}

// Clients builds the client directory, filtered by name when term is set.
// Global totals always cover every client.
func (s *ReportService) Clients(ctx context.Context, userID, term string) (ClientsView, error) {
	if err := requireUser(userID); err != nil {
		return ClientsView{}, err
	}

	var (
		services []core.Service
		clients  []core.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = s.store.FetchServices(gctx, userID, nil)
		if err != nil {
			return fmt.Errorf("fetch services: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		clients, err = s.store.FetchClients(gctx, userID)
		if err != nil {
			return fmt.Errorf("fetch clients: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return ClientsView{}, err
	}

	rollup := report.Rollup(services, clients)
	return ClientsView{
		Rollup:  rollup,
		Visible: report.FilterByName(rollup.Clients, term),
		Term:    term,
	}, nil
}

// CalendarAction is a navigation request from the calendar controls.
type CalendarAction string

const (
	NavNone      CalendarAction = ""
	NavFirst     CalendarAction = "first"
	NavNext      CalendarAction = "next"
	NavPrevMonth CalendarAction = "prev"
	NavNextMonth CalendarAction = "nextmonth"
)

func (a CalendarAction) IsValid() bool {
	switch a {
	case NavNone, NavFirst, NavNext, NavPrevMonth, NavNextMonth:
		return true
	}
	return false
}

type CalendarView struct {
	Month     core.Month
	Grid      report.Grid
	Summary   report.MonthSummary
	Services  []core.Service
	Cursor    int
	HasCursor bool
	Current   core.Date
	HasNext   bool
	// Exhausted is set when a "next" request found no later service day.
	Exhausted bool
}

// Calendar rebuilds the navigator from the request state, applies action and
// renders the resulting month.
func (s *ReportService) Calendar(ctx context.Context, userID string, m core.Month, cursor int, action CalendarAction) (CalendarView, error) {
	if err := requireUser(userID); err != nil {
		return CalendarView{}, err
	}
	all, err := s.store.FetchServices(ctx, userID, nil)
	if err != nil {
		return CalendarView{}, fmt.Errorf("fetch services: %w", err)
	}

	nav := report.Restore(all, m, cursor)
	var exhausted bool
	switch action {
	case NavFirst:
		nav.GoToFirstService()
	case NavNext:
		exhausted = !nav.GoToNextService()
	case NavPrevMonth:
		nav.ChangeMonth(-1)
	case NavNextMonth:
		nav.ChangeMonth(1)
	}

	shown := nav.Month()
	inMonth := report.InMonth(all, shown)
	v := CalendarView{
		Month:     shown,
		Grid:      report.MonthGrid(shown, all),
		Summary:   report.SummarizeMonth(inMonth),
		Services:  inMonth,
		HasNext:   nav.HasNext(),
		Exhausted: exhausted,
	}
	v.Cursor, v.HasCursor = nav.Cursor()
	v.Current, _ = nav.Current()
	return v, nil
}
