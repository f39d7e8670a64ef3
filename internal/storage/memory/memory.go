// Package memory is an in-process store used for local runs and tests.
package memory

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"servicios/internal/core"

	"github.com/google/uuid"
)

type serviceRow struct {
	userID string
	seq    int
	core.Service
}

type clientRow struct {
	userID string
	core.Client
}

type expenseRow struct {
	userID string
	seq    int
	core.Expense
}

type Store struct {
	mu       sync.Mutex
	seq      int
	clients  []clientRow
	services []serviceRow
	expenses []expenseRow

	// FailServiceDeletes makes the next service deletions fail, leaving
	// state untouched. Used to exercise the cascade abort path.
	FailServiceDeletes error
}

func New() *Store {
	return &Store{}
}

// NewFromFiles seeds clients for userID from seed_clients.txt in base, one
// "name|phone" per line. Missing files give an empty store.
func NewFromFiles(base, userID string) *Store {
	s := New()
	for _, line := range readLines(filepath.Join(base, "seed_clients.txt")) {
		name, phone, _ := strings.Cut(line, "|")
		c := core.Client{Name: strings.TrimSpace(name), Phone: strings.TrimSpace(phone)}
		if c.Validate() != nil {
			continue
		}
		c.ID = uuid.NewString()
		s.clients = append(s.clients, clientRow{userID: userID, Client: c})
	}
	return s
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) FetchClients(_ context.Context, userID string) ([]core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Client, 0)
	for _, c := range s.clients {
		if c.userID == userID {
			out = append(out, c.Client)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *Store) CreateClient(_ context.Context, userID string, c core.Client) (core.Client, error) {
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	s.clients = append(s.clients, clientRow{userID: userID, Client: c})
	return c, nil
}

func (s *Store) DeleteClientCascade(_ context.Context, userID, clientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailServiceDeletes != nil {
		return 0, fmt.Errorf("%w: delete services: %w", core.ErrCascadeAborted, s.FailServiceDeletes)
	}
	if s.clientIndex(userID, clientID) < 0 {
		return 0, core.ErrNotFound
	}
	removed := s.deleteServices(userID, clientID)
	i := s.clientIndex(userID, clientID)
	s.clients = append(s.clients[:i], s.clients[i+1:]...)
	return removed, nil
}

func (s *Store) FetchServices(_ context.Context, userID string, r *core.DateRange) ([]core.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]serviceRow, 0)
	for _, row := range s.services {
		if row.userID != userID || (r != nil && !r.Contains(row.Date)) {
			continue
		}
		rows = append(rows, s.withClient(row))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if ki, kj := rows[i].Date.Key(), rows[j].Date.Key(); ki != kj {
			return ki < kj
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]core.Service, len(rows))
	for i, row := range rows {
		out[i] = row.Service
	}
	return out, nil
}

func (s *Store) GetService(_ context.Context, userID, id string) (core.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.serviceIndex(userID, id)
	if i < 0 {
		return core.Service{}, fmt.Errorf("get service %s: %w", id, core.ErrNotFound)
	}
	return s.withClient(s.services[i]).Service, nil
}

func (s *Store) CreateService(_ context.Context, userID string, svc core.Service) (core.Service, error) {
	if err := svc.Validate(); err != nil {
		return core.Service{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clientIndex(userID, svc.ClientID) < 0 {
		return core.Service{}, fmt.Errorf("get client %s: %w", svc.ClientID, core.ErrNotFound)
	}
	return s.insertService(userID, svc), nil
}

func (s *Store) CreateServiceWithClient(_ context.Context, userID string, c core.Client, svc core.Service) (core.Service, error) {
	if err := c.Validate(); err != nil {
		return core.Service{}, err
	}
	c.ID = uuid.NewString()
	svc.ClientID = c.ID
	if err := svc.Validate(); err != nil {
		return core.Service{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append(s.clients, clientRow{userID: userID, Client: c})
	return s.insertService(userID, svc), nil
}

func (s *Store) UpdateService(_ context.Context, userID, id string, u core.ServiceUpdate) (core.Service, error) {
	if u.IsEmpty() {
		return core.Service{}, core.ErrEmptyUpdate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.serviceIndex(userID, id)
	if i < 0 {
		return core.Service{}, fmt.Errorf("update service %s: %w", id, core.ErrNotFound)
	}
	if u.Notes != nil {
		s.services[i].Notes = *u.Notes
	}
	if u.IsPaid != nil {
		s.services[i].IsPaid = *u.IsPaid
	}
	return s.withClient(s.services[i]).Service, nil
}

func (s *Store) DeleteServices(_ context.Context, userID, clientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailServiceDeletes != nil {
		return 0, s.FailServiceDeletes
	}
	return s.deleteServices(userID, clientID), nil
}

func (s *Store) FetchExpenses(_ context.Context, userID string, r *core.DateRange) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]expenseRow, 0)
	for _, row := range s.expenses {
		if row.userID == userID && (r == nil || r.Contains(row.Date)) {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if ki, kj := rows[i].Date.Key(), rows[j].Date.Key(); ki != kj {
			return ki < kj
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]core.Expense, len(rows))
	for i, row := range rows {
		out[i] = row.Expense
	}
	return out, nil
}

func (s *Store) CreateExpense(_ context.Context, userID string, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	e.ID = uuid.NewString()
	s.expenses = append(s.expenses, expenseRow{userID: userID, seq: s.seq, Expense: e})
	return e, nil
}

func (s *Store) GetExpense(_ context.Context, userID, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.expenses {
		if row.userID == userID && row.ID == id {
			return row.Expense, nil
		}
	}
	return core.Expense{}, fmt.Errorf("get expense %s: %w", id, core.ErrNotFound)
}

// caller holds mu
func (s *Store) insertService(userID string, svc core.Service) core.Service {
	s.seq++
	svc.ID = uuid.NewString()
	row := serviceRow{userID: userID, seq: s.seq, Service: svc}
	s.services = append(s.services, row)
	return s.withClient(row).Service
}

// caller holds mu
func (s *Store) deleteServices(userID, clientID string) int64 {
	var removed int64
	kept := s.services[:0]
	for _, row := range s.services {
		if row.userID == userID && row.ClientID == clientID {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	s.services = kept
	return removed
}

// withClient fills the denormalized client fields from the current client.
func (s *Store) withClient(row serviceRow) serviceRow {
	if i := s.clientIndex(row.userID, row.ClientID); i >= 0 {
		row.ClientName = s.clients[i].Name
		row.ClientPhone = s.clients[i].Phone
	}
	return row
}

func (s *Store) clientIndex(userID, id string) int {
	for i, c := range s.clients {
		if c.userID == userID && c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) serviceIndex(userID, id string) int {
	for i, row := range s.services {
		if row.userID == userID && row.ID == id {
			return i
		}
	}
	return -1
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
