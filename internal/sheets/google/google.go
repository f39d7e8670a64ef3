package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"servicios/internal/core"
	ports "servicios/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

var _ ports.LedgerWriter = (*Client)(nil)

type Config struct {
	SpreadsheetID string
	// Base sheet names; the record's year is prefixed ("2024 Servicios").
	ServicesSheet   string
	ExpensesSheet   string
	CredentialsJSON string
	CredentialsFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	servicesBase  string
	expensesBase  string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx, cfg.CredentialsJSON, cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		servicesBase:  defaultName(cfg.ServicesSheet, "Servicios"),
		expensesBase:  defaultName(cfg.ExpensesSheet, "Gastos"),
	}, nil
}

func defaultName(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

// newSheetsService builds a Sheets service from service account
// credentials, inline JSON first, then a file path, then
// GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context, credentialsJSON, credentialsFile string) (*gsheet.Service, error) {
	credentialsJSON = strings.TrimSpace(credentialsJSON)
	credentialsFile = strings.TrimSpace(credentialsFile)
	if credentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var creds []byte
	switch {
	case credentialsJSON != "":
		slog.InfoContext(ctx, "Using inline JSON credentials")
		creds = []byte(credentialsJSON)
	case credentialsFile != "":
		slog.InfoContext(ctx, "Reading credentials from file", "path", credentialsFile)
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		creds = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) AppendService(ctx context.Context, userID string, s core.Service) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	sheet := yearPrefixedName(c.servicesBase, s.Date.Year())
	return c.append(ctx, sheet, serviceRow(userID, s))
}

func (c *Client) UpsertService(ctx context.Context, userID string, s core.Service) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	sheet := yearPrefixedName(c.servicesBase, s.Date.Year())

	rng := fmt.Sprintf("%s!A:A", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rng, err)
	}
	row := findRow(resp.Values, s.ID)
	if row == 0 {
		slog.InfoContext(ctx, "Service row not found, appending", "id", s.ID, "sheet", sheet)
		return c.append(ctx, sheet, serviceRow(userID, s))
	}

	target := fmt.Sprintf("%s!A%d:I%d", sheet, row, row)
	vr := &gsheet.ValueRange{Values: [][]any{serviceRow(userID, s)}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, target, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update %s: %w", target, err)
	}
	return target, nil
}

func (c *Client) AppendExpense(ctx context.Context, userID string, e core.Expense) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	sheet := yearPrefixedName(c.expensesBase, e.Date.Year())
	return c.append(ctx, sheet, expenseRow(userID, e))
}

func (c *Client) append(ctx context.Context, sheet string, row []any) (string, error) {
	rng := fmt.Sprintf("%s!A:A", sheet)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", sheet, err)
	}
	if resp.Updates != nil {
		return resp.Updates.UpdatedRange, nil
	}
	return sheet, nil
}

// serviceRow lays out columns A..I: id, date, user, client, description,
// location, amount, paid, notes.
func serviceRow(userID string, s core.Service) []any {
	paid := "No"
	if s.IsPaid {
		paid = "Sí"
	}
	return []any{
		s.ID,
		s.Date.Key(),
		userID,
		s.ClientName,
		s.Description,
		s.Location,
		s.Amount.Decimal(),
		paid,
		s.Notes,
	}
}

// expenseRow lays out columns A..F: id, date, user, type, details, amount.
func expenseRow(userID string, e core.Expense) []any {
	return []any{
		e.ID,
		e.Date.Key(),
		userID,
		e.Type.Label(),
		e.Details,
		e.Amount.Decimal(),
	}
}

// findRow returns the 1-based row whose first cell equals id, or 0.
func findRow(values [][]interface{}, id string) int {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == id {
			return i + 1
		}
	}
	return 0
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
