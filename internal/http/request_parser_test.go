package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"servicios/internal/core"
)

func TestParseMonthParams(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		query url.Values
		want  string
	}{
		{"both values provided", url.Values{"year": {"2023"}, "month": {"12"}}, "2023-12"},
		{"padded values", url.Values{"year": {" 2024 "}, "month": {"03"}}, "2024-03"},
		{"no values", url.Values{}, "2024-06"},
		{"only year", url.Values{"year": {"2023"}}, "2024-06"},
		{"only month", url.Values{"month": {"5"}}, "2024-06"},
		{"month out of range", url.Values{"year": {"2024"}, "month": {"13"}}, "2024-06"},
		{"link before 1900", url.Values{"year": {"1899"}, "month": {"12"}}, "1899-12"},
		{"link after 2100", url.Values{"year": {"2101"}, "month": {"1"}}, "2101-01"},
		{"link year zero", url.Values{"year": {"0"}, "month": {"1"}}, "2024-06"},
		{"jump too early", url.Values{"year": {"1899"}, "month": {"1"}, "jump": {"1"}}, "2024-06"},
		{"jump too late", url.Values{"year": {"2101"}, "month": {"1"}, "jump": {"1"}}, "2024-06"},
		{"jump bounds inclusive", url.Values{"year": {"2100"}, "month": {"12"}, "jump": {"1"}}, "2100-12"},
		{"jump bad month", url.Values{"year": {"2024"}, "month": {"13"}, "jump": {"1"}}, "2024-06"},
		{"not a number", url.Values{"year": {"abc"}, "month": {"1"}}, "2024-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMonthParams(tt.query, now).String(); got != tt.want {
				t.Errorf("ParseMonthParams = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseCursor(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", -1},
		{"x", -1},
		{"0", 0},
		{" 3 ", 3},
	}
	for _, tt := range tests {
		if got := ParseCursor(url.Values{"cursor": {tt.raw}}); got != tt.want {
			t.Errorf("ParseCursor(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestParseServiceForm(t *testing.T) {
	now := time.Date(2024, time.June, 15, 23, 30, 0, 0, time.UTC)

	t.Run("existing client", func(t *testing.T) {
		form := url.Values{
			"client_id":   {" c1 "},
			"description": {"  Poda\x00 de cerco "},
			"amount":      {"1250,5"},
			"date":        {"2024-06-01"},
			"location":    {"Centro"},
			"is_paid":     {"on"},
		}
		req, err := ParseServiceForm(form, now)
		if err != nil {
			t.Fatalf("ParseServiceForm: %v", err)
		}
		if req.ClientID != "c1" || req.NewClient != nil {
			t.Errorf("client = %q / %+v", req.ClientID, req.NewClient)
		}
		s := req.Service
		if s.Description != "Poda de cerco" || s.Location != "Centro" || !s.IsPaid {
			t.Errorf("service = %+v", s)
		}
		if s.Amount.Cents != 125050 || s.Date.Key() != "2024-06-01" {
			t.Errorf("amount=%d date=%s", s.Amount.Cents, s.Date.Key())
		}
	})

	t.Run("new client and default date", func(t *testing.T) {
		form := url.Values{
			"client_mode":  {"new"},
			"client_name":  {"Ana"},
			"client_phone": {"555"},
			"client_id":    {"ignored"},
			"description":  {"Limpieza"},
			"amount":       {"10"},
		}
		req, err := ParseServiceForm(form, now)
		if err != nil {
			t.Fatalf("ParseServiceForm: %v", err)
		}
		if req.NewClient == nil || req.NewClient.Name != "Ana" || req.NewClient.Phone != "555" {
			t.Fatalf("NewClient = %+v", req.NewClient)
		}
		if req.ClientID != "" {
			t.Errorf("ClientID = %q, want empty for new clients", req.ClientID)
		}
		if req.Service.Date.Key() != "2024-06-15" || req.Service.IsPaid {
			t.Errorf("service = %+v", req.Service)
		}
	})

	errCases := []struct {
		name string
		form url.Values
		want error
	}{
		{"missing amount", url.Values{"client_id": {"c1"}}, core.ErrInvalidAmount},
		{"negative amount", url.Values{"client_id": {"c1"}, "amount": {"-5"}}, core.ErrInvalidAmount},
		{"bad date", url.Values{"client_id": {"c1"}, "amount": {"5"}, "date": {"15/06/2024"}}, core.ErrInvalidDate},
		{"missing client", url.Values{"amount": {"5"}}, core.ErrMissingClient},
		{"new client without name", url.Values{"client_mode": {"new"}, "amount": {"5"}}, core.ErrEmptyName},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseServiceForm(tc.form, now)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
			if !core.IsValidation(err) {
				t.Errorf("err %v should be a validation error", err)
			}
		})
	}
}

func TestParseServiceUpdate(t *testing.T) {
	tests := []struct {
		name      string
		form      url.Values
		wantNotes *string
		wantPaid  *bool
		wantErr   error
	}{
		{"notes only", url.Values{"notes": {" hola "}}, ptr("hola"), nil, nil},
		{"cleared notes", url.Values{"notes": {""}}, ptr(""), nil, nil},
		{"unchecked box", url.Values{"is_paid": {"false"}}, nil, ptr(false), nil},
		{"hidden then checked", url.Values{"is_paid": {"false", "true"}}, nil, ptr(true), nil},
		{"spanish yes", url.Values{"is_paid": {"sí"}}, nil, ptr(true), nil},
		{"nothing", url.Values{}, nil, nil, core.ErrEmptyUpdate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ParseServiceUpdate(tt.form)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !equalPtr(u.Notes, tt.wantNotes) {
				t.Errorf("Notes = %v, want %v", deref(u.Notes), deref(tt.wantNotes))
			}
			if !equalPtr(u.IsPaid, tt.wantPaid) {
				t.Errorf("IsPaid = %v, want %v", deref(u.IsPaid), deref(tt.wantPaid))
			}
		})
	}
}

func TestParseExpenseForm(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	e, err := ParseExpenseForm(url.Values{
		"type":    {"maquinaria"},
		"amount":  {"99.99"},
		"details": {" motosierra "},
	}, now)
	if err != nil {
		t.Fatalf("ParseExpenseForm: %v", err)
	}
	if e.Type != core.Machinery || e.Amount.Cents != 9999 || e.Details != "motosierra" || e.Date.Key() != "2024-06-15" {
		t.Errorf("expense = %+v", e)
	}

	if _, err := ParseExpenseForm(url.Values{"type": {"otros"}, "amount": {"1"}}, now); !errors.Is(err, core.ErrInvalidExpenseType) {
		t.Errorf("unknown type err = %v", err)
	}
	if _, err := ParseExpenseForm(url.Values{"type": {"insumos"}, "amount": {"0"}}, now); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("zero amount err = %v", err)
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hola  ", "hola"},
		{"a\x00b\x07c", "abc"},
		{"línea 1\nlínea 2", "línea 1\nlínea 2"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader("a=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	if parseForm(w, req) {
		t.Fatal("parseForm accepted a malformed body")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
}

func ptr[T any](v T) *T { return &v }

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
