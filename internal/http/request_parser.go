package http

// Form and query parsing shared by the handlers. Parsers never touch the
// store; they only turn request values into domain values or validation
// errors.

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"servicios/internal/core"
	"servicios/internal/services"
)

// ParseMonthParams reads year and month from query. Both values must be
// present with a month in 1-12; anything else keeps the current month. The
// 1900-2100 year bounds apply only to a jump (the month picker form sends
// jump=1), so prev/next links can keep stepping past them.
func ParseMonthParams(query url.Values, now time.Time) core.Month {
	current := core.CurrentMonth(now)
	ys := strings.TrimSpace(query.Get("year"))
	ms := strings.TrimSpace(query.Get("month"))
	if ys == "" || ms == "" {
		return current
	}
	y, err1 := strconv.Atoi(ys)
	m, err2 := strconv.Atoi(ms)
	if err1 != nil || err2 != nil {
		return current
	}
	build := core.MonthAt
	if query.Has("jump") {
		build = core.NewMonth
	}
	month, err := build(y, m)
	if err != nil {
		return current
	}
	return month
}

// ParseCursor reads the calendar cursor; absent or malformed means "none".
func ParseCursor(query url.Values) int {
	c, err := strconv.Atoi(strings.TrimSpace(query.Get("cursor")))
	if err != nil {
		return -1
	}
	return c
}

// parseFormDate accepts YYYY-MM-DD and defaults to today when blank.
func parseFormDate(v string, now time.Time) (core.Date, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return core.DateOf(now), nil
	}
	return core.ParseDate(v)
}

// parseBool reads checkbox style values. The last value wins so a hidden
// "false" input can precede the checkbox.
func parseBool(values []string) (bool, bool) {
	if len(values) == 0 {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(values[len(values)-1])) {
	case "on", "true", "1", "si", "sí":
		return true, true
	default:
		return false, true
	}
}

// ParseServiceForm builds a registration request from the service form.
// client_mode "new" registers client_name/client_phone on the fly;
// otherwise client_id selects an existing client.
func ParseServiceForm(form url.Values, now time.Time) (services.ServiceRequest, error) {
	var req services.ServiceRequest

	amount, err := core.ParseAmount(form.Get("amount"))
	if err != nil {
		return req, err
	}
	date, err := parseFormDate(form.Get("date"), now)
	if err != nil {
		return req, err
	}
	paid, _ := parseBool(form["is_paid"])

	req.Service = core.Service{
		Description: sanitizeInput(form.Get("description")),
		Amount:      amount,
		Date:        date,
		Location:    sanitizeInput(form.Get("location")),
		IsPaid:      paid,
		Notes:       sanitizeInput(form.Get("notes")),
	}

	if form.Get("client_mode") == "new" {
		c := core.Client{
			Name:  sanitizeInput(form.Get("client_name")),
			Phone: sanitizeInput(form.Get("client_phone")),
		}
		if err := c.Validate(); err != nil {
			return req, err
		}
		req.NewClient = &c
		return req, nil
	}

	req.ClientID = strings.TrimSpace(form.Get("client_id"))
	if req.ClientID == "" {
		return req, core.ErrMissingClient
	}
	return req, nil
}

// ParseServiceUpdate reads the detail edit form. Fields that are absent stay
// unchanged.
func ParseServiceUpdate(form url.Values) (core.ServiceUpdate, error) {
	var u core.ServiceUpdate
	if _, ok := form["notes"]; ok {
		notes := sanitizeInput(form.Get("notes"))
		u.Notes = &notes
	}
	if paid, ok := parseBool(form["is_paid"]); ok {
		u.IsPaid = &paid
	}
	if u.IsEmpty() {
		return u, core.ErrEmptyUpdate
	}
	return u, nil
}

// ParseExpenseForm builds an expense from the finances form.
func ParseExpenseForm(form url.Values, now time.Time) (core.Expense, error) {
	t := core.ExpenseType(strings.TrimSpace(form.Get("type")))
	if !t.IsValid() {
		return core.Expense{}, core.ErrInvalidExpenseType
	}
	amount, err := core.ParseAmount(form.Get("amount"))
	if err != nil {
		return core.Expense{}, err
	}
	date, err := parseFormDate(form.Get("date"), now)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Type:    t,
		Amount:  amount,
		Details: sanitizeInput(form.Get("details")),
		Date:    date,
	}, nil
}

// sanitizeInput trims and drops control characters except tab and newlines.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// parseForm parses the body and answers 400 itself on failure.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		BadRequestError(msgBadRequest).Write(w)
		return false
	}
	return true
}
