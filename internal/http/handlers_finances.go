package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"servicios/internal/core"
)

// handleFinances renders income, expenses and balance for one month.
func (s *Server) handleFinances(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	month := ParseMonthParams(r.URL.Query(), now)

	view, err := s.reports.Finances(r.Context(), userFrom(r.Context()), month)
	if err != nil {
		writeError(w, r, err, msgLoadFailed)
		return
	}
	s.pages.render(w, r, http.StatusOK, "finances", newFinancesPage(view, core.DateOf(now)))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	ctx := r.Context()
	userID := userFrom(ctx)

	e, err := ParseExpenseForm(r.PostForm, s.now())
	if err != nil {
		writeError(w, r, err, msgSaveFailed)
		return
	}
	created, err := s.expenses.CreateExpense(ctx, userID, e)
	if err != nil {
		writeError(w, r, err, msgSaveFailed)
		return
	}

	slog.InfoContext(ctx, "Expense registered",
		"expense_id", created.ID,
		"expense_type", created.Type,
		"amount_cents", created.Amount.Cents,
		"user_id", userID)

	SuccessResponse(fmt.Sprintf("Gasto registrado: %s %s", created.Type.Label(), created.Amount.Display())).
		TriggerExpenseCreated(core.MonthOf(created.Date)).
		TriggerFormReset().
		TriggerSuccessNotification("Gasto registrado").
		Write(w)
}

// handleSummaryAPI returns the month's figures as JSON for dashboards.
func (s *Server) handleSummaryAPI(w http.ResponseWriter, r *http.Request) {
	month := ParseMonthParams(r.URL.Query(), s.now())
	view, err := s.reports.Finances(r.Context(), userFrom(r.Context()), month)
	if err != nil {
		status, msg := errorResponse(err, msgLoadFailed)
		if status >= 500 {
			slog.ErrorContext(r.Context(), "Summary API failed", "error", err)
		}
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}
	writeJSON(w, http.StatusOK, newSummaryJSON(view))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
