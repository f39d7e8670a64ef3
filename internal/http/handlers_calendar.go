package http

import (
	"net/http"

	"servicios/internal/services"
)

// handleCalendar renders the month grid. The navigator state travels in the
// query string (year, month, cursor) and nav applies one step to it:
// first, next, prev or nextmonth.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	action := services.CalendarAction(q.Get("nav"))
	if !action.IsValid() {
		action = services.NavNone
	}

	view, err := s.reports.Calendar(r.Context(), userFrom(r.Context()),
		ParseMonthParams(q, s.now()), ParseCursor(q), action)
	if err != nil {
		writeError(w, r, err, msgLoadFailed)
		return
	}
	s.pages.render(w, r, http.StatusOK, "calendar", newCalendarPage(view))
}
