package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"servicios/internal/core"
)

// handleClients renders the client directory. q filters by name; the global
// totals always cover every client.
func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	term := sanitizeInput(r.URL.Query().Get("q"))
	view, err := s.reports.Clients(r.Context(), userFrom(r.Context()), term)
	if err != nil {
		writeError(w, r, err, msgLoadFailed)
		return
	}
	s.pages.render(w, r, http.StatusOK, "clients", newClientsPage(view))
}

func (s *Server) handleClientDetail(w http.ResponseWriter, r *http.Request) {
	view, err := s.reports.Clients(r.Context(), userFrom(r.Context()), "")
	if err != nil {
		writeError(w, r, err, msgLoadFailed)
		return
	}
	summary, ok := view.Rollup.Find(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, core.ErrNotFound, msgLoadFailed)
		return
	}
	s.pages.render(w, r, http.StatusOK, "client_detail", clientDetailPage{
		Nav:    "clients",
		Client: newClientRow(summary),
	})
}

// handleDeleteClient removes the client and every one of its services as one
// unit. On failure nothing is removed and the row stays in place.
func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	removed, err := s.clients.DeleteClient(ctx, userFrom(ctx), id)
	if err != nil {
		writeError(w, r, err, msgDeleteFailed)
		return
	}

	// Empty body: the row that issued the request swaps itself out.
	NewHTMXResponse().
		TriggerClientDeleted(id).
		TriggerSuccessNotification(fmt.Sprintf("Cliente eliminado junto con %d servicio(s)", removed)).
		Write(w)
}
