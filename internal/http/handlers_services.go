package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"servicios/internal/core"
)

// handleServicesPage renders the registration form and the current month's
// services.
func (s *Server) handleServicesPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userFrom(ctx)
	now := s.now()

	clients, err := s.clients.ListClients(ctx, userID)
	if err != nil {
		writeError(w, r, err, msgLoadFailed)
		return
	}
	month := core.CurrentMonth(now)
	view, err := s.reports.Calendar(ctx, userID, month, -1, "")
	if err != nil {
		writeError(w, r, err, msgLoadFailed)
		return
	}

	s.pages.render(w, r, http.StatusOK, "services", servicesPage{
		Nav:      "services",
		Today:    core.DateOf(now).Key(),
		Clients:  clients,
		Month:    refOf(month),
		Services: view.Services,
		Summary:  view.Summary,
	})
}

func (s *Server) handleCreateService(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	ctx := r.Context()
	userID := userFrom(ctx)

	req, err := ParseServiceForm(r.PostForm, s.now())
	if err != nil {
		writeError(w, r, err, msgSaveFailed)
		return
	}

	created, err := s.clients.RegisterService(ctx, userID, req)
	if err != nil {
		writeError(w, r, err, msgSaveFailed)
		return
	}

	slog.InfoContext(ctx, "Service registered",
		"service_id", created.ID,
		"client_id", created.ClientID,
		"amount_cents", created.Amount.Cents,
		"new_client", req.NewClient != nil,
		"user_id", userID)

	SuccessResponse(fmt.Sprintf("Servicio registrado: %s para %s (%s)",
		created.Description, created.ClientName, created.Amount.Display())).
		TriggerServiceCreated(core.MonthOf(created.Date)).
		TriggerFormReset().
		TriggerSuccessNotification("Servicio registrado").
		Write(w)
}

func (s *Server) handleServiceDetail(w http.ResponseWriter, r *http.Request) {
	svc, err := s.clients.GetService(r.Context(), userFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, msgLoadFailed)
		return
	}
	s.pages.render(w, r, http.StatusOK, "service_detail", serviceDetailPage{
		Nav:     "services",
		Service: svc,
		Month:   refOf(core.MonthOf(svc.Date)),
	})
}

// handleUpdateService saves notes and/or the paid flag and re-renders the
// detail fragment.
func (s *Server) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	u, err := ParseServiceUpdate(r.PostForm)
	if err != nil {
		writeError(w, r, err, msgSaveFailed)
		return
	}
	updated, err := s.clients.UpdateService(ctx, userFrom(ctx), id, u)
	if err != nil {
		writeError(w, r, err, msgSaveFailed)
		return
	}

	NewHTMXResponse().
		TriggerServiceUpdated(id).
		TriggerSuccessNotification("Servicio actualizado").
		ApplyHeaders(w)
	s.pages.render(w, r, http.StatusOK, "service_detail", serviceDetailPage{
		Nav:     "services",
		Service: updated,
		Month:   refOf(core.MonthOf(updated.Date)),
	})
}
