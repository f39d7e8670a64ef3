package http

import (
	"errors"
	"log/slog"
	"net/http"

	"servicios/internal/core"
)

// Messages shown to the user. Anything unexpected collapses into one of the
// generic ones; details stay in the log.
const (
	msgLoadFailed   = "Error al cargar los datos"
	msgSaveFailed   = "Error al guardar los datos"
	msgDeleteFailed = "Error al eliminar el cliente"
	msgNotFound     = "No encontrado"
	msgNoUser       = "Usuario no identificado"
	msgBadRequest   = "Formato de solicitud no válido"
)

var validationMessages = []struct {
	err error
	msg string
}{
	{core.ErrInvalidAmount, "Monto inválido: ingrese un número mayor que cero"},
	{core.ErrInvalidDate, "Fecha inválida"},
	{core.ErrInvalidMonth, "Mes inválido"},
	{core.ErrEmptyName, "El nombre del cliente es obligatorio"},
	{core.ErrNameTooLong, "El nombre del cliente es demasiado largo"},
	{core.ErrEmptyDescription, "La descripción es obligatoria"},
	{core.ErrDescriptionTooLong, "La descripción es demasiado larga"},
	{core.ErrMissingClient, "Seleccione un cliente"},
	{core.ErrInvalidExpenseType, "Tipo de gasto inválido"},
	{core.ErrEmptyUpdate, "No hay cambios para guardar"},
}

// validationMessage returns the Spanish text for a validation error.
func validationMessage(err error) string {
	for _, v := range validationMessages {
		if errors.Is(err, v.err) {
			return v.msg
		}
	}
	return "Datos inválidos"
}

// errorResponse maps a service error to status and message. fallback is the
// message for unexpected store failures.
func errorResponse(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, core.ErrMissingUser):
		return http.StatusUnauthorized, msgNoUser
	case core.IsValidation(err):
		return http.StatusUnprocessableEntity, validationMessage(err)
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, core.ErrCascadeAborted):
		return http.StatusInternalServerError, msgDeleteFailed
	default:
		return http.StatusInternalServerError, fallback
	}
}

// writeError logs server-side failures and answers with an error fragment.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, msg := errorResponse(err, fallback)
	if status >= 500 {
		slog.ErrorContext(r.Context(), "Request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", status)
	} else {
		slog.WarnContext(r.Context(), "Request rejected",
			"error", err,
			"path", r.URL.Path,
			"status_code", status)
	}
	ErrorResponse(status, msg).TriggerErrorNotification(msg).Write(w)
}
