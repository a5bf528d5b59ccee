package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"roombooking/internal/delivery/http/helpers"
	"roombooking/internal/domain"
)

// writeServiceError maps a service error to its status code and error code.
// Unrecognised errors are logged and returned as 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		// An unknown room in an event body is a client mistake, not a missing resource.
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrPastSlot):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodePastSlot, err.Error())
	case errors.Is(err, domain.ErrSlotConflict),
		errors.Is(err, domain.ErrDuplicateEvent),
		errors.Is(err, domain.ErrRoomExists):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
