package handlers

import (
	"errors"
	"net/http"

	"dairy-backend/internal/models"
	"dairy-backend/pkg/utils"
)

// respondError maps domain errors onto the response envelope. Unclassified
// errors become opaque 500s so internals never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		utils.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicate):
		utils.Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrConflict):
		utils.Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrNoUnbilledDeliveries):
		utils.Fail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.Fail(w, http.StatusInternalServerError, "internal server error")
	}
}
