package handlers

import (
	"errors"
	"net/http"

	"github.com/shopapp-dev/shopapp/app/repositories"
	"github.com/shopapp-dev/shopapp/app/services"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses: missing records to
// 404, conflicts (insufficient stock, bad transitions, closed orders)
// to 409, bad input to 400, contention to 503 so clients retry.
func writeError(rnd *render.Render, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrStoreNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrImageNotFound),
		errors.Is(err, repositories.ErrStockNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repositories.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrOrderClosed):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrImageAssociation),
		errors.Is(err, services.ErrEmailTaken):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, repositories.ErrStockContention):
		status = http.StatusServiceUnavailable
	}

	rnd.JSON(w, status, errorResponse{Error: err.Error()})
}

func writeForbidden(rnd *render.Render, w http.ResponseWriter) {
	rnd.JSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
}

func writeValidationErrors(rnd *render.Render, w http.ResponseWriter, fields map[string]string) {
	rnd.JSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation failed",
		"fields": fields,
	})
}
