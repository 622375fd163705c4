// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/geocode"
	"carpool/internal/modules/booking"
	"carpool/internal/modules/match"
	"carpool/internal/modules/message"
	"carpool/internal/modules/ride"
	"carpool/internal/modules/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps module sentinel errors onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ride.ErrBadRequest),
		errors.Is(err, booking.ErrBadRequest),
		errors.Is(err, message.ErrBadRequest),
		errors.Is(err, user.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ride.ErrNotFound),
		errors.Is(err, booking.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrCapacityExceeded),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, user.ErrEmailTaken):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, geocode.ErrGeocodeFailure),
		errors.Is(err, match.ErrDegenerateRoute),
		errors.Is(err, match.ErrInvalidCoordinate):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
