// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"midway/internal/geocode"
	"midway/internal/modules/meeting"
	"midway/internal/places"
	"midway/internal/routing"
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

// writeGeocodeError names the participant whose address failed so the client
// can point at the right form field.
func writeGeocodeError(c *gin.Context, name string, err error) {
	switch {
	case errors.Is(err, geocode.ErrNotFound):
		writeError(c, http.StatusBadRequest, "could not locate address for "+name)
	case errors.Is(err, geocode.ErrUpstream):
		writeError(c, http.StatusBadGateway, "geocoding service unavailable")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// writeDomainError maps domain sentinel errors onto HTTP statuses. Upstream
// provider failures surface as 502 so callers can tell them apart from bugs.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, meeting.ErrTooFewParticipants):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, geocode.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, geocode.ErrUpstream),
		errors.Is(err, routing.ErrUpstream),
		errors.Is(err, places.ErrUpstream):
		writeError(c, http.StatusBadGateway, "upstream service unavailable")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
