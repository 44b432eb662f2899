// README: Address geocoding handler.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"midway/internal/geocode"
	"midway/internal/types"
)

// AddressResolver is the part of the geocode service handlers depend on.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) (geocode.Result, error)
	Reverse(ctx context.Context, p types.Point) string
}

type GeocodeHandler struct {
	resolver AddressResolver
}

func NewGeocodeHandler(resolver AddressResolver) *GeocodeHandler {
	return &GeocodeHandler{resolver: resolver}
}

type geocodeReq struct {
	Address string `json:"address"`
}

type geocodeResp struct {
	Location    types.Point `json:"location"`
	DisplayName string      `json:"displayName"`
}

// Resolve handles POST /api/geocode.
func (h *GeocodeHandler) Resolve(c *gin.Context) {
	var req geocodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.Address = strings.TrimSpace(req.Address)
	if req.Address == "" {
		writeError(c, http.StatusBadRequest, "missing address")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	res, err := h.resolver.Resolve(ctx, req.Address)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, geocodeResp{Location: res.Location, DisplayName: res.DisplayName})
}
