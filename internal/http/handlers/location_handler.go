// README: Location handlers (resolution and address book).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"manitas/internal/modules/location"
	"manitas/internal/types"
)

type LocationHandler struct {
	location *location.Service
}

func NewLocationHandler(svc *location.Service) *LocationHandler {
	return &LocationHandler{location: svc}
}

type resolveReq struct {
	UID string   `json:"uid"`
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Resolve handles POST /api/location/resolve.
func (h *LocationHandler) Resolve(c *gin.Context) {
	var req resolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	var device *types.Point
	if req.Lat != nil && req.Lng != nil {
		device = &types.Point{Lat: *req.Lat, Lng: *req.Lng}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	writeJSON(c, http.StatusOK, h.location.Resolve(ctx, location.ResolveRequest{
		UID:    req.UID,
		Device: device,
	}))
}

type saveAddressReq struct {
	UID   string `json:"uid"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// SaveAddress handles POST /api/addresses.
func (h *LocationHandler) SaveAddress(c *gin.Context) {
	var req saveAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	a, err := h.location.SaveAddress(ctx, req.UID, req.Label, req.Text)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, a)
}

// ListAddresses handles GET /api/addresses?uid=.
func (h *LocationHandler) ListAddresses(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	list, err := h.location.ListAddresses(ctx, c.Query("uid"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"addresses": list})
}

// DeleteAddress handles DELETE /api/addresses/:id?uid=.
func (h *LocationHandler) DeleteAddress(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid address id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.location.DeleteAddress(ctx, c.Query("uid"), types.ID(id)); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
