// README: Service-request handlers.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"manitas/internal/modules/intent"
	"manitas/internal/modules/request"
	"manitas/internal/types"
)

type RequestHandler struct {
	requests *request.Service
}

func NewRequestHandler(svc *request.Service) *RequestHandler {
	return &RequestHandler{requests: svc}
}

type createRequestReq struct {
	UID         string   `json:"uid"`
	ServiceID   string   `json:"service_id"`
	Descripcion string   `json:"descripcion"`
	Urgencia    string   `json:"urgencia"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// Create handles POST /api/requests, usually with fields pre-filled from an
// intent analysis.
func (h *RequestHandler) Create(c *gin.Context) {
	var req createRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.ServiceID) {
		writeError(c, http.StatusBadRequest, "invalid service id")
		return
	}

	var pos *types.Point
	if req.Lat != nil && req.Lng != nil {
		pos = &types.Point{Lat: *req.Lat, Lng: *req.Lng}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, err := h.requests.Create(ctx, request.CreateCommand{
		UID:         req.UID,
		ServiceID:   types.ID(req.ServiceID),
		Descripcion: req.Descripcion,
		Urgencia:    intent.ParseUrgency(req.Urgencia),
		Position:    pos,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"id": id})
}

// Get handles GET /api/requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid request id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	r, err := h.requests.Get(ctx, types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}

// Cancel handles POST /api/requests/:id/cancel.
func (h *RequestHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid request id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.requests.Cancel(ctx, types.ID(id)); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
