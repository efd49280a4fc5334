// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"manitas/internal/modules/catalog"
	"manitas/internal/modules/location"
	"manitas/internal/modules/request"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID accepts generated hex IDs and readable seed slugs (hyphens allowed).
func isValidID(v string) bool {
	if v == "" || len(v) > 40 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, location.ErrNotFound),
		errors.Is(err, request.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, location.ErrBadRequest),
		errors.Is(err, request.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, request.ErrInvalidState),
		errors.Is(err, request.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
