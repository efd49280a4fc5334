// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"manitas/internal/http/handlers"
	"manitas/internal/http/middleware"
	"manitas/internal/modules/catalog"
	"manitas/internal/modules/location"
	"manitas/internal/modules/request"
)

type ServerDeps struct {
	Intent   handlers.Analyzer
	Catalog  *catalog.Service
	Location *location.Service
	Requests *request.Service
}

// NewRouter wires all handlers onto a gin engine.
func NewRouter(deps ServerDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	intentHandler := handlers.NewIntentHandler(deps.Intent)
	r.POST("/api/intent/analyze", intentHandler.Analyze)

	catalogHandler := handlers.NewCatalogHandler(deps.Catalog)
	r.GET("/api/services", catalogHandler.List)
	r.POST("/api/services/:id/select", catalogHandler.Select)

	locationHandler := handlers.NewLocationHandler(deps.Location)
	r.POST("/api/location/resolve", locationHandler.Resolve)
	r.POST("/api/addresses", locationHandler.SaveAddress)
	r.GET("/api/addresses", locationHandler.ListAddresses)
	r.DELETE("/api/addresses/:id", locationHandler.DeleteAddress)

	requestHandler := handlers.NewRequestHandler(deps.Requests)
	r.POST("/api/requests", requestHandler.Create)
	r.GET("/api/requests/:id", requestHandler.Get)
	r.POST("/api/requests/:id/cancel", requestHandler.Cancel)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
