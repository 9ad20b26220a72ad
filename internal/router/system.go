package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deppfellow/organizations/internal/handler"
	"github.com/deppfellow/organizations/internal/server"
	"github.com/deppfellow/organizations/static"
)

// registerSystemRoutes binds the endpoints that are not part of the
// organization API: health, docs, their assets and Prometheus metrics.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", static.FS)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if s.Registry != nil {
		r.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))
	}
}
