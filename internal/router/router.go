// Package router builds the Echo instance: global middleware, the
// organization routes and the system routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/organizations/internal/handler"
	"github.com/deppfellow/organizations/internal/middleware"
	"github.com/deppfellow/organizations/internal/model"
	"github.com/deppfellow/organizations/internal/server"
	"github.com/deppfellow/organizations/internal/validation"
)

// OrganizationsBasePath is the prefix of every organization route.
const OrganizationsBasePath = "/organizations/1"

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	r := echo.New()
	r.HideBanner = true
	r.HidePort = true
	r.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	r.Use(
		mw.RateLimit.Limit(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
	)

	registerSystemRoutes(r, s, h)
	registerOrganizationRoutes(r, h.Organizations, mw.Auth.Authenticate())

	return r
}

// registerOrganizationRoutes binds the organization routes. Route-level
// validation middleware runs in the listed order; a failure short-circuits
// before the handler.
func registerOrganizationRoutes(r *echo.Echo, h *handler.OrganizationHandler, auth echo.MiddlewareFunc) {
	queryValidator := validation.Middleware[model.OrganizationQuery](validation.ChannelQuery)
	bodyValidator := validation.Middleware[model.OrganizationBody](validation.ChannelBody)
	paramsValidator := validation.Middleware[model.OrganizationParams](validation.ChannelParams)

	organizations := r.Group(OrganizationsBasePath, auth)

	organizations.GET("", handler.Handle("organization.list", h.List), queryValidator)
	organizations.POST("", handler.Handle("organization.create", h.Create), bodyValidator)
	organizations.GET("/:uuid", handler.Handle("organization.detail", h.Detail), paramsValidator)
	organizations.PATCH("/:uuid", handler.Handle("organization.update", h.Update), paramsValidator, bodyValidator)
	organizations.DELETE("/:uuid", handler.Handle("organization.delete", h.Delete), paramsValidator)
}
