// Package handler is the HTTP layer that sits right behind the router.
//
// Handlers read the payloads validated by the validation middleware, call
// the service layer and return a Result that Handle renders.
package handler

import (
	"github.com/deppfellow/organizations/internal/server"
	"github.com/deppfellow/organizations/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health        *HealthHandler
	OpenAPI       *OpenAPIHandler
	Organizations *OrganizationHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		OpenAPI:       NewOpenAPIHandler(s),
		Organizations: NewOrganizationHandler(s, services.Organizations),
	}
}
