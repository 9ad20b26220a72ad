package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/organizations/internal/model"
	"github.com/deppfellow/organizations/internal/server"
	"github.com/deppfellow/organizations/internal/validation"
)

// OrganizationService is the business layer behind the organization
// routes. *service.OrganizationService implements it.
type OrganizationService interface {
	List(ctx context.Context, filter model.OrganizationFilter) ([]model.Organization, error)
	Get(ctx context.Context, id string) (*model.Organization, error)
	Create(ctx context.Context, name, sname string) (*model.Organization, error)
	Update(ctx context.Context, id, name, sname string) (*model.Organization, error)
	Delete(ctx context.Context, id string) error
}

type OrganizationHandler struct {
	Handler
	service OrganizationService
}

func NewOrganizationHandler(s *server.Server, svc OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

// List returns the organizations matching the optional name, sname and
// status filters.
func (h *OrganizationHandler) List(c echo.Context) (Result, error) {
	query, err := validation.Payload[*model.OrganizationQuery](c, validation.ChannelQuery)
	if err != nil {
		return Result{}, err
	}

	organizations, err := h.service.List(c.Request().Context(), query.Filter())
	if err != nil {
		return Result{}, err
	}
	if organizations == nil {
		organizations = []model.Organization{}
	}

	return OK(organizations), nil
}

// Detail returns the organization, or an empty object when it does not
// exist.
func (h *OrganizationHandler) Detail(c echo.Context) (Result, error) {
	params, err := validation.Payload[*model.OrganizationParams](c, validation.ChannelParams)
	if err != nil {
		return Result{}, err
	}

	organization, err := h.service.Get(c.Request().Context(), params.UUID)
	if err != nil {
		return Result{}, err
	}
	if organization == nil {
		return OK(struct{}{}), nil
	}

	return OK(organization), nil
}

// Create stores the organization. The response body does not echo it.
func (h *OrganizationHandler) Create(c echo.Context) (Result, error) {
	body, err := validation.Payload[*model.OrganizationBody](c, validation.ChannelBody)
	if err != nil {
		return Result{}, err
	}

	if _, err := h.service.Create(c.Request().Context(), body.Name, body.SName); err != nil {
		return Result{}, err
	}

	return Created(struct{}{}), nil
}

// Update replaces name and sname and echoes the path UUID.
func (h *OrganizationHandler) Update(c echo.Context) (Result, error) {
	params, err := validation.Payload[*model.OrganizationParams](c, validation.ChannelParams)
	if err != nil {
		return Result{}, err
	}
	body, err := validation.Payload[*model.OrganizationBody](c, validation.ChannelBody)
	if err != nil {
		return Result{}, err
	}

	if _, err := h.service.Update(c.Request().Context(), params.UUID, body.Name, body.SName); err != nil {
		return Result{}, err
	}

	return OK(model.UUIDResponse{UUID: params.UUID}), nil
}

// Delete removes the organization and echoes the path UUID.
func (h *OrganizationHandler) Delete(c echo.Context) (Result, error) {
	params, err := validation.Payload[*model.OrganizationParams](c, validation.ChannelParams)
	if err != nil {
		return Result{}, err
	}

	if err := h.service.Delete(c.Request().Context(), params.UUID); err != nil {
		return Result{}, err
	}

	return OK(model.UUIDResponse{UUID: params.UUID}), nil
}
