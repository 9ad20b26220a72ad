package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/organizations/internal/metrics"
	"github.com/deppfellow/organizations/internal/model"
	"github.com/deppfellow/organizations/internal/sqlerr"
)

// OrganizationStore is the persistence the service needs.
// *repository.OrganizationRepository implements it.
type OrganizationStore interface {
	List(ctx context.Context, filter model.OrganizationFilter) ([]model.Organization, error)
	GetByUUID(ctx context.Context, id string) (*model.Organization, error)
	Create(ctx context.Context, name, sname string) (*model.Organization, error)
	Update(ctx context.Context, id, name, sname string) (*model.Organization, error)
	Delete(ctx context.Context, id string) error
}

// OrganizationNotifier schedules side effects of a created organization.
// *job.JobService implements it.
type OrganizationNotifier interface {
	EnqueueOrganizationCreated(ctx context.Context, organization model.Organization) error
}

type OrganizationService struct {
	store    OrganizationStore
	notifier OrganizationNotifier
	metrics  *metrics.Metrics
	logger   *zerolog.Logger
}

// NewOrganizationService builds the service. notifier and m may be nil.
func NewOrganizationService(store OrganizationStore, notifier OrganizationNotifier, m *metrics.Metrics, logger *zerolog.Logger) *OrganizationService {
	return &OrganizationService{
		store:    store,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// List returns the organizations matching filter. The result is never nil.
func (s *OrganizationService) List(ctx context.Context, filter model.OrganizationFilter) (organizations []model.Organization, err error) {
	defer s.observe("list", time.Now(), &err)

	organizations, err = s.store.List(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}
	if organizations == nil {
		organizations = []model.Organization{}
	}
	return organizations, nil
}

// Get returns the organization or nil when it does not exist.
func (s *OrganizationService) Get(ctx context.Context, id string) (organization *model.Organization, err error) {
	defer s.observe("get", time.Now(), &err)

	organization, err = s.store.GetByUUID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get", err)
	}
	return organization, nil
}

// Create stores a new organization and schedules its notification.
// A failed enqueue is logged; the organization is already stored.
func (s *OrganizationService) Create(ctx context.Context, name, sname string) (organization *model.Organization, err error) {
	defer s.observe("create", time.Now(), &err)

	organization, err = s.store.Create(ctx, name, sname)
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueOrganizationCreated(ctx, *organization); err != nil {
			s.loggerFor(ctx).Warn().
				Err(err).
				Str("organization_uuid", organization.UUID).
				Msg("failed to enqueue organization created task")
		}
	}

	return organization, nil
}

// Update replaces name and sname. A missing organization is a 404.
func (s *OrganizationService) Update(ctx context.Context, id, name, sname string) (organization *model.Organization, err error) {
	defer s.observe("update", time.Now(), &err)

	organization, err = s.store.Update(ctx, id, name, sname)
	if err != nil {
		return nil, s.fail(ctx, "update", err)
	}
	return organization, nil
}

// Delete removes the organization. A missing organization is a 404.
func (s *OrganizationService) Delete(ctx context.Context, id string) (err error) {
	defer s.observe("delete", time.Now(), &err)

	if err = s.store.Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete", err)
	}
	return nil
}

// fail logs a repository error and converts it into an HTTP-aware error.
func (s *OrganizationService) fail(ctx context.Context, operation string, err error) error {
	s.loggerFor(ctx).Debug().
		Err(err).
		Str("operation", operation).
		Str("sql_code", string(sqlerr.ErrCode(err))).
		Msg("organization repository call failed")

	return sqlerr.HandleError(err)
}

// loggerFor prefers the request-scoped logger carried by ctx.
func (s *OrganizationService) loggerFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}

func (s *OrganizationService) observe(operation string, start time.Time, err *error) {
	s.metrics.ObserveOperation(operation, time.Since(start).Seconds(), *err)
}
