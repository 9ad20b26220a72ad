// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated input from handlers, calls repository methods and turns
// database failures into HTTP-aware errors.
package service

import (
	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/deppfellow/organizations/internal/lib/job"
	"github.com/deppfellow/organizations/internal/repository"
	"github.com/deppfellow/organizations/internal/server"
)

type Services struct {
	Organizations *OrganizationService
	Job           *job.JobService
}

// NewServices wires the services on top of repos. When an auth secret is
// configured the Clerk SDK key is set here, before any route can verify a
// session token.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	if s.Config.Auth.Enabled() {
		clerk.SetKey(s.Config.Auth.SecretKey)
	}

	var notifier OrganizationNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Organizations: NewOrganizationService(repos.Organizations, notifier, s.Metrics, s.Logger),
		Job:           s.Job,
	}
}
