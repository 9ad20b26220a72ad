// Package repository handles all interactions with the database.
//
// It contains the SQL (built with squirrel) and methods to fetch, persist
// or update data, keeping SQL out of the service layer.
package repository

import (
	"github.com/deppfellow/organizations/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Organizations *OrganizationRepository
}

// NewRepositories builds every repository on the server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Organizations: NewOrganizationRepository(s.DB.Pool),
	}
}
