// Package model holds the domain types shared by the repository, service
// and handler layers.
package model

import "time"

// OrganizationStatus is the lifecycle state of an organization.
type OrganizationStatus string

const (
	OrganizationStatusActive   OrganizationStatus = "active"
	OrganizationStatusInactive OrganizationStatus = "inactive"
)

// Organization is a stored organization, identified by its UUID.
// SName is the organization's short name.
type Organization struct {
	UUID      string             `json:"uuid" db:"uuid"`
	Name      string             `json:"name" db:"name"`
	SName     string             `json:"sname" db:"sname"`
	Status    OrganizationStatus `json:"status" db:"status"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" db:"updated_at"`
}

// OrganizationFilter narrows a list query. A nil field applies no filter.
type OrganizationFilter struct {
	Name   *string
	SName  *string
	Status *string
}
