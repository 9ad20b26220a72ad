package model

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/deppfellow/organizations/internal/validation"
)

// validate caches struct metadata; *validator.Validate is safe for concurrent use.
var validate = validator.New()

// OrganizationQuery is the list endpoint's query string.
// Empty values mean the filter is absent.
type OrganizationQuery struct {
	Name   string `query:"name" validate:"max=255"`
	SName  string `query:"sname" validate:"max=64"`
	Status string `query:"status" validate:"omitempty,oneof=active inactive"`
}

func (q *OrganizationQuery) Validate() error {
	return validate.Struct(q)
}

// Filter converts the query into an OrganizationFilter, leaving absent
// values nil.
func (q *OrganizationQuery) Filter() OrganizationFilter {
	return OrganizationFilter{
		Name:   optional(q.Name),
		SName:  optional(q.SName),
		Status: optional(q.Status),
	}
}

// OrganizationBody is the create and update request body.
type OrganizationBody struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	SName string `json:"sname" validate:"required,min=1,max=64"`
}

// Validate runs the tag rules, then rejects whitespace-only values.
func (b *OrganizationBody) Validate() error {
	if err := validate.Struct(b); err != nil {
		return err
	}

	var blank validation.CustomValidationErrors
	if strings.TrimSpace(b.Name) == "" {
		blank = append(blank, validation.CustomValidationError{Field: "name", Message: "must not be blank"})
	}
	if strings.TrimSpace(b.SName) == "" {
		blank = append(blank, validation.CustomValidationError{Field: "sname", Message: "must not be blank"})
	}
	if blank != nil {
		return blank
	}

	return nil
}

// OrganizationParams holds the :uuid path parameter.
type OrganizationParams struct {
	UUID string `param:"uuid" validate:"required,uuid"`
}

func (p *OrganizationParams) Validate() error {
	return validate.Struct(p)
}

// UUIDResponse is the data returned by update and delete.
type UUIDResponse struct {
	UUID string `json:"uuid"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
