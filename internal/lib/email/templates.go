package email

import "embed"

// Template names an HTML template under templates/.
type Template string

const (
	// TemplateOrganizationCreated corresponds to templates/organization_created.html.
	TemplateOrganizationCreated Template = "organization_created"
)

//go:embed templates/*.html
var templateFS embed.FS

// PreviewData holds sample template data for local previews and tests,
// keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateOrganizationCreated: {
		"UUID":  "3f1c2a8e-6b2d-4f0a-9c1e-7d5b8a9e0f12",
		"Name":  "Acme Corporation",
		"SName": "acme",
	},
}
