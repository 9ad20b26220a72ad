package email

// SendOrganizationCreatedEmail notifies to that an organization was created.
func (c *Client) SendOrganizationCreatedEmail(to, uuid, name, sname string) error {
	data := map[string]string{
		"UUID":  uuid,
		"Name":  name,
		"SName": sname,
	}

	return c.SendEmail(
		to,
		"New organization: "+name,
		TemplateOrganizationCreated,
		data,
	)
}
