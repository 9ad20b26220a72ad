package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/organizations/internal/model"
)

// TaskOrganizationCreated is the task type for new-organization notifications.
const TaskOrganizationCreated = "organization:created"

// OrganizationCreatedPayload is the JSON payload of TaskOrganizationCreated.
type OrganizationCreatedPayload struct {
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	SName string `json:"sname"`
}

// NewOrganizationCreatedTask builds the task on the "low" queue with up to
// 3 retries and a 30s timeout.
func NewOrganizationCreatedTask(organization model.Organization) (*asynq.Task, error) {
	payload, err := json.Marshal(OrganizationCreatedPayload{
		UUID:  organization.UUID,
		Name:  organization.Name,
		SName: organization.SName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskOrganizationCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
