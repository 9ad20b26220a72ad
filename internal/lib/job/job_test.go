package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/organizations/internal/model"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendOrganizationCreatedEmail(to, uuid, name, sname string) error {
	args := m.Called(to, uuid, name, sname)
	return args.Error(0)
}

func newTestJobService(m mailer, notifyEmail string) *JobService {
	logger := zerolog.Nop()
	return &JobService{
		logger:      &logger,
		mailer:      m,
		notifyEmail: notifyEmail,
	}
}

var testOrganization = model.Organization{
	UUID:  "3f1c2a8e-6b2d-4f0a-9c1e-7d5b8a9e0f12",
	Name:  "Acme Corporation",
	SName: "acme",
}

func TestNewOrganizationCreatedTask(t *testing.T) {
	task, err := NewOrganizationCreatedTask(testOrganization)
	require.NoError(t, err)

	assert.Equal(t, TaskOrganizationCreated, task.Type())

	var p OrganizationCreatedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, OrganizationCreatedPayload{
		UUID:  testOrganization.UUID,
		Name:  "Acme Corporation",
		SName: "acme",
	}, p)
}

func TestHandleOrganizationCreatedTask(t *testing.T) {
	task, err := NewOrganizationCreatedTask(testOrganization)
	require.NoError(t, err)

	t.Run("sends email", func(t *testing.T) {
		m := new(mockMailer)
		m.On("SendOrganizationCreatedEmail", "ops@example.com", testOrganization.UUID, "Acme Corporation", "acme").
			Return(nil).Once()

		js := newTestJobService(m, "ops@example.com")
		assert.NoError(t, js.handleOrganizationCreatedTask(context.Background(), task))
		m.AssertExpectations(t)
	})

	t.Run("send failure is returned for retry", func(t *testing.T) {
		m := new(mockMailer)
		m.On("SendOrganizationCreatedEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("resend unavailable"))

		js := newTestJobService(m, "ops@example.com")
		assert.EqualError(t, js.handleOrganizationCreatedTask(context.Background(), task), "resend unavailable")
	})

	t.Run("no recipient skips", func(t *testing.T) {
		m := new(mockMailer)

		js := newTestJobService(m, "")
		assert.NoError(t, js.handleOrganizationCreatedTask(context.Background(), task))
		m.AssertNotCalled(t, "SendOrganizationCreatedEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad payload is not retried", func(t *testing.T) {
		js := newTestJobService(nil, "ops@example.com")
		err := js.handleOrganizationCreatedTask(context.Background(), asynq.NewTask(TaskOrganizationCreated, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}
