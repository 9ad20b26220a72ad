// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: tasks are enqueued with asynq.Client
// and processed by handlers registered on an asynq.Server.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/organizations/internal/config"
	"github.com/deppfellow/organizations/internal/lib/email"
	"github.com/deppfellow/organizations/internal/model"
)

// mailer is the part of *email.Client the task handlers use.
type mailer interface {
	SendOrganizationCreatedEmail(to, uuid, name, sname string) error
}

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	// mailer is nil when no Resend API key is configured.
	mailer      mailer
	notifyEmail string
}

// NewJobService creates a JobService on the Redis instance from cfg.
// Queue weights give "critical" tasks the largest share of the 10 workers.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	js := &JobService{
		Client:      asynq.NewClient(redisOpt),
		server:      server,
		logger:      logger,
		notifyEmail: cfg.Integration.NotifyEmail,
	}
	if cfg.Integration.ResendAPIKey != "" {
		js.mailer = email.NewClient(cfg.Integration.ResendAPIKey, logger)
	}

	return js
}

// Start registers task handlers and starts the worker server.
// asynq.Server.Start does not block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskOrganizationCreated, j.handleOrganizationCreatedTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop waits for running tasks and closes the Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}

// EnqueueOrganizationCreated schedules the organization-created notification.
func (j *JobService) EnqueueOrganizationCreated(ctx context.Context, organization model.Organization) error {
	task, err := NewOrganizationCreatedTask(organization)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", TaskOrganizationCreated, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("organization_uuid", organization.UUID).
		Msg("enqueued organization created task")

	return nil
}
