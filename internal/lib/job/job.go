// Package job runs background work on an Asynq queue backed by Redis.
//
// Handlers are registered on a ServeMux keyed by task type; the HTTP side
// only ever touches the Client to enqueue.
package job

import (
	"github.com/ledgerly/backend/internal/config"
	"github.com/ledgerly/backend/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService owns the Asynq client (producer) and server (consumer) plus the
// dependencies task handlers need.
type JobService struct {
	// Client enqueues tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	email  *email.Client
	logger *zerolog.Logger
}

// NewJobService builds the producer and consumer against the configured
// Redis instance. Queue weights give transactional mail priority over
// housekeeping work.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
	})

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		email:  email.NewClient(cfg, logger),
		logger: logger,
	}
}

// Start registers task handlers and runs the worker server. Blocks until
// shutdown or a fatal error.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcomeEmail, j.handleWelcomeEmail)

	j.logger.Info().Msg("starting background job server")

	return j.server.Start(mux)
}

// Stop drains in-flight tasks and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
