package main

import (
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/infrastructure/queue"

	"github.com/rs/zerolog/log"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler creates and configures the scheduler
func setupScheduler(cfg *config.Config) *asynqScheduler {
	scheduler := queue.NewScheduler(queue.RedisOpt(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB))

	if err := scheduler.RegisterMaintenanceJobs(cfg.Worker.BackfillCron); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] Failed to register")
	}

	go func() {
		log.Info().Msg("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] Failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] ✓ Stopped")
}
