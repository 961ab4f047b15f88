package queue

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// DefaultBackfillCron: mỗi ngày 3h sáng (UTC)
const DefaultBackfillCron = "0 3 * * *"

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(opt asynq.RedisClientOpt) *Scheduler {
	scheduler := asynq.NewScheduler(
		opt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterMaintenanceJobs đăng ký các cron job định kỳ
func (s *Scheduler) RegisterMaintenanceJobs(backfillCron string) error {
	if backfillCron == "" {
		backfillCron = DefaultBackfillCron
	}

	entryID, err := s.scheduler.Register(backfillCron, NewBackfillThumbnailsTask())
	if err != nil {
		log.Error().Err(err).Msg("Failed to register BackfillThumbnails job")
		return err
	}

	log.Info().
		Str("entry_id", entryID).
		Str("cron", backfillCron).
		Msg("✅ Registered BackfillThumbnails job")
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
