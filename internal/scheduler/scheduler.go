package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/recapio/recapio/internal/services/auth"
	"github.com/recapio/recapio/internal/services/jobs"
	"github.com/recapio/recapio/internal/utils"
)

// Scheduler runs the periodic maintenance tasks: failing stale jobs and
// purging expired sessions and blacklist entries.
type Scheduler struct {
	cron       *cron.Cron
	jobService *jobs.Service
	sessions   *auth.SessionService
}

func New(jobService *jobs.Service, sessions *auth.SessionService) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		jobService: jobService,
		sessions:   sessions,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("*/5 * * * *", s.sweepStaleJobs); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 * * * *", s.cleanupAuthData); err != nil {
		return err
	}

	s.cron.Start()
	utils.LogInfo(context.Background(), "Scheduler started")
	return nil
}

// Stop blocks until running tasks finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	utils.LogInfo(context.Background(), "Scheduler stopped")
}

func (s *Scheduler) sweepStaleJobs() {
	ctx := context.Background()
	count, err := s.jobService.FailStaleJobs(ctx)
	if err != nil {
		utils.LogError(ctx, "Stale job sweep failed", err)
		return
	}
	if count > 0 {
		utils.LogWarn(ctx, "Stale jobs marked as failed", utils.Fields{"count": count})
	}
}

func (s *Scheduler) cleanupAuthData() {
	ctx := context.Background()
	if err := s.sessions.CleanupExpiredSessions(ctx); err != nil {
		utils.LogError(ctx, "Auth data cleanup failed", err)
	}
}
