package jobs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recapio/recapio/internal/config"
	"github.com/recapio/recapio/internal/models"
	"github.com/recapio/recapio/internal/platform"
	"github.com/recapio/recapio/internal/services/dubbing"
	"github.com/recapio/recapio/internal/services/storage"
	"github.com/recapio/recapio/internal/utils"
)

// jobStore is the slice of the database layer the job service uses.
type jobStore interface {
	FindJobBySource(ctx context.Context, p platform.Platform, videoID, targetLanguage string) (*models.VideoJob, error)
	AdjustUserCredits(ctx context.Context, userID uuid.UUID, delta int) error
	CreateJob(ctx context.Context, job *models.VideoJob) error
	UpdateJob(ctx context.Context, job *models.VideoJob) error
	GetJobByJobID(ctx context.Context, jobID string) (*models.VideoJob, error)
	ListJobs(ctx context.Context, userID *uuid.UUID, opts models.PaginationOptions) ([]models.VideoJob, int64, error)
	FailStaleJobs(ctx context.Context, maxAge time.Duration) (int64, error)
}

// Service owns the recap job lifecycle: URL validation, credit debit,
// engine submission, result upload and status tracking. Processing runs in
// background goroutines gated by a semaphore.
type Service struct {
	db        jobStore
	storage   storage.StorageInterface
	engine    dubbing.EngineClient
	cfg       *config.JobsConfig
	engineCfg *config.EngineConfig
	semaphore chan struct{}
}

func NewService(db jobStore, store storage.StorageInterface, engine dubbing.EngineClient, cfg *config.JobsConfig, engineCfg *config.EngineConfig) *Service {
	return &Service{
		db:        db,
		storage:   store,
		engine:    engine,
		cfg:       cfg,
		engineCfg: engineCfg,
		semaphore: make(chan struct{}, cfg.MaxConcurrentJobs),
	}
}

// CreateJob validates the URL, debits one credit and kicks off background
// processing. A duplicate submission for the same video and language is
// rejected with a conflict pointing at the existing job.
func (s *Service) CreateJob(ctx context.Context, userID uuid.UUID, req *models.CreateJobRequest) (*models.CreateJobResponse, error) {
	var v platform.Validation
	if req.ShortsOnly {
		v = platform.ValidateShorts(req.URL)
	} else {
		v = platform.Validate(req.URL)
	}
	if !v.Valid {
		return nil, utils.NewInvalidVideoURLError(req.URL, v.Message)
	}

	existing, err := s.db.FindJobBySource(ctx, v.Platform, v.VideoID, req.TargetLanguage)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if existing != nil && existing.Status != models.JobStatusFailed {
		return nil, utils.NewDuplicateJobError(req.URL, existing.JobID)
	}

	if err := s.db.AdjustUserCredits(ctx, userID, -1); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewInsufficientCreditsError()
		}
		return nil, utils.NewDatabaseError(err)
	}

	job := &models.VideoJob{
		ID:             uuid.New(),
		JobID:          uuid.New().String(),
		UserID:         userID,
		SourceURL:      req.URL,
		Platform:       v.Platform,
		VideoID:        v.VideoID,
		TargetLanguage: req.TargetLanguage,
		Voice:          req.Voice,
		ShortsOnly:     req.ShortsOnly,
		Status:         models.JobStatusPending,
	}

	if err := s.db.CreateJob(ctx, job); err != nil {
		// Refund the debited credit; the job never existed.
		_ = s.db.AdjustUserCredits(ctx, userID, 1)
		return nil, utils.NewDatabaseError(err)
	}

	utils.LogInfo(ctx, "Job created", utils.Fields{
		"job_id":          job.JobID,
		"platform":        string(job.Platform),
		"video_id":        job.VideoID,
		"target_language": job.TargetLanguage,
	})

	// The response is assembled before the pipeline goroutine starts;
	// from that point on the goroutine owns the job struct.
	response := &models.CreateJobResponse{
		Status:           "accepted",
		Message:          "Video queued for dubbing",
		JobID:            job.JobID,
		ProcessingStatus: job.Status,
	}

	go s.processJob(job)

	return response, nil
}

// processJob runs the full pipeline for one job. It holds a semaphore slot
// for the duration so at most MaxConcurrentJobs run at once.
func (s *Service) processJob(job *models.VideoJob) {
	s.semaphore <- struct{}{}
	defer func() { <-s.semaphore }()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()

	if err := s.runPipeline(ctx, job); err != nil {
		utils.LogError(ctx, "Job processing failed", err, utils.Fields{"job_id": job.JobID})
		msg := err.Error()
		job.Status = models.JobStatusFailed
		job.ErrorMessage = &msg
		if updErr := s.db.UpdateJob(context.Background(), job); updErr != nil {
			utils.LogError(ctx, "Failed to record job failure", updErr, utils.Fields{"job_id": job.JobID})
		}
	}
}

func (s *Service) runPipeline(ctx context.Context, job *models.VideoJob) error {
	engineJobID, err := s.engine.SubmitJob(ctx, &dubbing.JobRequest{
		SourceURL:      job.SourceURL,
		Platform:       string(job.Platform),
		VideoID:        job.VideoID,
		TargetLanguage: job.TargetLanguage,
		Voice:          job.Voice,
	})
	if err != nil {
		return fmt.Errorf("engine submission failed: %w", err)
	}

	job.EngineJobID = engineJobID
	job.Status = models.JobStatusProcessing
	if err := s.db.UpdateJob(ctx, job); err != nil {
		return fmt.Errorf("failed to mark job processing: %w", err)
	}

	if err := s.waitForEngine(ctx, engineJobID); err != nil {
		return err
	}

	result, contentType, err := s.engine.FetchResult(ctx, engineJobID)
	if err != nil {
		return fmt.Errorf("failed to fetch engine result: %w", err)
	}
	defer result.Close()

	key := fmt.Sprintf("results/%s.mp4", job.JobID)
	metadata := map[string]string{
		"job-id":          job.JobID,
		"platform":        string(job.Platform),
		"video-id":        job.VideoID,
		"target-language": job.TargetLanguage,
	}
	if err := s.storage.UploadWithMetadata(ctx, key, result, contentType, metadata); err != nil {
		return fmt.Errorf("failed to upload result: %w", err)
	}

	job.ResultS3Key = key
	job.Status = models.JobStatusCompleted
	if err := s.db.UpdateJob(ctx, job); err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}

	utils.LogInfo(ctx, "Job completed", utils.Fields{
		"job_id": job.JobID,
		"s3_key": key,
	})
	return nil
}

// waitForEngine polls job status until the engine reports a terminal state.
func (s *Service) waitForEngine(ctx context.Context, engineJobID string) error {
	ticker := time.NewTicker(s.engineCfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("job timed out waiting for engine: %w", ctx.Err())
		case <-ticker.C:
			status, err := s.engine.GetJobStatus(ctx, engineJobID)
			if err != nil {
				// Transient poll failures are tolerated; the deadline
				// bounds how long we keep retrying.
				utils.LogWarn(ctx, "Engine status poll failed", utils.Fields{
					"engine_job_id": engineJobID,
					"error":         err.Error(),
				})
				continue
			}

			switch status.State {
			case dubbing.JobStateCompleted:
				return nil
			case dubbing.JobStateFailed:
				if status.Error != "" {
					return fmt.Errorf("engine reported failure: %s", status.Error)
				}
				return fmt.Errorf("engine reported failure")
			}
		}
	}
}

// GetJob returns a job if it exists and belongs to the user. Admins pass
// isAdmin to bypass the ownership check.
func (s *Service) GetJob(ctx context.Context, userID uuid.UUID, jobID string, isAdmin bool) (*models.VideoJob, error) {
	job, err := s.db.GetJobByJobID(ctx, jobID)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if job == nil {
		return nil, utils.NewJobNotFoundError(jobID)
	}
	if !isAdmin && job.UserID != userID {
		return nil, utils.NewJobNotFoundError(jobID)
	}
	return job, nil
}

func (s *Service) ListJobs(ctx context.Context, userID *uuid.UUID, opts models.PaginationOptions) (*models.JobListResponse, error) {
	jobs, total, err := s.db.ListJobs(ctx, userID, opts)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}

	items := make([]models.JobListItem, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, models.JobListItem{
			JobID:          job.JobID,
			SourceURL:      job.SourceURL,
			Platform:       job.Platform,
			TargetLanguage: job.TargetLanguage,
			Status:         job.Status,
			CreatedAt:      job.CreatedAt,
		})
	}

	return &models.JobListResponse{
		Total: int(total),
		Page:  opts.Page,
		Limit: opts.Limit,
		Jobs:  items,
	}, nil
}

// GetResultURL presigns a download link for a completed job's video.
func (s *Service) GetResultURL(ctx context.Context, userID uuid.UUID, jobID string, isAdmin bool) (*models.JobResultResponse, error) {
	job, err := s.GetJob(ctx, userID, jobID, isAdmin)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusCompleted || job.ResultS3Key == "" {
		return nil, utils.NewErrorWithDetails(
			utils.ErrorCodeValidationError,
			"Job result is not ready",
			http.StatusConflict,
			map[string]interface{}{"status": job.Status},
		)
	}

	url, err := s.storage.GeneratePresignedURL(ctx, job.ResultS3Key, s.cfg.ResultURLExpiry)
	if err != nil {
		return nil, utils.NewStorageError(err)
	}

	return &models.JobResultResponse{
		JobID:     job.JobID,
		ResultURL: url,
		ExpiresAt: time.Now().Add(s.cfg.ResultURLExpiry),
	}, nil
}

// FailStaleJobs is the scheduler hook for timing out stuck jobs.
func (s *Service) FailStaleJobs(ctx context.Context) (int64, error) {
	return s.db.FailStaleJobs(ctx, s.cfg.JobTimeout)
}
