package jobs

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recapio/recapio/internal/config"
	"github.com/recapio/recapio/internal/models"
	"github.com/recapio/recapio/internal/platform"
	"github.com/recapio/recapio/internal/services/dubbing"
	"github.com/recapio/recapio/internal/utils"
)

type memoryJobStore struct {
	mu      sync.Mutex
	jobs    map[string]*models.VideoJob
	credits map[uuid.UUID]int
}

func (s *memoryJobStore) FindJobBySource(_ context.Context, p platform.Platform, videoID, targetLanguage string) (*models.VideoJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range s.jobs {
		if job.Platform == p && job.VideoID == videoID && job.TargetLanguage == targetLanguage {
			cp := *job
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryJobStore) AdjustUserCredits(_ context.Context, userID uuid.UUID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if delta < 0 && s.credits[userID]+delta < 0 {
		return mongo.ErrNoDocuments
	}
	s.credits[userID] += delta
	return nil
}

func (s *memoryJobStore) CreateJob(_ context.Context, job *models.VideoJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *job
	s.jobs[job.JobID] = &cp
	return nil
}

func (s *memoryJobStore) UpdateJob(_ context.Context, job *models.VideoJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.JobID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *job
	s.jobs[job.JobID] = &cp
	return nil
}

func (s *memoryJobStore) GetJobByJobID(_ context.Context, jobID string) (*models.VideoJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, nil
	}
	cp := *job
	return &cp, nil
}

func (s *memoryJobStore) ListJobs(_ context.Context, userID *uuid.UUID, _ models.PaginationOptions) ([]models.VideoJob, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.VideoJob
	for _, job := range s.jobs {
		if userID == nil || job.UserID == *userID {
			out = append(out, *job)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memoryJobStore) FailStaleJobs(_ context.Context, _ time.Duration) (int64, error) {
	return 0, nil
}

func (s *memoryJobStore) creditsOf(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credits[userID]
}

// instantEngine completes every job on the first status poll.
type instantEngine struct{}

func (instantEngine) SubmitJob(_ context.Context, _ *dubbing.JobRequest) (string, error) {
	return "eng-1", nil
}

func (instantEngine) GetJobStatus(_ context.Context, engineJobID string) (*dubbing.JobStatus, error) {
	return &dubbing.JobStatus{EngineJobID: engineJobID, State: dubbing.JobStateCompleted, Progress: 100}, nil
}

func (instantEngine) FetchResult(_ context.Context, _ string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader("rendered")), "video/mp4", nil
}

func (instantEngine) Capabilities(_ context.Context) (*dubbing.Capabilities, error) {
	return &dubbing.Capabilities{Languages: []string{"es"}, Voices: []string{"nova"}}, nil
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memoryStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) error {
	return s.UploadWithMetadata(ctx, key, data, contentType, nil)
}

func (s *memoryStorage) UploadWithMetadata(_ context.Context, key string, data io.Reader, _ string, _ map[string]string) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = b
	return nil
}

func (s *memoryStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return io.NopCloser(bytes.NewReader(s.objects[key])), nil
}

func (s *memoryStorage) GetMetadata(_ context.Context, _ string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memoryStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *memoryStorage) GeneratePresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://s3.local/" + key, nil
}

func (s *memoryStorage) BucketName() string { return "test-bucket" }

func newTestService(credits int) (*Service, *memoryJobStore, uuid.UUID) {
	userID := uuid.New()
	store := &memoryJobStore{
		jobs:    map[string]*models.VideoJob{},
		credits: map[uuid.UUID]int{userID: credits},
	}
	cfg := &config.JobsConfig{
		MaxConcurrentJobs: 2,
		JobTimeout:        5 * time.Second,
		ResultURLExpiry:   time.Hour,
	}
	engineCfg := &config.EngineConfig{PollInterval: time.Millisecond}
	svc := NewService(store, &memoryStorage{objects: map[string][]byte{}}, instantEngine{}, cfg, engineCfg)
	return svc, store, userID
}

func waitForStatus(t *testing.T, store *memoryJobStore, jobID string, want models.JobStatus) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := store.GetJobByJobID(context.Background(), jobID)
		if err == nil && job != nil && job.Status == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %s", jobID, want)
}

// The response must describe the job as submitted, regardless of how far
// the background pipeline has progressed by the time it is serialized.
func TestCreateJobResponseReflectsSubmission(t *testing.T) {
	svc, store, userID := newTestService(3)

	resp, err := svc.CreateJob(context.Background(), userID, &models.CreateJobRequest{
		URL:            "https://youtube.com/shorts/dQw4w9WgXcQ",
		TargetLanguage: "es",
	})
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	if resp.Status != "accepted" {
		t.Errorf("Status = %q, want accepted", resp.Status)
	}
	if resp.JobID == "" {
		t.Error("expected a job id")
	}
	if resp.ProcessingStatus != models.JobStatusPending {
		t.Errorf("ProcessingStatus = %s, want pending", resp.ProcessingStatus)
	}

	waitForStatus(t, store, resp.JobID, models.JobStatusCompleted)

	job, err := store.GetJobByJobID(context.Background(), resp.JobID)
	if err != nil || job == nil {
		t.Fatalf("job lookup failed: %v", err)
	}
	if job.ResultS3Key == "" {
		t.Error("completed job must carry a result key")
	}
	if got := store.creditsOf(userID); got != 2 {
		t.Errorf("credits = %d, want 2", got)
	}
}

func TestCreateJobDuplicateSubmission(t *testing.T) {
	svc, store, userID := newTestService(3)

	req := &models.CreateJobRequest{
		URL:            "https://youtube.com/shorts/dQw4w9WgXcQ",
		TargetLanguage: "es",
	}
	resp, err := svc.CreateJob(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	waitForStatus(t, store, resp.JobID, models.JobStatusCompleted)

	_, err = svc.CreateJob(context.Background(), userID, req)
	appErr, ok := err.(*utils.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != utils.ErrorCodeDuplicateJob {
		t.Errorf("Code = %s, want %s", appErr.Code, utils.ErrorCodeDuplicateJob)
	}
	if appErr.StatusCode != 409 {
		t.Errorf("StatusCode = %d, want 409", appErr.StatusCode)
	}
	if appErr.Details["job_id"] != resp.JobID {
		t.Errorf("details job_id = %v, want %s", appErr.Details["job_id"], resp.JobID)
	}
	if got := store.creditsOf(userID); got != 2 {
		t.Errorf("credits = %d, want 2 (single debit)", got)
	}
}

func TestCreateJobInsufficientCredits(t *testing.T) {
	svc, store, userID := newTestService(0)

	_, err := svc.CreateJob(context.Background(), userID, &models.CreateJobRequest{
		URL:            "https://youtube.com/shorts/dQw4w9WgXcQ",
		TargetLanguage: "es",
	})
	appErr, ok := err.(*utils.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != utils.ErrorCodeInsufficientCredits {
		t.Errorf("Code = %s, want %s", appErr.Code, utils.ErrorCodeInsufficientCredits)
	}
	if len(store.jobs) != 0 {
		t.Error("no job must be created without credits")
	}
}

func TestCreateJobRejectsInvalidURL(t *testing.T) {
	svc, store, userID := newTestService(3)

	_, err := svc.CreateJob(context.Background(), userID, &models.CreateJobRequest{
		URL:            "https://vimeo.com/123456",
		TargetLanguage: "es",
	})
	appErr, ok := err.(*utils.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != utils.ErrorCodeInvalidVideoURL {
		t.Errorf("Code = %s, want %s", appErr.Code, utils.ErrorCodeInvalidVideoURL)
	}
	if got := store.creditsOf(userID); got != 3 {
		t.Errorf("credits = %d, want 3 (no debit)", got)
	}
}
