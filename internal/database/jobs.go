package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recapio/recapio/internal/models"
	"github.com/recapio/recapio/internal/platform"
)

func (m *MongoDB) CreateJob(ctx context.Context, job *models.VideoJob) error {
	now := time.Now()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.CreatedAt = now
	job.UpdatedAt = now

	if _, err := m.jobs.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

func (m *MongoDB) GetJobByJobID(ctx context.Context, jobID string) (*models.VideoJob, error) {
	var job models.VideoJob
	err := m.jobs.FindOne(ctx, bson.M{"job_id": jobID}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// FindJobBySource looks up an existing job for the same video and target
// language, used for deduplication before creating a new one.
func (m *MongoDB) FindJobBySource(ctx context.Context, p platform.Platform, videoID, targetLanguage string) (*models.VideoJob, error) {
	filter := bson.M{
		"platform":        p,
		"video_id":        videoID,
		"target_language": targetLanguage,
	}

	var job models.VideoJob
	err := m.jobs.FindOne(ctx, filter).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find job by source: %w", err)
	}
	return &job, nil
}

func (m *MongoDB) UpdateJob(ctx context.Context, job *models.VideoJob) error {
	job.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"status":        job.Status,
		"engine_job_id": job.EngineJobID,
		"result_s3_key": job.ResultS3Key,
		"error_message": job.ErrorMessage,
		"updated_at":    job.UpdatedAt,
	}}

	result, err := m.jobs.UpdateOne(ctx, bson.M{"job_id": job.JobID}, update)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (m *MongoDB) ListJobs(ctx context.Context, userID *uuid.UUID, opts models.PaginationOptions) ([]models.VideoJob, int64, error) {
	filter := bson.M{}
	if userID != nil {
		filter["user_id"] = *userID
	}

	total, err := m.jobs.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	if opts.Sort == "created_at_asc" {
		sort = bson.D{{Key: "created_at", Value: 1}}
	}

	cursor, err := m.jobs.Find(ctx, filter, paginationFindOptions(opts.Page, opts.Limit, sort))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.VideoJob
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode jobs: %w", err)
	}

	return jobs, total, nil
}

// FailStaleJobs marks jobs stuck in pending/processing longer than maxAge as
// failed. Returns the number of jobs updated.
func (m *MongoDB) FailStaleJobs(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	errMsg := "job timed out"

	filter := bson.M{
		"status":     bson.M{"$in": []models.JobStatus{models.JobStatusPending, models.JobStatusProcessing}},
		"updated_at": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{
		"status":        models.JobStatusFailed,
		"error_message": errMsg,
		"updated_at":    time.Now(),
	}}

	result, err := m.jobs.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to fail stale jobs: %w", err)
	}
	return result.ModifiedCount, nil
}
