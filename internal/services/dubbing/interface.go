package dubbing

import (
	"context"
	"io"
)

// JobRequest is what we hand to the engine to start a dub.
type JobRequest struct {
	SourceURL      string `json:"source_url"`
	Platform       string `json:"platform"`
	VideoID        string `json:"video_id"`
	TargetLanguage string `json:"target_language"`
	Voice          string `json:"voice,omitempty"`
}

type JobState string

const (
	JobStateQueued     JobState = "queued"
	JobStateProcessing JobState = "processing"
	JobStateCompleted  JobState = "completed"
	JobStateFailed     JobState = "failed"
)

// JobStatus is the engine's view of a submitted job.
type JobStatus struct {
	EngineJobID string   `json:"job_id"`
	State       JobState `json:"state"`
	Progress    int      `json:"progress"`
	Error       string   `json:"error,omitempty"`
}

// Capabilities describes what the engine can do. It changes only on engine
// deploys, so clients cache it.
type Capabilities struct {
	Languages          []string `json:"languages"`
	Voices             []string `json:"voices"`
	MaxDurationSeconds int      `json:"max_duration_seconds"`
}

// EngineClient talks to the external dubbing engine that performs the
// transcription, translation and rendering.
type EngineClient interface {
	SubmitJob(ctx context.Context, req *JobRequest) (string, error)
	GetJobStatus(ctx context.Context, engineJobID string) (*JobStatus, error)
	FetchResult(ctx context.Context, engineJobID string) (io.ReadCloser, string, error)
	Capabilities(ctx context.Context) (*Capabilities, error)
}
