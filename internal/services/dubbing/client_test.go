package dubbing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/recapio/recapio/internal/config"
)

func newTestClient(url string) *HTTPClient {
	return NewHTTPClient(&config.EngineConfig{
		BaseURL:        url,
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
		PollInterval:   10 * time.Millisecond,
	})
}

func TestSubmitJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/jobs" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("missing API key header")
		}

		var req JobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.SourceURL != "https://youtube.com/shorts/dQw4w9WgXcQ" {
			t.Errorf("SourceURL = %q", req.SourceURL)
		}

		json.NewEncoder(w).Encode(map[string]string{"job_id": "eng-123"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	jobID, err := client.SubmitJob(context.Background(), &JobRequest{
		SourceURL:      "https://youtube.com/shorts/dQw4w9WgXcQ",
		Platform:       "youtube",
		VideoID:        "dQw4w9WgXcQ",
		TargetLanguage: "de",
	})
	if err != nil {
		t.Fatalf("SubmitJob failed: %v", err)
	}
	if jobID != "eng-123" {
		t.Errorf("jobID = %q, want eng-123", jobID)
	}
}

func TestSubmitJobEngineError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.SubmitJob(context.Background(), &JobRequest{}); err == nil {
		t.Error("expected error on 503 response")
	}
}

func TestGetJobStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/jobs/eng-123" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(JobStatus{
			EngineJobID: "eng-123",
			State:       JobStateProcessing,
			Progress:    42,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	status, err := client.GetJobStatus(context.Background(), "eng-123")
	if err != nil {
		t.Fatalf("GetJobStatus failed: %v", err)
	}
	if status.State != JobStateProcessing || status.Progress != 42 {
		t.Errorf("unexpected status: %+v", status)
	}
}

// Capabilities must hit the engine exactly once, no matter how many callers
// ask concurrently.
func TestCapabilitiesFetchedOnce(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode(Capabilities{
			Languages:          []string{"de", "fr", "es"},
			Voices:             []string{"alto", "tenor"},
			MaxDurationSeconds: 180,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			caps, err := client.Capabilities(context.Background())
			if err != nil {
				t.Errorf("Capabilities failed: %v", err)
				return
			}
			if len(caps.Languages) != 3 {
				t.Errorf("Languages = %v", caps.Languages)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("capabilities endpoint hit %d times, want 1", got)
	}
}
