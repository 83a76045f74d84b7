package dubbing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/recapio/recapio/internal/config"
	"github.com/recapio/recapio/internal/utils"
)

// HTTPClient is the production EngineClient. Capabilities are fetched once,
// on first use, and cached for the lifetime of the process.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	capsOnce sync.Once
	caps     *Capabilities
	capsErr  error
}

func NewHTTPClient(cfg *config.EngineConfig) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *HTTPClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("engine request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("engine returned %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode engine response: %w", err)
		}
	}
	return nil
}

// SubmitJob starts a dub and returns the engine's job identifier.
func (c *HTTPClient) SubmitJob(ctx context.Context, jobReq *JobRequest) (string, error) {
	payload, err := json.Marshal(jobReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal job request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/jobs", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	var result struct {
		JobID string `json:"job_id"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	if result.JobID == "" {
		return "", fmt.Errorf("engine returned empty job id")
	}

	utils.LogInfo(ctx, "Submitted job to dubbing engine", utils.Fields{
		"engine_job_id":   result.JobID,
		"platform":        jobReq.Platform,
		"target_language": jobReq.TargetLanguage,
	})
	return result.JobID, nil
}

func (c *HTTPClient) GetJobStatus(ctx context.Context, engineJobID string) (*JobStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/jobs/"+engineJobID, nil)
	if err != nil {
		return nil, err
	}

	var status JobStatus
	if err := c.do(req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// FetchResult streams the rendered video for a completed job. The caller
// owns the returned reader.
func (c *HTTPClient) FetchResult(ctx context.Context, engineJobID string) (io.ReadCloser, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/jobs/"+engineJobID+"/result", nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("engine request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, "", fmt.Errorf("engine returned %d: %s", resp.StatusCode, string(body))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}
	return resp.Body, contentType, nil
}

// Capabilities returns the engine's supported languages and voices. The
// first call hits the engine; later calls return the cached value. A failed
// fetch is cached too so every caller sees the same answer.
func (c *HTTPClient) Capabilities(ctx context.Context) (*Capabilities, error) {
	c.capsOnce.Do(func() {
		req, err := c.newRequest(ctx, http.MethodGet, "/v1/capabilities", nil)
		if err != nil {
			c.capsErr = err
			return
		}

		var caps Capabilities
		if err := c.do(req, &caps); err != nil {
			c.capsErr = err
			return
		}
		c.caps = &caps
	})
	return c.caps, c.capsErr
}
