package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/recapio/recapio/internal/models"
	"github.com/recapio/recapio/internal/services/dubbing"
)

// capsEngineStub serves canned capabilities; the other engine methods are
// never reached from the video endpoints.
type capsEngineStub struct {
	caps *dubbing.Capabilities
	err  error
}

func (s capsEngineStub) SubmitJob(_ context.Context, _ *dubbing.JobRequest) (string, error) {
	return "", s.err
}

func (s capsEngineStub) GetJobStatus(_ context.Context, _ string) (*dubbing.JobStatus, error) {
	return nil, s.err
}

func (s capsEngineStub) FetchResult(_ context.Context, _ string) (io.ReadCloser, string, error) {
	return nil, "", s.err
}

func (s capsEngineStub) Capabilities(_ context.Context) (*dubbing.Capabilities, error) {
	return s.caps, s.err
}

func validateRequest(t *testing.T, body string) (*httptest.ResponseRecorder, models.ValidateURLResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewVideoHandler(capsEngineStub{})
	router.POST("/validate", handler.ValidateURL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp models.ValidateURLResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return w, resp
}

func TestValidateURLEndpoint(t *testing.T) {
	w, resp := validateRequest(t, `{"url":"https://youtube.com/shorts/dQw4w9WgXcQ"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !resp.Valid {
		t.Fatalf("expected valid result, got %+v", resp)
	}
	if resp.Platform != "youtube" || resp.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("got {%s %s}, want {youtube dQw4w9WgXcQ}", resp.Platform, resp.VideoID)
	}
	if resp.Display == nil || resp.Display.Name != "YouTube" {
		t.Errorf("expected YouTube display info, got %+v", resp.Display)
	}
}

// An unrecognized URL is a structured negative result, not an HTTP error.
func TestValidateURLEndpointUnsupported(t *testing.T) {
	w, resp := validateRequest(t, `{"url":"https://vimeo.com/123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Valid {
		t.Fatal("expected invalid result")
	}
	if resp.Message == "" {
		t.Error("expected a user-facing message")
	}
}

func TestValidateURLEndpointShortsOnly(t *testing.T) {
	w, resp := validateRequest(t, `{"url":"https://youtube.com/watch?v=dQw4w9WgXcQ","shorts_only":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Valid {
		t.Fatal("regular YouTube video must be rejected in Shorts-only mode")
	}
	if resp.Reason != "shorts_required" {
		t.Errorf("Reason = %q, want shorts_required", resp.Reason)
	}
}

func TestListPlatformsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewVideoHandler(capsEngineStub{})
	router.GET("/platforms", handler.ListPlatforms)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/platforms", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var items []models.PlatformListItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("got %d platforms, want 3", len(items))
	}
}

func languagesRequest(t *testing.T, stub capsEngineStub) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewVideoHandler(stub)
	router.GET("/languages", handler.ListLanguages)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/languages", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestListLanguagesEndpoint(t *testing.T) {
	stub := capsEngineStub{caps: &dubbing.Capabilities{
		Languages:          []string{"es", "de", "fr"},
		Voices:             []string{"nova", "atlas"},
		MaxDurationSeconds: 180,
	}}

	w := languagesRequest(t, stub)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	langs, ok := resp["languages"].([]interface{})
	if !ok || len(langs) != 3 {
		t.Errorf("languages = %v, want 3 entries", resp["languages"])
	}
}

func TestListLanguagesEngineDown(t *testing.T) {
	w := languagesRequest(t, capsEngineStub{err: io.ErrUnexpectedEOF})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ENGINE_ERROR") {
		t.Errorf("expected ENGINE_ERROR in body, got %s", w.Body.String())
	}
}
