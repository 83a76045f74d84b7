package platform

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name         string
		url          string
		wantValid    bool
		wantPlatform Platform
		wantVideoID  string
		wantReason   Reason
	}{
		{
			name:         "valid YouTube Shorts",
			url:          "https://youtube.com/shorts/dQw4w9WgXcQ",
			wantValid:    true,
			wantPlatform: PlatformYouTube,
			wantVideoID:  "dQw4w9WgXcQ",
		},
		{
			name:         "valid TikTok",
			url:          "https://www.tiktok.com/@user/video/1234567890123456789",
			wantValid:    true,
			wantPlatform: PlatformTikTok,
			wantVideoID:  "1234567890123456789",
		},
		{
			name:         "valid Facebook",
			url:          "https://fb.watch/abc123",
			wantValid:    true,
			wantPlatform: PlatformFacebook,
			wantVideoID:  "abc123",
		},
		{
			name:       "empty string",
			url:        "",
			wantValid:  false,
			wantReason: ReasonEmptyInput,
		},
		{
			name:       "whitespace only",
			url:        "   \t ",
			wantValid:  false,
			wantReason: ReasonEmptyInput,
		},
		{
			name:       "unsupported platform",
			url:        "https://vimeo.com/123",
			wantValid:  false,
			wantReason: ReasonUnsupportedPlatform,
		},
		{
			name:       "garbage input",
			url:        "not a url",
			wantValid:  false,
			wantReason: ReasonUnsupportedPlatform,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := Validate(tc.url)
			if v.Valid != tc.wantValid {
				t.Fatalf("Validate(%q).Valid = %v, want %v", tc.url, v.Valid, tc.wantValid)
			}
			if tc.wantValid {
				if v.Platform != tc.wantPlatform || v.VideoID != tc.wantVideoID {
					t.Errorf("Validate(%q) = {%q %q}, want {%q %q}", tc.url, v.Platform, v.VideoID, tc.wantPlatform, tc.wantVideoID)
				}
				return
			}
			if v.Reason != tc.wantReason {
				t.Errorf("Validate(%q).Reason = %q, want %q", tc.url, v.Reason, tc.wantReason)
			}
			if v.Message == "" {
				t.Errorf("Validate(%q) failed without a user-facing message", tc.url)
			}
		})
	}
}

func TestValidateShorts(t *testing.T) {
	testCases := []struct {
		name        string
		url         string
		wantValid   bool
		wantVideoID string
		wantReason  Reason
	}{
		{
			name:        "Shorts URL accepted",
			url:         "https://youtube.com/shorts/dQw4w9WgXcQ",
			wantValid:   true,
			wantVideoID: "dQw4w9WgXcQ",
		},
		{
			name:        "Shorts URL without scheme accepted",
			url:         "youtube.com/shorts/dQw4w9WgXcQ",
			wantValid:   true,
			wantVideoID: "dQw4w9WgXcQ",
		},
		{
			name:       "regular watch URL rejected with Shorts-specific reason",
			url:        "https://youtube.com/watch?v=dQw4w9WgXcQ",
			wantValid:  false,
			wantReason: ReasonShortsRequired,
		},
		{
			name:       "youtu.be link rejected with Shorts-specific reason",
			url:        "https://youtu.be/dQw4w9WgXcQ",
			wantValid:  false,
			wantReason: ReasonShortsRequired,
		},
		{
			name:       "TikTok URL rejected with generic reason",
			url:        "https://www.tiktok.com/@user/video/1234567890123456789",
			wantValid:  false,
			wantReason: ReasonUnsupportedPlatform,
		},
		{
			name:       "garbage rejected with generic reason",
			url:        "not a url",
			wantValid:  false,
			wantReason: ReasonUnsupportedPlatform,
		},
		{
			name:       "empty input",
			url:        "",
			wantValid:  false,
			wantReason: ReasonEmptyInput,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := ValidateShorts(tc.url)
			if v.Valid != tc.wantValid {
				t.Fatalf("ValidateShorts(%q).Valid = %v, want %v", tc.url, v.Valid, tc.wantValid)
			}
			if tc.wantValid {
				if v.VideoID != tc.wantVideoID {
					t.Errorf("ValidateShorts(%q).VideoID = %q, want %q", tc.url, v.VideoID, tc.wantVideoID)
				}
				return
			}
			if v.Reason != tc.wantReason {
				t.Errorf("ValidateShorts(%q).Reason = %q, want %q", tc.url, v.Reason, tc.wantReason)
			}
		})
	}
}

// The Shorts-only rejection of a recognizable YouTube video must read
// differently from the generic unrecognized-URL message.
func TestValidateShortsDistinctMessages(t *testing.T) {
	regular := ValidateShorts("https://youtube.com/watch?v=dQw4w9WgXcQ")
	garbage := ValidateShorts("not a url")

	if regular.Valid || garbage.Valid {
		t.Fatal("expected both inputs to be rejected")
	}
	if regular.Message == garbage.Message {
		t.Error("Shorts-only rejection must use a distinct message from the generic one")
	}
	if !strings.Contains(regular.Message, "Shorts") {
		t.Errorf("Shorts-only message should mention Shorts, got %q", regular.Message)
	}
}
