package platform

import (
	"testing"
)

func TestDetect(t *testing.T) {
	testCases := []struct {
		name         string
		url          string
		wantPlatform Platform
		wantVideoID  string
	}{
		{
			name:         "YouTube Shorts",
			url:          "https://youtube.com/shorts/dQw4w9WgXcQ",
			wantPlatform: PlatformYouTube,
			wantVideoID:  "dQw4w9WgXcQ",
		},
		{
			name:         "YouTube Shorts with www",
			url:          "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			wantPlatform: PlatformYouTube,
			wantVideoID:  "dQw4w9WgXcQ",
		},
		{
			name:         "YouTube Shorts without scheme",
			url:          "youtube.com/shorts/dQw4w9WgXcQ",
			wantPlatform: PlatformYouTube,
			wantVideoID:  "dQw4w9WgXcQ",
		},
		{
			name:         "YouTube Shorts mobile subdomain",
			url:          "https://m.youtube.com/shorts/dQw4w9WgXcQ",
			wantPlatform: PlatformYouTube,
			wantVideoID:  "dQw4w9WgXcQ",
		},
		{
			name:         "YouTube watch URL",
			url:          "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantPlatform: PlatformYouTube,
			wantVideoID:  "dQw4w9WgXcQ",
		},
		{
			name:         "YouTube watch URL with extra params",
			url:          "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ",
			wantPlatform: PlatformYouTube,
			wantVideoID:  "dQw4w9WgXcQ",
		},
		{
			name:         "YouTube short link",
			url:          "https://youtu.be/dQw4w9WgXcQ",
			wantPlatform: PlatformYouTube,
			wantVideoID:  "dQw4w9WgXcQ",
		},
		{
			name:         "YouTube embed URL",
			url:          "https://www.youtube.com/embed/dQw4w9WgXcQ",
			wantPlatform: PlatformYouTube,
			wantVideoID:  "dQw4w9WgXcQ",
		},
		{
			name:         "TikTok video URL",
			url:          "https://www.tiktok.com/@user/video/1234567890123456789",
			wantPlatform: PlatformTikTok,
			wantVideoID:  "1234567890123456789",
		},
		{
			name:         "TikTok short link vm",
			url:          "https://vm.tiktok.com/ZM8abcdef",
			wantPlatform: PlatformTikTok,
			wantVideoID:  "ZM8abcdef",
		},
		{
			name:         "TikTok short link t path",
			url:          "https://www.tiktok.com/t/ZT8abcdef",
			wantPlatform: PlatformTikTok,
			wantVideoID:  "ZT8abcdef",
		},
		{
			name:         "Facebook page video",
			url:          "https://www.facebook.com/somepage/videos/123456789",
			wantPlatform: PlatformFacebook,
			wantVideoID:  "123456789",
		},
		{
			name:         "Facebook watch URL",
			url:          "https://www.facebook.com/watch?v=123456789",
			wantPlatform: PlatformFacebook,
			wantVideoID:  "123456789",
		},
		{
			name:         "Facebook reel",
			url:          "https://www.facebook.com/reel/123456789",
			wantPlatform: PlatformFacebook,
			wantVideoID:  "123456789",
		},
		{
			name:         "fb.watch short link",
			url:          "https://fb.watch/abc123",
			wantPlatform: PlatformFacebook,
			wantVideoID:  "abc123",
		},
		{
			name:         "surrounding whitespace is trimmed",
			url:          "  https://youtu.be/dQw4w9WgXcQ  ",
			wantPlatform: PlatformYouTube,
			wantVideoID:  "dQw4w9WgXcQ",
		},
		{
			name:         "unsupported platform",
			url:          "https://vimeo.com/123",
			wantPlatform: PlatformUnknown,
		},
		{
			name:         "not a URL at all",
			url:          "not a url",
			wantPlatform: PlatformUnknown,
		},
		{
			name:         "empty string",
			url:          "",
			wantPlatform: PlatformUnknown,
		},
		{
			name:         "whitespace only",
			url:          "   ",
			wantPlatform: PlatformUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := Detect(tc.url)
			if d.Platform != tc.wantPlatform {
				t.Errorf("Detect(%q).Platform = %q, want %q", tc.url, d.Platform, tc.wantPlatform)
			}
			if d.VideoID != tc.wantVideoID {
				t.Errorf("Detect(%q).VideoID = %q, want %q", tc.url, d.VideoID, tc.wantVideoID)
			}
		})
	}
}

// A non-unknown platform always comes with a non-empty video id, and an
// unknown platform never carries one.
func TestDetectInvariant(t *testing.T) {
	inputs := []string{
		"https://youtube.com/shorts/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.tiktok.com/@user/video/1234567890123456789",
		"https://fb.watch/abc123",
		"https://vimeo.com/123",
		"not a url",
		"",
	}

	for _, input := range inputs {
		d := Detect(input)
		if d.Platform == PlatformUnknown && d.VideoID != "" {
			t.Errorf("Detect(%q): unknown platform with video id %q", input, d.VideoID)
		}
		if d.Platform != PlatformUnknown && d.VideoID == "" {
			t.Errorf("Detect(%q): platform %q with empty video id", input, d.Platform)
		}
	}
}

func TestDetectIdempotent(t *testing.T) {
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	first := Detect(url)
	second := Detect(url)
	if first != second {
		t.Errorf("Detect is not idempotent: %+v vs %+v", first, second)
	}
}

func TestDetectShortsPriority(t *testing.T) {
	videoID, ok := DetectShorts("https://youtube.com/shorts/dQw4w9WgXcQ")
	if !ok || videoID != "dQw4w9WgXcQ" {
		t.Errorf("DetectShorts on a Shorts URL = (%q, %v), want (dQw4w9WgXcQ, true)", videoID, ok)
	}

	if _, ok := DetectShorts("https://www.youtube.com/watch?v=dQw4w9WgXcQ"); ok {
		t.Error("DetectShorts matched a regular watch URL")
	}

	if _, ok := DetectShorts("https://www.tiktok.com/@user/video/123"); ok {
		t.Error("DetectShorts matched a TikTok URL")
	}
}

func TestDisplay(t *testing.T) {
	for _, p := range Supported() {
		info := Display(p)
		if info.Name == "" || info.Color == "" {
			t.Errorf("Display(%q) returned incomplete info: %+v", p, info)
		}
	}

	unknown := Display(PlatformUnknown)
	if unknown.Name == "" {
		t.Error("Display(unknown) must return a defined fallback record")
	}

	if Display(PlatformYouTube).Name != "YouTube" {
		t.Errorf("Display(youtube).Name = %q, want YouTube", Display(PlatformYouTube).Name)
	}
}
