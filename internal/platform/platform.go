package platform

import "regexp"

// Platform identifies the video service a URL points to.
type Platform string

const (
	PlatformYouTube  Platform = "youtube"
	PlatformTikTok   Platform = "tiktok"
	PlatformFacebook Platform = "facebook"
	PlatformUnknown  Platform = "unknown"
)

// patternTable holds the URL shapes of one platform. Each pattern captures
// the video identifier in its first capture group.
type patternTable struct {
	platform Platform
	patterns []*regexp.Regexp
}

// YouTube Shorts has its own table so it can be tried before regular
// YouTube; the Shorts-only validator depends on that ordering.
var youtubeShortsPatterns = patternTable{
	platform: PlatformYouTube,
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	},
}

var youtubePatterns = patternTable{
	platform: PlatformYouTube,
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/watch\?(?:[^#\s]*&)?v=([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/v/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`^(?:https?://)?youtu\.be/([a-zA-Z0-9_-]{11})`),
	},
}

var tiktokPatterns = patternTable{
	platform: PlatformTikTok,
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?tiktok\.com/@[\w.-]+/video/(\d+)`),
		regexp.MustCompile(`^(?:https?://)?(?:vm|vt)\.tiktok\.com/([A-Za-z0-9]+)`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.)?tiktok\.com/t/([A-Za-z0-9]+)`),
	},
}

var facebookPatterns = patternTable{
	platform: PlatformFacebook,
	patterns: []*regexp.Regexp{
		regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.|web\.)?facebook\.com/[\w.-]+/videos/(\d+)`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?facebook\.com/watch/?\?(?:[^#\s]*&)?v=(\d+)`),
		regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?facebook\.com/reel/(\d+)`),
		regexp.MustCompile(`^(?:https?://)?fb\.watch/([A-Za-z0-9_-]+)`),
	},
}

// detectionOrder fixes the priority across platforms. Shorts comes before
// regular YouTube on purpose; an unordered map would break that guarantee.
var detectionOrder = []patternTable{
	youtubeShortsPatterns,
	youtubePatterns,
	tiktokPatterns,
	facebookPatterns,
}

// Supported lists the platforms the detector recognizes.
func Supported() []Platform {
	return []Platform{PlatformYouTube, PlatformTikTok, PlatformFacebook}
}
