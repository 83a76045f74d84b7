package platform

import "strings"

// Reason tags why validation failed. Callers branch on the tag instead of
// comparing message text.
type Reason string

const (
	ReasonEmptyInput          Reason = "empty_input"
	ReasonUnsupportedPlatform Reason = "unsupported_platform"
	ReasonShortsRequired      Reason = "shorts_required"
)

// Validation is the structured outcome handed back to forms. When Valid is
// false, Reason and Message explain why.
type Validation struct {
	Valid    bool
	Platform Platform
	VideoID  string
	Reason   Reason
	Message  string
}

const (
	msgEmptyInput          = "Please enter a video URL."
	msgUnsupportedPlatform = "This URL is not recognized. Supported platforms are YouTube, TikTok and Facebook, e.g. https://youtube.com/shorts/... or https://www.tiktok.com/@user/video/..."
	msgShortsRequired      = "This is a regular YouTube video. Only YouTube Shorts links are accepted here, e.g. https://youtube.com/shorts/..."
	msgShortsInvalid       = "This URL is not a YouTube Shorts link. Please paste a link like https://youtube.com/shorts/..."
)

// Validate checks a user-supplied URL against every supported platform.
// Empty input and unrecognized URLs are reported as structured failures.
func Validate(raw string) Validation {
	if strings.TrimSpace(raw) == "" {
		return Validation{Reason: ReasonEmptyInput, Message: msgEmptyInput}
	}

	d := Detect(raw)
	if d.Platform == PlatformUnknown {
		return Validation{Reason: ReasonUnsupportedPlatform, Message: msgUnsupportedPlatform}
	}

	return Validation{Valid: true, Platform: d.Platform, VideoID: d.VideoID}
}

// ValidateShorts is the strict variant for contexts that only accept
// YouTube Shorts. A valid regular YouTube video gets a distinct message
// explaining the Shorts-only requirement; everything else falls back to the
// generic guidance.
func ValidateShorts(raw string) Validation {
	if strings.TrimSpace(raw) == "" {
		return Validation{Reason: ReasonEmptyInput, Message: msgEmptyInput}
	}

	if videoID, ok := DetectShorts(raw); ok {
		return Validation{Valid: true, Platform: PlatformYouTube, VideoID: videoID}
	}

	d := Detect(raw)
	if d.Platform == PlatformYouTube {
		// Recognizable but wrong type: tell the user why it was rejected.
		return Validation{Reason: ReasonShortsRequired, Message: msgShortsRequired}
	}

	return Validation{Reason: ReasonUnsupportedPlatform, Message: msgShortsInvalid}
}
