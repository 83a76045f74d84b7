package platform

import "strings"

// Detection is the result of recognizing a video URL. VideoID is non-empty
// exactly when Platform is not PlatformUnknown.
type Detection struct {
	Platform Platform
	VideoID  string
}

// Detect recognizes which platform a URL belongs to and extracts the
// platform-native video identifier. Tables are tried in a fixed priority
// order and the first match wins. Unrecognized input is a normal outcome,
// reported as PlatformUnknown, never an error.
func Detect(raw string) Detection {
	url := strings.TrimSpace(raw)
	if url == "" {
		return Detection{Platform: PlatformUnknown}
	}

	for _, table := range detectionOrder {
		for _, pattern := range table.patterns {
			if m := pattern.FindStringSubmatch(url); m != nil {
				return Detection{Platform: table.platform, VideoID: m[1]}
			}
		}
	}

	return Detection{Platform: PlatformUnknown}
}

// DetectShorts reports whether the URL is specifically a YouTube Shorts
// link, returning the video id when it is.
func DetectShorts(raw string) (string, bool) {
	url := strings.TrimSpace(raw)
	for _, pattern := range youtubeShortsPatterns.patterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}
