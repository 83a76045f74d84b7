package platform

// DisplayInfo is the badge metadata the UI shows next to a recognized URL.
type DisplayInfo struct {
	Name            string `json:"name"`
	Icon            string `json:"icon"`
	Color           string `json:"color"`
	BackgroundColor string `json:"background_color"`
}

var displayInfo = map[Platform]DisplayInfo{
	PlatformYouTube: {
		Name:            "YouTube",
		Icon:            "youtube",
		Color:           "#FF0000",
		BackgroundColor: "#FEF2F2",
	},
	PlatformTikTok: {
		Name:            "TikTok",
		Icon:            "tiktok",
		Color:           "#010101",
		BackgroundColor: "#F4F4F5",
	},
	PlatformFacebook: {
		Name:            "Facebook",
		Icon:            "facebook",
		Color:           "#1877F2",
		BackgroundColor: "#EFF6FF",
	},
}

var unknownDisplayInfo = DisplayInfo{
	Name:            "Unknown",
	Icon:            "link",
	Color:           "#6B7280",
	BackgroundColor: "#F9FAFB",
}

// Display returns badge metadata for a platform. Every value, including
// PlatformUnknown, resolves to a defined record.
func Display(p Platform) DisplayInfo {
	if info, ok := displayInfo[p]; ok {
		return info
	}
	return unknownDisplayInfo
}
