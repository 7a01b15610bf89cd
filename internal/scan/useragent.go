package scan

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknown = "Unknown"

// ParseUserAgent classifies the scanning device. Best effort only:
// anything unrecognized falls back to "desktop"/"Unknown".
func ParseUserAgent(raw string) DeviceInfo {
	info := DeviceInfo{
		DeviceType: "desktop",
		Browser:    unknown,
		OS:         unknown,
	}

	if raw == "" {
		return info
	}

	ua := useragent.New(raw)

	switch {
	case strings.Contains(raw, "iPad") || strings.Contains(strings.ToLower(raw), "tablet"):
		info.DeviceType = "tablet"
	case ua.Mobile():
		info.DeviceType = "mobile"
	}

	if name, _ := ua.Browser(); name != "" {
		info.Browser = name
	}

	if os := ua.OS(); os != "" {
		info.OS = os
	}

	return info
}
