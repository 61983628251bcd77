/*
Package telegram normalizes the identity and platform data handed to the application
by the Telegram WebApp runtime.

Different Telegram client builds expose the login payload in divergent shapes: mobile
clients reliably populate the structured user object, while some desktop builds only
carry identity inside the raw URL-encoded init string. This package classifies the
client platform, reconciles both payload shapes into one normalized identity, and
verifies the payload signature against the bot token.
*/
package telegram

import (
	"strings"

	"goldbook/internal/pkg/logx"
)

// Platform is the normalized platform bucket for a page load.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformDesktop Platform = "desktop"
	PlatformWeb     Platform = "web"
	PlatformUnknown Platform = "unknown"
)

// PlatformInfo captures the platform classification for one page load.
// Immutable once computed. IsMobile and IsDesktop are never both true;
// both are false only when Platform is unknown.
type PlatformInfo struct {
	// Platform is the normalized classification bucket.
	Platform Platform `json:"platform"`

	// RawPlatform is the host client's own platform string ("android", "tdesktop", ...),
	// preserved verbatim because the identity record reports it back to clients.
	RawPlatform string `json:"rawPlatform"`

	IsMobile  bool `json:"isMobile"`
	IsDesktop bool `json:"isDesktop"`

	// UserAgent is the browser identity string, kept as capability metadata.
	UserAgent string `json:"userAgent"`

	// Version is the host client's reported version string, if any.
	Version string `json:"version"`
}

// Detect classifies the runtime from the host client's advertised platform string and
// the browser user agent. The host platform field wins over user-agent heuristics
// because it is supplied by the embedding client itself. Absence of both degrades to
// unknown; Detect has no failure mode.
func Detect(hostPlatform, version, userAgent string) PlatformInfo {
	info := PlatformInfo{
		Platform:    PlatformUnknown,
		RawPlatform: hostPlatform,
		UserAgent:   userAgent,
		Version:     version,
	}

	switch strings.ToLower(strings.TrimSpace(hostPlatform)) {
	case "ios":
		info.Platform = PlatformIOS
		info.IsMobile = true
	case "android", "android_x":
		info.Platform = PlatformAndroid
		info.IsMobile = true
	case "tdesktop", "macos":
		info.Platform = PlatformDesktop
		info.IsDesktop = true
	case "weba", "webk", "web":
		info.Platform = PlatformWeb
		info.IsDesktop = true
	default:
		info.classifyByUserAgent()
	}

	logx.Debug("Platform detected",
		"platform", string(info.Platform),
		"raw_platform", info.RawPlatform,
		"is_mobile", info.IsMobile,
		"is_desktop", info.IsDesktop,
		"version", info.Version,
	)

	return info
}

// classifyByUserAgent is the fallback classification for hosts that report no
// recognizable platform string. Mobile OS fragments are checked first; a
// recognizable desktop OS maps to desktop; anything else stays unknown.
func (info *PlatformInfo) classifyByUserAgent() {
	ua := strings.ToLower(info.UserAgent)

	switch {
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		info.Platform = PlatformIOS
		info.IsMobile = true
	case strings.Contains(ua, "android"):
		info.Platform = PlatformAndroid
		info.IsMobile = true
	case strings.Contains(ua, "windows"), strings.Contains(ua, "macintosh"),
		strings.Contains(ua, "x11"), strings.Contains(ua, "linux"):
		info.Platform = PlatformDesktop
		info.IsDesktop = true
	}
}
