package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	uaIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15"
	uaAndroid = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36"
	uaWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	uaMac     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name         string
		hostPlatform string
		userAgent    string
		want         Platform
		wantMobile   bool
		wantDesktop  bool
	}{
		{"ios host string", "ios", uaIPhone, PlatformIOS, true, false},
		{"android host string", "android", uaAndroid, PlatformAndroid, true, false},
		{"android_x host string", "android_x", uaAndroid, PlatformAndroid, true, false},
		{"tdesktop host string", "tdesktop", uaWindows, PlatformDesktop, false, true},
		{"macos host string", "macos", uaMac, PlatformDesktop, false, true},
		{"weba host string", "weba", uaWindows, PlatformWeb, false, true},
		{"webk host string", "webk", uaMac, PlatformWeb, false, true},
		{"host string wins over user agent", "ios", uaWindows, PlatformIOS, true, false},
		{"uppercase host string", "ANDROID", uaAndroid, PlatformAndroid, true, false},
		{"padded host string", " tdesktop ", uaWindows, PlatformDesktop, false, true},
		{"empty host falls back to iphone ua", "", uaIPhone, PlatformIOS, true, false},
		{"empty host falls back to android ua", "", uaAndroid, PlatformAndroid, true, false},
		{"empty host falls back to windows ua", "", uaWindows, PlatformDesktop, false, true},
		{"empty host falls back to mac ua", "", uaMac, PlatformDesktop, false, true},
		{"unrecognized host falls back to ua", "fridge", uaAndroid, PlatformAndroid, true, false},
		{"nothing recognizable", "", "curl/8.4.0", PlatformUnknown, false, false},
		{"both empty", "", "", PlatformUnknown, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Detect(tt.hostPlatform, "8.0", tt.userAgent)

			assert.Equal(t, tt.want, info.Platform)
			assert.Equal(t, tt.wantMobile, info.IsMobile)
			assert.Equal(t, tt.wantDesktop, info.IsDesktop)
			assert.Equal(t, tt.hostPlatform, info.RawPlatform)
			assert.Equal(t, "8.0", info.Version)
		})
	}
}

func TestDetectNeverMobileAndDesktop(t *testing.T) {
	hostPlatforms := []string{"", "ios", "android", "android_x", "tdesktop", "macos", "weba", "webk", "web", "garbage"}
	userAgents := []string{"", uaIPhone, uaAndroid, uaWindows, uaMac, "curl/8.4.0"}

	for _, hp := range hostPlatforms {
		for _, ua := range userAgents {
			info := Detect(hp, "", ua)
			assert.False(t, info.IsMobile && info.IsDesktop,
				"platform=%q ua=%q classified as both mobile and desktop", hp, ua)
		}
	}
}

func TestDetectAndroidUAOnLinuxDesktop(t *testing.T) {
	// Android user agents contain "linux"; the mobile check has to win.
	info := Detect("", "", uaAndroid)

	assert.Equal(t, PlatformAndroid, info.Platform)
	assert.True(t, info.IsMobile)
	assert.False(t, info.IsDesktop)
}
