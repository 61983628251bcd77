package ui

import (
	"net/http"
	"strings"
	"time"
)

// Theme is the document color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeCookieName is the persisted theme preference key the page layer reads on the
// next load.
const ThemeCookieName = "goldbook_theme"

// themeCookieMaxAge keeps the preference for a year; re-applied on every change.
const themeCookieMaxAge = int(365 * 24 * time.Hour / time.Second)

// NormalizeTheme parses a host-reported color scheme. Unrecognized schemes are
// rejected rather than defaulted, so a garbled event cannot flip the theme.
func NormalizeTheme(scheme string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(scheme))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

// ApplyTheme persists the theme preference on the response. Idempotent: applying the
// same scheme twice produces an identical cookie, so the document state after two
// applications equals the state after one. Concurrent changes resolve to the last
// write, matching the host's event ordering.
func ApplyTheme(w http.ResponseWriter, theme Theme) {
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookieName,
		Value:    string(theme),
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

// CurrentTheme reads the persisted preference from the request, defaulting to light.
func CurrentTheme(r *http.Request) Theme {
	cookie, err := r.Cookie(ThemeCookieName)
	if err != nil {
		return ThemeLight
	}
	if theme, ok := NormalizeTheme(cookie.Value); ok {
		return theme
	}
	return ThemeLight
}
