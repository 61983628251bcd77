package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTheme(t *testing.T) {
	tests := []struct {
		scheme string
		want   Theme
		ok     bool
	}{
		{"light", ThemeLight, true},
		{"dark", ThemeDark, true},
		{"DARK", ThemeDark, true},
		{" light ", ThemeLight, true},
		{"sepia", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeTheme(tt.scheme)
		assert.Equal(t, tt.ok, ok, "scheme %q", tt.scheme)
		assert.Equal(t, tt.want, got, "scheme %q", tt.scheme)
	}
}

func TestApplyThemeIdempotent(t *testing.T) {
	once := httptest.NewRecorder()
	ApplyTheme(once, ThemeDark)

	twice := httptest.NewRecorder()
	ApplyTheme(twice, ThemeDark)
	ApplyTheme(twice, ThemeDark)

	onceCookies := once.Result().Cookies()
	twiceCookies := twice.Result().Cookies()
	require.Len(t, onceCookies, 1)
	require.NotEmpty(t, twiceCookies)

	last := twiceCookies[len(twiceCookies)-1]
	assert.Equal(t, onceCookies[0].Name, last.Name)
	assert.Equal(t, onceCookies[0].Value, last.Value)
	assert.Equal(t, "dark", last.Value)
}

func TestApplyThemeLastWriteWins(t *testing.T) {
	w := httptest.NewRecorder()
	ApplyTheme(w, ThemeDark)
	ApplyTheme(w, ThemeLight)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "light", cookies[len(cookies)-1].Value)
}

func TestCurrentTheme(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, ThemeLight, CurrentTheme(r))

	r.AddCookie(&http.Cookie{Name: ThemeCookieName, Value: "dark"})
	assert.Equal(t, ThemeDark, CurrentTheme(r))

	garbled := httptest.NewRequest(http.MethodGet, "/", nil)
	garbled.AddCookie(&http.Cookie{Name: ThemeCookieName, Value: "sepia"})
	assert.Equal(t, ThemeLight, CurrentTheme(garbled))
}
