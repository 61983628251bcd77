package handler

import (
	"net/http"

	"goldbook/internal/app/ui"
	"goldbook/internal/pkg/errs"
	"goldbook/internal/pkg/req"
	"goldbook/internal/pkg/resp"
)

// HandleAffordances returns the navigation affordances for a route. Affordances that
// require an authenticated identity are only granted once a session is established;
// an anonymous caller gets the unauthenticated shape (no primary action).
func HandleAffordances(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Query().Get("route")
		if route == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		affordances := ui.ConfigureForRoute(route)

		authenticated := false
		if _, customErr := currentSession(deps, r); customErr == nil {
			authenticated = true
		} else {
			// The primary action submits data; never offer it to an anonymous caller.
			affordances.ShowPrimary = false
			affordances.PrimaryLabel = ""
		}

		resp.RespondSuccess(w, r, map[string]any{
			"authenticated": authenticated,
			"affordances":   affordances,
			"theme":         ui.CurrentTheme(r),
		})
	}
}

// ThemeInput carries a host-reported color scheme change.
type ThemeInput struct {
	Scheme string `json:"scheme"`
}

// HandleTheme persists a theme change. Idempotent; reapplying the current scheme is
// indistinguishable from the first application.
func HandleTheme(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ThemeInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		theme, ok := ui.NormalizeTheme(input.Scheme)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		ui.ApplyTheme(w, theme)

		resp.RespondSuccess(w, r, map[string]any{"theme": theme})
	}
}
