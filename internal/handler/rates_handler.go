package handler

import (
	"net/http"

	"goldbook/internal/pkg/resp"
)

// HandleExchangeRates returns the current exchange rates. Public, matching the page
// layer's unauthenticated rate ticker.
func HandleExchangeRates(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quote := deps.Rates.Current(r.Context())

		resp.RespondSuccess(w, r, map[string]any{
			"USD":        quote.USDPerCAD,
			"IRR":        quote.IRRPerCAD,
			"sources":    quote.Sources,
			"fetched_at": quote.FetchedAt,
		})
	}
}
