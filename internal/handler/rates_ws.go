package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"goldbook/internal/pkg/errs"
	"goldbook/internal/pkg/limiter"
	"goldbook/internal/pkg/logx"
	"goldbook/internal/pkg/resp"
)

// HandleRatesSocket upgrades the connection and attaches it to the rate broadcast
// hub. The subscriber receives the current quote immediately, then every refreshed
// quote until it disconnects.
func HandleRatesSocket(deps *AppDeps, upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("Rate stream rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		if _, customErr := currentSession(deps, r); customErr != nil {
			logx.Info("Rate stream rejected: No valid session.", "ip", ip)
			resp.RespondError(w, r, customErr)
			return
		}

		initial := deps.Rates.Current(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		logx.Info("Rate stream subscriber attached", "ip", ip)

		deps.RatesHub.Attach(conn, initial)
	}
}
