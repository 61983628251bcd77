/*
Package handler provides the HTTP handlers and routing setup for the GoldBook server.

This file defines the main Router, applying middleware like logging, CORS, and
IP-based rate limiting before delegating requests to specific handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"goldbook/internal/pkg/auth/jwt"
	"goldbook/internal/pkg/limiter"
	"goldbook/internal/pkg/logx"
	"goldbook/internal/pkg/resp"
)

const (
	AuthRate    = 0.2
	AuthBurst   = 5
	TradeRate   = 0.5
	TradeBurst  = 10
	StreamRate  = 0.2
	StreamBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and
// per-route middleware before delegating to the API and WebSocket handlers.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	tradeLimiter := limiter.NewIPRateLimiter(rate.Limit(TradeRate), TradeBurst)
	streamLimiter := limiter.NewIPRateLimiter(rate.Limit(StreamRate), StreamBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "GoldBook Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.SessionSecret))

		api.Route("/auth", func(auth chi.Router) {
			rateLimitedAuth := authLimiter.Middleware(HandleTelegramAuth(deps))
			auth.Post("/telegram", http.HandlerFunc(rateLimitedAuth.ServeHTTP))
			auth.Post("/logout", HandleLogout(deps))
		})

		api.Get("/me", HandleMe(deps))
		api.Get("/dashboard", HandleDashboard(deps))

		rateLimitedPurchase := tradeLimiter.Middleware(HandleCreatePurchase(deps))
		api.Post("/purchases", http.HandlerFunc(rateLimitedPurchase.ServeHTTP))
		api.Get("/purchases", HandleListPurchases(deps))
		rateLimitedSale := tradeLimiter.Middleware(HandleCreateSale(deps))
		api.Post("/sales", http.HandlerFunc(rateLimitedSale.ServeHTTP))
		api.Get("/sales", HandleListSales(deps))

		api.Get("/exchange-rates", HandleExchangeRates(deps))

		api.Route("/ui", func(uir chi.Router) {
			uir.Get("/affordances", HandleAffordances(deps))
			uir.Post("/theme", HandleTheme(deps))
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Get("/users", HandleListUsers(deps))
			admin.Post("/users/{id}/whitelist", HandleWhitelist(deps))
		})
	})

	r.With(jwt.IdentityExtractorMiddleware(deps.Config.SessionSecret)).
		Get("/ws/rates", HandleRatesSocket(deps, wsUpgrader, streamLimiter))

	return r
}
