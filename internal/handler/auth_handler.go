/*
Package handler provides HTTP handler functions for session negotiation, the gold
ledger, administration, exchange rates, and UI affordances.
*/
package handler

import (
	"context"
	"net/http"

	"goldbook/internal/app/session"
	"goldbook/internal/app/telegram"
	"goldbook/internal/pkg/auth/jwt"
	"goldbook/internal/pkg/errs"
	"goldbook/internal/pkg/logx"
	"goldbook/internal/pkg/randx"
	"goldbook/internal/pkg/req"
	"goldbook/internal/pkg/resp"
)

// AuthInput is the body of a Telegram login attempt: the init payload in both shapes
// the host exposes plus the client's platform self-description.
type AuthInput struct {
	InitData    telegram.RawInitPayload `json:"initData"`
	InitDataRaw string                  `json:"initDataRaw"`
	Platform    string                  `json:"platform"`
	Version     string                  `json:"version"`
	UserAgent   string                  `json:"userAgent"`
}

// sessionResponse is the session shape returned to clients after negotiation
// and on /api/me.
type sessionResponse struct {
	TelegramID  int64  `json:"telegramId"`
	FirstName   string `json:"firstName"`
	Username    string `json:"username"`
	PhotoURL    string `json:"photoUrl"`
	Role        string `json:"role"`
	Whitelisted bool   `json:"whitelisted"`
	Platform    string `json:"platform"`
	ExpiresAt   string `json:"expiresAt"`
}

// HandleTelegramAuth negotiates a session from a Telegram WebApp init payload.
// Detection and extraction run synchronously; the negotiation exchange is the only
// suspension point and runs under an explicit timeout.
func HandleTelegramAuth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input AuthInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		userAgent := input.UserAgent
		if userAgent == "" {
			userAgent = r.UserAgent()
		}

		platform := telegram.Detect(input.Platform, input.Version, userAgent)

		payload := input.InitData
		if payload.Raw == "" {
			payload.Raw = input.InitDataRaw
		}

		identity := telegram.Extract(payload, platform)
		if identity.RequestID == "" {
			// Hosts that omit query_id still get a taggable negotiation attempt.
			identity.RequestID = randx.RequestID()
		}
		if identity.Empty() {
			// Signaled unauthenticated state; negotiation is never attempted.
			logx.Info("Login attempt without extractable identity",
				"platform", string(platform.Platform))
			resp.RespondError(w, r, errs.NewError(errs.ErrIdentityMissing))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), negotiationTimeout)
		defer cancel()

		sess, token, customErr := deps.Negotiator.Authenticate(ctx, identity, platform, payload.Raw)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token":    token,
			"redirect": "/dashboard",
			"session":  toSessionResponse(sess),
		})
	}
}

// HandleLogout destroys the caller's session.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := jwt.GetPayloadFromContext(r)
		if payload == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if customErr := deps.Negotiator.Logout(r.Context(), payload.TelegramID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"redirect": "/login"})
	}
}

// HandleMe returns the caller's active session, revalidating it opportunistically.
func HandleMe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, customErr := currentSession(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"session": toSessionResponse(sess),
		})
	}
}

func toSessionResponse(sess session.Session) sessionResponse {
	return sessionResponse{
		TelegramID:  sess.TelegramID,
		FirstName:   sess.FirstName,
		Username:    sess.Username,
		PhotoURL:    sess.PhotoURL,
		Role:        string(sess.Role),
		Whitelisted: sess.Whitelisted,
		Platform:    sess.Platform,
		ExpiresAt:   sess.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
