package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"goldbook/internal/app/db"
	"goldbook/internal/pkg/errs"
	"goldbook/internal/pkg/logx"
	"goldbook/internal/pkg/req"
	"goldbook/internal/pkg/resp"
)

// HandleListUsers returns every user for the admin panel.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, customErr := currentSession(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if !sess.IsAdmin() {
			resp.RespondError(w, r, errs.NewError(errs.ErrAdminRequired))
			return
		}

		users, err := deps.Users.ListUsers(r.Context())
		if err != nil {
			logx.Error(err, "Failed to list users")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		views := make([]map[string]any, 0, len(users))
		for _, u := range users {
			views = append(views, toUserResponse(u))
		}

		resp.RespondSuccess(w, r, map[string]any{"users": views})
	}
}

// WhitelistInput selects the whitelist action to apply.
type WhitelistInput struct {
	Action string `json:"action"`
}

// HandleWhitelist adds or removes a user from the whitelist. The bot owner cannot be
// removed.
func HandleWhitelist(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, customErr := currentSession(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if !sess.IsAdmin() {
			resp.RespondError(w, r, errs.NewError(errs.ErrAdminRequired))
			return
		}

		userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var input WhitelistInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var whitelisted bool
		switch input.Action {
		case "add":
			whitelisted = true
		case "remove":
			whitelisted = false
		default:
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		target, err := deps.Users.GetUserByID(r.Context(), userID)
		if err != nil {
			if db.IsNoRows(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}
			logx.Error(err, "Failed to fetch user for whitelist change", "user_id", userID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if !whitelisted && deps.Config.BotOwnerID > 0 && target.TelegramID == deps.Config.BotOwnerID {
			resp.RespondError(w, r, errs.NewError(errs.ErrOwnerProtected))
			return
		}

		updated, err := deps.Users.SetWhitelisted(r.Context(), userID, whitelisted)
		if err != nil {
			logx.Error(err, "Failed to update whitelist", "user_id", userID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		logx.Info("Whitelist updated",
			"admin_telegram_id", sess.TelegramID,
			"target_user_id", userID,
			"whitelisted", whitelisted,
		)

		resp.RespondSuccess(w, r, map[string]any{"user": toUserResponse(updated)})
	}
}

func toUserResponse(u db.User) map[string]any {
	var lastLogin any
	if u.LastLoginAt != nil {
		lastLogin = u.LastLoginAt.UTC().Format(time.RFC3339)
	}

	return map[string]any{
		"id":             u.ID,
		"telegram_id":    u.TelegramID,
		"full_name":      u.FullName(),
		"username":       u.Username,
		"photo_url":      u.PhotoURL,
		"is_whitelisted": u.IsWhitelisted,
		"is_admin":       u.IsAdmin,
		"last_login_at":  lastLogin,
	}
}
