package handler

import (
	"context"
	"net/http"
	"time"

	"goldbook/internal/app/db"
	"goldbook/internal/app/ledger"
	"goldbook/internal/app/rates"
	"goldbook/internal/app/session"
	"goldbook/internal/configs"
	"goldbook/internal/pkg/auth/jwt"
	"goldbook/internal/pkg/errs"
)

// UserDirectory is the slice of the database store the admin and profile handlers need.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id int64) (db.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (db.User, error)
	ListUsers(ctx context.Context) ([]db.User, error)
	SetWhitelisted(ctx context.Context, id int64, whitelisted bool) (db.User, error)
}

// AppDeps groups the collaborators handlers close over.
type AppDeps struct {
	Config     *configs.AppConfig
	Users      UserDirectory
	Ledger     *ledger.Service
	Rates      *rates.Service
	RatesHub   *rates.Hub
	Negotiator *session.Negotiator
}

// negotiationTimeout bounds the session negotiation exchange so a stalled store or
// verification path maps to an authentication failure instead of a hang.
const negotiationTimeout = 10 * time.Second

// currentSession resolves the request's bearer token into an active, revalidated
// session. A nil error guarantees an authenticated session.
func currentSession(deps *AppDeps, r *http.Request) (session.Session, *errs.CustomError) {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		return session.Session{}, errs.NewError(errs.ErrUnauthorized)
	}

	return deps.Negotiator.Resolve(r.Context(), payload)
}
