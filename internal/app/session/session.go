/*
Package session owns the negotiation and lifecycle of server-trusted sessions.

A session is created by exchanging a normalized Telegram identity (plus platform
metadata) for a persisted, time-bounded record keyed by the Telegram user id. It is
revalidated opportunistically on navigation and destroyed on logout or expiry.
*/
package session

import (
	"context"
	"time"
)

// Role is the authorization role carried by a session.
type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

const (
	// Lifetime is the session validity window from issuance or last revalidation.
	Lifetime = 30 * 24 * time.Hour

	// RevalidateAfter is the minimum age of a session's last refresh before a new
	// navigation slides its expiry forward. Keeps hot navigation cheap.
	RevalidateAfter = 30 * time.Minute
)

// Session is the server-side record issued by a successful negotiation.
// The server copy is the source of truth; clients hold a bearer token referencing it.
type Session struct {
	// Token is the opaque identifier bound into the client's bearer token.
	Token string `json:"token"`

	// TelegramID keys the record: at most one active session per Telegram user.
	TelegramID int64 `json:"telegram_id"`

	// UserID is the internal user row the session belongs to.
	UserID int64 `json:"user_id"`

	FirstName   string `json:"first_name"`
	Username    string `json:"username"`
	PhotoURL    string `json:"photo_url"`
	Role        Role   `json:"role"`
	Whitelisted bool   `json:"whitelisted"`

	// Platform and Version record the client classification the session was
	// negotiated under, for platform-aware diagnostics.
	Platform string `json:"platform"`
	Version  string `json:"version"`

	CreatedAt   time.Time `json:"created_at"`
	RefreshedAt time.Time `json:"refreshed_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session grants admin affordances.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Expired reports whether the session has passed its expiry at the given instant.
func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }

// Store persists and retrieves sessions, keyed by Telegram user id.
type Store interface {
	Save(ctx context.Context, sess Session) error
	Get(ctx context.Context, telegramID int64) (Session, error)
	Delete(ctx context.Context, telegramID int64) error
}
