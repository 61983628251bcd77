package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"goldbook/internal/app/db"
	"goldbook/internal/app/telegram"
	"goldbook/internal/pkg/auth/jwt"
	"goldbook/internal/pkg/errs"
	"goldbook/internal/pkg/logx"
	"goldbook/internal/pkg/randx"
)

// UserDirectory is the slice of the database store the negotiator needs.
type UserDirectory interface {
	UpsertTelegramUser(ctx context.Context, p db.UpsertTelegramUserParams) (db.User, error)
}

// InitDataMaxAge bounds how stale a signed init payload may be before negotiation
// rejects it. Telegram re-signs the payload on every WebApp open, so a generous
// bound only has to cover clock skew and slow page loads.
const InitDataMaxAge = 24 * time.Hour

// Negotiator exchanges a normalized identity plus platform metadata for a
// server-trusted session. It owns session lifetime and revalidation policy.
type Negotiator struct {
	users    UserDirectory
	sessions Store

	secret     string
	botToken   string
	botOwnerID int64

	// group collapses concurrent negotiation attempts for the same user id so a
	// double-posted login cannot create duplicate sessions or user rows.
	group singleflight.Group

	// now is swappable for tests.
	now func() time.Time
}

// NewNegotiator constructs a Negotiator. An empty botToken disables signature
// verification (development only; LoadConfig enforces the token elsewhere).
func NewNegotiator(users UserDirectory, sessions Store, secret, botToken string, botOwnerID int64) *Negotiator {
	return &Negotiator{
		users:      users,
		sessions:   sessions,
		secret:     secret,
		botToken:   botToken,
		botOwnerID: botOwnerID,
		now:        time.Now,
	}
}

type negotiated struct {
	session Session
	token   string
}

// Authenticate performs one negotiation exchange. It fails with a checked
// precondition error when the identity lacks a user id, with a signature error when
// the raw init data does not verify, and with an authorization error for
// non-whitelisted users. Store and timeout failures surface as ErrAuthFailed. The
// caller decides whether to retry; nothing is retried here.
func (n *Negotiator) Authenticate(ctx context.Context, identity telegram.NormalizedIdentity, platform telegram.PlatformInfo, rawInitData string) (Session, string, *errs.CustomError) {
	if identity.Empty() {
		return Session{}, "", errs.NewError(errs.ErrIdentityMissing)
	}

	if n.botToken != "" {
		if rawInitData == "" {
			logx.Warn("Negotiation rejected: no raw init data to verify", "telegram_id", identity.UserID)
			return Session{}, "", errs.NewError(errs.ErrSignatureInvalid)
		}
		if err := telegram.VerifyInitData(rawInitData, n.botToken, InitDataMaxAge); err != nil {
			logx.Warn("Negotiation rejected: init data verification failed",
				"telegram_id", identity.UserID, "error", err)
			return Session{}, "", errs.NewError(errs.ErrSignatureInvalid)
		}
	}

	key := strconv.FormatInt(identity.UserID, 10)
	result, err, _ := n.group.Do(key, func() (any, error) {
		return n.negotiate(ctx, identity, platform)
	})

	if err != nil {
		var customErr *errs.CustomError
		if errors.As(err, &customErr) {
			return Session{}, "", customErr
		}
		logx.Error(err, "Session negotiation failed", "telegram_id", identity.UserID)
		return Session{}, "", errs.NewError(errs.ErrAuthFailed)
	}

	res := result.(negotiated)
	return res.session, res.token, nil
}

// negotiate runs under the single-flight group: upserts the user row, applies the
// whitelist policy, persists the session, and signs the bearer token.
func (n *Negotiator) negotiate(ctx context.Context, identity telegram.NormalizedIdentity, platform telegram.PlatformInfo) (any, error) {
	user, err := n.users.UpsertTelegramUser(ctx, db.UpsertTelegramUserParams{
		TelegramID: identity.UserID,
		FirstName:  identity.FirstName,
		LastName:   identity.LastName,
		Username:   identity.Username,
		PhotoURL:   identity.PhotoURL,
	})
	if err != nil {
		return nil, err
	}

	isOwner := n.botOwnerID > 0 && user.TelegramID == n.botOwnerID
	if !user.IsWhitelisted && !isOwner {
		logx.Info("Negotiation rejected: user not whitelisted",
			"telegram_id", user.TelegramID, "platform", identity.Platform)
		return nil, errs.NewError(errs.ErrNotWhitelisted)
	}

	role := RoleStandard
	if user.IsAdmin || isOwner {
		role = RoleAdmin
	}

	sessionToken, err := randx.SessionToken()
	if err != nil {
		return nil, err
	}

	now := n.now()
	sess := Session{
		Token:       sessionToken,
		TelegramID:  user.TelegramID,
		UserID:      user.ID,
		FirstName:   user.FirstName,
		Username:    user.Username,
		PhotoURL:    user.PhotoURL,
		Role:        role,
		Whitelisted: true,
		Platform:    identity.Platform,
		Version:     identity.Version,
		CreatedAt:   now,
		RefreshedAt: now,
		ExpiresAt:   now.Add(Lifetime),
	}

	if err := n.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	bearer, err := jwt.GenerateToken(&jwt.Payload{
		TelegramID:   user.TelegramID,
		Role:         string(role),
		Whitelisted:  true,
		SessionToken: sessionToken,
	}, n.secret, jwt.SessionExpiration)
	if err != nil {
		return nil, err
	}

	logx.Info("Session negotiated",
		"telegram_id", user.TelegramID,
		"role", string(role),
		"platform", identity.Platform,
		"version", identity.Version,
	)

	return negotiated{session: sess, token: bearer}, nil
}

// Resolve returns the active session referenced by a parsed bearer payload,
// revalidating it opportunistically: when the last refresh is older than
// RevalidateAfter, the expiry slides forward a full Lifetime. A missing, expired,
// or token-mismatched session yields ErrUnauthorized.
func (n *Negotiator) Resolve(ctx context.Context, payload *jwt.Payload) (Session, *errs.CustomError) {
	if payload == nil {
		return Session{}, errs.NewError(errs.ErrUnauthorized)
	}

	sess, err := n.sessions.Get(ctx, payload.TelegramID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, errs.NewError(errs.ErrUnauthorized)
		}
		logx.Error(err, "Session lookup failed", "telegram_id", payload.TelegramID)
		return Session{}, errs.NewError(errs.ErrAuthFailed)
	}

	// A stale token from before a device switch references the replaced session.
	if sess.Token != payload.SessionToken {
		return Session{}, errs.NewError(errs.ErrUnauthorized)
	}

	now := n.now()
	if sess.Expired(now) {
		return Session{}, errs.NewError(errs.ErrUnauthorized)
	}

	if now.Sub(sess.RefreshedAt) >= RevalidateAfter {
		sess.RefreshedAt = now
		sess.ExpiresAt = now.Add(Lifetime)
		if err := n.sessions.Save(ctx, sess); err != nil {
			// Revalidation is opportunistic; the session stays valid until its
			// previous expiry even if the slide fails.
			logx.Warn("Session revalidation save failed", "telegram_id", sess.TelegramID, "error", err)
		}
	}

	return sess, nil
}

// Logout destroys the session for a user. Explicit logout of a missing session is a no-op.
func (n *Negotiator) Logout(ctx context.Context, telegramID int64) *errs.CustomError {
	if err := n.sessions.Delete(ctx, telegramID); err != nil {
		logx.Error(err, "Session delete failed", "telegram_id", telegramID)
		return errs.NewError(errs.ErrUnknown)
	}
	return nil
}
