package telegram

import (
	"encoding/json"
	"net/url"

	"goldbook/internal/pkg/logx"
)

// WebAppUser is the structured user object carried inside the init payload.
// Every field is optional; the host guarantees nothing.
type WebAppUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
}

// RawInitPayload is the initialization payload exactly as the hosting client supplied
// it: structured fields, a raw URL-encoded string, or both. Fields may be absent or
// partially populated.
type RawInitPayload struct {
	User     *WebAppUser `json:"user,omitempty"`
	AuthDate json.Number `json:"auth_date,omitempty"`
	Hash     string      `json:"hash,omitempty"`
	QueryID  string      `json:"query_id,omitempty"`

	// Raw is the full URL-encoded init data string, when the client forwarded it.
	// It is both the desktop fallback source and the input to signature verification.
	Raw string `json:"raw,omitempty"`
}

// NormalizedIdentity is the canonical representation of "who is using the app",
// independent of which host data shape produced it. UserID is non-zero if and only
// if extraction succeeded; an identity with a zero UserID must never be submitted
// for session negotiation.
type NormalizedIdentity struct {
	UserID        int64  `json:"userId"`
	Username      string `json:"username"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PhotoURL      string `json:"photoUrl"`
	AuthDate      string `json:"authDate"`
	SignatureHash string `json:"signatureHash"`
	RequestID     string `json:"requestId"`
	Platform      string `json:"platform"`
	Version       string `json:"version"`
}

// Empty reports whether extraction failed to produce a user identifier.
// An empty identity is a signaled unauthenticated state, not a fault.
func (n NormalizedIdentity) Empty() bool {
	return n.UserID == 0
}

// Extract produces a normalized identity from the host-supplied init payload.
//
// The primary path reads the structured fields and is authoritative on every
// platform. The fallback path runs only when the primary path yields no user id
// AND the platform is classified desktop: some desktop builds expose identity only
// via the raw URL-encoded string. The fallback is gated to desktop so it cannot
// mask a genuine unauthenticated state on mobile.
//
// Malformed input never propagates as an error: it degrades to an empty identity
// and is logged as a diagnostic.
func Extract(payload RawInitPayload, platform PlatformInfo) NormalizedIdentity {
	if payload.User != nil && payload.User.ID != 0 {
		return NormalizedIdentity{
			UserID:        payload.User.ID,
			Username:      payload.User.Username,
			FirstName:     payload.User.FirstName,
			LastName:      payload.User.LastName,
			PhotoURL:      payload.User.PhotoURL,
			AuthDate:      payload.AuthDate.String(),
			SignatureHash: payload.Hash,
			RequestID:     payload.QueryID,
			Platform:      platform.RawPlatform,
			Version:       platform.Version,
		}
	}

	if !platform.IsDesktop || payload.Raw == "" {
		return NormalizedIdentity{}
	}

	return extractFromRaw(payload.Raw, platform)
}

// extractFromRaw decodes the URL-encoded init string, pulls out the JSON-encoded
// user entry, and copies auth_date/hash/query_id from the same source.
func extractFromRaw(raw string, platform PlatformInfo) NormalizedIdentity {
	values, err := url.ParseQuery(raw)
	if err != nil {
		logx.Debug("Init data fallback: raw string is not parseable", "error", err)
		return NormalizedIdentity{}
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		logx.Debug("Init data fallback: no user entry in raw string")
		return NormalizedIdentity{}
	}

	var user WebAppUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		logx.Debug("Init data fallback: user entry is not valid JSON", "error", err)
		return NormalizedIdentity{}
	}

	if user.ID == 0 {
		logx.Debug("Init data fallback: user entry carries no id")
		return NormalizedIdentity{}
	}

	return NormalizedIdentity{
		UserID:        user.ID,
		Username:      user.Username,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		PhotoURL:      user.PhotoURL,
		AuthDate:      values.Get("auth_date"),
		SignatureHash: values.Get("hash"),
		RequestID:     values.Get("query_id"),
		Platform:      platform.RawPlatform,
		Version:       platform.Version,
	}
}
