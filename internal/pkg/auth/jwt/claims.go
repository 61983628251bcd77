package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the structure of the JSON Web Token (JWT) claims issued to clients.
// It carries the minimum identity facts needed to gate requests without a store lookup;
// the authoritative session record lives server side, keyed by TelegramID.
type Payload struct {
	// StandardClaims embeds the necessary JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer). These are crucial for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// TelegramID is the numeric Telegram user identifier the session was negotiated for.
	TelegramID int64 `json:"telegram_id"`

	// Role is the authorization role ("standard" or "admin").
	Role string `json:"role"`

	// Whitelisted mirrors the server-side whitelist flag at issuance time.
	// The session store remains the source of truth; this is a hint for the client.
	Whitelisted bool `json:"whitelisted"`

	// SessionToken references the server-side session record this token was issued against.
	SessionToken string `json:"session_token"`
}
