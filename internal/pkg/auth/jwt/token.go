package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// SessionExpiration matches the server-side session lifetime of 30 days; the
	// bearer token never outlives the session it references.
	SessionExpiration = 30 * 24 * time.Hour

	// TokenIssuer is stamped into every issued token.
	TokenIssuer = "GoldBook-Server"
)

// GenerateToken signs the payload as an HS256 bearer token valid for the given duration.
// The payload's standard claims are overwritten with fresh issuance metadata.
func GenerateToken(payload *Payload, secretKey string, duration time.Duration) (string, error) {
	now := time.Now()
	payload.StandardClaims = jwt.StandardClaims{
		ExpiresAt: now.Add(duration).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    TokenIssuer,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString([]byte(secretKey))
}

// ParseToken validates a bearer token string and returns its payload. Tokens signed
// with anything other than HMAC are rejected regardless of key.
func ParseToken(tokenString string, secretKey string) (*Payload, error) {
	claims := &Payload{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}
