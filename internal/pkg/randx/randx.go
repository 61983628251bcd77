/*
Package randx generates the random identifiers the session layer hands out:
opaque Base62 session tokens from crypto/rand and UUID request ids.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// base62Chars is the session token alphabet (0-9, A-Z, a-z).
	base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// SessionTokenLength is the fixed token length. 32 Base62 characters carry
	// roughly 190 bits of entropy.
	SessionTokenLength = 32
)

// SessionToken returns a new opaque session token drawn from crypto/rand.
func SessionToken() (string, error) {
	alphabetLen := big.NewInt(int64(len(base62Chars)))
	token := make([]byte, SessionTokenLength)

	for i := range token {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for session token: %v", err)
		}
		token[i] = base62Chars[n.Int64()]
	}

	return string(token), nil
}

// RequestID returns a UUID v4 string, used to tag a single negotiation attempt
// in diagnostics and responses.
func RequestID() string {
	return uuid.New().String()
}

// IsValidSessionToken reports whether a string has the shape of a generated token:
// exact length, all characters within the Base62 alphabet.
func IsValidSessionToken(token string) bool {
	if len(token) != SessionTokenLength {
		return false
	}

	for _, c := range token {
		if !strings.ContainsRune(base62Chars, c) {
			return false
		}
	}

	return true
}
