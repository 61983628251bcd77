package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Signature verification errors. Callers map these onto the application error codes.
var (
	ErrNoSignature      = errors.New("init data carries no hash")
	ErrBadSignature     = errors.New("init data signature mismatch")
	ErrSignatureExpired = errors.New("init data auth_date is too old")
)

// webAppSecretPrefix is the fixed HMAC key Telegram prescribes for deriving the
// per-bot secret from the bot token.
const webAppSecretPrefix = "WebAppData"

// VerifyInitData checks the HMAC-SHA256 signature of a raw URL-encoded init data
// string against the bot token, per the Telegram WebApp validation recipe: the
// data-check string is every key=value pair except hash, sorted by key and joined
// with newlines; the key is HMAC-SHA256("WebAppData", botToken).
//
// maxAge bounds how old the payload's auth_date may be; zero disables the age check.
func VerifyInitData(raw, botToken string, maxAge time.Duration) error {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return fmt.Errorf("init data is not parseable: %w", err)
	}

	expectedHash := values.Get("hash")
	if expectedHash == "" {
		return ErrNoSignature
	}
	values.Del("hash")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	dataCheckString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte(webAppSecretPrefix))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(dataCheckString))
	computed := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(computed), []byte(expectedHash)) {
		return ErrBadSignature
	}

	if maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return fmt.Errorf("init data auth_date is not parseable: %w", err)
		}
		if time.Since(time.Unix(authDate, 0)) > maxAge {
			return ErrSignatureExpired
		}
	}

	return nil
}

// SignInitData produces a signed raw init data string from the given values, using
// the same recipe VerifyInitData checks. Exposed for tests and local tooling.
func SignInitData(values url.Values, botToken string) string {
	values.Del("hash")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	secret := hmac.New(sha256.New, []byte(webAppSecretPrefix))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}
