package telegram

import (
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "110201543:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw"

func signedInitData(t *testing.T, authDate time.Time) string {
	t.Helper()

	values := url.Values{}
	values.Set("user", `{"id":99,"first_name":"Test"}`)
	values.Set("auth_date", fmt.Sprintf("%d", authDate.Unix()))
	values.Set("query_id", "AAEZ")

	return SignInitData(values, testBotToken)
}

func TestVerifyInitDataRoundTrip(t *testing.T) {
	raw := signedInitData(t, time.Now())

	err := VerifyInitData(raw, testBotToken, 24*time.Hour)
	assert.NoError(t, err)
}

func TestVerifyInitDataTamperedValue(t *testing.T) {
	raw := signedInitData(t, time.Now())
	tampered := strings.Replace(raw, "AAEZ", "BBEZ", 1)
	require.NotEqual(t, raw, tampered)

	err := VerifyInitData(tampered, testBotToken, 0)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyInitDataWrongToken(t *testing.T) {
	raw := signedInitData(t, time.Now())

	err := VerifyInitData(raw, "000000:wrong-token", 0)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyInitDataMissingHash(t *testing.T) {
	err := VerifyInitData("user=%7B%22id%22%3A99%7D&auth_date=100", testBotToken, 0)
	assert.ErrorIs(t, err, ErrNoSignature)
}

func TestVerifyInitDataExpired(t *testing.T) {
	raw := signedInitData(t, time.Now().Add(-48*time.Hour))

	err := VerifyInitData(raw, testBotToken, 24*time.Hour)
	assert.ErrorIs(t, err, ErrSignatureExpired)
}

func TestVerifyInitDataZeroMaxAgeSkipsExpiry(t *testing.T) {
	raw := signedInitData(t, time.Now().Add(-48*time.Hour))

	err := VerifyInitData(raw, testBotToken, 0)
	assert.NoError(t, err)
}

func TestVerifyInitDataUnparseable(t *testing.T) {
	err := VerifyInitData("%ZZnot-a-query", testBotToken, 0)
	assert.Error(t, err)
}
