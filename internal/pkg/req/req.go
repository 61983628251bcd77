/*
Package req binds JSON request bodies with strict validation.

Decoding rejects unknown fields, trailing content, and bodies over the size cap, so
malformed or oversized submissions fail before any handler logic runs.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"goldbook/internal/pkg/errs"
)

// MaxBodyBytes caps a JSON request body at 1 MB. Telegram init payloads and trade
// forms are tiny; anything near this limit is abuse.
const MaxBodyBytes int64 = 1 << 20

// BindJSON decodes the request body into dst, returning a mapped error for any
// violation of the strict decoding rules.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}
	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
