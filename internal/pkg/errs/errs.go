/*
Package errs defines the application error vocabulary.

Every failure a handler can surface is a CustomError looked up by business code from
a central map, so the same condition always produces the same message and HTTP status.
*/
package errs

import (
	"fmt"
	"net/http"
	"strings"

	"goldbook/internal/pkg/logx"
)

// CustomError pairs a business code with a client-facing message and HTTP status.
type CustomError struct {
	Code    int
	Message string
	Status  int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a *CustomError from a registered code. When the code's message
// template carries printf verbs, details are formatted into it. An unregistered code
// degrades to ErrUnknown rather than panicking.
func NewError(code int, details ...any) *CustomError {
	template, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("error code %d is not registered", code),
			"Unknown error code requested",
			"requested_code", code,
		)
		template = errorMap[ErrUnknown]
		return &CustomError{Code: template.Code, Message: template.Message, Status: template.Status}
	}

	customErr := template
	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	if len(details) == 0 {
		return &customErr
	}

	if code == ErrUnknown {
		// The underlying cause is logged server side and never shown to clients.
		if cause, ok := details[0].(error); ok {
			logx.Error(cause, "Handling ErrUnknown with underlying error")
		}
		return &customErr
	}

	if strings.Contains(customErr.Message, "%") {
		customErr.Message = fmt.Sprintf(customErr.Message, details...)
	} else {
		logx.Warn("Details provided for error, but message template has no formatting placeholders. Details ignored.",
			"code", code)
	}

	return &customErr
}
