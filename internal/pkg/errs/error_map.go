/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Ledger Business Logic Errors
	ErrInvalidTradeInput:     {Code: ErrInvalidTradeInput, Message: "All fields are required and amounts must be positive.", Status: http.StatusBadRequest},
	ErrInvalidTradeDate:      {Code: ErrInvalidTradeDate, Message: "Invalid date. Use YYYY-MM-DD.", Status: http.StatusBadRequest},
	ErrInvalidCurrency:       {Code: ErrInvalidCurrency, Message: "Unsupported currency.", Status: http.StatusBadRequest},
	ErrInsufficientInventory: {Code: ErrInsufficientInventory, Message: "Cannot sell %.2fg. Only %.2fg available.", Status: http.StatusConflict},

	// 3xxx: Identity, Session, and Authorization Errors
	ErrIdentityMissing:  {Code: ErrIdentityMissing, Message: "Missing user ID.", Status: http.StatusBadRequest},
	ErrSignatureInvalid: {Code: ErrSignatureInvalid, Message: "Authentication data could not be verified.", Status: http.StatusUnauthorized},
	ErrNotWhitelisted:   {Code: ErrNotWhitelisted, Message: "Access denied. You are not authorized to use this application.", Status: http.StatusForbidden},
	ErrUnauthorized:     {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrAdminRequired:    {Code: ErrAdminRequired, Message: "Admin access required.", Status: http.StatusForbidden},
	ErrAuthFailed:       {Code: ErrAuthFailed, Message: "Authentication failed.", Status: http.StatusBadGateway},
	ErrUserNotFound:     {Code: ErrUserNotFound, Message: "User not found.", Status: http.StatusNotFound},
	ErrOwnerProtected:   {Code: ErrOwnerProtected, Message: "Cannot remove bot owner from whitelist.", Status: http.StatusForbidden},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
