/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Ledger Business Logic Errors
const (
	// ErrInvalidTradeInput indicates a purchase or sale with missing fields or non-positive amounts.
	ErrInvalidTradeInput = 2101

	// ErrInvalidTradeDate indicates a purchase or sale date that could not be parsed.
	ErrInvalidTradeDate = 2102

	// ErrInvalidCurrency indicates a currency outside the supported set.
	ErrInvalidCurrency = 2103

	// ErrInsufficientInventory indicates a sale larger than the remaining gold inventory.
	ErrInsufficientInventory = 2104
)

// 3xxx: Identity, Session, and Authorization Errors
const (
	// ErrIdentityMissing indicates that no Telegram user id could be extracted from the
	// initialization payload. This is the checked precondition of session negotiation.
	ErrIdentityMissing = 3001

	// ErrSignatureInvalid indicates that the Telegram init-data signature check failed.
	ErrSignatureInvalid = 3002

	// ErrNotWhitelisted indicates an authenticated user who is not authorized to use the app.
	ErrNotWhitelisted = 3003

	// ErrUnauthorized indicates a request without a valid session.
	ErrUnauthorized = 3004

	// ErrAdminRequired indicates a non-admin user calling an admin endpoint.
	ErrAdminRequired = 3005

	// ErrAuthFailed indicates that session negotiation failed for an internal reason
	// (store or verification collaborator error, timeout included).
	ErrAuthFailed = 3006

	// ErrUserNotFound indicates an operation against an unknown user record.
	ErrUserNotFound = 3007

	// ErrOwnerProtected indicates an attempt to revoke the bot owner's whitelist entry.
	ErrOwnerProtected = 3008
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
