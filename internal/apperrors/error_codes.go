// Package apperrors mirrors the machine-readable error codes returned by the
// Dualcaster Deals API. The codes are defined by the backend and are treated
// as a fixed external contract.
package apperrors

type ErrorCode string

const (
	ErrCodeAuthenticationFailure ErrorCode = "authentication_error"
	ErrCodeAuthorizationFailure  ErrorCode = "authorization_error"
	ErrCodeForbidden             ErrorCode = "forbidden"
	ErrCodeInternalError         ErrorCode = "internal_error"
	ErrCodeInvalidRequest        ErrorCode = "invalid_request"
	ErrCodeMalformedBody         ErrorCode = "malformed_body"
	ErrCodePasswordTooShort      ErrorCode = "password_too_short"
	ErrCodeRateLimitExceeded     ErrorCode = "rate_limit_exceeded"
	ErrCodeResourceAlreadyExists ErrorCode = "resource_already_exists"
	ErrCodeResourceNotFound      ErrorCode = "resource_not_found"
	ErrCodeTokenExpired          ErrorCode = "access_token_expired"
	ErrCodeTokenInvalid          ErrorCode = "token_invalid"
)
