package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "AUTH_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "AUTH_TOKEN_INVALID"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeForbidden   = "AUTHZ_FORBIDDEN"
	ErrCodeInvalidRole = "AUTHZ_INVALID_ROLE"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
	ErrCodeInvalidInput     = "VALIDATION_INVALID_INPUT"
	ErrCodeBatchTooLarge    = "VALIDATION_BATCH_TOO_LARGE"
	ErrCodeUnknownType      = "VALIDATION_UNKNOWN_CONTENT_TYPE"
)

// Content errors (CONTENT_*)
const (
	ErrCodeContentNotFound  = "CONTENT_NOT_FOUND"
	ErrCodeHomepageNotFound = "CONTENT_HOMEPAGE_NOT_FOUND"
	ErrCodeImportFailed     = "CONTENT_IMPORT_FAILED"
)

// Rate limiting errors (RATE_*)
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeStoreError      = "INTERNAL_STORE_ERROR"
	ErrCodeUnexpectedError = "INTERNAL_UNEXPECTED_ERROR"
)
