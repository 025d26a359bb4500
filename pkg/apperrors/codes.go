package apperrors

// ErrorCode is the machine-readable code carried by every AppError.
type ErrorCode string

const (
	// System errors
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeUnexpectedError      ErrorCode = "UNEXPECTED_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
	CodeConfigMissing        ErrorCode = "CONFIG_MISSING"

	// Form workflow
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeAPIRequestFailed ErrorCode = "API_REQUEST_FAILED"

	// Session
	CodeAuthMissing  ErrorCode = "AUTH_MISSING"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
	CodeForbidden    ErrorCode = "FORBIDDEN"
)
