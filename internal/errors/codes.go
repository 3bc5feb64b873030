package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidGrant           ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
	AuthNotResourceOwner       ErrorCode = "AUTH_006"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// User error codes (USER_*)
const (
	UserNotFound        ErrorCode = "USER_001"
	UserInvalidID       ErrorCode = "USER_002"
	UserInvalidBudget   ErrorCode = "USER_003"
	UserProfileConflict ErrorCode = "USER_004"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound    ErrorCode = "CATEGORY_001"
	CategoryInUse       ErrorCode = "CATEGORY_002"
	CategoryNotCustom   ErrorCode = "CATEGORY_003"
	CategoryInvalidType ErrorCode = "CATEGORY_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound      ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount ErrorCode = "TRANSACTION_002"
	TransactionInvalidID     ErrorCode = "TRANSACTION_003"
	TransactionInvalidType   ErrorCode = "TRANSACTION_004"
)

// Distribution error codes (DISTRIBUTION_*)
const (
	DistributionLocked       ErrorCode = "DISTRIBUTION_001"
	DistributionInvalidSplit ErrorCode = "DISTRIBUTION_002"
	DistributionIncomplete   ErrorCode = "DISTRIBUTION_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidGrant:           "Google sign-in failed; the authorization code was rejected",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",
	AuthNotResourceOwner:       "This resource belongs to another user",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	// User errors
	UserNotFound:        "User not found",
	UserInvalidID:       "Invalid user ID format",
	UserInvalidBudget:   "Budget percentages must sum to 100",
	UserProfileConflict: "An account with this email already exists",

	// Category errors
	CategoryNotFound:    "Category not found",
	CategoryInUse:       "Category is referenced by existing transactions and cannot be deleted",
	CategoryNotCustom:   "Default categories cannot be deleted",
	CategoryInvalidType: "Invalid category type",

	// Transaction errors
	TransactionNotFound:      "Transaction not found",
	TransactionInvalidAmount: "Transaction amount must be a positive number",
	TransactionInvalidID:     "Transaction ID could not be parsed; expected a UUID",
	TransactionInvalidType:   "Invalid transaction type",

	// Distribution errors
	DistributionLocked:       "Distribution transactions cannot be modified directly; edit or delete the parent income transaction instead",
	DistributionInvalidSplit: "Distribution percentages for needs, wants and savings must each be positive and sum to 100",
	DistributionIncomplete:   "Income distribution is incomplete and will be repaired on the next update",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
