package errors

// ErrorCode represents a standardized error code used throughout the ledger
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_004"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound       ErrorCode = "ACCOUNT_001"
	AccountEmailExists    ErrorCode = "ACCOUNT_002"
	AccountInvalidDeposit ErrorCode = "ACCOUNT_003"
	AccountInvalidID      ErrorCode = "ACCOUNT_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionInvalidAmount     ErrorCode = "TRANSACTION_001"
	TransactionInsufficientFunds ErrorCode = "TRANSACTION_002"
	TransactionInvalidType       ErrorCode = "TRANSACTION_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_003"
	SystemServiceUnavailable ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages.
// These are the texts shown to the user in flash banners.
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidEmail:  "Invalid email address format",

	// Account errors
	AccountNotFound:       "No account exists with that account number",
	AccountEmailExists:    "An account with this email already exists",
	AccountInvalidDeposit: "Initial deposit cannot be negative",
	AccountInvalidID:      "Account number must be a whole number",

	// Transaction errors
	TransactionInvalidAmount:     "Amount must be greater than zero",
	TransactionInsufficientFunds: "Insufficient balance for this withdrawal",
	TransactionInvalidType:       "Transaction type must be deposit or withdraw",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please try again",
	SystemDatabaseError:      "Database connection error",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemServiceUnavailable: "Service temporarily unavailable",
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
