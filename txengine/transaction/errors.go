package transaction

import "fmt"

// ErrorCode is a domain error code used by record validation and postings.
type ErrorCode string

const (
	// ErrorInsufficientFunds indicates the available balance cannot cover a debit.
	ErrorInsufficientFunds ErrorCode = "0018"
	// ErrorUnknownKind indicates the operation tag is not one of the five kinds.
	ErrorUnknownKind ErrorCode = "1001"
	// ErrorMissingAmount indicates a deposit or withdrawal without an amount.
	ErrorMissingAmount ErrorCode = "1003"
	// ErrorUnexpectedAmount indicates a dispute, resolve or chargeback carrying an amount.
	ErrorUnexpectedAmount ErrorCode = "1004"
	// ErrorInvalidAmount indicates a negative amount.
	ErrorInvalidAmount ErrorCode = "1005"
	// ErrorUnsupportedOperation indicates a posting operation outside the supported set.
	ErrorUnsupportedOperation ErrorCode = "1006"
)

// DomainError represents a structured transaction validation error.
type DomainError struct {
	Code    ErrorCode
	Field   string
	Message string
}

// Error returns the formatted domain error string.
func (e DomainError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// NewDomainError creates a domain error with code, field, and message.
func NewDomainError(code ErrorCode, field, message string) error {
	return DomainError{Code: code, Field: field, Message: message}
}
