package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeNoSuppliers is used when receiving starts with an empty supplier catalog
	ErrCodeNoSuppliers = "ERR_NO_SUPPLIERS"
	// ErrCodeNoItemsForSupplier is used when the picked supplier has no items
	ErrCodeNoItemsForSupplier = "ERR_NO_ITEMS_FOR_SUPPLIER"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Infrastructure error codes
const (
	// ErrCodeStoreUnavailable is used when the backing store cannot be reached
	ErrCodeStoreUnavailable = "ERR_STORE_UNAVAILABLE"
	// ErrCodeReceiptCreationFailed is used when the receipt header insert fails
	ErrCodeReceiptCreationFailed = "ERR_RECEIPT_CREATION_FAILED"
	// ErrCodeLedgerCommitFailed is used when the atomic line commit fails
	ErrCodeLedgerCommitFailed = "ERR_LEDGER_COMMIT_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeNoSuppliers:        http.StatusUnprocessableEntity,
	ErrCodeNoItemsForSupplier: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeStoreUnavailable:      http.StatusServiceUnavailable,
	ErrCodeReceiptCreationFailed: http.StatusInternalServerError,
	ErrCodeLedgerCommitFailed:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to standardized API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":               ErrCodeNotFound,
	"ALREADY_EXISTS":          ErrCodeAlreadyExists,
	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_STATE":           ErrCodeInvalidState,
	"UNAUTHORIZED":            ErrCodeForbidden, // role check failures, not missing credentials
	"STORE_UNAVAILABLE":       ErrCodeStoreUnavailable,
	"NO_SUPPLIERS_CONFIGURED": ErrCodeNoSuppliers,
	"NO_ITEMS_FOR_SUPPLIER":   ErrCodeNoItemsForSupplier,
	"RECEIPT_CREATION_FAILED": ErrCodeReceiptCreationFailed,
	"LEDGER_COMMIT_FAILED":    ErrCodeLedgerCommitFailed,
	"INVALID_QUANTITY":        ErrCodeInvalidInput,
	"INVALID_PRICE":           ErrCodeInvalidInput,
	"INVALID_AMOUNT":          ErrCodeInvalidInput,
	"INVALID_NAME":            ErrCodeInvalidInput,
	"INVALID_SUPPLIER":        ErrCodeInvalidInput,
	"INVALID_ITEM":            ErrCodeInvalidInput,
	"INVALID_RECEIPT":         ErrCodeInvalidInput,
	"INVALID_USER":            ErrCodeInvalidInput,
	"INVALID_CHAT_ID":         ErrCodeInvalidInput,
	"INVALID_ROLE":            ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// If the code is already in the new format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
