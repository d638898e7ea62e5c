package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound              = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists         = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput          = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized          = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidState          = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrStoreUnavailable      = NewDomainError("STORE_UNAVAILABLE", "Backing store cannot be reached")
	ErrNoSuppliersConfigured = NewDomainError("NO_SUPPLIERS_CONFIGURED", "No suppliers are registered in the system")
	ErrNoItemsForSupplier    = NewDomainError("NO_ITEMS_FOR_SUPPLIER", "Supplier has no registered items")
	ErrReceiptCreationFailed = NewDomainError("RECEIPT_CREATION_FAILED", "Receipt document could not be created")
	ErrLedgerCommitFailed    = NewDomainError("LEDGER_COMMIT_FAILED", "Receipt line could not be committed")
)
