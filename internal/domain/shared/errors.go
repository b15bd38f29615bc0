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
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// ErrConfiguration indicates required settings are missing; it aborts
	// the whole run and is surfaced to the operator.
	ErrConfiguration = NewDomainError("CONFIGURATION", "Required configuration is missing")

	// ErrAuthentication indicates the remote rejected the configured
	// credentials or returned no token.
	ErrAuthentication = NewDomainError("AUTHENTICATION", "Authentication with remote service failed")

	// ErrTransfer indicates an FTP connectivity or protocol failure
	// during catalogue retrieval.
	ErrTransfer = NewDomainError("TRANSFER", "File transfer failed")

	// ErrFormat indicates the catalogue feed could not be parsed.
	ErrFormat = NewDomainError("FORMAT", "Malformed feed document")
)
