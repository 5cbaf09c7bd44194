package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// WithContext returns a copy of the error carrying additional context
// (offending field, source fragment, conflicting id) for the caller to render.
func (e *DomainError) WithContext(ctx map[string]any) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Context: ctx}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorWithContext creates a new domain error with context attached
func NewDomainErrorWithContext(code, message string, ctx map[string]any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Context: ctx,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
)

// Error codes for the catalog import and ordering pipelines.
// ParseError/MatchError/ValidationError/ConflictError abort the whole
// operation with no partial mutation; shortfalls are collected per item
// and never abort a checkout by themselves.
const (
	CodeParseError         = "PARSE_ERROR"
	CodeCategoryMatchError = "CATEGORY_MATCH_ERROR"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeConflict           = "CONFLICT"
	CodeNotFound           = "NOT_FOUND"
	CodeInsufficientStock  = "INSUFFICIENT_STOCK"
	CodeImportInProgress   = "IMPORT_IN_PROGRESS"
)
