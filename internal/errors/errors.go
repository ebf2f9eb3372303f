package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// CatalogNotSealed indicates resolution or metrics ran before the
	// symbol catalog was sealed; this aborts the whole run
	CatalogNotSealed ErrorCode = "CATALOG_NOT_SEALED"
	// UnresolvedCall indicates no candidate method matched a call site
	UnresolvedCall ErrorCode = "UNRESOLVED_CALL"
	// AmbiguousCall indicates several equally specific candidates matched
	AmbiguousCall ErrorCode = "AMBIGUOUS_CALL"
	// MissingTypeReference indicates a referenced type is absent from the catalog
	MissingTypeReference ErrorCode = "MISSING_TYPE_REFERENCE"
	// FactsInvalid indicates the extractor fact file failed validation
	FactsInvalid ErrorCode = "FACTS_INVALID"
	// EmptyDistribution indicates a statistical summary was requested
	// over zero values
	EmptyDistribution ErrorCode = "EMPTY_DISTRIBUTION"
	// MetricUnknown indicates a metric name outside the registry
	MetricUnknown ErrorCode = "METRIC_UNKNOWN"
	// SymbolNotFound indicates a symbol doesn't exist in the catalog
	SymbolNotFound ErrorCode = "SYMBOL_NOT_FOUND"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// AnalyzerError represents an analyzer error with a stable code
type AnalyzerError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new AnalyzerError
func New(code ErrorCode, message string, cause error) *AnalyzerError {
	return &AnalyzerError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Newf creates a new AnalyzerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AnalyzerError {
	return &AnalyzerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface
func (e *AnalyzerError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AnalyzerError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AnalyzerError) WithDetails(details interface{}) *AnalyzerError {
	e.Details = details
	return e
}

// CodeOf extracts the error code from an error chain, or InternalError
// when the chain carries no AnalyzerError
func CodeOf(err error) ErrorCode {
	var ae *AnalyzerError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return InternalError
}

// HasCode reports whether the error chain carries the given code
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
