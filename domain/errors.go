package domain

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLanguage is reported for files whose extension is not recognized
var ErrUnsupportedLanguage = errors.New("Unsupported language")

// ErrorCode classifies domain errors
type ErrorCode string

const (
	ErrCodeConfig       ErrorCode = "CONFIG_ERROR"
	ErrCodeAnalysis     ErrorCode = "ANALYSIS_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeOutput       ErrorCode = "OUTPUT_ERROR"
)

// DomainError is an error with a classification code and an optional cause
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a domain error with an arbitrary code
func NewDomainError(code ErrorCode, message string, cause error) error {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return &DomainError{Code: ErrCodeConfig, Message: message, Cause: cause}
}

// NewAnalysisError creates an analysis error
func NewAnalysisError(message string, cause error) error {
	return &DomainError{Code: ErrCodeAnalysis, Message: message, Cause: cause}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return &DomainError{Code: ErrCodeInvalidInput, Message: message, Cause: cause}
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return &DomainError{Code: ErrCodeOutput, Message: message, Cause: cause}
}

// NewUnsupportedFormatError creates an invalid input error for an unknown output format
func NewUnsupportedFormatError(format string) error {
	return &DomainError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("unsupported output format: %s", format),
	}
}

// HasCode reports whether err is a DomainError with the given code
func HasCode(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
