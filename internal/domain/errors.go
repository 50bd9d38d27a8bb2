package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Interview specific errors
	CodeSessionNotFound       ErrorCode = "SESSION_NOT_FOUND"
	CodeSessionCompleted      ErrorCode = "SESSION_ALREADY_COMPLETED"
	CodeSessionNotActive      ErrorCode = "SESSION_NOT_ACTIVE"
	CodeQuestionNotInSession  ErrorCode = "QUESTION_NOT_IN_SESSION"
	CodeAnalysisNotFound      ErrorCode = "ANALYSIS_NOT_FOUND"
	CodeQuotaExceeded         ErrorCode = "QUOTA_EXCEEDED"
	CodeAIProviderError       ErrorCode = "AI_PROVIDER_ERROR"
	CodeAIConfigurationError  ErrorCode = "AI_CONFIGURATION_ERROR"
	CodeStillProcessing       ErrorCode = "STILL_PROCESSING"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Interview session not found: %s", sessionID), nil)
}

func NewSessionCompletedError(sessionID string) *DomainError {
	return NewError(CodeSessionCompleted, fmt.Sprintf("Interview session already completed: %s", sessionID), nil)
}

func NewSessionNotActiveError(sessionID string, status SessionStatus) *DomainError {
	return NewError(CodeSessionNotActive,
		fmt.Sprintf("Interview session %s is %s and does not accept answers", sessionID, status), nil)
}

func NewQuestionNotInSessionError(questionID string) *DomainError {
	return NewError(CodeQuestionNotInSession,
		fmt.Sprintf("Question %s does not belong to this session", questionID), nil)
}

func NewAnalysisNotFoundError(recordID string) *DomainError {
	return NewError(CodeAnalysisNotFound, fmt.Sprintf("Analysis record not found: %s", recordID), nil)
}

func NewQuotaExceededError(feature string) *DomainError {
	return NewError(CodeQuotaExceeded,
		fmt.Sprintf("Monthly limit reached for %s. Upgrade your plan or wait for the next cycle.", feature), nil)
}

func NewAIProviderError(cause error) *DomainError {
	return NewError(CodeAIProviderError, "AI provider request failed", cause)
}

func NewAIConfigurationError(cause error) *DomainError {
	return NewError(CodeAIConfigurationError, "AI provider rejected the configured credentials or model", cause)
}

// ValidationError represents a single field-level validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level validation failures
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("value %d is out of range [%d, %d]", value, min, max)}
}
