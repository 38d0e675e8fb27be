// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Structuring pipeline surface
	ErrCodeStructuringInputInvalid ErrorCode = "STRUCTURING_INPUT_INVALID"
	ErrCodeRosterLoadFailed        ErrorCode = "ROSTER_LOAD_FAILED"

	// Record persistence
	ErrCodeNoActionItems            ErrorCode = "NO_ACTION_ITEMS"
	ErrCodeEmptyBundle              ErrorCode = "EMPTY_BUNDLE"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeTaskPersistFailed        ErrorCode = "TASK_PERSIST_FAILED"
	ErrCodeBundlePersistFailed      ErrorCode = "BUNDLE_PERSIST_FAILED"
	ErrCodeBundleIndexFailed        ErrorCode = "BUNDLE_INDEX_FAILED"

	// Communication
	ErrCodeDraftSendFailed    ErrorCode = "DRAFT_SEND_FAILED"
	ErrCodeDraftInvalid       ErrorCode = "DRAFT_INVALID"
	ErrCodeRecipientNotFound  ErrorCode = "RECIPIENT_NOT_FOUND"
	ErrCodeSMSPublishFailed   ErrorCode = "SMS_PUBLISH_FAILED"
	ErrCodeTemplateRenderFail ErrorCode = "TEMPLATE_RENDER_FAILED"

	// Enrichment
	ErrCodeBillEnrichTimeout ErrorCode = "BILL_ENRICH_TIMEOUT"
	ErrCodeBillEnrichFailed  ErrorCode = "BILL_ENRICH_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// New creates a StandardError with the current timestamp.
func New(code ErrorCode, message string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Retryable: GetRetryCount(code) > 0,
		Timestamp: time.Now().UTC(),
	}
}

// Wrap creates a StandardError carrying the underlying error as details.
func Wrap(code ErrorCode, message string, err error) *StandardError {
	out := New(code, message)
	if err != nil {
		out.Details = err.Error()
	}
	return out
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ConvertToBPMNError maps a StandardError onto the engine-facing shape.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
	}
}

// ==========================
// 3. Retry and Category Policy
// ==========================

// retryCounts fixes per-code retry budgets. Codes absent from the table are
// terminal.
var retryCounts = map[ErrorCode]int{
	ErrCodeDatabaseConnectionFailed: 3,
	ErrCodeTaskPersistFailed:        2,
	ErrCodeBundlePersistFailed:      2,
	ErrCodeBundleIndexFailed:        1,
	ErrCodeDraftSendFailed:          3,
	ErrCodeSMSPublishFailed:         2,
	ErrCodeRosterLoadFailed:         2,
	ErrCodeBillEnrichTimeout:        1,
	ErrCodeBillEnrichFailed:         2,
}

// GetRetryCount returns the retry budget for a code, 0 for terminal errors.
func GetRetryCount(code ErrorCode) int {
	return retryCounts[code]
}

// GetErrorCategory buckets codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeStructuringInputInvalid, ErrCodeDraftInvalid, ErrCodeNoActionItems, ErrCodeEmptyBundle:
		return "validation"
	case ErrCodeDatabaseConnectionFailed, ErrCodeTaskPersistFailed, ErrCodeBundlePersistFailed, ErrCodeBundleIndexFailed, ErrCodeRosterLoadFailed:
		return "persistence"
	case ErrCodeDraftSendFailed, ErrCodeSMSPublishFailed, ErrCodeRecipientNotFound, ErrCodeTemplateRenderFail:
		return "communication"
	case ErrCodeBillEnrichTimeout, ErrCodeBillEnrichFailed:
		return "enrichment"
	default:
		return "internal"
	}
}
