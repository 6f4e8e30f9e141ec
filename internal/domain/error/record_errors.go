package error

import "errors"

// Record domain errors.
var (
	// ErrRecordNotFound is returned when a record does not exist or is not owned by the caller.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidRecordType is returned when the type is neither expense nor income.
	ErrInvalidRecordType = errors.New("invalid record type")

	// ErrNegativeAmount is returned when a record amount is below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrInvalidRecordAmount is returned when the amount cannot be parsed.
	ErrInvalidRecordAmount = errors.New("invalid record amount")

	// ErrInvalidRecordDate is returned when the record date cannot be parsed.
	ErrInvalidRecordDate = errors.New("invalid record date")

	// ErrMissingCategory is returned when a record has no category label.
	ErrMissingCategory = errors.New("category is required")

	// ErrMissingText is returned when a record has no description text.
	ErrMissingText = errors.New("text is required")

	// ErrTextTooLong is returned when the description exceeds MaxRecordTextLength.
	ErrTextTooLong = errors.New("text too long")
)

// MaxRecordTextLength bounds the free-text description of a record.
const MaxRecordTextLength = 100

// RecordErrorCode defines error codes for record errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecordErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRecordType   RecordErrorCode = "REC-010001"
	ErrCodeNegativeAmount      RecordErrorCode = "REC-010002"
	ErrCodeInvalidRecordAmount RecordErrorCode = "REC-010003"
	ErrCodeInvalidRecordDate   RecordErrorCode = "REC-010004"
	ErrCodeMissingCategory     RecordErrorCode = "REC-010005"
	ErrCodeMissingText         RecordErrorCode = "REC-010006"
	ErrCodeTextTooLong         RecordErrorCode = "REC-010007"
	ErrCodeMissingRecordFields RecordErrorCode = "REC-010008"

	// Lookup errors (02XXXX)
	ErrCodeRecordNotFound RecordErrorCode = "REC-020001"
)

// RecordError represents a record error with code and message.
type RecordError struct {
	Code    RecordErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a new RecordError with the given code and message.
func NewRecordError(code RecordErrorCode, message string, err error) *RecordError {
	return &RecordError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
