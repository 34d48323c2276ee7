package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError carrying the same code, so the
// Err* values below can be used with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message
func Newf(code, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError in the chain,
// otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInternalError = "INTERNAL_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"

	CodeUnknownContext               = "UNKNOWN_CONTEXT"
	CodeMissingReferenceDirectory    = "MISSING_REFERENCE_DIRECTORY"
	CodeSourceNotFound               = "SOURCE_NOT_FOUND"
	CodeSourceIsDirectory            = "SOURCE_IS_DIRECTORY"
	CodeUnsupportedExtension         = "UNSUPPORTED_EXTENSION"
	CodeMalformedSource              = "MALFORMED_SOURCE"
	CodeInvalidLegacyValue           = "INVALID_LEGACY_VALUE"
	CodeInvalidBooleanValue          = "INVALID_BOOLEAN_VALUE"
	CodeMissingRequiredField         = "MISSING_REQUIRED_FIELD"
	CodeUnrecognizedField            = "UNRECOGNIZED_FIELD"
	CodeIdentifierTooLong            = "IDENTIFIER_TOO_LONG"
	CodeIdentifierContainsWhitespace = "IDENTIFIER_CONTAINS_WHITESPACE"
	CodeMutuallyExclusiveFields      = "MUTUALLY_EXCLUSIVE_FIELDS"
	CodeMissingDependentField        = "MISSING_DEPENDENT_FIELD"
	CodeInvalidObjective             = "INVALID_OBJECTIVE"
	CodeIncompatibleModelCapability  = "INCOMPATIBLE_MODEL_CAPABILITY"
	CodeCountMismatch                = "COUNT_MISMATCH"
	CodeSubgroupKeyMismatch          = "SUBGROUP_KEY_MISMATCH"
	CodeIncompleteCredentials        = "INCOMPLETE_CREDENTIALS"
	CodePartitionMismatch            = "PARTITION_MISMATCH"
	CodeUnknownPartition             = "UNKNOWN_PARTITION"
	CodeInvalidFilterSpec            = "INVALID_FILTER_SPEC"
	CodeDuplicateKey                 = "DUPLICATE_KEY"
	CodeDuplicateName                = "DUPLICATE_NAME"
	CodeInvalidNumericValue          = "INVALID_NUMERIC_VALUE"
	CodeInvalidRange                 = "INVALID_RANGE"
	CodeInvalidListValue             = "INVALID_LIST_VALUE"
	CodeOutputConflict               = "OUTPUT_CONFLICT"
)

// Sentinels for errors.Is; only the code is compared.
var (
	ErrUnknownContext               = New(CodeUnknownContext, "unknown context")
	ErrMissingReferenceDirectory    = New(CodeMissingReferenceDirectory, "missing reference directory")
	ErrSourceNotFound               = New(CodeSourceNotFound, "source not found")
	ErrSourceIsDirectory            = New(CodeSourceIsDirectory, "source is a directory")
	ErrUnsupportedExtension         = New(CodeUnsupportedExtension, "unsupported extension")
	ErrMalformedSource              = New(CodeMalformedSource, "malformed source")
	ErrInvalidLegacyValue           = New(CodeInvalidLegacyValue, "invalid legacy value")
	ErrInvalidBooleanValue          = New(CodeInvalidBooleanValue, "invalid boolean value")
	ErrMissingRequiredField         = New(CodeMissingRequiredField, "missing required field")
	ErrUnrecognizedField            = New(CodeUnrecognizedField, "unrecognized field")
	ErrIdentifierTooLong            = New(CodeIdentifierTooLong, "identifier too long")
	ErrIdentifierContainsWhitespace = New(CodeIdentifierContainsWhitespace, "identifier contains whitespace")
	ErrMutuallyExclusiveFields      = New(CodeMutuallyExclusiveFields, "mutually exclusive fields")
	ErrMissingDependentField        = New(CodeMissingDependentField, "missing dependent field")
	ErrInvalidObjective             = New(CodeInvalidObjective, "invalid objective")
	ErrIncompatibleModelCapability  = New(CodeIncompatibleModelCapability, "incompatible model capability")
	ErrCountMismatch                = New(CodeCountMismatch, "count mismatch")
	ErrSubgroupKeyMismatch          = New(CodeSubgroupKeyMismatch, "subgroup key mismatch")
	ErrIncompleteCredentials        = New(CodeIncompleteCredentials, "incomplete credentials")
	ErrPartitionMismatch            = New(CodePartitionMismatch, "partition mismatch")
	ErrUnknownPartition             = New(CodeUnknownPartition, "unknown partition")
	ErrInvalidFilterSpec            = New(CodeInvalidFilterSpec, "invalid filter specification")
	ErrDuplicateKey                 = New(CodeDuplicateKey, "duplicate key")
	ErrDuplicateName                = New(CodeDuplicateName, "duplicate name")
	ErrInvalidNumericValue          = New(CodeInvalidNumericValue, "invalid numeric value")
	ErrInvalidRange                 = New(CodeInvalidRange, "invalid range")
	ErrInvalidInput                 = New(CodeInvalidInput, "invalid input")
	ErrInvalidListValue             = New(CodeInvalidListValue, "invalid list value")
	ErrOutputConflict               = New(CodeOutputConflict, "output conflict")
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func UnknownContext(context string, valid []string) *AppError {
	return Newf(CodeUnknownContext, "unknown context '%s'; must be one of: %s",
		context, strings.Join(valid, ", "))
}

func MissingRequiredField(field string) *AppError {
	return Newf(CodeMissingRequiredField, "the configuration must specify '%s'", field)
}

func UnrecognizedField(field string) *AppError {
	return Newf(CodeUnrecognizedField, "unrecognized field '%s' in configuration", field)
}

func InvalidBooleanValue(field string, value interface{}) *AppError {
	return Newf(CodeInvalidBooleanValue, "field %s can only be set to true or false, got %v", field, value)
}

func InvalidListValue(field string, value interface{}) *AppError {
	return Newf(CodeInvalidListValue, "field %s must be a list or a comma-separated string, got %T", field, value)
}

func InvalidLegacyValue(field string, value interface{}) *AppError {
	return Newf(CodeInvalidLegacyValue, "legacy field '%s' has unsupported value %v", field, value)
}

func MutuallyExclusiveFields(first, second string) *AppError {
	return Newf(CodeMutuallyExclusiveFields, "you cannot specify BOTH '%s' and '%s'", first, second)
}

func MissingDependentField(message string) *AppError {
	return New(CodeMissingDependentField, message)
}
