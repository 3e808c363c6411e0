package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is a coded application error. The code classifies the failure
// for callers; the message carries the user-facing context (offending
// column, file path, group counts).
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

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates a new AppError with a formatted message.
func Newf(code, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap adds context to an error. An AppError cause keeps its code so
// classification survives wrapping.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{Code: appErr.Code, Message: message, Cause: err}
	}
	return &AppError{Code: CodeInternal, Message: message, Cause: err}
}

// Wrapf adds formatted context to an error.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code, or "UNKNOWN" for foreign errors.
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Load-time (DataError) codes. Load failures are fatal to a run: there is
// no partial report without a dataset.
const (
	CodeDataNotFound  = "DATA_NOT_FOUND"
	CodeDataMalformed = "DATA_MALFORMED"
	CodeDataEmpty     = "DATA_EMPTY"
)

// Computation-time (AnalysisError) codes. These are locally recoverable
// for the optional hypothesis test.
const (
	CodeColumnNotFound     = "COLUMN_NOT_FOUND"
	CodeWrongColumnKind    = "WRONG_COLUMN_KIND"
	CodeGroupCountMismatch = "GROUP_COUNT_MISMATCH"
	CodeInsufficientData   = "INSUFFICIENT_DATA"
)

// Infrastructure codes.
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeDatabase      = "DATABASE_ERROR"
	CodeRender        = "RENDER_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

func DataNotFound(path string, cause error) *AppError {
	return &AppError{Code: CodeDataNotFound, Message: fmt.Sprintf("data file not found: %s", path), Cause: cause}
}

func DataMalformed(format string, args ...interface{}) *AppError {
	return Newf(CodeDataMalformed, "malformed input: "+format, args...)
}

func DataEmpty(detail string) *AppError {
	return Newf(CodeDataEmpty, "empty dataset: %s", detail)
}

func ColumnNotFound(column string) *AppError {
	return Newf(CodeColumnNotFound, "column %q not found in dataset", column)
}

func WrongColumnKind(column, want, got string) *AppError {
	return Newf(CodeWrongColumnKind, "column %q must be %s, found %s", column, want, got)
}

func GroupCountMismatch(column string, found int) *AppError {
	return Newf(CodeGroupCountMismatch, "grouping column %q yields %d distinct groups, expected exactly 2", column, found)
}

func InsufficientData(detail string) *AppError {
	return Newf(CodeInsufficientData, "insufficient data: %s", detail)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{Code: CodeDatabase, Message: message, Cause: cause}
}

// IsAnalysisError reports whether err is one of the computation-time error
// kinds the report pipeline treats as locally recoverable.
func IsAnalysisError(err error) bool {
	switch GetCode(err) {
	case CodeColumnNotFound, CodeWrongColumnKind, CodeGroupCountMismatch, CodeInsufficientData:
		return true
	}
	return false
}
