// Package fault defines the error kinds surfaced by proxyprint operations.
package fault

import "errors"

// Code is a machine-readable error kind.
type Code string

const (
	// CodeNotFound means a card name or a persisted snapshot could not be found.
	CodeNotFound Code = "NOT_FOUND"
	// CodeFetch means a network or HTTP failure while talking to the remote catalog.
	CodeFetch Code = "FETCH_FAILURE"
	// CodeIncompleteDataset means the upstream manifest lacks the required dataset.
	CodeIncompleteDataset Code = "INCOMPLETE_DATASET"
	// CodeUnimplemented means an artwork mode that has no implementation yet.
	CodeUnimplemented Code = "UNIMPLEMENTED"
	// CodeIO means a local read or write failure.
	CodeIO Code = "IO_FAILURE"
	// CodeMalformed means upstream data that does not satisfy the card model.
	CodeMalformed Code = "MALFORMED_RECORD"
)

// Sentinels for errors.Is comparisons. Matching is by code only.
var (
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrFetch             = &Error{Code: CodeFetch, Message: "fetch failure"}
	ErrIncompleteDataset = &Error{Code: CodeIncompleteDataset, Message: "incomplete dataset"}
	ErrUnimplemented     = &Error{Code: CodeUnimplemented, Message: "unimplemented"}
	ErrIO                = &Error{Code: CodeIO, Message: "io failure"}
	ErrMalformed         = &Error{Code: CodeMalformed, Message: "malformed record"}
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a coded error with a message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first fault.Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
