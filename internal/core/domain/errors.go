package domain

import (
	"errors"
	"fmt"
)

// DomainError is a failure with a stable code of the form
// BC-<AREA>-<NNNN>. Errors compare equal under errors.Is when their codes
// match, so the package-level values below work as sentinels.
type DomainError struct {
	Code    string
	Message string
	Details string
	Cause   error
}

// NewDomainError creates a DomainError.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func (e *DomainError) Error() string {
	if e.Details == "" {
		return "[" + e.Code + "] " + e.Message
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
}

func (e *DomainError) Unwrap() error { return e.Cause }

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithDetails returns a copy of e carrying details.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy of e wrapping cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

// IsDomainError reports whether err wraps a DomainError with code. An
// empty code matches any DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return code == "" || de.Code == code
}

// GetErrorCode returns the code of the first DomainError in err's tree,
// or "".
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Configuration file errors.
var (
	// ErrParse indicates malformed structure: bad indentation, bad tokens,
	// duplicate keys or unsupported constructs.
	ErrParse = NewDomainError("BC-CONF-4000", "parse error")

	// ErrEncoding indicates the file is not valid UTF-8 text.
	ErrEncoding = NewDomainError("BC-CONF-4001", "invalid text encoding")

	// ErrNotFound indicates the configuration file does not exist.
	ErrNotFound = NewDomainError("BC-CONF-4040", "configuration file not found")

	// ErrValidation indicates recognised keys carry invalid values.
	ErrValidation = NewDomainError("BC-CONF-4220", "invalid configuration")

	// ErrRead indicates the file exists but could not be read.
	ErrRead = NewDomainError("BC-CONF-5000", "cannot read configuration file")
)

// Command-line argument errors.
var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("BC-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("BC-ARG-1002", "missing required argument")
)

// Process errors.
var (
	// ErrInternal indicates an unexpected failure.
	ErrInternal = NewDomainError("BC-SYS-5000", "internal error")

	// ErrNotLoaded indicates no configuration has loaded successfully yet.
	ErrNotLoaded = NewDomainError("BC-SYS-5030", "configuration not loaded yet")
)
