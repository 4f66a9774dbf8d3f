package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Position locates a diagnostic inside a configuration file.
// Line and Column are 1-based; zero means unknown.
type Position struct {
	File   string
	Line   int
	Column int
}

// String formats the position as file:line:column, dropping unknown parts.
func (p Position) String() string {
	var b strings.Builder
	b.WriteString(p.File)
	if p.Line > 0 {
		if b.Len() > 0 {
			b.WriteByte(':')
		}
		b.WriteString(strconv.Itoa(p.Line))
		if p.Column > 0 {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(p.Column))
		}
	}
	return b.String()
}

// prefix returns "pos: " or "" when the position is empty.
func (p Position) prefix() string {
	if s := p.String(); s != "" {
		return s + ": "
	}
	return ""
}

// NotFoundError reports that the configuration path does not exist.
type NotFoundError struct {
	Path  string
	Cause error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, ErrNotFound.Message)
}

// Unwrap exposes both the code sentinel and the underlying cause.
func (e *NotFoundError) Unwrap() []error {
	return causes(ErrNotFound, e.Cause)
}

// ParseError reports malformed structure. No document is produced.
type ParseError struct {
	Position
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s%s: %s", e.Position.prefix(), ErrParse.Message, e.Reason)
}

// Unwrap exposes both the code sentinel and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return causes(ErrParse, e.Cause)
}

// EncodingError reports bytes that are not valid UTF-8.
type EncodingError struct {
	Position
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s%s: invalid UTF-8 sequence at byte offset %d",
		e.Position.prefix(), ErrEncoding.Message, e.Offset)
}

// Unwrap exposes the code sentinel.
func (e *EncodingError) Unwrap() []error {
	return causes(ErrEncoding, nil)
}

// ReadError reports an IO failure other than a missing file.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, ErrRead.Message, e.Cause)
}

// Unwrap exposes both the code sentinel and the underlying cause.
func (e *ReadError) Unwrap() []error {
	return causes(ErrRead, e.Cause)
}

// ValidationError collects every problem found in recognised keys.
type ValidationError struct {
	File     string
	Problems []string
	Cause    error
}

func (e *ValidationError) Error() string {
	head := ErrValidation.Message
	if e.File != "" {
		head = e.File + ": " + head
	}
	switch len(e.Problems) {
	case 0:
		if e.Cause != nil {
			return head + ": " + e.Cause.Error()
		}
		return head
	case 1:
		return head + ": " + e.Problems[0]
	default:
		return head + ":\n  - " + strings.Join(e.Problems, "\n  - ")
	}
}

// Unwrap exposes both the code sentinel and the underlying cause.
func (e *ValidationError) Unwrap() []error {
	return causes(ErrValidation, e.Cause)
}

func causes(sentinel *DomainError, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}
