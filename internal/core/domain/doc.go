// Package domain defines the error taxonomy and diagnostics shared by
// every bookcfg package.
//
// This package contains:
//
//   - DomainError: coded error values usable with errors.Is
//   - NotFoundError, ParseError, EncodingError, ValidationError:
//     positioned load failures
//   - SchemaWarning: non-fatal diagnostics for unrecognised or missing keys
//
// Nothing here performs IO.
package domain
